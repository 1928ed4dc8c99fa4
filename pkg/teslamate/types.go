package teslamate

import "encoding/json"

// Numbers that are only ever displayed are kept as json.Number so that their textual form survives
// decoding unchanged. A JSON null leaves the Number empty.
//
// Nested objects and reformatted numbers are pointers so that a member the API left out can be told
// apart from a zero value. The client rejects payloads where any of them is nil.

// Vehicle is an entry of the vehicle list.
type Vehicle struct {
	CarID       int         `json:"car_id"`
	Name        string      `json:"name"`
	CarDetails  *CarDetails  `json:"car_details"`
	CarExterior *CarExterior `json:"car_exterior"`
}

func (v *Vehicle) missing() string {
	switch {
	case v.CarDetails == nil:
		return "car_details"
	case v.CarExterior == nil:
		return "car_exterior"
	}
	return ""
}

type CarDetails struct {
	VIN         string `json:"vin"`
	Model       string `json:"model"`
	TrimBadging string `json:"trim_badging"`
}

type CarExterior struct {
	ExteriorColor string `json:"exterior_color"`
	WheelType     string `json:"wheel_type"`
}

// VehicleStatus is the current state of one vehicle.
type VehicleStatus struct {
	DisplayName     string           `json:"display_name"`
	State           string           `json:"state"`
	StateSince      string           `json:"state_since"`
	Odometer        json.Number      `json:"odometer"`
	CarStatus       *CarStatus       `json:"car_status"`
	BatteryDetails  *BatteryDetails  `json:"battery_details"`
	ChargingDetails *ChargingDetails `json:"charging_details"`
	ClimateDetails  *ClimateDetails  `json:"climate_details"`
	CarVersions     *CarVersions     `json:"car_versions"`
}

func (s *VehicleStatus) missing() string {
	switch {
	case s.CarStatus == nil:
		return "car_status"
	case s.BatteryDetails == nil:
		return "battery_details"
	case s.ChargingDetails == nil:
		return "charging_details"
	case s.ClimateDetails == nil:
		return "climate_details"
	case s.CarVersions == nil:
		return "car_versions"
	}
	return ""
}

type CarStatus struct {
	Locked      bool `json:"locked"`
	SentryMode  bool `json:"sentry_mode"`
	WindowsOpen bool `json:"windows_open"`
	DoorsOpen   bool `json:"doors_open"`
	TrunkOpen   bool `json:"trunk_open"`
	FrunkOpen   bool `json:"frunk_open"`
}

type BatteryDetails struct {
	BatteryLevel      json.Number `json:"battery_level"`
	EstBatteryRange   json.Number `json:"est_battery_range"`
	RatedBatteryRange json.Number `json:"rated_battery_range"`
}

type ChargingDetails struct {
	ChargingState  string      `json:"charging_state"`
	ChargeLimitSOC json.Number `json:"charge_limit_soc"`
}

type ClimateDetails struct {
	IsClimateOn bool        `json:"is_climate_on"`
	InsideTemp  json.Number `json:"inside_temp"`
	OutsideTemp json.Number `json:"outside_temp"`
}

type CarVersions struct {
	Version         string `json:"version"`
	UpdateAvailable bool   `json:"update_available"`
}

// Charge is one charging session.
type Charge struct {
	StartDate         string              `json:"start_date"`
	EndDate           string              `json:"end_date"`
	Address           string              `json:"address"`
	ChargeEnergyAdded json.Number         `json:"charge_energy_added"`
	Cost              json.Number         `json:"cost"`
	DurationStr       string              `json:"duration_str"`
	BatteryDetails    *BatteryLevelChange `json:"battery_details"`
}

func (c *Charge) missing() string {
	if c.BatteryDetails == nil {
		return "battery_details"
	}
	return ""
}

// Drive is one trip.
type Drive struct {
	StartDate       string              `json:"start_date"`
	EndDate         string              `json:"end_date"`
	StartAddress    string              `json:"start_address"`
	EndAddress      string              `json:"end_address"`
	OdometerDetails *OdometerDetails    `json:"odometer_details"`
	DurationStr     string              `json:"duration_str"`
	SpeedAvg        *float64            `json:"speed_avg"`
	SpeedMax        json.Number         `json:"speed_max"`
	BatteryDetails  *BatteryLevelChange `json:"battery_details"`
}

func (d *Drive) missing() string {
	switch {
	case d.OdometerDetails == nil:
		return "odometer_details"
	case d.OdometerDetails.OdometerDistance == nil:
		return "odometer_details.odometer_distance"
	case d.SpeedAvg == nil:
		return "speed_avg"
	case d.BatteryDetails == nil:
		return "battery_details"
	}
	return ""
}

type OdometerDetails struct {
	OdometerDistance *float64 `json:"odometer_distance"`
}

// BatteryLevelChange records the state of charge at the start and end of a charge or drive.
type BatteryLevelChange struct {
	StartBatteryLevel json.Number `json:"start_battery_level"`
	EndBatteryLevel   json.Number `json:"end_battery_level"`
}

// BatteryHealth summarizes battery degradation.
type BatteryHealth struct {
	MaxRange                json.Number `json:"max_range"`
	CurrentRange            json.Number `json:"current_range"`
	MaxCapacity             json.Number `json:"max_capacity"`
	CurrentCapacity         json.Number `json:"current_capacity"`
	RatedEfficiency         json.Number `json:"rated_efficiency"`
	BatteryHealthPercentage json.Number `json:"battery_health_percentage"`
}

// Response envelopes. Pointers distinguish a missing member from an empty one.

type carsResponse struct {
	Data *struct {
		Cars []Vehicle `json:"cars"`
	} `json:"data"`
}

type carIDsResponse struct {
	Data *struct {
		Cars []struct {
			CarID *int `json:"car_id"`
		} `json:"cars"`
	} `json:"data"`
}

type statusResponse struct {
	Data *struct {
		Status *VehicleStatus `json:"status"`
	} `json:"data"`
}

type chargesResponse struct {
	Data *struct {
		Charges []Charge `json:"charges"`
	} `json:"data"`
}

type drivesResponse struct {
	Data *struct {
		Drives []Drive `json:"drives"`
	} `json:"data"`
}

type batteryHealthResponse struct {
	Data *struct {
		BatteryHealth *BatteryHealth `json:"battery_health"`
	} `json:"data"`
}
