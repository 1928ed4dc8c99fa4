// Package report renders decoded TeslaMate payloads as plain multi-line text.
//
// Every function is pure. Labels come from a [Catalog]; numbers are inserted as the API sent them,
// except drive distance and average speed, which are rounded to two decimal places. Payloads must be
// complete, as the teslamate client returns them: nested objects are dereferenced without checks.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/teslamate-tools/teslamate-query/pkg/teslamate"
)

// MaxRecords is the number of charges or drives shown. Records are taken from the head of the
// list in the order the API returned them.
const MaxRecords = 5

func (c *Catalog) yesNo(b bool) string {
	if b {
		return c.Yes
	}
	return c.No
}

func (c *Catalog) onOff(b bool) string {
	if b {
		return c.On
	}
	return c.Off
}

func (c *Catalog) openClosed(b bool) string {
	if b {
		return c.Open
	}
	return c.Closed
}

func (c *Catalog) number(n json.Number) string {
	if n == "" {
		return c.NotAvailable
	}
	return n.String()
}

func finish(b *strings.Builder) string {
	return strings.TrimSpace(b.String())
}

// Vehicles renders the vehicle list, one block per vehicle.
func Vehicles(c *Catalog, cars []teslamate.Vehicle) string {
	var b strings.Builder
	f := c.VehicleFields
	fmt.Fprintln(&b, c.VehiclesHeader)
	for _, car := range cars {
		fmt.Fprintf(&b, "%s: %d\n", f.ID, car.CarID)
		fmt.Fprintf(&b, "%s: %s\n", f.Name, car.Name)
		fmt.Fprintf(&b, "%s: %s\n", f.Model, car.CarDetails.Model)
		fmt.Fprintf(&b, "%s: %s\n\n", f.Color, car.CarExterior.ExteriorColor)
	}
	return finish(&b)
}

// Status renders a vehicle status report. Sections appear in a fixed order: identity, closures,
// battery, charging, climate, software.
func Status(c *Catalog, s *teslamate.VehicleStatus) string {
	var b strings.Builder
	f := c.StatusFields

	fmt.Fprintf(&b, "%s: %s\n", f.Vehicle, s.DisplayName)
	fmt.Fprintf(&b, "%s: %s\n", f.State, s.State)
	fmt.Fprintf(&b, "%s: %s\n", f.Since, s.StateSince)
	fmt.Fprintf(&b, "%s: %s km\n\n", f.Odometer, c.number(s.Odometer))

	fmt.Fprintln(&b, f.ClosuresHeader)
	fmt.Fprintf(&b, "%s: %s\n", f.Locked, c.yesNo(s.CarStatus.Locked))
	fmt.Fprintf(&b, "%s: %s\n", f.Sentry, c.onOff(s.CarStatus.SentryMode))
	fmt.Fprintf(&b, "%s: %s\n", f.Windows, c.openClosed(s.CarStatus.WindowsOpen))
	fmt.Fprintf(&b, "%s: %s\n", f.Doors, c.openClosed(s.CarStatus.DoorsOpen))
	fmt.Fprintf(&b, "%s: %s\n", f.Trunk, c.openClosed(s.CarStatus.TrunkOpen))
	fmt.Fprintf(&b, "%s: %s\n\n", f.Frunk, c.openClosed(s.CarStatus.FrunkOpen))

	battery := s.BatteryDetails
	fmt.Fprintln(&b, f.BatteryHeader)
	fmt.Fprintf(&b, "%s: %s%%\n", f.Level, c.number(battery.BatteryLevel))
	fmt.Fprintf(&b, "%s: %s km\n", f.EstRange, c.number(battery.EstBatteryRange))
	fmt.Fprintf(&b, "%s: %s km\n\n", f.RatedRange, c.number(battery.RatedBatteryRange))

	charging := s.ChargingDetails
	fmt.Fprintln(&b, f.ChargingHeader)
	fmt.Fprintf(&b, "%s: %s\n", f.ChargingState, charging.ChargingState)
	fmt.Fprintf(&b, "%s: %s%%\n\n", f.ChargeLimit, c.number(charging.ChargeLimitSOC))

	climate := s.ClimateDetails
	fmt.Fprintln(&b, f.ClimateHeader)
	fmt.Fprintf(&b, "%s: %s\n", f.Climate, c.onOff(climate.IsClimateOn))
	fmt.Fprintf(&b, "%s: %s°C\n", f.InsideTemp, c.number(climate.InsideTemp))
	fmt.Fprintf(&b, "%s: %s°C\n\n", f.OutsideTemp, c.number(climate.OutsideTemp))

	fmt.Fprintln(&b, f.SoftwareHeader)
	fmt.Fprintf(&b, "%s: %s\n", f.SoftwareVersion, s.CarVersions.Version)
	fmt.Fprintf(&b, "%s: %s\n", f.UpdateAvailable, c.yesNo(s.CarVersions.UpdateAvailable))
	return finish(&b)
}

func head[T any](records []T) []T {
	if len(records) > MaxRecords {
		return records[:MaxRecords]
	}
	return records
}

// Charges renders up to MaxRecords charging sessions. An empty list yields c.NoCharges.
func Charges(c *Catalog, charges []teslamate.Charge) string {
	if len(charges) == 0 {
		return c.NoCharges
	}
	var b strings.Builder
	f := c.ChargeFields
	fmt.Fprintln(&b, c.ChargesHeader)
	for _, charge := range head(charges) {
		fmt.Fprintf(&b, "%s: %s\n", f.Start, charge.StartDate)
		fmt.Fprintf(&b, "%s: %s\n", f.End, charge.EndDate)
		fmt.Fprintf(&b, "%s: %s\n", f.Address, charge.Address)
		fmt.Fprintf(&b, "%s: %s kWh\n", f.EnergyAdded, c.number(charge.ChargeEnergyAdded))
		fmt.Fprintf(&b, "%s: %s\n", f.Cost, c.number(charge.Cost))
		fmt.Fprintf(&b, "%s: %s\n", f.Duration, charge.DurationStr)
		fmt.Fprintf(&b, "%s: %s%% -> %s%%\n\n", f.BatteryChange,
			c.number(charge.BatteryDetails.StartBatteryLevel), c.number(charge.BatteryDetails.EndBatteryLevel))
	}
	return finish(&b)
}

// Drives renders up to MaxRecords trips. An empty list yields c.NoDrives.
func Drives(c *Catalog, drives []teslamate.Drive) string {
	if len(drives) == 0 {
		return c.NoDrives
	}
	var b strings.Builder
	f := c.DriveFields
	fmt.Fprintln(&b, c.DrivesHeader)
	for _, drive := range head(drives) {
		fmt.Fprintf(&b, "%s: %s\n", f.Start, drive.StartDate)
		fmt.Fprintf(&b, "%s: %s\n", f.End, drive.EndDate)
		fmt.Fprintf(&b, "%s: %s\n", f.StartAddress, drive.StartAddress)
		fmt.Fprintf(&b, "%s: %s\n", f.EndAddress, drive.EndAddress)
		fmt.Fprintf(&b, "%s: %.2f km\n", f.Distance, *drive.OdometerDetails.OdometerDistance)
		fmt.Fprintf(&b, "%s: %s\n", f.Duration, drive.DurationStr)
		fmt.Fprintf(&b, "%s: %.2f km/h\n", f.AvgSpeed, *drive.SpeedAvg)
		fmt.Fprintf(&b, "%s: %s km/h\n", f.MaxSpeed, c.number(drive.SpeedMax))
		fmt.Fprintf(&b, "%s: %s%% -> %s%%\n\n", f.BatteryChange,
			c.number(drive.BatteryDetails.StartBatteryLevel), c.number(drive.BatteryDetails.EndBatteryLevel))
	}
	return finish(&b)
}

// BatteryHealth renders the battery degradation summary.
func BatteryHealth(c *Catalog, h *teslamate.BatteryHealth) string {
	var b strings.Builder
	f := c.BatteryHealthFields
	fmt.Fprintln(&b, c.BatteryHealthHeader)
	fmt.Fprintf(&b, "%s: %s%%\n", f.Health, c.number(h.BatteryHealthPercentage))
	fmt.Fprintf(&b, "%s: %s kWh\n", f.CurrentCapacity, c.number(h.CurrentCapacity))
	fmt.Fprintf(&b, "%s: %s kWh\n", f.MaxCapacity, c.number(h.MaxCapacity))
	fmt.Fprintf(&b, "%s: %s km\n", f.CurrentRange, c.number(h.CurrentRange))
	fmt.Fprintf(&b, "%s: %s km\n", f.MaxRange, c.number(h.MaxRange))
	fmt.Fprintf(&b, "%s: %s Wh/km\n", f.Efficiency, c.number(h.RatedEfficiency))
	return finish(&b)
}

// Help renders usage text. Each token in commands is listed as "<prefix> <token> - <description>".
func Help(c *Catalog, prefix, version string, commands []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, c.HelpTitle+"\n", version)
	for _, name := range commands {
		fmt.Fprintf(&b, "%s %s - %s\n", prefix, name, c.HelpCommands[name])
	}
	return finish(&b)
}

// Unknown renders the reply to an unrecognized command token.
func Unknown(c *Catalog, prefix string) string {
	return fmt.Sprintf(c.Unknown, prefix)
}

// StatusFailed renders a non-200 response for resource r.
func StatusFailed(c *Catalog, r Resource, code int) string {
	return fmt.Sprintf(c.StatusFailed, c.ResourceName(r), code)
}

// QueryFailed renders an unexpected failure for resource r.
func QueryFailed(c *Catalog, r Resource) string {
	return fmt.Sprintf(c.QueryFailed, c.ResourceName(r))
}
