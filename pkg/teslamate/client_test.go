package teslamate_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jarcoal/httpmock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/teslamate-tools/teslamate-query/pkg/teslamate"
)

const (
	baseURL      = "https://teslamate.example.com"
	clientID     = "client-id.access"
	clientSecret = "hunter2"
)

const carsJSON = `{"data":{"cars":[
	{"car_id":7,"name":"Blue","car_details":{"model":"3","vin":"5YJ3E1EA0000001"},"car_exterior":{"exterior_color":"DeepBlue"}},
	{"car_id":9,"name":"Red","car_details":{"model":"Y"},"car_exterior":{"exterior_color":"RedMulticoat"}}
]}}`

const statusJSON = `{"data":{"car":{"car_id":7},"status":{
	"display_name":"Blue","state":"online","state_since":"2024-05-01T10:00:00Z","odometer":12345.6,
	"car_status":{"locked":true,"sentry_mode":false,"windows_open":false,"doors_open":false,"trunk_open":true,"frunk_open":false},
	"battery_details":{"battery_level":80,"est_battery_range":300.5,"rated_battery_range":320.0},
	"charging_details":{"charging_state":"Disconnected","charge_limit_soc":90},
	"climate_details":{"is_climate_on":false,"inside_temp":21.5,"outside_temp":12.0},
	"car_versions":{"version":"2024.8.7","update_available":true}}}}`

var _ = Describe("Client", func() {
	var (
		client *teslamate.Client
		ctx    context.Context
	)

	respond := func(path string, code int, body string) {
		httpmock.RegisterResponder(http.MethodGet, baseURL+path, func(r *http.Request) (*http.Response, error) {
			Expect(r.Header.Get(teslamate.HeaderClientID)).To(Equal(clientID))
			Expect(r.Header.Get(teslamate.HeaderClientSecret)).To(Equal(clientSecret))
			return httpmock.NewStringResponse(code, body), nil
		})
	}

	BeforeEach(func() {
		httpmock.Activate()
		DeferCleanup(httpmock.DeactivateAndReset)

		var err error
		client, err = teslamate.New(teslamate.Config{
			BaseURL:      baseURL + "/",
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Headers:      map[string]string{"X-Extra": "yes"},
		})
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()
	})

	Describe("New", func() {
		It("rejects a base URL without a scheme", func() {
			_, err := teslamate.New(teslamate.Config{BaseURL: "teslamate.example.com"})
			Expect(err).To(HaveOccurred())
		})

		It("rejects an empty base URL", func() {
			_, err := teslamate.New(teslamate.Config{})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ListVehicles", func() {
		It("decodes the vehicle list in order", func() {
			respond("/api/v1/cars", http.StatusOK, carsJSON)
			cars, err := client.ListVehicles(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(cars).To(HaveLen(2))
			Expect(cars[0].CarID).To(Equal(7))
			Expect(cars[0].CarDetails.Model).To(Equal("3"))
			Expect(cars[1].CarExterior.ExteriorColor).To(Equal("RedMulticoat"))
		})

		It("sends static headers", func() {
			httpmock.RegisterResponder(http.MethodGet, baseURL+"/api/v1/cars", func(r *http.Request) (*http.Response, error) {
				Expect(r.Header.Get("X-Extra")).To(Equal("yes"))
				Expect(r.Header.Get("Accept")).To(Equal("application/json"))
				Expect(r.Header.Get("User-Agent")).To(ContainSubstring("teslamate-query/"))
				return httpmock.NewStringResponse(http.StatusOK, `{"data":{"cars":[]}}`), nil
			})
			cars, err := client.ListVehicles(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(cars).To(BeEmpty())
		})

		It("tags every request with a fresh request ID", func() {
			var ids []string
			httpmock.RegisterResponder(http.MethodGet, baseURL+"/api/v1/cars", func(r *http.Request) (*http.Response, error) {
				id := r.Header.Get(teslamate.HeaderRequestID)
				_, err := uuid.Parse(id)
				Expect(err).NotTo(HaveOccurred())
				ids = append(ids, id)
				return httpmock.NewStringResponse(http.StatusOK, carsJSON), nil
			})
			_, err := client.ListVehicles(ctx)
			Expect(err).NotTo(HaveOccurred())
			_, err = client.ListVehicles(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(HaveLen(2))
			Expect(ids[0]).NotTo(Equal(ids[1]))
		})

		It("returns an HTTPError carrying the status code", func() {
			respond("/api/v1/cars", http.StatusForbidden, `forbidden`)
			_, err := client.ListVehicles(ctx)
			var httpErr *teslamate.HTTPError
			Expect(errors.As(err, &httpErr)).To(BeTrue())
			Expect(httpErr.Code).To(Equal(http.StatusForbidden))
			Expect(httpErr.Body).To(Equal("forbidden"))
			Expect(err.Error()).To(ContainSubstring("403"))
			Expect(teslamate.IsUnexpected(err)).To(BeFalse())
		})

		It("classifies invalid JSON as a decode error", func() {
			respond("/api/v1/cars", http.StatusOK, `<html>`)
			_, err := client.ListVehicles(ctx)
			Expect(teslamate.IsKind(err, teslamate.KindDecode)).To(BeTrue())
			Expect(teslamate.IsUnexpected(err)).To(BeTrue())
		})

		It("classifies a missing envelope as malformed", func() {
			respond("/api/v1/cars", http.StatusOK, `{"cars":[]}`)
			_, err := client.ListVehicles(ctx)
			Expect(teslamate.IsKind(err, teslamate.KindMalformed)).To(BeTrue())
			Expect(errors.Is(err, teslamate.ErrMalformedResponse)).To(BeTrue())
		})

		It("classifies a null list as malformed", func() {
			respond("/api/v1/cars", http.StatusOK, `{"data":{"cars":null}}`)
			_, err := client.ListVehicles(ctx)
			Expect(teslamate.IsKind(err, teslamate.KindMalformed)).To(BeTrue())
		})

		It("classifies network failures as transport errors", func() {
			httpmock.RegisterResponder(http.MethodGet, baseURL+"/api/v1/cars", httpmock.NewErrorResponder(errors.New("connection refused")))
			_, err := client.ListVehicles(ctx)
			Expect(teslamate.IsKind(err, teslamate.KindTransport)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("connection refused"))
		})
	})

	Describe("PrimaryVehicleID", func() {
		It("returns the first vehicle", func() {
			respond("/api/v1/cars", http.StatusOK, carsJSON)
			id, err := client.PrimaryVehicleID(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal(7))
		})

		It("returns ErrNoVehicles for an empty list", func() {
			respond("/api/v1/cars", http.StatusOK, `{"data":{"cars":[]}}`)
			_, err := client.PrimaryVehicleID(ctx)
			Expect(err).To(MatchError(teslamate.ErrNoVehicles))
			Expect(teslamate.IsUnexpected(err)).To(BeFalse())
		})

		It("needs only the car_id of the first vehicle", func() {
			respond("/api/v1/cars", http.StatusOK, `{"data":{"cars":[{"car_id":3}]}}`)
			id, err := client.PrimaryVehicleID(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal(3))
		})

		It("reports a missing car_id as malformed", func() {
			respond("/api/v1/cars", http.StatusOK, `{"data":{"cars":[{"name":"Blue"}]}}`)
			_, err := client.PrimaryVehicleID(ctx)
			Expect(teslamate.IsKind(err, teslamate.KindMalformed)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("data.cars[0].car_id"))
		})

		It("fetches the list on every call", func() {
			respond("/api/v1/cars", http.StatusOK, carsJSON)
			_, err := client.PrimaryVehicleID(ctx)
			Expect(err).NotTo(HaveOccurred())
			_, err = client.PrimaryVehicleID(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(httpmock.GetTotalCallCount()).To(Equal(2))
		})
	})

	Describe("Status", func() {
		It("decodes the status and keeps numbers verbatim", func() {
			respond("/api/v1/cars/7/status", http.StatusOK, statusJSON)
			status, err := client.Status(ctx, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(status.DisplayName).To(Equal("Blue"))
			Expect(status.Odometer).To(Equal(json.Number("12345.6")))
			Expect(status.BatteryDetails.RatedBatteryRange).To(Equal(json.Number("320.0")))
			Expect(status.CarStatus.Locked).To(BeTrue())
			Expect(status.CarStatus.TrunkOpen).To(BeTrue())
			Expect(status.CarVersions.UpdateAvailable).To(BeTrue())
		})

		It("reports a missing status object as malformed", func() {
			respond("/api/v1/cars/7/status", http.StatusOK, `{"data":{}}`)
			_, err := client.Status(ctx, 7)
			Expect(teslamate.IsKind(err, teslamate.KindMalformed)).To(BeTrue())
		})

		It("reports the status code of a failed request", func() {
			respond("/api/v1/cars/7/status", http.StatusBadGateway, ``)
			_, err := client.Status(ctx, 7)
			code, ok := teslamate.StatusCode(err)
			Expect(ok).To(BeTrue())
			Expect(code).To(Equal(http.StatusBadGateway))
		})
	})

	Describe("Charges", func() {
		It("returns every record the API sent", func() {
			respond("/api/v1/cars/7/charges", http.StatusOK, `{"data":{"charges":[
				{"start_date":"a","cost":null,"charge_energy_added":10.5,"battery_details":{"start_battery_level":20,"end_battery_level":80}},
				{"start_date":"b","battery_details":{}},{"start_date":"c","battery_details":{}},{"start_date":"d","battery_details":{}},
				{"start_date":"e","battery_details":{}},{"start_date":"f","battery_details":{}}]}}`)
			charges, err := client.Charges(ctx, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(charges).To(HaveLen(6))
			Expect(charges[0].Cost).To(Equal(json.Number("")))
			Expect(charges[0].ChargeEnergyAdded).To(Equal(json.Number("10.5")))
			Expect(charges[0].BatteryDetails.EndBatteryLevel).To(Equal(json.Number("80")))
		})
	})

	Describe("Drives", func() {
		It("decodes distance and speeds", func() {
			respond("/api/v1/cars/7/drives", http.StatusOK, `{"data":{"drives":[
				{"start_address":"Home","end_address":"Work","odometer_details":{"odometer_distance":12.3456},"speed_avg":45.678,"speed_max":110,"battery_details":{}}]}}`)
			drives, err := client.Drives(ctx, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(drives).To(HaveLen(1))
			Expect(*drives[0].OdometerDetails.OdometerDistance).To(BeNumerically("~", 12.3456))
			Expect(*drives[0].SpeedAvg).To(BeNumerically("~", 45.678))
			Expect(drives[0].SpeedMax).To(Equal(json.Number("110")))
		})

		It("returns an empty slice for an empty list", func() {
			respond("/api/v1/cars/7/drives", http.StatusOK, `{"data":{"drives":[]}}`)
			drives, err := client.Drives(ctx, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(drives).To(BeEmpty())
		})
	})

	Describe("BatteryHealth", func() {
		It("decodes the battery health summary", func() {
			respond("/api/v1/cars/7/battery-health", http.StatusOK, `{"data":{"battery_health":{"battery_health_percentage":96.5,"max_capacity":75}}}`)
			health, err := client.BatteryHealth(ctx, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(health.BatteryHealthPercentage).To(Equal(json.Number("96.5")))
			Expect(health.MaxCapacity).To(Equal(json.Number("75")))
		})
	})

	DescribeTable("rejects payloads missing nested members",
		func(path, body, member string, query func() error) {
			respond(path, http.StatusOK, body)
			err := query()
			Expect(teslamate.IsKind(err, teslamate.KindMalformed)).To(BeTrue())
			Expect(teslamate.IsUnexpected(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring(member))
		},
		Entry("vehicle without car_details", "/api/v1/cars",
			`{"data":{"cars":[{"car_id":7,"car_exterior":{}}]}}`, "data.cars[0].car_details",
			func() error { _, err := client.ListVehicles(ctx); return err }),
		Entry("vehicle without car_exterior", "/api/v1/cars",
			`{"data":{"cars":[{"car_id":7,"car_details":{}},{"car_id":9,"car_details":{}}]}}`, "data.cars[0].car_exterior",
			func() error { _, err := client.ListVehicles(ctx); return err }),
		Entry("status without car_status", "/api/v1/cars/7/status",
			`{"data":{"status":{"display_name":"Blue"}}}`, "data.status.car_status",
			func() error { _, err := client.Status(ctx, 7); return err }),
		Entry("status without car_versions", "/api/v1/cars/7/status",
			`{"data":{"status":{"car_status":{},"battery_details":{},"charging_details":{},"climate_details":{}}}}`, "data.status.car_versions",
			func() error { _, err := client.Status(ctx, 7); return err }),
		Entry("charge without battery_details", "/api/v1/cars/7/charges",
			`{"data":{"charges":[{"start_date":"a","battery_details":{}},{"start_date":"b"}]}}`, "data.charges[1].battery_details",
			func() error { _, err := client.Charges(ctx, 7); return err }),
		Entry("drive with null speed_avg", "/api/v1/cars/7/drives",
			`{"data":{"drives":[{"start_date":"x","odometer_details":{"odometer_distance":1},"speed_avg":null,"battery_details":{}}]}}`, "data.drives[0].speed_avg",
			func() error { _, err := client.Drives(ctx, 7); return err }),
		Entry("drive without odometer_details", "/api/v1/cars/7/drives",
			`{"data":{"drives":[{"start_date":"x","speed_avg":40,"battery_details":{}}]}}`, "data.drives[0].odometer_details",
			func() error { _, err := client.Drives(ctx, 7); return err }),
		Entry("drive with null distance", "/api/v1/cars/7/drives",
			`{"data":{"drives":[{"odometer_details":{"odometer_distance":null},"speed_avg":40,"battery_details":{}}]}}`, "data.drives[0].odometer_details.odometer_distance",
			func() error { _, err := client.Drives(ctx, 7); return err }),
	)
})
