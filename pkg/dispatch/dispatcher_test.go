package dispatch_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jarcoal/httpmock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"

	"github.com/teslamate-tools/teslamate-query/internal/log"
	"github.com/teslamate-tools/teslamate-query/internal/metrics"
	"github.com/teslamate-tools/teslamate-query/mocks"
	"github.com/teslamate-tools/teslamate-query/pkg/dispatch"
	"github.com/teslamate-tools/teslamate-query/pkg/report"
	"github.com/teslamate-tools/teslamate-query/pkg/teslamate"
)

const vehicleID = 7

func vehicle(id int, name string) teslamate.Vehicle {
	return teslamate.Vehicle{
		CarID:       id,
		Name:        name,
		CarDetails:  &teslamate.CarDetails{Model: "3"},
		CarExterior: &teslamate.CarExterior{ExteriorColor: "White"},
	}
}

var _ = Describe("ParseAction", func() {
	DescribeTable("maps tokens to actions",
		func(token string, expected dispatch.Action) {
			Expect(dispatch.ParseAction(token)).To(Equal(expected))
		},
		Entry("help", "help", dispatch.ActionHelp),
		Entry("cars", "cars", dispatch.ActionCars),
		Entry("status", "status", dispatch.ActionStatus),
		Entry("charges", "charges", dispatch.ActionCharges),
		Entry("drives", "drives", dispatch.ActionDrives),
		Entry("battery", "battery", dispatch.ActionBattery),
		Entry("upper case", "STATUS", dispatch.ActionUnknown),
		Entry("mixed case", "Help", dispatch.ActionUnknown),
		Entry("padded", " cars", dispatch.ActionUnknown),
		Entry("empty", "", dispatch.ActionUnknown),
		Entry("other", "honk", dispatch.ActionUnknown),
	)

	It("round-trips every token", func() {
		for _, token := range dispatch.Tokens() {
			Expect(dispatch.ParseAction(token).String()).To(Equal(token))
		}
	})

	It("lists help last", func() {
		Expect(dispatch.Tokens()).To(Equal([]string{"cars", "status", "charges", "drives", "battery", "help"}))
	})

	It("marks per-vehicle actions", func() {
		Expect(dispatch.ActionCars.PerVehicle()).To(BeFalse())
		Expect(dispatch.ActionHelp.PerVehicle()).To(BeFalse())
		Expect(dispatch.ActionStatus.PerVehicle()).To(BeTrue())
		Expect(dispatch.ActionDrives.PerVehicle()).To(BeTrue())
		Expect(dispatch.ActionUnknown.PerVehicle()).To(BeFalse())
	})
})

var _ = Describe("Dispatcher", func() {
	var (
		ctrl    *gomock.Controller
		querier *mocks.Querier
		editor  *mocks.Editor
		d       *dispatch.Dispatcher
		ctx     context.Context
		logs    *bytes.Buffer
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		querier = mocks.NewQuerier(ctrl)
		editor = mocks.NewEditor(ctrl)
		d = dispatch.New(querier, nil, "")
		ctx = context.Background()

		logs = &bytes.Buffer{}
		log.SetOutput(zapcore.AddSync(logs))
		log.SetLevel(log.LevelError)
		DeferCleanup(func() {
			ctrl.Finish()
		})
	})

	// expectText asserts that dispatching token edits the message exactly once and returns the text.
	expectText := func(token string) string {
		var text string
		editor.EXPECT().Edit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s string) error {
			text = s
			return nil
		}).Times(1)
		Expect(d.Dispatch(ctx, editor, token)).To(Succeed())
		return text
	}

	Context("without queries", func() {
		It("renders help listing every token and the version", func() {
			text := expectText("help")
			for _, token := range []string{"cars", "status", "charges", "drives"} {
				Expect(text).To(ContainSubstring(dispatch.DefaultPrefix + " " + token))
			}
			Expect(text).To(ContainSubstring(teslamate.Version))
		})

		It("renders the unknown-command message", func() {
			text := expectText("reboot")
			Expect(text).To(Equal(report.Unknown(report.English, dispatch.DefaultPrefix)))
			Expect(logs.String()).To(BeEmpty())
		})

		It("matches case-sensitively", func() {
			Expect(expectText("CARS")).To(Equal(report.Unknown(report.English, dispatch.DefaultPrefix)))
		})
	})

	Context("cars", func() {
		It("renders the vehicle list", func() {
			querier.EXPECT().ListVehicles(gomock.Any()).Return([]teslamate.Vehicle{vehicle(1, "Blue"), vehicle(2, "Red")}, nil)
			text := expectText("cars")
			Expect(text).To(HavePrefix(report.English.VehiclesHeader))
			Expect(text).To(ContainSubstring("Name: Red"))
		})

		It("renders a status code failure", func() {
			querier.EXPECT().ListVehicles(gomock.Any()).Return(nil, &teslamate.HTTPError{Code: http.StatusUnauthorized})
			Expect(expectText("cars")).To(ContainSubstring("401"))
			Expect(logs.String()).To(BeEmpty())
		})

		It("logs unexpected failures", func() {
			querier.EXPECT().ListVehicles(gomock.Any()).Return(nil, &teslamate.QueryError{Kind: teslamate.KindDecode, Err: errors.New("bad json")})
			Expect(expectText("cars")).To(Equal(report.QueryFailed(report.English, report.ResourceVehicles)))
			Expect(logs.String()).To(ContainSubstring("bad json"))
		})
	})

	Context("per-vehicle actions", func() {
		DescribeTable("skip the per-vehicle query when the vehicle cannot be resolved",
			func(token string, err error) {
				querier.EXPECT().PrimaryVehicleID(gomock.Any()).Return(0, err)
				Expect(expectText(token)).To(Equal(report.English.NoVehicleID))
			},
			Entry("status, no vehicles", "status", teslamate.ErrNoVehicles),
			Entry("charges, no vehicles", "charges", teslamate.ErrNoVehicles),
			Entry("drives, no vehicles", "drives", teslamate.ErrNoVehicles),
			Entry("battery, no vehicles", "battery", teslamate.ErrNoVehicles),
			Entry("status, list failed", "status", &teslamate.HTTPError{Code: http.StatusBadGateway}),
			Entry("drives, transport failure", "drives", &teslamate.QueryError{Kind: teslamate.KindTransport, Err: errors.New("refused")}),
		)

		It("queries status for the primary vehicle", func() {
			status := &teslamate.VehicleStatus{
				DisplayName:     "Blue",
				State:           "asleep",
				CarStatus:       &teslamate.CarStatus{Locked: true},
				BatteryDetails:  &teslamate.BatteryDetails{BatteryLevel: "64"},
				ChargingDetails: &teslamate.ChargingDetails{},
				ClimateDetails:  &teslamate.ClimateDetails{},
				CarVersions:     &teslamate.CarVersions{},
			}
			gomock.InOrder(
				querier.EXPECT().PrimaryVehicleID(gomock.Any()).Return(vehicleID, nil),
				querier.EXPECT().Status(gomock.Any(), vehicleID).Return(status, nil),
			)
			text := expectText("status")
			Expect(text).To(Equal(report.Status(report.English, status)))
		})

		It("renders charges", func() {
			querier.EXPECT().PrimaryVehicleID(gomock.Any()).Return(vehicleID, nil)
			querier.EXPECT().Charges(gomock.Any(), vehicleID).Return([]teslamate.Charge{}, nil)
			Expect(expectText("charges")).To(Equal(report.English.NoCharges))
		})

		It("renders at most five drives", func() {
			distance, speed := 10.0, 30.0
			drives := make([]teslamate.Drive, 8)
			for i := range drives {
				drives[i] = teslamate.Drive{
					StartAddress:    fmt.Sprintf("address-%d", i),
					OdometerDetails: &teslamate.OdometerDetails{OdometerDistance: &distance},
					SpeedAvg:        &speed,
					BatteryDetails:  &teslamate.BatteryLevelChange{},
				}
			}
			querier.EXPECT().PrimaryVehicleID(gomock.Any()).Return(vehicleID, nil)
			querier.EXPECT().Drives(gomock.Any(), vehicleID).Return(drives, nil)
			text := expectText("drives")
			Expect(text).To(ContainSubstring("address-4"))
			Expect(text).NotTo(ContainSubstring("address-5"))
		})

		It("renders battery health", func() {
			querier.EXPECT().PrimaryVehicleID(gomock.Any()).Return(vehicleID, nil)
			querier.EXPECT().BatteryHealth(gomock.Any(), vehicleID).Return(&teslamate.BatteryHealth{BatteryHealthPercentage: "96.5"}, nil)
			Expect(expectText("battery")).To(ContainSubstring("96.5%"))
		})

		DescribeTable("embed the status code of a failed query",
			func(token string, code int) {
				err := &teslamate.HTTPError{Endpoint: "api/v1/cars/7", Code: code}
				querier.EXPECT().PrimaryVehicleID(gomock.Any()).Return(vehicleID, nil)
				querier.EXPECT().Status(gomock.Any(), vehicleID).Return(nil, err).MaxTimes(1)
				querier.EXPECT().Charges(gomock.Any(), vehicleID).Return(nil, err).MaxTimes(1)
				querier.EXPECT().Drives(gomock.Any(), vehicleID).Return(nil, err).MaxTimes(1)
				querier.EXPECT().BatteryHealth(gomock.Any(), vehicleID).Return(nil, err).MaxTimes(1)
				Expect(expectText(token)).To(ContainSubstring(fmt.Sprintf("%d", code)))
			},
			Entry("status", "status", http.StatusNotFound),
			Entry("charges", "charges", http.StatusInternalServerError),
			Entry("drives", "drives", http.StatusServiceUnavailable),
			Entry("battery", "battery", http.StatusNotFound),
		)
	})

	Context("editor", func() {
		It("returns the editor's error", func() {
			editor.EXPECT().Edit(gomock.Any(), gomock.Any()).Return(errors.New("message deleted"))
			Expect(d.Dispatch(ctx, editor, "help")).To(MatchError("message deleted"))
		})

		It("accepts plain functions", func() {
			var calls []string
			editorFunc := dispatch.EditorFunc(func(_ context.Context, text string) error {
				calls = append(calls, text)
				return nil
			})
			Expect(d.Dispatch(ctx, editorFunc, "nope")).To(Succeed())
			Expect(calls).To(HaveLen(1))
		})
	})

	Context("metrics", func() {
		count := func(action, outcome string) float64 {
			return testutil.ToFloat64(metrics.DispatchTotal.WithLabelValues(action, outcome))
		}

		It("counts dispatches by outcome", func() {
			unknown := count("unknown", metrics.OutcomeUnknown)
			noVehicle := count("charges", metrics.OutcomeNoVehicle)
			httpErrors := count("cars", metrics.OutcomeHTTPError)

			querier.EXPECT().PrimaryVehicleID(gomock.Any()).Return(0, teslamate.ErrNoVehicles)
			querier.EXPECT().ListVehicles(gomock.Any()).Return(nil, &teslamate.HTTPError{Code: http.StatusForbidden})
			Expect(d.Render(ctx, "nope")).NotTo(BeEmpty())
			Expect(d.Render(ctx, "charges")).NotTo(BeEmpty())
			Expect(d.Render(ctx, "cars")).NotTo(BeEmpty())

			Expect(count("unknown", metrics.OutcomeUnknown)).To(Equal(unknown + 1))
			Expect(count("charges", metrics.OutcomeNoVehicle)).To(Equal(noVehicle + 1))
			Expect(count("cars", metrics.OutcomeHTTPError)).To(Equal(httpErrors + 1))
		})
	})

	Context("with the TeslaMate client", func() {
		const baseURL = "https://teslamate.example.com"

		BeforeEach(func() {
			httpmock.Activate()
			DeferCleanup(httpmock.DeactivateAndReset)
			client, err := teslamate.New(teslamate.Config{BaseURL: baseURL})
			Expect(err).NotTo(HaveOccurred())
			d = dispatch.New(client, nil, "")
		})

		respond := func(path string, code int, body string) {
			httpmock.RegisterResponder(http.MethodGet, baseURL+path, httpmock.NewStringResponder(code, body))
		}

		DescribeTable("stop at a failed vehicle lookup",
			func(token string) {
				respond("/api/v1/cars", http.StatusBadGateway, "")
				Expect(expectText(token)).To(Equal(report.English.NoVehicleID))
				Expect(httpmock.GetTotalCallCount()).To(Equal(1))
			},
			Entry("status", "status"),
			Entry("charges", "charges"),
			Entry("drives", "drives"),
			Entry("battery", "battery"),
		)

		It("renders the generic failure for a status without car_status", func() {
			respond("/api/v1/cars", http.StatusOK, `{"data":{"cars":[{"car_id":1}]}}`)
			respond("/api/v1/cars/1/status", http.StatusOK, `{"data":{"status":{"display_name":"Blue"}}}`)
			Expect(expectText("status")).To(Equal(report.QueryFailed(report.English, report.ResourceStatus)))
			Expect(logs.String()).To(ContainSubstring("data.status.car_status"))
		})

		It("renders the generic failure for a drive without an average speed", func() {
			respond("/api/v1/cars", http.StatusOK, `{"data":{"cars":[{"car_id":1}]}}`)
			respond("/api/v1/cars/1/drives", http.StatusOK, `{"data":{"drives":[{"start_date":"x","speed_avg":null}]}}`)
			text := expectText("drives")
			Expect(text).To(Equal(report.QueryFailed(report.English, report.ResourceDrives)))
			Expect(text).NotTo(ContainSubstring("0.00"))
		})

		It("renders a complete status", func() {
			respond("/api/v1/cars", http.StatusOK, `{"data":{"cars":[{"car_id":1}]}}`)
			respond("/api/v1/cars/1/status", http.StatusOK, `{"data":{"status":{"display_name":"Blue",
				"car_status":{"locked":true},"battery_details":{"battery_level":71},"charging_details":{},
				"climate_details":{},"car_versions":{"version":"2024.8.7"}}}}`)
			text := expectText("status")
			Expect(text).To(ContainSubstring("Locked: yes"))
			Expect(text).To(ContainSubstring("Level: 71%"))
		})
	})

	Context("catalogs", func() {
		It("renders messages in the configured language", func() {
			d = dispatch.New(querier, report.Chinese, "/car")
			querier.EXPECT().PrimaryVehicleID(gomock.Any()).Return(0, teslamate.ErrNoVehicles)
			Expect(expectText("status")).To(Equal("无法获取车辆ID"))
			Expect(expectText("x")).To(ContainSubstring("/car help"))
		})
	})
})
