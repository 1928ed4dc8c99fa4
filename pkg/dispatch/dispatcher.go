package dispatch

import (
	"context"
	"errors"
	"time"

	"github.com/teslamate-tools/teslamate-query/internal/log"
	"github.com/teslamate-tools/teslamate-query/internal/metrics"
	"github.com/teslamate-tools/teslamate-query/pkg/report"
	"github.com/teslamate-tools/teslamate-query/pkg/teslamate"
)

//go:generate mockgen -package mocks -destination ../../mocks/dispatch.go -mock_names Querier=Querier,Editor=Editor github.com/teslamate-tools/teslamate-query/pkg/dispatch Querier,Editor

const (
	// CommandName is the name under which hosts register the dispatcher.
	CommandName = "tesla"
	// CommandDescription is the one-line description hosts show in their command list.
	CommandDescription = "TeslaMate API query (use `tesla help` for all commands)"
	// CommandParameters is the parameter hint hosts show next to CommandName.
	CommandParameters = "<command>"
)

// DefaultPrefix is how users invoke the command in chat, used in help and unknown-command text.
const DefaultPrefix = "/" + CommandName

// Querier is the read-only telemetry API. *teslamate.Client implements it.
type Querier interface {
	ListVehicles(ctx context.Context) ([]teslamate.Vehicle, error)
	PrimaryVehicleID(ctx context.Context) (int, error)
	Status(ctx context.Context, id int) (*teslamate.VehicleStatus, error)
	Charges(ctx context.Context, id int) ([]teslamate.Charge, error)
	Drives(ctx context.Context, id int) ([]teslamate.Drive, error)
	BatteryHealth(ctx context.Context, id int) (*teslamate.BatteryHealth, error)
}

// Editor replaces the text of the message that triggered a dispatch.
type Editor interface {
	Edit(ctx context.Context, text string) error
}

// EditorFunc adapts a function to the Editor interface.
type EditorFunc func(ctx context.Context, text string) error

func (f EditorFunc) Edit(ctx context.Context, text string) error {
	return f(ctx, text)
}

// Dispatcher turns command tokens into display text. It holds no per-dispatch state and may be
// shared between goroutines if its Querier may.
type Dispatcher struct {
	querier Querier
	catalog *report.Catalog
	prefix  string
}

// New returns a Dispatcher that queries q and renders text using catalog. A nil catalog selects
// report.English; an empty prefix selects DefaultPrefix.
func New(q Querier, catalog *report.Catalog, prefix string) *Dispatcher {
	if catalog == nil {
		catalog = report.English
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Dispatcher{querier: q, catalog: catalog, prefix: prefix}
}

// Dispatch renders token and hands the result to editor. Edit is called exactly once; its error is
// the only one Dispatch returns.
func (d *Dispatcher) Dispatch(ctx context.Context, editor Editor, token string) error {
	return editor.Edit(ctx, d.Render(ctx, token))
}

// Render executes the action named by token and returns the text to display. Query failures are
// rendered rather than returned.
func (d *Dispatcher) Render(ctx context.Context, token string) string {
	action := ParseAction(token)
	start := time.Now()
	text, outcome := d.render(ctx, action)
	metrics.DispatchTotal.WithLabelValues(action.String(), outcome).Inc()
	metrics.DispatchLatency.WithLabelValues(action.String()).Observe(time.Since(start).Seconds())
	return text
}

func (d *Dispatcher) render(ctx context.Context, action Action) (string, string) {
	switch action {
	case ActionUnknown:
		return report.Unknown(d.catalog, d.prefix), metrics.OutcomeUnknown
	case ActionHelp:
		return report.Help(d.catalog, d.prefix, teslamate.Version, Tokens()), metrics.OutcomeOK
	case ActionCars:
		cars, err := d.querier.ListVehicles(ctx)
		if err != nil {
			return d.failure(report.ResourceVehicles, err)
		}
		return report.Vehicles(d.catalog, cars), metrics.OutcomeOK
	}

	id, err := d.querier.PrimaryVehicleID(ctx)
	if err != nil {
		if teslamate.IsUnexpected(err) {
			log.Error("Failed to resolve vehicle ID: %s", err)
		} else if !errors.Is(err, teslamate.ErrNoVehicles) {
			log.Warning("Failed to resolve vehicle ID: %s", err)
		}
		return d.catalog.NoVehicleID, metrics.OutcomeNoVehicle
	}
	log.Debug("Running %s for vehicle %d", action, id)

	resource := commands[action].resource
	switch action {
	case ActionStatus:
		status, err := d.querier.Status(ctx, id)
		if err != nil {
			return d.failure(resource, err)
		}
		return report.Status(d.catalog, status), metrics.OutcomeOK
	case ActionCharges:
		charges, err := d.querier.Charges(ctx, id)
		if err != nil {
			return d.failure(resource, err)
		}
		return report.Charges(d.catalog, charges), metrics.OutcomeOK
	case ActionDrives:
		drives, err := d.querier.Drives(ctx, id)
		if err != nil {
			return d.failure(resource, err)
		}
		return report.Drives(d.catalog, drives), metrics.OutcomeOK
	case ActionBattery:
		health, err := d.querier.BatteryHealth(ctx, id)
		if err != nil {
			return d.failure(resource, err)
		}
		return report.BatteryHealth(d.catalog, health), metrics.OutcomeOK
	}
	return report.Unknown(d.catalog, d.prefix), metrics.OutcomeUnknown
}

// failure renders err. Non-200 responses show their status code; anything else is logged and shown
// as a generic message.
func (d *Dispatcher) failure(resource report.Resource, err error) (string, string) {
	if code, ok := teslamate.StatusCode(err); ok {
		log.Warning("%s", err)
		return report.StatusFailed(d.catalog, resource, code), metrics.OutcomeHTTPError
	}
	log.Error("Error fetching %s: %s", report.English.ResourceName(resource), err)
	return report.QueryFailed(d.catalog, resource), metrics.OutcomeError
}
