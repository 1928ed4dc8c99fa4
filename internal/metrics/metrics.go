// Package metrics defines the Prometheus collectors of the dispatcher.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values of DispatchTotal.
const (
	OutcomeOK        = "ok"
	OutcomeHTTPError = "http_error"
	OutcomeError     = "error"
	OutcomeNoVehicle = "no_vehicle"
	OutcomeUnknown   = "unknown_command"
)

var (
	// Registry holds every collector of this package plus the Go runtime and process collectors.
	Registry = prometheus.NewRegistry()

	// DispatchTotal counts dispatches by action and outcome.
	DispatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "teslamate_query_dispatch_total",
			Help: "Total number of dispatched commands.",
		},
		[]string{"action", "outcome"},
	)

	// DispatchLatency records how long each dispatch spent rendering, API calls included.
	DispatchLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "teslamate_query_dispatch_latency_seconds",
			Help:    "Latency of dispatched commands, including TeslaMate API requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action"},
	)
)

func init() {
	Registry.MustRegister(DispatchTotal)
	Registry.MustRegister(DispatchLatency)
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// Handler serves Registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
