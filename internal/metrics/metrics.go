// Package metrics defines the Prometheus collectors for the trip planner.
//
// Each Metrics owns its own registry so tests can build as many as they like
// without colliding on the global default registerer.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tripplanner"

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	TripsCreated      prometheus.Counter
	ActivitiesAdded   prometheus.Counter
	ActivitiesRemoved prometheus.Counter
	RejectedInputs    *prometheus.CounterVec
	HTTPRequests      *prometheus.CounterVec
}

// New creates the collectors and registers them, plus the Go runtime and
// process collectors, on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		TripsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trips_created_total",
			Help:      "Trips created from a finalized selection.",
		}),
		ActivitiesAdded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activities_added_total",
			Help:      "Activities added to trip days.",
		}),
		ActivitiesRemoved: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activities_removed_total",
			Help:      "Activities removed from trip days.",
		}),
		RejectedInputs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_inputs_total",
			Help:      "Inputs dropped as no-ops, by operation.",
		}, []string{"operation"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method and status code.",
		}, []string{"method", "status"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// TripCreated counts one created trip.
func (m *Metrics) TripCreated() {
	if m != nil {
		m.TripsCreated.Inc()
	}
}

// ActivityAdded counts one added activity.
func (m *Metrics) ActivityAdded() {
	if m != nil {
		m.ActivitiesAdded.Inc()
	}
}

// ActivityRemoved counts one removed activity.
func (m *Metrics) ActivityRemoved() {
	if m != nil {
		m.ActivitiesRemoved.Inc()
	}
}

// Rejected counts an input that was dropped for operation.
func (m *Metrics) Rejected(operation string) {
	if m != nil {
		m.RejectedInputs.WithLabelValues(operation).Inc()
	}
}

// RequestServed counts one HTTP response.
func (m *Metrics) RequestServed(method string, status int) {
	if m != nil {
		m.HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	}
}
