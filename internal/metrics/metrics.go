// Package metrics provides Prometheus metric collection for the
// cross-service coordination paths.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface the checker and coordinator record through.
type Recorder interface {
	RecordCheck(service string, verdict string)
	RecordProvision(outcome string)
	RecordCompensation()
}

// Collector collects Prometheus metrics for cross-service calls.
type Collector struct {
	checks        *prometheus.CounterVec
	provisions    *prometheus.CounterVec
	compensations prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with the given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hospital_remote_checks_total",
			Help: "Remote existence checks by target service and verdict",
		}, []string{"service", "verdict"}),
		provisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hospital_provisions_total",
			Help: "Account provisioning attempts by terminal outcome",
		}, []string{"outcome"}),
		compensations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hospital_compensating_deletes_total",
			Help: "Compensating account deletes issued by the coordinator",
		}),
	}

	reg.MustRegister(
		c.checks,
		c.provisions,
		c.compensations,
	)

	return c
}

// RecordCheck records the verdict of one remote existence check.
func (c *Collector) RecordCheck(service string, verdict string) {
	c.checks.WithLabelValues(service, verdict).Inc()
}

// RecordProvision records the terminal outcome of one provisioning request.
func (c *Collector) RecordProvision(outcome string) {
	c.provisions.WithLabelValues(outcome).Inc()
}

// RecordCompensation records a compensating delete.
func (c *Collector) RecordCompensation() {
	c.compensations.Inc()
}

// Handler returns the HTTP handler serving the Prometheus scrape endpoint.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
