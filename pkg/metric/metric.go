// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all service metrics on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// Plan generation metrics
	PlansGenerated prometheus.Counter
	PlanFailures   *prometheus.CounterVec
	TacticsFired   *prometheus.CounterVec
	PlanDuration   prometheus.Histogram

	// API metrics
	RequestsProcessed *prometheus.CounterVec
}

// NewMetrics creates the metrics set on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		PlansGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "yieldplan",
			Name:      "plans_generated_total",
			Help:      "Total number of plans generated",
		}),
		PlanFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yieldplan",
			Name:      "plan_failures_total",
			Help:      "Total number of failed plan requests by reason",
		}, []string{"reason"}),
		TacticsFired: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yieldplan",
			Name:      "tactics_fired_total",
			Help:      "Total number of tactic firings by tactic id",
		}, []string{"tactic"}),
		PlanDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "yieldplan",
			Name:      "plan_duration_seconds",
			Help:      "Time to build one plan",
			Buckets:   prometheus.DefBuckets,
		}),
		RequestsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yieldplan",
			Name:      "api_requests_processed_total",
			Help:      "Total number of API requests processed",
		}, []string{"method", "status"}),
	}
}

// Gatherer returns the prometheus gatherer for metrics export.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// Registerer returns the prometheus registerer.
func (m *Metrics) Registerer() prometheus.Registerer {
	return m.registry
}
