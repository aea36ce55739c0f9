package conanrecipe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	evaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conanrecipe_evaluations_total",
			Help: "Total number of recipe evaluations by outcome",
		},
		[]string{"outcome"},
	)

	evaluationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conanrecipe_evaluation_errors_total",
			Help: "Total number of failed recipe evaluations by error kind",
		},
		[]string{"kind"},
	)

	evaluationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "conanrecipe_evaluation_duration_seconds",
			Help:    "Duration of a full recipe evaluation pass in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	exportsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "conanrecipe_exports_total",
			Help: "Total number of package info exports claimed",
		},
	)
)
