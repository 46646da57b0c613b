// Package metrics holds the Prometheus collectors for the decision session.
// They register on the default registry served by promhttp.Handler.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "arbiter"

// Comparison outcomes.
const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
)

// Evaluation verdicts.
const (
	VerdictConsistent   = "consistent"
	VerdictInconsistent = "inconsistent"
	VerdictError        = "error"
)

var (
	Comparisons = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comparisons_total",
		Help:      "Pairwise comparison updates by outcome.",
	}, []string{"outcome"})

	Evaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "evaluations_total",
		Help:      "AHP pipeline runs by consistency verdict.",
	}, []string{"verdict"})

	ConsistencyRatio = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "consistency_ratio",
		Help:      "Consistency ratio of the current comparison matrix.",
	})

	EvaluationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "evaluation_duration_seconds",
		Help:      "Time spent running one AHP evaluation.",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
	})
)
