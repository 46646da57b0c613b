package events

import "time"

type ComparisonUpdatedEvent struct {
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	Value float64 `json:"value"`
}

// EvaluationEvent is published after every pipeline run. Best is empty when
// the run was inconsistent and the ranking was withheld.
type EvaluationEvent struct {
	EvaluationID     string    `json:"evaluation_id"`
	Weights          []float64 `json:"weights"`
	ConsistencyRatio float64   `json:"consistency_ratio"`
	IsConsistent     bool      `json:"is_consistent"`
	Best             string    `json:"best,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}
