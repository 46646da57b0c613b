package events

const (
	SubjectComparisonUpdated      = "arbiter.comparison.updated"
	SubjectEvaluationCompleted    = "arbiter.evaluation.completed"
	SubjectEvaluationInconsistent = "arbiter.evaluation.inconsistent"

	StreamName     = "ARBITER_EVENTS"
	StreamSubjects = "arbiter.>"
	StreamMaxAge   = "168h" // 7 days
)
