// Package decision runs the AHP pipeline against one live comparison matrix.
package decision

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Arbiter/internal/ahp"
	"github.com/MikeSquared-Agency/Arbiter/internal/catalog"
	"github.com/MikeSquared-Agency/Arbiter/internal/events"
	"github.com/MikeSquared-Agency/Arbiter/internal/metrics"
)

// InconsistentWarning is surfaced while the matrix fails the consistency check.
const InconsistentWarning = "Pairwise comparison matrix is inconsistent. Please review your comparisons."

// Result is the visible state after the latest evaluation. Weights and
// Consistency always describe the current matrix; Ranking and Best come from
// the last consistent evaluation and Stale is set when they are carried over.
type Result struct {
	ID          uuid.UUID              `json:"evaluation_id"`
	Criteria    []ahp.Criterion        `json:"criteria"`
	Matrix      [][]float64            `json:"matrix"`
	Weights     ahp.WeightVector       `json:"weights"`
	Consistency ahp.ConsistencyReport  `json:"consistency"`
	Ranking     ahp.Ranking            `json:"ranking,omitempty"`
	Best        *ahp.ScoredAlternative `json:"best,omitempty"`
	Stale       bool                   `json:"stale"`
	Warning     string                 `json:"warning,omitempty"`
	EvaluatedAt time.Time              `json:"evaluated_at"`
}

// Options tune a Session.
type Options struct {
	// Threshold overrides ahp.DefaultThreshold when positive.
	Threshold float64
	// RandomIndex supplies the RI for catalogs with more criteria than
	// ahp.MaxTabulatedCriteria. Smaller catalogs always use the built-in table.
	RandomIndex float64
	Events      events.Client
	Logger      *slog.Logger
}

// Session owns the comparison matrix for one catalog. Every accepted update
// reruns the pipeline; readers never observe a half-applied update.
type Session struct {
	catalog *catalog.Catalog
	order   []string
	attrs   ahp.AlternativeAttributes
	opts    []ahp.ConsistencyOption
	events  events.Client
	logger  *slog.Logger

	mu     sync.RWMutex
	matrix ahp.ComparisonMatrix
	result Result
}

// NewSession builds a session on the default matrix and evaluates it once.
func NewSession(c *catalog.Catalog, o Options) (*Session, error) {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		catalog: c,
		order:   c.IDs(),
		attrs:   c.Attributes(),
		events:  o.Events,
		logger:  logger,
	}
	if o.Threshold > 0 {
		s.opts = append(s.opts, ahp.WithThreshold(o.Threshold))
	}
	if n := len(c.Criteria); n > ahp.MaxTabulatedCriteria {
		if o.RandomIndex <= 0 {
			return nil, fmt.Errorf("catalog has %d criteria, set consistency.random_index: %w",
				n, &ahp.UnsupportedCriteriaCountError{N: n})
		}
		s.opts = append(s.opts, ahp.WithRandomIndex(o.RandomIndex))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.resetLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

// Catalog returns the catalog the session ranks.
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// Matrix returns the current matrix.
func (s *Session) Matrix() ahp.ComparisonMatrix {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matrix
}

// Result returns the latest visible result.
func (s *Session) Result() Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// Compare applies matrix[row][col]=value (and its reciprocal) and reevaluates.
// A rejected update leaves the session exactly as it was.
func (s *Session) Compare(row, col int, value float64) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.matrix.Update(row, col, value)
	if err != nil {
		metrics.Comparisons.WithLabelValues(metrics.OutcomeRejected).Inc()
		return Result{}, err
	}
	res, err := s.evaluateLocked(next, s.result)
	if err != nil {
		metrics.Comparisons.WithLabelValues(metrics.OutcomeRejected).Inc()
		return Result{}, err
	}
	s.matrix = next
	s.result = res
	metrics.Comparisons.WithLabelValues(metrics.OutcomeApplied).Inc()
	s.publish(events.SubjectComparisonUpdated, events.ComparisonUpdatedEvent{Row: row, Col: col, Value: value})
	s.announce(res)
	return res, nil
}

// CompareByName resolves criteria by name (case-insensitive) and calls Compare.
func (s *Session) CompareByName(rowName, colName string, value float64) (Result, error) {
	row, ok := s.catalog.CriterionIndex(rowName)
	if !ok {
		return Result{}, &ahp.InvalidComparisonError{Row: -1, Col: -1, Value: value, Reason: fmt.Sprintf("unknown criterion %q", rowName)}
	}
	col, ok := s.catalog.CriterionIndex(colName)
	if !ok {
		return Result{}, &ahp.InvalidComparisonError{Row: row, Col: -1, Value: value, Reason: fmt.Sprintf("unknown criterion %q", colName)}
	}
	return s.Compare(row, col, value)
}

// Reset restores the all-ones matrix and clears any carried-over ranking.
func (s *Session) Reset() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.resetLocked(); err != nil {
		return Result{}, err
	}
	return s.result, nil
}

func (s *Session) resetLocked() error {
	m := ahp.NewComparisonMatrix(s.catalog.Criteria)
	res, err := s.evaluateLocked(m, Result{})
	if err != nil {
		return fmt.Errorf("evaluate default matrix: %w", err)
	}
	s.matrix = m
	s.result = res
	s.announce(res)
	return nil
}

// Evaluate runs the pipeline on caller-supplied rows against the session
// catalog without touching session state.
func (s *Session) Evaluate(rows [][]float64) (ahp.Evaluation, error) {
	m, err := ahp.FromRows(rows)
	if err != nil {
		return ahp.Evaluation{}, err
	}
	if m.Size() != len(s.catalog.Criteria) {
		return ahp.Evaluation{}, fmt.Errorf("matrix is %dx%d for %d criteria: %w",
			m.Size(), m.Size(), len(s.catalog.Criteria), ahp.ErrDimensionMismatch)
	}
	return ahp.Evaluate(m, s.catalog.Criteria, s.order, s.attrs, s.opts...)
}

// evaluateLocked runs the pipeline for m and builds the next Result, carrying
// prev's ranking over when m is inconsistent. Caller holds s.mu.
func (s *Session) evaluateLocked(m ahp.ComparisonMatrix, prev Result) (Result, error) {
	start := time.Now()
	eval, err := ahp.Evaluate(m, s.catalog.Criteria, s.order, s.attrs, s.opts...)
	metrics.EvaluationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.Evaluations.WithLabelValues(metrics.VerdictError).Inc()
		s.logger.Error("evaluation failed", "error", err)
		return Result{}, err
	}

	res := Result{
		ID:          uuid.New(),
		Criteria:    s.catalog.Criteria,
		Matrix:      m.Rows(),
		Weights:     eval.Weights,
		Consistency: eval.Consistency,
		EvaluatedAt: time.Now().UTC(),
	}
	metrics.ConsistencyRatio.Set(eval.Consistency.ConsistencyRatio)

	if eval.Ranked() {
		res.Ranking = eval.Ranking
		res.Best = eval.Best
		metrics.Evaluations.WithLabelValues(metrics.VerdictConsistent).Inc()
		s.logger.Info("evaluation completed",
			"evaluation_id", res.ID,
			"consistency_ratio", eval.Consistency.ConsistencyRatio,
			"best", bestID(res.Best),
		)
		return res, nil
	}

	res.Ranking = prev.Ranking
	res.Best = prev.Best
	res.Stale = res.Ranking != nil
	res.Warning = InconsistentWarning
	metrics.Evaluations.WithLabelValues(metrics.VerdictInconsistent).Inc()
	s.logger.Warn(InconsistentWarning,
		"evaluation_id", res.ID,
		"consistency_ratio", eval.Consistency.ConsistencyRatio,
		"stale_ranking", res.Stale,
	)
	return res, nil
}

func (s *Session) announce(r Result) {
	subject := events.SubjectEvaluationCompleted
	if !r.Consistency.IsConsistent {
		subject = events.SubjectEvaluationInconsistent
	}
	s.publish(subject, evaluationEvent(r))
}

func (s *Session) publish(subject string, data interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(subject, data); err != nil {
		s.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

func evaluationEvent(r Result) events.EvaluationEvent {
	ev := events.EvaluationEvent{
		EvaluationID:     r.ID.String(),
		Weights:          r.Weights,
		ConsistencyRatio: r.Consistency.ConsistencyRatio,
		IsConsistent:     r.Consistency.IsConsistent,
		Timestamp:        r.EvaluatedAt,
	}
	if r.Consistency.IsConsistent {
		ev.Best = bestID(r.Best)
	}
	return ev
}

func bestID(b *ahp.ScoredAlternative) string {
	if b == nil {
		return ""
	}
	return b.ID
}
