package ahp

// Evaluation is the output of one pass through the AHP pipeline.
// Ranking and Best are empty when the matrix is inconsistent.
type Evaluation struct {
	Weights     WeightVector       `json:"weights"`
	Consistency ConsistencyReport  `json:"consistency"`
	Ranking     Ranking            `json:"ranking,omitempty"`
	Best        *ScoredAlternative `json:"best,omitempty"`
}

// Ranked reports whether the evaluation produced a ranking.
func (e Evaluation) Ranked() bool { return e.Ranking != nil }

// Evaluate derives weights, checks consistency and, only when the matrix is
// consistent, ranks the alternatives in order.
func Evaluate(m ComparisonMatrix, criteria []Criterion, order []string, attrs AlternativeAttributes, opts ...ConsistencyOption) (Evaluation, error) {
	weights, err := CalculateWeights(m)
	if err != nil {
		return Evaluation{}, err
	}
	report, err := CalculateConsistency(m, weights, opts...)
	if err != nil {
		return Evaluation{}, err
	}

	eval := Evaluation{Weights: weights, Consistency: report}
	if !report.IsConsistent {
		return eval, nil
	}

	ranking, err := RankAlternatives(weights, criteria, order, attrs)
	if err != nil {
		return Evaluation{}, err
	}
	eval.Ranking = ranking
	if best, ok := ranking.Best(); ok {
		eval.Best = &best
	}
	return eval, nil
}
