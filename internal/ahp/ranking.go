package ahp

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// AlternativeAttributes maps alternative id to attribute key to value.
type AlternativeAttributes map[string]map[string]float64

// ScoredAlternative is one alternative with its weighted score.
type ScoredAlternative struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// Ranking is ordered by descending score. Equal scores keep input order.
type Ranking []ScoredAlternative

// Best returns the top-ranked alternative.
func (r Ranking) Best() (ScoredAlternative, bool) {
	if len(r) == 0 {
		return ScoredAlternative{}, false
	}
	return r[0], true
}

// RankAlternatives scores every alternative in order as Σ weights[i]*value(criteria[i])
// and sorts by descending score. Values are summed in their own units.
func RankAlternatives(weights WeightVector, criteria []Criterion, order []string, attrs AlternativeAttributes) (Ranking, error) {
	if len(weights) != len(criteria) {
		return nil, fmt.Errorf("%d weights for %d criteria: %w", len(weights), len(criteria), ErrDimensionMismatch)
	}

	ranking := make(Ranking, 0, len(order))
	for _, id := range order {
		values, ok := attrs[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAlternative, id)
		}
		row := make([]float64, len(criteria))
		for i, c := range criteria {
			v, ok := c.ValueIn(values)
			if !ok {
				return nil, &MissingAttributeError{Alternative: id, Criterion: c.Name}
			}
			row[i] = v
		}
		ranking = append(ranking, ScoredAlternative{ID: id, Score: floats.Dot(weights, row)})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Score > ranking[j].Score
	})
	return ranking, nil
}

// ValueIn returns the criterion's attribute from values, trying the exact key
// before a case-insensitive match.
func (c Criterion) ValueIn(values map[string]float64) (float64, bool) {
	return lookupAttribute(values, c.Key())
}

func lookupAttribute(values map[string]float64, key string) (float64, bool) {
	if v, ok := values[key]; ok {
		return v, true
	}
	for k, v := range values {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return 0, false
}
