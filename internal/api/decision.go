package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/montanaflynn/stats"

	"github.com/MikeSquared-Agency/Arbiter/internal/ahp"
	"github.com/MikeSquared-Agency/Arbiter/internal/decision"
)

type DecisionHandler struct {
	session *decision.Session
}

func NewDecisionHandler(s *decision.Session) *DecisionHandler {
	return &DecisionHandler{session: s}
}

// CompareRequest addresses a cell by index, or by criterion name when both
// names are set.
type CompareRequest struct {
	Row     *int    `json:"row,omitempty"`
	Col     *int    `json:"col,omitempty"`
	RowName string  `json:"row_name,omitempty"`
	ColName string  `json:"col_name,omitempty"`
	Value   float64 `json:"value"`
}

type EvaluateRequest struct {
	Matrix [][]float64 `json:"matrix"`
}

// ResultResponse adds the 2 dp display values the UI renders.
type ResultResponse struct {
	decision.Result
	WeightsDisplay          []float64 `json:"weights_display"`
	ConsistencyRatioDisplay float64   `json:"consistency_ratio_display"`
}

func newResultResponse(r decision.Result) ResultResponse {
	display := make([]float64, len(r.Weights))
	for i, w := range r.Weights {
		display[i] = round2(w)
	}
	return ResultResponse{
		Result:                  r,
		WeightsDisplay:          display,
		ConsistencyRatioDisplay: round2(r.Consistency.ConsistencyRatio),
	}
}

func (h *DecisionHandler) Criteria(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Catalog().Criteria)
}

func (h *DecisionHandler) Alternatives(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session.Catalog().Alternatives)
}

func (h *DecisionHandler) Scale(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ahp.Scale)
}

func (h *DecisionHandler) Matrix(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"criteria": h.session.Catalog().Criteria,
		"matrix":   h.session.Matrix().Rows(),
	})
}

func (h *DecisionHandler) Result(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newResultResponse(h.session.Result()))
}

func (h *DecisionHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	var (
		res decision.Result
		err error
	)
	switch {
	case req.RowName != "" && req.ColName != "":
		res, err = h.session.CompareByName(req.RowName, req.ColName, req.Value)
	case req.Row != nil && req.Col != nil:
		res, err = h.session.Compare(*req.Row, *req.Col, req.Value)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "row and col (or row_name and col_name) required"})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newResultResponse(res))
}

func (h *DecisionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	res, err := h.session.Reset()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newResultResponse(res))
}

func (h *DecisionHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Matrix) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "matrix required"})
		return
	}
	eval, err := h.session.Evaluate(req.Matrix)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eval)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ahp.ErrUnsupportedCriteriaCount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ahp.ErrInvalidComparison),
		errors.Is(err, ahp.ErrDimensionMismatch),
		errors.Is(err, ahp.ErrCorruptMatrix):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": "encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func round2(v float64) float64 {
	r, err := stats.Round(v, 2)
	if err != nil || math.IsInf(r, 0) {
		return v
	}
	return r
}
