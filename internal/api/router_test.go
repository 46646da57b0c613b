package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Arbiter/internal/ahp"
	"github.com/MikeSquared-Agency/Arbiter/internal/catalog"
	"github.com/MikeSquared-Agency/Arbiter/internal/decision"
)

func setupTestRouter(t *testing.T) (http.Handler, *decision.Session) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := decision.NewSession(catalog.Default(), decision.Options{Logger: logger})
	require.NoError(t, err)
	return NewRouter(s, RouterOptions{AdminToken: "test-token"}, logger), s
}

func do(t *testing.T, h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestGetCriteria(t *testing.T) {
	router, _ := setupTestRouter(t)
	w := do(t, router, "GET", "/api/v1/criteria", "")
	require.Equal(t, http.StatusOK, w.Code)

	var criteria []ahp.Criterion
	require.NoError(t, json.NewDecoder(w.Body).Decode(&criteria))
	require.Len(t, criteria, 5)
	assert.Equal(t, "CPU Frequency", criteria[2].Name)
}

func TestGetAlternativesAndScale(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := do(t, router, "GET", "/api/v1/alternatives", "")
	require.Equal(t, http.StatusOK, w.Code)
	var alts []catalog.Alternative
	require.NoError(t, json.NewDecoder(w.Body).Decode(&alts))
	assert.Len(t, alts, 11)

	w = do(t, router, "GET", "/api/v1/scale", "")
	require.Equal(t, http.StatusOK, w.Code)
	var scale []ahp.ScaleEntry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&scale))
	require.Len(t, scale, 9)
	assert.Equal(t, 1, scale[0].Value)
	assert.Equal(t, 9, scale[8].Value)
}

func TestGetMatrix(t *testing.T) {
	router, _ := setupTestRouter(t)
	w := do(t, router, "GET", "/api/v1/matrix", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Matrix [][]float64 `json:"matrix"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Len(t, body.Matrix, 5)
	for _, row := range body.Matrix {
		for _, v := range row {
			assert.Equal(t, 1.0, v)
		}
	}
}

func TestGetResultDisplayValues(t *testing.T) {
	router, _ := setupTestRouter(t)
	w := do(t, router, "GET", "/api/v1/result", "")
	require.Equal(t, http.StatusOK, w.Code)

	var res ResultResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Equal(t, []float64{0.2, 0.2, 0.2, 0.2, 0.2}, res.WeightsDisplay)
	assert.Equal(t, 0.0, res.ConsistencyRatioDisplay)
	require.NotNil(t, res.Best)
	assert.Equal(t, "Motorola razr+", res.Best.ID)
	assert.False(t, res.Stale)
}

func TestCompareByIndex(t *testing.T) {
	router, s := setupTestRouter(t)
	w := do(t, router, "PUT", "/api/v1/matrix/comparisons", `{"row":0,"col":1,"value":2}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res ResultResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.True(t, res.Consistency.IsConsistent)
	assert.Equal(t, 0.03, res.ConsistencyRatioDisplay)
	assert.Equal(t, 0.5, s.Matrix().At(1, 0))
}

func TestCompareByName(t *testing.T) {
	router, s := setupTestRouter(t)
	w := do(t, router, "PUT", "/api/v1/matrix/comparisons", `{"row_name":"Price","col_name":"Brand","value":3}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 3.0, s.Matrix().At(3, 4))
}

func TestCompareInconsistentReturnsWarning(t *testing.T) {
	router, _ := setupTestRouter(t)
	w := do(t, router, "PUT", "/api/v1/matrix/comparisons", `{"row":0,"col":1,"value":9}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res ResultResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.False(t, res.Consistency.IsConsistent)
	assert.True(t, res.Stale)
	assert.Equal(t, decision.InconsistentWarning, res.Warning)
	assert.Len(t, res.Ranking, 11)
}

func TestCompareRejects(t *testing.T) {
	router, s := setupTestRouter(t)
	before := s.Matrix().Rows()

	tests := []struct {
		name string
		body string
	}{
		{"diagonal", `{"row":2,"col":2,"value":3}`},
		{"zero", `{"row":0,"col":1,"value":0}`},
		{"negative", `{"row":0,"col":1,"value":-1}`},
		{"out of range", `{"row":0,"col":9,"value":3}`},
		{"unknown name", `{"row_name":"Battery","col_name":"Price","value":3}`},
		{"no cell", `{"value":3}`},
		{"bad json", `{"row":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, "PUT", "/api/v1/matrix/comparisons", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
	assert.Equal(t, before, s.Matrix().Rows())
}

func TestCompareRejectsOverflowingColumn(t *testing.T) {
	router, s := setupTestRouter(t)

	w := do(t, router, "PUT", "/api/v1/matrix/comparisons", `{"row":0,"col":2,"value":1e308}`)
	require.Equal(t, http.StatusOK, w.Code)
	var res ResultResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res), "extreme but finite result must encode")
	assert.False(t, res.Consistency.IsConsistent)

	w = do(t, router, "PUT", "/api/v1/matrix/comparisons", `{"row":1,"col":2,"value":1e308}`)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, 1.0, s.Matrix().At(1, 2))

	w = do(t, router, "GET", "/api/v1/result", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Equal(t, 1e308, res.Matrix[0][2])
}

func TestWriteJSONUnencodableValue(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSON(w, http.StatusOK, map[string]float64{"ratio": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Contains(t, body["error"], "encode response")
}

func TestRound2KeepsHugeValues(t *testing.T) {
	assert.Equal(t, 0.03, round2(0.03199))
	assert.Equal(t, 7.8e306, round2(7.8e306))
}

func TestResetRequiresAdminToken(t *testing.T) {
	router, s := setupTestRouter(t)
	_, err := s.Compare(0, 1, 4)
	require.NoError(t, err)

	w := do(t, router, "POST", "/api/v1/matrix/reset", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 4.0, s.Matrix().At(0, 1))

	w = do(t, router, "POST", "/api/v1/matrix/reset", "", "Authorization", "Bearer test-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1.0, s.Matrix().At(0, 1))
}

func TestEvaluateEndpoint(t *testing.T) {
	router, s := setupTestRouter(t)
	before := s.Result().ID

	rows := ahp.NewComparisonMatrix(s.Catalog().Criteria).Rows()
	rows[0][3], rows[3][0] = 3, 1.0/3
	payload, err := json.Marshal(EvaluateRequest{Matrix: rows})
	require.NoError(t, err)

	w := do(t, router, "POST", "/api/v1/evaluate", string(payload))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var eval ahp.Evaluation
	require.NoError(t, json.NewDecoder(w.Body).Decode(&eval))
	assert.InDelta(t, 1.0, eval.Weights.Sum(), 1e-9)
	assert.Equal(t, before, s.Result().ID, "evaluate must not touch the session")
}

func TestEvaluateRejects(t *testing.T) {
	router, _ := setupTestRouter(t)
	tests := []struct {
		name string
		body string
	}{
		{"empty", `{"matrix":[]}`},
		{"wrong size", `{"matrix":[[1,2],[0.5,1]]}`},
		{"not reciprocal", `{"matrix":[[1,2,1,1,1],[2,1,1,1,1],[1,1,1,1,1],[1,1,1,1,1],[1,1,1,1,1]]}`},
		{"ragged", `{"matrix":[[1,2],[0.5]]}`},
		{"bad json", `matrix`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, "POST", "/api/v1/evaluate", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&ahp.UnsupportedCriteriaCountError{N: 10}, http.StatusUnprocessableEntity},
		{fmt.Errorf("wrapped: %w", &ahp.UnsupportedCriteriaCountError{N: 12}), http.StatusUnprocessableEntity},
		{&ahp.InvalidComparisonError{Row: 1, Col: 1, Value: 3, Reason: "diagonal"}, http.StatusBadRequest},
		{ahp.ErrDimensionMismatch, http.StatusBadRequest},
		{&ahp.MissingAttributeError{Alternative: "A", Criterion: "Price"}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestMetricsRouter(t *testing.T) {
	router := NewMetricsRouter()

	w := do(t, router, "GET", "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, router, "GET", "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
