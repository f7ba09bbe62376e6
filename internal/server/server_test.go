package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg, err := config.NewInputParser().DefaultTaxConfiguration(config.DefaultFiscalYear)
	require.NoError(t, err)
	return New(cfg, Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil)), Debug: true})
}

func do(t *testing.T, s *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

const salaryBody = `{"employment_periods": [{"employer": "Acme", "gross_salary": 800000}]}`

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","fiscal_year":"2025-26"}`, w.Body.String())
}

func TestCalculate_OldRegime(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/v1/calculate", `{"regime":"Old","profile":`+salaryBody+`}`, nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "old", resp["regime"])
	assert.Equal(t, "65000", resp["final_tax"])
	assert.NotEmpty(t, resp["log"])
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestCalculate_Errors(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name string
		body string
		code string
	}{
		{"malformed json", `{"regime":`, codeInvalidRequest},
		{"missing regime", `{"profile":{}}`, codeInvalidRequest},
		{"unknown regime", `{"regime":"flat","profile":{}}`, codeUnknownRegime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/v1/calculate", tt.body, map[string]string{requestIDHeader: "req-123"})

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, "req-123", resp.RequestID)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestCompare(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/v1/compare", `{"profile":`+salaryBody+`}`, nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "new", resp["recommended"])
	assert.Equal(t, "65000", resp["savings"])
	assert.NotEmpty(t, resp["recommendations"])
}

func TestWhatIf(t *testing.T) {
	s := newTestServer(t)

	body := `{"profile":` + salaryBody + `,"transforms":["add_nps:amount=50000"],"templates":["max_80c"]}`
	w := do(t, s, http.MethodPost, "/v1/whatif", body, nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp WhatIfResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Changes, 2)
	assert.Equal(t, "65000", resp.Before.Old.FinalTax.String())
	assert.True(t, resp.After.Old.FinalTax.LessThan(resp.Before.Old.FinalTax))
	assert.True(t, resp.After.New.FinalTax.IsZero())
}

func TestWhatIf_Errors(t *testing.T) {
	s := newTestServer(t)
	for _, body := range []string{
		`{"profile":{},"transforms":["nope"]}`,
		`{"profile":{},"templates":["nope"]}`,
		`{"profile":{},"transforms":["add_nps:amount=0"]}`,
	} {
		w := do(t, s, http.MethodPost, "/v1/whatif", body, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, codeTransform, resp.Code)
	}
}

func TestBreakEven(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/v1/breakeven", `{"profile":`+salaryBody+`}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var all map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all["results"], 5)

	w = do(t, s, http.MethodPost, "/v1/breakeven", `{"lever":"donation","profile":`+salaryBody+`}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var one map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &one))
	assert.Equal(t, true, one["success"])

	w = do(t, s, http.MethodPost, "/v1/breakeven", `{"lever":"gold","profile":{}}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodPost, "/v1/compare", `{"profile":`+salaryBody+`}`, nil)
	do(t, s, http.MethodGet, "/nowhere", "", nil)

	w := do(t, s, http.MethodGet, "/metrics", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `taxgo_http_requests_total{route="/v1/compare",status="200"} 1`)
	assert.Contains(t, body, `taxgo_http_requests_total{route="unmatched",status="404"} 1`)
	assert.Contains(t, body, `taxgo_engine_calculations_total{regime="old"} 1`)
	assert.Contains(t, body, `taxgo_engine_recommendations_total{regime="new"} 1`)
}

func TestNew_ServersDoNotShareRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		newTestServer(t)
		newTestServer(t)
	})
}
