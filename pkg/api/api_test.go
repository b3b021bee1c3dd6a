package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/adxyz/yieldplan/pkg/archive"
	"github.com/adxyz/yieldplan/pkg/engine"
	"github.com/adxyz/yieldplan/pkg/log"
	"github.com/adxyz/yieldplan/pkg/metric"
	"github.com/adxyz/yieldplan/pkg/plan"
)

func testRouter() (*gin.Engine, *Handler) {
	gin.SetMode(gin.TestMode)
	h := &Handler{
		Engine:  engine.New(log.NoOp()),
		Archive: archive.New(16),
		Metrics: metric.NewMetrics(),
		Log:     log.NoOp(),
	}
	return NewRouter(h, []string{"http://localhost:3000"}, false), h
}

func planBody() []byte {
	body, _ := json.Marshal(map[string]any{
		"account_name": "acme-games",
		"inventory": []map[string]any{
			{
				"app_id":             "app1",
				"app_name":           "Acme Runner",
				"sdk_version":        "21.4.0",
				"mediation_partners": []string{"admob"},
				"ad_units": []map[string]any{
					{
						"id":          "rv-main",
						"format":      "rewarded",
						"platform":    "android",
						"avg_ecpm":    8.2,
						"fill_rate":   0.86,
						"latency_ms":  1300,
						"impressions": 240000,
						"revenue":     1968,
					},
				},
			},
		},
		"constraints": map[string]any{
			"primary_goal":      "maximize_revenue",
			"latency_budget_ms": 1200,
			"dev_capacity":      "medium",
		},
	})
	return body
}

func TestBuildPlanEndpoint(t *testing.T) {
	require := require.New(t)
	router, _ := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan", bytes.NewReader(planBody()))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(http.StatusOK, w.Code)
	require.NotEmpty(w.Header().Get("X-Plan-ID"))

	var resp plan.PlanResponse
	require.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal("acme-games", resp.AccountName)
	require.NotEmpty(resp.Summary)
	require.NotEmpty(resp.Sections)
	require.Equal("enable_bidding", resp.Sections[0].ID)
}

func TestBuildPlanRejectsEmptyAccount(t *testing.T) {
	require := require.New(t)
	router, _ := testRouter()

	body, _ := json.Marshal(map[string]any{
		"account_name": "",
		"inventory":    []map[string]any{{"app_id": "a1"}},
		"constraints":  map[string]any{"latency_budget_ms": 1000},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(http.StatusBadRequest, w.Code)
	require.Contains(w.Body.String(), "account_name")
}

func TestBuildPlanRejectsMalformedJSON(t *testing.T) {
	require := require.New(t)
	router, _ := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(http.StatusBadRequest, w.Code)
	require.Contains(w.Body.String(), "invalid request body")
}

func TestBenchmarksEndpoint(t *testing.T) {
	require := require.New(t)
	router, _ := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/benchmarks", nil)
	router.ServeHTTP(w, req)

	require.Equal(http.StatusOK, w.Code)
	require.Contains(w.Body.String(), "rewarded")
	require.Contains(w.Body.String(), "interstitial")
}

func TestPlanArchiveRoundTrip(t *testing.T) {
	require := require.New(t)
	router, _ := testRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan", bytes.NewReader(planBody()))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(http.StatusOK, w.Code)
	id := w.Header().Get("X-Plan-ID")
	require.NotEmpty(id)

	// Full JSON re-download.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/plans/"+id, nil))
	require.Equal(http.StatusOK, w.Code)
	require.Contains(w.Body.String(), "acme-games")

	// Plain-text summary export.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/plans/"+id+"/summary", nil))
	require.Equal(http.StatusOK, w.Code)
	require.Contains(w.Header().Get("Content-Disposition"), "plan-summary.txt")
	require.Contains(w.Body.String(), "acme-games")

	// Listing shows the stored plan.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/plans", nil))
	require.Equal(http.StatusOK, w.Code)
	require.Contains(w.Body.String(), id)
}

func TestGetPlanNotFound(t *testing.T) {
	require := require.New(t)
	router, _ := testRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/plans/missing", nil))
	require.Equal(http.StatusNotFound, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	require := require.New(t)
	router, _ := testRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(http.StatusOK, w.Code)
	require.Contains(w.Body.String(), "healthy")
}

func TestMetricsEndpoint(t *testing.T) {
	require := require.New(t)
	router, _ := testRouter()

	// Generate one plan so counters move.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan", bytes.NewReader(planBody()))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(http.StatusOK, w.Code)
	require.Contains(w.Body.String(), "yieldplan_plans_generated_total")
}
