// Package api is the HTTP surface around the plan engine. It is a thin
// wrapper: the engine is invoked as a plain function with a fully
// materialized request and returns a fully materialized response.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adxyz/yieldplan/pkg/archive"
	"github.com/adxyz/yieldplan/pkg/benchmark"
	"github.com/adxyz/yieldplan/pkg/engine"
	"github.com/adxyz/yieldplan/pkg/log"
	"github.com/adxyz/yieldplan/pkg/metric"
	"github.com/adxyz/yieldplan/pkg/plan"
)

// Handler holds the collaborators the HTTP layer needs.
type Handler struct {
	Engine  *engine.Engine
	Archive *archive.Archive
	Metrics *metric.Metrics
	Log     log.Logger
}

// NewRouter builds the gin router with all routes registered.
func NewRouter(h *Handler, allowedOrigins []string, production bool) *gin.Engine {
	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = allowedOrigins
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsCfg))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	if h.Metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.Metrics.Gatherer(), promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")
	{
		v1.POST("/plan", h.HandleBuildPlan)
		v1.GET("/benchmarks", h.HandleBenchmarks)
		v1.GET("/plans", h.HandleListPlans)
		v1.GET("/plans/:id", h.HandleGetPlan)
		v1.GET("/plans/:id/summary", h.HandleGetPlanSummary)
	}

	return router
}

// HandleBuildPlan accepts a JSON plan request, runs the engine, and
// returns the JSON response. Malformed or invalid input is a client
// error with a short diagnostic; anything unexpected is a server error
// with a best-effort message. Those are the only two failure shapes.
func (h *Handler) HandleBuildPlan(c *gin.Context) {
	var req plan.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.count(c, http.StatusBadRequest)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	start := time.Now()
	resp, err := h.Engine.BuildPlan(&req)
	if err != nil {
		if plan.IsValidationError(err) {
			h.fail(c, "invalid_input")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.fail(c, "internal")
		h.Log.Error("plan request failed", log.String("account", req.AccountName), log.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.Metrics != nil {
		h.Metrics.PlansGenerated.Inc()
		h.Metrics.PlanDuration.Observe(time.Since(start).Seconds())
		for _, s := range resp.Sections {
			h.Metrics.TacticsFired.WithLabelValues(s.ID).Inc()
		}
	}
	h.count(c, http.StatusOK)

	if h.Archive != nil {
		stored := h.Archive.Put(resp)
		c.Header("X-Plan-ID", stored.ID)
	}

	c.JSON(http.StatusOK, resp)
}

// HandleBenchmarks returns the static benchmark table.
func (h *Handler) HandleBenchmarks(c *gin.Context) {
	h.count(c, http.StatusOK)
	c.JSON(http.StatusOK, gin.H{"benchmarks": benchmark.Table()})
}

// HandleListPlans lists archived plans, newest first.
func (h *Handler) HandleListPlans(c *gin.Context) {
	type item struct {
		ID          string    `json:"id"`
		AccountName string    `json:"account_name"`
		Sections    int       `json:"sections"`
		CreatedAt   time.Time `json:"created_at"`
	}

	stored := h.Archive.List()
	items := make([]item, 0, len(stored))
	for _, s := range stored {
		items = append(items, item{
			ID:          s.ID,
			AccountName: s.Response.AccountName,
			Sections:    len(s.Response.Sections),
			CreatedAt:   s.CreatedAt,
		})
	}

	h.count(c, http.StatusOK)
	c.JSON(http.StatusOK, gin.H{"plans": items, "total": len(items)})
}

// HandleGetPlan returns one archived plan in full.
func (h *Handler) HandleGetPlan(c *gin.Context) {
	stored, ok := h.Archive.Get(c.Param("id"))
	if !ok {
		h.count(c, http.StatusNotFound)
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		return
	}
	h.count(c, http.StatusOK)
	c.JSON(http.StatusOK, stored)
}

// HandleGetPlanSummary returns an archived plan's summary as plain text
// for file download.
func (h *Handler) HandleGetPlanSummary(c *gin.Context) {
	stored, ok := h.Archive.Get(c.Param("id"))
	if !ok {
		h.count(c, http.StatusNotFound)
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		return
	}
	h.count(c, http.StatusOK)
	c.Header("Content-Disposition", `attachment; filename="plan-summary.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(stored.Response.Summary))
}

func (h *Handler) count(c *gin.Context, status int) {
	if h.Metrics != nil {
		h.Metrics.RequestsProcessed.WithLabelValues(c.Request.Method, strconv.Itoa(status)).Inc()
	}
}

func (h *Handler) fail(c *gin.Context, reason string) {
	if h.Metrics != nil {
		h.Metrics.PlanFailures.WithLabelValues(reason).Inc()
	}
	status := http.StatusInternalServerError
	if reason == "invalid_input" {
		status = http.StatusBadRequest
	}
	h.count(c, status)
}
