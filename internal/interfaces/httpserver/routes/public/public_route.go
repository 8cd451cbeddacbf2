package public

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"freemodels-server/services/catalog-api/internal/domain/availability"
	"freemodels-server/services/catalog-api/internal/domain/demo"
	"freemodels-server/services/catalog-api/internal/domain/feedback"
	"freemodels-server/services/catalog-api/internal/interfaces/httpserver/middlewares"
	"freemodels-server/services/catalog-api/internal/interfaces/httpserver/responses"
)

// PublicRoute serves the dashboard endpoints that work without an API key.
type PublicRoute struct {
	feedbackService     *feedback.Service
	availabilityService *availability.Service
	demoService         *demo.Service
}

func NewPublicRoute(
	feedbackService *feedback.Service,
	availabilityService *availability.Service,
	demoService *demo.Service,
) *PublicRoute {
	return &PublicRoute{
		feedbackService:     feedbackService,
		availabilityService: availabilityService,
		demoService:         demoService,
	}
}

func (route *PublicRoute) RegisterRouter(router *gin.RouterGroup, optionalKey gin.HandlerFunc) {
	router.GET("/health", optionalKey, route.GetHealth)
	router.GET("/availability", route.GetAvailability)
	router.GET("/demo", route.GetDemo)
}

type HealthResponse struct {
	TimeRange string                     `json:"timeRange"`
	Timeline  []feedback.TimelinePoint   `json:"timeline"`
	Models    map[string]feedback.Counts `json:"models"`
}

// GetHealth godoc
// @Summary Community feedback health
// @Description Returns the feedback timeline plus per-model counts for the requested window. With an API key and myReports=true only the caller's own reports are aggregated.
// @Tags Dashboard API
// @Produce json
// @Param timeRange query string false "Feedback window" Enums(15m, 30m, 1h, 6h, 24h, 7d, 30d, all)
// @Param myReports query bool false "Scope to feedback submitted with the presented key"
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (route *PublicRoute) GetHealth(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	window := feedback.ParseTimeRange(reqCtx.Query("timeRange"))

	source := ""
	if reqCtx.Query("myReports") == "true" {
		if key, ok := middlewares.APIKeyFromContext(reqCtx); ok {
			source = key.ID
		}
	}

	timeline, err := route.feedbackService.Timeline(ctx, window, source)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to build feedback timeline")
		return
	}
	counts, err := route.feedbackService.RecentCounts(ctx, window, source)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to aggregate feedback")
		return
	}

	if timeline == nil {
		timeline = []feedback.TimelinePoint{}
	}
	reqCtx.JSON(http.StatusOK, HealthResponse{
		TimeRange: string(window),
		Timeline:  timeline,
		Models:    counts,
	})
}

// GetAvailability godoc
// @Summary Model availability matrix
// @Description Returns which models were present in the upstream catalog on each of the trailing days, capped at 90 days.
// @Tags Dashboard API
// @Produce json
// @Param days query int false "Trailing window in days (1-90, default 90)"
// @Success 200 {object} availability.Matrix
// @Router /availability [get]
func (route *PublicRoute) GetAvailability(reqCtx *gin.Context) {
	days := 0
	if raw := reqCtx.Query("days"); raw != "" {
		// Out-of-range and malformed values both fall back to the full window.
		days, _ = strconv.Atoi(raw)
	}

	matrix, err := route.availabilityService.Matrix(reqCtx.Request.Context(), days)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to load availability matrix")
		return
	}
	reqCtx.JSON(http.StatusOK, matrix)
}

// GetDemo godoc
// @Summary Demo completion probe
// @Description Runs a small cached chat completion against a free model to show it answering. Failures are reported in the body, never as a 5xx.
// @Tags Dashboard API
// @Produce json
// @Param model query string false "Model to probe; defaults to the configured demo model"
// @Success 200 {object} demo.Result
// @Failure 400 {object} responses.ErrorResponse "No model requested and none configured"
// @Router /demo [get]
func (route *PublicRoute) GetDemo(reqCtx *gin.Context) {
	ctx, cancel := context.WithTimeout(reqCtx.Request.Context(), probeTimeout)
	defer cancel()

	result, err := route.demoService.Probe(ctx, reqCtx.Query("model"))
	if err != nil {
		responses.HandleError(reqCtx, err, "demo probe unavailable")
		return
	}
	reqCtx.JSON(http.StatusOK, result)
}

const probeTimeout = 8 * time.Second
