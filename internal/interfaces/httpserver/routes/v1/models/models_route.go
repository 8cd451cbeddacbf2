package models

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"freemodels-server/services/catalog-api/internal/domain/apikey"
	"freemodels-server/services/catalog-api/internal/domain/catalog"
	"freemodels-server/services/catalog-api/internal/domain/feedback"
	"freemodels-server/services/catalog-api/internal/interfaces/httpserver/middlewares"
	"freemodels-server/services/catalog-api/internal/interfaces/httpserver/requests"
	"freemodels-server/services/catalog-api/internal/interfaces/httpserver/responses"
	"freemodels-server/services/catalog-api/internal/utils/platformerrors"
)

const (
	HeaderDataStale      = "X-Data-Stale"
	HeaderDataAgeSeconds = "X-Data-Age-Seconds"
)

type ModelsRoute struct {
	catalogService  *catalog.Service
	feedbackService *feedback.Service
	apikeyService   *apikey.Service
}

func NewModelsRoute(
	catalogService *catalog.Service,
	feedbackService *feedback.Service,
	apikeyService *apikey.Service,
) *ModelsRoute {
	return &ModelsRoute{
		catalogService:  catalogService,
		feedbackService: feedbackService,
		apikeyService:   apikeyService,
	}
}

// RegisterRouter mounts the model catalog endpoints. All of them require an
// API key; rateLimit guards everything except feedback submission, which must
// stay reachable exactly when models are misbehaving and clients retry.
func (route *ModelsRoute) RegisterRouter(router *gin.RouterGroup, requireKey, rateLimit gin.HandlerFunc) {
	modelsRouter := router.Group("/models", requireKey)
	modelsRouter.GET("/ids", rateLimit, route.GetModelIDs)
	modelsRouter.GET("/full", rateLimit, route.GetModels)
	modelsRouter.POST("/feedback", route.SubmitFeedback)
	modelsRouter.GET("/preferences", rateLimit, route.GetPreferences)
	modelsRouter.PUT("/preferences", rateLimit, route.UpdatePreferences)
}

type ModelIDsResponse struct {
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}

type FeedbackResponse struct {
	ID        string    `json:"id"`
	ModelID   string    `json:"modelId"`
	Success   bool      `json:"success"`
	Issue     string    `json:"issue,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type ModelListResponse struct {
	Models         []*catalog.Model           `json:"models"`
	FeedbackCounts map[string]feedback.Counts `json:"feedbackCounts"`
	LastUpdated    string                     `json:"lastUpdated,omitempty"`
	Count          int                        `json:"count"`
}

// GetModelIDs godoc
// @Summary List free model IDs
// @Description Returns just the IDs of currently free models matching the query, for clients that resolve details themselves.
// @Tags Catalog API
// @Security BearerAuth
// @Produce json
// @Param useCases query string false "Comma separated use case tags" example(chat,vision)
// @Param sort query string false "Sort key" Enums(contextLength, maxOutput, capable, newest, leastIssues)
// @Param topN query int false "Limit results (1-100)"
// @Param maxErrorRate query number false "Drop models above this community error rate (0-100)"
// @Param timeRange query string false "Feedback window" Enums(15m, 30m, 1h, 6h, 24h, 7d, 30d, all)
// @Success 200 {object} ModelIDsResponse
// @Failure 400 {object} responses.ErrorResponse "Malformed numeric parameter"
// @Failure 401 {object} responses.ErrorResponse "Missing or invalid API key"
// @Router /v1/models/ids [get]
func (route *ModelsRoute) GetModelIDs(reqCtx *gin.Context) {
	result, ok := route.runListQuery(reqCtx)
	if !ok {
		return
	}

	ids := make([]string, 0, len(result.Models))
	for _, m := range result.Models {
		ids = append(ids, m.PublicID)
	}
	reqCtx.JSON(http.StatusOK, ModelIDsResponse{IDs: ids, Count: len(ids)})
}

// GetModels godoc
// @Summary List free models with details
// @Description Returns the filtered free model catalog with per-model community feedback counts.
// @Tags Catalog API
// @Security BearerAuth
// @Produce json
// @Param useCases query string false "Comma separated use case tags" example(chat,vision)
// @Param sort query string false "Sort key" Enums(contextLength, maxOutput, capable, newest, leastIssues)
// @Param topN query int false "Limit results (1-100)"
// @Param maxErrorRate query number false "Drop models above this community error rate (0-100)"
// @Param timeRange query string false "Feedback window" Enums(15m, 30m, 1h, 6h, 24h, 7d, 30d, all)
// @Param myReports query bool false "Aggregate only feedback submitted with this key"
// @Success 200 {object} ModelListResponse
// @Failure 400 {object} responses.ErrorResponse "Malformed numeric parameter"
// @Failure 401 {object} responses.ErrorResponse "Missing or invalid API key"
// @Router /v1/models/full [get]
func (route *ModelsRoute) GetModels(reqCtx *gin.Context) {
	result, ok := route.runListQuery(reqCtx)
	if !ok {
		return
	}

	if result.Freshness.Stale {
		reqCtx.Header(HeaderDataStale, "true")
		reqCtx.Header(HeaderDataAgeSeconds, strconv.FormatInt(int64(result.Freshness.Age.Seconds()), 10))
	}

	resp := ModelListResponse{
		Models:         result.Models,
		FeedbackCounts: result.FeedbackCounts,
		Count:          len(result.Models),
	}
	if !result.LastUpdated.IsZero() {
		resp.LastUpdated = result.LastUpdated.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	reqCtx.JSON(http.StatusOK, resp)
}

// runListQuery parses the shared listing parameters, folds in the caller's
// saved preferences, and executes the catalog query.
func (route *ModelsRoute) runListQuery(reqCtx *gin.Context) (*catalog.ListResult, bool) {
	params, err := requests.GetListQueryFromContext(reqCtx)
	if err != nil {
		responses.HandleError(reqCtx, err, "invalid query parameters")
		return nil, false
	}

	query := catalog.ListQuery{
		UseCases:     params.UseCases,
		Sort:         params.Sort,
		TopN:         params.TopN,
		MaxErrorRate: params.MaxErrorRate,
		TimeRange:    params.TimeRange,
	}
	if key, ok := middlewares.APIKeyFromContext(reqCtx); ok {
		query = apikey.ApplyToQuery(query, key.Preferences)
		if params.MyReports {
			query.Source = key.ID
		}
	}

	result, err := route.catalogService.List(reqCtx.Request.Context(), query)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to list models")
		return nil, false
	}
	return result, true
}

// SubmitFeedback godoc
// @Summary Submit model feedback
// @Description Records one success or issue report for a model. Issue reports need an issue kind.
// @Tags Catalog API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body requests.SubmitFeedbackRequest true "Feedback report"
// @Success 201 {object} responses.GeneralResponse[FeedbackResponse]
// @Failure 400 {object} responses.ErrorResponse "Missing modelId or unknown issue kind"
// @Failure 401 {object} responses.ErrorResponse "Missing or invalid API key"
// @Router /v1/models/feedback [post]
func (route *ModelsRoute) SubmitFeedback(reqCtx *gin.Context) {
	var req requests.SubmitFeedbackRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "modelId is required", "f3b60a92-7c1d-4e85-b4f6-2a90d7c3e518")
		return
	}

	input := feedback.SubmitInput{
		ModelPublicID: req.ModelID,
		Success:       req.Success,
		Issue:         req.Issue,
		Details:       req.Details,
	}
	if key, ok := middlewares.APIKeyFromContext(reqCtx); ok {
		input.Source = key.ID
	}

	fb, err := route.feedbackService.Submit(reqCtx.Request.Context(), input)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to record feedback")
		return
	}

	reqCtx.JSON(http.StatusCreated, responses.GeneralResponse[FeedbackResponse]{
		Status: "recorded",
		Result: FeedbackResponse{
			ID:        fb.ID,
			ModelID:   fb.ModelPublicID,
			Success:   fb.Success,
			Issue:     string(fb.Issue),
			CreatedAt: fb.CreatedAt,
		},
	})
}

// GetPreferences godoc
// @Summary Read saved query preferences
// @Description Returns the key's saved default catalog query with effective defaults filled in.
// @Tags Catalog API
// @Security BearerAuth
// @Produce json
// @Success 200 {object} apikey.Preferences
// @Failure 401 {object} responses.ErrorResponse "Missing or invalid API key"
// @Router /v1/models/preferences [get]
func (route *ModelsRoute) GetPreferences(reqCtx *gin.Context) {
	key, ok := middlewares.APIKeyFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "api key required", "6d4e81f5-2ab9-4c07-9e63-b58f0a27d1c4")
		return
	}
	reqCtx.JSON(http.StatusOK, route.apikeyService.GetPreferences(key).WithDefaults())
}

// UpdatePreferences godoc
// @Summary Save query preferences
// @Description Stores a default catalog query on the key. Unknown tokens are normalized the same way the listing endpoints normalize them.
// @Tags Catalog API
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body apikey.Preferences true "Preferences blob"
// @Success 200 {object} apikey.Preferences
// @Failure 400 {object} responses.ErrorResponse "maxErrorRate out of range"
// @Failure 401 {object} responses.ErrorResponse "Missing or invalid API key"
// @Router /v1/models/preferences [put]
func (route *ModelsRoute) UpdatePreferences(reqCtx *gin.Context) {
	key, ok := middlewares.APIKeyFromContext(reqCtx)
	if !ok {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeUnauthorized, "api key required", "a1c52e98-7f06-4b3d-8e24-d9b06c5f3a71")
		return
	}

	var prefs apikey.Preferences
	if err := reqCtx.ShouldBindJSON(&prefs); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid preferences body", "0b7d94c6-e3a1-48f2-b580-6c1f2a8e9d35")
		return
	}

	saved, err := route.apikeyService.SavePreferences(reqCtx.Request.Context(), key, prefs)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to save preferences")
		return
	}
	reqCtx.JSON(http.StatusOK, saved.WithDefaults())
}

