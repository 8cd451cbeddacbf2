package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freemodels-server/services/catalog-api/internal/application/audit"
	domainadmin "freemodels-server/services/catalog-api/internal/domain/admin"
	"freemodels-server/services/catalog-api/internal/domain/apikey"
	"freemodels-server/services/catalog-api/internal/domain/catalog"
	"freemodels-server/services/catalog-api/internal/interfaces/httpserver/responses"
)

// AdminRoute serves operator endpoints: forced catalog refresh, retention
// cleanup and API key issuance.
type AdminRoute struct {
	syncService    *catalog.SyncService
	cleanupService *domainadmin.CleanupService
	apikeyService  *apikey.Service
	auditLogger    *audit.AdminAuditLogger
}

func NewAdminRoute(
	syncService *catalog.SyncService,
	cleanupService *domainadmin.CleanupService,
	apikeyService *apikey.Service,
	auditLogger *audit.AdminAuditLogger,
) *AdminRoute {
	return &AdminRoute{
		syncService:    syncService,
		cleanupService: cleanupService,
		apikeyService:  apikeyService,
		auditLogger:    auditLogger,
	}
}

func (route *AdminRoute) audit(reqCtx *gin.Context, entry audit.AdminAuditEntry) {
	entry.IPAddress = reqCtx.ClientIP()
	entry.UserAgent = reqCtx.Request.UserAgent()
	route.auditLogger.Log(reqCtx.Request.Context(), entry)
}

// RegisterRouter mounts /refresh at the API root and the rest under /admin.
// The guards are passed in because each is driven by a different shared
// secret.
func (route *AdminRoute) RegisterRouter(router *gin.RouterGroup, requireRefreshKey, requireAdminSecret gin.HandlerFunc) {
	router.POST("/refresh", requireRefreshKey, route.Refresh)

	adminRouter := router.Group("/admin", requireAdminSecret)
	adminRouter.POST("/cleanup", route.RunCleanup)
	adminRouter.POST("/keys", route.IssueKey)
}

// Refresh godoc
// @Summary Force a catalog sync
// @Description Triggers an immediate upstream sync and returns its outcome. Upstream failures come back in the body, not as a 5xx.
// @Tags Admin API
// @Produce json
// @Param X-Refresh-Key header string false "Refresh key, required when configured"
// @Success 200 {object} catalog.SyncResult
// @Failure 403 {object} responses.ErrorResponse "Invalid refresh key"
// @Router /refresh [post]
func (route *AdminRoute) Refresh(reqCtx *gin.Context) {
	result := route.syncService.Sync(reqCtx.Request.Context())
	route.audit(reqCtx, audit.AdminAuditEntry{
		Action:     "catalog.refresh",
		Resource:   "catalog",
		Payload:    result,
		StatusCode: http.StatusOK,
	})
	reqCtx.JSON(http.StatusOK, result)
}

// RunCleanup godoc
// @Summary Run retention cleanup
// @Description Deletes feedback and request log rows past their retention windows and reports the counts and cutoffs used.
// @Tags Admin API
// @Produce json
// @Param X-Admin-Secret header string true "Admin secret"
// @Success 200 {object} admin.CleanupResult
// @Failure 403 {object} responses.ErrorResponse "Invalid admin secret"
// @Failure 500 {object} responses.ErrorResponse "Admin secret not configured"
// @Router /admin/cleanup [post]
func (route *AdminRoute) RunCleanup(reqCtx *gin.Context) {
	result, err := route.cleanupService.Run(reqCtx.Request.Context())
	if err != nil {
		route.audit(reqCtx, audit.AdminAuditEntry{
			Action:     "retention.cleanup",
			Resource:   "retention",
			StatusCode: http.StatusInternalServerError,
			Error:      err,
		})
		responses.HandleError(reqCtx, err, "cleanup failed")
		return
	}
	route.audit(reqCtx, audit.AdminAuditEntry{
		Action:     "retention.cleanup",
		Resource:   "retention",
		Payload:    result,
		StatusCode: http.StatusOK,
	})
	reqCtx.JSON(http.StatusOK, result)
}

type IssueKeyRequest struct {
	Name string `json:"name"`
}

type IssueKeyResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Key is the full secret; it is shown once and only the hash is stored.
	Key string `json:"key"`
}

// IssueKey godoc
// @Summary Issue a new API key
// @Description Creates an API key and returns the secret once. Only its hash is persisted.
// @Tags Admin API
// @Accept json
// @Produce json
// @Param X-Admin-Secret header string true "Admin secret"
// @Param request body IssueKeyRequest false "Optional key name"
// @Success 201 {object} IssueKeyResponse
// @Failure 403 {object} responses.ErrorResponse "Invalid admin secret"
// @Router /admin/keys [post]
func (route *AdminRoute) IssueKey(reqCtx *gin.Context) {
	var req IssueKeyRequest
	// Body is optional; a bare POST issues an unnamed key.
	_ = reqCtx.ShouldBindJSON(&req)

	key, secret, err := route.apikeyService.Issue(reqCtx.Request.Context(), req.Name)
	if err != nil {
		responses.HandleError(reqCtx, err, "failed to issue api key")
		return
	}
	// The secret never reaches the audit trail, only the key id.
	route.audit(reqCtx, audit.AdminAuditEntry{
		Action:     "apikey.issue",
		Resource:   "api_key",
		ResourceID: key.ID,
		StatusCode: http.StatusCreated,
	})
	reqCtx.JSON(http.StatusCreated, IssueKeyResponse{
		ID:   key.ID,
		Name: key.Name,
		Key:  secret,
	})
}
