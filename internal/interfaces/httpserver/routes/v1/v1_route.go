package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freemodels-server/services/catalog-api/internal/config"
	"freemodels-server/services/catalog-api/internal/interfaces/httpserver/routes/v1/models"
)

type V1Route struct {
	models *models.ModelsRoute
}

func NewV1Route(models *models.ModelsRoute) *V1Route {
	return &V1Route{models: models}
}

// RegisterRouter mounts the versioned API. requireKey and rateLimit are built
// once by the server and shared across route groups.
func (v1Route *V1Route) RegisterRouter(router gin.IRouter, requireKey, rateLimit gin.HandlerFunc) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)

	v1Route.models.RegisterRouter(v1Router, requireKey, rateLimit)
}

// GetVersion godoc
// @Summary Get API build version
// @Description Returns the current build version of the API server.
// @Tags Server API
// @Produce json
// @Success 200 {object} map[string]string "Version information"
// @Router /v1/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": config.Version})
}
