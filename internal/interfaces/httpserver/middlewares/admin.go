package middlewares

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"freemodels-server/services/catalog-api/internal/interfaces/httpserver/responses"
)

// RequireAdminSecret gates admin endpoints on the X-Admin-Secret header. A
// deployment without a configured secret is misconfigured, not open.
func RequireAdminSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			responses.HandleErrorWithStatus(c, http.StatusInternalServerError, nil, "admin secret not configured")
			return
		}
		provided := c.GetHeader("X-Admin-Secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			responses.HandleErrorWithStatus(c, http.StatusForbidden, nil, "invalid admin secret")
			return
		}
		c.Next()
	}
}

// RequireRefreshKey gates the manual refresh endpoint on the X-Refresh-Key
// header. An empty configured key leaves the endpoint open, matching local
// development setups.
func RequireRefreshKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		provided := c.GetHeader("X-Refresh-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			responses.HandleErrorWithStatus(c, http.StatusForbidden, nil, "invalid refresh key")
			return
		}
		c.Next()
	}
}
