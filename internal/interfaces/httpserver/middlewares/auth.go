package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"freemodels-server/services/catalog-api/internal/domain/apikey"
	"freemodels-server/services/catalog-api/internal/interfaces/httpserver/responses"
)

const apiKeyContextKey = "api_key"

// OptionalAPIKey resolves a bearer API key when one is presented. Requests
// without a key pass through anonymously; a key that is present but invalid is
// rejected so callers notice broken credentials instead of silently losing
// their saved preferences.
func OptionalAPIKey(keys *apikey.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.Next()
			return
		}

		key, err := keys.Authenticate(c.Request.Context(), raw)
		if err != nil {
			responses.HandleError(c, err, "invalid api key")
			return
		}
		c.Set(apiKeyContextKey, key)
		c.Next()
	}
}

// RequireAPIKey rejects requests without a valid bearer API key.
func RequireAPIKey(keys *apikey.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			responses.HandleErrorWithStatus(c, http.StatusUnauthorized, nil, "api key required")
			return
		}
		key, err := keys.Authenticate(c.Request.Context(), raw)
		if err != nil {
			responses.HandleError(c, err, "invalid api key")
			return
		}
		c.Set(apiKeyContextKey, key)
		c.Next()
	}
}

// APIKeyFromContext returns the authenticated API key, if any.
func APIKeyFromContext(c *gin.Context) (*apikey.APIKey, bool) {
	val, ok := c.Get(apiKeyContextKey)
	if !ok {
		return nil, false
	}
	key, ok := val.(*apikey.APIKey)
	return key, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
