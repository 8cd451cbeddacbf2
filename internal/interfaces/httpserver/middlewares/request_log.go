package middlewares

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"freemodels-server/services/catalog-api/internal/domain/requestlog"
	"freemodels-server/services/catalog-api/internal/infrastructure/logger"
)

// RequestLogMiddleware persists one row per request for abuse analysis. The
// write happens off the request path; losing a row is acceptable, adding
// latency is not.
func RequestLogMiddleware(repo requestlog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := &requestlog.RequestLog{
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			Status:     c.Writer.Status(),
			DurationMS: time.Since(start).Milliseconds(),
			ClientIP:   c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			RequestID:  c.GetString("request_id"),
			CreatedAt:  start.UTC(),
		}
		if key, ok := APIKeyFromContext(c); ok && key != nil {
			entry.APIKeyID = key.ID
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := repo.Create(ctx, entry); err != nil {
				log := logger.GetLogger()
				log.Warn().Err(err).Msg("persist request log failed")
			}
		}()
	}
}
