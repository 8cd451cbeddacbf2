package dbschema

import (
	"time"

	"freemodels-server/services/catalog-api/internal/domain/requestlog"
	"freemodels-server/services/catalog-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(&RequestLog{})
}

// RequestLog is one persisted API request record.
type RequestLog struct {
	ID         uint      `gorm:"primaryKey"`
	Method     string    `gorm:"size:10;not null"`
	Path       string    `gorm:"size:256;not null;index"`
	Status     int       `gorm:"not null"`
	DurationMS int64     `gorm:"not null"`
	ClientIP   string    `gorm:"size:64"`
	UserAgent  string    `gorm:"size:256"`
	APIKeyID   string    `gorm:"size:64;index"`
	RequestID  string    `gorm:"size:64"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

func NewSchemaRequestLog(l *requestlog.RequestLog) *RequestLog {
	if l == nil {
		return nil
	}
	return &RequestLog{
		Method:     l.Method,
		Path:       l.Path,
		Status:     l.Status,
		DurationMS: l.DurationMS,
		ClientIP:   l.ClientIP,
		UserAgent:  l.UserAgent,
		APIKeyID:   l.APIKeyID,
		RequestID:  l.RequestID,
		CreatedAt:  l.CreatedAt,
	}
}
