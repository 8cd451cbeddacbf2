package requestlog

import (
	"context"
	"time"
)

// RequestLog is one persisted API request record, kept for abuse analysis and
// trimmed by the retention cleanup.
type RequestLog struct {
	ID         uint
	Method     string
	Path       string
	Status     int
	DurationMS int64
	ClientIP   string
	UserAgent  string
	APIKeyID   string
	RequestID  string
	CreatedAt  time.Time
}

type Repository interface {
	Create(ctx context.Context, log *RequestLog) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
