package syncmeta

import (
	"context"
	"time"
)

// KeyModelsLastUpdated records the wall-clock time of the last successful
// catalog sync.
const KeyModelsLastUpdated = "models_last_updated"

type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

type Repository interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Upsert(ctx context.Context, key, value string) error
}
