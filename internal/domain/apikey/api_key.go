package apikey

import (
	"context"
	"time"

	"freemodels-server/services/catalog-api/internal/domain/catalog"
	"freemodels-server/services/catalog-api/internal/domain/feedback"
)

// APIKey is a self-service key: it authenticates nobody in particular, it just
// gives a caller a stable identity for saved preferences and scoped feedback.
// Only the SHA-256 hash of the secret is stored.
type APIKey struct {
	ID          string
	Name        string
	Prefix      string
	Suffix      string
	Hash        string
	Preferences Preferences
	RevokedAt   *time.Time
	LastUsedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Revoked reports whether the key has been revoked.
func (k *APIKey) Revoked() bool {
	return k.RevokedAt != nil
}

// Preferences is the saved default catalog query for one key. Zero values mean
// "no preference": the listing falls back to its own defaults.
type Preferences struct {
	UseCases       []string `json:"use_cases,omitempty"`
	Sort           string   `json:"sort,omitempty"`
	TopN           int      `json:"top_n,omitempty"`
	MaxErrorRate   *float64 `json:"max_error_rate,omitempty"`
	TimeRange      string   `json:"time_range,omitempty"`
	ExcludedModels []string `json:"excluded_models,omitempty"`
}

// WithDefaults fills unset fields with the values the listing endpoint would
// use anyway, so a preferences read always shows the effective query. Slices
// come back non-nil to keep the JSON arrays instead of null.
func (p Preferences) WithDefaults() Preferences {
	if p.Sort == "" {
		p.Sort = string(catalog.DefaultSortKey)
	}
	if p.TopN == 0 {
		p.TopN = 10
	}
	if p.TimeRange == "" {
		p.TimeRange = string(feedback.DefaultTimeRange)
	}
	if p.UseCases == nil {
		p.UseCases = []string{}
	}
	if p.ExcludedModels == nil {
		p.ExcludedModels = []string{}
	}
	return p
}

// Repository defines storage operations for API keys.
type Repository interface {
	Create(ctx context.Context, key *APIKey) (*APIKey, error)
	FindByHash(ctx context.Context, hash string) (*APIKey, error)
	UpdatePreferences(ctx context.Context, id string, prefs Preferences) error
	TouchLastUsed(ctx context.Context, id string, at time.Time) error
	MarkRevoked(ctx context.Context, id string, revokedAt time.Time) error
}
