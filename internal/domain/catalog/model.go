package catalog

import (
	"context"
	"time"

	"freemodels-server/services/catalog-api/internal/domain/query"
)

// Model is one row of the free-model catalog. Rows are created and refreshed
// by the sync job; they are never hard-deleted, only flipped inactive when the
// upstream stops listing them.
type Model struct {
	PublicID            string     `json:"id"`
	Name                string     `json:"name"`
	Description         string     `json:"description,omitempty"`
	ContextLength       int        `json:"context_length"`
	MaxCompletionTokens int        `json:"max_completion_tokens,omitempty"`
	Modality            string     `json:"modality,omitempty"`
	InputModalities     []string   `json:"input_modalities"`
	OutputModalities    []string   `json:"output_modalities"`
	SupportedParameters []string   `json:"supported_parameters"`
	PromptPrice         string     `json:"prompt_price,omitempty"`
	CompletionPrice     string     `json:"completion_price,omitempty"`
	IsActive            bool       `json:"is_active"`
	Priority            int        `json:"priority,omitempty"`
	UpstreamCreatedAt   *time.Time `json:"upstream_created_at,omitempty"`
	LastSeenAt          time.Time  `json:"last_seen_at"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	// IssueCount is attached from feedback aggregates before sorting; it is
	// never persisted with the model row.
	IssueCount int `json:"-"`
}

type ModelFilter struct {
	PublicIDs  *[]string
	ExcludeIDs []string
	Active     *bool
	UseCases   []UseCase
}

type ModelRepository interface {
	Upsert(ctx context.Context, model *Model) error
	FindByPublicID(ctx context.Context, publicID string) (*Model, error)
	FindByFilter(ctx context.Context, filter ModelFilter, sort SortKey, p *query.Pagination) ([]*Model, error)
	ListPublicIDs(ctx context.Context) ([]string, error)
	CountActive(ctx context.Context) (int64, error)
	// MarkInactiveExcept deactivates every active row whose public ID is not
	// in keep, returning the number of rows affected.
	MarkInactiveExcept(ctx context.Context, keep []string) (int64, error)
}
