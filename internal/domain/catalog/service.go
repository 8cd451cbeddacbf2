package catalog

import (
	"context"
	"time"

	"freemodels-server/services/catalog-api/internal/domain/feedback"
	"freemodels-server/services/catalog-api/internal/utils/functional"
	"freemodels-server/services/catalog-api/internal/utils/platformerrors"
	"freemodels-server/services/catalog-api/internal/utils/ptr"
)

const (
	MinTopN     = 1
	MaxTopN     = 100
	DefaultTopN = 0 // unlimited
)

// ListQuery is a validated model listing request. Unknown enum tokens have
// already been dropped/defaulted by the parsers in the criteria table.
type ListQuery struct {
	UseCases     []UseCase
	Sort         SortKey
	TopN         int
	MaxErrorRate *float64
	TimeRange    feedback.TimeRange
	ExcludeIDs   []string
	// Source scopes feedback aggregation to one caller's own reports.
	Source string
}

// ListResult carries the filtered catalog plus the health stats it was ranked
// with.
type ListResult struct {
	Models         []*Model
	FeedbackCounts map[string]feedback.Counts
	LastUpdated    time.Time
	Freshness      Freshness
}

// Service answers catalog read queries. The database does the filtering where
// the criteria table provides a SQL scope; error-rate filtering and the
// leastIssues sort need feedback aggregates and run in-process on the small
// result set.
type Service struct {
	repo     ModelRepository
	feedback *feedback.Service
	sync     *SyncService
}

func NewService(repo ModelRepository, feedbackService *feedback.Service, syncService *SyncService) *Service {
	return &Service{
		repo:     repo,
		feedback: feedbackService,
		sync:     syncService,
	}
}

// List runs one catalog query: lazy refresh, fetch, health stats, error-rate
// cut, sort, exclude, topN.
func (s *Service) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	freshness := s.sync.EnsureFresh(ctx)

	models, err := s.repo.FindByFilter(ctx, ModelFilter{
		Active:     ptr.ToBool(true),
		UseCases:   q.UseCases,
		ExcludeIDs: q.ExcludeIDs,
	}, q.Sort, nil)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "list catalog models")
	}

	timeRange := q.TimeRange
	if timeRange == "" {
		timeRange = feedback.DefaultTimeRange
	}
	counts, err := s.feedback.RecentCounts(ctx, timeRange, q.Source)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "aggregate feedback")
	}

	for _, m := range models {
		m.IssueCount = counts[m.PublicID].Issues()
	}

	if q.MaxErrorRate != nil {
		limit := *q.MaxErrorRate
		models = functional.Filter(models, func(m *Model) bool {
			return counts[m.PublicID].ErrorRate <= limit
		})
	}

	// The repository already ordered rows where the sort key has a SQL
	// fragment; re-applying the shared criterion keeps both paths honest and
	// covers leastIssues, which only exists in-process.
	models = SortModels(models, q.Sort)

	if q.TopN > 0 && q.TopN < len(models) {
		models = models[:q.TopN]
	}

	return &ListResult{
		Models:         models,
		FeedbackCounts: counts,
		LastUpdated:    freshness.LastUpdated,
		Freshness:      freshness,
	}, nil
}

// ClampTopN bounds a requested topN to the supported window; zero means no
// limit.
func ClampTopN(topN int) int {
	if topN <= 0 {
		return DefaultTopN
	}
	if topN < MinTopN {
		return MinTopN
	}
	if topN > MaxTopN {
		return MaxTopN
	}
	return topN
}

// FindByPublicID exposes single-model lookup by upstream id.
func (s *Service) FindByPublicID(ctx context.Context, publicID string) (*Model, error) {
	return s.repo.FindByPublicID(ctx, publicID)
}
