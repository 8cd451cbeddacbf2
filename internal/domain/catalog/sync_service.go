package catalog

import (
	"context"
	"time"

	"freemodels-server/services/catalog-api/internal/domain/availability"
	"freemodels-server/services/catalog-api/internal/domain/syncmeta"
	"freemodels-server/services/catalog-api/internal/infrastructure/logger"
	"freemodels-server/services/catalog-api/internal/infrastructure/metrics"
	"freemodels-server/services/catalog-api/internal/infrastructure/observability"
	"freemodels-server/services/catalog-api/internal/infrastructure/openrouter"
	"freemodels-server/services/catalog-api/internal/utils/platformerrors"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"
)

// UpstreamClient lists the aggregator's model catalog.
type UpstreamClient interface {
	ListModels(ctx context.Context) ([]openrouter.Model, error)
}

// SyncResult reports what one sync run did. A failed run carries Err and zero
// counts; callers keep serving whatever data already exists.
type SyncResult struct {
	TotalUpstream  int    `json:"totalApiModels"`
	FreeFound      int    `json:"freeModelsFound"`
	Inserted       int    `json:"inserted"`
	Updated        int    `json:"updated"`
	MarkedInactive int    `json:"markedInactive"`
	Err            string `json:"error,omitempty"`
}

// Freshness describes how old the catalog currently is.
type Freshness struct {
	LastUpdated time.Time
	Age         time.Duration
	Known       bool
	Stale       bool
	Critical    bool
}

// SyncService refreshes the catalog from upstream. One routine serves the
// timer path and the lazy request path; concurrent triggers collapse into a
// single upstream call through the singleflight group.
type SyncService struct {
	upstream      UpstreamClient
	repo          ModelRepository
	meta          syncmeta.Repository
	snapshots     availability.Repository
	safetyPct     float64
	staleAfter    time.Duration
	criticalAfter time.Duration

	group singleflight.Group
	now   func() time.Time
}

type SyncOptions struct {
	SafetyPct     float64
	StaleAfter    time.Duration
	CriticalAfter time.Duration
}

func NewSyncService(
	upstream UpstreamClient,
	repo ModelRepository,
	meta syncmeta.Repository,
	snapshots availability.Repository,
	opts SyncOptions,
) *SyncService {
	if opts.SafetyPct <= 0 {
		opts.SafetyPct = 0.5
	}
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = 15 * time.Minute
	}
	if opts.CriticalAfter <= 0 {
		opts.CriticalAfter = 2 * time.Hour
	}
	return &SyncService{
		upstream:      upstream,
		repo:          repo,
		meta:          meta,
		snapshots:     snapshots,
		safetyPct:     opts.SafetyPct,
		staleAfter:    opts.StaleAfter,
		criticalAfter: opts.CriticalAfter,
		now:           time.Now,
	}
}

// Sync runs one catalog refresh. Concurrent callers share the in-flight run's
// result instead of issuing redundant upstream calls.
func (s *SyncService) Sync(ctx context.Context) SyncResult {
	result, _, _ := s.group.Do("sync", func() (interface{}, error) {
		return s.syncOnce(ctx), nil
	})
	return result.(SyncResult)
}

func (s *SyncService) syncOnce(ctx context.Context) SyncResult {
	ctx, span := observability.StartSpan(ctx, "catalog.sync")
	defer span.End()

	log := logger.GetLogger()
	started := time.Now()
	var result SyncResult

	upstreamModels, err := s.upstream.ListModels(ctx)
	if err != nil {
		result.Err = err.Error()
		observability.RecordError(ctx, err)
		metrics.RecordSync("fetch_failed", time.Since(started).Seconds())
		log.Error().Err(err).Msg("catalog sync: upstream fetch failed")
		return result
	}
	result.TotalUpstream = len(upstreamModels)

	free := openrouter.FreeModels(upstreamModels)
	result.FreeFound = len(free)

	existingIDs, err := s.repo.ListPublicIDs(ctx)
	if err != nil {
		result.Err = err.Error()
		observability.RecordError(ctx, err)
		metrics.RecordSync("db_failed", time.Since(started).Seconds())
		log.Error().Err(err).Msg("catalog sync: load existing ids failed")
		return result
	}
	existing := make(map[string]bool, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = true
	}

	previouslyActive, err := s.repo.CountActive(ctx)
	if err != nil {
		result.Err = err.Error()
		observability.RecordError(ctx, err)
		metrics.RecordSync("db_failed", time.Since(started).Seconds())
		log.Error().Err(err).Msg("catalog sync: count active failed")
		return result
	}

	now := s.now().UTC()
	seenIDs := make([]string, 0, len(free))
	for _, upstream := range free {
		model := modelFromUpstream(upstream, now)
		if err := s.repo.Upsert(ctx, model); err != nil {
			log.Error().Err(err).Str("model_id", model.PublicID).Msg("catalog sync: upsert failed")
			continue
		}
		seenIDs = append(seenIDs, model.PublicID)
		if existing[model.PublicID] {
			result.Updated++
		} else {
			result.Inserted++
		}
	}

	// Deactivation safety floor: a truncated upstream response must not wipe
	// the catalog. Skip the deactivation step unless this run saw at least
	// safetyPct of the previously-active rows.
	if previouslyActive == 0 || float64(len(seenIDs)) >= s.safetyPct*float64(previouslyActive) {
		marked, err := s.repo.MarkInactiveExcept(ctx, seenIDs)
		if err != nil {
			log.Error().Err(err).Msg("catalog sync: deactivation failed")
		} else {
			result.MarkedInactive = int(marked)
		}
	} else {
		log.Warn().
			Int("seen", len(seenIDs)).
			Int64("previously_active", previouslyActive).
			Msg("catalog sync: skipping deactivation, too few models seen")
	}

	if err := s.meta.Upsert(ctx, syncmeta.KeyModelsLastUpdated, now.Format(time.RFC3339)); err != nil {
		log.Error().Err(err).Msg("catalog sync: record last-updated failed")
	}

	if s.snapshots != nil {
		if err := s.snapshots.RecordDay(ctx, availability.DayKey(now), seenIDs); err != nil {
			log.Error().Err(err).Msg("catalog sync: availability snapshot failed")
		}
	}

	observability.AddSpanAttributes(ctx,
		attribute.Int("catalog.upstream_total", result.TotalUpstream),
		attribute.Int("catalog.free_found", result.FreeFound),
		attribute.Int("catalog.inserted", result.Inserted),
		attribute.Int("catalog.updated", result.Updated),
		attribute.Int("catalog.marked_inactive", result.MarkedInactive),
	)
	metrics.RecordSync("ok", time.Since(started).Seconds())
	metrics.SetFreeModels(len(seenIDs))
	log.Info().
		Int("upstream", result.TotalUpstream).
		Int("free", result.FreeFound).
		Int("inserted", result.Inserted).
		Int("updated", result.Updated).
		Int("marked_inactive", result.MarkedInactive).
		Msg("catalog sync complete")
	return result
}

// Freshness reads the last-updated marker and classifies the catalog age.
func (s *SyncService) Freshness(ctx context.Context) Freshness {
	entry, err := s.meta.Get(ctx, syncmeta.KeyModelsLastUpdated)
	if err != nil || entry == nil {
		if err != nil && !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			log := logger.GetLogger()
			log.Error().Err(err).Msg("read sync meta failed")
		}
		return Freshness{Stale: true, Critical: true}
	}

	lastUpdated, err := time.Parse(time.RFC3339, entry.Value)
	if err != nil {
		return Freshness{Stale: true, Critical: true}
	}

	age := s.now().UTC().Sub(lastUpdated)
	metrics.SetCatalogAge(age.Seconds())
	return Freshness{
		LastUpdated: lastUpdated,
		Age:         age,
		Known:       true,
		Stale:       age > s.staleAfter,
		Critical:    age > s.criticalAfter,
	}
}

// EnsureFresh triggers a sync when the catalog is past the soft staleness
// threshold. Sync failures are absorbed: the returned freshness reflects
// whatever data the caller can still serve.
func (s *SyncService) EnsureFresh(ctx context.Context) Freshness {
	freshness := s.Freshness(ctx)
	if !freshness.Stale {
		return freshness
	}
	s.Sync(ctx)
	return s.Freshness(ctx)
}

func modelFromUpstream(m openrouter.Model, now time.Time) *Model {
	var created *time.Time
	if m.Created > 0 {
		t := time.Unix(m.Created, 0).UTC()
		created = &t
	}
	maxCompletion := 0
	if m.TopProvider.MaxCompletionTokens != nil {
		maxCompletion = *m.TopProvider.MaxCompletionTokens
	}
	return &Model{
		PublicID:            m.ID,
		Name:                m.Name,
		Description:         m.Description,
		ContextLength:       m.EffectiveContextLength(),
		MaxCompletionTokens: maxCompletion,
		Modality:            m.Architecture.Modality,
		InputModalities:     m.Architecture.InputModalities,
		OutputModalities:    m.Architecture.OutputModalities,
		SupportedParameters: m.SupportedParameters,
		PromptPrice:         m.Pricing.Prompt,
		CompletionPrice:     m.Pricing.Completion,
		IsActive:            true,
		UpstreamCreatedAt:   created,
		LastSeenAt:          now,
	}
}
