package domain

import (
	"github.com/google/wire"

	"freemodels-server/services/catalog-api/internal/config"
	"freemodels-server/services/catalog-api/internal/domain/admin"
	"freemodels-server/services/catalog-api/internal/domain/apikey"
	"freemodels-server/services/catalog-api/internal/domain/availability"
	"freemodels-server/services/catalog-api/internal/domain/catalog"
	"freemodels-server/services/catalog-api/internal/domain/demo"
	"freemodels-server/services/catalog-api/internal/domain/feedback"
	"freemodels-server/services/catalog-api/internal/domain/requestlog"
	"freemodels-server/services/catalog-api/internal/infrastructure/database/transaction"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	// Catalog domain
	ProvideSyncOptions,
	catalog.NewSyncService,
	catalog.NewService,

	// Feedback domain
	feedback.NewService,

	// Availability snapshots
	availability.NewService,

	// API keys
	apikey.NewService,

	// Retention cleanup
	ProvideCleanupService,

	// Demo probe
	ProvideDemoService,
)

func ProvideSyncOptions(cfg *config.Config) catalog.SyncOptions {
	return catalog.SyncOptions{
		SafetyPct:     cfg.DeactivationSafetyPct,
		StaleAfter:    cfg.StaleAfter,
		CriticalAfter: cfg.CriticalStaleAfter,
	}
}

func ProvideCleanupService(
	db *transaction.Database,
	feedbackRepo feedback.Repository,
	requestLogRepo requestlog.Repository,
	cfg *config.Config,
) *admin.CleanupService {
	return admin.NewCleanupService(db, feedbackRepo, requestLogRepo, cfg.FeedbackRetentionDays, cfg.RequestLogRetentionDays)
}

func ProvideDemoService(cfg *config.Config) *demo.Service {
	client := demo.NewClient(cfg.OpenRouterBaseURL, cfg.DemoAPIKey)
	return demo.NewService(client, cfg.DemoModel, cfg.DemoCacheTTL)
}
