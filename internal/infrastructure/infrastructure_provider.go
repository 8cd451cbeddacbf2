package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"freemodels-server/services/catalog-api/internal/config"
	"freemodels-server/services/catalog-api/internal/domain/catalog"
	"freemodels-server/services/catalog-api/internal/infrastructure/crontab"
	"freemodels-server/services/catalog-api/internal/infrastructure/database"
	"freemodels-server/services/catalog-api/internal/infrastructure/database/repository"
	"freemodels-server/services/catalog-api/internal/infrastructure/database/transaction"
	"freemodels-server/services/catalog-api/internal/infrastructure/logger"
	"freemodels-server/services/catalog-api/internal/infrastructure/openrouter"
	"freemodels-server/services/catalog-api/internal/utils/httpclients"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideDatabase provides a database connection
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.NewDB(cfg.DatabaseURL, cfg.DatabaseURLRead)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.Migration(db); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	return db, nil
}

// ProvideTransactionDatabase provides a transaction database wrapper
func ProvideTransactionDatabase(db *gorm.DB) *transaction.Database {
	return transaction.NewDatabase(db)
}

// ProvideUpstreamClient wires the OpenRouter model listing client. A bootstrap
// file can point it at a mirror with extra headers; env vars win otherwise.
func ProvideUpstreamClient(cfg *config.Config) catalog.UpstreamClient {
	baseURL := cfg.OpenRouterBaseURL
	apiKey := cfg.OpenRouterAPIKey
	timeout := cfg.UpstreamTimeout
	var headers map[string]string
	if upstream := cfg.Upstream; upstream != nil {
		if upstream.BaseURL != "" {
			baseURL = upstream.BaseURL
		}
		if upstream.APIKey != "" {
			apiKey = upstream.APIKey
		}
		if upstream.Timeout > 0 {
			timeout = upstream.Timeout
		}
		headers = upstream.Headers
	}

	restyClient := httpclients.NewClient("openrouter", timeout)
	return openrouter.NewClient(restyClient, baseURL, apiKey, headers)
}

// Infrastructure holds all infrastructure dependencies
type Infrastructure struct {
	DB     *gorm.DB
	Logger zerolog.Logger
}

// NewInfrastructure creates a new infrastructure instance
func NewInfrastructure(db *gorm.DB, logger zerolog.Logger) *Infrastructure {
	return &Infrastructure{
		DB:     db,
		Logger: logger,
	}
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Database
	ProvideDatabase,
	ProvideTransactionDatabase,

	// Repositories
	repository.RepositoryProvider,

	// Upstream catalog source
	ProvideUpstreamClient,

	// Logger
	logger.GetLogger,

	// Crontab for catalog sync and retention cleanup
	crontab.NewCrontab,

	// Infrastructure struct
	NewInfrastructure,
)
