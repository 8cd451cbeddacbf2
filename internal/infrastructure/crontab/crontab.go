package crontab

import (
	"context"
	"fmt"
	"time"

	"freemodels-server/services/catalog-api/internal/config"
	"freemodels-server/services/catalog-api/internal/domain/admin"
	"freemodels-server/services/catalog-api/internal/domain/catalog"
	"freemodels-server/services/catalog-api/internal/infrastructure/logger"
	"freemodels-server/services/catalog-api/internal/utils/platformerrors"

	"github.com/mileusna/crontab"
)

const (
	DefaultModelSyncInterval = 15               // in minutes
	CronJobTimeout           = 10 * time.Minute // Timeout for each cron job execution
)

type Crontab struct {
	ctab           *crontab.Crontab
	syncService    *catalog.SyncService
	cleanupService *admin.CleanupService
}

func NewCrontab(
	syncService *catalog.SyncService,
	cleanupService *admin.CleanupService,
) *Crontab {
	return &Crontab{
		ctab:           crontab.New(),
		syncService:    syncService,
		cleanupService: cleanupService,
	}
}

func (c *Crontab) Run(ctx context.Context) error {
	log := logger.GetLogger()

	// execute once on server start so the catalog is populated before the
	// first interval elapses
	c.runSync(ctx)

	cfg := config.GetGlobal()
	if cfg != nil && cfg.SyncEnabled {
		syncInterval := cfg.SyncIntervalMinutes
		if syncInterval <= 0 {
			syncInterval = DefaultModelSyncInterval
		}

		cronExpr := fmt.Sprintf("*/%d * * * *", syncInterval)
		if err := c.ctab.AddJob(cronExpr, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
			defer cancel()
			c.runSync(jobCtx)
		}); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add model sync job")
		}
		log.Warn().Msgf("Model sync scheduled: every %d minute(s)", syncInterval)
	}

	// nightly retention cleanup
	if err := c.ctab.AddJob("30 3 * * *", func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
		defer cancel()
		if _, err := c.cleanupService.Run(jobCtx); err != nil {
			log.Error().Err(err).Msg("scheduled cleanup failed")
		}
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add cleanup job")
	}

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) runSync(ctx context.Context) {
	log := logger.GetLogger()
	result := c.syncService.Sync(ctx)
	if result.Err != "" {
		log.Error().Str("error", result.Err).Msg("scheduled catalog sync failed")
	}
}
