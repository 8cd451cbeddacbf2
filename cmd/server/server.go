package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"freemodels-server/services/catalog-api/internal/config"
	"freemodels-server/services/catalog-api/internal/infrastructure/crontab"
	"freemodels-server/services/catalog-api/internal/infrastructure/logger"
	"freemodels-server/services/catalog-api/internal/infrastructure/metrics"
	"freemodels-server/services/catalog-api/internal/infrastructure/observability"
	"freemodels-server/services/catalog-api/internal/interfaces/httpserver"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	_ "net/http/pprof"
)

type Application struct {
	HTTPServer *httpserver.HTTPServer
	Crontab    *crontab.Crontab
	Config     *config.Config
}

func init() {
	_ = godotenv.Load()
	logger.GetLogger()
}

// @title Free Models Catalog API
// @version 1.0
// @description Lists currently free LLM models synced from OpenRouter, enriched with community feedback.
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and your API key.
func (application *Application) Start() {
	cfg := application.Config
	background := context.Background()
	ctx, cancel := context.WithCancel(background)
	defer cancel()

	var eg errgroup.Group
	eg.Go(func() error {
		err := http.ListenAndServe("0.0.0.0:6060", nil)
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", metrics.Handler())
		err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.MetricsPort), metricsMux)
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		err := application.Crontab.Run(ctx)
		if err != nil {
			cancel()
		}
		return err
	})
	eg.Go(func() error {
		err := application.HTTPServer.Run()
		if err != nil {
			cancel()
		}
		return err
	})

	if err := eg.Wait(); err != nil {
		panic(err)
	}
}

func main() {
	ctx := context.Background()
	log := logger.GetLogger()

	application, err := CreateApplication()
	if err != nil {
		log.Fatal().Err(err).Msg("create application")
	}
	cfg := application.Config

	if reconfigured, err := logger.New(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Warn().Err(err).Msg("invalid log configuration, keeping defaults")
	} else {
		log = reconfigured
	}

	otelShutdown, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("initialize observability")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("shutdown telemetry")
			}
		}()
	}

	application.Start()
}
