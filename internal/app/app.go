// Package app wires the dashboard's services from configuration and the
// handles main() provides.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"fi-dashboard/internal/config"
	"fi-dashboard/internal/dataset"
	"fi-dashboard/internal/domain"
	"fi-dashboard/internal/engine"
	"fi-dashboard/internal/service/ingestion"
	"fi-dashboard/internal/service/insight"
	"fi-dashboard/internal/service/refresh"
)

// Deps holds the external dependencies that main() must provide.
type Deps struct {
	Cfg    *config.Config
	DuckDB *sql.DB // optional; yearly summaries are computed in process without it
	Logger *slog.Logger
}

// Services groups the service pointers the API and UI handlers need.
type Services struct {
	Ingestion *ingestion.IngestionService
	Insight   *insight.InsightService
	Summary   *engine.SummaryEngine // nil without a DuckDB handle
}

// App holds the fully-wired application. Scheduler and Watcher are nil
// unless enabled in configuration.
type App struct {
	Services  Services
	Cache     *dataset.Cache
	Scheduler *refresh.Scheduler
	Watcher   *refresh.Watcher

	logger *slog.Logger
}

// New wires the cache, services and refreshers from deps. With
// PreloadOnStart set both datasets are read before New returns, so a bad
// data file fails startup rather than the first request.
func New(ctx context.Context, deps Deps) (*App, error) {
	cfg := deps.Cfg
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cache := dataset.NewCache(nil)
	ingestionSvc := ingestion.NewIngestionService(
		cache, cfg.DataPath, cfg.ForecastPath, cfg.Scenarios,
		logger.With("component", "ingestion"),
	)

	var summarizer domain.YearlySummarizer
	var summaryEngine *engine.SummaryEngine
	if deps.DuckDB != nil {
		summaryEngine = engine.NewSummaryEngine(deps.DuckDB, logger.With("component", "summary-engine"))
		summarizer = summaryEngine
	}
	insightSvc := insight.NewInsightService(ingestionSvc, summarizer, cfg.OverviewMetrics, cfg.Scenarios)

	a := &App{
		Services: Services{
			Ingestion: ingestionSvc,
			Insight:   insightSvc,
			Summary:   summaryEngine,
		},
		Cache:  cache,
		logger: logger,
	}

	if cfg.CacheClearSchedule != "" {
		a.Scheduler = refresh.NewScheduler(cache, cfg.CacheClearSchedule, logger.With("component", "cache-scheduler"))
	}
	if cfg.WatchDataFiles {
		w, err := refresh.NewWatcher(cache, []string{cfg.DataPath, cfg.ForecastPath}, logger.With("component", "file-watcher"))
		if err != nil {
			return nil, fmt.Errorf("watch data files: %w", err)
		}
		a.Watcher = w
	}

	if cfg.PreloadOnStart {
		if err := ingestionSvc.Preload(ctx); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("preload datasets: %w", err)
		}
		stats := cache.Stats()
		logger.Info("datasets preloaded", "entries", stats.Entries, "loads", stats.Loads)
	}

	return a, nil
}

// Start launches the enabled cache refreshers. They stop when ctx is
// cancelled or Close is called.
func (a *App) Start(ctx context.Context) error {
	if a.Scheduler != nil {
		if err := a.Scheduler.Start(); err != nil {
			return err
		}
		a.logger.Info("scheduled cache clearing enabled")
	}
	if a.Watcher != nil {
		if err := a.Watcher.Start(ctx); err != nil {
			return fmt.Errorf("start file watcher: %w", err)
		}
		a.logger.Info("data file watching enabled")
	}
	return nil
}

// Close stops the refreshers.
func (a *App) Close() error {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	var errs []error
	if a.Watcher != nil {
		if err := a.Watcher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close file watcher: %w", err))
		}
	}
	return errors.Join(errs...)
}
