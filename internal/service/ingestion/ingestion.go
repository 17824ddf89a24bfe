// Package ingestion implements the dataset ingestion pipeline: load through
// the cache, validate, partition, and decode.
package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"fi-dashboard/internal/dataset"
	"fi-dashboard/internal/domain"
)

// IngestionService serves validated, partitioned views of the unified
// dataset and decoded rows of the forecast dataset. Every call goes back to
// the cache, so an invalidated file is re-read on the next request.
//
//nolint:revive // Name chosen for clarity across package boundaries
type IngestionService struct {
	cache        *dataset.Cache
	dataPath     string
	forecastPath string
	scenarios    []domain.Scenario
	allowed      domain.ScenarioSet
	logger       *slog.Logger
}

// NewIngestionService creates a new IngestionService. An empty scenarios list
// uses domain.DefaultScenarios.
func NewIngestionService(
	cache *dataset.Cache,
	dataPath, forecastPath string,
	scenarios []domain.Scenario,
	logger *slog.Logger,
) *IngestionService {
	if cache == nil {
		cache = dataset.NewCache(nil)
	}
	if len(scenarios) == 0 {
		scenarios = domain.DefaultScenarios()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &IngestionService{
		cache:        cache,
		dataPath:     dataPath,
		forecastPath: forecastPath,
		scenarios:    scenarios,
		allowed:      domain.NewScenarioSet(scenarios...),
		logger:       logger,
	}
}

// DataPath returns the configured unified dataset path.
func (s *IngestionService) DataPath() string { return s.dataPath }

// ForecastPath returns the configured forecast dataset path.
func (s *IngestionService) ForecastPath() string { return s.forecastPath }

// Scenarios returns the configured scenario universe in configuration order.
func (s *IngestionService) Scenarios() []domain.Scenario {
	out := make([]domain.Scenario, len(s.scenarios))
	copy(out, s.scenarios)
	return out
}

// Unified loads the unified dataset and checks its required columns.
func (s *IngestionService) Unified(ctx context.Context) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.dataPath == "" {
		return nil, domain.ErrNotFound("", "unified dataset path is not configured")
	}

	ds, err := s.cache.Load(s.dataPath)
	if err != nil {
		s.logger.Warn("load unified dataset failed", "path", s.dataPath, "error", err)
		return nil, err
	}
	if err := dataset.ValidateSchema(ds, domain.RequiredColumns); err != nil {
		s.logger.Warn("unified dataset failed validation", "path", ds.Source, "error", err)
		return nil, err
	}
	return ds, nil
}

// Partitions returns the four record-type views of the unified dataset.
// Rows with an unrecognised record_type are excluded and reported at warn
// level with their per-type counts.
func (s *IngestionService) Partitions(ctx context.Context) (domain.PartitionedView, error) {
	ds, err := s.Unified(ctx)
	if err != nil {
		return domain.PartitionedView{}, err
	}

	view := dataset.SplitByRecordType(ds)
	if view.Dropped > 0 {
		s.logger.Warn("rows with unrecognised record_type excluded from all partitions",
			"path", ds.Source,
			"dropped", view.Dropped,
			"types", droppedTypeList(view.DroppedTypes))
	}
	return view, nil
}

// Observations returns the observations partition with derived years.
func (s *IngestionService) Observations(ctx context.Context) (domain.ObservationSet, error) {
	view, err := s.Partitions(ctx)
	if err != nil {
		return domain.ObservationSet{}, err
	}
	set, err := dataset.DeriveObservations(view.Observations)
	if err != nil {
		s.logger.Warn("derive observation years failed", "path", s.dataPath, "error", err)
		return domain.ObservationSet{}, err
	}
	return set, nil
}

// Forecasts loads and decodes the forecast dataset. Scenarios outside the
// configured universe fail the load.
func (s *IngestionService) Forecasts(ctx context.Context) ([]domain.ForecastRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.forecastPath == "" {
		return nil, domain.ErrNotFound("", "forecast dataset path is not configured")
	}

	ds, err := s.cache.Load(s.forecastPath)
	if err != nil {
		s.logger.Warn("load forecast dataset failed", "path", s.forecastPath, "error", err)
		return nil, err
	}
	rows, err := dataset.DecodeForecasts(ds, s.allowed)
	if err != nil {
		s.logger.Warn("forecast dataset rejected", "path", ds.Source, "error", err)
		return nil, err
	}
	return rows, nil
}

// Preload reads both datasets concurrently so configuration or data errors
// surface at startup. A missing forecast path is not an error.
func (s *IngestionService) Preload(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if _, err := s.Observations(gctx); err != nil {
			return fmt.Errorf("unified dataset: %w", err)
		}
		return nil
	})
	if s.forecastPath != "" {
		g.Go(func() error {
			if _, err := s.Forecasts(gctx); err != nil {
				return fmt.Errorf("forecast dataset: %w", err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Invalidate drops both configured datasets from the cache and returns how
// many entries were removed.
func (s *IngestionService) Invalidate() int {
	n := 0
	for _, p := range []string{s.dataPath, s.forecastPath} {
		if p != "" && s.cache.Invalidate(p) {
			n++
		}
	}
	s.logger.Info("dataset cache invalidated", "entries", n)
	return n
}

// CacheStats reports the underlying cache counters.
func (s *IngestionService) CacheStats() dataset.CacheStats {
	return s.cache.Stats()
}

func droppedTypeList(types map[string]int) []string {
	out := make([]string, 0, len(types))
	for t, n := range types {
		out = append(out, fmt.Sprintf("%q=%d", t, n))
	}
	sort.Strings(out)
	return out
}

var _ domain.DatasetSource = (*IngestionService)(nil)
