// Package testutil provides shared mock implementations of domain interfaces
// and CSV fixtures for use in tests across the codebase.
package testutil

import (
	"context"

	"fi-dashboard/internal/domain"
)

// === Dataset Source Mock ===

// MockDatasetSource implements domain.DatasetSource for testing.
type MockDatasetSource struct {
	PartitionsFn   func(ctx context.Context) (domain.PartitionedView, error)
	ObservationsFn func(ctx context.Context) (domain.ObservationSet, error)
	ForecastsFn    func(ctx context.Context) ([]domain.ForecastRecord, error)
}

// Partitions implements the interface method for testing.
func (m *MockDatasetSource) Partitions(ctx context.Context) (domain.PartitionedView, error) {
	if m.PartitionsFn != nil {
		return m.PartitionsFn(ctx)
	}
	panic("unexpected call to MockDatasetSource.Partitions")
}

// Observations implements the interface method for testing.
func (m *MockDatasetSource) Observations(ctx context.Context) (domain.ObservationSet, error) {
	if m.ObservationsFn != nil {
		return m.ObservationsFn(ctx)
	}
	panic("unexpected call to MockDatasetSource.Observations")
}

// Forecasts implements the interface method for testing.
func (m *MockDatasetSource) Forecasts(ctx context.Context) ([]domain.ForecastRecord, error) {
	if m.ForecastsFn != nil {
		return m.ForecastsFn(ctx)
	}
	panic("unexpected call to MockDatasetSource.Forecasts")
}

var _ domain.DatasetSource = (*MockDatasetSource)(nil)

// === Yearly Summarizer Mock ===

// MockSummarizer implements domain.YearlySummarizer for testing.
type MockSummarizer struct {
	YearlySummaryFn func(ctx context.Context, set domain.ObservationSet, indicator string) ([]domain.YearSummary, error)
}

// YearlySummary implements the interface method for testing.
func (m *MockSummarizer) YearlySummary(ctx context.Context, set domain.ObservationSet, indicator string) ([]domain.YearSummary, error) {
	if m.YearlySummaryFn != nil {
		return m.YearlySummaryFn(ctx, set, indicator)
	}
	panic("unexpected call to MockSummarizer.YearlySummary")
}

var _ domain.YearlySummarizer = (*MockSummarizer)(nil)
