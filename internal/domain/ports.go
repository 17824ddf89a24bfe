package domain

import "context"

// DatasetLoader reads a tabular dataset from a path.
// Implemented by dataset.Loader and dataset.Cache.
type DatasetLoader interface {
	Load(path string) (*Dataset, error)
}

// DatasetSource provides the validated, partitioned datasets to consumers.
// Implemented by ingestion.IngestionService.
type DatasetSource interface {
	Partitions(ctx context.Context) (PartitionedView, error)
	Observations(ctx context.Context) (ObservationSet, error)
	Forecasts(ctx context.Context) ([]ForecastRecord, error)
}

// YearlySummarizer groups observations of one indicator by year.
// Implemented by engine.SummaryEngine.
type YearlySummarizer interface {
	YearlySummary(ctx context.Context, set ObservationSet, indicator string) ([]YearSummary, error)
}
