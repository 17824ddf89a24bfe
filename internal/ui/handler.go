// Package ui renders the server-side HTML dashboard.
package ui

import (
	"context"
	"log/slog"
	"net/http"

	"fi-dashboard/internal/domain"

	gomponents "maragu.dev/gomponents"
)

// insightReader is the read side the pages are built from.
type insightReader interface {
	Overview(ctx context.Context) (*domain.Overview, error)
	Indicators(ctx context.Context) ([]domain.IndicatorInfo, error)
	Trend(ctx context.Context, indicator string) ([]domain.Observation, error)
	YearlySummary(ctx context.Context, indicator string) ([]domain.YearSummary, error)
	Scenarios(ctx context.Context) ([]domain.Scenario, error)
	Forecast(ctx context.Context, scenario domain.Scenario) ([]domain.ForecastRecord, error)
	PartitionCounts(ctx context.Context) (domain.PartitionCounts, error)
}

type Handler struct {
	Insight    insightReader
	Logger     *slog.Logger
	Production bool
}

func NewHandler(insight insightReader, logger *slog.Logger, production bool) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		Insight:    insight,
		Logger:     logger,
		Production: production,
	}
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}
