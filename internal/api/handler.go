// Package api provides the JSON and CSV HTTP endpoints of the dashboard.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fi-dashboard/internal/dataset"
	"fi-dashboard/internal/domain"
	"fi-dashboard/internal/middleware"
)

// insightService is the read side consumed by the handlers.
type insightService interface {
	LatestValue(ctx context.Context, indicatorCode string) (*domain.Observation, error)
	Overview(ctx context.Context) (*domain.Overview, error)
	Indicators(ctx context.Context) ([]domain.IndicatorInfo, error)
	Trend(ctx context.Context, indicator string) ([]domain.Observation, error)
	YearlySummary(ctx context.Context, indicator string) ([]domain.YearSummary, error)
	Scenarios(ctx context.Context) ([]domain.Scenario, error)
	Forecast(ctx context.Context, scenario domain.Scenario) ([]domain.ForecastRecord, error)
	PartitionCounts(ctx context.Context) (domain.PartitionCounts, error)
}

// cacheController exposes the dataset cache to operators.
type cacheController interface {
	Invalidate() int
	CacheStats() dataset.CacheStats
	Scenarios() []domain.Scenario
}

// APIHandler serves the /api/v1 routes.
type APIHandler struct {
	insight insightService
	cache   cacheController
	logger  *slog.Logger
}

// NewHandler creates a new APIHandler.
func NewHandler(insight insightService, cache cacheController, logger *slog.Logger) *APIHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &APIHandler{insight: insight, cache: cache, logger: logger}
}

// Routes returns a router with every /api/v1 endpoint, to be mounted at
// /api/v1.
func (h *APIHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/overview", h.getOverview)
	r.Get("/partitions", h.getPartitions)
	r.Get("/indicators", h.listIndicators)
	r.Get("/indicators/{code}/latest", h.getLatestValue)
	r.Get("/trends", h.getTrend)
	r.Get("/trends.csv", h.downloadTrend)
	r.Get("/trends/summary", h.getYearlySummary)
	r.Get("/scenarios", h.listScenarios)
	r.Get("/forecasts", h.getForecast)
	r.Get("/forecasts.csv", h.downloadForecast)
	r.Get("/cache", h.getCacheStats)
	r.Post("/cache/invalidate", h.invalidateCache)
	return r
}

// Healthz reports liveness. It does not touch the datasets.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// listResponse wraps collection results.
type listResponse struct {
	Data interface{} `json:"data"`
}

// writeJSON encodes v before writing the header so an unencodable value
// becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(Error{Code: status, Message: "internal server error"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func (h *APIHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatusFromDomainError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			"path", r.URL.Path,
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"error", err)
	}
	writeJSON(w, status, errorBody(status, err))
}
