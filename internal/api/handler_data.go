package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"fi-dashboard/internal/domain"
)

func (h *APIHandler) getOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := h.insight.Overview(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

func (h *APIHandler) getPartitions(w http.ResponseWriter, r *http.Request) {
	counts, err := h.insight.PartitionCounts(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (h *APIHandler) listIndicators(w http.ResponseWriter, r *http.Request) {
	indicators, err := h.insight.Indicators(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Data: indicators})
}

func (h *APIHandler) getLatestValue(w http.ResponseWriter, r *http.Request) {
	obs, err := h.insight.LatestValue(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, obs)
}

// trendResponse is the body of GET /trends.
type trendResponse struct {
	Indicator string               `json:"indicator"`
	Data      []domain.Observation `json:"data"`
}

func (h *APIHandler) getTrend(w http.ResponseWriter, r *http.Request) {
	indicator := r.URL.Query().Get("indicator")
	obs, err := h.insight.Trend(r.Context(), indicator)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trendResponse{Indicator: indicator, Data: obs})
}

func (h *APIHandler) getYearlySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.insight.YearlySummary(r.Context(), r.URL.Query().Get("indicator"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Data: summary})
}

// scenariosResponse lists the configured scenario universe and the scenarios
// present in the forecast file.
type scenariosResponse struct {
	Configured []domain.Scenario `json:"configured"`
	Available  []domain.Scenario `json:"available"`
}

func (h *APIHandler) listScenarios(w http.ResponseWriter, r *http.Request) {
	available, err := h.insight.Scenarios(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scenariosResponse{Configured: h.cache.Scenarios(), Available: available})
}

// forecastResponse is the body of GET /forecasts.
type forecastResponse struct {
	Scenario domain.Scenario         `json:"scenario"`
	Data     []domain.ForecastRecord `json:"data"`
}

func scenarioParam(r *http.Request) domain.Scenario {
	return domain.Scenario(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("scenario"))))
}

func (h *APIHandler) getForecast(w http.ResponseWriter, r *http.Request) {
	scenario := scenarioParam(r)
	rows, err := h.insight.Forecast(r.Context(), scenario)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, forecastResponse{Scenario: scenario, Data: rows})
}

func (h *APIHandler) getCacheStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.cache.CacheStats())
}

func (h *APIHandler) invalidateCache(w http.ResponseWriter, _ *http.Request) {
	n := h.cache.Invalidate()
	writeJSON(w, http.StatusOK, map[string]int{"invalidated": n})
}
