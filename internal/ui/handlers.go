package ui

import (
	"net/http"
	"strings"

	"fi-dashboard/internal/domain"
)

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	ov, err := h.Insight.Overview(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, overviewPage(ov))
}

// Trends shows one indicator, chosen with ?indicator=. Without it the first
// indicator in the file is shown.
func (h *Handler) Trends(w http.ResponseWriter, r *http.Request) {
	indicators, err := h.Insight.Indicators(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	d := trendsData{Indicators: indicators, Selected: r.URL.Query().Get("indicator")}
	if len(indicators) == 0 {
		renderHTML(w, http.StatusOK, trendsPage(d))
		return
	}
	if d.Selected == "" {
		d.Selected = indicators[0].Label
	}

	d.Observations, err = h.Insight.Trend(r.Context(), d.Selected)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	d.Summary, err = h.Insight.YearlySummary(r.Context(), d.Selected)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, trendsPage(d))
}

// Forecasts shows one scenario, chosen with ?scenario=. Without it the first
// scenario in the file is shown.
func (h *Handler) Forecasts(w http.ResponseWriter, r *http.Request) {
	available, err := h.Insight.Scenarios(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	d := forecastsData{
		Available: available,
		Selected:  domain.Scenario(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("scenario")))),
	}
	if len(available) == 0 {
		renderHTML(w, http.StatusOK, forecastsPage(d))
		return
	}
	if d.Selected == "" {
		d.Selected = available[0]
	}

	d.Rows, err = h.Insight.Forecast(r.Context(), d.Selected)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, forecastsPage(d))
}

func (h *Handler) Data(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Insight.PartitionCounts(r.Context())
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	renderHTML(w, http.StatusOK, dataPage(counts))
}
