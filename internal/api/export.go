package api

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"

	"fi-dashboard/internal/domain"
)

// Download file names offered to browsers.
const (
	trendFileName    = "trend_data.csv"
	forecastFileName = "forecast_data.csv"
)

func (h *APIHandler) downloadTrend(w http.ResponseWriter, r *http.Request) {
	obs, err := h.insight.Trend(r.Context(), r.URL.Query().Get("indicator"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	setCSVHeaders(w, trendFileName)
	if err := WriteObservationsCSV(w, obs); err != nil {
		h.logger.Warn("write trend csv", "error", err)
	}
}

func (h *APIHandler) downloadForecast(w http.ResponseWriter, r *http.Request) {
	rows, err := h.insight.Forecast(r.Context(), scenarioParam(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	setCSVHeaders(w, forecastFileName)
	if err := WriteForecastsCSV(w, rows); err != nil {
		h.logger.Warn("write forecast csv", "error", err)
	}
}

func setCSVHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

// WriteObservationsCSV writes observations with the unified-dataset columns,
// any extra columns in name order, and the derived year. Null cells are
// written empty.
func WriteObservationsCSV(w io.Writer, obs []domain.Observation) error {
	extraSet := make(map[string]bool)
	for _, o := range obs {
		for k := range o.Extra {
			extraSet[k] = true
		}
	}
	extras := make([]string, 0, len(extraSet))
	for k := range extraSet {
		extras = append(extras, k)
	}
	sort.Strings(extras)

	cw := csv.NewWriter(w)
	header := append(append(append([]string{}, domain.RequiredColumns...), extras...), "year")
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, o := range obs {
		value := ""
		if o.ValueNumeric != nil {
			value = strconv.FormatFloat(*o.ValueNumeric, 'f', -1, 64)
		}
		row := []string{o.RecordType, o.IndicatorLabel(), o.IndicatorCode, o.ObservationDate, value, o.Confidence}
		for _, k := range extras {
			row = append(row, o.Extra[k])
		}
		row = append(row, strconv.Itoa(o.Year))
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteForecastsCSV writes forecast rows with the forecast-dataset columns.
func WriteForecastsCSV(w io.Writer, rows []domain.ForecastRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.ForecastColumns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{
			string(r.Scenario),
			strconv.Itoa(r.Year),
			strconv.FormatFloat(r.UsageForecast, 'f', -1, 64),
			strconv.FormatFloat(r.AccessForecast, 'f', -1, 64),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
