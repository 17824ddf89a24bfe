package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"fi-dashboard/internal/domain"
)

// nullTokens are the cell spellings read as a missing value.
var nullTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"<NA>": true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
	"None": true,
}

// IsNull reports whether a raw cell denotes a missing value.
func IsNull(s string) bool {
	return nullTokens[strings.TrimSpace(s)]
}

// DecodeRecords converts the rows of a unified dataset into typed records.
// It fails with *domain.SchemaError when required columns are absent and
// with *domain.LoadError when a value_numeric cell is not a number.
func DecodeRecords(ds *domain.Dataset) ([]domain.Record, error) {
	if err := ValidateSchema(ds, domain.RequiredColumns); err != nil {
		return nil, err
	}

	required := make(map[string]bool, len(domain.RequiredColumns))
	for _, c := range domain.RequiredColumns {
		required[c] = true
	}

	col := make(map[string]int, len(ds.Columns))
	for i, c := range ds.Columns {
		col[c] = i
	}

	out := make([]domain.Record, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		cell := func(name string) string {
			i := col[name]
			if i >= len(row.Values) {
				return ""
			}
			return row.Values[i]
		}

		rec := domain.Record{
			Line:            row.Line,
			RecordType:      strings.TrimSpace(cell(domain.ColRecordType)),
			IndicatorCode:   strings.TrimSpace(cell(domain.ColIndicatorCode)),
			ObservationDate: strings.TrimSpace(cell(domain.ColObservationDate)),
			Confidence:      strings.TrimSpace(cell(domain.ColConfidence)),
		}
		if v := cell(domain.ColIndicator); !IsNull(v) {
			label := strings.TrimSpace(v)
			rec.Indicator = &label
		}
		if v := cell(domain.ColValueNumeric); !IsNull(v) {
			f, err := parseFloat(v)
			if err != nil {
				return nil, domain.ErrLoad(ds.Source, fmt.Errorf("line %d: value_numeric: %w", row.Line, err))
			}
			rec.ValueNumeric = &f
		}

		for i, c := range ds.Columns {
			if required[c] || i >= len(row.Values) {
				continue
			}
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[c] = row.Values[i]
		}

		out = append(out, rec)
	}
	return out, nil
}

// DecodeForecasts converts a forecast dataset into typed rows. Scenarios
// outside allowed are rejected; a nil allowed set accepts any scenario.
func DecodeForecasts(ds *domain.Dataset, allowed domain.ScenarioSet) ([]domain.ForecastRecord, error) {
	if err := ValidateSchema(ds, domain.ForecastColumns); err != nil {
		return nil, err
	}

	iScenario := ds.ColumnIndex(domain.ColScenario)
	iYear := ds.ColumnIndex(domain.ColYear)
	iUsage := ds.ColumnIndex(domain.ColUsageForecast)
	iAccess := ds.ColumnIndex(domain.ColAccessForecast)

	out := make([]domain.ForecastRecord, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		fail := func(format string, args ...interface{}) error {
			return domain.ErrLoad(ds.Source, fmt.Errorf("line %d: "+format, append([]interface{}{row.Line}, args...)...))
		}

		scenario := domain.Scenario(strings.TrimSpace(row.Values[iScenario]))
		if scenario == "" {
			return nil, fail("empty scenario")
		}
		if allowed != nil && !allowed.Contains(scenario) {
			return nil, fail("unknown scenario %q", scenario)
		}

		year, err := parseYearNumber(row.Values[iYear])
		if err != nil {
			return nil, fail("year: %v", err)
		}
		usage, err := parseFloat(row.Values[iUsage])
		if err != nil {
			return nil, fail("usage_forecast: %v", err)
		}
		access, err := parseFloat(row.Values[iAccess])
		if err != nil {
			return nil, fail("access_forecast: %v", err)
		}

		out = append(out, domain.ForecastRecord{
			Line:           row.Line,
			Scenario:       scenario,
			Year:           year,
			UsageForecast:  usage,
			AccessForecast: access,
		})
	}
	return out, nil
}

// parseFloat accepts finite numbers only; JSON and chart scales cannot
// carry infinities.
func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return f, nil
}

// parseYearNumber accepts "2025" and integral floats such as "2025.0".
func parseYearNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not an integer year", s)
	}
	return int(f), nil
}
