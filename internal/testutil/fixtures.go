package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"fi-dashboard/internal/domain"
)

// UnifiedHeader is the header row of a unified dataset fixture.
const UnifiedHeader = "record_type,indicator,indicator_code,observation_date,value_numeric,confidence\n"

// ForecastHeader is the header row of a forecast dataset fixture.
const ForecastHeader = "scenario,year,usage_forecast,access_forecast\n"

// SampleUnified is a small unified dataset covering every record type.
// Observation rows are deliberately out of year order.
const SampleUnified = UnifiedHeader +
	"observation,Account Ownership,ACC_OWNERSHIP,2021-06-01,46.0,high\n" +
	"observation,Account Ownership,ACC_OWNERSHIP,2017-01-01,35.0,high\n" +
	"observation,Mobile Money Accounts,ACC_MM_ACCOUNT,2021-06-01,9.45,medium\n" +
	"observation,Mobile Money Accounts,ACC_MM_ACCOUNT,2014-01-01,0.0,low\n" +
	"event,,NA,2020-01-01,,medium\n" +
	"impact_link,Account Ownership,ACC_OWNERSHIP,2021-01-01,,medium\n" +
	"target,Account Ownership,ACC_OWNERSHIP,2030-01-01,70.0,high\n" +
	"baseline,,,2020-01-01,,\n"

// SampleForecast is a small forecast dataset for the default scenarios.
const SampleForecast = ForecastHeader +
	"baseline,2026,30.0,52.0\n" +
	"baseline,2025,28.0,50.0\n" +
	"optimistic,2025,31.0,55.0\n" +
	"optimistic,2026,36.0,60.0\n" +
	"pessimistic,2025,25.0,47.0\n"

// WriteFile writes content to name inside a fresh temp directory and returns
// the absolute path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

// Observation builds a year-annotated observation for tests.
func Observation(line int, label, code string, year int, value *float64) domain.Observation {
	var indicator *string
	if label != "" {
		indicator = &label
	}
	return domain.Observation{
		Record: domain.Record{
			Line:            line,
			RecordType:      string(domain.RecordObservation),
			Indicator:       indicator,
			IndicatorCode:   code,
			ObservationDate: fmt.Sprintf("%d-01-01", year),
			ValueNumeric:    value,
		},
		Year: year,
	}
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
