package domain

import "strconv"

// MetricDefinition selects an indicator for an overview metric card.
type MetricDefinition struct {
	IndicatorCode string `yaml:"indicator_code" json:"indicator_code"`
	Label         string `yaml:"label" json:"label"`
}

// DefaultOverviewMetrics returns the metric cards shown when none are
// configured.
func DefaultOverviewMetrics() []MetricDefinition {
	return []MetricDefinition{
		{IndicatorCode: "ACC_OWNERSHIP", Label: "Account Ownership (%)"},
		{IndicatorCode: "ACC_MM_ACCOUNT", Label: "Mobile Money Accounts (%)"},
	}
}

// MetricCard is the latest value of one overview metric. Value is nil when
// the indicator has no observations or its latest observation is null.
type MetricCard struct {
	IndicatorCode string   `json:"indicator_code"`
	Label         string   `json:"label"`
	Year          int      `json:"year,omitempty"`
	Value         *float64 `json:"value"`
	Display       string   `json:"display"`
}

// FormatValue renders a metric value with one decimal, or "n/a" for null.
func FormatValue(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

// Overview is the data behind the overview page.
type Overview struct {
	Metrics []MetricCard    `json:"metrics"`
	Counts  PartitionCounts `json:"counts"`
}

// IndicatorInfo describes one indicator label found among observations.
type IndicatorInfo struct {
	Label     string   `json:"label"`
	Codes     []string `json:"codes"`
	Count     int      `json:"count"`
	FirstYear int      `json:"first_year"`
	LastYear  int      `json:"last_year"`
}
