package domain

import "strings"

// Scenario names a forecasting assumption set.
type Scenario string

// Scenarios shipped with the default configuration.
const (
	ScenarioBaseline    Scenario = "baseline"
	ScenarioOptimistic  Scenario = "optimistic"
	ScenarioPessimistic Scenario = "pessimistic"
)

// DefaultScenarios returns the scenario set used when none is configured.
func DefaultScenarios() []Scenario {
	return []Scenario{ScenarioBaseline, ScenarioOptimistic, ScenarioPessimistic}
}

// Title returns the scenario name with its first letter upper-cased.
func (s Scenario) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// ScenarioSet is the closed set of scenarios a forecast file may contain.
type ScenarioSet map[Scenario]struct{}

// NewScenarioSet builds a set from the given scenarios.
func NewScenarioSet(scenarios ...Scenario) ScenarioSet {
	set := make(ScenarioSet, len(scenarios))
	for _, s := range scenarios {
		set[s] = struct{}{}
	}
	return set
}

// Contains reports whether s is a member of the set.
func (s ScenarioSet) Contains(sc Scenario) bool {
	_, ok := s[sc]
	return ok
}

// Column names of the forecast dataset.
const (
	ColScenario       = "scenario"
	ColYear           = "year"
	ColUsageForecast  = "usage_forecast"
	ColAccessForecast = "access_forecast"
)

// ForecastColumns lists the columns every forecast dataset must carry.
var ForecastColumns = []string{ColScenario, ColYear, ColUsageForecast, ColAccessForecast}

// ForecastRecord is one row of the scenario forecast dataset.
type ForecastRecord struct {
	Line           int      `json:"-"`
	Scenario       Scenario `json:"scenario"`
	Year           int      `json:"year"`
	UsageForecast  float64  `json:"usage_forecast"`
	AccessForecast float64  `json:"access_forecast"`
}
