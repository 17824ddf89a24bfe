// Package insight answers the dashboard's questions over the partitioned
// datasets: latest values, trends, yearly summaries, and scenario forecasts.
package insight

import (
	"context"
	"sort"
	"strings"

	"fi-dashboard/internal/domain"
)

// InsightService derives presentation data from a DatasetSource. It holds no
// data of its own; each call reads the source afresh.
//
//nolint:revive // Name chosen for clarity across package boundaries
type InsightService struct {
	source     domain.DatasetSource
	summarizer domain.YearlySummarizer
	metrics    []domain.MetricDefinition
	scenarios  []domain.Scenario
	allowed    domain.ScenarioSet
}

// NewInsightService creates a new InsightService. Empty metrics or scenarios
// fall back to the domain defaults. summarizer may be nil, in which case
// YearlySummary is computed in process.
func NewInsightService(
	source domain.DatasetSource,
	summarizer domain.YearlySummarizer,
	metrics []domain.MetricDefinition,
	scenarios []domain.Scenario,
) *InsightService {
	if len(metrics) == 0 {
		metrics = domain.DefaultOverviewMetrics()
	}
	if len(scenarios) == 0 {
		scenarios = domain.DefaultScenarios()
	}
	if summarizer == nil {
		summarizer = InProcessSummarizer{}
	}
	return &InsightService{
		source:     source,
		summarizer: summarizer,
		metrics:    metrics,
		scenarios:  scenarios,
		allowed:    domain.NewScenarioSet(scenarios...),
	}
}

// LatestValue returns the observation of indicatorCode with the greatest
// year. When several observations share that year the one appearing later
// in the file wins.
func (s *InsightService) LatestValue(ctx context.Context, indicatorCode string) (*domain.Observation, error) {
	code := strings.TrimSpace(indicatorCode)
	if code == "" {
		return nil, domain.ErrValidation("indicator code is required")
	}
	set, err := s.source.Observations(ctx)
	if err != nil {
		return nil, err
	}
	latest := latestOf(set.Observations, code)
	if latest == nil {
		return nil, domain.ErrNotFound("", "no observations for indicator_code %q", code)
	}
	return latest, nil
}

func latestOf(obs []domain.Observation, code string) *domain.Observation {
	var latest *domain.Observation
	for i := range obs {
		if obs[i].IndicatorCode != code {
			continue
		}
		if latest == nil || obs[i].Year >= latest.Year {
			o := obs[i]
			latest = &o
		}
	}
	return latest
}

// Overview returns one card per configured metric plus partition counts.
// A metric without observations yields a card with a nil Value.
func (s *InsightService) Overview(ctx context.Context) (*domain.Overview, error) {
	view, err := s.source.Partitions(ctx)
	if err != nil {
		return nil, err
	}
	set, err := s.source.Observations(ctx)
	if err != nil {
		return nil, err
	}

	cards := make([]domain.MetricCard, 0, len(s.metrics))
	for _, m := range s.metrics {
		card := domain.MetricCard{IndicatorCode: m.IndicatorCode, Label: m.Label}
		if latest := latestOf(set.Observations, m.IndicatorCode); latest != nil {
			card.Year = latest.Year
			card.Value = latest.ValueNumeric
		}
		card.Display = domain.FormatValue(card.Value)
		cards = append(cards, card)
	}
	return &domain.Overview{Metrics: cards, Counts: view.Counts()}, nil
}

// Indicators lists the distinct non-null indicator labels of the
// observations in order of first appearance.
func (s *InsightService) Indicators(ctx context.Context) ([]domain.IndicatorInfo, error) {
	set, err := s.source.Observations(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	out := make([]domain.IndicatorInfo, 0)
	for _, o := range set.Observations {
		if o.Indicator == nil {
			continue
		}
		label := *o.Indicator
		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, domain.IndicatorInfo{Label: label, FirstYear: o.Year, LastYear: o.Year})
		}
		info := &out[i]
		info.Count++
		if o.Year < info.FirstYear {
			info.FirstYear = o.Year
		}
		if o.Year > info.LastYear {
			info.LastYear = o.Year
		}
		if o.IndicatorCode != "" && !contains(info.Codes, o.IndicatorCode) {
			info.Codes = append(info.Codes, o.IndicatorCode)
		}
	}
	return out, nil
}

// Trend returns the observations labelled indicator sorted by year. Rows of
// the same year keep their file order.
func (s *InsightService) Trend(ctx context.Context, indicator string) ([]domain.Observation, error) {
	if strings.TrimSpace(indicator) == "" {
		return nil, domain.ErrValidation("indicator is required")
	}
	set, err := s.source.Observations(ctx)
	if err != nil {
		return nil, err
	}
	out := filterByLabel(set.Observations, indicator)
	if len(out) == 0 {
		return nil, domain.ErrNotFound("", "no observations for indicator %q", indicator)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

func filterByLabel(obs []domain.Observation, label string) []domain.Observation {
	out := make([]domain.Observation, 0)
	for _, o := range obs {
		if o.IndicatorLabel() == label && o.Indicator != nil {
			out = append(out, o)
		}
	}
	return out
}

// YearlySummary aggregates the observations of indicator per year.
func (s *InsightService) YearlySummary(ctx context.Context, indicator string) ([]domain.YearSummary, error) {
	if strings.TrimSpace(indicator) == "" {
		return nil, domain.ErrValidation("indicator is required")
	}
	set, err := s.source.Observations(ctx)
	if err != nil {
		return nil, err
	}
	if len(filterByLabel(set.Observations, indicator)) == 0 {
		return nil, domain.ErrNotFound("", "no observations for indicator %q", indicator)
	}
	return s.summarizer.YearlySummary(ctx, set, indicator)
}

// Scenarios returns the scenarios present in the forecast dataset in file
// order.
func (s *InsightService) Scenarios(ctx context.Context) ([]domain.Scenario, error) {
	rows, err := s.source.Forecasts(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[domain.Scenario]bool)
	out := make([]domain.Scenario, 0)
	for _, r := range rows {
		if !seen[r.Scenario] {
			seen[r.Scenario] = true
			out = append(out, r.Scenario)
		}
	}
	return out, nil
}

// Forecast returns the forecast rows of one scenario sorted by year. The
// scenario must belong to the configured universe.
func (s *InsightService) Forecast(ctx context.Context, scenario domain.Scenario) ([]domain.ForecastRecord, error) {
	if !s.allowed.Contains(scenario) {
		return nil, domain.ErrValidation("unknown scenario %q: expected one of %s", scenario, joinScenarios(s.scenarios))
	}
	rows, err := s.source.Forecasts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ForecastRecord, 0)
	for _, r := range rows {
		if r.Scenario == scenario {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

// PartitionCounts returns the number of rows in each partition together with
// the rows dropped for an unrecognised record_type.
func (s *InsightService) PartitionCounts(ctx context.Context) (domain.PartitionCounts, error) {
	view, err := s.source.Partitions(ctx)
	if err != nil {
		return domain.PartitionCounts{}, err
	}
	return view.Counts(), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func joinScenarios(list []domain.Scenario) string {
	parts := make([]string, len(list))
	for i, s := range list {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
