package insight

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fi-dashboard/internal/domain"
	"fi-dashboard/internal/testutil"
)

var f = testutil.Float

func sourceWith(obs ...domain.Observation) *testutil.MockDatasetSource {
	return &testutil.MockDatasetSource{
		ObservationsFn: func(_ context.Context) (domain.ObservationSet, error) {
			return domain.ObservationSet{Fingerprint: "fp", Observations: obs}, nil
		},
		PartitionsFn: func(_ context.Context) (domain.PartitionedView, error) {
			return domain.PartitionedView{
				Observations: &domain.Dataset{Rows: make([]domain.Row, len(obs))},
				Events:       &domain.Dataset{},
				ImpactLinks:  &domain.Dataset{},
				Targets:      &domain.Dataset{},
				Dropped:      2,
				DroppedTypes: map[string]int{"baseline": 2},
			}, nil
		},
	}
}

func TestLatestValue_MaxYearNotFileOrder(t *testing.T) {
	svc := NewInsightService(sourceWith(
		testutil.Observation(2, "Account Ownership", "ACC_OWNERSHIP", 2021, f(46.0)),
		testutil.Observation(3, "Account Ownership", "ACC_OWNERSHIP", 2017, f(35.0)),
	), nil, nil, nil)

	latest, err := svc.LatestValue(context.Background(), "ACC_OWNERSHIP")
	require.NoError(t, err)

	assert.Equal(t, 2021, latest.Year)
	require.NotNil(t, latest.ValueNumeric)
	assert.InDelta(t, 46.0, *latest.ValueNumeric, 1e-9)
}

func TestLatestValue_TieGoesToLaterRow(t *testing.T) {
	svc := NewInsightService(sourceWith(
		testutil.Observation(2, "X", "X1", 2021, f(1)),
		testutil.Observation(3, "X", "X1", 2021, f(2)),
		testutil.Observation(4, "X", "X1", 2019, f(3)),
	), nil, nil, nil)

	latest, err := svc.LatestValue(context.Background(), "X1")
	require.NoError(t, err)
	assert.Equal(t, 3, latest.Line)
}

func TestLatestValue_Errors(t *testing.T) {
	svc := NewInsightService(sourceWith(testutil.Observation(2, "X", "X1", 2021, f(1))), nil, nil, nil)

	_, err := svc.LatestValue(context.Background(), "NOPE")
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	_, err = svc.LatestValue(context.Background(), " ")
	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestLatestValue_PropagatesSourceError(t *testing.T) {
	boom := domain.ErrSchema("/data/unified.csv", []string{"confidence"})
	svc := NewInsightService(&testutil.MockDatasetSource{
		ObservationsFn: func(_ context.Context) (domain.ObservationSet, error) { return domain.ObservationSet{}, boom },
	}, nil, nil, nil)

	_, err := svc.LatestValue(context.Background(), "X1")
	assert.True(t, errors.Is(err, boom))
}

func TestOverview(t *testing.T) {
	svc := NewInsightService(sourceWith(
		testutil.Observation(2, "Account Ownership", "ACC_OWNERSHIP", 2021, f(46.04)),
		testutil.Observation(3, "Account Ownership", "ACC_OWNERSHIP", 2017, f(35.0)),
	), nil, nil, nil)

	ov, err := svc.Overview(context.Background())
	require.NoError(t, err)

	require.Len(t, ov.Metrics, 2)
	assert.Equal(t, "Account Ownership (%)", ov.Metrics[0].Label)
	assert.Equal(t, "46.0", ov.Metrics[0].Display)
	assert.Equal(t, 2021, ov.Metrics[0].Year)
	assert.Equal(t, "ACC_MM_ACCOUNT", ov.Metrics[1].IndicatorCode)
	assert.Nil(t, ov.Metrics[1].Value)
	assert.Equal(t, "n/a", ov.Metrics[1].Display)
	assert.Equal(t, 2, ov.Counts.Observations)
	assert.Equal(t, 2, ov.Counts.Dropped)
}

func TestOverview_ConfiguredMetrics(t *testing.T) {
	svc := NewInsightService(sourceWith(
		testutil.Observation(2, "Usage", "USG_DIGITAL", 2024, f(12.349)),
	), nil, []domain.MetricDefinition{{IndicatorCode: "USG_DIGITAL", Label: "Digital Payments (%)"}}, nil)

	ov, err := svc.Overview(context.Background())
	require.NoError(t, err)

	require.Len(t, ov.Metrics, 1)
	assert.Equal(t, "12.3", ov.Metrics[0].Display)
}

func TestIndicators_FirstAppearanceOrder(t *testing.T) {
	svc := NewInsightService(sourceWith(
		testutil.Observation(2, "Mobile Money Accounts", "ACC_MM_ACCOUNT", 2021, f(9.45)),
		testutil.Observation(3, "", "NA", 2020, nil),
		testutil.Observation(4, "Account Ownership", "ACC_OWNERSHIP", 2017, f(35)),
		testutil.Observation(5, "Mobile Money Accounts", "ACC_MM_ACCOUNT", 2014, f(0)),
	), nil, nil, nil)

	got, err := svc.Indicators(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.IndicatorInfo{
		{Label: "Mobile Money Accounts", Codes: []string{"ACC_MM_ACCOUNT"}, Count: 2, FirstYear: 2014, LastYear: 2021},
		{Label: "Account Ownership", Codes: []string{"ACC_OWNERSHIP"}, Count: 1, FirstYear: 2017, LastYear: 2017},
	}, got)
}

func TestTrend_SortedByYearStable(t *testing.T) {
	svc := NewInsightService(sourceWith(
		testutil.Observation(2, "X", "X1", 2021, f(3)),
		testutil.Observation(3, "Y", "Y1", 2010, f(9)),
		testutil.Observation(4, "X", "X1", 2014, f(1)),
		testutil.Observation(5, "X", "X1", 2021, f(4)),
	), nil, nil, nil)

	got, err := svc.Trend(context.Background(), "X")
	require.NoError(t, err)

	lines := make([]int, len(got))
	for i, o := range got {
		lines[i] = o.Line
	}
	assert.Equal(t, []int{4, 2, 5}, lines)
}

func TestTrend_Errors(t *testing.T) {
	svc := NewInsightService(sourceWith(testutil.Observation(2, "X", "X1", 2021, f(3))), nil, nil, nil)

	_, err := svc.Trend(context.Background(), "")
	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)

	_, err = svc.Trend(context.Background(), "Unknown")
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestYearlySummary_DelegatesToSummarizer(t *testing.T) {
	var gotIndicator string
	summarizer := &testutil.MockSummarizer{
		YearlySummaryFn: func(_ context.Context, set domain.ObservationSet, indicator string) ([]domain.YearSummary, error) {
			gotIndicator = indicator
			assert.Equal(t, "fp", set.Fingerprint)
			return []domain.YearSummary{{Indicator: indicator, Year: 2021, Count: 1}}, nil
		},
	}
	svc := NewInsightService(sourceWith(testutil.Observation(2, "X", "X1", 2021, f(3))), summarizer, nil, nil)

	got, err := svc.YearlySummary(context.Background(), "X")
	require.NoError(t, err)
	assert.Equal(t, "X", gotIndicator)
	assert.Len(t, got, 1)

	_, err = svc.YearlySummary(context.Background(), "Z")
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func forecastSource() *testutil.MockDatasetSource {
	return &testutil.MockDatasetSource{
		ForecastsFn: func(_ context.Context) ([]domain.ForecastRecord, error) {
			return []domain.ForecastRecord{
				{Line: 2, Scenario: domain.ScenarioOptimistic, Year: 2026, UsageForecast: 36},
				{Line: 3, Scenario: domain.ScenarioBaseline, Year: 2026, UsageForecast: 30},
				{Line: 4, Scenario: domain.ScenarioBaseline, Year: 2025, UsageForecast: 28},
				{Line: 5, Scenario: domain.ScenarioOptimistic, Year: 2025, UsageForecast: 31},
			}, nil
		},
	}
}

func TestScenarios_FileOrder(t *testing.T) {
	svc := NewInsightService(forecastSource(), nil, nil, nil)

	got, err := svc.Scenarios(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Scenario{domain.ScenarioOptimistic, domain.ScenarioBaseline}, got)
}

func TestForecast(t *testing.T) {
	svc := NewInsightService(forecastSource(), nil, nil, nil)

	got, err := svc.Forecast(context.Background(), domain.ScenarioBaseline)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2025, got[0].Year)
	assert.Equal(t, 2026, got[1].Year)

	empty, err := svc.Forecast(context.Background(), domain.ScenarioPessimistic)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = svc.Forecast(context.Background(), "stretch")
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, err.Error(), "baseline, optimistic, pessimistic")
}

func TestPartitionCounts(t *testing.T) {
	svc := NewInsightService(sourceWith(testutil.Observation(2, "X", "X1", 2021, f(3))), nil, nil, nil)

	got, err := svc.PartitionCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, got.Observations)
	assert.Equal(t, 1, got.Total())
	assert.Equal(t, map[string]int{"baseline": 2}, got.DroppedTypes)
}
