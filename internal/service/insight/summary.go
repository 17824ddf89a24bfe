package insight

import (
	"context"
	"sort"

	"fi-dashboard/internal/domain"
)

// InProcessSummarizer computes yearly summaries without a query engine.
// It produces the same figures as engine.SummaryEngine.
type InProcessSummarizer struct{}

// YearlySummary groups the observations labelled indicator by year. Null
// values count towards Count but not Valued, Min, Max, or Mean.
func (InProcessSummarizer) YearlySummary(ctx context.Context, set domain.ObservationSet, indicator string) ([]domain.YearSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	byYear := make(map[int]*domain.YearSummary)
	sums := make(map[int]float64)
	for _, o := range filterByLabel(set.Observations, indicator) {
		ys, ok := byYear[o.Year]
		if !ok {
			ys = &domain.YearSummary{Indicator: indicator, Year: o.Year}
			byYear[o.Year] = ys
		}
		ys.Count++
		if o.ValueNumeric == nil {
			continue
		}
		v := *o.ValueNumeric
		if ys.Valued == 0 || v < ys.Min {
			ys.Min = v
		}
		if ys.Valued == 0 || v > ys.Max {
			ys.Max = v
		}
		ys.Valued++
		sums[o.Year] += v
	}

	out := make([]domain.YearSummary, 0, len(byYear))
	for year, ys := range byYear {
		if ys.Valued > 0 {
			ys.Mean = sums[year] / float64(ys.Valued)
		}
		out = append(out, *ys)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

var _ domain.YearlySummarizer = InProcessSummarizer{}
