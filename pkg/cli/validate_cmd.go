package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fi-dashboard/internal/domain"
)

type datasetReport struct {
	Path string `json:"path"`
	Rows int    `json:"rows"`
}

type validateReport struct {
	Valid     bool                   `json:"valid"`
	Unified   datasetReport          `json:"unified"`
	Counts    domain.PartitionCounts `json:"counts"`
	Forecast  *datasetReport         `json:"forecast,omitempty"`
	Scenarios []domain.Scenario      `json:"scenarios,omitempty"`
}

func newValidateCmd(rt *runtime) *cobra.Command {
	var skipForecast bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the dataset files offline",
		Long: "Loads the unified dataset and the forecast dataset, checks their required columns, " +
			"parses every observation date and forecast row, and reports what was found.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ing, ins := rt.services(cmd)
			ctx := cmd.Context()

			// 1. Unified dataset: schema, partitions, observation years.
			if _, err := ing.Observations(ctx); err != nil {
				return fmt.Errorf("unified dataset %s: %w", ing.DataPath(), err)
			}
			counts, err := ins.PartitionCounts(ctx)
			if err != nil {
				return fmt.Errorf("unified dataset %s: %w", ing.DataPath(), err)
			}
			report := validateReport{
				Valid:   true,
				Unified: datasetReport{Path: ing.DataPath(), Rows: counts.Total() + counts.Dropped},
				Counts:  counts,
			}

			// 2. Forecast dataset: schema, numbers, scenario universe.
			if !skipForecast {
				rows, err := ing.Forecasts(ctx)
				if err != nil {
					return fmt.Errorf("forecast dataset %s: %w", ing.ForecastPath(), err)
				}
				scenarios, err := ins.Scenarios(ctx)
				if err != nil {
					return fmt.Errorf("forecast dataset %s: %w", ing.ForecastPath(), err)
				}
				report.Forecast = &datasetReport{Path: ing.ForecastPath(), Rows: len(rows)}
				report.Scenarios = scenarios
			}

			out := cmd.OutOrStdout()
			if rt.output == "json" {
				return printJSON(out, report)
			}
			_, _ = fmt.Fprintf(out, "Unified dataset %s: OK (%d rows, %d excluded)\n",
				report.Unified.Path, report.Unified.Rows, counts.Dropped)
			if report.Forecast != nil {
				names := make([]string, len(report.Scenarios))
				for i, s := range report.Scenarios {
					names[i] = string(s)
				}
				_, _ = fmt.Fprintf(out, "Forecast dataset %s: OK (%d rows; scenarios: %s)\n",
					report.Forecast.Path, report.Forecast.Rows, strings.Join(names, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipForecast, "skip-forecast", false, "Only check the unified dataset")

	return cmd
}
