package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"fi-dashboard/internal/api"
	"fi-dashboard/internal/domain"
)

func newForecastCmd(rt *runtime) *cobra.Command {
	var (
		scenario string
		asCSV    bool
	)

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Print the projections of one forecast scenario",
		Long:  "Prints usage and access projections by year. Without --scenario, the first scenario in the forecast file is used.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, ins := rt.services(cmd)
			ctx := cmd.Context()

			selected := domain.Scenario(strings.ToLower(strings.TrimSpace(scenario)))
			if selected == "" {
				available, err := ins.Scenarios(ctx)
				if err != nil {
					return err
				}
				if len(available) == 0 {
					return domain.ErrNotFound(rt.cfg.ForecastPath, "forecast dataset has no rows")
				}
				selected = available[0]
			}

			rows, err := ins.Forecast(ctx, selected)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asCSV {
				return api.WriteForecastsCSV(out, rows)
			}
			if rt.output == "json" {
				return printJSON(out, rows)
			}
			table := make([][]string, 0, len(rows))
			for _, r := range rows {
				table = append(table, []string{
					string(r.Scenario), strconv.Itoa(r.Year), formatNumber(r.UsageForecast), formatNumber(r.AccessForecast),
				})
			}
			return printTable(out, []string{"SCENARIO", "YEAR", "USAGE (%)", "ACCESS (%)"}, table)
		},
	}

	cmd.Flags().StringVarP(&scenario, "scenario", "s", "", "Forecast scenario (for example baseline)")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "Write the projections as CSV")

	return cmd
}
