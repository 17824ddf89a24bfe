package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"fi-dashboard/internal/domain"
)

func newLatestCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "latest [INDICATOR_CODE...]",
		Short: "Print the most recent value of indicators",
		Long: "Prints the observation with the greatest year for each indicator code. " +
			"Without arguments, prints the overview metrics.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ins := rt.services(cmd)
			ctx := cmd.Context()

			var cards []domain.MetricCard
			if len(args) == 0 {
				overview, err := ins.Overview(ctx)
				if err != nil {
					return err
				}
				cards = overview.Metrics
			} else {
				for _, code := range args {
					obs, err := ins.LatestValue(ctx, code)
					if err != nil {
						return err
					}
					cards = append(cards, domain.MetricCard{
						IndicatorCode: obs.IndicatorCode,
						Label:         obs.IndicatorLabel(),
						Year:          obs.Year,
						Value:         obs.ValueNumeric,
						Display:       domain.FormatValue(obs.ValueNumeric),
					})
				}
			}

			if rt.output == "json" {
				return printJSON(cmd.OutOrStdout(), cards)
			}
			rows := make([][]string, 0, len(cards))
			for _, c := range cards {
				year := "-"
				if c.Year != 0 {
					year = strconv.Itoa(c.Year)
				}
				rows = append(rows, []string{c.IndicatorCode, c.Label, year, c.Display})
			}
			return printTable(cmd.OutOrStdout(), []string{"CODE", "LABEL", "YEAR", "VALUE"}, rows)
		},
	}
}
