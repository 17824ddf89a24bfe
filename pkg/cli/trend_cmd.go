package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"fi-dashboard/internal/api"
	"fi-dashboard/internal/domain"
)

func newTrendCmd(rt *runtime) *cobra.Command {
	var (
		asCSV   bool
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "trend [INDICATOR]",
		Short: "Print the observations of one indicator over time",
		Long: "Prints the observations whose indicator label matches INDICATOR, sorted by year. " +
			"Without arguments, lists the indicators present in the dataset.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ins := rt.services(cmd)
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				indicators, err := ins.Indicators(ctx)
				if err != nil {
					return err
				}
				if rt.output == "json" {
					return printJSON(out, indicators)
				}
				rows := make([][]string, 0, len(indicators))
				for _, ind := range indicators {
					rows = append(rows, []string{
						ind.Label, strconv.Itoa(ind.Count), strconv.Itoa(ind.FirstYear), strconv.Itoa(ind.LastYear),
					})
				}
				return printTable(out, []string{"INDICATOR", "OBSERVATIONS", "FIRST YEAR", "LAST YEAR"}, rows)
			}

			if summary {
				years, err := ins.YearlySummary(ctx, args[0])
				if err != nil {
					return err
				}
				if rt.output == "json" {
					return printJSON(out, years)
				}
				rows := make([][]string, 0, len(years))
				for _, y := range years {
					rows = append(rows, []string{
						strconv.Itoa(y.Year), strconv.Itoa(y.Count), strconv.Itoa(y.Valued),
						formatNumber(y.Min), formatNumber(y.Max), formatNumber(y.Mean),
					})
				}
				return printTable(out, []string{"YEAR", "ROWS", "VALUED", "MIN", "MAX", "MEAN"}, rows)
			}

			obs, err := ins.Trend(ctx, args[0])
			if err != nil {
				return err
			}
			if asCSV {
				return api.WriteObservationsCSV(out, obs)
			}
			if rt.output == "json" {
				return printJSON(out, obs)
			}
			rows := make([][]string, 0, len(obs))
			for _, o := range obs {
				rows = append(rows, []string{
					strconv.Itoa(o.Year), o.ObservationDate, o.IndicatorCode,
					domain.FormatValue(o.ValueNumeric), o.Confidence,
				})
			}
			return printTable(out, []string{"YEAR", "DATE", "CODE", "VALUE", "CONFIDENCE"}, rows)
		},
	}

	cmd.Flags().BoolVar(&asCSV, "csv", false, "Write the observations as CSV")
	cmd.Flags().BoolVar(&summary, "summary", false, "Aggregate the observations per year")
	cmd.MarkFlagsMutuallyExclusive("csv", "summary")

	return cmd
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
