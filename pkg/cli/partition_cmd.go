package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"fi-dashboard/internal/domain"
)

func newPartitionCmd(rt *runtime) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "partition [KEY]",
		Short: "Show how the unified dataset splits by record type",
		Long: "Without arguments, prints the row count of every partition and the record types that were excluded. " +
			"With a partition key (observations, events, impact_links, targets), prints the rows of that partition.",
		Args: cobra.MaximumNArgs(1),
		ValidArgs: []string{
			string(domain.PartitionObservations), string(domain.PartitionEvents),
			string(domain.PartitionImpactLinks), string(domain.PartitionTargets),
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return printPartitionRows(cmd, rt, domain.PartitionKey(args[0]), limit)
			}
			return printPartitionCounts(cmd, rt)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of rows to print (0 for all)")

	return cmd
}

func printPartitionCounts(cmd *cobra.Command, rt *runtime) error {
	_, ins := rt.services(cmd)
	counts, err := ins.PartitionCounts(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if rt.output == "json" {
		return printJSON(out, counts)
	}

	rows := [][]string{
		{string(domain.PartitionObservations), strconv.Itoa(counts.Observations)},
		{string(domain.PartitionEvents), strconv.Itoa(counts.Events)},
		{string(domain.PartitionImpactLinks), strconv.Itoa(counts.ImpactLinks)},
		{string(domain.PartitionTargets), strconv.Itoa(counts.Targets)},
		{"total", strconv.Itoa(counts.Total())},
	}
	if err := printTable(out, []string{"PARTITION", "ROWS"}, rows); err != nil {
		return err
	}
	if counts.Dropped == 0 {
		return nil
	}

	types := make([]string, 0, len(counts.DroppedTypes))
	for t := range counts.DroppedTypes {
		types = append(types, t)
	}
	sort.Strings(types)
	for i, t := range types {
		name := t
		if name == "" {
			name = "(empty)"
		}
		types[i] = fmt.Sprintf("%s (%d)", name, counts.DroppedTypes[t])
	}
	_, _ = fmt.Fprintf(out, "%d rows excluded with unrecognised record_type: %s\n", counts.Dropped, strings.Join(types, ", "))
	return nil
}

func printPartitionRows(cmd *cobra.Command, rt *runtime, key domain.PartitionKey, limit int) error {
	if limit < 0 {
		return domain.ErrValidation("--limit must not be negative")
	}
	ing, _ := rt.services(cmd)
	view, err := ing.Partitions(cmd.Context())
	if err != nil {
		return err
	}
	ds := view.Get(key)
	if ds == nil {
		keys := make([]string, 0, 4)
		for _, k := range domain.PartitionKeys() {
			keys = append(keys, string(k))
		}
		return domain.ErrValidation("unknown partition %q: expected one of %s", key, strings.Join(keys, ", "))
	}

	n := ds.Len()
	if limit > 0 && limit < n {
		n = limit
	}

	out := cmd.OutOrStdout()
	if rt.output == "json" {
		records := make([]map[string]interface{}, 0, n)
		for _, row := range ds.Rows[:n] {
			rec := make(map[string]interface{}, len(ds.Columns)+1)
			rec["line"] = row.Line
			for j, col := range ds.Columns {
				rec[col] = row.Values[j]
			}
			records = append(records, rec)
		}
		return printJSON(out, records)
	}

	headers := append([]string{"LINE"}, upper(ds.Columns)...)
	rows := make([][]string, 0, n)
	for _, row := range ds.Rows[:n] {
		rows = append(rows, append([]string{strconv.Itoa(row.Line)}, row.Values...))
	}
	if err := printTable(out, headers, rows); err != nil {
		return err
	}
	if n < ds.Len() {
		_, _ = fmt.Fprintf(out, "Showing %d of %d rows.\n", n, ds.Len())
	}
	return nil
}

func upper(list []string) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = strings.ToUpper(s)
	}
	return out
}
