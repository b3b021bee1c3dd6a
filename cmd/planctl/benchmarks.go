package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/adxyz/yieldplan/pkg/benchmark"
	"github.com/adxyz/yieldplan/pkg/plan"
)

var benchmarksCmd = &cobra.Command{
	Use:   "benchmarks",
	Short: "Print the static industry benchmark table",
	RunE: func(cmd *cobra.Command, args []string) error {
		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"Format", "eCPM", "Fill Rate"})

		var rows [][]string
		for _, f := range plan.AllFormats() {
			b := benchmark.Lookup(f)
			rows = append(rows, []string{
				string(f),
				"$" + b.ECPM.StringFixed(2),
				fmt.Sprintf("%.2f", b.FillRate),
			})
		}
		if err := table.Bulk(rows); err != nil {
			return err
		}
		return table.Render()
	},
}
