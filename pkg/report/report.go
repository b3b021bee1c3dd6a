// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package report ranks recommendation sections and renders the
// human-readable plan summary.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/adxyz/yieldplan/pkg/aggregate"
	"github.com/adxyz/yieldplan/pkg/benchmark"
	"github.com/adxyz/yieldplan/pkg/plan"
)

// SortSections orders sections by descending impact, ties broken by
// ascending effort. The sort is stable so equal (impact, effort) pairs
// keep their evaluation order. The same ordering applies everywhere
// sections are displayed or exported.
func SortSections(sections []plan.PlanSection) {
	sort.SliceStable(sections, func(i, j int) bool {
		if sections[i].Impact != sections[j].Impact {
			return sections[i].Impact > sections[j].Impact
		}
		return sections[i].Effort < sections[j].Effort
	})
}

// Compose renders the top-level summary document: title line, global
// snapshot, the format-vs-benchmark table, and the prioritized section
// list. Formats with no data still get a zero row, never an omitted one.
// Callers pass sections already ordered by SortSections.
func Compose(account string, snap *aggregate.InventorySnapshot, sections []plan.PlanSection) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Inventory optimization plan for %s\n\n", account)
	fmt.Fprintf(&b, "Global: eCPM $%s | fill rate %.2f | avg latency %dms\n\n",
		snap.Global.AvgECPM.StringFixed(2), snap.Global.AvgFillRate, snap.Global.AvgLatency)

	if err := writeFormatTable(&b, snap); err != nil {
		return "", err
	}

	b.WriteString("\nPrioritized recommendations:\n")
	if len(sections) == 0 {
		b.WriteString("  (inventory is performing at or above benchmark; nothing to recommend)\n")
	}
	for i, s := range sections {
		fmt.Fprintf(&b, "%d. %s (impact %d, effort %d)\n", i+1, s.Title, s.Impact, s.Effort)
	}

	return b.String(), nil
}

// writeFormatTable renders each format's observed eCPM against its
// benchmark with a signed percentage gap ("+" when non-negative).
func writeFormatTable(w *strings.Builder, snap *aggregate.InventorySnapshot) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Format", "eCPM", "Benchmark", "Gap", "Fill", "Impressions"})

	var rows [][]string
	for _, f := range plan.AllFormats() {
		agg := snap.Format(f)
		bench := benchmark.Lookup(f)
		rows = append(rows, []string{
			string(f),
			"$" + agg.AvgECPM.StringFixed(2),
			"$" + bench.ECPM.StringFixed(2),
			fmt.Sprintf("%+.1f%%", agg.ECPMGap*100),
			fmt.Sprintf("%.2f", agg.AvgFillRate),
			fmt.Sprintf("%d", agg.Impressions),
		})
	}

	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
