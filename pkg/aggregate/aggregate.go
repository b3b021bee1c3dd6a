// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package aggregate reduces raw per-unit inventory metrics into
// per-format and global statistics, including gap-vs-benchmark figures.
package aggregate

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/adxyz/yieldplan/pkg/benchmark"
	"github.com/adxyz/yieldplan/pkg/plan"
)

var thousand = decimal.NewFromInt(1000)

// FormatAggregate is the derived statistics for one format. Latency and
// fill rate are impression-weighted averages so high-volume units
// dominate, matching traffic-weighted reporting semantics.
type FormatAggregate struct {
	Format      plan.AdFormat   `json:"format"`
	Impressions int64           `json:"impressions"`
	Revenue     decimal.Decimal `json:"revenue"`
	AvgECPM     decimal.Decimal `json:"avg_ecpm"`
	AvgFillRate float64         `json:"avg_fill_rate"`
	AvgLatency  int             `json:"avg_latency_ms"`

	// ECPMGap is (observed - benchmark) / benchmark.
	// FillRateGap is observed - benchmark, no normalization.
	ECPMGap     float64 `json:"ecpm_gap"`
	FillRateGap float64 `json:"fill_rate_gap"`
}

// GlobalAggregate is the impression-weighted roll-up across all four
// formats, computed by pooling raw totals rather than averaging the
// per-format rates.
type GlobalAggregate struct {
	Impressions int64           `json:"impressions"`
	Revenue     decimal.Decimal `json:"revenue"`
	AvgECPM     decimal.Decimal `json:"avg_ecpm"`
	AvgFillRate float64         `json:"avg_fill_rate"`
	AvgLatency  int             `json:"avg_latency_ms"`
}

// InventorySnapshot holds one request's full aggregate. Formats always
// contains all four canonical formats; absent formats get zero rows.
type InventorySnapshot struct {
	Formats map[plan.AdFormat]*FormatAggregate `json:"formats"`
	Global  GlobalAggregate                    `json:"global"`
}

// Format returns the aggregate for a format. Never nil for the four
// canonical formats.
func (s *InventorySnapshot) Format(f plan.AdFormat) *FormatAggregate {
	return s.Formats[f]
}

// totals is the running accumulator for one format bucket.
type totals struct {
	impressions int64
	revenue     decimal.Decimal
	latencyW    float64 // latency * impressions
	fillW       float64 // fill rate * impressions
}

// Snapshot reduces all ad units across all profiles into per-format
// aggregates plus the pooled global aggregate. Pure function of its
// input; nothing is persisted.
func Snapshot(profiles []plan.InventoryProfile) *InventorySnapshot {
	buckets := make(map[plan.AdFormat]*totals, 4)
	for _, f := range plan.AllFormats() {
		buckets[f] = &totals{revenue: decimal.Zero}
	}

	for i := range profiles {
		for _, u := range profiles[i].AdUnits {
			b, ok := buckets[u.Format]
			if !ok {
				continue
			}
			b.impressions += u.Impressions
			b.revenue = b.revenue.Add(u.Revenue)
			b.latencyW += float64(u.LatencyMS) * float64(u.Impressions)
			b.fillW += u.FillRate * float64(u.Impressions)
		}
	}

	snap := &InventorySnapshot{Formats: make(map[plan.AdFormat]*FormatAggregate, 4)}
	var pool totals
	pool.revenue = decimal.Zero

	for _, f := range plan.AllFormats() {
		b := buckets[f]
		agg := normalize(f, b)

		bench := benchmark.Lookup(f)
		denom := bench.ECPM
		if denom.IsZero() {
			denom = decimal.NewFromInt(1)
		}
		agg.ECPMGap, _ = agg.AvgECPM.Sub(bench.ECPM).Div(denom).Float64()
		agg.FillRateGap = agg.AvgFillRate - bench.FillRate

		snap.Formats[f] = agg

		pool.impressions += b.impressions
		pool.revenue = pool.revenue.Add(b.revenue)
		pool.latencyW += b.latencyW
		pool.fillW += b.fillW
	}

	// Global rates come from the pooled totals, not from averaging the
	// four per-format rates.
	g := normalize("", &pool)
	snap.Global = GlobalAggregate{
		Impressions: g.Impressions,
		Revenue:     g.Revenue,
		AvgECPM:     g.AvgECPM,
		AvgFillRate: g.AvgFillRate,
		AvgLatency:  g.AvgLatency,
	}
	return snap
}

// normalize turns raw totals into averages. Zero impressions yields
// all-zero rates, never a division by zero.
func normalize(f plan.AdFormat, b *totals) *FormatAggregate {
	agg := &FormatAggregate{
		Format:      f,
		Impressions: b.impressions,
		Revenue:     b.revenue,
		AvgECPM:     decimal.Zero,
	}
	if b.impressions == 0 {
		return agg
	}
	imps := decimal.NewFromInt(b.impressions)
	agg.AvgECPM = b.revenue.Mul(thousand).Div(imps)
	agg.AvgFillRate = b.fillW / float64(b.impressions)
	agg.AvgLatency = int(math.Round(b.latencyW / float64(b.impressions)))
	return agg
}
