// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package benchmark holds the static industry reference figures that
// observed inventory performance is compared against. The values are
// fixed medians, not learned or fetched.
package benchmark

import (
	"github.com/shopspring/decimal"

	"github.com/adxyz/yieldplan/pkg/plan"
)

// Benchmark is the reference eCPM and fill rate for one format.
type Benchmark struct {
	ECPM     decimal.Decimal `json:"ecpm"`
	FillRate float64         `json:"fill_rate"`
}

var table = map[plan.AdFormat]Benchmark{
	plan.FormatRewarded:     {ECPM: decimal.NewFromFloat(9.5), FillRate: 0.82},
	plan.FormatInterstitial: {ECPM: decimal.NewFromFloat(6.2), FillRate: 0.90},
	plan.FormatBanner:       {ECPM: decimal.NewFromFloat(1.2), FillRate: 0.95},
	plan.FormatNative:       {ECPM: decimal.NewFromFloat(2.2), FillRate: 0.92},
}

// Lookup returns the benchmark for a format. Unknown formats get a
// zero benchmark; callers guard the zero eCPM denominator themselves.
func Lookup(format plan.AdFormat) Benchmark {
	return table[format]
}

// Table returns a copy of the full benchmark table keyed by format.
func Table() map[plan.AdFormat]Benchmark {
	out := make(map[plan.AdFormat]Benchmark, len(table))
	for f, b := range table {
		out[f] = b
	}
	return out
}
