// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tactics is the recommendation rule engine. Each tactic is an
// independent predicate-then-emit step over the aggregated snapshot,
// the raw inventory, and the publisher's constraints. Every tactic is
// evaluated on every call; any subset may fire.
package tactics

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adxyz/yieldplan/pkg/aggregate"
	"github.com/adxyz/yieldplan/pkg/benchmark"
	"github.com/adxyz/yieldplan/pkg/plan"
)

// Input is everything a tactic may read. Tactics never mutate it.
type Input struct {
	Inventory   []plan.InventoryProfile
	Constraints plan.BusinessConstraints
	Snapshot    *aggregate.InventorySnapshot
}

// Tactic is one condition-triggered recommendation rule.
type Tactic struct {
	ID      string
	Title   string
	Impact  int
	Applies func(Input) bool
	Effort  func(Input) int
	Body    func(Input) string
}

// Evaluate runs every registered tactic against the input, in the fixed
// registry order, and returns a section for each one that fires. The
// caller re-sorts before display; evaluation order here is only for
// reproducibility.
func Evaluate(in Input) []plan.PlanSection {
	var sections []plan.PlanSection
	for _, t := range registry {
		if !t.Applies(in) {
			continue
		}
		sections = append(sections, plan.PlanSection{
			ID:     t.ID,
			Title:  t.Title,
			Impact: t.Impact,
			Effort: t.Effort(in),
			Body:   t.Body(in),
		})
	}
	return sections
}

// experimentName returns a timestamp-derived token used only as
// illustrative identifier text inside guidance bodies. Not a
// correctness-bearing value.
func experimentName(prefix string) string {
	return fmt.Sprintf("%s-%s-%s",
		prefix,
		time.Now().UTC().Format("20060102T150405"),
		uuid.NewString()[:8],
	)
}

func fixedEffort(n int) func(Input) int {
	return func(Input) int { return n }
}

// registry is the fixed, ordered tactic set. Order is part of the
// engine contract; new tactics append, existing ones keep their slot.
var registry = []Tactic{
	{
		ID:     "enable_bidding",
		Title:  "Enable hybrid in-app bidding",
		Impact: 5,
		Applies: func(in Input) bool {
			if in.Snapshot.Global.AvgFillRate < 0.85 {
				return false
			}
			return in.Snapshot.Format(plan.FormatRewarded).ECPMGap <= -0.10 ||
				in.Snapshot.Format(plan.FormatInterstitial).ECPMGap <= -0.10
		},
		Effort: func(in Input) int {
			if in.Constraints.DevCapacity == plan.CapacityLow {
				return 4
			}
			return 3
		},
		Body: func(in Input) string {
			var b strings.Builder
			b.WriteString("Fill is healthy but premium formats clear well below the open-market rate, ")
			b.WriteString("which usually means the waterfall is leaving demand on the table.\n")
			b.WriteString("- Enable bidding adapters for your top two mediation partners.\n")
			b.WriteString("- Keep the existing waterfall as backfill during the migration.\n")
			fmt.Fprintf(&b, "- Roll out as %s on 20%% of traffic before going wide.\n", experimentName("bidding"))
			b.WriteString("\nMetrics to monitor:\n")
			b.WriteString("- Rewarded and interstitial eCPM uplift vs. the holdout\n")
			b.WriteString("- Auction timeout rate per adapter\n")
			b.WriteString("- ARPDAU\n")
			return b.String()
		},
	},
	{
		ID:     "geo_floors",
		Title:  "Introduce geo-based price floors",
		Impact: 4,
		Applies: func(in Input) bool {
			if in.Snapshot.Global.AvgFillRate < 0.90 {
				return false
			}
			reference := in.Snapshot.Global.AvgECPM
			if rewarded := in.Snapshot.Format(plan.FormatRewarded); rewarded.Impressions > 0 {
				reference = rewarded.AvgECPM
			}
			ceiling := reference.Mul(decimal.NewFromFloat(0.95))
			return in.Snapshot.Global.AvgECPM.LessThanOrEqual(ceiling)
		},
		Effort: fixedEffort(2),
		Body: func(in Input) string {
			var b strings.Builder
			b.WriteString("Near-full fill with a depressed blended eCPM suggests floors are set too low ")
			b.WriteString("in high-value geos.\n")
			b.WriteString("- Split floors by tier-1 / tier-2 / rest-of-world geo groups.\n")
			b.WriteString("- Start tier-1 floors at 80% of the format benchmark and step up weekly.\n")
			fmt.Fprintf(&b, "- Track the change as %s so the lift is attributable.\n", experimentName("floors"))
			b.WriteString("\nMetrics to monitor:\n")
			b.WriteString("- Fill rate by geo group (watch for >3pt drops)\n")
			b.WriteString("- Blended eCPM vs. rewarded eCPM spread\n")
			return b.String()
		},
	},
	{
		ID:     "segment_units",
		Title:  "Segment high-value rewarded placements",
		Impact: 4,
		Applies: func(in Input) bool {
			if in.Snapshot.Global.Impressions <= 200_000 {
				return false
			}
			for i := range in.Inventory {
				if in.Inventory[i].RewardedUnitCount() <= 1 {
					return true
				}
			}
			return false
		},
		Effort: fixedEffort(3),
		Body: func(in Input) string {
			var b strings.Builder
			b.WriteString("Traffic volume justifies more granular rewarded placements than the current setup.\n")
			b.WriteString("- Split the single rewarded unit per app into entry-point-specific units.\n")
			b.WriteString("- Give each new unit its own floor so demand can price them apart.\n")
			b.WriteString("- Keep unit count per app under five to avoid fragmenting auction density.\n")
			b.WriteString("\nMetrics to monitor:\n")
			b.WriteString("- Per-unit eCPM divergence after the split\n")
			b.WriteString("- Rewarded opt-in rate by entry point\n")
			return b.String()
		},
	},
	{
		ID:     "latency_opt",
		Title:  "Reduce mediation latency",
		Impact: 3,
		Applies: func(in Input) bool {
			return in.Snapshot.Global.AvgLatency > in.Constraints.LatencyBudgetMS
		},
		Effort: fixedEffort(2),
		Body: func(in Input) string {
			var b strings.Builder
			fmt.Fprintf(&b, "Global ad latency averages %dms against your %dms budget.\n",
				in.Snapshot.Global.AvgLatency, in.Constraints.LatencyBudgetMS)
			b.WriteString("- Trim waterfall depth on the slowest networks first.\n")
			b.WriteString("- Preload rewarded and interstitial at natural breakpoints.\n")
			b.WriteString("- Cap per-network timeout below the overall budget.\n")
			b.WriteString("\nMetrics to monitor:\n")
			b.WriteString("- p95 load time per network\n")
			b.WriteString("- Show rate (loads that actually display)\n")
			return b.String()
		},
	},
	{
		ID:     "policy_health",
		Title:  "Resolve outstanding policy flags",
		Impact: 3,
		Applies: func(in Input) bool {
			for i := range in.Inventory {
				if len(in.Inventory[i].PolicyFlags) > 0 {
					return true
				}
			}
			return false
		},
		Effort: fixedEffort(2),
		Body: func(in Input) string {
			var b strings.Builder
			b.WriteString("One or more apps carry unresolved policy flags. Flags suppress demand ")
			b.WriteString("before any auction runs, so this caps every other optimization.\n")
			for i := range in.Inventory {
				p := &in.Inventory[i]
				if len(p.PolicyFlags) == 0 {
					continue
				}
				fmt.Fprintf(&b, "- %s: %s\n", p.AppName, strings.Join(p.PolicyFlags, ", "))
			}
			b.WriteString("\nMetrics to monitor:\n")
			b.WriteString("- Policy center status per app\n")
			b.WriteString("- Fill rate recovery after each flag clears\n")
			return b.String()
		},
	},
	{
		ID:     "banner_refresh",
		Title:  "Tune banner refresh rate",
		Impact: 3,
		Applies: func(in Input) bool {
			banner := in.Snapshot.Format(plan.FormatBanner)
			return banner.AvgECPM.LessThan(benchmark.Lookup(plan.FormatBanner).ECPM) &&
				banner.AvgFillRate >= 0.9
		},
		Effort: fixedEffort(1),
		Body: func(in Input) string {
			var b strings.Builder
			b.WriteString("Banner fills reliably but monetizes under benchmark, the classic signature ")
			b.WriteString("of an over-aggressive refresh interval.\n")
			b.WriteString("- Lengthen refresh from the current interval toward 60s and compare yield.\n")
			b.WriteString("- Disable refresh on screens with <5s average dwell time.\n")
			b.WriteString("\nMetrics to monitor:\n")
			b.WriteString("- Banner eCPM vs. impressions per session\n")
			b.WriteString("- Viewability rate\n")
			return b.String()
		},
	},
	{
		ID:     "rewarded_caps",
		Title:  "Add rewarded frequency caps",
		Impact: 3,
		Applies: func(in Input) bool {
			return in.Snapshot.Format(plan.FormatRewarded).Impressions > 150_000
		},
		Effort: fixedEffort(2),
		Body: func(in Input) string {
			var b strings.Builder
			b.WriteString("Rewarded volume is high enough that uncapped frequency starts to depress ")
			b.WriteString("per-impression pricing.\n")
			b.WriteString("- Cap rewarded impressions per user per day and measure the eCPM response.\n")
			b.WriteString("- Pace reward availability to sessions rather than wall-clock time.\n")
			b.WriteString("\nMetrics to monitor:\n")
			b.WriteString("- Rewarded eCPM at each cap level\n")
			b.WriteString("- Completion rate and reward redemption rate\n")
			return b.String()
		},
	},
}
