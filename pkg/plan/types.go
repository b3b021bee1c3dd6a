// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package plan

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingAccount = errors.New("account_name is required")
	ErrEmptyInventory = errors.New("inventory must contain at least one profile")
)

// AdFormat identifies one of the four supported ad placement formats.
type AdFormat string

const (
	FormatRewarded     AdFormat = "rewarded"
	FormatInterstitial AdFormat = "interstitial"
	FormatBanner       AdFormat = "banner"
	FormatNative       AdFormat = "native"
)

// AllFormats returns the canonical format order used everywhere a
// per-format breakdown is produced. Absent formats still get a row.
func AllFormats() []AdFormat {
	return []AdFormat{FormatRewarded, FormatInterstitial, FormatBanner, FormatNative}
}

// Platform identifies the OS an ad unit serves on.
type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
	PlatformWeb     Platform = "web"
)

// Goal is the publisher's stated primary optimization goal.
type Goal string

const (
	GoalMaximizeRevenue Goal = "maximize_revenue"
	GoalIncreaseFill    Goal = "increase_fill"
	GoalBalanceUX       Goal = "balance_ux"
)

// DevCapacity describes how much engineering capacity the publisher
// can commit to remediation work.
type DevCapacity string

const (
	CapacityLow    DevCapacity = "low"
	CapacityMedium DevCapacity = "medium"
	CapacityHigh   DevCapacity = "high"
)

// AdUnitMetrics is an immutable performance snapshot for one placement.
// AvgECPM is revenue per 1000 impressions; FillRate is a fraction in [0,1].
type AdUnitMetrics struct {
	ID          string          `json:"id"`
	Format      AdFormat        `json:"format"`
	Platform    Platform        `json:"platform"`
	AvgECPM     decimal.Decimal `json:"avg_ecpm"`
	FillRate    float64         `json:"fill_rate"`
	LatencyMS   int             `json:"latency_ms"`
	Impressions int64           `json:"impressions"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// InventoryProfile is one application's inventory: its ad units plus
// the mediation setup and any outstanding policy flags.
type InventoryProfile struct {
	AppID             string          `json:"app_id"`
	AppName           string          `json:"app_name"`
	SDKVersion        string          `json:"sdk_version"`
	MediationPartners []string        `json:"mediation_partners"`
	AdUnits           []AdUnitMetrics `json:"ad_units"`
	PolicyFlags       []string        `json:"policy_flags,omitempty"`
}

// RewardedUnitCount returns how many rewarded-format units the profile has.
func (p *InventoryProfile) RewardedUnitCount() int {
	n := 0
	for _, u := range p.AdUnits {
		if u.Format == FormatRewarded {
			n++
		}
	}
	return n
}

// BusinessConstraints are the publisher's stated priorities for a plan
// request. Immutable for the duration of the computation.
type BusinessConstraints struct {
	PrimaryGoal     Goal        `json:"primary_goal"`
	LatencyBudgetMS int         `json:"latency_budget_ms"`
	DevCapacity     DevCapacity `json:"dev_capacity"`
}

// PlanRequest is the engine input contract.
type PlanRequest struct {
	AccountName string              `json:"account_name"`
	Inventory   []InventoryProfile  `json:"inventory"`
	Constraints BusinessConstraints `json:"constraints"`
}

// Validate rejects requests that fail the input contract. Validation
// runs before any aggregation; a failed request produces no output at all.
func (r *PlanRequest) Validate() error {
	if r.AccountName == "" {
		return ErrMissingAccount
	}
	if len(r.Inventory) == 0 {
		return ErrEmptyInventory
	}
	return nil
}

// IsValidationError reports whether err is an input-contract violation,
// as opposed to an internal computation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingAccount) || errors.Is(err, ErrEmptyInventory)
}

// PlanSection is one recommendation produced by a firing tactic.
// Impact ranks importance (higher first), Effort estimates work
// (lower breaks ties).
type PlanSection struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Impact int    `json:"impact"`
	Effort int    `json:"effort"`
	Body   string `json:"body"`
}

// PlanResponse is the engine output contract. Sections are sorted by
// descending impact, ties broken by ascending effort.
type PlanResponse struct {
	AccountName string              `json:"account_name"`
	Summary     string              `json:"summary"`
	Sections    []PlanSection       `json:"sections"`
	Constraints BusinessConstraints `json:"constraints"`
}
