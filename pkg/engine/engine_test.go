// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/adxyz/yieldplan/pkg/log"
	"github.com/adxyz/yieldplan/pkg/plan"
)

func testRequest() *plan.PlanRequest {
	return &plan.PlanRequest{
		AccountName: "acme-games",
		Inventory: []plan.InventoryProfile{
			{
				AppID:             "app1",
				AppName:           "Acme Runner",
				SDKVersion:        "21.4.0",
				MediationPartners: []string{"admob", "applovin"},
				AdUnits: []plan.AdUnitMetrics{
					{
						ID:          "rv-main",
						Format:      plan.FormatRewarded,
						Platform:    plan.PlatformAndroid,
						AvgECPM:     decimal.NewFromFloat(8.2),
						FillRate:    0.86,
						LatencyMS:   1300,
						Impressions: 240000,
						Revenue:     decimal.NewFromInt(1968),
					},
				},
			},
		},
		Constraints: plan.BusinessConstraints{
			PrimaryGoal:     plan.GoalMaximizeRevenue,
			LatencyBudgetMS: 1200,
			DevCapacity:     plan.CapacityMedium,
		},
	}
}

func TestBuildPlanEndToEnd(t *testing.T) {
	require := require.New(t)

	eng := New(log.NoOp())
	resp, err := eng.BuildPlan(testRequest())
	require.NoError(err)
	require.NotNil(resp)

	require.Equal("acme-games", resp.AccountName)
	require.Equal(plan.GoalMaximizeRevenue, resp.Constraints.PrimaryGoal)
	require.NotEmpty(resp.Summary)

	// 8.2 eCPM vs 9.5 benchmark with 0.86 fill fires bidding; 240k
	// impressions across one rewarded unit fires segmentation and
	// frequency caps; 1300ms against a 1200ms budget fires latency.
	// No policy flags, so policy_health stays quiet.
	ids := make([]string, 0, len(resp.Sections))
	for _, s := range resp.Sections {
		ids = append(ids, s.ID)
	}
	require.Equal([]string{"enable_bidding", "segment_units", "latency_opt", "rewarded_caps"}, ids)

	// Sorted by descending impact, ascending effort on ties.
	for i := 1; i < len(resp.Sections); i++ {
		prev, cur := resp.Sections[i-1], resp.Sections[i]
		require.True(prev.Impact > cur.Impact ||
			(prev.Impact == cur.Impact && prev.Effort <= cur.Effort))
	}
}

func TestBuildPlanRejectsInvalidInput(t *testing.T) {
	require := require.New(t)

	eng := New(log.NoOp())

	noAccount := testRequest()
	noAccount.AccountName = ""
	resp, err := eng.BuildPlan(noAccount)
	require.Nil(resp)
	require.ErrorIs(err, plan.ErrMissingAccount)
	require.True(plan.IsValidationError(err))

	noInventory := testRequest()
	noInventory.Inventory = nil
	resp, err = eng.BuildPlan(noInventory)
	require.Nil(resp)
	require.ErrorIs(err, plan.ErrEmptyInventory)
}

func TestBuildPlanDeterministicSections(t *testing.T) {
	require := require.New(t)

	eng := New(log.NoOp())

	first, err := eng.BuildPlan(testRequest())
	require.NoError(err)
	second, err := eng.BuildPlan(testRequest())
	require.NoError(err)

	require.Len(second.Sections, len(first.Sections))
	for i := range first.Sections {
		require.Equal(first.Sections[i].ID, second.Sections[i].ID)
		require.Equal(first.Sections[i].Impact, second.Sections[i].Impact)
		require.Equal(first.Sections[i].Effort, second.Sections[i].Effort)
	}
}

func TestBuildPlanNilLogger(t *testing.T) {
	require := require.New(t)

	eng := New(nil)
	resp, err := eng.BuildPlan(testRequest())
	require.NoError(err)
	require.NotNil(resp)
}
