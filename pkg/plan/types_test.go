// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package plan

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	require := require.New(t)

	req := &PlanRequest{
		AccountName: "acme",
		Inventory: []InventoryProfile{
			{AppID: "app1", AppName: "Acme Runner"},
		},
	}
	require.NoError(req.Validate())

	missing := &PlanRequest{Inventory: req.Inventory}
	err := missing.Validate()
	require.ErrorIs(err, ErrMissingAccount)
	require.True(IsValidationError(err))

	empty := &PlanRequest{AccountName: "acme"}
	err = empty.Validate()
	require.ErrorIs(err, ErrEmptyInventory)
	require.True(IsValidationError(err))
}

func TestRewardedUnitCount(t *testing.T) {
	require := require.New(t)

	profile := &InventoryProfile{
		AdUnits: []AdUnitMetrics{
			{ID: "u1", Format: FormatRewarded, Revenue: decimal.NewFromInt(10)},
			{ID: "u2", Format: FormatBanner},
			{ID: "u3", Format: FormatRewarded},
		},
	}
	require.Equal(2, profile.RewardedUnitCount())

	empty := &InventoryProfile{}
	require.Equal(0, empty.RewardedUnitCount())
}

func TestAllFormatsCanonicalOrder(t *testing.T) {
	require := require.New(t)

	formats := AllFormats()
	require.Equal([]AdFormat{FormatRewarded, FormatInterstitial, FormatBanner, FormatNative}, formats)
}
