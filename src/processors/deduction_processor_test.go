package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/smarttax/backend/src/models"
)

func TestCalculateLongTermDeductionExclusions(t *testing.T) {
	tests := []struct {
		name      string
		assetType string
		years     int
	}{
		{"unregistered", models.AssetUnregistered, 10},
		{"presale right", models.AssetPresaleRight, 10},
		{"held under three years", models.AssetGeneralHouse, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateLongTermDeduction(200_000_000, tt.years, tt.assetType, 0, false)
			assert.Equal(t, int64(0), got.Amount)
			assert.Equal(t, float64(0), got.Rate)
			assert.Equal(t, "공제대상 아님", got.Desc)
		})
	}
}

func TestCalculateLongTermDeductionGeneralTable(t *testing.T) {
	got := CalculateLongTermDeduction(200_000_000, 3, models.AssetGeneralHouse, 0, false)
	assert.Equal(t, int64(12_000_000), got.Amount)
	assert.Equal(t, 0.06, got.Rate)
	assert.Equal(t, "일반 공제 (6%)", got.Desc)

	got = CalculateLongTermDeduction(200_000_000, 15, models.AssetCommercial, 0, false)
	assert.Equal(t, 0.30, got.Rate)

	// The general table tops out at 30% no matter how long the holding.
	got = CalculateLongTermDeduction(200_000_000, 40, models.AssetLand, 0, false)
	assert.Equal(t, 0.30, got.Rate)
}

func TestCalculateLongTermDeductionOneHouseTable(t *testing.T) {
	// Four holding years and three residence years: 16% + 12%.
	got := CalculateLongTermDeduction(200_000_000, 4, models.AssetHighPriceHouse, 3, false)
	assert.Equal(t, int64(56_000_000), got.Amount)
	assert.Equal(t, 0.28, got.Rate)
	assert.Equal(t, "표2 (보유16%+거주12%)", got.Desc)

	// Combined rate caps at 80%.
	got = CalculateLongTermDeduction(200_000_000, 15, models.AssetHighPriceHouse, 15, false)
	assert.Equal(t, 0.8, got.Rate)
	assert.Equal(t, int64(160_000_000), got.Amount)

	// Partial residence years floor before the two-year test.
	got = CalculateLongTermDeduction(200_000_000, 4, models.AssetHighPriceHouse, 1.9, false)
	assert.Equal(t, "표1 (거주 2년 미만)", got.Desc)
	assert.Equal(t, 0.08, got.Rate)

	// The special flag opens the one-house table without two residence years.
	got = CalculateLongTermDeduction(200_000_000, 4, models.AssetHighPriceHouse, 1.9, true)
	assert.Equal(t, "표2 (보유16%+거주0%)", got.Desc)
	assert.Equal(t, 0.16, got.Rate)
}
