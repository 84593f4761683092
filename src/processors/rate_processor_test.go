package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/smarttax/backend/src/models"
)

func TestDetermineSpecialRate(t *testing.T) {
	tests := []struct {
		name      string
		assetType string
		years     int
		wantRate  float64
		wantOK    bool
	}{
		{"unregistered always 70", models.AssetUnregistered, 10, 70, true},
		{"presale under a year", models.AssetPresaleRight, 0, 70, true},
		{"presale long held still flat", models.AssetPresaleRight, 5, 60, true},
		{"high price house under a year", models.AssetHighPriceHouse, 0, 70, true},
		{"high price house under two years", models.AssetHighPriceHouse, 1, 60, true},
		{"high price house two years", models.AssetHighPriceHouse, 2, 0, false},
		{"membership right under two years", models.AssetMembershipRight, 1, 60, true},
		{"membership right two years", models.AssetMembershipRight, 3, 0, false},
		{"general house under a year", models.AssetGeneralHouse, 0, 50, true},
		{"general house under two years", models.AssetGeneralHouse, 1, 40, true},
		{"general house two years", models.AssetGeneralHouse, 2, 0, false},
		{"commercial under a year", models.AssetCommercial, 0, 50, true},
		{"land two years", models.AssetLand, 2, 0, false},
		{"negative years clamps to zero", models.AssetGeneralHouse, -1, 50, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, _, ok := DetermineSpecialRate(tt.assetType, tt.years)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantRate, rate)
			}
		})
	}
}

func TestCalculateProgressiveTax(t *testing.T) {
	brackets := taxTables.Brackets2023

	assert.Equal(t, int64(0), calculateProgressiveTax(0, brackets))
	assert.Equal(t, int64(0), calculateProgressiveTax(-100, brackets))

	// 10M at 6%, no deduction.
	assert.Equal(t, int64(600_000), calculateProgressiveTax(10_000_000, brackets))

	// 185.5M lands in the 38% bracket with the 19.94M deduction.
	assert.Equal(t, int64(50_550_000), calculateProgressiveTax(185_500_000, brackets))

	// 141.5M lands in the 35% bracket with the 15.44M deduction.
	assert.Equal(t, int64(34_085_000), calculateProgressiveTax(141_500_000, brackets))

	// Top bracket.
	assert.Equal(t, int64(2_000_000_000*45/100-65_940_000), calculateProgressiveTax(2_000_000_000, brackets))
}

func TestRegimeSelectionByTransferDate(t *testing.T) {
	// 50M in 2022 sits above the 46M bound (24% bracket); in 2023 it sits
	// exactly on the 50M bound (15% bracket).
	pre := CalculateTaxRate(50_000_000, 5, models.AssetGeneralHouse, "", false, "2022-06-01")
	post := CalculateTaxRate(50_000_000, 5, models.AssetGeneralHouse, "", false, "2023-06-01")
	assert.Equal(t, float64(24), pre.Rate)
	assert.Equal(t, float64(15), post.Rate)
}

func TestCalcNonBusinessLandTax(t *testing.T) {
	// 2023+ table: 14M at 16% plus 36M at 25%.
	assert.Equal(t, int64(11_240_000), calcNonBusinessLandTax(50_000_000, 2024))

	// 2022 table: 12M at 16% plus 34M at 25% plus 4M at 34%.
	assert.Equal(t, int64(1_920_000+8_500_000+1_360_000), calcNonBusinessLandTax(50_000_000, 2022))

	assert.Equal(t, int64(0), calcNonBusinessLandTax(0, 2024))
}

func TestCalculateTaxRatePicksLargestCandidate(t *testing.T) {
	// Unregistered: flat 70% beats the progressive table.
	r := CalculateTaxRate(100_000_000, 5, models.AssetUnregistered, "", false, "2024-05-10")
	assert.Equal(t, int64(70_000_000), r.Tax)
	assert.Equal(t, "미등기 70%", r.Desc)
	assert.True(t, r.IsHeavyTaxed)

	// Non-business land: the per-segment surcharge beats the plain table.
	r = CalculateTaxRate(50_000_000, 5, models.AssetLand, models.LandUseNonBusiness, false, "2024-05-10")
	assert.Equal(t, int64(11_240_000), r.Tax)
	assert.Equal(t, "비사업용 토지 중과 (+10%p)", r.Desc)
	assert.Equal(t, float64(25), r.Rate)
	assert.True(t, r.IsHeavyTaxed)

	// Same land with the exception flag reverts to the plain table.
	r = CalculateTaxRate(50_000_000, 5, models.AssetLand, models.LandUseNonBusiness, true, "2024-05-10")
	assert.Equal(t, int64(6_240_000), r.Tax)
	assert.False(t, r.IsHeavyTaxed)

	// Long-held general house: progressive only.
	r = CalculateTaxRate(185_500_000, 3, models.AssetGeneralHouse, "", false, "2024-05-10")
	assert.Equal(t, int64(50_550_000), r.Tax)
	assert.Equal(t, "기본세율 (38%)", r.Desc)
	assert.False(t, r.IsHeavyTaxed)
}

func TestIsHeavyTaxedCase(t *testing.T) {
	assert.True(t, isHeavyTaxedCase(models.AssetUnregistered, "", false, 10))
	assert.True(t, isHeavyTaxedCase(models.AssetLand, models.LandUseNonBusiness, false, 10))
	assert.False(t, isHeavyTaxedCase(models.AssetLand, models.LandUseNonBusiness, true, 10))
	assert.False(t, isHeavyTaxedCase(models.AssetLand, models.LandUseBusiness, false, 10))
	assert.True(t, isHeavyTaxedCase(models.AssetPresaleRight, "", false, 0))
	assert.False(t, isHeavyTaxedCase(models.AssetPresaleRight, "", false, 1))
	assert.False(t, isHeavyTaxedCase(models.AssetGeneralHouse, "", false, 0))
}
