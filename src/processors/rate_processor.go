package processors

import (
	"fmt"

	"github.com/username/smarttax/backend/src/models"
	"github.com/username/smarttax/backend/src/utils"
)

// DetermineSpecialRate returns the flat short-term rate (percent) for the
// asset type and holding years, or ok=false when the progressive table
// applies instead.
func DetermineSpecialRate(assetType string, holdingYears int) (ratePct float64, reason string, ok bool) {
	years := holdingYears
	if years < 0 {
		years = 0
	}

	switch assetType {
	case models.AssetUnregistered:
		return 70, "미등기 70%", true

	case models.AssetPresaleRight:
		if years < 1 {
			return 70, "분양권 1년미만 70%", true
		}
		return 60, "분양권 60%", true

	case models.AssetHighPriceHouse, models.AssetMembershipRight:
		if years < 1 {
			return 70, "주택/입주권 1년미만 70%", true
		}
		if years < 2 {
			return 60, "주택/입주권 2년미만 60%", true
		}
		return 0, "누진세율 적용", false
	}

	if years < 1 {
		return 50, "1년미만 50%", true
	}
	if years < 2 {
		return 40, "2년미만 40%", true
	}
	return 0, "누진세율 적용", false
}

// calculateProgressiveTax evaluates the progressive table with the
// subtraction-constant method, floored to whole KRW.
func calculateProgressiveTax(taxBase int64, brackets []TaxBracket) int64 {
	if taxBase <= 0 {
		return 0
	}
	b := findBracket(taxBase, brackets)
	return utils.FloorInt64(float64(taxBase)*(b.Rate/100)) - b.Deduction
}

// calcNonBusinessLandTax sums tax across bracket segments with the
// +10-percentage-point surcharge applied to each segment individually, not
// just the marginal one.
func calcNonBusinessLandTax(taxBase int64, year int) int64 {
	if taxBase <= 0 {
		return 0
	}
	brackets := taxTables.Brackets2022
	if year >= 2023 {
		brackets = taxTables.Brackets2023
	}

	var tax float64
	var prevLimit int64

	for _, b := range brackets {
		upper := taxBase
		if b.UpTo != -1 && b.UpTo < upper {
			upper = b.UpTo
		}
		segment := upper - prevLimit
		if segment > 0 {
			tax += float64(segment) * ((b.Rate + 10) / 100)
			prevLimit = b.UpTo
		}
		if b.UpTo == -1 || taxBase <= b.UpTo {
			break
		}
	}

	return utils.FloorInt64(tax)
}

// isHeavyTaxedCase reports whether the transaction falls under the heavy
// taxation regime: unregistered assets, non-business land without the
// exception, or presale rights held under a year.
func isHeavyTaxedCase(assetType, landUseType string, bisatoException bool, years int) bool {
	if assetType == models.AssetUnregistered {
		return true
	}
	if models.IsLandType(assetType) && landUseType == models.LandUseNonBusiness && !bisatoException {
		return true
	}
	if assetType == models.AssetPresaleRight && years < 1 {
		return true
	}
	return false
}

// CalculateTaxRate builds every applicable rate candidate — the ordinary
// progressive tax, any flat short-term rate, and the non-business-land
// surcharge — and returns whichever yields the strictly largest tax. Flat
// and surcharge regimes therefore override the progressive table only when
// they actually cost more.
func CalculateTaxRate(taxBase int64, holdingYears int, assetType, landUseType string, bisatoException bool, transferDate string) models.TaxRateResult {
	brackets := bracketsFor(transferDate)
	bracket := findBracket(taxBase, brackets)

	taxYear := 0
	if d, err := utils.ParseDate(transferDate); err == nil {
		taxYear = d.Year()
	}

	isHeavy := isHeavyTaxedCase(assetType, landUseType, bisatoException, holdingYears)

	candidates := []models.TaxRateResult{{
		Tax:          calculateProgressiveTax(taxBase, brackets),
		Rate:         bracket.Rate,
		Desc:         fmt.Sprintf("기본세율 (%.0f%%)", bracket.Rate),
		IsHeavyTaxed: isHeavy,
	}}

	if ratePct, reason, ok := DetermineSpecialRate(assetType, holdingYears); ok {
		candidates = append(candidates, models.TaxRateResult{
			Tax:          utils.FloorInt64(float64(taxBase) * (ratePct / 100)),
			Rate:         ratePct,
			Desc:         reason,
			IsHeavyTaxed: isHeavy,
		})
	}

	if models.IsLandType(assetType) && landUseType == models.LandUseNonBusiness && !bisatoException {
		candidates = append(candidates, models.TaxRateResult{
			Tax:          calcNonBusinessLandTax(taxBase, taxYear),
			Rate:         bracket.Rate + 10,
			Desc:         "비사업용 토지 중과 (+10%p)",
			IsHeavyTaxed: true,
		})
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Tax > best.Tax {
			best = c
		}
	}
	return best
}
