package processors

import (
	"fmt"
	"math"

	"github.com/username/smarttax/backend/src/models"
	"github.com/username/smarttax/backend/src/utils"
)

// lttdRate looks up the first table row whose inclusive [MinYears, MaxYears]
// range contains years. No matching row means rate 0; the tables are not
// assumed to be total.
func lttdRate(years int, table []LTTDEntry) float64 {
	for _, row := range table {
		if years >= row.MinYears && years <= row.MaxYears {
			return row.Rate
		}
	}
	return 0
}

// CalculateLongTermDeduction computes the long-term holding deduction.
// Unregistered assets, presale rights, and holdings under three years get
// nothing. A high-price single-house with two full residence years (or the
// special residence flag) combines a holding-period rate and a
// residence-period rate from the one-house table, capped at 0.8 together;
// otherwise the general table keyed by holding years applies.
func CalculateLongTermDeduction(gain int64, years int, assetType string, residenceYears float64, useResidenceSpecial bool) models.LongTermDeduction {
	if assetType == models.AssetUnregistered || assetType == models.AssetPresaleRight || years < 3 {
		return models.LongTermDeduction{Amount: 0, Rate: 0, Desc: "공제대상 아님"}
	}

	if assetType == models.AssetHighPriceHouse {
		resFullYears := int(math.Floor(residenceYears))
		if resFullYears >= 2 || useResidenceSpecial {
			holdRate := lttdRate(years, taxTables.LTTDOneHouse)
			resRate := lttdRate(resFullYears, taxTables.LTTDOneHouse)
			totalRate := holdRate + resRate
			if totalRate > 0.8 {
				totalRate = 0.8
			}
			return models.LongTermDeduction{
				Amount: utils.FloorInt64(float64(gain) * totalRate),
				Rate:   totalRate,
				Desc:   fmt.Sprintf("표2 (보유%.0f%%+거주%.0f%%)", holdRate*100, resRate*100),
			}
		}

		rate := lttdRate(years, taxTables.LTTDGeneral)
		return models.LongTermDeduction{
			Amount: utils.FloorInt64(float64(gain) * rate),
			Rate:   rate,
			Desc:   "표1 (거주 2년 미만)",
		}
	}

	rate := lttdRate(years, taxTables.LTTDGeneral)
	return models.LongTermDeduction{
		Amount: utils.FloorInt64(float64(gain) * rate),
		Rate:   rate,
		Desc:   fmt.Sprintf("일반 공제 (%.0f%%)", rate*100),
	}
}
