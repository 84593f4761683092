package processors

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/username/smarttax/backend/src/logger"
	"github.com/username/smarttax/backend/src/utils"
)

// TaxBracket is one row of a progressive rate table. UpTo == -1 marks the
// open-ended top bracket. Rate is a percentage; Deduction the progressive
// subtraction constant.
type TaxBracket struct {
	UpTo      int64   `json:"upTo"`
	Rate      float64 `json:"rate"`
	Deduction int64   `json:"deduction"`
}

// LTTDEntry is one row of a long-term holding deduction table; rows match
// years in the inclusive [MinYears, MaxYears] range.
type LTTDEntry struct {
	MinYears int     `json:"minYears"`
	MaxYears int     `json:"maxYears"`
	Rate     float64 `json:"rate"`
}

// TaxTables bundles every rate table, constant, and holiday calendar the
// processors consume. These are configuration data, not behavior: the file
// under TAX_TABLE_PATH may override the compiled-in defaults.
type TaxTables struct {
	Brackets2022 []TaxBracket `json:"brackets2022"`
	Brackets2023 []TaxBracket `json:"brackets2023"`

	LTTDGeneral  []LTTDEntry `json:"lttdGeneral"`
	LTTDOneHouse []LTTDEntry `json:"lttdOneHouse"`

	// Fixed-date public holidays as MM-DD, applied every year, plus
	// lunar-calendar holidays listed per year as full dates.
	FixedHolidays []string         `json:"fixedHolidays"`
	LunarHolidays map[int][]string `json:"lunarHolidays"`

	BasicDeduction  int64 `json:"basicDeduction"`
	HighPriceLimit  int64 `json:"highPriceLimit"`
	FarmYearlyLimit int64 `json:"farmYearlyLimit"`

	LocalTaxRate   float64 `json:"localTaxRate"`
	NongteukseRate float64 `json:"nongteukseRate"`

	Pre1985Date              string `json:"pre1985Date"`
	Regime2023Date           string `json:"regime2023Date"`
	PublicCashRateChangeDate string `json:"publicCashRateChangeDate"`

	LatePaymentDailyRate float64 `json:"latePaymentDailyRate"`
	UnfiledRate          float64 `json:"unfiledRate"`
	UnderfiledRate       float64 `json:"underfiledRate"`

	StandardExpenseRate     float64 `json:"standardExpenseRate"`
	ConstructionPenaltyRate float64 `json:"constructionPenaltyRate"`

	IncomeInstallThreshold int64 `json:"incomeInstallThreshold"`
	NongInstallThreshold   int64 `json:"nongInstallThreshold"`
}

func defaultTaxTables() *TaxTables {
	return &TaxTables{
		Brackets2022: []TaxBracket{
			{UpTo: 12_000_000, Rate: 6, Deduction: 0},
			{UpTo: 46_000_000, Rate: 15, Deduction: 1_080_000},
			{UpTo: 88_000_000, Rate: 24, Deduction: 5_220_000},
			{UpTo: 150_000_000, Rate: 35, Deduction: 14_900_000},
			{UpTo: 300_000_000, Rate: 38, Deduction: 19_400_000},
			{UpTo: 500_000_000, Rate: 40, Deduction: 25_400_000},
			{UpTo: 1_000_000_000, Rate: 42, Deduction: 35_400_000},
			{UpTo: -1, Rate: 45, Deduction: 65_400_000},
		},
		Brackets2023: []TaxBracket{
			{UpTo: 14_000_000, Rate: 6, Deduction: 0},
			{UpTo: 50_000_000, Rate: 15, Deduction: 1_260_000},
			{UpTo: 88_000_000, Rate: 24, Deduction: 5_760_000},
			{UpTo: 150_000_000, Rate: 35, Deduction: 15_440_000},
			{UpTo: 300_000_000, Rate: 38, Deduction: 19_940_000},
			{UpTo: 500_000_000, Rate: 40, Deduction: 25_940_000},
			{UpTo: 1_000_000_000, Rate: 42, Deduction: 35_940_000},
			{UpTo: -1, Rate: 45, Deduction: 65_940_000},
		},

		LTTDGeneral: []LTTDEntry{
			{MinYears: 3, MaxYears: 3, Rate: 0.06},
			{MinYears: 4, MaxYears: 4, Rate: 0.08},
			{MinYears: 5, MaxYears: 5, Rate: 0.10},
			{MinYears: 6, MaxYears: 6, Rate: 0.12},
			{MinYears: 7, MaxYears: 7, Rate: 0.14},
			{MinYears: 8, MaxYears: 8, Rate: 0.16},
			{MinYears: 9, MaxYears: 9, Rate: 0.18},
			{MinYears: 10, MaxYears: 10, Rate: 0.20},
			{MinYears: 11, MaxYears: 11, Rate: 0.22},
			{MinYears: 12, MaxYears: 12, Rate: 0.24},
			{MinYears: 13, MaxYears: 13, Rate: 0.26},
			{MinYears: 14, MaxYears: 14, Rate: 0.28},
			{MinYears: 15, MaxYears: 999, Rate: 0.30},
		},
		LTTDOneHouse: []LTTDEntry{
			{MinYears: 3, MaxYears: 3, Rate: 0.12},
			{MinYears: 4, MaxYears: 4, Rate: 0.16},
			{MinYears: 5, MaxYears: 5, Rate: 0.20},
			{MinYears: 6, MaxYears: 6, Rate: 0.24},
			{MinYears: 7, MaxYears: 7, Rate: 0.28},
			{MinYears: 8, MaxYears: 8, Rate: 0.32},
			{MinYears: 9, MaxYears: 9, Rate: 0.36},
			{MinYears: 10, MaxYears: 999, Rate: 0.40},
		},

		FixedHolidays: []string{
			"01-01", "03-01", "05-05", "06-06", "08-15", "10-03", "10-09", "12-25",
		},
		LunarHolidays: map[int][]string{
			2022: {"2022-01-31", "2022-02-01", "2022-02-02", "2022-05-08", "2022-09-09", "2022-09-10", "2022-09-11", "2022-09-12"},
			2023: {"2023-01-21", "2023-01-22", "2023-01-23", "2023-01-24", "2023-05-27", "2023-09-28", "2023-09-29", "2023-09-30"},
			2024: {"2024-02-09", "2024-02-10", "2024-02-11", "2024-02-12", "2024-05-15", "2024-09-16", "2024-09-17", "2024-09-18"},
			2025: {"2025-01-28", "2025-01-29", "2025-01-30", "2025-05-05", "2025-10-05", "2025-10-06", "2025-10-07", "2025-10-08"},
			2026: {"2026-02-16", "2026-02-17", "2026-02-18", "2026-05-24", "2026-09-24", "2026-09-25", "2026-09-26"},
		},

		BasicDeduction:  2_500_000,
		HighPriceLimit:  1_200_000_000,
		FarmYearlyLimit: 100_000_000,

		LocalTaxRate:   0.10,
		NongteukseRate: 0.20,

		Pre1985Date:              "1985-01-01",
		Regime2023Date:           "2023-01-01",
		PublicCashRateChangeDate: "2025-01-01",

		LatePaymentDailyRate: 0.00022,
		UnfiledRate:          0.20,
		UnderfiledRate:       0.10,

		StandardExpenseRate:     0.03,
		ConstructionPenaltyRate: 0.05,

		IncomeInstallThreshold: 10_000_000,
		NongInstallThreshold:   5_000_000,
	}
}

var taxTables = defaultTaxTables()

// LoadTaxTables overrides the built-in tables from a JSON file. Missing file
// is not an error: the defaults stay in effect. Call once from main after
// config is loaded.
func LoadTaxTables(filePath string) error {
	file, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.L.Info("No tax table override file, using built-in tables", "path", filePath)
			return nil
		}
		logger.L.Error("Error reading tax table file", "path", filePath, "error", err)
		return fmt.Errorf("error reading tax table file '%s': %w", filePath, err)
	}

	loaded := defaultTaxTables()
	if err := json.Unmarshal(file, loaded); err != nil {
		logger.L.Error("Error unmarshalling tax tables", "path", filePath, "error", err)
		return fmt.Errorf("error unmarshalling tax tables from '%s': %w", filePath, err)
	}
	taxTables = loaded
	logger.L.Info("Tax tables loaded", "path", filePath,
		"brackets2023", len(loaded.Brackets2023), "lunarYears", len(loaded.LunarHolidays))
	return nil
}

// Tables returns the active tax tables.
func Tables() *TaxTables {
	return taxTables
}

// bracketsFor selects the progressive table by transfer-date regime. ISO
// date strings compare lexicographically; an empty or malformed date falls
// back to the pre-2023 table.
func bracketsFor(transferDate string) []TaxBracket {
	if transferDate >= taxTables.Regime2023Date {
		return taxTables.Brackets2023
	}
	return taxTables.Brackets2022
}

// findBracket returns the first bracket covering taxBase, or the top one.
func findBracket(taxBase int64, brackets []TaxBracket) TaxBracket {
	for _, b := range brackets {
		if b.UpTo == -1 || taxBase <= b.UpTo {
			return b
		}
	}
	return brackets[len(brackets)-1]
}

// IsHoliday reports whether the date is a configured public holiday.
func IsHoliday(t time.Time) bool {
	md := t.Format("01-02")
	for _, h := range taxTables.FixedHolidays {
		if h == md {
			return true
		}
	}
	full := utils.FormatDate(t)
	for _, h := range taxTables.LunarHolidays[t.Year()] {
		if h == full {
			return true
		}
	}
	return false
}
