package processors

import (
	"fmt"
	"time"

	"github.com/username/smarttax/backend/src/models"
	"github.com/username/smarttax/backend/src/utils"
)

// CalculatePeriod computes the elapsed holding period between two calendar
// dates as full anniversary-years plus remaining days. The naive year count
// (end.Year - start.Year) is decremented when end's month/day precedes
// start's, then the period is rebuilt by walking forward one full year at a
// time so variable year lengths are charged exactly. The day remainder is
// therefore always shorter than the year that follows the last anniversary.
// Unparseable or empty inputs degrade to a zero period with a marker text.
func CalculatePeriod(startStr, endStr string) models.HoldingPeriod {
	if startStr == "" || endStr == "" {
		return models.HoldingPeriod{Years: 0, Days: 0, Text: "0년 0일"}
	}

	start, errS := utils.ParseDate(startStr)
	end, errE := utils.ParseDate(endStr)
	if errS != nil || errE != nil {
		return models.HoldingPeriod{Years: 0, Days: 0, Text: "날짜 오류"}
	}

	years := end.Year() - start.Year()
	beforeAnniversary := end.Month() < start.Month() ||
		(end.Month() == start.Month() && end.Day() < start.Day())
	if beforeAnniversary {
		years--
	}

	diffDays := utils.DaysBetween(start, end)
	if diffDays < 0 {
		diffDays = 0
	}

	targetYears := years
	if targetYears < 0 {
		targetYears = 0
	}

	remainingDays := diffDays
	computedYears := 0
	cursor := start

	for computedYears < targetYears {
		next := cursor.AddDate(1, 0, 0)
		yearLength := utils.DaysBetween(cursor, next)
		if remainingDays < yearLength {
			break
		}
		remainingDays -= yearLength
		cursor = next
		computedYears++
	}

	return models.HoldingPeriod{
		Years: computedYears,
		Days:  remainingDays,
		Text:  fmt.Sprintf("%d년 %d일", computedYears, remainingDays),
	}
}

// CalculateDeadline computes the legal filing deadline for a transfer: the
// last day of the month two months after the transfer month (three for
// debt-assumption gifts), rolled forward past weekends and configured
// holidays. Returns "" for empty or unparseable input.
func CalculateDeadline(transferDateStr string, isBurdenGift bool) string {
	if transferDateStr == "" {
		return ""
	}
	date, err := utils.ParseDate(transferDateStr)
	if err != nil {
		return ""
	}

	monthsToAdd := 2
	if isBurdenGift {
		monthsToAdd = 3
	}

	// Day 0 of the following month is the target month's last day.
	deadline := time.Date(date.Year(), date.Month()+time.Month(monthsToAdd)+1, 0, 0, 0, 0, 0, time.UTC)

	for {
		wd := deadline.Weekday()
		if wd == time.Saturday || wd == time.Sunday || IsHoliday(deadline) {
			deadline = deadline.AddDate(0, 0, 1)
			continue
		}
		break
	}

	return utils.FormatDate(deadline)
}

// EffectiveAcquisitionDate applies the deemed-acquisition rule: any
// acquisition before the legal cutoff is treated as acquired on the cutoff
// date. Later dates pass through unchanged, as does anything unparseable.
func EffectiveAcquisitionDate(dateStr string) string {
	if dateStr == "" {
		return dateStr
	}
	date, err := utils.ParseDate(dateStr)
	if err != nil {
		return dateStr
	}
	cutoff, err := utils.ParseDate(taxTables.Pre1985Date)
	if err != nil {
		return dateStr
	}
	if date.Before(cutoff) {
		return taxTables.Pre1985Date
	}
	return dateStr
}
