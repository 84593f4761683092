package processors

import (
	"fmt"
	"strings"

	"github.com/username/smarttax/backend/src/models"
	"github.com/username/smarttax/backend/src/utils"
)

// CalculateExemption computes the relief amount for the chosen relief type
// plus the special agricultural tax levied on it. Farm reliefs cap at the
// yearly limit; public-works reliefs take 10% of tax (15% from the regime
// change date); custom reliefs apply the caller-supplied percentage. The
// special agricultural tax is 20% of the relief unless exempted, and the
// eight-year farm relief is always exempt from it.
func CalculateExemption(tax int64, reliefType string, customRate float64, transferDate string, isNongteukseExempt bool) models.ExemptionResult {
	var amount int64
	var desc string

	switch reliefType {
	case models.ReliefFarm8y:
		amount = utils.MinInt64(tax, taxTables.FarmYearlyLimit)
		desc = "8년 자경농지 감면"

	case models.ReliefFarmlandExchange:
		amount = utils.MinInt64(tax, taxTables.FarmYearlyLimit)
		desc = "농지대토 감면"

	case models.ReliefPublicCash, models.ReliefPublicReplacement:
		rate := 0.10
		if transferDate >= taxTables.PublicCashRateChangeDate {
			rate = 0.15
		}
		amount = utils.FloorInt64(float64(tax) * rate)
		desc = fmt.Sprintf("공익사업 수용 (%.0f%%)", rate*100)

	case models.ReliefCustom:
		amount = utils.FloorInt64(float64(tax) * (customRate / 100))
		desc = fmt.Sprintf("직접입력 감면 (%g%%)", customRate)
	}

	var nongteukse int64
	if !isNongteukseExempt && reliefType != models.ReliefFarm8y {
		nongteukse = utils.FloorInt64(float64(amount) * taxTables.NongteukseRate)
	}

	return models.ExemptionResult{Amount: amount, Desc: desc, Nongteukse: nongteukse}
}

// Relief tiers for amended (underfiled) returns, by months late.
func amendedReliefRate(monthsLate int) float64 {
	switch {
	case monthsLate <= 1:
		return 0.9
	case monthsLate <= 3:
		return 0.75
	case monthsLate <= 6:
		return 0.5
	case monthsLate <= 12:
		return 0.3
	case monthsLate <= 18:
		return 0.2
	case monthsLate <= 24:
		return 0.1
	}
	return 0
}

// Relief tiers for after-deadline (unfiled) returns.
func lateReturnReliefRate(monthsLate int) float64 {
	switch {
	case monthsLate <= 1:
		return 0.5
	case monthsLate <= 3:
		return 0.3
	case monthsLate <= 6:
		return 0.2
	}
	return 0
}

// CalculatePenalty computes the filing and late-payment penalties on an
// unpaid amount. The late-payment penalty accrues daily from the deadline
// to the payment date; the filing penalty depends on declaration type, with
// relief tiers by months late. Empty payment/report dates fall back to the
// deadline (report additionally falls back to the payment date).
func CalculatePenalty(unpaidTax int64, declarationType, deadline, paymentDate, reportDate string) models.PenaltyDetail {
	if unpaidTax <= 0 {
		return models.PenaltyDetail{Desc: "가산세 없음"}
	}

	if paymentDate == "" {
		paymentDate = deadline
	}
	if reportDate == "" {
		reportDate = paymentDate
	}

	dueDate, errDue := utils.ParseDate(deadline)
	payDate, errPay := utils.ParseDate(paymentDate)
	fileDate, errFile := utils.ParseDate(reportDate)
	if errDue != nil || errPay != nil || errFile != nil {
		return models.PenaltyDetail{Desc: "가산세 없음"}
	}

	daysLate := utils.DaysBetween(dueDate, payDate)
	if daysLate < 0 {
		daysLate = 0
	}
	monthsLate := utils.MonthsBetween(dueDate, fileDate)

	delayPenalty := utils.FloorInt64(float64(unpaidTax) * float64(daysLate) * taxTables.LatePaymentDailyRate)

	var reportPenalty int64
	var reliefRate float64

	switch declarationType {
	case models.DeclarationAfterDeadline:
		reportPenalty = utils.FloorInt64(float64(unpaidTax) * taxTables.UnfiledRate)
		reliefRate = lateReturnReliefRate(monthsLate)
	case models.DeclarationAmended:
		reportPenalty = utils.FloorInt64(float64(unpaidTax) * taxTables.UnderfiledRate)
		reliefRate = amendedReliefRate(monthsLate)
	}

	reportPenalty = utils.FloorInt64(float64(reportPenalty) * (1 - reliefRate))

	var parts []string
	if reportPenalty > 0 {
		if declarationType == models.DeclarationAfterDeadline {
			parts = append(parts, "무신고")
		} else {
			parts = append(parts, "과소신고")
		}
	}
	if daysLate > 0 {
		parts = append(parts, fmt.Sprintf("납부지연 %d일", daysLate))
	}
	if reliefRate > 0 {
		parts = append(parts, fmt.Sprintf("감면 %.0f%%", reliefRate*100))
	}

	desc := "가산세 없음"
	if len(parts) > 0 {
		desc = strings.Join(parts, ", ")
	}

	return models.PenaltyDetail{
		Total:     reportPenalty + delayPenalty,
		Report:    reportPenalty,
		Delay:     delayPenalty,
		DelayDays: daysLate,
		Desc:      desc,
	}
}

// CalculateInstallment splits a tax bill into an immediate and a deferred
// payment once the threshold is exceeded. Up to twice the threshold the
// deferred part is the excess over the threshold; beyond that it is exactly
// half (integer floor). The deferred part is due two calendar months after
// the deadline, same-day, with no month-end or holiday adjustment.
func CalculateInstallment(totalTax, threshold int64, deadline string) models.InstallmentInfo {
	if totalTax <= threshold {
		return models.InstallmentInfo{
			CanInstall:   false,
			TotalTax:     totalTax,
			FirstPayment: totalTax,
		}
	}

	var secondPayment int64
	if totalTax <= threshold*2 {
		secondPayment = totalTax - threshold
	} else {
		secondPayment = totalTax / 2
	}

	info := models.InstallmentInfo{
		CanInstall:    true,
		TotalTax:      totalTax,
		FirstPayment:  totalTax - secondPayment,
		SecondPayment: secondPayment,
	}

	if due, err := utils.ParseDate(deadline); err == nil {
		info.SecondDueDate = utils.FormatDate(due.AddDate(0, 2, 0))
	}

	return info
}
