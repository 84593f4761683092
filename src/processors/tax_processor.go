package processors

import (
	"errors"

	"github.com/username/smarttax/backend/src/logger"
	"github.com/username/smarttax/backend/src/models"
	"github.com/username/smarttax/backend/src/utils"
)

// ErrNilTransaction is returned when the orchestrator is handed no
// transaction at all. This is the core's only hard stop; every other bad
// input degrades to zero amounts with a descriptive label.
var ErrNilTransaction = errors.New("transaction is nil")

// TaxProcessor derives a full Result from a Transaction snapshot. It is
// stateless and safe for concurrent use; every call rebuilds the result
// from scratch against the active tax tables.
type TaxProcessor struct{}

func NewTaxProcessor() *TaxProcessor {
	return &TaxProcessor{}
}

// calculateAcquisitionPrice resolves the acquisition price by the selected
// method, scaled by the burden ratio. The converted method floors the
// converted price before applying the ratio and floors again after, and
// resolves to 0 with a "cannot be determined" label when either assessed
// value is missing.
func calculateAcquisitionPrice(amounts *models.AmountInfo, burdenRatio float64) (int64, string) {
	actualTotal := int64(amounts.AcquisitionPrice) +
		int64(amounts.AcquisitionTax) +
		int64(amounts.AcquisitionBrokerage) +
		int64(amounts.AcquisitionOther)

	officialAcq := int64(amounts.OfficialPriceAcq)

	switch amounts.AcquisitionPriceMethod {
	case models.PriceMethodActual:
		return utils.FloorInt64(float64(actualTotal) * burdenRatio), "실지취득가액"

	case models.PriceMethodOfficial:
		return utils.FloorInt64(float64(officialAcq) * burdenRatio), "기준시가"
	}

	transferPrice := int64(amounts.TransferPrice)
	officialTransfer := int64(amounts.OfficialPriceTransfer)

	if officialTransfer > 0 && officialAcq > 0 {
		rawPrice := utils.FloorInt64(float64(transferPrice) * (float64(officialAcq) / float64(officialTransfer)))
		return utils.FloorInt64(float64(rawPrice) * burdenRatio), "환산취득가액"
	}

	return 0, "산정불가"
}

// CalculateTax runs the full sequential derivation from a transaction
// snapshot to a result snapshot. Each step is a pure function of prior
// steps and transaction fields; monetary values are floored to whole KRW at
// each designated step.
func (p *TaxProcessor) CalculateTax(tx *models.Transaction) (*models.Result, error) {
	if tx == nil {
		logger.L.Error("CalculateTax called with nil transaction")
		return nil, ErrNilTransaction
	}

	asset := &tx.Asset
	deal := &tx.Deal
	amounts := &tx.Amounts

	// Deemed acquisition dates, then the two holding periods: rate uses the
	// original acquisition date when one exists (inheritance/carryover),
	// deduction always uses the actual acquisition date.
	effectiveAcqDate := EffectiveAcquisitionDate(deal.AcquisitionDate)
	rateStartDate := effectiveAcqDate
	if deal.OrigAcquisitionDate != "" {
		rateStartDate = EffectiveAcquisitionDate(deal.OrigAcquisitionDate)
	}

	holdingForRate := CalculatePeriod(rateStartDate, deal.TransferDate)
	holdingForDed := CalculatePeriod(effectiveAcqDate, deal.TransferDate)

	// Debt-assumption gift: the assumed-debt fraction of the gift is taxed
	// as a sale, so acquisition price and expense scale by this ratio.
	isBurdenGift := deal.TransferCause == models.TransferBurdenGift
	burdenRatio := 1.0
	if isBurdenGift && amounts.GiftValue > 0 {
		burdenRatio = float64(amounts.DebtAmount) / float64(amounts.GiftValue)
		if burdenRatio > 1 {
			burdenRatio = 1
		}
	}

	acqPrice, acqMethod := calculateAcquisitionPrice(amounts, burdenRatio)

	// Expense. The converted acquisition method forces the standard 3%
	// allowance off the assessed acquisition value regardless of the chosen
	// expense method; the official method deliberately does not.
	var expense int64
	var expenseDesc string

	switch {
	case amounts.AcquisitionPriceMethod == models.PriceMethodConverted:
		expense = utils.FloorInt64(float64(amounts.OfficialPriceAcq) * taxTables.StandardExpenseRate * burdenRatio)
		expenseDesc = "개산공제 (3%)"

	case amounts.ExpenseMethod == models.ExpenseMethodActual:
		actualExpense := int64(amounts.RepairCost) + int64(amounts.TransferBrokerage) + int64(amounts.OtherExpense)
		expense = utils.FloorInt64(float64(actualExpense) * burdenRatio)
		expenseDesc = "실제 필요경비"

	default:
		basePrice := int64(amounts.OfficialPriceAcq)
		if basePrice == 0 {
			basePrice = acqPrice
		}
		expense = utils.FloorInt64(float64(basePrice) * taxTables.StandardExpenseRate * burdenRatio)
		expenseDesc = "개산공제 (3%)"
	}

	if amounts.GiftTaxPaid > 0 {
		expense += int64(amounts.GiftTaxPaid)
		expenseDesc += " + 증여세"
	}

	transferPrice := int64(amounts.TransferPrice)
	rawGain := utils.MaxInt64(0, transferPrice-acqPrice-expense)

	// High-price single-house: only the gain fraction above the threshold
	// is taxable.
	taxableGain := rawGain
	var taxExemptGain int64
	highPriceLimit := taxTables.HighPriceLimit

	if asset.Type == models.AssetHighPriceHouse && transferPrice > 0 {
		nonTaxableRatio := float64(highPriceLimit) / float64(transferPrice)
		if nonTaxableRatio > 1 {
			nonTaxableRatio = 1
		}
		taxExemptGain = utils.FloorInt64(float64(rawGain) * nonTaxableRatio)
		taxableGain = utils.MaxInt64(0, rawGain-taxExemptGain)
	}

	isHeavy := isHeavyTaxedCase(asset.Type, asset.LandUseType, asset.IsBisatoException, holdingForRate.Years)

	var longTermDeduction models.LongTermDeduction
	if isHeavy {
		longTermDeduction = models.LongTermDeduction{Amount: 0, Rate: 0, Desc: "중과 대상 장특공 배제"}
	} else {
		var residenceYears float64
		var useResidenceSpecial bool
		if tx.Residence != nil {
			residenceYears = tx.Residence.ResidenceYears
			useResidenceSpecial = tx.Residence.UseResidenceSpecial
		}
		longTermDeduction = CalculateLongTermDeduction(taxableGain, holdingForDed.Years, asset.Type, residenceYears, useResidenceSpecial)
	}

	currentIncomeAmount := taxableGain - longTermDeduction.Amount
	priorIncomeAmount := int64(tx.ReturnMeta.PriorIncomeAmount)
	isAggregation := tx.ReturnMeta.HasPriorDeclaration

	totalIncomeAmount := currentIncomeAmount
	if isAggregation {
		totalIncomeAmount += priorIncomeAmount
	}

	basicDeduction := taxTables.BasicDeduction
	if asset.Type == models.AssetUnregistered {
		basicDeduction = 0
	}

	taxBase := utils.MaxInt64(0, totalIncomeAmount-basicDeduction)

	taxRate := CalculateTaxRate(taxBase, holdingForRate.Years, asset.Type, asset.LandUseType, asset.IsBisatoException, deal.TransferDate)
	calculatedTax := taxRate.Tax

	exemption := CalculateExemption(calculatedTax, tx.Relief.ReliefType, tx.Relief.CustomRate, deal.TransferDate, tx.Relief.IsNongteukseExempt)
	decidedTax := utils.MaxInt64(0, calculatedTax-exemption.Amount)

	deadline := CalculateDeadline(deal.TransferDate, isBurdenGift)

	// Construction-conversion surcharge: newly-built buildings valued by the
	// converted method and sold within five years.
	var constructionPenalty int64
	isBuilding := asset.Type == models.AssetGeneralHouse ||
		asset.Type == models.AssetHighPriceHouse ||
		asset.Type == models.AssetCommercial
	if isBuilding &&
		deal.AcquisitionCause == models.AcquisitionConstruction &&
		amounts.AcquisitionPriceMethod == models.PriceMethodConverted &&
		holdingForRate.Years < 5 {
		constructionPenalty = utils.FloorInt64(float64(acqPrice) * taxTables.ConstructionPenaltyRate)
	}

	// Amended filings pay only the additional amount over the initial return.
	additionalIncomeTax := decidedTax + constructionPenalty - int64(tx.ReturnMeta.InitialIncomeTax)
	additionalNong := exemption.Nongteukse - int64(tx.ReturnMeta.InitialNongteukse)

	incomePenalty := CalculatePenalty(
		utils.MaxInt64(0, additionalIncomeTax),
		tx.ReturnMeta.DeclarationType,
		deadline,
		tx.ReturnMeta.PaymentDate,
		tx.ReturnMeta.ReportDate,
	)
	nongPenalty := CalculatePenalty(
		utils.MaxInt64(0, additionalNong),
		tx.ReturnMeta.DeclarationType,
		deadline,
		tx.ReturnMeta.PaymentDate,
		tx.ReturnMeta.ReportDate,
	)

	totalIncomeTax := utils.MaxInt64(0, additionalIncomeTax) + incomePenalty.Total
	totalNongteukse := utils.MaxInt64(0, additionalNong) + nongPenalty.Total

	if isAggregation {
		totalIncomeTax = utils.MaxInt64(0, totalIncomeTax-int64(tx.ReturnMeta.PriorTaxAmount))
	}

	incomeInstallment := CalculateInstallment(totalIncomeTax, taxTables.IncomeInstallThreshold, deadline)
	nongInstallment := CalculateInstallment(totalNongteukse, taxTables.NongInstallThreshold, deadline)

	localIncomeTax := utils.FloorInt64(float64(totalIncomeTax) * taxTables.LocalTaxRate)

	return &models.Result{
		AcquisitionPrice:       acqPrice,
		AcquisitionPriceMethod: acqMethod,
		Expense:                expense,
		ExpenseDesc:            expenseDesc,

		RawGain:       rawGain,
		TaxableGain:   taxableGain,
		TaxExemptGain: taxExemptGain,

		LongTermDeduction: longTermDeduction,

		CurrentIncomeAmount: currentIncomeAmount,
		PriorIncomeAmount:   priorIncomeAmount,
		TotalIncomeAmount:   totalIncomeAmount,

		BasicDeduction: basicDeduction,
		TaxBase:        taxBase,
		TaxRate:        taxRate,
		CalculatedTax:  calculatedTax,

		Exemption:  exemption,
		DecidedTax: decidedTax,

		ConstructionPenalty: constructionPenalty,
		IncomePenalty:       incomePenalty,
		NongPenalty:         nongPenalty,

		TotalIncomeTax: totalIncomeTax,
		Nongteukse:     totalNongteukse,
		LocalIncomeTax: localIncomeTax,

		IncomeInstallment: incomeInstallment,
		NongInstallment:   nongInstallment,

		TotalImmediateBill: incomeInstallment.FirstPayment + nongInstallment.FirstPayment,

		Deadline:       deadline,
		HoldingForRate: holdingForRate,
		HoldingForDed:  holdingForDed,
		HighPriceLimit: highPriceLimit,

		IsBurdenGift: isBurdenGift,
		BurdenRatio:  burdenRatio,
	}, nil
}
