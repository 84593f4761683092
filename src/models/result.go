package models

// HoldingPeriod is an elapsed span expressed as full anniversary-years plus
// the remaining days.
type HoldingPeriod struct {
	Years int    `json:"years"`
	Days  int    `json:"days"`
	Text  string `json:"text"`
}

// LongTermDeduction is the long-term holding deduction applied to the gain.
type LongTermDeduction struct {
	Amount int64   `json:"amount"`
	Rate   float64 `json:"rate"`
	Desc   string  `json:"desc"`
}

// TaxRateResult is the winning rate candidate and its computed tax.
type TaxRateResult struct {
	Tax          int64   `json:"tax"`
	Rate         float64 `json:"rate"` // percent
	Desc         string  `json:"desc"`
	IsHeavyTaxed bool    `json:"isHeavyTaxed"`
}

// ExemptionResult is the relief amount plus the special agricultural tax
// levied on it.
type ExemptionResult struct {
	Amount     int64  `json:"amount"`
	Desc       string `json:"desc"`
	Nongteukse int64  `json:"nongteukse"`
}

// PenaltyDetail breaks a penalty into its filing and late-payment parts.
type PenaltyDetail struct {
	Total     int64  `json:"total"`
	Report    int64  `json:"report"`
	Delay     int64  `json:"delay"`
	DelayDays int    `json:"delayDays"`
	Desc      string `json:"desc"`
}

// InstallmentInfo is the immediate/deferred split of a tax bill.
type InstallmentInfo struct {
	CanInstall    bool   `json:"canInstall"`
	TotalTax      int64  `json:"totalTax"`
	FirstPayment  int64  `json:"firstPayment"`
	SecondPayment int64  `json:"secondPayment"`
	SecondDueDate string `json:"secondDueDate,omitempty"`
}

// Result is the full derived tax computation. It carries every intermediate
// amount and is rebuilt wholesale on each calculation; there is no partial
// or incremental state.
type Result struct {
	AcquisitionPrice       int64  `json:"acquisitionPrice"`
	AcquisitionPriceMethod string `json:"acquisitionPriceMethod"`
	Expense                int64  `json:"expense"`
	ExpenseDesc            string `json:"expenseDesc"`

	RawGain       int64 `json:"rawGain"`
	TaxableGain   int64 `json:"taxableGain"`
	TaxExemptGain int64 `json:"taxExemptGain"`

	LongTermDeduction LongTermDeduction `json:"longTermDeduction"`

	CurrentIncomeAmount int64 `json:"currentIncomeAmount"`
	PriorIncomeAmount   int64 `json:"priorIncomeAmount"`
	TotalIncomeAmount   int64 `json:"totalIncomeAmount"`

	BasicDeduction int64         `json:"basicDeduction"`
	TaxBase        int64         `json:"taxBase"`
	TaxRate        TaxRateResult `json:"taxRate"`
	CalculatedTax  int64         `json:"calculatedTax"`

	Exemption  ExemptionResult `json:"exemption"`
	DecidedTax int64           `json:"decidedTax"`

	ConstructionPenalty int64         `json:"constructionPenalty"`
	IncomePenalty       PenaltyDetail `json:"incomePenalty"`
	NongPenalty         PenaltyDetail `json:"nongPenalty"`

	TotalIncomeTax int64 `json:"totalIncomeTax"`
	Nongteukse     int64 `json:"nongteukse"`
	LocalIncomeTax int64 `json:"localIncomeTax"`

	IncomeInstallment InstallmentInfo `json:"incomeInstallment"`
	NongInstallment   InstallmentInfo `json:"nongInstallment"`

	TotalImmediateBill int64 `json:"totalImmediateBill"`

	Deadline       string        `json:"deadline"`
	HoldingForRate HoldingPeriod `json:"holdingForRate"`
	HoldingForDed  HoldingPeriod `json:"holdingForDed"`
	HighPriceLimit int64         `json:"highPriceLimit"`

	IsBurdenGift bool    `json:"isBurdenGift"`
	BurdenRatio  float64 `json:"burdenRatio"`
}
