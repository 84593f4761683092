package models

// Declaration types.
const (
	DeclarationRegular       = "regular"
	DeclarationAfterDeadline = "after_deadline"
	DeclarationAmended       = "amended"
)

// Asset types.
const (
	AssetGeneralHouse    = "general_house"    // 일반주택
	AssetHighPriceHouse  = "high_price_house" // 1세대1주택 고가주택
	AssetCommercial      = "commercial"       // 상가/건물
	AssetLand            = "land"             // 토지
	AssetLandFarm        = "land_farm"        // 자경/대토 농지
	AssetPresaleRight    = "presale_right"    // 분양권
	AssetMembershipRight = "membership_right" // 조합원입주권
	AssetUnregistered    = "unregistered"     // 미등기
)

// Transfer causes.
const (
	TransferSale          = "sale"
	TransferExpropriation = "expropriation"
	TransferAuction       = "auction"
	TransferBurdenGift    = "burden_gift"
	TransferExchange      = "exchange"
)

// Acquisition causes.
const (
	AcquisitionPurchase      = "purchase"
	AcquisitionConstruction  = "construction"
	AcquisitionAuction       = "auction"
	AcquisitionInheritance   = "inheritance"
	AcquisitionGift          = "gift"
	AcquisitionGiftCarryover = "gift_carryover"
)

// Acquisition price methods.
const (
	PriceMethodActual    = "actual"
	PriceMethodConverted = "converted"
	PriceMethodOfficial  = "official"
)

// Expense methods.
const (
	ExpenseMethodActual   = "actual"
	ExpenseMethodStandard = "standard"
)

// Land use classifications.
const (
	LandUseBusiness    = "business"
	LandUseNonBusiness = "non_business"
)

// Relief types.
const (
	ReliefNone              = "none"
	ReliefFarm8y            = "farm_8y"
	ReliefFarmlandExchange  = "farmland_exchange"
	ReliefPublicCash        = "public_cash"
	ReliefPublicReplacement = "public_replacement"
	ReliefCustom            = "custom"
)

// IsLandType reports whether the asset type counts as land for the
// non-business-land surcharge rules.
func IsLandType(assetType string) bool {
	return assetType == AssetLand || assetType == AssetLandFarm
}

// ReturnMeta carries the declaration type and the dates/prior amounts that
// drive penalty and aggregation handling.
type ReturnMeta struct {
	DeclarationType string `json:"declarationType"`
	ReportDate      string `json:"reportDate,omitempty"`
	PaymentDate     string `json:"paymentDate,omitempty"`

	// Amended filings: tax already paid on the initial return.
	InitialIncomeTax  Amount `json:"initialIncomeTax,omitempty"`
	InitialNongteukse Amount `json:"initialNongteukse,omitempty"`

	// Combined (aggregated) filings.
	HasPriorDeclaration bool   `json:"hasPriorDeclaration,omitempty"`
	PriorIncomeAmount   Amount `json:"priorIncomeAmount,omitempty"`
	PriorTaxAmount      Amount `json:"priorTaxAmount,omitempty"`
}

// Taxpayer identity fields. Passed through unused by the computation.
type Taxpayer struct {
	Name    string `json:"name"`
	SSN     string `json:"ssn"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

type Transferee struct {
	Name string `json:"name"`
	SSN  string `json:"ssn"`
}

type AssetInfo struct {
	Type    string `json:"type"`
	Address string `json:"address,omitempty"`

	// Land
	LandArea          float64 `json:"landArea,omitempty"` // ㎡
	LandUseType       string  `json:"landUseType,omitempty"`
	IsBisatoException bool    `json:"isBisatoException,omitempty"`

	// Pre-1990 land valuation
	IsPre1990         bool   `json:"isPre1990,omitempty"`
	Price1990Jan1     Amount `json:"price1990Jan1,omitempty"`
	GradeAcq          int    `json:"gradeAcq,omitempty"`
	Grade1990Aug30    int    `json:"grade1990Aug30,omitempty"`
	GradePrev1990Aug3 int    `json:"gradePrev1990Aug30,omitempty"`
}

type DealInfo struct {
	TransferCause string `json:"transferCause"`
	TransferDate  string `json:"transferDate"` // YYYY-MM-DD

	AcquisitionCause string `json:"acquisitionCause"`
	AcquisitionDate  string `json:"acquisitionDate"`

	// Inherited / gift-carryover acquisitions: the predecessor's dates.
	OrigAcquisitionDate  string `json:"origAcquisitionDate,omitempty"`
	OrigAcquisitionCause string `json:"origAcquisitionCause,omitempty"`
}

type AmountInfo struct {
	TransferPrice Amount `json:"transferPrice"`

	AcquisitionPriceMethod string `json:"acquisitionPriceMethod"`
	AcquisitionPrice       Amount `json:"acquisitionPrice,omitempty"`
	AcquisitionTax         Amount `json:"acquisitionTax,omitempty"`
	AcquisitionBrokerage   Amount `json:"acquisitionBrokerage,omitempty"`
	AcquisitionOther       Amount `json:"acquisitionOther,omitempty"`

	// Official assessed values
	OfficialPriceAcq      Amount `json:"officialPriceAcq,omitempty"`
	OfficialPriceTransfer Amount `json:"officialPriceTransfer,omitempty"`

	ExpenseMethod     string `json:"expenseMethod"`
	RepairCost        Amount `json:"repairCost,omitempty"`
	TransferBrokerage Amount `json:"transferBrokerage,omitempty"`
	OtherExpense      Amount `json:"otherExpense,omitempty"`

	// Burden-transfer (debt-assumption) gifts
	GiftValue      Amount `json:"giftValue,omitempty"`
	DebtAmount     Amount `json:"debtAmount,omitempty"`
	GiftEvalMethod string `json:"giftEvalMethod,omitempty"`

	// Carried-over gift tax paid
	GiftTaxPaid Amount `json:"giftTaxPaid,omitempty"`
}

type ResidenceInfo struct {
	ResidenceYears      float64 `json:"residenceYears"`
	UseResidenceSpecial bool    `json:"useResidenceSpecial,omitempty"`
}

type ReliefInfo struct {
	ReliefType         string  `json:"reliefType"`
	CustomRate         float64 `json:"customRate,omitempty"` // percent
	IsNongteukseExempt bool    `json:"isNongteukseExempt,omitempty"`
}

// Transaction is the full capital-gain transaction snapshot. It is treated
// as an immutable value per computation; every Result is rebuilt from
// scratch from one of these.
type Transaction struct {
	ID string `json:"id,omitempty"`

	ReturnMeta ReturnMeta  `json:"returnMeta"`
	Taxpayer   Taxpayer    `json:"taxpayer"`
	Transferee *Transferee `json:"transferee,omitempty"`

	Asset   AssetInfo  `json:"asset"`
	Deal    DealInfo   `json:"deal"`
	Amounts AmountInfo `json:"amounts"`

	Residence *ResidenceInfo `json:"residence,omitempty"`
	Relief    ReliefInfo     `json:"relief"`
}
