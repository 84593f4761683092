package scenarios

// Condition operators.
const (
	OpEq  = "eq"
	OpNe  = "ne"
	OpIn  = "in"
	OpGt  = "gt"
	OpLt  = "lt"
	OpGte = "gte"
	OpLte = "lte"
)

// Tax rate categories a scenario maps to.
const (
	RateProgressive = "progressive"
	RateFlat        = "flat"
	RateHeavy       = "heavy"
)

// Condition tests one transaction field, addressed by a dotted JSON path,
// against a literal value.
type Condition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// Rule is a declarative wizard scenario. Rules are evaluated in declaration
// order; matching is advisory and never alters the computation itself.
type Rule struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	Conditions     []Condition `json:"conditions"`
	RequiredFields []string    `json:"requiredFields"`
	OptionalFields []string    `json:"optionalFields"`

	TaxRateType  string   `json:"taxRateType"`
	SpecialLogic []string `json:"specialLogic,omitempty"`
}

// ScenarioRules is the ordered rule set. Asset-type rules come first, then
// the cause-based rules that can overlap them.
var ScenarioRules = []Rule{
	{
		ID:          "HIGH_PRICE_HOUSE_EXEMPT",
		Name:        "1세대1주택 고가주택 (비과세)",
		Description: "12억 초과분만 과세, 비과세 안분 계산 필요",
		Conditions: []Condition{
			{Field: "asset.type", Operator: OpEq, Value: "high_price_house"},
		},
		RequiredFields: []string{
			"asset.address",
			"deal.transferDate",
			"deal.acquisitionDate",
			"amounts.transferPrice",
			"residence.residenceYears",
		},
		OptionalFields: []string{"residence.useResidenceSpecial"},
		TaxRateType:    RateProgressive,
		SpecialLogic:   []string{"HIGH_PRICE_EXEMPT_RATIO", "ONE_HOUSE_LTTD"},
	},
	{
		ID:          "HOUSE_GENERAL",
		Name:        "일반 주택",
		Description: "다주택자 또는 비과세 요건 미충족 주택",
		Conditions: []Condition{
			{Field: "asset.type", Operator: OpEq, Value: "general_house"},
		},
		RequiredFields: []string{
			"asset.address",
			"deal.transferDate",
			"deal.acquisitionDate",
			"amounts.transferPrice",
		},
		OptionalFields: []string{},
		TaxRateType:    RateProgressive,
	},
	{
		ID:          "LAND_BUSINESS",
		Name:        "사업용 토지",
		Description: "일반 세율 적용 토지",
		Conditions: []Condition{
			{Field: "asset.type", Operator: OpEq, Value: "land"},
			{Field: "asset.landUseType", Operator: OpEq, Value: "business"},
		},
		RequiredFields: []string{
			"asset.address",
			"asset.landArea",
			"deal.transferDate",
			"deal.acquisitionDate",
			"amounts.transferPrice",
		},
		OptionalFields: []string{"asset.isPre1990"},
		TaxRateType:    RateProgressive,
	},
	{
		ID:          "LAND_NON_BUSINESS",
		Name:        "비사업용 토지",
		Description: "중과세율 (+10%p) 적용",
		Conditions: []Condition{
			{Field: "asset.type", Operator: OpEq, Value: "land"},
			{Field: "asset.landUseType", Operator: OpEq, Value: "non_business"},
		},
		RequiredFields: []string{
			"asset.address",
			"asset.landArea",
			"deal.transferDate",
			"deal.acquisitionDate",
			"amounts.transferPrice",
		},
		OptionalFields: []string{"asset.isBisatoException"},
		TaxRateType:    RateHeavy,
		SpecialLogic:   []string{"NON_BUSINESS_LAND_SURCHARGE"},
	},
	{
		ID:          "LAND_FARM_8Y",
		Name:        "8년 자경 농지",
		Description: "100% 감면 (한도 1억원)",
		Conditions: []Condition{
			{Field: "asset.type", Operator: OpEq, Value: "land_farm"},
		},
		RequiredFields: []string{
			"asset.address",
			"asset.landArea",
			"deal.transferDate",
			"deal.acquisitionDate",
			"amounts.transferPrice",
		},
		OptionalFields: []string{},
		TaxRateType:    RateProgressive,
		SpecialLogic:   []string{"FARM_8Y_RELIEF"},
	},
	{
		ID:          "PRESALE_RIGHT",
		Name:        "분양권",
		Description: "1년 미만 70%, 1년 이상 60% 단일세율",
		Conditions: []Condition{
			{Field: "asset.type", Operator: OpEq, Value: "presale_right"},
		},
		RequiredFields: []string{
			"asset.address",
			"deal.transferDate",
			"deal.acquisitionDate",
			"amounts.transferPrice",
		},
		OptionalFields: []string{},
		TaxRateType:    RateFlat,
		SpecialLogic:   []string{"PRESALE_FLAT_RATE"},
	},
	{
		ID:          "MEMBERSHIP_RIGHT",
		Name:        "조합원입주권",
		Description: "1년 미만 70%, 2년 미만 60%, 2년 이상 누진",
		Conditions: []Condition{
			{Field: "asset.type", Operator: OpEq, Value: "membership_right"},
		},
		RequiredFields: []string{
			"asset.address",
			"deal.transferDate",
			"deal.acquisitionDate",
			"amounts.transferPrice",
		},
		OptionalFields: []string{},
		TaxRateType:    RateProgressive,
		SpecialLogic:   []string{"MEMBERSHIP_SHORT_TERM_RATE"},
	},
	{
		ID:          "UNREGISTERED",
		Name:        "미등기 자산",
		Description: "70% 단일세율, 기본공제 없음",
		Conditions: []Condition{
			{Field: "asset.type", Operator: OpEq, Value: "unregistered"},
		},
		RequiredFields: []string{
			"asset.address",
			"deal.transferDate",
			"deal.acquisitionDate",
			"amounts.transferPrice",
		},
		OptionalFields: []string{},
		TaxRateType:    RateFlat,
		SpecialLogic:   []string{"UNREGISTERED_70PCT", "NO_BASIC_DEDUCTION"},
	},
	{
		ID:          "COMMERCIAL",
		Name:        "상가/건물",
		Description: "일반 누진세율 적용",
		Conditions: []Condition{
			{Field: "asset.type", Operator: OpEq, Value: "commercial"},
		},
		RequiredFields: []string{
			"asset.address",
			"deal.transferDate",
			"deal.acquisitionDate",
			"amounts.transferPrice",
		},
		OptionalFields: []string{},
		TaxRateType:    RateProgressive,
	},
	{
		ID:          "BURDEN_GIFT",
		Name:        "부담부증여",
		Description: "채무인수액 비율로 안분 과세",
		Conditions: []Condition{
			{Field: "deal.transferCause", Operator: OpEq, Value: "burden_gift"},
		},
		RequiredFields: []string{
			"amounts.giftValue",
			"amounts.debtAmount",
		},
		OptionalFields: []string{"amounts.giftEvalMethod"},
		TaxRateType:    RateProgressive,
		SpecialLogic:   []string{"BURDEN_GIFT_RATIO"},
	},
	{
		ID:          "INHERITANCE",
		Name:        "상속 취득",
		Description: "피상속인 취득일 기준 보유기간 계산",
		Conditions: []Condition{
			{Field: "deal.acquisitionCause", Operator: OpEq, Value: "inheritance"},
		},
		RequiredFields: []string{
			"deal.origAcquisitionDate",
		},
		OptionalFields: []string{"deal.origAcquisitionCause"},
		TaxRateType:    RateProgressive,
		SpecialLogic:   []string{"INHERITANCE_HOLDING_PERIOD"},
	},
	{
		ID:          "GIFT_CARRYOVER",
		Name:        "증여 이월과세",
		Description: "증여자 취득가액/취득일 승계",
		Conditions: []Condition{
			{Field: "deal.acquisitionCause", Operator: OpEq, Value: "gift_carryover"},
		},
		RequiredFields: []string{
			"deal.origAcquisitionDate",
			"amounts.giftTaxPaid",
		},
		OptionalFields: []string{"deal.origAcquisitionCause"},
		TaxRateType:    RateProgressive,
		SpecialLogic:   []string{"GIFT_CARRYOVER_ACQ_PRICE", "GIFT_TAX_EXPENSE"},
	},
}
