package scenarios

import (
	"github.com/username/smarttax/backend/src/models"
)

// Wizard step identifiers, in their base order.
const (
	StepStart           = "start"
	StepDeclarationType = "declaration_type"
	StepTaxpayer        = "taxpayer"
	StepAsset           = "asset"
	StepTransaction     = "transaction"
	StepAmounts         = "amounts"
	StepRelief          = "relief"
	StepResult          = "result"
)

// GetRequiredSteps returns the ordered step list for the given asset type
// and transfer cause. The relief step is skipped only for unregistered
// assets that are neither farmland nor expropriations.
func GetRequiredSteps(assetType, transferCause string) []string {
	steps := []string{
		StepStart,
		StepDeclarationType,
		StepTaxpayer,
		StepAsset,
		StepTransaction,
		StepAmounts,
	}

	if assetType == models.AssetLandFarm ||
		transferCause == models.TransferExpropriation ||
		assetType != models.AssetUnregistered {
		steps = append(steps, StepRelief)
	}

	return append(steps, StepResult)
}

// GetNextStep advances within the required-step sequence, clamping at the
// result step. Unknown steps also resolve to the result step.
func GetNextStep(currentStep string, tx *models.Transaction) string {
	steps := stepsFor(tx)
	idx := indexOf(steps, currentStep)
	if idx == -1 || idx >= len(steps)-1 {
		return StepResult
	}
	return steps[idx+1]
}

// GetPrevStep steps backward, clamping at the start step.
func GetPrevStep(currentStep string, tx *models.Transaction) string {
	steps := stepsFor(tx)
	idx := indexOf(steps, currentStep)
	if idx <= 0 {
		return StepStart
	}
	return steps[idx-1]
}

func stepsFor(tx *models.Transaction) []string {
	var assetType, transferCause string
	if tx != nil {
		assetType = tx.Asset.Type
		transferCause = tx.Deal.TransferCause
	}
	return GetRequiredSteps(assetType, transferCause)
}

func indexOf(steps []string, step string) int {
	for i, s := range steps {
		if s == step {
			return i
		}
	}
	return -1
}

// IsStepComplete reports whether a step has the inputs it needs to let the
// wizard advance past it.
func IsStepComplete(step string, tx *models.Transaction) bool {
	if tx == nil {
		return step == StepStart || step == StepResult
	}

	switch step {
	case StepStart, StepResult:
		return true
	case StepDeclarationType:
		return tx.ReturnMeta.DeclarationType != ""
	case StepTaxpayer:
		return tx.Taxpayer.Name != "" && tx.Taxpayer.SSN != ""
	case StepAsset:
		return tx.Asset.Type != ""
	case StepTransaction:
		return tx.Deal.TransferDate != "" && tx.Deal.AcquisitionDate != ""
	case StepAmounts:
		return tx.Amounts.TransferPrice > 0
	case StepRelief:
		return tx.Relief.ReliefType != ""
	}
	return false
}
