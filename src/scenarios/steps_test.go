package scenarios

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/smarttax/backend/src/models"
)

func TestGetRequiredSteps(t *testing.T) {
	base := []string{
		StepStart, StepDeclarationType, StepTaxpayer,
		StepAsset, StepTransaction, StepAmounts,
	}

	t.Run("ordinary assets include relief", func(t *testing.T) {
		steps := GetRequiredSteps(models.AssetGeneralHouse, models.TransferSale)
		assert.Equal(t, append(append([]string{}, base...), StepRelief, StepResult), steps)
	})

	t.Run("unregistered sale skips relief", func(t *testing.T) {
		steps := GetRequiredSteps(models.AssetUnregistered, models.TransferSale)
		assert.Equal(t, append(append([]string{}, base...), StepResult), steps)
	})

	t.Run("unregistered expropriation keeps relief", func(t *testing.T) {
		steps := GetRequiredSteps(models.AssetUnregistered, models.TransferExpropriation)
		assert.Contains(t, steps, StepRelief)
	})

	t.Run("empty asset type keeps relief", func(t *testing.T) {
		steps := GetRequiredSteps("", "")
		assert.Contains(t, steps, StepRelief)
	})
}

func TestStepNavigation(t *testing.T) {
	tx := &models.Transaction{Asset: models.AssetInfo{Type: models.AssetGeneralHouse}}

	assert.Equal(t, StepDeclarationType, GetNextStep(StepStart, tx))
	assert.Equal(t, StepRelief, GetNextStep(StepAmounts, tx))
	assert.Equal(t, StepResult, GetNextStep(StepRelief, tx))

	// Clamped at the end, and unknown steps resolve forward to result.
	assert.Equal(t, StepResult, GetNextStep(StepResult, tx))
	assert.Equal(t, StepResult, GetNextStep("bogus", tx))

	assert.Equal(t, StepStart, GetPrevStep(StepDeclarationType, tx))
	assert.Equal(t, StepStart, GetPrevStep(StepStart, tx))
	assert.Equal(t, StepStart, GetPrevStep("bogus", tx))

	// The unregistered flow hops straight from amounts to result.
	unreg := &models.Transaction{
		Asset: models.AssetInfo{Type: models.AssetUnregistered},
		Deal:  models.DealInfo{TransferCause: models.TransferSale},
	}
	assert.Equal(t, StepResult, GetNextStep(StepAmounts, unreg))
	assert.Equal(t, StepAmounts, GetPrevStep(StepResult, unreg))
}

func TestIsStepComplete(t *testing.T) {
	empty := &models.Transaction{}

	assert.True(t, IsStepComplete(StepStart, empty))
	assert.True(t, IsStepComplete(StepResult, empty))
	assert.False(t, IsStepComplete(StepDeclarationType, empty))
	assert.False(t, IsStepComplete(StepTaxpayer, empty))
	assert.False(t, IsStepComplete(StepAsset, empty))
	assert.False(t, IsStepComplete(StepTransaction, empty))
	assert.False(t, IsStepComplete(StepAmounts, empty))
	assert.False(t, IsStepComplete(StepRelief, empty))
	assert.False(t, IsStepComplete("bogus", empty))

	full := &models.Transaction{
		ReturnMeta: models.ReturnMeta{DeclarationType: models.DeclarationRegular},
		Taxpayer:   models.Taxpayer{Name: "홍길동", SSN: "800101-1234567"},
		Asset:      models.AssetInfo{Type: models.AssetGeneralHouse},
		Deal: models.DealInfo{
			TransferDate:    "2024-05-10",
			AcquisitionDate: "2021-05-10",
		},
		Amounts: models.AmountInfo{TransferPrice: 500_000_000},
		Relief:  models.ReliefInfo{ReliefType: models.ReliefNone},
	}

	assert.True(t, IsStepComplete(StepDeclarationType, full))
	assert.True(t, IsStepComplete(StepTaxpayer, full))
	assert.True(t, IsStepComplete(StepAsset, full))
	assert.True(t, IsStepComplete(StepTransaction, full))
	assert.True(t, IsStepComplete(StepAmounts, full))
	assert.True(t, IsStepComplete(StepRelief, full))

	// Name alone is not enough for the taxpayer step.
	partial := &models.Transaction{Taxpayer: models.Taxpayer{Name: "홍길동"}}
	assert.False(t, IsStepComplete(StepTaxpayer, partial))

	// A zero transfer price does not complete the amounts step.
	zeroPrice := &models.Transaction{Amounts: models.AmountInfo{TransferPrice: 0}}
	assert.False(t, IsStepComplete(StepAmounts, zeroPrice))
}
