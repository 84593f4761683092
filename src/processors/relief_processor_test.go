package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/smarttax/backend/src/models"
)

func TestCalculateExemption(t *testing.T) {
	t.Run("no relief", func(t *testing.T) {
		got := CalculateExemption(10_000_000, models.ReliefNone, 0, "2024-05-10", false)
		assert.Equal(t, int64(0), got.Amount)
		assert.Equal(t, int64(0), got.Nongteukse)
	})

	t.Run("farm relief caps at yearly limit", func(t *testing.T) {
		got := CalculateExemption(150_000_000, models.ReliefFarm8y, 0, "2024-05-10", false)
		assert.Equal(t, int64(100_000_000), got.Amount)
		assert.Equal(t, "8년 자경농지 감면", got.Desc)
		// Eight-year farm relief is statutorily exempt from the surtax.
		assert.Equal(t, int64(0), got.Nongteukse)
	})

	t.Run("farm relief below limit", func(t *testing.T) {
		got := CalculateExemption(50_000_000, models.ReliefFarm8y, 0, "2024-05-10", false)
		assert.Equal(t, int64(50_000_000), got.Amount)
	})

	t.Run("farmland exchange pays the surtax", func(t *testing.T) {
		got := CalculateExemption(150_000_000, models.ReliefFarmlandExchange, 0, "2024-05-10", false)
		assert.Equal(t, int64(100_000_000), got.Amount)
		assert.Equal(t, "농지대토 감면", got.Desc)
		assert.Equal(t, int64(20_000_000), got.Nongteukse)
	})

	t.Run("public works rate steps up at the change date", func(t *testing.T) {
		before := CalculateExemption(10_000_000, models.ReliefPublicCash, 0, "2024-12-31", false)
		assert.Equal(t, int64(1_000_000), before.Amount)
		assert.Equal(t, "공익사업 수용 (10%)", before.Desc)

		after := CalculateExemption(10_000_000, models.ReliefPublicCash, 0, "2025-01-01", false)
		assert.Equal(t, int64(1_500_000), after.Amount)
		assert.Equal(t, "공익사업 수용 (15%)", after.Desc)
	})

	t.Run("custom rate", func(t *testing.T) {
		got := CalculateExemption(10_000_000, models.ReliefCustom, 30, "2024-05-10", false)
		assert.Equal(t, int64(3_000_000), got.Amount)
		assert.Equal(t, "직접입력 감면 (30%)", got.Desc)
		assert.Equal(t, int64(600_000), got.Nongteukse)
	})

	t.Run("explicit surtax exemption", func(t *testing.T) {
		got := CalculateExemption(10_000_000, models.ReliefCustom, 30, "2024-05-10", true)
		assert.Equal(t, int64(0), got.Nongteukse)
	})
}

func TestCalculatePenalty(t *testing.T) {
	t.Run("nothing unpaid", func(t *testing.T) {
		got := CalculatePenalty(0, models.DeclarationRegular, "2024-07-31", "", "")
		assert.Equal(t, int64(0), got.Total)
		assert.Equal(t, "가산세 없음", got.Desc)
	})

	t.Run("regular return paid late", func(t *testing.T) {
		got := CalculatePenalty(10_000_000, models.DeclarationRegular, "2024-07-31", "2024-08-30", "")
		assert.Equal(t, 30, got.DelayDays)
		assert.Equal(t, int64(66_000), got.Delay)
		assert.Equal(t, int64(0), got.Report)
		assert.Equal(t, int64(66_000), got.Total)
		assert.Equal(t, "납부지연 30일", got.Desc)
	})

	t.Run("unfiled return within a month gets half relief", func(t *testing.T) {
		got := CalculatePenalty(10_000_000, models.DeclarationAfterDeadline, "2024-07-31", "2024-08-15", "2024-08-15")
		assert.Equal(t, int64(1_000_000), got.Report)
		assert.Equal(t, 15, got.DelayDays)
		assert.Equal(t, int64(33_000), got.Delay)
		assert.Equal(t, int64(1_033_000), got.Total)
		assert.Equal(t, "무신고, 납부지연 15일, 감면 50%", got.Desc)
	})

	t.Run("amended return months later", func(t *testing.T) {
		got := CalculatePenalty(10_000_000, models.DeclarationAmended, "2024-07-31", "2024-07-31", "2024-12-15")
		assert.Equal(t, 0, got.DelayDays)
		// Four months late: 50% relief on the 10% underfiling penalty.
		assert.Equal(t, int64(500_000), got.Report)
		assert.Equal(t, "과소신고, 감면 50%", got.Desc)
	})

	t.Run("missing dates fall back to the deadline", func(t *testing.T) {
		got := CalculatePenalty(10_000_000, models.DeclarationAfterDeadline, "2024-07-31", "", "")
		assert.Equal(t, 0, got.DelayDays)
		assert.Equal(t, int64(1_000_000), got.Report)
		assert.Equal(t, "무신고, 감면 50%", got.Desc)
	})
}

func TestCalculateInstallment(t *testing.T) {
	t.Run("at or below threshold", func(t *testing.T) {
		got := CalculateInstallment(8_000_000, 10_000_000, "2024-07-31")
		assert.False(t, got.CanInstall)
		assert.Equal(t, int64(8_000_000), got.FirstPayment)
		assert.Equal(t, int64(0), got.SecondPayment)
		assert.Empty(t, got.SecondDueDate)
	})

	t.Run("up to double the threshold defers the excess", func(t *testing.T) {
		got := CalculateInstallment(15_000_000, 10_000_000, "2024-06-30")
		assert.True(t, got.CanInstall)
		assert.Equal(t, int64(10_000_000), got.FirstPayment)
		assert.Equal(t, int64(5_000_000), got.SecondPayment)
		assert.Equal(t, "2024-08-30", got.SecondDueDate)
	})

	t.Run("beyond double splits in half", func(t *testing.T) {
		got := CalculateInstallment(25_000_001, 10_000_000, "2024-06-30")
		assert.Equal(t, int64(12_500_000), got.SecondPayment)
		assert.Equal(t, int64(12_500_001), got.FirstPayment)
	})

	t.Run("second due date uses calendar month addition", func(t *testing.T) {
		// July 31 plus two months normalizes through September 31 to October 1.
		got := CalculateInstallment(15_000_000, 10_000_000, "2024-07-31")
		assert.Equal(t, "2024-10-01", got.SecondDueDate)
	})
}
