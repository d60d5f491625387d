package model_test

import (
	"testing"
	"time"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPromo() model.PromoCode {
	max := int64(100)
	return model.PromoCode{
		ID:                 1,
		Code:               "SAVE10",
		DiscountPercentage: 10,
		MinOrderAmount:     decimal.NewFromInt(1000),
		MaxUses:            &max,
		UsedCount:          0,
		IsActive:           true,
		ValidFrom:          time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil:         time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC),
	}
}

func rejectReason(t *testing.T, err error) model.PromoRejectReason {
	t.Helper()
	var ipe *model.InvalidPromoError
	require.ErrorAs(t, err, &ipe)
	return ipe.Reason
}

func TestPromoCode_Validate_OK(t *testing.T) {
	p := validPromo()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	err := p.Validate(decimal.NewFromInt(5000), now)
	assert.NoError(t, err)
}

func TestPromoCode_Validate_Inactive(t *testing.T) {
	p := validPromo()
	p.IsActive = false
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	err := p.Validate(decimal.NewFromInt(5000), now)
	assert.Equal(t, model.PromoRejectInactive, rejectReason(t, err))
}

func TestPromoCode_Validate_BeforeWindow(t *testing.T) {
	p := validPromo()
	now := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)

	err := p.Validate(decimal.NewFromInt(5000), now)
	assert.Equal(t, model.PromoRejectExpired, rejectReason(t, err))
}

// 期限切れは一度も使われていなくても期限切れ
func TestPromoCode_Validate_Expired_EvenIfUnused(t *testing.T) {
	p := validPromo()
	p.UsedCount = 0
	now := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	err := p.Validate(decimal.NewFromInt(5000), now)
	assert.Equal(t, model.PromoRejectExpired, rejectReason(t, err))
}

// 期間内でも使い切りは使い切り
func TestPromoCode_Validate_Exhausted_EvenInsideWindow(t *testing.T) {
	p := validPromo()
	p.UsedCount = 100
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	err := p.Validate(decimal.NewFromInt(5000), now)
	assert.Equal(t, model.PromoRejectExhausted, rejectReason(t, err))
}

func TestPromoCode_Validate_NilMaxUses_NeverExhausted(t *testing.T) {
	p := validPromo()
	p.MaxUses = nil
	p.UsedCount = 1_000_000
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	err := p.Validate(decimal.NewFromInt(5000), now)
	assert.NoError(t, err)
}

func TestPromoCode_Validate_BelowMin_MessageIncludesMinimum(t *testing.T) {
	p := validPromo()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	err := p.Validate(decimal.NewFromInt(999), now)
	assert.Equal(t, model.PromoRejectBelowMin, rejectReason(t, err))
	assert.Contains(t, err.Error(), "1000.00")
}

// チェック順は固定：inactiveが最優先
func TestPromoCode_Validate_CheckOrder_InactiveFirst(t *testing.T) {
	p := validPromo()
	p.IsActive = false
	p.UsedCount = 100 //使い切りでもある
	now := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC) //期限切れでもある

	err := p.Validate(decimal.NewFromInt(1), now)
	assert.Equal(t, model.PromoRejectInactive, rejectReason(t, err))
}

func TestPromoCode_Validate_CheckOrder_ExpiredBeforeExhausted(t *testing.T) {
	p := validPromo()
	p.UsedCount = 100
	now := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)

	err := p.Validate(decimal.NewFromInt(1), now)
	assert.Equal(t, model.PromoRejectExpired, rejectReason(t, err))
}

func TestPromoCode_Validate_ExactMinimum_OK(t *testing.T) {
	p := validPromo()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	err := p.Validate(decimal.NewFromInt(1000), now)
	assert.NoError(t, err)
}
