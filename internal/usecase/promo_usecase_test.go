package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/domain/pricing"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type promoFixture struct {
	carts    *CartRepoMock
	items    *CartItemRepoMock
	products *ProductRepoMock
	promos   *PromoRepoMock
	uc       *usecase.PromoUsecase
}

func newPromoFixture() *promoFixture {
	f := &promoFixture{
		carts:    new(CartRepoMock),
		items:    new(CartItemRepoMock),
		products: new(ProductRepoMock),
		promos:   new(PromoRepoMock),
	}
	cartUC := usecase.NewCartUsecase(f.carts, f.items, f.products, f.promos, pricing.DefaultDeliveryPolicy())
	f.uc = usecase.NewPromoUsecase(f.carts, f.items, f.products, f.promos, cartUC)
	return f
}

func TestPromoUsecase_Apply_EmptyCode(t *testing.T) {
	f := newPromoFixture()

	_, err := f.uc.Apply(context.Background(), guestOwner(), "   ")
	assertErrContains(t, err, "promo code is required")
}

func TestPromoUsecase_Apply_NotFound(t *testing.T) {
	f := newPromoFixture()
	f.promos.On("FindByCode", mock.Anything, "NOPE").Return(model.PromoCode{}, repo.ErrNotFound)

	_, err := f.uc.Apply(context.Background(), guestOwner(), "nope")
	assertErrContains(t, err, "promo code not found")
}

// 入力は大文字化してから検索する
func TestPromoUsecase_Apply_UppercasesCode(t *testing.T) {
	f := newPromoFixture()

	code := "SAVE10"
	f.promos.On("FindByCode", mock.Anything, code).Return(validPromoForCart(), nil)
	f.carts.On("GetOrCreateByOwner", mock.Anything, guestOwner()).Return(model.Cart{ID: 1}, nil)
	f.items.On("ListByCartID", mock.Anything, int64(1)).Return([]model.CartItem{
		{CartID: 1, ProductID: 5, Quantity: 2},
	}, nil)
	f.products.On("FindByID", mock.Anything, int64(5)).Return(activeProduct(5, 5000, 10), nil)
	f.carts.On("SetPromoCode", mock.Anything, int64(1), &code).Return(nil)

	out, err := f.uc.Apply(context.Background(), guestOwner(), "  save10 ")
	assert.NoError(t, err)
	assert.NotNil(t, out.PromoCode)
	assert.Equal(t, code, *out.PromoCode)
	assert.True(t, out.Discount.Equal(decimal.NewFromInt(1000)), "discount=%s", out.Discount)

	f.promos.AssertCalled(t, "FindByCode", mock.Anything, code)
	f.carts.AssertExpectations(t)
}

// 最低金額未満は適用せず、理由を返す
func TestPromoUsecase_Apply_BelowMinimum(t *testing.T) {
	f := newPromoFixture()

	promo := validPromoForCart()
	promo.MinOrderAmount = decimal.NewFromInt(20000)

	f.promos.On("FindByCode", mock.Anything, "SAVE10").Return(promo, nil)
	f.carts.On("GetOrCreateByOwner", mock.Anything, guestOwner()).Return(model.Cart{ID: 1}, nil)
	f.items.On("ListByCartID", mock.Anything, int64(1)).Return([]model.CartItem{
		{CartID: 1, ProductID: 5, Quantity: 2},
	}, nil)
	f.products.On("FindByID", mock.Anything, int64(5)).Return(activeProduct(5, 5000, 10), nil)

	_, err := f.uc.Apply(context.Background(), guestOwner(), "SAVE10")

	var ipe *model.InvalidPromoError
	assert.ErrorAs(t, err, &ipe)
	assert.Equal(t, model.PromoRejectBelowMin, ipe.Reason)
	assert.Contains(t, err.Error(), "20000.00")

	f.carts.AssertNotCalled(t, "SetPromoCode", mock.Anything, mock.Anything, mock.Anything)
}

// 適用ではused_countを増やさない（確定時だけ）
func TestPromoUsecase_Apply_DoesNotIncrementUsage(t *testing.T) {
	f := newPromoFixture()

	code := "SAVE10"
	f.promos.On("FindByCode", mock.Anything, code).Return(validPromoForCart(), nil)
	f.carts.On("GetOrCreateByOwner", mock.Anything, guestOwner()).Return(model.Cart{ID: 1}, nil)
	f.items.On("ListByCartID", mock.Anything, int64(1)).Return([]model.CartItem{
		{CartID: 1, ProductID: 5, Quantity: 2},
	}, nil)
	f.products.On("FindByID", mock.Anything, int64(5)).Return(activeProduct(5, 5000, 10), nil)
	f.carts.On("SetPromoCode", mock.Anything, int64(1), &code).Return(nil)

	_, err := f.uc.Apply(context.Background(), guestOwner(), code)
	assert.NoError(t, err)

	f.promos.AssertNotCalled(t, "IncrementUsedIfAvailable", mock.Anything, mock.Anything)
}

func TestPromoUsecase_Clear(t *testing.T) {
	f := newPromoFixture()

	f.carts.On("GetOrCreateByOwner", mock.Anything, guestOwner()).Return(model.Cart{ID: 1}, nil)
	f.carts.On("SetPromoCode", mock.Anything, int64(1), (*string)(nil)).Return(nil)
	f.items.On("ListByCartID", mock.Anything, int64(1)).Return([]model.CartItem{}, nil)

	out, err := f.uc.Clear(context.Background(), guestOwner())
	assert.NoError(t, err)
	assert.Nil(t, out.PromoCode)

	f.carts.AssertExpectations(t)
}
