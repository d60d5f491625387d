package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/domain/pricing"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// PromoUsecase はカートへのプロモコード適用/解除を扱う。
// used_countはここでは触らない（注文確定トランザクションだけが増やす）。
type PromoUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	promoRepo    repo.PromoRepository
	cartUC       *CartUsecase
}

func NewPromoUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	promoRepo repo.PromoRepository,
	cartUC *CartUsecase,
) *PromoUsecase {
	return &PromoUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		promoRepo:    promoRepo,
		cartUC:       cartUC,
	}
}

// コードを検証してカートに紐づける。
// ここでの検証は表示用。確定時に必ずもう一度検証する。
func (u *PromoUsecase) Apply(ctx context.Context, owner model.OwnerKey, rawCode string) (CartResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(rawCode))
	if code == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "promo code is required")
	}

	promo, err := u.promoRepo.FindByCode(ctx, code)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "promo code not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cart, err := u.cartRepo.GetOrCreateByOwner(ctx, owner)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	subtotal, err := u.cartSubtotal(ctx, cart.ID)
	if err != nil {
		return CartResponse{}, err
	}

	if err := promo.Validate(subtotal, time.Now()); err != nil {
		return CartResponse{}, WrapHTTPError(http.StatusBadRequest, err)
	}

	if err := u.cartRepo.SetPromoCode(ctx, cart.ID, &promo.Code); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	cart.PromoCode = &promo.Code

	return u.cartUC.buildCartResponse(ctx, cart)
}

// 適用中コードを外す。
func (u *PromoUsecase) Clear(ctx context.Context, owner model.OwnerKey) (CartResponse, error) {
	cart, err := u.cartRepo.GetOrCreateByOwner(ctx, owner)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartRepo.SetPromoCode(ctx, cart.ID, nil); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	cart.PromoCode = nil

	return u.cartUC.buildCartResponse(ctx, cart)
}

// カートの小計（公開商品のみ、現在の実売価格で）。
func (u *PromoUsecase) cartSubtotal(ctx context.Context, cartID int64) (decimal.Decimal, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return decimal.Zero, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	lines := make([]pricing.Line, 0, len(items))
	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return decimal.Zero, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !p.IsActive {
			continue
		}
		lines = append(lines, pricing.Line{Product: p, Quantity: it.Quantity})
	}

	return pricing.Subtotal(lines), nil
}
