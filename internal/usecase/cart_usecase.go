package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	"app/internal/domain/pricing"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
// 明細は（カート, 商品）で特定する。価格は常に参照時点の実売価格。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	promoRepo    repo.PromoRepository
	policy       pricing.DeliveryPolicy
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	promoRepo repo.PromoRepository,
	policy pricing.DeliveryPolicy,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		promoRepo:    promoRepo,
		policy:       policy,
	}
}

type CartItemResponse struct {
	ProductID       int64           `json:"product_id"`
	Name            string          `json:"name"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        int64           `json:"quantity"`
	SelectedOptions model.OptionMap `json:"selected_options"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

type CartResponse struct {
	Items        []CartItemResponse `json:"items"`
	ItemCount    int64              `json:"item_count"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
	DeliveryCost decimal.Decimal    `json:"delivery_cost"`
	Discount     decimal.Decimal    `json:"discount"`
	Total        decimal.Decimal    `json:"total"`
	PromoCode    *string            `json:"promo_code"`
}

type AddCartInput struct {
	ProductID       int64
	Quantity        int64
	SelectedOptions model.OptionMap
}

type UpdateCartItemInput struct {
	ProductID int64
	Quantity  int64
}

// カート取得（無ければ作って空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, owner model.OwnerKey) (CartResponse, error) {
	cart, err := u.cartRepo.GetOrCreateByOwner(ctx, owner)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart)
}

// カートに追加（同一商品は数量加算）。
// 追加後の合計数量が在庫を超えるなら全体を失敗させる（部分適用しない）。
func (u *CartUsecase) AddItem(ctx context.Context, owner model.OwnerKey, in AddCartInput) (CartResponse, error) {
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	cart, err := u.cartRepo.GetOrCreateByOwner(ctx, owner)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 商品チェック（公開のみ）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}

	// 既存数量＋追加分が在庫を超えないか
	var existingQty int64 = 0
	existing, err := u.cartItemRepo.FindByCartAndProduct(ctx, cart.ID, in.ProductID)
	if err == nil {
		existingQty = existing.Quantity
	} else if !errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if existingQty+in.Quantity > p.Stock {
		return CartResponse{}, WrapHTTPError(http.StatusBadRequest, &OutOfStockError{ProductName: p.Name})
	}

	if err := u.cartItemRepo.AddQuantity(ctx, cart.ID, in.ProductID, in.Quantity, in.SelectedOptions); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart)
}

// 数量変更（上書き）。0以下は削除扱いで、無い明細の削除はエラーにしない。
func (u *CartUsecase) UpdateItem(ctx context.Context, owner model.OwnerKey, in UpdateCartItemInput) (CartResponse, error) {
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	cart, err := u.cartRepo.GetOrCreateByOwner(ctx, owner)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Quantity <= 0 {
		err := u.cartItemRepo.DeleteByCartAndProduct(ctx, cart.ID, in.ProductID)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return u.buildCartResponse(ctx, cart)
	}

	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if in.Quantity > p.Stock {
		return CartResponse{}, WrapHTTPError(http.StatusBadRequest, &OutOfStockError{ProductName: p.Name})
	}

	if err := u.cartItemRepo.SetQuantity(ctx, cart.ID, in.ProductID, in.Quantity); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart)
}

// 明細削除。無ければ何もしない。
func (u *CartUsecase) RemoveItem(ctx context.Context, owner model.OwnerKey, productID int64) (CartResponse, error) {
	if productID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	cart, err := u.cartRepo.GetOrCreateByOwner(ctx, owner)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.DeleteByCartAndProduct(ctx, cart.ID, productID); err != nil && !errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart)
}

// 明細→価格内訳をまとめてCartResponseを作る。
// 非公開になった商品は表示からも合計からも外す。
func (u *CartUsecase) buildCartResponse(ctx context.Context, cart model.Cart) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	lines := make([]pricing.Line, 0, len(items))
	respItems := make([]CartItemResponse, 0, len(items))
	var count int64 = 0

	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !p.IsActive {
			continue
		}

		line := pricing.Line{Product: p, Quantity: it.Quantity}
		lines = append(lines, line)
		count += it.Quantity

		respItems = append(respItems, CartItemResponse{
			ProductID:       p.ID,
			Name:            p.Name,
			UnitPrice:       line.UnitPrice(),
			Quantity:        it.Quantity,
			SelectedOptions: it.SelectedOptions,
			LineTotal:       line.Total(),
		})
	}

	//表示用の配送料はクーリエ前提で見積もる（確定時に選択方法で再計算）
	promo, err := u.loadAppliedPromo(ctx, cart)
	if err != nil {
		return CartResponse{}, err
	}
	q := pricing.Quote(lines, promo, model.DeliveryMethodCourier, time.Now(), u.policy)

	return CartResponse{
		Items:        respItems,
		ItemCount:    count,
		Subtotal:     q.Subtotal,
		DeliveryCost: q.DeliveryCost,
		Discount:     q.Discount,
		Total:        q.Total,
		PromoCode:    cart.PromoCode,
	}, nil
}

func (u *CartUsecase) loadAppliedPromo(ctx context.Context, cart model.Cart) (*model.PromoCode, error) {
	if cart.PromoCode == nil {
		return nil, nil
	}
	promo, err := u.promoRepo.FindByCode(ctx, *cart.PromoCode)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return &promo, nil
}
