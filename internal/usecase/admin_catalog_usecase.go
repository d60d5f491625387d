package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// AdminCatalogUsecase は商品の登録・更新・削除と在庫の直接設定を扱う。
// 在庫の注文時減算/キャンセル時戻しはCheckout/OrderUsecaseの仕事。
type AdminCatalogUsecase struct {
	productRepo   repo.ProductRepository
	categoryRepo  repo.CategoryRepository
	inventoryRepo repo.InventoryRepository
}

func NewAdminCatalogUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	inventoryRepo repo.InventoryRepository,
) *AdminCatalogUsecase {
	return &AdminCatalogUsecase{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		inventoryRepo: inventoryRepo,
	}
}

type AdminSaveProductInput struct {
	Name          string
	Slug          string
	CategorySlug  string
	Description   string
	Price         decimal.Decimal
	DiscountPrice decimal.NullDecimal
	Stock         int64
	Colors        model.StringList
	Sizes         model.StringList
	IsActive      bool
	IsFeatured    bool
	IsNew         bool
}

func (in AdminSaveProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if strings.TrimSpace(in.Slug) == "" {
		return NewHTTPError(http.StatusBadRequest, "slug is required")
	}
	if strings.TrimSpace(in.CategorySlug) == "" {
		return NewHTTPError(http.StatusBadRequest, "category is required")
	}
	if in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.DiscountPrice.Valid {
		if !in.DiscountPrice.Decimal.IsPositive() {
			return NewHTTPError(http.StatusBadRequest, "discount_price must be > 0")
		}
		if !in.DiscountPrice.Decimal.LessThan(in.Price) {
			return NewHTTPError(http.StatusBadRequest, "discount_price must be below price")
		}
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	return nil
}

// カテゴリはslugで受けてIDに解決する。
func (u *AdminCatalogUsecase) resolveCategory(ctx context.Context, slug string) (model.Category, error) {
	cat, err := u.categoryRepo.FindBySlug(ctx, strings.TrimSpace(slug))
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "unknown category")
	}
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cat, nil
}

func (u *AdminCatalogUsecase) CreateProduct(ctx context.Context, in AdminSaveProductInput) (ProductOutput, error) {
	if err := in.validate(); err != nil {
		return ProductOutput{}, err
	}

	cat, err := u.resolveCategory(ctx, in.CategorySlug)
	if err != nil {
		return ProductOutput{}, err
	}

	//slugの重複は先に弾く
	if _, err := u.productRepo.FindBySlug(ctx, strings.TrimSpace(in.Slug)); err == nil {
		return ProductOutput{}, NewHTTPError(http.StatusConflict, "slug already in use")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := time.Now()
	created, err := u.productRepo.Create(ctx, model.Product{
		Name:          strings.TrimSpace(in.Name),
		Slug:          strings.TrimSpace(in.Slug),
		CategoryID:    cat.ID,
		Description:   in.Description,
		Price:         in.Price,
		DiscountPrice: in.DiscountPrice,
		Stock:         in.Stock,
		Colors:        in.Colors,
		Sizes:         in.Sizes,
		IsActive:      in.IsActive,
		IsFeatured:    in.IsFeatured,
		IsNew:         in.IsNew,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toProductOutput(created), nil
}

func (u *AdminCatalogUsecase) UpdateProduct(ctx context.Context, productID int64, in AdminSaveProductInput) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := in.validate(); err != nil {
		return err
	}

	cat, err := u.resolveCategory(ctx, in.CategorySlug)
	if err != nil {
		return err
	}

	err = u.productRepo.Update(ctx, model.Product{
		ID:            productID,
		Name:          strings.TrimSpace(in.Name),
		Slug:          strings.TrimSpace(in.Slug),
		CategoryID:    cat.ID,
		Description:   in.Description,
		Price:         in.Price,
		DiscountPrice: in.DiscountPrice,
		Stock:         in.Stock,
		Colors:        in.Colors,
		Sizes:         in.Sizes,
		IsActive:      in.IsActive,
		IsFeatured:    in.IsFeatured,
		IsNew:         in.IsNew,
		UpdatedAt:     time.Now(),
	})
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AdminCatalogUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.productRepo.SoftDelete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 在庫の現在値を直接設定する（棚卸しなど）。
func (u *AdminCatalogUsecase) SetStock(ctx context.Context, productID int64, newStock int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if newStock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.inventoryRepo.SetStock(ctx, productID, newStock); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
