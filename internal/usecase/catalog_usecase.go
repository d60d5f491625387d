package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// CatalogUsecase は公開カタログ（カテゴリ・商品）の参照を扱う。
type CatalogUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
}

func NewCatalogUsecase(productRepo repo.ProductRepository, categoryRepo repo.CategoryRepository) *CatalogUsecase {
	return &CatalogUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

type ListProductsInput struct {
	Page         int
	Limit        int
	Q            string
	CategorySlug string
	MinPrice     *int64
	MaxPrice     *int64
	Sort         string
}

type ProductOutput struct {
	ID             int64               `json:"id"`
	Name           string              `json:"name"`
	Slug           string              `json:"slug"`
	CategoryID     int64               `json:"category_id"`
	Description    string              `json:"description"`
	Price          decimal.Decimal     `json:"price"`
	DiscountPrice  decimal.NullDecimal `json:"discount_price"`
	EffectivePrice decimal.Decimal     `json:"effective_price"`
	Stock          int64               `json:"stock"`
	InStock        bool                `json:"in_stock"`
	Colors         model.StringList    `json:"colors"`
	Sizes          model.StringList    `json:"sizes"`
	IsFeatured     bool                `json:"is_featured"`
	IsNew          bool                `json:"is_new"`
}

type ProductListOutput struct {
	Items []ProductOutput `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func toProductOutput(p model.Product) ProductOutput {
	return ProductOutput{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		CategoryID:     p.CategoryID,
		Description:    p.Description,
		Price:          p.Price,
		DiscountPrice:  p.DiscountPrice,
		EffectivePrice: p.EffectivePrice(),
		Stock:          p.Stock,
		InStock:        p.IsInStock(),
		Colors:         p.Colors,
		Sizes:          p.Sizes,
		IsFeatured:     p.IsFeatured,
		IsNew:          p.IsNew,
	}
}

func (u *CatalogUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page <= 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit <= 0 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	items, total, err := u.productRepo.ListActive(ctx, repo.ProductListQuery{
		Page:         in.Page,
		Limit:        in.Limit,
		Q:            in.Q,
		CategorySlug: in.CategorySlug,
		MinPrice:     in.MinPrice,
		MaxPrice:     in.MaxPrice,
		Sort:         in.Sort,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]ProductOutput, 0, len(items))
	for _, p := range items {
		outs = append(outs, toProductOutput(p))
	}

	return ProductListOutput{
		Items: outs,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, id int64) (ProductOutput, error) {
	if id <= 0 {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	return toProductOutput(p), nil
}

func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	cats, err := u.categoryRepo.ListActive(ctx)
	if err != nil {
		return []model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cats, nil
}
