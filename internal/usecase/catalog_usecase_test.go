package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) ListActive(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]model.Category)
	return cs, args.Error(1)
}

func (m *CategoryRepoMock) FindBySlug(ctx context.Context, slug string) (model.Category, error) {
	args := m.Called(ctx, slug)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func TestCatalogUsecase_ListProducts_InvalidPaging(t *testing.T) {
	uc := usecase.NewCatalogUsecase(new(ProductRepoMock), new(CategoryRepoMock))

	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Page: 0, Limit: 20})
	assertErrContains(t, err, "invalid page")

	_, err = uc.ListProducts(context.Background(), usecase.ListProductsInput{Page: 1, Limit: 0})
	assertErrContains(t, err, "invalid limit")

	_, err = uc.ListProducts(context.Background(), usecase.ListProductsInput{Page: 1, Limit: 101})
	assertErrContains(t, err, "invalid limit")
}

func TestCatalogUsecase_ListProducts_PassesFilters(t *testing.T) {
	productRepo := new(ProductRepoMock)

	min := int64(1000)
	q := repo.ProductListQuery{
		Page:         2,
		Limit:        20,
		Q:            "wallet",
		CategorySlug: "bags",
		MinPrice:     &min,
		Sort:         "price_asc",
	}
	productRepo.On("ListActive", mock.Anything, q).Return([]model.Product{}, int64(0), nil)

	uc := usecase.NewCatalogUsecase(productRepo, new(CategoryRepoMock))

	out, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{
		Page: 2, Limit: 20, Q: "wallet", CategorySlug: "bags", MinPrice: &min, Sort: "price_asc",
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, out.Page)

	productRepo.AssertExpectations(t)
}

// 実売価格と在庫フラグをレスポンスに含める
func TestCatalogUsecase_GetProduct_IncludesEffectivePrice(t *testing.T) {
	productRepo := new(ProductRepoMock)

	p := activeProduct(5, 5000, 3)
	p.DiscountPrice = decimal.NewNullDecimal(decimal.NewFromInt(4000))
	productRepo.On("FindByID", mock.Anything, int64(5)).Return(p, nil)

	uc := usecase.NewCatalogUsecase(productRepo, new(CategoryRepoMock))

	out, err := uc.GetProduct(context.Background(), 5)
	assert.NoError(t, err)
	assert.True(t, out.EffectivePrice.Equal(decimal.NewFromInt(4000)))
	assert.True(t, out.InStock)
}

func TestCatalogUsecase_GetProduct_InactiveIsNotFound(t *testing.T) {
	productRepo := new(ProductRepoMock)

	p := activeProduct(5, 5000, 3)
	p.IsActive = false
	productRepo.On("FindByID", mock.Anything, int64(5)).Return(p, nil)

	uc := usecase.NewCatalogUsecase(productRepo, new(CategoryRepoMock))

	_, err := uc.GetProduct(context.Background(), 5)
	assertErrContains(t, err, "not found")
}

func TestCatalogUsecase_GetProduct_NotFound(t *testing.T) {
	productRepo := new(ProductRepoMock)
	productRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Product{}, repo.ErrNotFound)

	uc := usecase.NewCatalogUsecase(productRepo, new(CategoryRepoMock))

	_, err := uc.GetProduct(context.Background(), 5)
	assertErrContains(t, err, "not found")
}

func TestCatalogUsecase_ListCategories(t *testing.T) {
	categoryRepo := new(CategoryRepoMock)
	categoryRepo.On("ListActive", mock.Anything).Return([]model.Category{
		{ID: 1, Name: "Bags", Slug: "bags"},
	}, nil)

	uc := usecase.NewCatalogUsecase(new(ProductRepoMock), categoryRepo)

	cats, err := uc.ListCategories(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, len(cats))
}
