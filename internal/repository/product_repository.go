package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 公開カタログの一覧検索
type ProductListQuery struct {
	Page         int
	Limit        int
	Q            string
	CategorySlug string
	MinPrice     *int64
	MaxPrice     *int64
	Sort         string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	ListActive(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	FindBySlug(ctx context.Context, slug string) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error
}
