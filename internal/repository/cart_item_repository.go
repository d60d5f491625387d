package repository

import (
	"context"

	"app/internal/domain/model"
)

// 明細は（カート, 商品）で一意。
type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)
	FindByCartAndProduct(ctx context.Context, cartID int64, productID int64) (model.CartItem, error)

	//同一商品は数量加算（行ロック付きupsert）
	AddQuantity(ctx context.Context, cartID int64, productID int64, addQty int64, options model.OptionMap) error

	//数量をそのまま上書き
	SetQuantity(ctx context.Context, cartID int64, productID int64, qty int64) error

	//無ければ何もしない
	DeleteByCartAndProduct(ctx context.Context, cartID int64, productID int64) error
}
