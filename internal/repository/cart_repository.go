package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	GetOrCreateByOwner(ctx context.Context, owner model.OwnerKey) (model.Cart, error)
	FindByOwner(ctx context.Context, owner model.OwnerKey) (model.Cart, error)

	//適用中プロモコードの保存（nilでクリア）
	SetPromoCode(ctx context.Context, cartID int64, code *string) error

	//明細を全削除（カート自体は残す）
	Clear(ctx context.Context, cartID int64) error
}
