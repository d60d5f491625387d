package repository

import (
	"context"

	"app/internal/domain/model"
)

type PromoRepository interface {
	FindByCode(ctx context.Context, code string) (model.PromoCode, error)

	//上限に達していないときだけused_countを+1（注文トランザクション内で呼ぶ）
	IncrementUsedIfAvailable(ctx context.Context, promoID int64) (bool, error)
}
