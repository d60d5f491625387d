package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

func ownerScope(owner model.OwnerKey) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if owner.IsAuthenticated() {
			return tx.Where("user_id = ?", *owner.UserID)
		}
		return tx.Where("user_id IS NULL AND session_key = ?", owner.SessionKey)
	}
}

// 持ち主のカートを取得し、無ければ作成
func (r *CartGormRepository) GetOrCreateByOwner(ctx context.Context, owner model.OwnerKey) (model.Cart, error) {
	var cart model.Cart

	//トランザクションで探す→無ければ作る
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Scopes(ownerScope(owner)).
			Order("id desc").
			First(&cart).Error

		if findErr == nil {
			return nil
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		// 無ければ作る
		now := time.Now()
		newCart := model.Cart{
			UserID:    owner.UserID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if !owner.IsAuthenticated() {
			key := owner.SessionKey
			newCart.SessionKey = &key
		}

		// INSERTが失敗したらトランザクションごと失敗させる
		// （Postgresは失敗後のtx内クエリを受け付けない）
		if err := tx.Create(&newCart).Error; err != nil {
			return err
		}

		cart = newCart
		return nil
	})

	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

func (r *CartGormRepository) FindByOwner(ctx context.Context, owner model.OwnerKey) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Scopes(ownerScope(owner)).
		Order("id desc").
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// 適用中プロモコードを保存（nilでクリア）
func (r *CartGormRepository) SetPromoCode(ctx context.Context, cartID int64, code *string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("id = ?", cartID).
		Update("promo_code", code)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 指定カートの明細を全削除（カート自体は残す）
func (r *CartGormRepository) Clear(ctx context.Context, cartID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart model.Cart
		if err := tx.Where("id = ?", cartID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repo.ErrNotFound
			}
			return err
		}

		if err := tx.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		return nil
	})
}
