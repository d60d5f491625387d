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

type CartItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{db: db}
}

// カート明細を一覧取得
func (r *CartItemGormRepository) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	var items []model.CartItem

	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}
	return items, nil
}

func (r *CartItemGormRepository) FindByCartAndProduct(ctx context.Context, cartID int64, productID int64) (model.CartItem, error) {
	var item model.CartItem

	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}
	return item, nil
}

// 同一商品は数量加算。加算はSQL側で行い、読み書き競合を作らない。
func (r *CartItemGormRepository) AddQuantity(ctx context.Context, cartID int64, productID int64, addQty int64, options model.OptionMap) error {
	if addQty <= 0 {
		return errors.New("invalid quantity")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.CartItem

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			First(&item).Error

		if err == nil {
			res := tx.Model(&model.CartItem{}).
				Where("id = ?", item.ID).
				Update("quantity", gorm.Expr("quantity + ?", addQty))

			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repo.ErrNotFound
			}
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		//無い場合は新規作成
		now := time.Now()
		newItem := model.CartItem{
			CartID:          cartID,
			ProductID:       productID,
			Quantity:        addQty,
			SelectedOptions: options,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if newItem.SelectedOptions == nil {
			newItem.SelectedOptions = model.OptionMap{}
		}

		if err := tx.Create(&newItem).Error; err != nil {
			return err
		}
		return nil
	})
}

// 数量をそのまま上書き
func (r *CartItemGormRepository) SetQuantity(ctx context.Context, cartID int64, productID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Update("quantity", qty)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除（無ければErrNotFound）
func (r *CartItemGormRepository) DeleteByCartAndProduct(ctx context.Context, cartID int64, productID int64) error {
	res := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&model.CartItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
