package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type PromoGormRepository struct {
	db *gorm.DB
}

// DI
func NewPromoGormRepository(db *gorm.DB) *PromoGormRepository {
	return &PromoGormRepository{db: db}
}

// コードで取得（大文字小文字は区別しない）
func (r *PromoGormRepository) FindByCode(ctx context.Context, code string) (model.PromoCode, error) {
	var p model.PromoCode

	err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&p).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.PromoCode{}, repo.ErrNotFound
	}
	if err != nil {
		return model.PromoCode{}, err
	}
	return p, nil
}

// 上限に達していないときだけused_countを+1。
// 条件付きUPDATEなので同時注文でも上限を超えない。
func (r *PromoGormRepository) IncrementUsedIfAvailable(ctx context.Context, promoID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.PromoCode{}).
		Where("id = ? AND is_active = ? AND (max_uses IS NULL OR used_count < max_uses)", promoID, true).
		Update("used_count", gorm.Expr("used_count + 1"))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}
