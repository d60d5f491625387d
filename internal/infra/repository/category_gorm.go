package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

// 公開カテゴリを名前順で返す
func (r *CategoryGormRepository) ListActive(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category

	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name asc").
		Find(&cats).Error; err != nil {
		return []model.Category{}, err
	}
	return cats, nil
}

func (r *CategoryGormRepository) FindBySlug(ctx context.Context, slug string) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}
