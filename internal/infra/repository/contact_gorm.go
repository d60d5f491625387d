package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type ContactGormRepository struct {
	db *gorm.DB
}

func NewContactGormRepository(db *gorm.DB) *ContactGormRepository {
	return &ContactGormRepository{db: db}
}

func (r *ContactGormRepository) Create(ctx context.Context, m model.ContactMessage) (model.ContactMessage, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return model.ContactMessage{}, err
	}
	return m, nil
}
