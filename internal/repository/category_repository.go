package repository

import (
	"context"

	"app/internal/domain/model"
)

type CategoryRepository interface {
	ListActive(ctx context.Context) ([]model.Category, error)
	FindBySlug(ctx context.Context, slug string) (model.Category, error)
}
