package repository

import (
	"context"

	"app/internal/domain/model"
)

type ContactRepository interface {
	Create(ctx context.Context, m model.ContactMessage) (model.ContactMessage, error)
}
