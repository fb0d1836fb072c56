package repository

import (
	"context"

	"xpose-backend/internal/domains/settings/model"
)

type RepositoryInterface interface {
	List(ctx context.Context) ([]model.WebsiteSettings, error)
	GetByID(ctx context.Context, id int64) (*model.WebsiteSettings, error)

	// Current returns the most recently created row.
	Current(ctx context.Context) (*model.WebsiteSettings, error)

	// Create inserts the owned contact (if any) and the settings in one transaction.
	Create(ctx context.Context, s *model.WebsiteSettings) error

	// Update writes s. A contact without id replaces the stored one, which is deleted.
	Update(ctx context.Context, s *model.WebsiteSettings) error

	// Delete removes the settings and their contact.
	Delete(ctx context.Context, id int64) error
}
