package repository

import (
	"context"

	"xpose-backend/internal/domains/artist/model"
)

type RepositoryInterface interface {
	List(ctx context.Context) ([]model.Artist, error)
	Filter(ctx context.Context, f model.Filter) ([]model.Artist, error)
	GetByID(ctx context.Context, id int64) (*model.Artist, error)

	// Create inserts the owned contact (if any) and the artist in one transaction.
	Create(ctx context.Context, a *model.Artist) error

	// Update writes a. A contact without id replaces the stored one, which is deleted.
	Update(ctx context.Context, a *model.Artist) error

	// Delete removes the artist and its contact.
	Delete(ctx context.Context, id int64) error

	Count(ctx context.Context) (int64, error)
}
