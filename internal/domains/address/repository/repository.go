package repository

import (
	"context"

	"xpose-backend/internal/domains/address/model"
)

// RepositoryInterface persists addresses.
// Lookups of a missing id return model.ErrAddressNotFound.
type RepositoryInterface interface {
	List(ctx context.Context) ([]model.Address, error)
	GetByID(ctx context.Context, id int64) (*model.Address, error)
	Create(ctx context.Context, a *model.Address) error
	Update(ctx context.Context, a *model.Address) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
