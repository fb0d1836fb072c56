package service

import (
	"context"

	"xpose-backend/internal/domains/address/model"
)

// ServiceInterface defines the business operations of the address domain.
type ServiceInterface interface {
	List(ctx context.Context) ([]model.Address, error)

	// GetByID returns model.ErrAddressNotFound for an unknown id.
	GetByID(ctx context.Context, id int64) (*model.Address, error)

	Create(ctx context.Context, in model.Address) (*model.Address, error)

	// Update never creates a row: an unknown id yields model.ErrAddressNotFound.
	Update(ctx context.Context, id int64, in model.Address) (*model.Address, error)

	Delete(ctx context.Context, id int64) error
}
