package repository

import (
	"context"

	"xpose-backend/internal/domains/contact/model"
)

// RepositoryInterface persists contact information together with its owned address.
type RepositoryInterface interface {
	List(ctx context.Context) ([]model.ContactInformation, error)
	GetByID(ctx context.Context, id int64) (*model.ContactInformation, error)

	// Create inserts the address (if any) and the contact in one transaction.
	Create(ctx context.Context, c *model.ContactInformation) error

	// Update writes c. An address without id replaces the stored one, which is deleted.
	Update(ctx context.Context, c *model.ContactInformation) error

	// Delete removes the contact and its address.
	Delete(ctx context.Context, id int64) error
}
