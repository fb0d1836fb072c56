package repository

import (
	"context"

	"xpose-backend/internal/domains/user/model"
)

type RepositoryInterface interface {
	List(ctx context.Context) ([]model.User, error)
	Filter(ctx context.Context, f model.Filter) ([]model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// Create and Update return model.ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error

	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
