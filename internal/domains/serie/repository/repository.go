package repository

import (
	"context"

	"xpose-backend/internal/domains/serie/model"
)

type RepositoryInterface interface {
	List(ctx context.Context) ([]model.Serie, error)
	Filter(ctx context.Context, f model.Filter) ([]model.Serie, error)

	// ListActive returns the series flagged active, ordered by id.
	ListActive(ctx context.Context) ([]model.Serie, error)

	GetByID(ctx context.Context, id int64) (*model.Serie, error)

	// Create inserts the serie and its artist links in one transaction.
	// An unknown artist id fails with artistModel.ErrUnknownArtist.
	Create(ctx context.Context, s *model.Serie) error

	// Update overwrites the serie row and replaces its artist links.
	Update(ctx context.Context, s *model.Serie) error

	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
