package repository

import (
	"context"

	"xpose-backend/internal/domains/asset/model"
)

type RepositoryInterface interface {
	List(ctx context.Context) ([]model.Asset, error)
	Filter(ctx context.Context, f model.Filter) ([]model.Asset, error)
	ListBySerie(ctx context.Context, serieID int64) ([]model.Asset, error)
	ListByArtist(ctx context.Context, artistID int64) ([]model.Asset, error)
	GetByID(ctx context.Context, id int64) (*model.Asset, error)

	// Create inserts the asset with its author and serie links in one transaction.
	// Unknown ids fail with ErrUnknownArtist / ErrUnknownSerie.
	Create(ctx context.Context, a *model.Asset) error
	Update(ctx context.Context, a *model.Asset) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)

	// SetThumbnail records the thumbnail of an asset, provided its blob is still url.
	// It reports whether a row was updated.
	SetThumbnail(ctx context.Context, id int64, url, thumbnailURL string) (bool, error)

	// ListMissingThumbnails returns up to limit ids of assets without a thumbnail.
	ListMissingThumbnails(ctx context.Context, limit int) ([]int64, error)
}
