package service

import (
	"context"
	"io"

	"github.com/xuri/excelize/v2"

	"xpose-backend/internal/domains/asset/model"
	serieModel "xpose-backend/internal/domains/serie/model"
)

type ServiceInterface interface {
	List(ctx context.Context) ([]model.Asset, error)
	Filter(ctx context.Context, f model.Filter) ([]model.Asset, error)
	ListBySerie(ctx context.Context, serieID int64) ([]model.Asset, error)
	ListByArtist(ctx context.Context, artistID int64) ([]model.Asset, error)
	GetByID(ctx context.Context, id int64) (*model.Asset, error)

	// PublicCollections returns every active serie with its assets.
	PublicCollections(ctx context.Context) ([]model.Collection, error)

	// Create uploads file and then stores the asset pointing at it.
	// No row is written when the upload fails.
	Create(ctx context.Context, in model.Asset, file *model.File) (*model.Asset, error)

	// Update overwrites the allowlisted fields. A non-nil file is uploaded
	// first and replaces the url.
	Update(ctx context.Context, id int64, in model.Asset, file *model.File) (*model.Asset, error)

	// Delete removes the blob, then the row. A failed blob delete keeps the row.
	Delete(ctx context.Context, id int64) error

	// Export renders the filtered assets as a spreadsheet.
	Export(ctx context.Context, f model.Filter) (*excelize.File, error)

	// GenerateThumbnail builds and stores the thumbnail of one asset.
	GenerateThumbnail(ctx context.Context, id int64) error

	// BackfillThumbnails enqueues thumbnail generation for up to limit assets without one.
	BackfillThumbnails(ctx context.Context, limit int) (int, error)
}

// BlobStore is the asset bucket.
type BlobStore interface {
	Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error)
	UploadAs(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
	Download(ctx context.Context, url string) ([]byte, error)
	Delete(ctx context.Context, url string) error
	ObjectName(url string) (string, bool)
}

// ThumbnailQueue schedules background thumbnail generation.
type ThumbnailQueue interface {
	EnqueueThumbnail(ctx context.Context, assetID int64) error
}

// Thumbnailer turns an image blob into a JPEG thumbnail.
type Thumbnailer interface {
	ValidateImage(data []byte) error
	Thumbnail(data []byte, size int) ([]byte, error)
}

// SerieLister provides the active series for the public collections view.
type SerieLister interface {
	ListActive(ctx context.Context) ([]serieModel.Serie, error)
}
