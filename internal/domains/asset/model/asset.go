package model

import (
	"fmt"
	"io"

	artistModel "xpose-backend/internal/domains/artist/model"
	serieModel "xpose-backend/internal/domains/serie/model"
	"xpose-backend/internal/shared/apperror"
	"xpose-backend/internal/shared/filter"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrAssetNotFound = fmt.Errorf("asset %w", apperror.ErrNotFound)
	ErrFileRequired  = fmt.Errorf("file is required: %w", apperror.ErrInvalid)
	ErrAssetPart     = fmt.Errorf("asset part is required: %w", apperror.ErrInvalid)
)

// Asset is one uploaded media item. URL points at its blob in the asset bucket
// and is only ever set from a successful upload.
type Asset struct {
	ID           int64                `json:"id"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	Type         string               `json:"type"`
	Comment      string               `json:"comment"`
	URL          string               `json:"url"`
	ThumbnailURL *string              `json:"thumbnailUrl"`
	Active       bool                 `json:"active"`
	Authors      []artistModel.Artist `json:"authors"`
	Series       []serieModel.Serie   `json:"series"`
}

// Filter holds the optional search criteria of GET /assets/filter and /assets/export.
// CollectionID is the serie id; both ids accept blank or "0" for "any".
type Filter struct {
	Name         string `form:"name"`
	Type         string `form:"type"`
	Active       string `form:"active"`
	ArtistID     string `form:"artistId"`
	CollectionID string `form:"collectionId"`
}

// Validate rejects an active flag that is neither blank nor a boolean.
func (f Filter) Validate() error {
	_, err := filter.ParseFlag(f.Active)
	return err
}

// File is a blob received with a request.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Collection is the public view of an active serie.
type Collection struct {
	Serie    serieModel.Serie `json:"serie"`
	Assets   []Asset          `json:"assets"`
	ImageURL string           `json:"imageUrl"`
}

func (a Asset) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&a.Description, validation.Required),
		validation.Field(&a.Type, validation.Required, validation.Length(1, 100)),
	)
}

// Patch copies name, description, type, active, authors, series and url.
// An empty url keeps the stored blob reference. Changing the url drops the
// thumbnail, which belonged to the previous blob.
func Patch(existing, in Asset) Asset {
	existing.Name = in.Name
	existing.Description = in.Description
	existing.Type = in.Type
	existing.Active = in.Active
	existing.Authors = in.Authors
	existing.Series = in.Series
	if in.URL != "" && in.URL != existing.URL {
		existing.URL = in.URL
		existing.ThumbnailURL = nil
	}
	return existing
}

// NewCollection pairs a serie with its assets. The cover image is the url of
// the first asset, or empty when the serie has none.
func NewCollection(serie serieModel.Serie, assets []Asset) Collection {
	c := Collection{Serie: serie, Assets: assets}
	if c.Assets == nil {
		c.Assets = make([]Asset, 0)
	}
	if len(c.Assets) > 0 {
		c.ImageURL = c.Assets[0].URL
	}
	return c
}
