package model

import (
	"fmt"

	artistModel "xpose-backend/internal/domains/artist/model"
	"xpose-backend/internal/shared/apperror"
	"xpose-backend/internal/shared/filter"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrSerieNotFound = fmt.Errorf("serie %w", apperror.ErrNotFound)

	// ErrUnknownSerie is returned when an asset links a serie id that does not exist.
	ErrUnknownSerie = fmt.Errorf("unknown serie: %w", apperror.ErrInvalid)
)

// Serie is a collection of assets, credited to any number of artists.
type Serie struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Active      bool                 `json:"active"`
	Artists     []artistModel.Artist `json:"artists"`
}

// Filter holds the optional search criteria of GET /series/filter.
// ArtistID is kept as text: blank and "0" mean no artist filter.
type Filter struct {
	Name     string `form:"name"`
	ArtistID string `form:"artistId"`
	Active   string `form:"active"`
}

// Validate rejects an active flag that is neither blank nor a boolean.
func (f Filter) Validate() error {
	_, err := filter.ParseFlag(f.Active)
	return err
}

func (s Serie) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&s.Description, validation.Required),
	)
}

// Patch copies name, description, active and the artist list.
// The artist list replaces the stored links; only the artist ids are used.
func Patch(existing, in Serie) Serie {
	existing.Name = in.Name
	existing.Description = in.Description
	existing.Active = in.Active
	existing.Artists = in.Artists
	return existing
}

// IDs returns the ids of series, in order.
func IDs(series []Serie) []int64 {
	ids := make([]int64, 0, len(series))
	for _, s := range series {
		ids = append(ids, s.ID)
	}
	return ids
}
