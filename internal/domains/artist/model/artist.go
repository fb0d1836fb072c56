package model

import (
	"fmt"

	contactModel "xpose-backend/internal/domains/contact/model"
	"xpose-backend/internal/shared/apperror"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrArtistNotFound = fmt.Errorf("artist %w", apperror.ErrNotFound)

	// ErrUnknownArtist is returned when a serie or asset links an artist id that does not exist.
	ErrUnknownArtist = fmt.Errorf("unknown artist: %w", apperror.ErrInvalid)
)

type Artist struct {
	ID                 int64                            `json:"id"`
	Name               string                           `json:"name"`
	Surname            string                           `json:"surname"`
	ArtisticName       string                           `json:"artisticName"`
	About              string                           `json:"about"`
	ContactInformation *contactModel.ContactInformation `json:"contactInformation"`
}

// Filter holds the optional search criteria of GET /artists/filter.
type Filter struct {
	Name         string `form:"name"`
	Surname      string `form:"surname"`
	ArtisticName string `form:"artisticName"`
}

func (a Artist) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Name, validation.Length(0, 255)),
		validation.Field(&a.Surname, validation.Length(0, 255)),
		validation.Field(&a.ArtisticName, validation.Length(0, 255)),
		validation.Field(&a.ContactInformation),
	)
}

// Patch copies name, surname, artisticName and about. A supplied contact
// replaces the owned one wholesale as brand new rows.
func Patch(existing, in Artist) Artist {
	existing.Name = in.Name
	existing.Surname = in.Surname
	existing.ArtisticName = in.ArtisticName
	existing.About = in.About
	if in.ContactInformation != nil {
		existing.ContactInformation = contactModel.Fresh(in.ContactInformation)
	}
	return existing
}

// IDs returns the ids of artists, in order.
func IDs(artists []Artist) []int64 {
	ids := make([]int64, 0, len(artists))
	for _, a := range artists {
		ids = append(ids, a.ID)
	}
	return ids
}
