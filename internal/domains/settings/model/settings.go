package model

import (
	"fmt"
	"io"

	addressModel "xpose-backend/internal/domains/address/model"
	contactModel "xpose-backend/internal/domains/contact/model"
	"xpose-backend/internal/shared/apperror"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrSettingsNotFound = fmt.Errorf("website settings %w", apperror.ErrNotFound)

// WebsiteSettings exclusively owns its ContactInformation. The current
// settings are the most recently created row.
type WebsiteSettings struct {
	ID                 int64                            `json:"id"`
	Name               string                           `json:"name"`
	WebsiteName        string                           `json:"websiteName"`
	FavIconURL         string                           `json:"favIconUrl"`
	ContactInformation *contactModel.ContactInformation `json:"contactInformation"`
}

// Form is the flat multipart body of PUT /website-settings/:id.
type Form struct {
	Name        string `form:"name"`
	WebsiteName string `form:"websiteName"`
	FavIconURL  string `form:"favIconUrl"`
	Email       string `form:"email"`
	Phone       string `form:"phone"`
	Street      string `form:"street"`
	Number      string `form:"number"`
	PostalCode  string `form:"postalCode"`
	City        string `form:"city"`
	Country     string `form:"country"`
}

// File is a logo upload.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

func (s WebsiteSettings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&s.WebsiteName, validation.Required, validation.Length(1, 255)),
		validation.Field(&s.ContactInformation),
	)
}

// Settings unflattens the form. The contact is nil when no contact field was
// sent, and its address is nil when no address field was sent.
func (f Form) Settings() WebsiteSettings {
	s := WebsiteSettings{
		Name:        f.Name,
		WebsiteName: f.WebsiteName,
		FavIconURL:  f.FavIconURL,
	}

	var address *addressModel.Address
	if f.Street != "" || f.Number != "" || f.PostalCode != "" || f.City != "" || f.Country != "" {
		address = &addressModel.Address{
			Street:     f.Street,
			Number:     f.Number,
			PostalCode: f.PostalCode,
			City:       f.City,
			Country:    f.Country,
		}
	}

	if f.Email != "" || f.Phone != "" || address != nil {
		s.ContactInformation = &contactModel.ContactInformation{
			Email:       f.Email,
			PhoneNumber: f.Phone,
			Address:     address,
		}
	}
	return s
}

// Patch copies name and websiteName. favIconUrl is copied when set, and a
// supplied contact replaces the owned one wholesale as brand new rows.
func Patch(existing, in WebsiteSettings) WebsiteSettings {
	existing.Name = in.Name
	existing.WebsiteName = in.WebsiteName
	if in.FavIconURL != "" {
		existing.FavIconURL = in.FavIconURL
	}
	if in.ContactInformation != nil {
		existing.ContactInformation = contactModel.Fresh(in.ContactInformation)
	}
	return existing
}
