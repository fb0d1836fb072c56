package model

import (
	"fmt"

	addressModel "xpose-backend/internal/domains/address/model"
	"xpose-backend/internal/shared/apperror"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var ErrContactNotFound = fmt.Errorf("contact information %w", apperror.ErrNotFound)

// ContactInformation exclusively owns its Address.
type ContactInformation struct {
	ID          int64                 `json:"id"`
	Email       string                `json:"email"`
	PhoneNumber string                `json:"phoneNumber"`
	Address     *addressModel.Address `json:"address"`
}

func (c ContactInformation) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, is.EmailFormat),
		validation.Field(&c.PhoneNumber, validation.Required),
		validation.Field(&c.Address),
	)
}

// Patch copies email and phone number. A supplied address replaces the owned
// one wholesale; its id is dropped so a fresh row is written.
func Patch(existing, in ContactInformation) ContactInformation {
	existing.Email = in.Email
	existing.PhoneNumber = in.PhoneNumber
	if in.Address != nil {
		replacement := *in.Address
		replacement.ID = 0
		existing.Address = &replacement
	}
	return existing
}

// Fresh returns a copy of c with every id cleared, ready to be inserted as new rows.
func Fresh(c *ContactInformation) *ContactInformation {
	if c == nil {
		return nil
	}
	out := *c
	out.ID = 0
	if c.Address != nil {
		a := *c.Address
		a.ID = 0
		out.Address = &a
	}
	return &out
}
