package model

import (
	"fmt"

	"xpose-backend/internal/shared/apperror"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrAddressNotFound = fmt.Errorf("address %w", apperror.ErrNotFound)

// Address is always owned by a ContactInformation.
type Address struct {
	ID         int64  `json:"id"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Validate mirrors the NOT NULL columns of the address table.
func (a Address) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Street, validation.Required),
		validation.Field(&a.City, validation.Required),
		validation.Field(&a.PostalCode, validation.Required),
		validation.Field(&a.Country, validation.Required),
	)
}

// Patch copies the updatable fields of in onto existing.
func Patch(existing, in Address) Address {
	existing.Street = in.Street
	existing.Number = in.Number
	existing.City = in.City
	existing.PostalCode = in.PostalCode
	existing.Country = in.Country
	return existing
}
