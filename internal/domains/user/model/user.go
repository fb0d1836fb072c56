package model

import (
	"fmt"

	"xpose-backend/internal/shared/apperror"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var (
	ErrUserNotFound       = fmt.Errorf("user %w", apperror.ErrNotFound)
	ErrEmailAlreadyExists = fmt.Errorf("email %w", apperror.ErrConflict)
)

// User is a back-office account. Password is accepted on input only;
// the stored bcrypt hash never leaves the server.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password,omitempty"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Surname      string `json:"surname"`
}

// Filter holds the optional search criteria of GET /users/filter.
type Filter struct {
	Name    string `form:"name"`
	Surname string `form:"surname"`
	Email   string `form:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

func withinBcryptLimit(value interface{}) error {
	pw, _ := value.(string)
	if len(pw) > maxPasswordBytes {
		return validation.NewError("validation_password_too_long", "must be at most 72 bytes")
	}
	return nil
}

func (u User) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Username, validation.Required, validation.Length(1, 255)),
		validation.Field(&u.Email, validation.Required, is.EmailFormat),
		validation.Field(&u.Password, validation.By(withinBcryptLimit)),
	)
}

// Patch copies username, email, name and surname. A non-empty password is
// carried over for rehashing; an empty one keeps the stored hash.
func Patch(existing, in User) User {
	existing.Username = in.Username
	existing.Email = in.Email
	existing.Name = in.Name
	existing.Surname = in.Surname
	existing.Password = in.Password
	return existing
}

// Public strips credentials before a user is returned to a client.
func (u User) Public() User {
	u.Password = ""
	u.PasswordHash = ""
	return u
}
