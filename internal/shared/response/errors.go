package response

import (
	"errors"

	"xpose-backend/internal/shared/apperror"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HandleError maps a service error to its HTTP response.
//
//	not found            → 404, empty body
//	validation / invalid → 400
//	conflict             → 409
//	anything else        → 500 with the error text
func HandleError(c *gin.Context, err error) {
	var verrs validation.Errors

	switch {
	case errors.Is(err, apperror.ErrNotFound):
		NotFound(c)
	case errors.As(err, &verrs):
		ValidationError(c, verrs)
	case errors.Is(err, apperror.ErrInvalid):
		BadRequest(c, err.Error())
	case errors.Is(err, apperror.ErrConflict):
		Conflict(c, err.Error())
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
		InternalServerError(c, err.Error())
	}
}
