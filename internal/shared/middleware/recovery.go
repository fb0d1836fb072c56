package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"xpose-backend/internal/shared/response"
)

// Recovery turns a handler panic into a 500 envelope and logs it with the request id.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.Error().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Interface("panic", recovered).
			Msg("Panic recovered")

		response.InternalServerError(c, "Internal server error")
		c.Abort()
	})
}
