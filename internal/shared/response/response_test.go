package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"xpose-backend/internal/shared/apperror"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "not found has no body",
			err:      fmt.Errorf("artist %w", apperror.ErrNotFound),
			wantCode: http.StatusNotFound,
			wantBody: "",
		},
		{
			name:     "validation",
			err:      validation.Errors{"name": errors.New("cannot be blank")},
			wantCode: http.StatusBadRequest,
			wantBody: `{"success":false,"error":{"code":"VALIDATION_ERROR","message":"Validation failed","details":{"name":"cannot be blank"}}}`,
		},
		{
			name:     "invalid",
			err:      fmt.Errorf("artistId: %w", apperror.ErrInvalid),
			wantCode: http.StatusBadRequest,
			wantBody: `{"success":false,"error":{"code":"BAD_REQUEST","message":"artistId: invalid input"}}`,
		},
		{
			name:     "conflict",
			err:      fmt.Errorf("user email %w", apperror.ErrConflict),
			wantCode: http.StatusConflict,
			wantBody: `{"success":false,"error":{"code":"CONFLICT","message":"user email already exists"}}`,
		},
		{
			name:     "unexpected",
			err:      errors.New("bucket unreachable"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"success":false,"error":{"code":"INTERNAL_SERVER_ERROR","message":"bucket unreachable"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleError(c, tt.err)
			c.Writer.WriteHeaderNow()

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody == "" {
				assert.Empty(t, w.Body.String())
			} else {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
		})
	}
}
