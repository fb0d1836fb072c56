package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xpose-backend/internal/domains/user/model"
	"xpose-backend/internal/domains/user/service"
)

type fakeService struct {
	service.ServiceInterface
}

func (fakeService) Create(_ context.Context, in model.User) (*model.User, error) {
	if in.Email == "taken@xpose.art" {
		return nil, model.ErrEmailAlreadyExists
	}
	in.ID = 1
	in.PasswordHash = "$2a$hash"
	out := in.Public()
	return &out, nil
}

func (fakeService) Login(_ context.Context, req model.LoginRequest) (*model.User, error) {
	if req.Email == "a@xpose.art" && req.Password == "pw" {
		return &model.User{ID: 1, Username: "a", Email: req.Email}, nil
	}
	return nil, model.ErrUserNotFound
}

func setup() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewUserHandler(fakeService{})

	r := gin.New()
	g := r.Group("/users")
	g.POST("", h.Create)
	g.POST("/login", h.Login)
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateNeverReturnsPassword(t *testing.T) {
	w := post(setup(), "/users", `{"username":"a","email":"a@xpose.art","password":"pw","name":"A","surname":"B"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"username":"a","email":"a@xpose.art","name":"A","surname":"B"}`, w.Body.String())
}

func TestCreateDuplicateEmailIs409(t *testing.T) {
	w := post(setup(), "/users", `{"username":"a","email":"taken@xpose.art","password":"pw"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin(t *testing.T) {
	r := setup()

	w := post(r, "/users/login", `{"email":"a@xpose.art","password":"pw"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = post(r, "/users/login", `{"email":"a@xpose.art","password":"nope"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}
