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

	"xpose-backend/internal/domains/artist/model"
	"xpose-backend/internal/domains/artist/service"
)

type fakeService struct {
	service.ServiceInterface
	artists    map[int64]model.Artist
	lastFilter *model.Filter
}

func (f *fakeService) Filter(_ context.Context, flt model.Filter) ([]model.Artist, error) {
	f.lastFilter = &flt
	return []model.Artist{}, nil
}

func (f *fakeService) List(_ context.Context) ([]model.Artist, error) {
	out := make([]model.Artist, 0)
	for _, a := range f.artists {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeService) GetByID(_ context.Context, id int64) (*model.Artist, error) {
	a, ok := f.artists[id]
	if !ok {
		return nil, model.ErrArtistNotFound
	}
	return &a, nil
}

func (f *fakeService) Create(_ context.Context, in model.Artist) (*model.Artist, error) {
	in.ID = 10
	f.artists[in.ID] = in
	return &in, nil
}

func (f *fakeService) Update(_ context.Context, id int64, in model.Artist) (*model.Artist, error) {
	existing, ok := f.artists[id]
	if !ok {
		return nil, model.ErrArtistNotFound
	}
	merged := model.Patch(existing, in)
	f.artists[id] = merged
	return &merged, nil
}

func setup() (*gin.Engine, *fakeService) {
	gin.SetMode(gin.TestMode)
	svc := &fakeService{artists: map[int64]model.Artist{}}
	h := NewArtistHandler(svc)

	r := gin.New()
	g := r.Group("/artists")
	g.GET("", h.List)
	g.GET("/filter", h.Filter)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	return r, svc
}

func TestFilterBindsQuery(t *testing.T) {
	r, svc := setup()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/artists/filter?name=jos%C3%A9&artisticName=Z", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	require.NotNil(t, svc.lastFilter)
	assert.Equal(t, model.Filter{Name: "josé", ArtisticName: "Z"}, *svc.lastFilter)
}

func TestListIsEmptyArray(t *testing.T) {
	r, _ := setup()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/artists", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateAndGet(t *testing.T) {
	r, _ := setup()

	req := httptest.NewRequest(http.MethodPost, "/artists", strings.NewReader(
		`{"name":"Frida","surname":"Kahlo","artisticName":"Frida","about":"painter"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"id":10,"name":"Frida","surname":"Kahlo","artisticName":"Frida","about":"painter","contactInformation":null}`,
		w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/artists/10", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateUnknownIs404(t *testing.T) {
	r, svc := setup()

	req := httptest.NewRequest(http.MethodPut, "/artists/4", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, svc.artists)
}
