package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contactModel "xpose-backend/internal/domains/contact/model"
	"xpose-backend/internal/domains/settings/model"
	"xpose-backend/internal/shared/apperror"
	"xpose-backend/pkg/cache"
)

type fakeRepo struct {
	rows     map[int64]model.WebsiteSettings
	nextID   int64
	currents int
}

func newFakeRepo() *fakeRepo { return &fakeRepo{rows: map[int64]model.WebsiteSettings{}} }

func (f *fakeRepo) List(context.Context) ([]model.WebsiteSettings, error) {
	out := make([]model.WebsiteSettings, 0)
	for _, s := range f.rows {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*model.WebsiteSettings, error) {
	s, ok := f.rows[id]
	if !ok {
		return nil, model.ErrSettingsNotFound
	}
	return &s, nil
}

func (f *fakeRepo) Current(ctx context.Context) (*model.WebsiteSettings, error) {
	f.currents++
	if len(f.rows) == 0 {
		return nil, model.ErrSettingsNotFound
	}
	return f.GetByID(ctx, f.nextID)
}

func (f *fakeRepo) Create(_ context.Context, s *model.WebsiteSettings) error {
	f.nextID++
	s.ID = f.nextID
	f.rows[s.ID] = *s
	return nil
}

func (f *fakeRepo) Update(_ context.Context, s *model.WebsiteSettings) error {
	if _, ok := f.rows[s.ID]; !ok {
		return model.ErrSettingsNotFound
	}
	f.rows[s.ID] = *s
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return model.ErrSettingsNotFound
	}
	delete(f.rows, id)
	return nil
}

type memCache struct {
	data map[string][]byte
	down bool
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

var errCacheDown = errors.New("cache down")

func (m *memCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	if m.down {
		return false, errCacheDown
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if m.down {
		return errCacheDown
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memCache) Delete(_ context.Context, keys ...string) error {
	if m.down {
		return errCacheDown
	}
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memCache) Ping(context.Context) error { return nil }

type fakeLogos struct {
	fail     bool
	uploaded []string
}

func (f *fakeLogos) Upload(_ context.Context, filename string, r io.Reader, _ int64, _ string) (string, error) {
	if f.fail {
		return "", errors.New("bucket unavailable")
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	f.uploaded = append(f.uploaded, filename)
	return "http://minio.test/logos/id-" + filename, nil
}

func newSettings() model.WebsiteSettings {
	return model.WebsiteSettings{
		Name:        "main",
		WebsiteName: "Xpose",
		ContactInformation: &contactModel.ContactInformation{
			ID: 77, Email: "hi@xpose.art", PhoneNumber: "600",
		},
	}
}

func TestCurrentIsCachedAndInvalidated(t *testing.T) {
	repo, mem := newFakeRepo(), newMemCache()
	svc := NewSettingsService(repo, &fakeLogos{}, mem)
	ctx := context.Background()

	_, err := svc.Current(ctx)
	assert.ErrorIs(t, err, model.ErrSettingsNotFound)

	created, err := svc.Create(ctx, newSettings())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := svc.Current(ctx)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	}
	assert.Equal(t, 2, repo.currents, "one miss before create, one after")

	in := newSettings()
	in.WebsiteName = "Xpose Gallery"
	_, err = svc.Update(ctx, created.ID, in, nil)
	require.NoError(t, err)
	assert.NotContains(t, mem.data, cache.KeyWebsiteSettingsCurrent)

	got, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Xpose Gallery", got.WebsiteName)
}

func TestCurrentDegradesWhenCacheIsDown(t *testing.T) {
	repo, mem := newFakeRepo(), newMemCache()
	svc := NewSettingsService(repo, &fakeLogos{}, mem)
	ctx := context.Background()

	_, err := svc.Create(ctx, newSettings())
	require.NoError(t, err)

	mem.down = true
	got, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Xpose", got.WebsiteName)
}

func TestCreateInsertsFreshContact(t *testing.T) {
	repo := newFakeRepo()
	svc := NewSettingsService(repo, &fakeLogos{}, newMemCache())

	created, err := svc.Create(context.Background(), newSettings())
	require.NoError(t, err)
	require.NotNil(t, created.ContactInformation)
	assert.Zero(t, created.ContactInformation.ID)
}

func TestUpdateWithLogo(t *testing.T) {
	repo, logos := newFakeRepo(), &fakeLogos{}
	svc := NewSettingsService(repo, logos, newMemCache())
	ctx := context.Background()

	created, err := svc.Create(ctx, newSettings())
	require.NoError(t, err)

	logo := &model.File{Filename: "logo.png", ContentType: "image/png", Size: 3, Body: strings.NewReader("png")}
	updated, err := svc.Update(ctx, created.ID, model.WebsiteSettings{Name: "main", WebsiteName: "Xpose"}, logo)
	require.NoError(t, err)

	assert.Equal(t, []string{"logo.png"}, logos.uploaded)
	assert.Equal(t, "http://minio.test/logos/id-logo.png", updated.FavIconURL)
	assert.Equal(t, updated.FavIconURL, repo.rows[created.ID].FavIconURL)
}

func TestUpdateLogoFailureKeepsRow(t *testing.T) {
	repo := newFakeRepo()
	svc := NewSettingsService(repo, &fakeLogos{fail: true}, newMemCache())
	ctx := context.Background()

	created, err := svc.Create(ctx, newSettings())
	require.NoError(t, err)

	logo := &model.File{Filename: "logo.png", Body: strings.NewReader("png")}
	_, err = svc.Update(ctx, created.ID, model.WebsiteSettings{Name: "renamed", WebsiteName: "Xpose"}, logo)
	assert.ErrorIs(t, err, apperror.ErrStorage)
	assert.Equal(t, "main", repo.rows[created.ID].Name)
}

func TestUpdateAndDeleteUnknown(t *testing.T) {
	repo := newFakeRepo()
	svc := NewSettingsService(repo, &fakeLogos{}, newMemCache())
	ctx := context.Background()

	_, err := svc.Update(ctx, 3, newSettings(), nil)
	assert.ErrorIs(t, err, model.ErrSettingsNotFound)
	assert.Empty(t, repo.rows)

	assert.ErrorIs(t, svc.Delete(ctx, 3), model.ErrSettingsNotFound)
}
