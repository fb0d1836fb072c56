package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	artistModel "xpose-backend/internal/domains/artist/model"
	"xpose-backend/internal/domains/asset/model"
	serieModel "xpose-backend/internal/domains/serie/model"
	"xpose-backend/internal/infrastructure/storage"
	"xpose-backend/internal/shared/apperror"
)

const prefix = "http://minio.test/assets/"

type fakeRepo struct {
	rows   map[int64]model.Asset
	nextID int64
}

func newFakeRepo() *fakeRepo { return &fakeRepo{rows: map[int64]model.Asset{}} }

func (f *fakeRepo) List(context.Context) ([]model.Asset, error) {
	out := make([]model.Asset, 0)
	for id := int64(1); id <= f.nextID; id++ {
		if a, ok := f.rows[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) Filter(ctx context.Context, _ model.Filter) ([]model.Asset, error) {
	return f.List(ctx)
}

func (f *fakeRepo) ListBySerie(ctx context.Context, serieID int64) ([]model.Asset, error) {
	all, _ := f.List(ctx)
	out := make([]model.Asset, 0)
	for _, a := range all {
		for _, s := range a.Series {
			if s.ID == serieID {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByArtist(ctx context.Context, _ int64) ([]model.Asset, error) {
	return f.List(ctx)
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*model.Asset, error) {
	a, ok := f.rows[id]
	if !ok {
		return nil, model.ErrAssetNotFound
	}
	return &a, nil
}

func (f *fakeRepo) Create(_ context.Context, a *model.Asset) error {
	f.nextID++
	a.ID = f.nextID
	f.rows[a.ID] = *a
	return nil
}

func (f *fakeRepo) Update(_ context.Context, a *model.Asset) error {
	if _, ok := f.rows[a.ID]; !ok {
		return model.ErrAssetNotFound
	}
	f.rows[a.ID] = *a
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return model.ErrAssetNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeRepo) Count(context.Context) (int64, error) { return int64(len(f.rows)), nil }

func (f *fakeRepo) SetThumbnail(_ context.Context, id int64, url, thumbnailURL string) (bool, error) {
	a, ok := f.rows[id]
	if !ok || a.URL != url {
		return false, nil
	}
	a.ThumbnailURL = &thumbnailURL
	f.rows[id] = a
	return true, nil
}

func (f *fakeRepo) ListMissingThumbnails(_ context.Context, limit int) ([]int64, error) {
	ids := make([]int64, 0)
	for id := int64(1); id <= f.nextID && len(ids) < limit; id++ {
		if a, ok := f.rows[id]; ok && a.ThumbnailURL == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// fakeBlobs keeps objects in memory under the same url scheme as the MinIO adapter.
type fakeBlobs struct {
	objects    map[string][]byte
	failPut    bool
	failDelete bool
	seq        int
}

func newFakeBlobs() *fakeBlobs { return &fakeBlobs{objects: map[string][]byte{}} }

func (b *fakeBlobs) Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	b.seq++
	return b.UploadAs(ctx, strings.Repeat("x", b.seq)+"-"+filename, r, size, contentType)
}

func (b *fakeBlobs) UploadAs(_ context.Context, objectName string, r io.Reader, _ int64, _ string) (string, error) {
	if b.failPut {
		return "", errors.New("minio unreachable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	b.objects[objectName] = data
	return prefix + objectName, nil
}

func (b *fakeBlobs) Download(_ context.Context, url string) ([]byte, error) {
	name, ok := b.ObjectName(url)
	if !ok {
		return nil, storage.ErrForeignURL
	}
	data, ok := b.objects[name]
	if !ok {
		return nil, errors.New("no such object")
	}
	return data, nil
}

func (b *fakeBlobs) Delete(_ context.Context, url string) error {
	if b.failDelete {
		return errors.New("minio unreachable")
	}
	if name, ok := b.ObjectName(url); ok {
		delete(b.objects, name)
	}
	return nil
}

func (b *fakeBlobs) ObjectName(url string) (string, bool) {
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

type fakeQueue struct {
	ids  []int64
	fail bool
}

func (q *fakeQueue) EnqueueThumbnail(_ context.Context, id int64) error {
	if q.fail {
		return errors.New("redis down")
	}
	q.ids = append(q.ids, id)
	return nil
}

type fakeSeries []serieModel.Serie

func (s fakeSeries) ListActive(context.Context) ([]serieModel.Serie, error) { return s, nil }

type fixture struct {
	svc   ServiceInterface
	repo  *fakeRepo
	blobs *fakeBlobs
	queue *fakeQueue
}

func newFixture(series ...serieModel.Serie) fixture {
	f := fixture{repo: newFakeRepo(), blobs: newFakeBlobs(), queue: &fakeQueue{}}
	f.svc = NewAssetService(f.repo, fakeSeries(series), f.blobs, storage.NewImageProcessor(), f.queue, 64)
	return f
}

func pngFile(t *testing.T, name string, w, h int) *model.File {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &model.File{Filename: name, ContentType: "image/png", Size: int64(buf.Len()), Body: &buf}
}

func textFile(name, body string) *model.File {
	return &model.File{Filename: name, ContentType: "text/plain", Size: int64(len(body)), Body: strings.NewReader(body)}
}

func validAsset() model.Asset {
	return model.Asset{Name: "Marea", Description: "oil on canvas", Type: "painting", Active: true}
}

func TestCreateUploadsBeforeInsert(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), validAsset(), textFile("marea.txt", "data"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(created.URL, prefix))
	assert.True(t, strings.HasSuffix(created.URL, "-marea.txt"))
	assert.Nil(t, created.ThumbnailURL)
	assert.Len(t, f.blobs.objects, 1)
	assert.Equal(t, []int64{created.ID}, f.queue.ids)

	stored, err := f.svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.URL, stored.URL)
}

func TestCreateWithoutRowOnUploadFailure(t *testing.T) {
	f := newFixture()
	f.blobs.failPut = true

	_, err := f.svc.Create(context.Background(), validAsset(), textFile("a.txt", "data"))
	assert.ErrorIs(t, err, apperror.ErrStorage)
	assert.Empty(t, f.repo.rows)
}

func TestCreateRequiresFile(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), validAsset(), nil)
	assert.ErrorIs(t, err, model.ErrFileRequired)
}

func TestCreateSurvivesEnqueueFailure(t *testing.T) {
	f := newFixture()
	f.queue.fail = true

	_, err := f.svc.Create(context.Background(), validAsset(), textFile("a.txt", "data"))
	assert.NoError(t, err)
}

func TestDelete(t *testing.T) {
	t.Run("removes row and blob", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		created, err := f.svc.Create(ctx, validAsset(), textFile("a.txt", "data"))
		require.NoError(t, err)

		require.NoError(t, f.svc.Delete(ctx, created.ID))

		_, err = f.svc.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, model.ErrAssetNotFound)
		assert.Empty(t, f.blobs.objects)
	})

	t.Run("failed blob delete keeps row", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		created, err := f.svc.Create(ctx, validAsset(), textFile("a.txt", "data"))
		require.NoError(t, err)

		f.blobs.failDelete = true
		err = f.svc.Delete(ctx, created.ID)
		assert.ErrorIs(t, err, apperror.ErrStorage)

		_, err = f.svc.GetByID(ctx, created.ID)
		assert.NoError(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newFixture()
		assert.ErrorIs(t, f.svc.Delete(context.Background(), 7), model.ErrAssetNotFound)
	})

	t.Run("foreign url is not an error", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		f.repo.rows[1] = model.Asset{ID: 1, URL: "https://elsewhere.example/x.jpg"}
		f.repo.nextID = 1

		require.NoError(t, f.svc.Delete(ctx, 1))
		assert.Empty(t, f.repo.rows)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("unknown id uploads nothing", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.Update(context.Background(), 3, validAsset(), textFile("a.txt", "x"))
		assert.ErrorIs(t, err, model.ErrAssetNotFound)
		assert.Empty(t, f.blobs.objects)
		assert.Empty(t, f.repo.rows)
	})

	t.Run("file replaces url and thumbnail", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		created, err := f.svc.Create(ctx, validAsset(), pngFile(t, "a.png", 10, 10))
		require.NoError(t, err)
		require.NoError(t, f.svc.GenerateThumbnail(ctx, created.ID))

		updated, err := f.svc.Update(ctx, created.ID, validAsset(), pngFile(t, "b.png", 10, 10))
		require.NoError(t, err)

		assert.NotEqual(t, created.URL, updated.URL)
		assert.True(t, strings.HasSuffix(updated.URL, "-b.png"))
		assert.Nil(t, updated.ThumbnailURL)
		assert.Equal(t, []int64{created.ID, created.ID}, f.queue.ids)
	})

	t.Run("json without url keeps blob", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		created, err := f.svc.Create(ctx, validAsset(), textFile("a.txt", "x"))
		require.NoError(t, err)

		in := validAsset()
		in.Name = "Renamed"
		in.Authors = []artistModel.Artist{{ID: 2}}
		updated, err := f.svc.Update(ctx, created.ID, in, nil)
		require.NoError(t, err)

		assert.Equal(t, "Renamed", updated.Name)
		assert.Equal(t, created.URL, updated.URL)
		assert.Equal(t, []int64{2}, artistModel.IDs(updated.Authors))
		assert.Len(t, f.queue.ids, 1)
	})
}

func TestGenerateThumbnail(t *testing.T) {
	t.Run("image", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		created, err := f.svc.Create(ctx, validAsset(), pngFile(t, "wave.png", 256, 128))
		require.NoError(t, err)

		require.NoError(t, f.svc.GenerateThumbnail(ctx, created.ID))

		got, err := f.svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got.ThumbnailURL)

		name, _ := f.blobs.ObjectName(created.URL)
		assert.Equal(t, prefix+ThumbnailName(name), *got.ThumbnailURL)

		cfg, format, err := image.DecodeConfig(bytes.NewReader(f.blobs.objects[ThumbnailName(name)]))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, 64, cfg.Width)
		assert.Equal(t, 32, cfg.Height)
	})

	t.Run("non image is marked and skipped by backfill", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		created, err := f.svc.Create(ctx, validAsset(), textFile("notes.txt", "hello"))
		require.NoError(t, err)

		require.NoError(t, f.svc.GenerateThumbnail(ctx, created.ID))

		got, _ := f.svc.GetByID(ctx, created.ID)
		require.NotNil(t, got.ThumbnailURL)
		assert.Equal(t, "", *got.ThumbnailURL)

		n, err := f.svc.BackfillThumbnails(ctx, 10)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("deleted asset", func(t *testing.T) {
		f := newFixture()
		assert.NoError(t, f.svc.GenerateThumbnail(context.Background(), 42))
	})
}

func TestBackfillThumbnails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.svc.Create(ctx, validAsset(), textFile("a.txt", "x"))
		require.NoError(t, err)
	}
	f.queue.ids = nil

	n, err := f.svc.BackfillThumbnails(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []int64{1, 2}, f.queue.ids)
}

func TestPublicCollections(t *testing.T) {
	withAssets := serieModel.Serie{ID: 1, Name: "Mar", Active: true}
	empty := serieModel.Serie{ID: 2, Name: "Vacío", Active: true}
	f := newFixture(withAssets, empty)
	ctx := context.Background()

	in := validAsset()
	in.Series = []serieModel.Serie{{ID: 1}}
	first, err := f.svc.Create(ctx, in, textFile("first.jpg", "x"))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, in, textFile("second.jpg", "x"))
	require.NoError(t, err)

	collections, err := f.svc.PublicCollections(ctx)
	require.NoError(t, err)
	require.Len(t, collections, 2)

	assert.Equal(t, first.URL, collections[0].ImageURL)
	assert.Len(t, collections[0].Assets, 2)
	assert.Equal(t, "", collections[1].ImageURL)
	assert.Empty(t, collections[1].Assets)
}

func TestExport(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	in := validAsset()
	in.Authors = []artistModel.Artist{{ID: 1, ArtisticName: "Remedios"}, {ID: 2, Name: "Leonora", Surname: "Carrington"}}
	_, err := f.svc.Create(ctx, in, textFile("a.txt", "x"))
	require.NoError(t, err)

	file, err := f.svc.Export(ctx, model.Filter{})
	require.NoError(t, err)

	rows, err := file.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, "Marea", rows[1][1])
	assert.Equal(t, "Remedios, Leonora Carrington", rows[1][8])
}

func TestThumbnailName(t *testing.T) {
	assert.Equal(t, "thumb-abc-photo.jpg", ThumbnailName("abc-photo.png"))
	assert.Equal(t, "thumb-abc-noext.jpg", ThumbnailName("abc-noext"))
}
