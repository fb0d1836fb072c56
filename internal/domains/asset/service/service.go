package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/rs/zerolog/log"

	"xpose-backend/internal/domains/asset/model"
	"xpose-backend/internal/domains/asset/repository"
	"xpose-backend/internal/infrastructure/storage"
	"xpose-backend/internal/shared/apperror"
)

type assetService struct {
	repo      repository.RepositoryInterface
	series    SerieLister
	blobs     BlobStore
	images    Thumbnailer
	queue     ThumbnailQueue
	thumbSize int
}

func NewAssetService(
	repo repository.RepositoryInterface,
	series SerieLister,
	blobs BlobStore,
	images Thumbnailer,
	queue ThumbnailQueue,
	thumbSize int,
) ServiceInterface {
	return &assetService{
		repo:      repo,
		series:    series,
		blobs:     blobs,
		images:    images,
		queue:     queue,
		thumbSize: thumbSize,
	}
}

func (s *assetService) List(ctx context.Context) ([]model.Asset, error) {
	return s.repo.List(ctx)
}

func (s *assetService) Filter(ctx context.Context, f model.Filter) ([]model.Asset, error) {
	return s.repo.Filter(ctx, f)
}

func (s *assetService) ListBySerie(ctx context.Context, serieID int64) ([]model.Asset, error) {
	return s.repo.ListBySerie(ctx, serieID)
}

func (s *assetService) ListByArtist(ctx context.Context, artistID int64) ([]model.Asset, error) {
	return s.repo.ListByArtist(ctx, artistID)
}

func (s *assetService) GetByID(ctx context.Context, id int64) (*model.Asset, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *assetService) PublicCollections(ctx context.Context) ([]model.Collection, error) {
	series, err := s.series.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	collections := make([]model.Collection, 0, len(series))
	for _, serie := range series {
		assets, err := s.repo.ListBySerie(ctx, serie.ID)
		if err != nil {
			return nil, err
		}
		collections = append(collections, model.NewCollection(serie, assets))
	}
	return collections, nil
}

func (s *assetService) Create(ctx context.Context, in model.Asset, file *model.File) (*model.Asset, error) {
	if file == nil {
		return nil, model.ErrFileRequired
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	url, err := s.upload(ctx, file)
	if err != nil {
		return nil, err
	}

	in.ID = 0
	in.URL = url
	in.ThumbnailURL = nil
	if err := s.repo.Create(ctx, &in); err != nil {
		return nil, err
	}

	log.Info().Int64("asset_id", in.ID).Str("url", url).Msg("Asset created")
	s.enqueueThumbnail(ctx, in.ID)

	return s.repo.GetByID(ctx, in.ID)
}

func (s *assetService) Update(ctx context.Context, id int64, in model.Asset, file *model.File) (*model.Asset, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := model.Patch(*existing, in)
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	if file != nil {
		url, err := s.upload(ctx, file)
		if err != nil {
			return nil, err
		}
		merged.URL = url
		merged.ThumbnailURL = nil
	}

	if err := s.repo.Update(ctx, &merged); err != nil {
		return nil, err
	}

	if merged.URL != existing.URL {
		s.deleteThumbnail(ctx, existing)
		s.enqueueThumbnail(ctx, id)
	}

	return s.repo.GetByID(ctx, id)
}

func (s *assetService) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.URL != "" {
		if err := s.blobs.Delete(ctx, existing.URL); err != nil {
			return fmt.Errorf("%w: delete blob of asset %d: %w", apperror.ErrStorage, id, err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.deleteThumbnail(ctx, existing)
	log.Info().Int64("asset_id", id).Msg("Asset deleted")
	return nil
}

func (s *assetService) upload(ctx context.Context, file *model.File) (string, error) {
	url, err := s.blobs.Upload(ctx, file.Filename, file.Body, file.Size, file.ContentType)
	if err != nil {
		log.Error().Err(err).Str("filename", file.Filename).Stack().Msg("Upload failed")
		return "", fmt.Errorf("%w: upload failed: %w", apperror.ErrStorage, err)
	}
	return url, nil
}

func (s *assetService) enqueueThumbnail(ctx context.Context, id int64) {
	if s.queue == nil {
		return
	}
	if err := s.queue.EnqueueThumbnail(ctx, id); err != nil {
		log.Warn().Err(err).Int64("asset_id", id).Msg("Failed to enqueue thumbnail")
	}
}

func (s *assetService) deleteThumbnail(ctx context.Context, a *model.Asset) {
	if a.ThumbnailURL == nil || *a.ThumbnailURL == "" {
		return
	}
	if err := s.blobs.Delete(ctx, *a.ThumbnailURL); err != nil {
		log.Warn().Err(err).Int64("asset_id", a.ID).Str("url", *a.ThumbnailURL).Msg("Failed to delete thumbnail")
	}
}

// GenerateThumbnail is idempotent. Blobs that are not images, or that live outside
// the asset bucket, are marked with an empty thumbnail so the backfill skips them.
func (s *assetService) GenerateThumbnail(ctx context.Context, id int64) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrAssetNotFound) {
			log.Info().Int64("asset_id", id).Msg("Asset gone, skip thumbnail")
			return nil
		}
		return err
	}
	if a.URL == "" {
		return nil
	}

	data, err := s.blobs.Download(ctx, a.URL)
	if errors.Is(err, storage.ErrForeignURL) {
		return s.skipThumbnail(ctx, a, err)
	}
	if err != nil {
		return fmt.Errorf("download asset %d: %w", id, err)
	}

	if err := s.images.ValidateImage(data); err != nil {
		return s.skipThumbnail(ctx, a, err)
	}

	thumb, err := s.images.Thumbnail(data, s.thumbSize)
	if err != nil {
		return fmt.Errorf("thumbnail asset %d: %w", id, err)
	}

	objectName, _ := s.blobs.ObjectName(a.URL)
	thumbURL, err := s.blobs.UploadAs(ctx, ThumbnailName(objectName), bytes.NewReader(thumb), int64(len(thumb)), "image/jpeg")
	if err != nil {
		return fmt.Errorf("upload thumbnail of asset %d: %w", id, err)
	}

	updated, err := s.repo.SetThumbnail(ctx, id, a.URL, thumbURL)
	if err != nil {
		return err
	}
	if !updated {
		// The blob was replaced or the asset deleted meanwhile.
		if err := s.blobs.Delete(ctx, thumbURL); err != nil {
			log.Warn().Err(err).Str("url", thumbURL).Msg("Failed to delete stale thumbnail")
		}
		return nil
	}

	log.Info().Int64("asset_id", id).Str("thumbnail_url", thumbURL).Msg("Thumbnail generated")
	return nil
}

func (s *assetService) skipThumbnail(ctx context.Context, a *model.Asset, reason error) error {
	log.Info().Int64("asset_id", a.ID).Str("reason", reason.Error()).Msg("Skip thumbnail")
	_, err := s.repo.SetThumbnail(ctx, a.ID, a.URL, "")
	return err
}

func (s *assetService) BackfillThumbnails(ctx context.Context, limit int) (int, error) {
	ids, err := s.repo.ListMissingThumbnails(ctx, limit)
	if err != nil {
		return 0, err
	}

	enqueued := 0
	for _, id := range ids {
		if err := s.queue.EnqueueThumbnail(ctx, id); err != nil {
			log.Warn().Err(err).Int64("asset_id", id).Msg("Failed to enqueue thumbnail")
			continue
		}
		enqueued++
	}
	return enqueued, nil
}

// ThumbnailName is the object name of the thumbnail of objectName: thumb-<base>.jpg.
func ThumbnailName(objectName string) string {
	return "thumb-" + strings.TrimSuffix(objectName, path.Ext(objectName)) + ".jpg"
}
