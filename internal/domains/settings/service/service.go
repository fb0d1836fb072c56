package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	contactModel "xpose-backend/internal/domains/contact/model"
	"xpose-backend/internal/domains/settings/model"
	"xpose-backend/internal/domains/settings/repository"
	"xpose-backend/internal/shared/apperror"
	"xpose-backend/pkg/cache"
)

const currentTTL = 10 * time.Minute

type ServiceInterface interface {
	List(ctx context.Context) ([]model.WebsiteSettings, error)
	GetByID(ctx context.Context, id int64) (*model.WebsiteSettings, error)

	// Current returns the most recently created settings, served from cache when possible.
	Current(ctx context.Context) (*model.WebsiteSettings, error)

	Create(ctx context.Context, in model.WebsiteSettings) (*model.WebsiteSettings, error)

	// Update overwrites the allowlisted fields. A non-nil logo is uploaded to
	// the logo bucket first and becomes favIconUrl.
	Update(ctx context.Context, id int64, in model.WebsiteSettings, logo *model.File) (*model.WebsiteSettings, error)

	Delete(ctx context.Context, id int64) error
}

// LogoStore is the logo bucket.
type LogoStore interface {
	Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error)
}

type settingsService struct {
	repo  repository.RepositoryInterface
	logos LogoStore
	cache cache.Cache
}

func NewSettingsService(repo repository.RepositoryInterface, logos LogoStore, c cache.Cache) ServiceInterface {
	return &settingsService{
		repo:  repo,
		logos: logos,
		cache: c,
	}
}

func (s *settingsService) List(ctx context.Context) ([]model.WebsiteSettings, error) {
	return s.repo.List(ctx)
}

func (s *settingsService) GetByID(ctx context.Context, id int64) (*model.WebsiteSettings, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *settingsService) Current(ctx context.Context) (*model.WebsiteSettings, error) {
	var cached model.WebsiteSettings
	found, err := s.cache.Get(ctx, cache.KeyWebsiteSettingsCurrent, &cached)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read cached website settings")
	}
	if found {
		return &cached, nil
	}

	current, err := s.repo.Current(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cache.KeyWebsiteSettingsCurrent, current, currentTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to cache website settings")
	}
	return current, nil
}

func (s *settingsService) Create(ctx context.Context, in model.WebsiteSettings) (*model.WebsiteSettings, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	in.ID = 0
	in.ContactInformation = contactModel.Fresh(in.ContactInformation)

	if err := s.repo.Create(ctx, &in); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return &in, nil
}

func (s *settingsService) Update(ctx context.Context, id int64, in model.WebsiteSettings, logo *model.File) (*model.WebsiteSettings, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := model.Patch(*existing, in)
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	if logo != nil {
		url, err := s.logos.Upload(ctx, logo.Filename, logo.Body, logo.Size, logo.ContentType)
		if err != nil {
			log.Error().Stack().Err(err).Str("filename", logo.Filename).Msg("Failed to upload logo")
			return nil, fmt.Errorf("%w: upload failed: %w", apperror.ErrStorage, err)
		}
		merged.FavIconURL = url
	}

	if err := s.repo.Update(ctx, &merged); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return &merged, nil
}

func (s *settingsService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *settingsService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.KeyWebsiteSettingsCurrent); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate cached website settings")
	}
}
