package service

import (
	"context"

	"xpose-backend/internal/domains/artist/model"
	"xpose-backend/internal/domains/artist/repository"
	contactModel "xpose-backend/internal/domains/contact/model"
)

type ServiceInterface interface {
	List(ctx context.Context) ([]model.Artist, error)
	Filter(ctx context.Context, f model.Filter) ([]model.Artist, error)
	GetByID(ctx context.Context, id int64) (*model.Artist, error)
	Create(ctx context.Context, in model.Artist) (*model.Artist, error)

	// Update returns model.ErrArtistNotFound for an unknown id and never inserts.
	Update(ctx context.Context, id int64, in model.Artist) (*model.Artist, error)

	Delete(ctx context.Context, id int64) error
}

type artistService struct {
	repo repository.RepositoryInterface
}

func NewArtistService(repo repository.RepositoryInterface) ServiceInterface {
	return &artistService{
		repo: repo,
	}
}

func (s *artistService) List(ctx context.Context) ([]model.Artist, error) {
	return s.repo.List(ctx)
}

func (s *artistService) Filter(ctx context.Context, f model.Filter) ([]model.Artist, error) {
	return s.repo.Filter(ctx, f)
}

func (s *artistService) GetByID(ctx context.Context, id int64) (*model.Artist, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *artistService) Create(ctx context.Context, in model.Artist) (*model.Artist, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	in.ID = 0
	in.ContactInformation = contactModel.Fresh(in.ContactInformation)

	if err := s.repo.Create(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *artistService) Update(ctx context.Context, id int64, in model.Artist) (*model.Artist, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := model.Patch(*existing, in)
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (s *artistService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
