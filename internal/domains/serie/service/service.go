package service

import (
	"context"

	"xpose-backend/internal/domains/serie/model"
	"xpose-backend/internal/domains/serie/repository"
)

type ServiceInterface interface {
	List(ctx context.Context) ([]model.Serie, error)
	Filter(ctx context.Context, f model.Filter) ([]model.Serie, error)
	ListActive(ctx context.Context) ([]model.Serie, error)
	GetByID(ctx context.Context, id int64) (*model.Serie, error)
	Create(ctx context.Context, in model.Serie) (*model.Serie, error)
	Update(ctx context.Context, id int64, in model.Serie) (*model.Serie, error)
	Delete(ctx context.Context, id int64) error
}

type serieService struct {
	repo repository.RepositoryInterface
}

func NewSerieService(repo repository.RepositoryInterface) ServiceInterface {
	return &serieService{
		repo: repo,
	}
}

func (s *serieService) List(ctx context.Context) ([]model.Serie, error) {
	return s.repo.List(ctx)
}

func (s *serieService) Filter(ctx context.Context, f model.Filter) ([]model.Serie, error) {
	return s.repo.Filter(ctx, f)
}

func (s *serieService) ListActive(ctx context.Context) ([]model.Serie, error) {
	return s.repo.ListActive(ctx)
}

func (s *serieService) GetByID(ctx context.Context, id int64) (*model.Serie, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores the serie and returns it as persisted, artists fully loaded.
func (s *serieService) Create(ctx context.Context, in model.Serie) (*model.Serie, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	in.ID = 0
	if err := s.repo.Create(ctx, &in); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, in.ID)
}

func (s *serieService) Update(ctx context.Context, id int64, in model.Serie) (*model.Serie, error) {
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
	return s.repo.GetByID(ctx, id)
}

func (s *serieService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
