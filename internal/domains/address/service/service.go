package service

import (
	"context"

	"xpose-backend/internal/domains/address/model"
	"xpose-backend/internal/domains/address/repository"
)

type addressService struct {
	repo repository.RepositoryInterface
}

func NewAddressService(repo repository.RepositoryInterface) ServiceInterface {
	return &addressService{
		repo: repo,
	}
}

func (s *addressService) List(ctx context.Context) ([]model.Address, error) {
	return s.repo.List(ctx)
}

func (s *addressService) GetByID(ctx context.Context, id int64) (*model.Address, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *addressService) Create(ctx context.Context, in model.Address) (*model.Address, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	in.ID = 0
	if err := s.repo.Create(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *addressService) Update(ctx context.Context, id int64, in model.Address) (*model.Address, error) {
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

func (s *addressService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
