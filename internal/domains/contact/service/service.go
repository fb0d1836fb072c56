package service

import (
	"context"

	"xpose-backend/internal/domains/contact/model"
	"xpose-backend/internal/domains/contact/repository"
)

// ServiceInterface defines the business operations on contact information.
type ServiceInterface interface {
	List(ctx context.Context) ([]model.ContactInformation, error)
	GetByID(ctx context.Context, id int64) (*model.ContactInformation, error)
	Create(ctx context.Context, in model.ContactInformation) (*model.ContactInformation, error)
	Update(ctx context.Context, id int64, in model.ContactInformation) (*model.ContactInformation, error)
	Delete(ctx context.Context, id int64) error
}

type contactService struct {
	repo repository.RepositoryInterface
}

func NewContactService(repo repository.RepositoryInterface) ServiceInterface {
	return &contactService{repo: repo}
}

func (s *contactService) List(ctx context.Context) ([]model.ContactInformation, error) {
	return s.repo.List(ctx)
}

func (s *contactService) GetByID(ctx context.Context, id int64) (*model.ContactInformation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *contactService) Create(ctx context.Context, in model.ContactInformation) (*model.ContactInformation, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	created := model.Fresh(&in)
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *contactService) Update(ctx context.Context, id int64, in model.ContactInformation) (*model.ContactInformation, error) {
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

func (s *contactService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
