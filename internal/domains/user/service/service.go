package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"xpose-backend/internal/domains/user/model"
	"xpose-backend/internal/domains/user/repository"
	"xpose-backend/internal/shared/apperror"
)

// hashCost is the bcrypt cost of stored passwords.
var hashCost = 12

var ErrPasswordRequired = fmt.Errorf("password is required: %w", apperror.ErrInvalid)

type ServiceInterface interface {
	List(ctx context.Context) ([]model.User, error)
	Filter(ctx context.Context, f model.Filter) ([]model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, in model.User) (*model.User, error)
	Update(ctx context.Context, id int64, in model.User) (*model.User, error)
	Delete(ctx context.Context, id int64) error

	// Login returns the user owning email when password matches.
	// Any mismatch is model.ErrUserNotFound.
	Login(ctx context.Context, req model.LoginRequest) (*model.User, error)
}

type userService struct {
	repo repository.RepositoryInterface
}

func NewUserService(repo repository.RepositoryInterface) ServiceInterface {
	return &userService{
		repo: repo,
	}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	return public(users), err
}

func (s *userService) Filter(ctx context.Context, f model.Filter) ([]model.User, error) {
	users, err := s.repo.Filter(ctx, f)
	return public(users), err
}

func (s *userService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := u.Public()
	return &out, nil
}

func (s *userService) Create(ctx context.Context, in model.User) (*model.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, ErrPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	in.ID = 0
	in.PasswordHash = string(hash)
	if err := s.repo.Create(ctx, &in); err != nil {
		return nil, err
	}

	out := in.Public()
	return &out, nil
}

func (s *userService) Update(ctx context.Context, id int64, in model.User) (*model.User, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := model.Patch(*existing, in)
	merged.Email = strings.TrimSpace(merged.Email)
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	if merged.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(merged.Password), hashCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		merged.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, &merged); err != nil {
		return nil, err
	}

	out := merged.Public()
	return &out, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, err
	}

	if u.PasswordHash == "" {
		return nil, model.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}

	out := u.Public()
	return &out, nil
}

func public(users []model.User) []model.User {
	for i := range users {
		users[i] = users[i].Public()
	}
	return users
}
