package service

import (
	"context"
	"errors"
	"strings"

	"company-dashboard/internal/domain"
	"company-dashboard/internal/repository"
)

var (
	// ErrNotFound indicates the requested user id does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrNameRequired indicates a missing or blank name field.
	ErrNameRequired = errors.New("name is required")
	// ErrRoleRequired indicates a missing or blank role field.
	ErrRoleRequired = errors.New("role is required")
)

// UserService describes directory lifecycle operations.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, name, role string) (*domain.User, error)
	Update(ctx context.Context, id int64, name, role string) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Create(ctx context.Context, name, role string) (*domain.User, error) {
	name, role, err := validateFields(name, role)
	if err != nil {
		return nil, err
	}

	id, err := s.users.Create(ctx, &domain.User{Name: name, Role: role})
	if err != nil {
		return nil, err
	}

	// re-fetch so the response reflects exactly what was stored
	return s.users.Get(ctx, id)
}

func (s *userService) Update(ctx context.Context, id int64, name, role string) (*domain.User, error) {
	name, role, err := validateFields(name, role)
	if err != nil {
		return nil, err
	}

	affected, err := s.users.Update(ctx, &domain.User{ID: id, Name: name, Role: role})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return s.users.Get(ctx, id)
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	affected, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func validateFields(name, role string) (string, string, error) {
	name = strings.TrimSpace(name)
	role = strings.TrimSpace(role)
	if name == "" {
		return "", "", ErrNameRequired
	}
	if role == "" {
		return "", "", ErrRoleRequired
	}
	return name, role, nil
}
