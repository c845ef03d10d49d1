package repository

import (
	"context"
	"errors"

	"company-dashboard/internal/domain"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("user not found")

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Seed(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// Update returns the number of rows matched so callers can
	// distinguish a missing id from a no-op write.
	Update(ctx context.Context, user *domain.User) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
