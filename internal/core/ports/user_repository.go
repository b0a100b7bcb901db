package ports

import (
	"context"

	"github.com/concertshift/timesheet/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts user and returns the stored row. A duplicate email yields
	// domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// ListByRole returns users of role ordered by name.
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
	// DeleteByRole removes the user only when it holds role; otherwise it
	// returns domain.ErrUserNotFound. Time entries are removed with the user.
	DeleteByRole(ctx context.Context, id string, role domain.Role) error
}
