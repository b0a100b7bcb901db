package ports

import (
	"context"

	"github.com/concertshift/timesheet/internal/core/domain"
)

// AuthService defines registration and login.
type AuthService interface {
	// Register self-registers a translator account.
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
