package ports

import (
	"context"

	"github.com/concertshift/timesheet/internal/core/domain"
)

// ConcertUpdate carries the optional fields of a concert update.
type ConcertUpdate struct {
	Name     *string
	IsActive *bool
}

// ConcertRepository defines persistence operations for concerts.
type ConcertRepository interface {
	Create(ctx context.Context, c *domain.Concert) error
	FindByID(ctx context.Context, id string) (*domain.Concert, error)
	// List returns concerts newest first, optionally only active ones.
	List(ctx context.Context, activeOnly bool) ([]*domain.Concert, error)
	Update(ctx context.Context, id string, upd ConcertUpdate) (*domain.Concert, error)
}
