package ports

import (
	"context"

	"github.com/concertshift/timesheet/internal/core/domain"
)

// ConcertService defines concert registry use cases.
type ConcertService interface {
	CreateConcert(ctx context.Context, p domain.Principal, name string, isActive bool) (*domain.Concert, error)
	// ListConcerts returns concerts newest first. Non-admins always receive the
	// active-only view.
	ListConcerts(ctx context.Context, p domain.Principal, activeOnly bool) ([]*domain.Concert, error)
	SetConcertActive(ctx context.Context, p domain.Principal, id string, isActive bool) (*domain.Concert, error)
	UpdateConcert(ctx context.Context, p domain.Principal, id string, upd ConcertUpdate) (*domain.Concert, error)
}
