package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/concertshift/timesheet/internal/core/domain"
	"github.com/concertshift/timesheet/internal/core/ports"
)

// ConcertService implements the concert registry.
type ConcertService struct {
	repo   ports.ConcertRepository
	logger zerolog.Logger
}

func NewConcertService(repo ports.ConcertRepository, logger zerolog.Logger) *ConcertService {
	return &ConcertService{repo: repo, logger: logger}
}

func (s *ConcertService) CreateConcert(ctx context.Context, p domain.Principal, name string, isActive bool) (*domain.Concert, error) {
	if err := domain.Authorize(p, domain.OpManageConcerts, ""); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}

	now := time.Now().UTC()
	c := &domain.Concert{
		ID:        uuid.NewString(),
		Name:      name,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error().Err(err).Msg("failed to create concert")
		return nil, err
	}

	s.logger.Info().Str("concert_id", c.ID).Str("name", c.Name).Bool("is_active", c.IsActive).Msg("concert created")
	return c, nil
}

// ListConcerts returns concerts newest first. Translators only ever see the
// active ones, which is what shift selection offers them.
func (s *ConcertService) ListConcerts(ctx context.Context, p domain.Principal, activeOnly bool) ([]*domain.Concert, error) {
	if err := domain.Authorize(p, domain.OpListConcerts, ""); err != nil {
		return nil, err
	}
	if !p.IsAdmin() {
		activeOnly = true
	}
	return s.repo.List(ctx, activeOnly)
}

func (s *ConcertService) SetConcertActive(ctx context.Context, p domain.Principal, id string, isActive bool) (*domain.Concert, error) {
	return s.UpdateConcert(ctx, p, id, ports.ConcertUpdate{IsActive: &isActive})
}

func (s *ConcertService) UpdateConcert(ctx context.Context, p domain.Principal, id string, upd ports.ConcertUpdate) (*domain.Concert, error) {
	if err := domain.Authorize(p, domain.OpManageConcerts, ""); err != nil {
		return nil, err
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "is required")
		}
		upd.Name = &name
	}
	if upd.Name == nil && upd.IsActive == nil {
		return nil, domain.NewValidationError("body", "must set name or isActive")
	}

	c, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("concert_id", c.ID).Bool("is_active", c.IsActive).Msg("concert updated")
	return c, nil
}
