package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/concertshift/timesheet/internal/core/domain"
	"github.com/concertshift/timesheet/internal/core/ports"
)

// TranslatorService implements admin management of translator accounts.
type TranslatorService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewTranslatorService(users ports.UserRepository, logger zerolog.Logger) *TranslatorService {
	return &TranslatorService{users: users, logger: logger}
}

func (s *TranslatorService) CreateTranslator(ctx context.Context, p domain.Principal, in ports.CreateTranslatorInput) (*domain.User, error) {
	if err := domain.Authorize(p, domain.OpManageTranslators, ""); err != nil {
		return nil, err
	}
	user, err := createUser(ctx, s.users, in.Name, in.Email, in.Password, domain.RoleTranslator, minProvisionPassLen)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", user.ID).Str("admin_id", p.UserID).Msg("translator created")
	return user, nil
}

func (s *TranslatorService) ListTranslators(ctx context.Context, p domain.Principal) ([]*domain.User, error) {
	if err := domain.Authorize(p, domain.OpManageTranslators, ""); err != nil {
		return nil, err
	}
	return s.users.ListByRole(ctx, domain.RoleTranslator)
}

// DeleteTranslator removes a translator and, with it, their time entries.
// Admin accounts cannot be removed this way.
func (s *TranslatorService) DeleteTranslator(ctx context.Context, p domain.Principal, id string) error {
	if err := domain.Authorize(p, domain.OpManageTranslators, ""); err != nil {
		return err
	}
	if err := s.users.DeleteByRole(ctx, id, domain.RoleTranslator); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Str("admin_id", p.UserID).Msg("translator deleted")
	return nil
}
