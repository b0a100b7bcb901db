package ports

import (
	"context"

	"github.com/concertshift/timesheet/internal/core/domain"
)

// CreateTranslatorInput carries admin provisioning data.
type CreateTranslatorInput struct {
	Name     string
	Email    string
	Password string
}

// TranslatorService defines admin management of translator accounts.
type TranslatorService interface {
	CreateTranslator(ctx context.Context, p domain.Principal, in CreateTranslatorInput) (*domain.User, error)
	ListTranslators(ctx context.Context, p domain.Principal) ([]*domain.User, error)
	DeleteTranslator(ctx context.Context, p domain.Principal, id string) error
}
