package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/concertshift/timesheet/internal/core/domain"
	"github.com/concertshift/timesheet/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that writes to repo.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single shift event to the audit trail.
func (s *auditService) Process(ctx context.Context, ev domain.ShiftEvent) error {
	if ev.EntryID == "" || ev.Action == "" {
		return fmt.Errorf("process shift event: missing entry id or action")
	}
	if err := s.repo.InsertEvent(ctx, ev); err != nil {
		return fmt.Errorf("process shift event: %w", err)
	}

	s.log.Debug().
		Str("entry_id", ev.EntryID).
		Str("user_id", ev.UserID).
		Str("action", string(ev.Action)).
		Msg("shift event recorded")
	return nil
}
