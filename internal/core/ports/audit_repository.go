package ports

import (
	"context"

	"github.com/concertshift/timesheet/internal/core/domain"
)

// AuditRepository persists shift events to the audit trail.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event domain.ShiftEvent) error
}
