package ports

import (
	"context"

	"github.com/concertshift/timesheet/internal/core/domain"
)

// AuditSink accepts shift events for asynchronous recording.
type AuditSink interface {
	Publish(event domain.ShiftEvent)
}

// AuditService records a single shift event.
type AuditService interface {
	Process(ctx context.Context, event domain.ShiftEvent) error
}
