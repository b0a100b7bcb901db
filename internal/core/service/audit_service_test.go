package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/concertshift/timesheet/internal/core/domain"
)

type stubAuditRepo struct {
	events []domain.ShiftEvent
	err    error
}

func (r *stubAuditRepo) InsertEvent(_ context.Context, ev domain.ShiftEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, ev)
	return nil
}

func TestAuditService_Process(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, discardLogger)

	entry := closedEntry("e1", alice.UserID, "gala", domain.ShiftStandard, mustTime("2024-03-01T08:00:00Z"), time.Hour)
	ev := domain.NewShiftEvent(domain.ActionClosed, entry, alice.UserID, mustTime("2024-03-01T09:00:00Z"))

	if err := svc.Process(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].EntryID != "e1" {
		t.Fatalf("expected event to be stored, got %+v", repo.events)
	}
}

func TestAuditService_Process_Errors(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, discardLogger)

	if err := svc.Process(context.Background(), domain.ShiftEvent{Action: domain.ActionOpened}); err == nil {
		t.Fatalf("expected error for missing entry id")
	}

	repo.err = errors.New("mongo down")
	err := svc.Process(context.Background(), domain.ShiftEvent{EntryID: "e1", Action: domain.ActionOpened})
	if !errors.Is(err, repo.err) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}
