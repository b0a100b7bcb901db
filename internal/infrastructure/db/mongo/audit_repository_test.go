package mongo

import (
	"testing"
	"time"

	"github.com/concertshift/timesheet/internal/core/domain"
)

func TestToShiftEventDoc(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	in := time.Date(2024, 3, 1, 9, 0, 0, 0, loc)
	out := in.Add(2 * time.Hour)
	hours := 2.0

	doc := toShiftEventDoc(domain.ShiftEvent{
		EntryID:      "e1",
		UserID:       "u1",
		ActorID:      "admin",
		Action:       domain.ActionEdited,
		ConcertID:    "c1",
		ShiftType:    domain.ShiftSunday,
		ClockIn:      in,
		ClockOut:     &out,
		RoundedHours: &hours,
		Reason:       "late clock out",
		OccurredAt:   in,
	})

	if doc.Action != "edited" || doc.ShiftType != "SUNDAY" {
		t.Fatalf("unexpected enum rendering: %+v", doc)
	}
	if doc.ClockIn.Location() != time.UTC || doc.ClockOut.Location() != time.UTC {
		t.Fatalf("times must be stored in UTC")
	}
	if !doc.ClockOut.Equal(out) {
		t.Fatalf("clock-out changed: %v", doc.ClockOut)
	}
	if doc.RecordedAt.IsZero() {
		t.Fatalf("expected recorded_at to be set")
	}
}

func TestToShiftEventDoc_OpenEntry(t *testing.T) {
	doc := toShiftEventDoc(domain.ShiftEvent{EntryID: "e1", Action: domain.ActionOpened, ClockIn: time.Now()})
	if doc.ClockOut != nil || doc.RoundedHours != nil {
		t.Fatalf("open entry should not carry clock-out or hours: %+v", doc)
	}
}
