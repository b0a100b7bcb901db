package ports

import (
	"context"
	"time"

	"github.com/concertshift/timesheet/internal/core/domain"
)

// OpenShiftInput carries the data needed to clock in.
type OpenShiftInput struct {
	ConcertID string
	ShiftType domain.ShiftType
	// ClockIn backdates the start of the shift; now is used when nil.
	ClockIn *time.Time
}

// RetroactiveShiftInput describes past work with both ends known.
type RetroactiveShiftInput struct {
	ConcertID string
	ShiftType domain.ShiftType
	ClockIn   time.Time
	ClockOut  time.Time
}

// EditEntryInput carries an admin correction. Nil fields are left unchanged;
// Reason is mandatory.
type EditEntryInput struct {
	ConcertID *string
	ShiftType *domain.ShiftType
	ClockIn   *time.Time
	ClockOut  *time.Time
	Reason    string
}

// ShiftLocker serialises clock-in attempts per user ahead of the store.
type ShiftLocker interface {
	// Acquire returns ok=false when another attempt for userID holds the lock.
	Acquire(ctx context.Context, userID string) (release func(), ok bool, err error)
}

// ShiftService defines the shift lifecycle use cases.
type ShiftService interface {
	OpenShift(ctx context.Context, p domain.Principal, in OpenShiftInput) (*domain.TimeEntry, error)
	CloseShift(ctx context.Context, p domain.Principal, entryID string, clockOut time.Time) (*domain.TimeEntry, error)
	CreateRetroactiveShift(ctx context.Context, p domain.Principal, in RetroactiveShiftInput) (*domain.TimeEntry, error)
	// ActiveShift returns the caller's open entry, or nil when there is none.
	ActiveShift(ctx context.Context, p domain.Principal) (*domain.TimeEntry, error)
	ListOwnEntries(ctx context.Context, p domain.Principal, r domain.DateRange) ([]*domain.TimeEntry, error)
	DeleteOwnEntry(ctx context.Context, p domain.Principal, entryID string) error
	ListAllEntries(ctx context.Context, p domain.Principal, r domain.DateRange) ([]*domain.TimeEntry, error)
	EditEntry(ctx context.Context, p domain.Principal, entryID string, in EditEntryInput) (*domain.TimeEntry, error)
}
