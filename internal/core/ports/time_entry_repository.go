package ports

import (
	"context"
	"time"

	"github.com/concertshift/timesheet/internal/core/domain"
)

// TimeEntryFilter selects time entries for listings and reports.
type TimeEntryFilter struct {
	UserID     string           // empty = all users
	ConcertID  string           // empty = all concerts
	Range      domain.DateRange // on clock_in, inclusive
	ClosedOnly bool             // exclude entries with no clock-out
	Ascending  bool             // clock_in order; descending when false
}

// TimeEntryRepository defines persistence operations for time entries.
//
// Every lookup that takes a userID filters on both id and owner, so an entry
// owned by someone else is reported as domain.ErrTimeEntryNotFound.
type TimeEntryRepository interface {
	// Create inserts e. Inserting a second open entry for the same user fails
	// with domain.ErrActiveShiftExists; the store enforces this atomically.
	Create(ctx context.Context, e *domain.TimeEntry) error
	FindOpenByUser(ctx context.Context, userID string) (*domain.TimeEntry, error)
	FindByIDForUser(ctx context.Context, id, userID string) (*domain.TimeEntry, error)
	FindByID(ctx context.Context, id string) (*domain.TimeEntry, error)
	// Close persists clock-out and hours only while the stored entry is still
	// open; otherwise it returns domain.ErrEntryAlreadyClosed.
	Close(ctx context.Context, id, userID string, clockOut time.Time, rawHours, roundedHours float64) (*domain.TimeEntry, error)
	// Update overwrites the mutable fields of e (admin edit) only while the
	// stored entry still carries lastUpdated; otherwise it returns
	// domain.ErrEntryModified.
	Update(ctx context.Context, e *domain.TimeEntry, lastUpdated time.Time) (*domain.TimeEntry, error)
	DeleteForUser(ctx context.Context, id, userID string) error
	List(ctx context.Context, filter TimeEntryFilter) ([]*domain.TimeEntry, error)
}
