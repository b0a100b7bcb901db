package domain

import (
	"errors"
	"math"
	"time"
)

// ShiftType categorises a shift for billing.
type ShiftType string

const (
	ShiftStandard  ShiftType = "STANDARD"
	ShiftSunday    ShiftType = "SUNDAY"
	ShiftEmergency ShiftType = "EMERGENCY"
	ShiftOvernight ShiftType = "OVERNIGHT"
)

// Valid reports whether s is a known shift type.
func (s ShiftType) Valid() bool {
	switch s {
	case ShiftStandard, ShiftSunday, ShiftEmergency, ShiftOvernight:
		return true
	}
	return false
}

var (
	ErrTimeEntryNotFound  = errors.New("time entry not found")
	ErrActiveShiftExists  = errors.New("active entry already exists")
	ErrEntryAlreadyClosed = errors.New("time entry already closed")
	ErrInvalidInterval    = errors.New("clock-out must be after clock-in")
	ErrShiftTooLong       = errors.New("shift exceeds the maximum duration")
	ErrInvalidShiftType   = errors.New("invalid shift type")
	ErrClockInInFuture    = errors.New("clock-in cannot be in the future")
	ErrEntryModified      = errors.New("time entry was modified concurrently")
)

// quartersPerHour is the billing granularity.
const quartersPerHour = 4

// TimeEntry is one clock-in/clock-out interval of a user against a concert.
// ClockOut, RawHours and RoundedHours are nil while the entry is open.
type TimeEntry struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	ConcertID    string     `json:"concertId"`
	ShiftType    ShiftType  `json:"shiftType"`
	ClockIn      time.Time  `json:"clockIn"`
	ClockOut     *time.Time `json:"clockOut"`
	RawHours     *float64   `json:"rawHours"`
	RoundedHours *float64   `json:"roundedHours"`
	Edited       bool       `json:"edited"`
	EditedBy     *string    `json:"editedBy"`
	EditReason   *string    `json:"editReason"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	// Read-side joins, populated by the store when available.
	Concert *ConcertSummary `json:"concert,omitempty"`
	User    *UserSummary    `json:"user,omitempty"`
}

// IsOpen reports whether the entry is the user's active shift.
func (e *TimeEntry) IsOpen() bool {
	return e.ClockOut == nil
}

// Close records clockOut and the derived hours. It fails with
// ErrEntryAlreadyClosed or ErrInvalidInterval and leaves e untouched on error.
func (e *TimeEntry) Close(clockOut time.Time) error {
	if !e.IsOpen() {
		return ErrEntryAlreadyClosed
	}
	raw, rounded, err := ComputeHours(e.ClockIn, clockOut)
	if err != nil {
		return err
	}
	out := clockOut.UTC()
	e.ClockOut = &out
	e.RawHours = &raw
	e.RoundedHours = &rounded
	return nil
}

// ComputeHours returns the exact elapsed hours between clockIn and clockOut and
// the billable value rounded up to the next quarter hour.
func ComputeHours(clockIn, clockOut time.Time) (raw, rounded float64, err error) {
	if !clockOut.After(clockIn) {
		return 0, 0, ErrInvalidInterval
	}
	raw = clockOut.Sub(clockIn).Hours()
	return raw, RoundUpToQuarter(raw), nil
}

// RoundUpToQuarter rounds hours up to the nearest 0.25. Exact multiples are
// returned unchanged.
func RoundUpToQuarter(hours float64) float64 {
	return math.Ceil(hours*quartersPerHour) / quartersPerHour
}
