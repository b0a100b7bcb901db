package handler

import (
	"time"

	"github.com/concertshift/timesheet/internal/core/domain"
)

type createTimeEntryRequest struct {
	ConcertID string     `json:"concertId" validate:"required"`
	ShiftType string     `json:"shiftType" validate:"required"`
	ClockIn   *time.Time `json:"clockIn,omitempty"`
	ClockOut  *time.Time `json:"clockOut,omitempty"`
}

type closeTimeEntryRequest struct {
	ClockOut *time.Time `json:"clockOut,omitempty"`
}

type editTimeEntryRequest struct {
	ConcertID *string    `json:"concertId,omitempty"`
	ShiftType *string    `json:"shiftType,omitempty"`
	ClockIn   *time.Time `json:"clockIn,omitempty"`
	ClockOut  *time.Time `json:"clockOut,omitempty"`
	Reason    string     `json:"reason" validate:"required"`
}

type timeEntryListResponse struct {
	Entries []*domain.TimeEntry `json:"entries"`
	Count   int                 `json:"count"`
}

type activeEntryResponse struct {
	Entry *domain.TimeEntry `json:"entry"`
}
