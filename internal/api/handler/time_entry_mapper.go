package handler

import (
	"github.com/concertshift/timesheet/internal/core/domain"
	"github.com/concertshift/timesheet/internal/core/ports"
)

// --- Request → Service input ---

func toOpenShiftInput(req createTimeEntryRequest) ports.OpenShiftInput {
	return ports.OpenShiftInput{
		ConcertID: req.ConcertID,
		ShiftType: domain.ShiftType(req.ShiftType),
		ClockIn:   req.ClockIn,
	}
}

func toRetroactiveInput(req createTimeEntryRequest) ports.RetroactiveShiftInput {
	return ports.RetroactiveShiftInput{
		ConcertID: req.ConcertID,
		ShiftType: domain.ShiftType(req.ShiftType),
		ClockIn:   *req.ClockIn,
		ClockOut:  *req.ClockOut,
	}
}

func toEditInput(req editTimeEntryRequest) ports.EditEntryInput {
	in := ports.EditEntryInput{
		ConcertID: req.ConcertID,
		ClockIn:   req.ClockIn,
		ClockOut:  req.ClockOut,
		Reason:    req.Reason,
	}
	if req.ShiftType != nil {
		st := domain.ShiftType(*req.ShiftType)
		in.ShiftType = &st
	}
	return in
}

// --- Service result → HTTP response ---

func toListResponse(entries []*domain.TimeEntry) timeEntryListResponse {
	if entries == nil {
		entries = []*domain.TimeEntry{}
	}
	return timeEntryListResponse{Entries: entries, Count: len(entries)}
}
