package domain

import "time"

// ShiftAction is the lifecycle step recorded by a ShiftEvent.
type ShiftAction string

const (
	ActionOpened      ShiftAction = "opened"
	ActionClosed      ShiftAction = "closed"
	ActionRetroactive ShiftAction = "retroactive"
	ActionEdited      ShiftAction = "edited"
	ActionDeleted     ShiftAction = "deleted"
)

// ShiftEvent is an audit record of a change to a time entry.
type ShiftEvent struct {
	EntryID      string
	UserID       string
	ActorID      string
	Action       ShiftAction
	ConcertID    string
	ShiftType    ShiftType
	ClockIn      time.Time
	ClockOut     *time.Time
	RoundedHours *float64
	Reason       string
	OccurredAt   time.Time
}

// NewShiftEvent snapshots e as an audit record attributed to actorID.
func NewShiftEvent(action ShiftAction, e *TimeEntry, actorID string, at time.Time) ShiftEvent {
	ev := ShiftEvent{
		EntryID:      e.ID,
		UserID:       e.UserID,
		ActorID:      actorID,
		Action:       action,
		ConcertID:    e.ConcertID,
		ShiftType:    e.ShiftType,
		ClockIn:      e.ClockIn,
		ClockOut:     e.ClockOut,
		RoundedHours: e.RoundedHours,
		OccurredAt:   at.UTC(),
	}
	if e.EditReason != nil {
		ev.Reason = *e.EditReason
	}
	return ev
}
