package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/concertshift/timesheet/internal/core/domain"
	"github.com/concertshift/timesheet/internal/core/ports"
)

// DefaultMaxShift caps the length of a retroactively created shift.
const DefaultMaxShift = 24 * time.Hour

// ShiftOptions tunes a ShiftService. Zero values select defaults.
type ShiftOptions struct {
	MaxShift time.Duration
	Location *time.Location
	Now      func() time.Time
}

type ShiftService struct {
	entries  ports.TimeEntryRepository
	concerts ports.ConcertRepository
	locker   ports.ShiftLocker
	audit    ports.AuditSink
	logger   zerolog.Logger

	maxShift time.Duration
	loc      *time.Location
	now      func() time.Time
}

// NewShiftService wires the shift lifecycle engine. locker and audit may be nil.
func NewShiftService(
	entries ports.TimeEntryRepository,
	concerts ports.ConcertRepository,
	locker ports.ShiftLocker,
	audit ports.AuditSink,
	logger zerolog.Logger,
	opts ShiftOptions,
) *ShiftService {
	s := &ShiftService{
		entries:  entries,
		concerts: concerts,
		locker:   locker,
		audit:    audit,
		logger:   logger,
		maxShift: opts.MaxShift,
		loc:      opts.Location,
		now:      opts.Now,
	}
	if s.maxShift <= 0 {
		s.maxShift = DefaultMaxShift
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// OpenShift clocks the caller in. Only one open entry per user may exist; the
// pre-check gives a clean error and the repository constraint closes the race.
func (s *ShiftService) OpenShift(ctx context.Context, p domain.Principal, in ports.OpenShiftInput) (*domain.TimeEntry, error) {
	if err := domain.Authorize(p, domain.OpOpenShift, p.UserID); err != nil {
		return nil, err
	}
	if !in.ShiftType.Valid() {
		return nil, domain.ErrInvalidShiftType
	}

	now := s.now().UTC()
	clockIn := now
	if in.ClockIn != nil {
		if in.ClockIn.After(now) {
			return nil, domain.ErrClockInInFuture
		}
		clockIn = in.ClockIn.UTC()
	}

	if _, err := s.activeConcert(ctx, in.ConcertID); err != nil {
		return nil, err
	}

	if s.locker != nil {
		release, ok, err := s.locker.Acquire(ctx, p.UserID)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("user_id", p.UserID).Msg("shift lock unavailable, relying on store constraint")
		case !ok:
			return nil, domain.ErrActiveShiftExists
		default:
			defer release()
		}
	}

	open, err := s.entries.FindOpenByUser(ctx, p.UserID)
	if err != nil && !errors.Is(err, domain.ErrTimeEntryNotFound) {
		return nil, fmt.Errorf("open shift: %w", err)
	}
	if open != nil {
		return nil, domain.ErrActiveShiftExists
	}

	entry := &domain.TimeEntry{
		ID:        uuid.NewString(),
		UserID:    p.UserID,
		ConcertID: in.ConcertID,
		ShiftType: in.ShiftType,
		ClockIn:   clockIn,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		if errors.Is(err, domain.ErrActiveShiftExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("user_id", p.UserID).Msg("failed to open shift")
		return nil, fmt.Errorf("open shift: %w", err)
	}

	s.logger.Info().
		Str("entry_id", entry.ID).
		Str("user_id", p.UserID).
		Str("concert_id", in.ConcertID).
		Str("shift_type", string(in.ShiftType)).
		Msg("shift opened")
	s.publish(domain.ActionOpened, entry, p.UserID)

	return s.reload(ctx, entry)
}

// CloseShift clocks the caller out of their own open entry. The concert is not
// re-checked: a shift opened while the concert was active may always close.
func (s *ShiftService) CloseShift(ctx context.Context, p domain.Principal, entryID string, clockOut time.Time) (*domain.TimeEntry, error) {
	if err := domain.Authorize(p, domain.OpCloseShift, ""); err != nil {
		return nil, err
	}
	if clockOut.IsZero() {
		clockOut = s.now()
	}

	entry, err := s.entries.FindByIDForUser(ctx, entryID, p.UserID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(p, domain.OpCloseShift, entry.UserID); err != nil {
		return nil, err
	}
	if err := entry.Close(clockOut); err != nil {
		return nil, err
	}

	closed, err := s.entries.Close(ctx, entry.ID, p.UserID, *entry.ClockOut, *entry.RawHours, *entry.RoundedHours)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("entry_id", closed.ID).
		Str("user_id", p.UserID).
		Float64("rounded_hours", *entry.RoundedHours).
		Msg("shift closed")
	s.publish(domain.ActionClosed, closed, p.UserID)

	return closed, nil
}

// CreateRetroactiveShift records past work in a single step. Retroactive
// entries are created closed and neither block nor are blocked by the caller's
// open shift.
func (s *ShiftService) CreateRetroactiveShift(ctx context.Context, p domain.Principal, in ports.RetroactiveShiftInput) (*domain.TimeEntry, error) {
	if err := domain.Authorize(p, domain.OpCreateRetroShift, p.UserID); err != nil {
		return nil, err
	}
	if !in.ShiftType.Valid() {
		return nil, domain.ErrInvalidShiftType
	}
	if err := s.checkDuration(in.ClockIn, in.ClockOut); err != nil {
		return nil, err
	}
	if _, err := s.activeConcert(ctx, in.ConcertID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	entry := &domain.TimeEntry{
		ID:        uuid.NewString(),
		UserID:    p.UserID,
		ConcertID: in.ConcertID,
		ShiftType: in.ShiftType,
		ClockIn:   in.ClockIn.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := entry.Close(in.ClockOut); err != nil {
		return nil, err
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("user_id", p.UserID).Msg("failed to create retroactive shift")
		return nil, fmt.Errorf("create retroactive shift: %w", err)
	}

	s.logger.Info().
		Str("entry_id", entry.ID).
		Str("user_id", p.UserID).
		Float64("rounded_hours", *entry.RoundedHours).
		Msg("retroactive shift created")
	s.publish(domain.ActionRetroactive, entry, p.UserID)

	return s.reload(ctx, entry)
}

func (s *ShiftService) ActiveShift(ctx context.Context, p domain.Principal) (*domain.TimeEntry, error) {
	if err := domain.Authorize(p, domain.OpViewActiveEntry, p.UserID); err != nil {
		return nil, err
	}
	entry, err := s.entries.FindOpenByUser(ctx, p.UserID)
	if errors.Is(err, domain.ErrTimeEntryNotFound) {
		return nil, nil
	}
	return entry, err
}

func (s *ShiftService) ListOwnEntries(ctx context.Context, p domain.Principal, r domain.DateRange) ([]*domain.TimeEntry, error) {
	if err := domain.Authorize(p, domain.OpListOwnEntries, p.UserID); err != nil {
		return nil, err
	}
	return s.entries.List(ctx, ports.TimeEntryFilter{
		UserID: p.UserID,
		Range:  r.InclusiveDays(s.loc),
	})
}

func (s *ShiftService) DeleteOwnEntry(ctx context.Context, p domain.Principal, entryID string) error {
	if err := domain.Authorize(p, domain.OpDeleteOwnEntry, ""); err != nil {
		return err
	}
	entry, err := s.entries.FindByIDForUser(ctx, entryID, p.UserID)
	if err != nil {
		return err
	}
	if err := s.entries.DeleteForUser(ctx, entry.ID, p.UserID); err != nil {
		return err
	}

	s.logger.Info().Str("entry_id", entry.ID).Str("user_id", p.UserID).Msg("time entry deleted")
	s.publish(domain.ActionDeleted, entry, p.UserID)
	return nil
}

// ListAllEntries returns every entry, open ones included, whose clock-in falls
// in r. The end date is covered through its last instant.
func (s *ShiftService) ListAllEntries(ctx context.Context, p domain.Principal, r domain.DateRange) ([]*domain.TimeEntry, error) {
	if err := domain.Authorize(p, domain.OpListAllEntries, ""); err != nil {
		return nil, err
	}
	return s.entries.List(ctx, ports.TimeEntryFilter{
		Range: r.InclusiveDays(s.loc),
	})
}

// EditEntry applies an admin correction and flags the entry as edited. Hours
// are recomputed whenever the result is closed, under the same duration cap
// as retroactive shifts. A concurrent change to the entry fails the edit with
// domain.ErrEntryModified.
func (s *ShiftService) EditEntry(ctx context.Context, p domain.Principal, entryID string, in ports.EditEntryInput) (*domain.TimeEntry, error) {
	if err := domain.Authorize(p, domain.OpEditEntry, ""); err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, domain.NewValidationError("reason", "is required")
	}

	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	lastUpdated := entry.UpdatedAt

	if in.ShiftType != nil {
		if !in.ShiftType.Valid() {
			return nil, domain.ErrInvalidShiftType
		}
		entry.ShiftType = *in.ShiftType
	}
	if in.ConcertID != nil && *in.ConcertID != entry.ConcertID {
		if _, err := s.concerts.FindByID(ctx, *in.ConcertID); err != nil {
			return nil, err
		}
		entry.ConcertID = *in.ConcertID
	}
	if in.ClockIn != nil {
		entry.ClockIn = in.ClockIn.UTC()
	}
	if in.ClockOut != nil {
		out := in.ClockOut.UTC()
		entry.ClockOut = &out
	}
	if entry.ClockOut != nil {
		if err := s.checkDuration(entry.ClockIn, *entry.ClockOut); err != nil {
			return nil, err
		}
		raw, rounded, err := domain.ComputeHours(entry.ClockIn, *entry.ClockOut)
		if err != nil {
			return nil, err
		}
		entry.RawHours = &raw
		entry.RoundedHours = &rounded
	}

	editor := p.UserID
	entry.Edited = true
	entry.EditedBy = &editor
	entry.EditReason = &reason
	entry.UpdatedAt = s.now().UTC()

	updated, err := s.entries.Update(ctx, entry, lastUpdated)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("entry_id", updated.ID).
		Str("editor_id", editor).
		Str("reason", reason).
		Msg("time entry edited")
	s.publish(domain.ActionEdited, updated, editor)

	return updated, nil
}

// activeConcert loads the concert and rejects it when inactive.
func (s *ShiftService) activeConcert(ctx context.Context, id string) (*domain.Concert, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("concertId", "is required")
	}
	c, err := s.concerts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, domain.ErrConcertInactive
	}
	return c, nil
}

func (s *ShiftService) checkDuration(clockIn, clockOut time.Time) error {
	if !clockOut.After(clockIn) {
		return domain.ErrInvalidInterval
	}
	if clockOut.Sub(clockIn) > s.maxShift {
		return domain.ErrShiftTooLong
	}
	return nil
}

// reload returns the stored entry with its joins; the in-memory value is
// returned if the read fails after a successful write.
func (s *ShiftService) reload(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error) {
	stored, err := s.entries.FindByIDForUser(ctx, e.ID, e.UserID)
	if err != nil {
		s.logger.Warn().Err(err).Str("entry_id", e.ID).Msg("reload after write failed")
		return e, nil
	}
	return stored, nil
}

func (s *ShiftService) publish(action domain.ShiftAction, e *domain.TimeEntry, actorID string) {
	if s.audit == nil {
		return
	}
	s.audit.Publish(domain.NewShiftEvent(action, e, actorID, s.now()))
}
