package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/concertshift/timesheet/internal/core/domain"
	"github.com/concertshift/timesheet/internal/core/ports"
)

// rowScanner is satisfied by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const entrySelect = `
	SELECT te.id, te.user_id, te.concert_id, te.shift_type, te.clock_in, te.clock_out,
	       te.raw_hours, te.rounded_hours, te.edited, te.edited_by, te.edit_reason,
	       te.created_at, te.updated_at,
	       c.name, u.name, u.email
	FROM time_entries te
	LEFT JOIN concerts c ON c.id = te.concert_id
	LEFT JOIN users u ON u.id = te.user_id`

type TimeEntryRepository struct {
	pool *pgxpool.Pool
}

func NewTimeEntryRepository(pool *pgxpool.Pool) *TimeEntryRepository {
	return &TimeEntryRepository{pool: pool}
}

var _ ports.TimeEntryRepository = (*TimeEntryRepository)(nil)

func scanEntry(row rowScanner) (*domain.TimeEntry, error) {
	var e domain.TimeEntry
	var concertName, userName, userEmail *string
	if err := row.Scan(
		&e.ID, &e.UserID, &e.ConcertID, &e.ShiftType, &e.ClockIn, &e.ClockOut,
		&e.RawHours, &e.RoundedHours, &e.Edited, &e.EditedBy, &e.EditReason,
		&e.CreatedAt, &e.UpdatedAt,
		&concertName, &userName, &userEmail,
	); err != nil {
		return nil, err
	}

	e.ClockIn = e.ClockIn.UTC()
	if e.ClockOut != nil {
		out := e.ClockOut.UTC()
		e.ClockOut = &out
	}
	if concertName != nil {
		e.Concert = &domain.ConcertSummary{ID: e.ConcertID, Name: *concertName}
	}
	if userName != nil && userEmail != nil {
		e.User = &domain.UserSummary{Name: *userName, Email: *userEmail}
	}
	return &e, nil
}

// Create inserts e. An open entry for a user who already has one trips the
// partial unique index and yields domain.ErrActiveShiftExists.
func (r *TimeEntryRepository) Create(ctx context.Context, e *domain.TimeEntry) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO time_entries (
			id, user_id, concert_id, shift_type, clock_in, clock_out,
			raw_hours, rounded_hours, edited, edited_by, edit_reason, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		e.ID, e.UserID, e.ConcertID, e.ShiftType, e.ClockIn, e.ClockOut,
		e.RawHours, e.RoundedHours, e.Edited, e.EditedBy, e.EditReason, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return translateError(err, domain.ErrTimeEntryNotFound)
	}
	return nil
}

func (r *TimeEntryRepository) FindOpenByUser(ctx context.Context, userID string) (*domain.TimeEntry, error) {
	return r.findOne(ctx, ` WHERE te.user_id = $1 AND te.clock_out IS NULL`, userID)
}

func (r *TimeEntryRepository) FindByIDForUser(ctx context.Context, id, userID string) (*domain.TimeEntry, error) {
	return r.findOne(ctx, ` WHERE te.id = $1 AND te.user_id = $2`, id, userID)
}

func (r *TimeEntryRepository) FindByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	return r.findOne(ctx, ` WHERE te.id = $1`, id)
}

func (r *TimeEntryRepository) findOne(ctx context.Context, where string, args ...any) (*domain.TimeEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	e, err := scanEntry(r.pool.QueryRow(ctx, entrySelect+where, args...))
	if err != nil {
		return nil, translateError(err, domain.ErrTimeEntryNotFound)
	}
	return e, nil
}

// Close sets clock-out and hours only while the entry is still open, so two
// concurrent closes cannot both succeed.
func (r *TimeEntryRepository) Close(ctx context.Context, id, userID string, clockOut time.Time, raw, rounded float64) (*domain.TimeEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cmd, err := r.pool.Exec(ctx, `
		UPDATE time_entries
		SET clock_out = $3, raw_hours = $4, rounded_hours = $5, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND clock_out IS NULL`,
		id, userID, clockOut.UTC(), raw, rounded,
	)
	if err != nil {
		return nil, translateError(err, domain.ErrTimeEntryNotFound)
	}
	if cmd.RowsAffected() == 0 {
		var closed bool
		err := r.pool.QueryRow(ctx,
			`SELECT clock_out IS NOT NULL FROM time_entries WHERE id = $1 AND user_id = $2`,
			id, userID,
		).Scan(&closed)
		if err != nil {
			return nil, translateError(err, domain.ErrTimeEntryNotFound)
		}
		if closed {
			return nil, domain.ErrEntryAlreadyClosed
		}
		return nil, domain.ErrTimeEntryNotFound
	}

	return r.FindByIDForUser(ctx, id, userID)
}

// Update overwrites the mutable columns of e. Used for admin corrections; the
// write is skipped when the row changed since it was read.
func (r *TimeEntryRepository) Update(ctx context.Context, e *domain.TimeEntry, lastUpdated time.Time) (*domain.TimeEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cmd, err := r.pool.Exec(ctx, `
		UPDATE time_entries
		SET concert_id = $2, shift_type = $3, clock_in = $4, clock_out = $5,
		    raw_hours = $6, rounded_hours = $7, edited = $8, edited_by = $9,
		    edit_reason = $10, updated_at = $11
		WHERE id = $1 AND updated_at = $12`,
		e.ID, e.ConcertID, e.ShiftType, e.ClockIn.UTC(), e.ClockOut,
		e.RawHours, e.RoundedHours, e.Edited, e.EditedBy, e.EditReason, e.UpdatedAt,
		lastUpdated,
	)
	if err != nil {
		return nil, translateError(err, domain.ErrTimeEntryNotFound)
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		err := r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM time_entries WHERE id = $1)`, e.ID,
		).Scan(&exists)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrEntryModified
		}
		return nil, domain.ErrTimeEntryNotFound
	}
	return r.FindByID(ctx, e.ID)
}

func (r *TimeEntryRepository) DeleteForUser(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cmd, err := r.pool.Exec(ctx, `DELETE FROM time_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrTimeEntryNotFound
	}
	return nil
}

func (r *TimeEntryRepository) List(ctx context.Context, f ports.TimeEntryFilter) ([]*domain.TimeEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query, args := buildListQuery(f)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.TimeEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// buildListQuery renders f as a parameterised SELECT. Ties on clock-in are
// broken by id.
func buildListQuery(f ports.TimeEntryFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.UserID != "" {
		add("te.user_id = $%d", f.UserID)
	}
	if f.ConcertID != "" {
		add("te.concert_id = $%d", f.ConcertID)
	}
	if !f.Range.From.IsZero() {
		add("te.clock_in >= $%d", f.Range.From.UTC())
	}
	if !f.Range.To.IsZero() {
		add("te.clock_in <= $%d", f.Range.To.UTC())
	}
	if f.ClosedOnly {
		conds = append(conds, "te.clock_out IS NOT NULL")
	}

	var b strings.Builder
	b.WriteString(entrySelect)
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	if f.Ascending {
		b.WriteString(" ORDER BY te.clock_in ASC, te.id ASC")
	} else {
		b.WriteString(" ORDER BY te.clock_in DESC, te.id DESC")
	}
	return b.String(), args
}
