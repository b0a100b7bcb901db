package postgres

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/concertshift/timesheet/internal/core/domain"
	"github.com/concertshift/timesheet/internal/core/ports"
)

func TestTranslateError(t *testing.T) {
	plain := errors.New("connection reset")
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, domain.ErrTimeEntryNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), domain.ErrTimeEntryNotFound},
		{"open shift index", &pgconn.PgError{Code: "23505", ConstraintName: openShiftIndex}, domain.ErrActiveShiftExists},
		{"duplicate email", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, domain.ErrUserExists},
		{"unknown concert", &pgconn.PgError{Code: "23503", ConstraintName: "time_entries_concert_id_fkey"}, domain.ErrConcertNotFound},
		{"interval check", &pgconn.PgError{Code: "23514", ConstraintName: "time_entries_interval"}, domain.ErrInvalidInterval},
		{"other driver error", plain, plain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.err, domain.ErrTimeEntryNotFound)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTranslateError_UnmappedConstraintPassesThrough(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "something_else"}
	got := translateError(pgErr, domain.ErrUserNotFound)
	var out *pgconn.PgError
	if !errors.As(got, &out) || out.ConstraintName != "something_else" {
		t.Fatalf("expected the driver error back, got %v", got)
	}
}

func TestBuildListQuery(t *testing.T) {
	q, args := buildListQuery(ports.TimeEntryFilter{
		UserID:     "u1",
		ConcertID:  "c1",
		Range:      domain.DateRange{From: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		ClosedOnly: true,
		Ascending:  true,
	})
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %d", len(args))
	}
	for _, want := range []string{
		"te.user_id = $1",
		"te.concert_id = $2",
		"te.clock_in >= $3",
		"te.clock_in <= $4",
		"te.clock_out IS NOT NULL",
		"ORDER BY te.clock_in ASC, te.id ASC",
	} {
		if !strings.Contains(q, want) {
			t.Fatalf("query %q missing %q", q, want)
		}
	}

	q, args = buildListQuery(ports.TimeEntryFilter{})
	if len(args) != 0 || strings.Contains(q, "WHERE") {
		t.Fatalf("unfiltered query should have no WHERE clause: %q", q)
	}
	if !strings.Contains(q, "ORDER BY te.clock_in DESC") {
		t.Fatalf("expected descending order by default: %q", q)
	}
}
