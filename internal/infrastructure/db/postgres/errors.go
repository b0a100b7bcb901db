package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/concertshift/timesheet/internal/core/domain"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"

	openShiftIndex = "time_entries_one_open_per_user"
)

// translateError maps driver errors onto domain sentinels. notFound is
// returned for pgx.ErrNoRows; unknown errors pass through unchanged.
func translateError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		switch pgErr.ConstraintName {
		case openShiftIndex:
			return domain.ErrActiveShiftExists
		case "users_email_key":
			return domain.ErrUserExists
		}
	case codeForeignKeyViolation:
		switch pgErr.ConstraintName {
		case "time_entries_concert_id_fkey":
			return domain.ErrConcertNotFound
		case "time_entries_user_id_fkey":
			return domain.ErrUserNotFound
		}
	case codeCheckViolation:
		if pgErr.ConstraintName == "time_entries_interval" {
			return domain.ErrInvalidInterval
		}
	}
	return err
}
