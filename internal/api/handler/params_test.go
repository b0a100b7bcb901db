package handler

import (
	"errors"
	"testing"
	"time"

	"github.com/concertshift/timesheet/internal/core/domain"
)

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)

	got, err := parseDate("start", "2024-03-01", loc)
	if err != nil || !got.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, loc)) {
		t.Fatalf("date-only: got %v, %v", got, err)
	}

	got, err = parseDate("start", "2024-03-01T10:30:00Z", loc)
	if err != nil || !got.Equal(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)) {
		t.Fatalf("rfc3339: got %v, %v", got, err)
	}

	got, err = parseDate("start", "", loc)
	if err != nil || !got.IsZero() {
		t.Fatalf("empty: got %v, %v", got, err)
	}

	var ve *domain.ValidationError
	if _, err := parseDate("end", "yesterday", loc); !errors.As(err, &ve) || ve.Fields[0].Field != "end" {
		t.Fatalf("expected validation error, got %v", err)
	}
}
