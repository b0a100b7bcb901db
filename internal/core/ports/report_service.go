package ports

import (
	"context"

	"github.com/concertshift/timesheet/internal/core/domain"
)

// Report is a CSV-ready table.
type Report struct {
	Filename string
	Header   []string
	Rows     [][]string
}

// ReportService assembles the admin CSV exports.
type ReportService interface {
	GlobalReport(ctx context.Context, p domain.Principal, r domain.DateRange) (*Report, error)
	ConcertReport(ctx context.Context, p domain.Principal, concertID string) (*Report, error)
	TranslatorReport(ctx context.Context, p domain.Principal, translatorID string, r domain.DateRange) (*Report, error)
}
