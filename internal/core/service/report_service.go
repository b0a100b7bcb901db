package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/concertshift/timesheet/internal/core/domain"
	"github.com/concertshift/timesheet/internal/core/ports"
)

const (
	reportDateLayout     = "01/02/2006"
	reportTimeLayout     = "3:04 PM"
	reportDateTimeLayout = "01/02/2006, 3:04:05 PM"
	filenameDateLayout   = "2006-01-02"
)

var (
	globalReportHeader     = []string{"Translator", "Email", "Date", "Shift Type", "Clock In", "Clock Out", "Raw Hours", "Rounded Hours", "Status"}
	concertReportHeader    = []string{"Translator", "Email", "Clock In", "Clock Out", "Hours", "Shift Type"}
	translatorReportHeader = []string{"Concert", "Clock In", "Clock Out", "Hours", "Shift Type"}
)

// ReportService assembles the admin CSV exports. Only closed entries are ever
// reported, ordered by clock-in ascending.
type ReportService struct {
	entries  ports.TimeEntryRepository
	concerts ports.ConcertRepository
	users    ports.UserRepository
	loc      *time.Location
	logger   zerolog.Logger
}

// NewReportService renders times in loc (UTC when nil).
func NewReportService(
	entries ports.TimeEntryRepository,
	concerts ports.ConcertRepository,
	users ports.UserRepository,
	loc *time.Location,
	logger zerolog.Logger,
) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{entries: entries, concerts: concerts, users: users, loc: loc, logger: logger}
}

// GlobalReport covers every translator's closed entries with clock-in between
// the start of r.From and the last instant of r.To.
func (s *ReportService) GlobalReport(ctx context.Context, p domain.Principal, r domain.DateRange) (*ports.Report, error) {
	if err := domain.Authorize(p, domain.OpExportReports, ""); err != nil {
		return nil, err
	}
	if err := requireRange(r, s.loc); err != nil {
		return nil, err
	}

	entries, err := s.closedEntries(ctx, ports.TimeEntryFilter{Range: r.InclusiveDays(s.loc)})
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		name, email := userColumns(e)
		clockIn := e.ClockIn.In(s.loc)
		rows = append(rows, []string{
			name,
			email,
			clockIn.Format(reportDateLayout),
			string(e.ShiftType),
			clockIn.Format(reportTimeLayout),
			s.formatTime(e.ClockOut, reportTimeLayout),
			formatHours(e.RawHours),
			formatHours(e.RoundedHours),
			editedLabel(e.Edited),
		})
	}

	s.logger.Info().Int("rows", len(rows)).Msg("global report generated")
	return &ports.Report{
		Filename: fmt.Sprintf("timesheet-report-%s-to-%s.csv", r.From.In(s.loc).Format(filenameDateLayout), r.To.In(s.loc).Format(filenameDateLayout)),
		Header:   globalReportHeader,
		Rows:     rows,
	}, nil
}

// ConcertReport covers all closed entries booked against one concert.
func (s *ReportService) ConcertReport(ctx context.Context, p domain.Principal, concertID string) (*ports.Report, error) {
	if err := domain.Authorize(p, domain.OpExportReports, ""); err != nil {
		return nil, err
	}
	concert, err := s.concerts.FindByID(ctx, concertID)
	if err != nil {
		return nil, err
	}

	entries, err := s.closedEntries(ctx, ports.TimeEntryFilter{ConcertID: concert.ID})
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		name, email := userColumns(e)
		if name == "" {
			name = "Unknown"
		}
		rows = append(rows, []string{
			name,
			email,
			e.ClockIn.In(s.loc).Format(reportDateTimeLayout),
			s.formatTime(e.ClockOut, reportDateTimeLayout),
			formatHours(e.RoundedHours),
			string(e.ShiftType),
		})
	}

	s.logger.Info().Str("concert_id", concert.ID).Int("rows", len(rows)).Msg("concert report generated")
	return &ports.Report{
		Filename: fmt.Sprintf("concert-%s-report.csv", concert.ID),
		Header:   concertReportHeader,
		Rows:     rows,
	}, nil
}

// TranslatorReport covers one translator's closed entries in r.
func (s *ReportService) TranslatorReport(ctx context.Context, p domain.Principal, translatorID string, r domain.DateRange) (*ports.Report, error) {
	if err := domain.Authorize(p, domain.OpExportReports, ""); err != nil {
		return nil, err
	}
	if err := requireRange(r, s.loc); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, translatorID)
	if err != nil {
		return nil, err
	}

	entries, err := s.closedEntries(ctx, ports.TimeEntryFilter{
		UserID: user.ID,
		Range:  r.InclusiveDays(s.loc),
	})
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		concertName := ""
		if e.Concert != nil {
			concertName = e.Concert.Name
		}
		rows = append(rows, []string{
			concertName,
			e.ClockIn.In(s.loc).Format(reportDateTimeLayout),
			s.formatTime(e.ClockOut, reportDateTimeLayout),
			formatHours(e.RoundedHours),
			string(e.ShiftType),
		})
	}

	s.logger.Info().Str("user_id", user.ID).Int("rows", len(rows)).Msg("translator report generated")
	return &ports.Report{
		Filename: fmt.Sprintf("translator-%s-%s-to-%s.csv", user.ID, r.From.In(s.loc).Format(filenameDateLayout), r.To.In(s.loc).Format(filenameDateLayout)),
		Header:   translatorReportHeader,
		Rows:     rows,
	}, nil
}

// closedEntries loads entries matching f, drops any still open and orders the
// rest by clock-in, then id.
func (s *ReportService) closedEntries(ctx context.Context, f ports.TimeEntryFilter) ([]*domain.TimeEntry, error) {
	f.ClosedOnly = true
	f.Ascending = true
	entries, err := s.entries.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("load report entries: %w", err)
	}

	closed := entries[:0]
	for _, e := range entries {
		if e.ClockOut != nil {
			closed = append(closed, e)
		}
	}
	sort.SliceStable(closed, func(i, j int) bool {
		if !closed[i].ClockIn.Equal(closed[j].ClockIn) {
			return closed[i].ClockIn.Before(closed[j].ClockIn)
		}
		return closed[i].ID < closed[j].ID
	})
	return closed, nil
}

func (s *ReportService) formatTime(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.In(s.loc).Format(layout)
}

func requireRange(r domain.DateRange, loc *time.Location) error {
	verr := &domain.ValidationError{}
	if r.From.IsZero() {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "start", Message: "is required"})
	}
	if r.To.IsZero() {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "end", Message: "is required"})
	}
	if len(verr.Fields) == 0 && r.InclusiveDays(loc).To.Before(r.From) {
		verr.Fields = append(verr.Fields, domain.FieldError{Field: "end", Message: "must not be before start"})
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func userColumns(e *domain.TimeEntry) (string, string) {
	if e.User == nil {
		return "", ""
	}
	return e.User.Name, e.User.Email
}

// formatHours renders hours with two decimals; a missing value stays empty so
// it is never mistaken for zero hours worked.
func formatHours(h *float64) string {
	if h == nil {
		return ""
	}
	return strconv.FormatFloat(*h, 'f', 2, 64)
}

func editedLabel(edited bool) string {
	if edited {
		return "Edited"
	}
	return "Original"
}
