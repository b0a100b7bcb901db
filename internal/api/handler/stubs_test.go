package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/concertshift/timesheet/internal/api/middleware"
	"github.com/concertshift/timesheet/internal/core/domain"
	"github.com/concertshift/timesheet/internal/core/ports"
)

var (
	admin      = domain.Principal{UserID: "admin-1", Role: domain.RoleAdmin, Email: "admin@example.com"}
	translator = domain.Principal{UserID: "user-alice", Role: domain.RoleTranslator, Email: "alice@example.com"}
)

// newContext builds an echo context for a request made by p. A zero principal
// leaves the request unauthenticated.
func newContext(t *testing.T, method, target, body string, p domain.Principal) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if p.Authenticated() {
		c.Set(middleware.PrincipalKey, p)
	}
	return c, rec
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return ts
}

func hours(h float64) *float64 { return &h }

type stubAuthService struct {
	registerFn func(ctx context.Context, name, email, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, name, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

type stubShiftService struct {
	openFn    func(p domain.Principal, in ports.OpenShiftInput) (*domain.TimeEntry, error)
	closeFn   func(p domain.Principal, id string, clockOut time.Time) (*domain.TimeEntry, error)
	retroFn   func(p domain.Principal, in ports.RetroactiveShiftInput) (*domain.TimeEntry, error)
	activeFn  func(p domain.Principal) (*domain.TimeEntry, error)
	listOwnFn func(p domain.Principal, r domain.DateRange) ([]*domain.TimeEntry, error)
	deleteFn  func(p domain.Principal, id string) error
	listAllFn func(p domain.Principal, r domain.DateRange) ([]*domain.TimeEntry, error)
	editFn    func(p domain.Principal, id string, in ports.EditEntryInput) (*domain.TimeEntry, error)
}

func (s *stubShiftService) OpenShift(_ context.Context, p domain.Principal, in ports.OpenShiftInput) (*domain.TimeEntry, error) {
	return s.openFn(p, in)
}

func (s *stubShiftService) CloseShift(_ context.Context, p domain.Principal, id string, clockOut time.Time) (*domain.TimeEntry, error) {
	return s.closeFn(p, id, clockOut)
}

func (s *stubShiftService) CreateRetroactiveShift(_ context.Context, p domain.Principal, in ports.RetroactiveShiftInput) (*domain.TimeEntry, error) {
	return s.retroFn(p, in)
}

func (s *stubShiftService) ActiveShift(_ context.Context, p domain.Principal) (*domain.TimeEntry, error) {
	return s.activeFn(p)
}

func (s *stubShiftService) ListOwnEntries(_ context.Context, p domain.Principal, r domain.DateRange) ([]*domain.TimeEntry, error) {
	return s.listOwnFn(p, r)
}

func (s *stubShiftService) DeleteOwnEntry(_ context.Context, p domain.Principal, id string) error {
	return s.deleteFn(p, id)
}

func (s *stubShiftService) ListAllEntries(_ context.Context, p domain.Principal, r domain.DateRange) ([]*domain.TimeEntry, error) {
	return s.listAllFn(p, r)
}

func (s *stubShiftService) EditEntry(_ context.Context, p domain.Principal, id string, in ports.EditEntryInput) (*domain.TimeEntry, error) {
	return s.editFn(p, id, in)
}

type stubConcertService struct {
	createFn func(p domain.Principal, name string, isActive bool) (*domain.Concert, error)
	listFn   func(p domain.Principal, activeOnly bool) ([]*domain.Concert, error)
	updateFn func(p domain.Principal, id string, upd ports.ConcertUpdate) (*domain.Concert, error)
}

func (s *stubConcertService) CreateConcert(_ context.Context, p domain.Principal, name string, isActive bool) (*domain.Concert, error) {
	return s.createFn(p, name, isActive)
}

func (s *stubConcertService) ListConcerts(_ context.Context, p domain.Principal, activeOnly bool) ([]*domain.Concert, error) {
	return s.listFn(p, activeOnly)
}

func (s *stubConcertService) SetConcertActive(_ context.Context, p domain.Principal, id string, isActive bool) (*domain.Concert, error) {
	return s.updateFn(p, id, ports.ConcertUpdate{IsActive: &isActive})
}

func (s *stubConcertService) UpdateConcert(_ context.Context, p domain.Principal, id string, upd ports.ConcertUpdate) (*domain.Concert, error) {
	return s.updateFn(p, id, upd)
}

type stubTranslatorService struct {
	createFn func(p domain.Principal, in ports.CreateTranslatorInput) (*domain.User, error)
	listFn   func(p domain.Principal) ([]*domain.User, error)
	deleteFn func(p domain.Principal, id string) error
}

func (s *stubTranslatorService) CreateTranslator(_ context.Context, p domain.Principal, in ports.CreateTranslatorInput) (*domain.User, error) {
	return s.createFn(p, in)
}

func (s *stubTranslatorService) ListTranslators(_ context.Context, p domain.Principal) ([]*domain.User, error) {
	return s.listFn(p)
}

func (s *stubTranslatorService) DeleteTranslator(_ context.Context, p domain.Principal, id string) error {
	return s.deleteFn(p, id)
}

type stubReportService struct {
	globalFn     func(p domain.Principal, r domain.DateRange) (*ports.Report, error)
	concertFn    func(p domain.Principal, id string) (*ports.Report, error)
	translatorFn func(p domain.Principal, id string, r domain.DateRange) (*ports.Report, error)
}

func (s *stubReportService) GlobalReport(_ context.Context, p domain.Principal, r domain.DateRange) (*ports.Report, error) {
	return s.globalFn(p, r)
}

func (s *stubReportService) ConcertReport(_ context.Context, p domain.Principal, id string) (*ports.Report, error) {
	return s.concertFn(p, id)
}

func (s *stubReportService) TranslatorReport(_ context.Context, p domain.Principal, id string, r domain.DateRange) (*ports.Report, error) {
	return s.translatorFn(p, id, r)
}
