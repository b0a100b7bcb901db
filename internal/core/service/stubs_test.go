package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/concertshift/timesheet/internal/core/domain"
	"github.com/concertshift/timesheet/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func cloneEntry(e *domain.TimeEntry) *domain.TimeEntry {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}

// stubEntryRepo mirrors the store: one open entry per user is enforced
// atomically inside Create, and owner-filtered lookups hide foreign rows.
type stubEntryRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.TimeEntry
	concerts  *stubConcertRepo
	users     *stubUserRepo
	createErr error
	creates   int
	closes    int

	// listOverride, when set, is returned verbatim by List.
	listOverride []*domain.TimeEntry
	lastFilter   ports.TimeEntryFilter
}

func newStubEntryRepo() *stubEntryRepo {
	return &stubEntryRepo{byID: make(map[string]*domain.TimeEntry)}
}

func (r *stubEntryRepo) Create(_ context.Context, e *domain.TimeEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if e.ClockOut == nil {
		for _, existing := range r.byID {
			if existing.UserID == e.UserID && existing.ClockOut == nil {
				return domain.ErrActiveShiftExists
			}
		}
	}
	r.creates++
	r.byID[e.ID] = cloneEntry(e)
	return nil
}

func (r *stubEntryRepo) FindOpenByUser(_ context.Context, userID string) (*domain.TimeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.byID {
		if e.UserID == userID && e.ClockOut == nil {
			return r.joined(e), nil
		}
	}
	return nil, domain.ErrTimeEntryNotFound
}

func (r *stubEntryRepo) FindByIDForUser(_ context.Context, id, userID string) (*domain.TimeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok || e.UserID != userID {
		return nil, domain.ErrTimeEntryNotFound
	}
	return r.joined(e), nil
}

func (r *stubEntryRepo) FindByID(_ context.Context, id string) (*domain.TimeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTimeEntryNotFound
	}
	return r.joined(e), nil
}

func (r *stubEntryRepo) Close(_ context.Context, id, userID string, clockOut time.Time, raw, rounded float64) (*domain.TimeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok || e.UserID != userID {
		return nil, domain.ErrTimeEntryNotFound
	}
	if e.ClockOut != nil {
		return nil, domain.ErrEntryAlreadyClosed
	}
	r.closes++
	e.ClockOut = &clockOut
	e.RawHours = &raw
	e.RoundedHours = &rounded
	e.UpdatedAt = time.Now().UTC()
	return r.joined(e), nil
}

func (r *stubEntryRepo) Update(_ context.Context, e *domain.TimeEntry, lastUpdated time.Time) (*domain.TimeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[e.ID]
	if !ok {
		return nil, domain.ErrTimeEntryNotFound
	}
	if !stored.UpdatedAt.Equal(lastUpdated) {
		return nil, domain.ErrEntryModified
	}
	r.byID[e.ID] = cloneEntry(e)
	return r.joined(e), nil
}

func (r *stubEntryRepo) DeleteForUser(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok || e.UserID != userID {
		return domain.ErrTimeEntryNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubEntryRepo) List(_ context.Context, f ports.TimeEntryFilter) ([]*domain.TimeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = f
	if r.listOverride != nil {
		out := make([]*domain.TimeEntry, len(r.listOverride))
		for i, e := range r.listOverride {
			out[i] = cloneEntry(e)
		}
		return out, nil
	}

	var out []*domain.TimeEntry
	for _, e := range r.byID {
		if f.UserID != "" && e.UserID != f.UserID {
			continue
		}
		if f.ConcertID != "" && e.ConcertID != f.ConcertID {
			continue
		}
		if f.ClosedOnly && e.ClockOut == nil {
			continue
		}
		if !f.Range.Contains(e.ClockIn) {
			continue
		}
		out = append(out, r.joined(e))
	}
	sort.Slice(out, func(i, j int) bool {
		if f.Ascending {
			return out[i].ClockIn.Before(out[j].ClockIn)
		}
		return out[i].ClockIn.After(out[j].ClockIn)
	})
	return out, nil
}

func (r *stubEntryRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func (r *stubEntryRepo) openCount(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.byID {
		if e.UserID == userID && e.ClockOut == nil {
			n++
		}
	}
	return n
}

// joined returns a copy of e with concert and user summaries attached.
func (r *stubEntryRepo) joined(e *domain.TimeEntry) *domain.TimeEntry {
	c := cloneEntry(e)
	if r.concerts != nil {
		if concert, ok := r.concerts.byID[e.ConcertID]; ok {
			c.Concert = &domain.ConcertSummary{ID: concert.ID, Name: concert.Name}
		}
	}
	if r.users != nil {
		if u, ok := r.users.byID[e.UserID]; ok {
			c.User = &domain.UserSummary{Name: u.Name, Email: u.Email}
		}
	}
	return c
}

type stubConcertRepo struct {
	byID      map[string]*domain.Concert
	createErr error
}

func newStubConcertRepo(concerts ...*domain.Concert) *stubConcertRepo {
	r := &stubConcertRepo{byID: make(map[string]*domain.Concert)}
	for _, c := range concerts {
		r.byID[c.ID] = c
	}
	return r
}

func (r *stubConcertRepo) Create(_ context.Context, c *domain.Concert) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubConcertRepo) FindByID(_ context.Context, id string) (*domain.Concert, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrConcertNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubConcertRepo) List(_ context.Context, activeOnly bool) ([]*domain.Concert, error) {
	var out []*domain.Concert
	for _, c := range r.byID {
		if activeOnly && !c.IsActive {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubConcertRepo) Update(_ context.Context, id string, upd ports.ConcertUpdate) (*domain.Concert, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrConcertNotFound
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.IsActive != nil {
		c.IsActive = *upd.IsActive
	}
	clone := *c
	return &clone, nil
}

type stubUserRepo struct {
	byID map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{byID: make(map[string]*domain.User)}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.byID[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.byID {
		if u.Role == role {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubUserRepo) DeleteByRole(_ context.Context, id string, role domain.Role) error {
	u, ok := r.byID[id]
	if !ok || u.Role != role {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

// stubLocker is a process-local ShiftLocker.
type stubLocker struct {
	mu   sync.Mutex
	held map[string]bool
	err  error
}

func newStubLocker() *stubLocker {
	return &stubLocker{held: make(map[string]bool)}
}

func (l *stubLocker) Acquire(_ context.Context, userID string) (func(), bool, error) {
	if l.err != nil {
		return nil, false, l.err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[userID] {
		return nil, false, nil
	}
	l.held[userID] = true
	return func() {
		l.mu.Lock()
		delete(l.held, userID)
		l.mu.Unlock()
	}, true, nil
}

type stubAuditSink struct {
	mu     sync.Mutex
	events []domain.ShiftEvent
}

func (s *stubAuditSink) Publish(ev domain.ShiftEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *stubAuditSink) actions() []domain.ShiftAction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ShiftAction, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Action
	}
	return out
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

var (
	adminPrincipal = domain.Principal{UserID: "admin-1", Role: domain.RoleAdmin, Name: "Ada Admin", Email: "ada@example.com"}
	alice          = domain.Principal{UserID: "user-alice", Role: domain.RoleTranslator, Name: "Alice", Email: "alice@example.com"}
	bob            = domain.Principal{UserID: "user-bob", Role: domain.RoleTranslator, Name: "Bob", Email: "bob@example.com"}
)

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func activeConcert(id, name string) *domain.Concert {
	return &domain.Concert{ID: id, Name: name, IsActive: true, CreatedAt: mustTime("2024-01-01T00:00:00Z")}
}
