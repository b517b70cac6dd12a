package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"orgcalendar/internal/domain"
)

func testID(n int) string {
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
}

var (
	errStore = errors.New("store unavailable")
	baseTime = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
)

func day(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func ptr[T any](v T) *T { return &v }

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.User
	next      int
	listErr   error
	createErr error
	refCalls  int
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{byID: make(map[string]*domain.User), next: 100}
	for _, u := range users {
		cp := *u
		f.byID[u.ID] = &cp
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	f.next++
	u.ID = testID(f.next)
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.User, 0, len(f.byID))
	for _, u := range f.byID {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeUserRepo) ListActiveByRoles(ctx context.Context, roles []domain.Role) ([]*domain.UserRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.UserRef
	for _, u := range f.byID {
		if u.IsActive && slices.Contains(roles, u.Role) {
			out = append(out, u.Ref())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeUserRepo) ListRefsByIDs(ctx context.Context, ids []string) ([]*domain.UserRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.UserRef
	for _, id := range ids {
		if u, ok := f.byID[id]; ok {
			out = append(out, u.Ref())
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[u.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) stored(id string) *domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id]
}

// fakeEventRepo implements domain.EventRepository for tests.
type fakeEventRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Event
	next      int
	writes    int
	lastQuery domain.EventQuery
	updateErr error
}

func newFakeEventRepo(events ...*domain.Event) *fakeEventRepo {
	f := &fakeEventRepo{byID: make(map[string]*domain.Event), next: 500}
	for _, e := range events {
		cp := *e
		f.byID[e.ID] = &cp
	}
	return f
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	f.next++
	e.ID = testID(f.next)
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context, q domain.EventQuery) ([]*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = q
	var out []*domain.Event
	for _, e := range f.byID {
		if q.PublicOnly && !e.IsPublic {
			continue
		}
		if !q.Dates.Contains(e.Date) {
			continue
		}
		if q.Type != "" && e.Type != q.Type {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	f.writes++
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	f.writes++
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) stored(id string) *domain.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id]
}

// fakeMeetingRepo implements domain.MeetingRepository for tests.
type fakeMeetingRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Meeting
	next      int
	writes    int
	lastQuery domain.MeetingQuery
}

func newFakeMeetingRepo(meetings ...*domain.Meeting) *fakeMeetingRepo {
	f := &fakeMeetingRepo{byID: make(map[string]*domain.Meeting), next: 800}
	for _, m := range meetings {
		cp := *m
		f.byID[m.ID] = &cp
	}
	return f
}

func (f *fakeMeetingRepo) Create(ctx context.Context, m *domain.Meeting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	f.next++
	m.ID = testID(f.next)
	cp := *m
	f.byID[m.ID] = &cp
	return nil
}

func (f *fakeMeetingRepo) GetByID(ctx context.Context, id string) (*domain.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.byID[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeMeetingRepo) List(ctx context.Context, q domain.MeetingQuery) ([]*domain.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = q
	var out []*domain.Meeting
	for _, m := range f.byID {
		if !q.Dates.Contains(m.Date) {
			continue
		}
		if q.Status != "" && m.Status != q.Status {
			continue
		}
		if q.ExcludeStatus != "" && m.Status == q.ExcludeStatus {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (f *fakeMeetingRepo) Update(ctx context.Context, m *domain.Meeting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[m.ID]; !ok {
		return domain.ErrNotFound
	}
	f.writes++
	cp := *m
	f.byID[m.ID] = &cp
	return nil
}

func (f *fakeMeetingRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	f.writes++
	delete(f.byID, id)
	return nil
}

func (f *fakeMeetingRepo) stored(id string) *domain.Meeting {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id]
}

// fakeEmailService implements domain.EmailService and records what it sent.
type fakeEmailService struct {
	mu          sync.Mutex
	welcomes    []*domain.WelcomeEmailData
	invitations []*domain.MeetingInvitationEmailData
	err         error
}

func (f *fakeEmailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.welcomes = append(f.welcomes, data)
	return f.err
}

func (f *fakeEmailService) SendMeetingInvitation(ctx context.Context, data *domain.MeetingInvitationEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invitations = append(f.invitations, data)
	return f.err
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct {
	saltErr error
}

func (f *fakePasswordHasher) GenerateSalt() (string, error) {
	if f.saltErr != nil {
		return "", f.saltErr
	}
	return "salt", nil
}

func (f *fakePasswordHasher) Hash(salt, password string) (string, error) {
	return "hash:" + salt + ":" + password, nil
}

func (f *fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != "hash:"+salt+":"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokens implements domain.TokenIssuer and domain.TokenVerifier.
type fakeTokens struct {
	issueErr error
}

func (f *fakeTokens) Issue(userID string, role domain.Role, expiry time.Duration) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	return "token-" + userID, nil
}

func (f *fakeTokens) Verify(token string) (string, error) {
	const prefix = "token-"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return "", domain.ErrInvalidToken
	}
	return token[len(prefix):], nil
}

// fakeEncoder implements domain.CalendarEncoder and records its input.
type fakeEncoder struct {
	events   []*domain.Event
	meetings []*domain.Meeting
	err      error
}

func (f *fakeEncoder) Encode(events []*domain.Event, meetings []*domain.Meeting) ([]byte, error) {
	f.events, f.meetings = events, meetings
	if f.err != nil {
		return nil, f.err
	}
	return []byte("BEGIN:VCALENDAR"), nil
}

// Fixture principals and users shared across service tests.
var (
	userAlice   = &domain.User{ID: testID(1), Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser, IsActive: true, CreatedAt: baseTime}
	memberBob   = &domain.User{ID: testID(2), Name: "Bob", Email: "bob@example.com", Role: domain.RoleMember, IsActive: true, CreatedAt: baseTime.Add(time.Hour)}
	secretary   = &domain.User{ID: testID(3), Name: "Sam", Email: "sam@example.com", Role: domain.RoleSecretary, IsActive: true, CreatedAt: baseTime.Add(2 * time.Hour)}
	convenor    = &domain.User{ID: testID(4), Name: "Cora", Email: "cora@example.com", Role: domain.RoleConvenor, IsActive: true, CreatedAt: baseTime.Add(3 * time.Hour)}
	retiredDan  = &domain.User{ID: testID(5), Name: "Dan", Email: "dan@example.com", Role: domain.RoleMember, IsActive: false, CreatedAt: baseTime.Add(4 * time.Hour)}
	allFixtures = []*domain.User{userAlice, memberBob, secretary, convenor, retiredDan}
)

func principal(u *domain.User) domain.Principal { return u.Principal() }
