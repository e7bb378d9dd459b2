package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shift-roster/internal/auth"
	"github.com/spec-kit/shift-roster/internal/domain"
	"github.com/spec-kit/shift-roster/internal/events"
	"github.com/spec-kit/shift-roster/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	m.seq++
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", m.seq)
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) Update(_ context.Context, id string, update repository.UserUpdate) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if update.Email != nil {
		for _, other := range m.users {
			if other.ID != id && other.Email == *update.Email {
				return nil, repository.ErrDuplicateEmail
			}
		}
		u.Email = *update.Email
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	u.UpdatedAt = time.Now().UTC()
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	var result []domain.User
	for _, u := range m.users {
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockUserRepo) Count(ctx context.Context, filter repository.UserFilter) (int64, error) {
	list, _ := m.List(ctx, filter)
	return int64(len(list)), nil
}

func (m *mockUserRepo) add(id, name string, role domain.Role) *domain.User {
	u := &domain.User{
		ID:     id,
		Name:   name,
		Email:  id + "@roster.test",
		Role:   role,
		Active: true,
	}
	m.users[id] = u
	return u
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts map[string]*domain.Shift
	seq    int
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[string]*domain.Shift)}
}

func (m *mockShiftRepo) Create(_ context.Context, shift *domain.Shift) error {
	m.seq++
	shift.ID = fmt.Sprintf("shift-%d", m.seq)
	shift.CreatedAt = time.Now().UTC()
	shift.UpdatedAt = shift.CreatedAt
	cp := *shift
	cp.Employee = nil
	m.shifts[shift.ID] = &cp
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*domain.Shift, error) {
	if s, ok := m.shifts[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *mockShiftRepo) UpdateStatus(_ context.Context, id string, status domain.ShiftStatus) (*domain.Shift, error) {
	s, ok := m.shifts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	s.Status = status
	s.UpdatedAt = time.Now().UTC()
	cp := *s
	return &cp, nil
}

func (m *mockShiftRepo) List(_ context.Context, filter repository.ShiftFilter) ([]domain.Shift, error) {
	var result []domain.Shift
	for _, s := range m.shifts {
		if filter.EmployeeID != nil && s.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		if filter.DateFrom != nil && s.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && s.Date.After(*filter.DateTo) {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (m *mockShiftRepo) Count(ctx context.Context, filter repository.ShiftFilter) (int64, error) {
	list, _ := m.List(ctx, filter)
	return int64(len(list)), nil
}

// ── Mock RequestRepository ──

type mockRequestRepo struct {
	requests map[string]*domain.Request
	seq      int
}

func newMockRequestRepo() *mockRequestRepo {
	return &mockRequestRepo{requests: make(map[string]*domain.Request)}
}

func (m *mockRequestRepo) Create(_ context.Context, req *domain.Request) error {
	m.seq++
	req.ID = fmt.Sprintf("req-%d", m.seq)
	// Sequence-based timestamps keep created_at ordering deterministic.
	req.CreatedAt = time.Date(2024, 1, 1, 0, 0, m.seq, 0, time.UTC)
	req.UpdatedAt = req.CreatedAt
	cp := *req
	cp.Employee = nil
	m.requests[req.ID] = &cp
	return nil
}

func (m *mockRequestRepo) GetByID(_ context.Context, id string) (*domain.Request, error) {
	if r, ok := m.requests[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *mockRequestRepo) Resolve(_ context.Context, id string, resolution repository.Resolution) (*domain.Request, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	r.Status = resolution.Status
	managerID := resolution.ManagerID
	r.ManagerID = &managerID
	if resolution.Notes != nil {
		r.ManagerNotes = resolution.Notes
	}
	r.UpdatedAt = r.UpdatedAt.Add(time.Second)
	cp := *r
	return &cp, nil
}

func (m *mockRequestRepo) List(_ context.Context, filter repository.RequestFilter) ([]domain.Request, error) {
	var result []domain.Request
	for _, r := range m.requests {
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.Type != nil && r.Type != *filter.Type {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockRequestRepo) Count(ctx context.Context, filter repository.RequestFilter) (int64, error) {
	list, _ := m.List(ctx, filter)
	return int64(len(list)), nil
}

// ── Mock MessageRepository ──

type mockMessageRepo struct {
	messages  []domain.Broadcast
	lastLimit int
}

func (m *mockMessageRepo) Create(_ context.Context, msg *domain.Broadcast) error {
	msg.ID = fmt.Sprintf("msg-%d", len(m.messages)+1)
	msg.CreatedAt = time.Now().UTC()
	m.messages = append(m.messages, *msg)
	return nil
}

func (m *mockMessageRepo) ListRecent(_ context.Context, limit int) ([]domain.Broadcast, error) {
	m.lastLimit = limit
	var result []domain.Broadcast
	for i := len(m.messages) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, m.messages[i])
	}
	return result, nil
}

// ── Recording dispatcher / publisher ──

type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.published))
	for _, e := range d.published {
		out = append(out, e.Type)
	}
	return out
}

type recordingPublisher struct {
	channel string
	payload []byte
	err     error
}

func (p *recordingPublisher) Publish(_ context.Context, channel string, payload []byte) error {
	p.channel = channel
	p.payload = payload
	return p.err
}

// ── Fixtures ──

func managerActor() auth.Actor { return auth.Actor{ID: "mgr-1", Role: domain.RoleManager} }
func employeeActor() auth.Actor { return auth.Actor{ID: "emp-1", Role: domain.RoleEmployee} }

func seedUsers() *mockUserRepo {
	users := newMockUserRepo()
	users.add("mgr-1", "Morgan Manager", domain.RoleManager)
	users.add("mgr-2", "Mika Manager", domain.RoleManager)
	users.add("emp-1", "Ada Employee", domain.RoleEmployee)
	users.add("emp-2", "Bo Employee", domain.RoleEmployee)
	return users
}
