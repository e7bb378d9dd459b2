package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/shift-roster/internal/api/http/handlers"
	"github.com/spec-kit/shift-roster/internal/auth"
	"github.com/spec-kit/shift-roster/internal/config"
	"github.com/spec-kit/shift-roster/internal/domain"
	"github.com/spec-kit/shift-roster/internal/observability"
	"github.com/spec-kit/shift-roster/internal/repository"
	"github.com/spec-kit/shift-roster/internal/service"
)

// ── In-memory repositories ──

type memUsers struct{ users map[string]*domain.User }

func (m *memUsers) Create(_ context.Context, u *domain.User) error {
	u.ID = fmt.Sprintf("user-%d", len(m.users)+1)
	m.users[u.ID] = u
	return nil
}

func (m *memUsers) Update(_ context.Context, id string, upd repository.UserUpdate) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	return u, nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUsers) List(_ context.Context, f repository.UserFilter) ([]domain.User, error) {
	var out []domain.User
	for _, u := range m.users {
		if f.Role == nil || u.Role == *f.Role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memUsers) Count(ctx context.Context, f repository.UserFilter) (int64, error) {
	l, _ := m.List(ctx, f)
	return int64(len(l)), nil
}

type memShifts struct{ shifts map[string]*domain.Shift }

func (m *memShifts) Create(_ context.Context, s *domain.Shift) error {
	s.ID = fmt.Sprintf("shift-%d", len(m.shifts)+1)
	cp := *s
	m.shifts[s.ID] = &cp
	return nil
}

func (m *memShifts) GetByID(_ context.Context, id string) (*domain.Shift, error) {
	if s, ok := m.shifts[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memShifts) UpdateStatus(_ context.Context, id string, st domain.ShiftStatus) (*domain.Shift, error) {
	s, ok := m.shifts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	s.Status = st
	cp := *s
	return &cp, nil
}

func (m *memShifts) List(_ context.Context, f repository.ShiftFilter) ([]domain.Shift, error) {
	var out []domain.Shift
	for _, s := range m.shifts {
		if f.EmployeeID == nil || s.EmployeeID == *f.EmployeeID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *memShifts) Count(ctx context.Context, f repository.ShiftFilter) (int64, error) {
	l, _ := m.List(ctx, f)
	return int64(len(l)), nil
}

type memRequests struct{ requests map[string]*domain.Request }

func (m *memRequests) Create(_ context.Context, r *domain.Request) error {
	r.ID = fmt.Sprintf("req-%d", len(m.requests)+1)
	cp := *r
	m.requests[r.ID] = &cp
	return nil
}

func (m *memRequests) GetByID(_ context.Context, id string) (*domain.Request, error) {
	if r, ok := m.requests[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memRequests) Resolve(_ context.Context, id string, res repository.Resolution) (*domain.Request, error) {
	r, ok := m.requests[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	r.Status = res.Status
	r.ManagerID = &res.ManagerID
	cp := *r
	return &cp, nil
}

func (m *memRequests) List(_ context.Context, f repository.RequestFilter) ([]domain.Request, error) {
	var out []domain.Request
	for _, r := range m.requests {
		if f.EmployeeID != nil && r.EmployeeID != *f.EmployeeID {
			continue
		}
		if f.Status != nil && r.Status != *f.Status {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (m *memRequests) Count(ctx context.Context, f repository.RequestFilter) (int64, error) {
	l, _ := m.List(ctx, f)
	return int64(len(l)), nil
}

type memMessages struct{ msgs []domain.Broadcast }

func (m *memMessages) Create(_ context.Context, b *domain.Broadcast) error {
	b.ID = fmt.Sprintf("msg-%d", len(m.msgs)+1)
	m.msgs = append(m.msgs, *b)
	return nil
}

func (m *memMessages) ListRecent(_ context.Context, limit int) ([]domain.Broadcast, error) {
	return m.msgs, nil
}

type denyLimiter struct{ calls int }

func (d *denyLimiter) Allow(context.Context, string, int, time.Duration) (bool, error) {
	d.calls++
	return false, nil
}

// ── Harness ──

type testServer struct {
	app    *fiber.App
	tokens *auth.TokenManager
	reqs   *memRequests
}

func newTestServer(t *testing.T, limiter RateLimiter) *testServer {
	t.Helper()
	users := &memUsers{users: map[string]*domain.User{
		"mgr-1": {ID: "mgr-1", Name: "Morgan", Email: "morgan@roster.test", Role: domain.RoleManager, Active: true},
		"emp-1": {ID: "emp-1", Name: "Ada", Email: "ada@roster.test", Role: domain.RoleEmployee, Active: true},
		"emp-2": {ID: "emp-2", Name: "Bo", Email: "bo@roster.test", Role: domain.RoleEmployee, Active: true},
	}}
	shifts := &memShifts{shifts: map[string]*domain.Shift{}}
	requests := &memRequests{requests: map[string]*domain.Request{}}

	cfg := config.Config{Auth: config.AuthConfig{JWTSecret: "router-test", AccessTokenTTLMinutes: 30, BcryptCost: 4}}
	authService := service.NewAuthService(cfg, service.AuthDependencies{UserRepo: users})
	metrics := observability.NewMetrics()

	app := fiber.New()
	RegisterMiddlewares(app, MiddlewareConfig{Logger: zap.NewNop(), Metrics: metrics, Timeout: 5 * time.Second})
	RegisterRoutes(app, RouteConfig{
		Health: handlers.NewHealthHandler("roster", "test", nil, nil, metrics),
		Auth:   handlers.NewAuthHandler(authService),
		Shifts: handlers.NewShiftsHandler(
			service.NewShiftService(service.ShiftDependencies{ShiftRepo: shifts, UserRepo: users, EnforceTransitions: true}),
			service.NewRosterService(users, nil),
		),
		Requests:  handlers.NewRequestsHandler(service.NewRequestService(service.RequestDependencies{RequestRepo: requests, UserRepo: users})),
		Employees: handlers.NewEmployeesHandler(service.NewEmployeeService(users)),
		Messages:  handlers.NewMessagesHandler(service.NewMessageService(&memMessages{}, nil)),
		Analytics: handlers.NewAnalyticsHandler(service.NewAnalyticsService(service.AnalyticsDependencies{
			UserRepo: users, ShiftRepo: shifts, RequestRepo: requests,
		})),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), users),
		LoginLimiter:   limiter,
		LoginAttempts:  5,
		LoginWindow:    time.Minute,
	})
	return &testServer{app: app, tokens: authService.TokenManager(), reqs: requests}
}

func (s *testServer) token(t *testing.T, id string, role domain.Role) string {
	t.Helper()
	tok, _, err := s.tokens.GenerateToken(id, role)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return tok
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
	}
	return resp.StatusCode, env
}

// ── Tests ──

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t, nil)
	for _, path := range []string{"/shifts", "/api/v1/shifts", "/requests/pending", "/auth/profile"} {
		status, env := srv.do(t, "GET", path, "", "")
		if status != fiber.StatusUnauthorized {
			t.Errorf("%s: status = %d", path, status)
			continue
		}
		if env.Error == nil || env.Error.Code != "UNAUTHORIZED" || env.Error.Message != "could not validate credentials" {
			t.Errorf("%s: error = %+v", path, env.Error)
		}
	}

	status, _ := srv.do(t, "GET", "/shifts", "not-a-jwt", "")
	if status != fiber.StatusUnauthorized {
		t.Errorf("garbage token: status = %d", status)
	}
	status, _ = srv.do(t, "GET", "/shifts", srv.token(t, "ghost", domain.RoleManager), "")
	if status != fiber.StatusUnauthorized {
		t.Errorf("unknown subject: status = %d", status)
	}
}

func TestEmployeeCannotCreateShift(t *testing.T) {
	srv := newTestServer(t, nil)
	body := `{"employee_id":"emp-1","date":"2024-03-01","start_time":"09:00","end_time":"17:00"}`

	status, env := srv.do(t, "POST", "/shifts", srv.token(t, "emp-1", domain.RoleEmployee), body)
	if status != fiber.StatusForbidden || env.Error == nil || env.Error.Code != "FORBIDDEN" {
		t.Fatalf("employee create: status=%d error=%+v", status, env.Error)
	}

	status, env = srv.do(t, "POST", "/api/v1/shifts", srv.token(t, "mgr-1", domain.RoleManager), body)
	if status != fiber.StatusCreated {
		t.Fatalf("manager create: status=%d error=%+v", status, env.Error)
	}
	var shift struct {
		Status   string `json:"status"`
		Date     string `json:"date"`
		Employee struct {
			Name string `json:"name"`
		} `json:"employee"`
	}
	if err := json.Unmarshal(env.Data, &shift); err != nil {
		t.Fatalf("decode shift: %v", err)
	}
	if shift.Status != "scheduled" || shift.Date != "2024-03-01" || shift.Employee.Name != "Ada" {
		t.Errorf("shift = %+v", shift)
	}
}

func TestSwapRequestIgnoresSpoofedEmployeeID(t *testing.T) {
	srv := newTestServer(t, nil)
	body := `{"employee_id":"emp-2","target_employee_id":"mgr-1","my_shift_date":"2024-03-01","target_shift_date":"2024-03-02"}`

	status, env := srv.do(t, "POST", "/requests/swap", srv.token(t, "emp-1", domain.RoleEmployee), body)
	if status != fiber.StatusCreated {
		t.Fatalf("status=%d error=%+v", status, env.Error)
	}
	var created struct {
		EmployeeID string `json:"employee_id"`
		Status     string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.EmployeeID != "emp-1" || created.Status != "pending" {
		t.Errorf("created = %+v", created)
	}
	for _, r := range srv.reqs.requests {
		if r.EmployeeID != "emp-1" {
			t.Errorf("stored request owned by %s", r.EmployeeID)
		}
	}
}

func TestManagerOnlyRoutes(t *testing.T) {
	srv := newTestServer(t, nil)
	employee := srv.token(t, "emp-1", domain.RoleEmployee)
	manager := srv.token(t, "mgr-1", domain.RoleManager)

	for _, tc := range []struct{ method, path, body string }{
		{"GET", "/employees", ""},
		{"GET", "/analytics/dashboard", ""},
		{"POST", "/messages/broadcast", `{"message":"hi"}`},
	} {
		if status, _ := srv.do(t, tc.method, tc.path, employee, tc.body); status != fiber.StatusForbidden {
			t.Errorf("employee %s %s: status = %d", tc.method, tc.path, status)
		}
	}

	status, env := srv.do(t, "GET", "/employees", manager, "")
	if status != fiber.StatusOK {
		t.Fatalf("manager employees: status=%d", status)
	}
	var list []map[string]any
	_ = json.Unmarshal(env.Data, &list)
	if len(list) != 2 {
		t.Errorf("employees = %d, want 2", len(list))
	}
}

func TestLoginRateLimited(t *testing.T) {
	limiter := &denyLimiter{}
	srv := newTestServer(t, limiter)

	status, env := srv.do(t, "POST", "/auth/login?email=ada@roster.test&password=whatever", "", "")
	if status != fiber.StatusTooManyRequests || env.Error == nil || env.Error.Code != "RATE_LIMITED" {
		t.Errorf("status=%d error=%+v", status, env.Error)
	}
	if limiter.calls != 1 {
		t.Errorf("limiter calls = %d", limiter.calls)
	}
}

func TestRegisterThenLogin(t *testing.T) {
	srv := newTestServer(t, nil)

	status, env := srv.do(t, "POST", "/auth/register", "", `{"name":"Cy","email":"cy@roster.test","password":"secret1"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("register: status=%d error=%+v", status, env.Error)
	}

	status, env = srv.do(t, "POST", "/auth/login?email=cy@roster.test&password=secret1", "", "")
	if status != fiber.StatusOK {
		t.Fatalf("login: status=%d error=%+v", status, env.Error)
	}
	var result struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(env.Data, &result)
	if result.Token == "" {
		t.Fatal("missing token")
	}

	status, _ = srv.do(t, "GET", "/auth/profile", result.Token, "")
	if status != fiber.StatusOK {
		t.Errorf("profile: status=%d", status)
	}

	status, env = srv.do(t, "POST", "/auth/login", "", `{"email":"cy@roster.test","password":"wrong1"}`)
	if status != fiber.StatusUnauthorized || env.Error.Message != "incorrect email or password" {
		t.Errorf("bad login: status=%d error=%+v", status, env.Error)
	}
}

func TestHealthAndUnknownRoute(t *testing.T) {
	srv := newTestServer(t, nil)
	if status, _ := srv.do(t, "GET", "/health/live", "", ""); status != fiber.StatusOK {
		t.Errorf("live: status = %d", status)
	}
	if status, _ := srv.do(t, "GET", "/health/ready", "", ""); status != fiber.StatusServiceUnavailable {
		t.Errorf("ready without postgres: status = %d", status)
	}
	status, env := srv.do(t, "GET", "/nowhere", "", "")
	if status != fiber.StatusNotFound || env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Errorf("unknown route: status=%d error=%+v", status, env.Error)
	}
}

func TestGenerateRosterConstraintsBody(t *testing.T) {
	srv := newTestServer(t, nil)
	mgr := srv.token(t, "mgr-1", domain.RoleManager)
	cases := []struct {
		name string
		path string
		body string
	}{
		{"bare object with query range", "/shifts/ai-generate?start_date=2024-03-04&end_date=2024-03-05&min_staff_required=1", `{"max_hours":40}`},
		{"wrapped object", "/shifts/ai-generate", `{"start_date":"2024-03-04","end_date":"2024-03-05","min_staff_required":1,"constraints":{"max_hours":40}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, env := srv.do(t, fiber.MethodPost, tc.path, mgr, tc.body)
			if status != fiber.StatusCreated {
				t.Fatalf("status = %d, error = %+v", status, env.Error)
			}
			var draft struct {
				Constraints map[string]any `json:"constraints"`
				Shifts      []any          `json:"shifts"`
			}
			if err := json.Unmarshal(env.Data, &draft); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(draft.Constraints) != 1 || draft.Constraints["max_hours"] != float64(40) {
				t.Errorf("constraints = %v", draft.Constraints)
			}
			if len(draft.Shifts) != 2 {
				t.Errorf("expected 2 draft shifts, got %d", len(draft.Shifts))
			}
		})
	}
}
