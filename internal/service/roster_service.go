package service

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/shift-roster/internal/auth"
	"github.com/spec-kit/shift-roster/internal/domain"
	"github.com/spec-kit/shift-roster/internal/repository"
	apperrors "github.com/spec-kit/shift-roster/pkg/util/errorutil"
)

const (
	maxRosterDays       = 93
	draftStartTime      = "09:00:00"
	draftEndTime        = "17:00:00"
	draftLocation       = "Main Office"
	rosterStatusPending = "pending"
)

// RosterService drafts rosters by sampling employees for each day. Drafts
// are returned to the caller and never stored.
type RosterService struct {
	users repository.UserRepository
	now   func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// RosterInput describes the range and staffing of a draft.
type RosterInput struct {
	StartDate        string
	EndDate          string
	MinStaffRequired int
	Constraints      map[string]any
}

// NewRosterService builds the generator. A nil rng seeds from the clock.
func NewRosterService(users repository.UserRepository, rng *rand.Rand) *RosterService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RosterService{users: users, now: time.Now, rng: rng}
}

// Generate drafts MinStaffRequired morning shifts for each day in the range.
func (s *RosterService) Generate(ctx context.Context, actor auth.Actor, input RosterInput) (*domain.RosterDraft, error) {
	if err := auth.Authorize(actor, auth.OpGenerateRoster, ""); err != nil {
		return nil, err
	}
	start, err := parseRequestDate("start_date", input.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseRequestDate("end_date", input.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, apperrors.NewValidationError("end_date must not be before start_date", nil)
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days > maxRosterDays {
		return nil, apperrors.NewValidationError("date range too long", map[string]any{"max_days": maxRosterDays})
	}
	if input.MinStaffRequired < 1 {
		return nil, apperrors.NewValidationError("min_staff_required must be at least 1", nil)
	}

	employeeRole := domain.RoleEmployee
	employees, err := s.users.List(ctx, repository.UserFilter{Role: &employeeRole})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(employees) < input.MinStaffRequired {
		return nil, apperrors.NewValidationError("not enough employees", map[string]any{
			"min_staff_required": input.MinStaffRequired,
			"available":          len(employees),
		})
	}

	now := s.now().UTC()
	shifts := make([]domain.Shift, 0, days*input.MinStaffRequired)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		for _, idx := range s.sample(len(employees), input.MinStaffRequired) {
			employee := employees[idx]
			location := draftLocation
			shifts = append(shifts, domain.Shift{
				EmployeeID: employee.ID,
				Date:       day,
				StartTime:  draftStartTime,
				EndTime:    draftEndTime,
				Type:       domain.ShiftTypeMorning,
				Location:   &location,
				Status:     domain.ShiftStatusScheduled,
				CreatedAt:  now,
				UpdatedAt:  now,
				Employee:   employee.Snapshot(),
			})
		}
	}

	return &domain.RosterDraft{
		ID:          uuid.NewString(),
		ManagerID:   actor.ID,
		StartDate:   start,
		EndDate:     end,
		Constraints: cleanConstraints(input.Constraints),
		Shifts:      shifts,
		Status:      rosterStatusPending,
		CreatedAt:   now,
	}, nil
}

// sample picks k distinct indexes from [0, n).
func (s *RosterService) sample(n, k int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	perm := s.rng.Perm(n)
	return perm[:k]
}

// cleanConstraints drops blank keys and never returns nil.
func cleanConstraints(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		if key := strings.TrimSpace(k); key != "" {
			out[key] = v
		}
	}
	return out
}
