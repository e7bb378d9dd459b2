package service

import (
	"context"
	"time"

	"github.com/spec-kit/shift-roster/internal/auth"
	"github.com/spec-kit/shift-roster/internal/domain"
	"github.com/spec-kit/shift-roster/internal/repository"
	apperrors "github.com/spec-kit/shift-roster/pkg/util/errorutil"
)

// AnalyticsService aggregates counts across the ledgers.
type AnalyticsService struct {
	users    repository.UserRepository
	shifts   repository.ShiftRepository
	requests repository.RequestRepository
	location *time.Location
	now      func() time.Time
}

// AnalyticsDependencies bundles collaborators for the analytics service.
type AnalyticsDependencies struct {
	UserRepo    repository.UserRepository
	ShiftRepo   repository.ShiftRepository
	RequestRepo repository.RequestRepository
	Location    *time.Location
	Clock       func() time.Time
}

// NewAnalyticsService builds the service. Location decides which calendar
// day counts as today; it defaults to UTC.
func NewAnalyticsService(deps AnalyticsDependencies) *AnalyticsService {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &AnalyticsService{
		users:    deps.UserRepo,
		shifts:   deps.ShiftRepo,
		requests: deps.RequestRepo,
		location: loc,
		now:      clock,
	}
}

// Dashboard returns the manager dashboard counters.
func (s *AnalyticsService) Dashboard(ctx context.Context, actor auth.Actor) (*domain.Dashboard, error) {
	if err := auth.Authorize(actor, auth.OpViewDashboard, ""); err != nil {
		return nil, err
	}

	employeeRole := domain.RoleEmployee
	totalEmployees, err := s.users.Count(ctx, repository.UserFilter{Role: &employeeRole})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	totalShifts, err := s.shifts.Count(ctx, repository.ShiftFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	pending := domain.RequestStatusPending
	pendingRequests, err := s.requests.Count(ctx, repository.RequestFilter{Status: &pending})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	today := domain.CalendarDate(s.now().In(s.location))
	todayFilter := repository.ShiftFilter{DateFrom: &today, DateTo: &today}
	todayShifts, err := s.shifts.Count(ctx, todayFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	counts := make(map[domain.ShiftStatus]int64, 3)
	for _, status := range []domain.ShiftStatus{domain.ShiftStatusOnDuty, domain.ShiftStatusLate, domain.ShiftStatusAbsent} {
		status := status
		filter := todayFilter
		filter.Status = &status
		n, err := s.shifts.Count(ctx, filter)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		counts[status] = n
	}

	return &domain.Dashboard{
		TotalEmployees:  totalEmployees,
		TotalShifts:     totalShifts,
		PendingRequests: pendingRequests,
		TodayShifts:     todayShifts,
		TodayStatus: domain.TodayStatus{
			OnDuty: counts[domain.ShiftStatusOnDuty],
			Late:   counts[domain.ShiftStatusLate],
			Absent: counts[domain.ShiftStatusAbsent],
		},
	}, nil
}
