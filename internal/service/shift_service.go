package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shift-roster/internal/auth"
	"github.com/spec-kit/shift-roster/internal/domain"
	"github.com/spec-kit/shift-roster/internal/events"
	"github.com/spec-kit/shift-roster/internal/repository"
	apperrors "github.com/spec-kit/shift-roster/pkg/util/errorutil"
)

// ShiftService coordinates the shift ledger.
type ShiftService struct {
	shifts             repository.ShiftRepository
	users              repository.UserRepository
	dispatcher         events.Dispatcher
	enforceTransitions bool
}

// ShiftDependencies bundles repositories for shift service.
type ShiftDependencies struct {
	ShiftRepo          repository.ShiftRepository
	UserRepo           repository.UserRepository
	Dispatcher         events.Dispatcher
	EnforceTransitions bool
}

// ShiftCreateInput describes shift creation payload.
type ShiftCreateInput struct {
	EmployeeID string
	Date       string
	StartTime  string
	EndTime    string
	Type       domain.ShiftType
	Location   *string
	Notes      *string
}

// ShiftQuery describes listing filters.
type ShiftQuery struct {
	DateFrom   *time.Time
	DateTo     *time.Time
	EmployeeID *string
	Status     *domain.ShiftStatus
}

// NewShiftService constructs the service.
func NewShiftService(deps ShiftDependencies) *ShiftService {
	return &ShiftService{
		shifts:             deps.ShiftRepo,
		users:              deps.UserRepo,
		dispatcher:         deps.Dispatcher,
		enforceTransitions: deps.EnforceTransitions,
	}
}

// CreateShift schedules a shift for an employee. Managers only.
func (s *ShiftService) CreateShift(ctx context.Context, actor auth.Actor, input ShiftCreateInput) (*domain.Shift, error) {
	if err := auth.Authorize(actor, auth.OpCreateShift, ""); err != nil {
		return nil, err
	}

	shift, err := buildShift(input)
	if err != nil {
		return nil, err
	}

	employee, err := s.users.GetByID(ctx, shift.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"employee_id": shift.EmployeeID})
		}
		return nil, apperrors.MapError(err)
	}

	if err := s.shifts.Create(ctx, shift); err != nil {
		return nil, apperrors.MapError(err)
	}
	shift.Employee = employee.Snapshot()

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventShiftCreated,
		ResourceID: shift.ID,
		Actor:      eventActor(actor),
		Payload: events.ShiftCreatedPayload{
			EmployeeID: shift.EmployeeID,
			Date:       shift.Date.Format(domain.DateLayout),
			ShiftType:  shift.Type,
		},
	})
	return shift, nil
}

// ListShifts returns shifts ordered by date. Employees only ever see their
// own shifts; the restriction is part of the query, not a post-filter.
func (s *ShiftService) ListShifts(ctx context.Context, actor auth.Actor, query ShiftQuery) ([]domain.Shift, error) {
	if err := auth.Authorize(actor, auth.OpViewShifts, ""); err != nil {
		return nil, err
	}
	filter := repository.ShiftFilter{
		DateFrom:   query.DateFrom,
		DateTo:     query.DateTo,
		EmployeeID: query.EmployeeID,
		Status:     query.Status,
	}
	if scope := auth.ScopeEmployeeID(actor); scope != nil {
		filter.EmployeeID = scope
	}

	shifts, err := s.shifts.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.enrich(ctx, shifts); err != nil {
		return nil, err
	}
	return shifts, nil
}

// GetShift returns one shift. Shifts outside an employee's scope are reported
// as not found.
func (s *ShiftService) GetShift(ctx context.Context, actor auth.Actor, id string) (*domain.Shift, error) {
	if err := auth.Authorize(actor, auth.OpViewShifts, ""); err != nil {
		return nil, err
	}
	shift, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if scope := auth.ScopeEmployeeID(actor); scope != nil && shift.EmployeeID != *scope {
		return nil, shiftNotFound(id)
	}
	if err := s.enrichOne(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// UpdateStatus changes the attendance status of a shift. Managers may update
// any shift, employees only their own.
func (s *ShiftService) UpdateStatus(ctx context.Context, actor auth.Actor, id string, status domain.ShiftStatus) (*domain.Shift, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid shift status", map[string]any{"status": status})
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(actor, auth.OpUpdateShiftStatus, current.EmployeeID); err != nil {
		return nil, err
	}
	if s.enforceTransitions && !current.Status.CanTransitionTo(status) {
		return nil, apperrors.NewValidationError("invalid status transition", map[string]any{
			"from": current.Status,
			"to":   status,
		})
	}

	updated, err := s.shifts.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shiftNotFound(id)
		}
		return nil, apperrors.MapError(err)
	}
	if err := s.enrichOne(ctx, updated); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventShiftStatusChanged,
		ResourceID: updated.ID,
		Actor:      eventActor(actor),
		Payload: events.ShiftStatusChangedPayload{
			EmployeeID: updated.EmployeeID,
			OldStatus:  current.Status,
			NewStatus:  updated.Status,
		},
	})
	return updated, nil
}

func (s *ShiftService) load(ctx context.Context, id string) (*domain.Shift, error) {
	shift, err := s.shifts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shiftNotFound(id)
		}
		return nil, apperrors.MapError(err)
	}
	return shift, nil
}

// enrich attaches the owning employee's current public fields to each shift.
func (s *ShiftService) enrich(ctx context.Context, shifts []domain.Shift) error {
	for i := range shifts {
		if err := s.enrichOne(ctx, &shifts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *ShiftService) enrichOne(ctx context.Context, shift *domain.Shift) error {
	snapshot, err := lookupSnapshot(ctx, s.users, shift.EmployeeID)
	if err != nil {
		return err
	}
	shift.Employee = snapshot
	return nil
}

func buildShift(input ShiftCreateInput) (*domain.Shift, error) {
	employeeID := strings.TrimSpace(input.EmployeeID)
	if employeeID == "" {
		return nil, apperrors.NewValidationError("employee_id required", nil)
	}
	date, err := domain.ParseDate(strings.TrimSpace(input.Date))
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date", map[string]any{"date": input.Date})
	}
	start, err := domain.ParseTimeOfDay(strings.TrimSpace(input.StartTime))
	if err != nil {
		return nil, apperrors.NewValidationError("invalid start_time", map[string]any{"start_time": input.StartTime})
	}
	end, err := domain.ParseTimeOfDay(strings.TrimSpace(input.EndTime))
	if err != nil {
		return nil, apperrors.NewValidationError("invalid end_time", map[string]any{"end_time": input.EndTime})
	}
	shiftType := input.Type
	if shiftType == "" {
		shiftType = domain.ShiftTypeMorning
	}
	if !shiftType.Valid() {
		return nil, apperrors.NewValidationError("invalid shift_type", map[string]any{"shift_type": input.Type})
	}

	return &domain.Shift{
		EmployeeID: employeeID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		Type:       shiftType,
		Location:   trimOptional(input.Location),
		Notes:      trimOptional(input.Notes),
		Status:     domain.ShiftStatusScheduled,
	}, nil
}

// lookupSnapshot reads the employee at call time. A missing user yields a
// nil snapshot rather than an error.
func lookupSnapshot(ctx context.Context, users repository.UserRepository, id string) (*domain.EmployeeSnapshot, error) {
	user, err := users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.MapError(err)
	}
	return user.Snapshot(), nil
}

func trimOptional(val *string) *string {
	if val == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*val)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func shiftNotFound(id string) error {
	return apperrors.NewNotFound("shift", map[string]any{"shift_id": id})
}
