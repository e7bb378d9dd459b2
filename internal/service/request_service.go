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

const defaultLeaveType = "vacation"

// RequestService manages swap and leave requests.
type RequestService struct {
	requests   repository.RequestRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// RequestDependencies bundles collaborators for the request service.
type RequestDependencies struct {
	RequestRepo repository.RequestRepository
	UserRepo    repository.UserRepository
	Dispatcher  events.Dispatcher
}

// SwapInput describes a swap request. The requester is always the caller.
type SwapInput struct {
	TargetEmployeeID string
	MyShiftDate      string
	TargetShiftDate  string
	Reason           *string
}

// LeaveInput describes a leave request. The requester is always the caller.
type LeaveInput struct {
	StartDate string
	EndDate   string
	LeaveType string
	Reason    *string
}

// RequestQuery filters request listings.
type RequestQuery struct {
	Status *domain.RequestStatus
	Type   *domain.RequestType
}

// NewRequestService wires the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	return &RequestService{
		requests:   deps.RequestRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateSwap files a pending swap request on behalf of the actor.
func (s *RequestService) CreateSwap(ctx context.Context, actor auth.Actor, input SwapInput) (*domain.Request, error) {
	if err := auth.Authorize(actor, auth.OpCreateRequest, ""); err != nil {
		return nil, err
	}

	target := strings.TrimSpace(input.TargetEmployeeID)
	if target == "" {
		return nil, apperrors.NewValidationError("target_employee_id required", nil)
	}
	if target == actor.ID {
		return nil, apperrors.NewValidationError("cannot swap with yourself", nil)
	}
	myDate, err := parseRequestDate("my_shift_date", input.MyShiftDate)
	if err != nil {
		return nil, err
	}
	targetDate, err := parseRequestDate("target_shift_date", input.TargetShiftDate)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, target); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee", map[string]any{"employee_id": target})
		}
		return nil, apperrors.MapError(err)
	}

	req := &domain.Request{
		EmployeeID: actor.ID,
		Type:       domain.RequestTypeSwap,
		Status:     domain.RequestStatusPending,
		Reason:     trimOptional(input.Reason),
		Swap: &domain.SwapDetails{
			TargetEmployeeID: target,
			MyShiftDate:      myDate,
			TargetShiftDate:  targetDate,
		},
	}
	return s.create(ctx, actor, req)
}

// CreateLeave files a pending leave request on behalf of the actor.
func (s *RequestService) CreateLeave(ctx context.Context, actor auth.Actor, input LeaveInput) (*domain.Request, error) {
	if err := auth.Authorize(actor, auth.OpCreateRequest, ""); err != nil {
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
		return nil, apperrors.NewValidationError("end_date must not be before start_date", map[string]any{
			"start_date": input.StartDate,
			"end_date":   input.EndDate,
		})
	}
	leaveType := strings.ToLower(strings.TrimSpace(input.LeaveType))
	if leaveType == "" {
		leaveType = defaultLeaveType
	}

	req := &domain.Request{
		EmployeeID: actor.ID,
		Type:       domain.RequestTypeLeave,
		Status:     domain.RequestStatusPending,
		Reason:     trimOptional(input.Reason),
		Leave: &domain.LeaveDetails{
			StartDate: start,
			EndDate:   end,
			LeaveType: leaveType,
		},
	}
	return s.create(ctx, actor, req)
}

// ListPending returns pending requests, newest first.
func (s *RequestService) ListPending(ctx context.Context, actor auth.Actor) ([]domain.Request, error) {
	pending := domain.RequestStatusPending
	return s.List(ctx, actor, RequestQuery{Status: &pending})
}

// List returns requests matching query. Employees only see their own.
func (s *RequestService) List(ctx context.Context, actor auth.Actor, query RequestQuery) ([]domain.Request, error) {
	if err := auth.Authorize(actor, auth.OpViewRequests, ""); err != nil {
		return nil, err
	}
	if query.Status != nil && !query.Status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": *query.Status})
	}
	if query.Type != nil && !query.Type.Valid() {
		return nil, apperrors.NewValidationError("invalid request_type", map[string]any{"request_type": *query.Type})
	}

	filter := repository.RequestFilter{
		EmployeeID: auth.ScopeEmployeeID(actor),
		Status:     query.Status,
		Type:       query.Type,
	}
	requests, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	for i := range requests {
		snapshot, err := lookupSnapshot(ctx, s.users, requests[i].EmployeeID)
		if err != nil {
			return nil, err
		}
		requests[i].Employee = snapshot
	}
	return requests, nil
}

// Resolve records a manager decision. A second decision overwrites the first.
func (s *RequestService) Resolve(ctx context.Context, actor auth.Actor, id string, decision domain.RequestStatus, notes *string) (*domain.Request, error) {
	if err := auth.Authorize(actor, auth.OpResolveRequest, ""); err != nil {
		return nil, err
	}
	if !decision.IsDecision() {
		return nil, apperrors.NewValidationError("invalid decision", map[string]any{"status": decision})
	}

	current, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, requestNotFound(id)
		}
		return nil, apperrors.MapError(err)
	}

	updated, err := s.requests.Resolve(ctx, id, repository.Resolution{
		Status:    decision,
		ManagerID: actor.ID,
		Notes:     trimOptional(notes),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, requestNotFound(id)
		}
		return nil, apperrors.MapError(err)
	}
	if updated.Employee, err = lookupSnapshot(ctx, s.users, updated.EmployeeID); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventRequestResolved,
		ResourceID: updated.ID,
		Actor:      eventActor(actor),
		Payload: events.RequestResolvedPayload{
			EmployeeID: updated.EmployeeID,
			OldStatus:  current.Status,
			NewStatus:  updated.Status,
			ManagerID:  actor.ID,
		},
	})
	return updated, nil
}

func (s *RequestService) create(ctx context.Context, actor auth.Actor, req *domain.Request) (*domain.Request, error) {
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, apperrors.MapError(err)
	}
	snapshot, err := lookupSnapshot(ctx, s.users, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	req.Employee = snapshot

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventRequestCreated,
		ResourceID: req.ID,
		Actor:      eventActor(actor),
		Payload: events.RequestCreatedPayload{
			EmployeeID:  req.EmployeeID,
			RequestType: req.Type,
		},
	})
	return req, nil
}

func parseRequestDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, apperrors.NewValidationError(field+" required", nil)
	}
	date, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("invalid "+field, map[string]any{field: value})
	}
	return date, nil
}

func requestNotFound(id string) error {
	return apperrors.NewNotFound("request", map[string]any{"request_id": id})
}
