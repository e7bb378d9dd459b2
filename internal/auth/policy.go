package auth

import (
	"github.com/spec-kit/shift-roster/internal/domain"
	apperrors "github.com/spec-kit/shift-roster/pkg/util/errorutil"
)

// Operation names an action guarded by the roster policy.
type Operation string

const (
	OpViewShifts        Operation = "shifts:view"
	OpCreateShift       Operation = "shifts:create"
	OpUpdateShiftStatus Operation = "shifts:update_status"
	OpGenerateRoster    Operation = "shifts:generate"
	OpViewRequests      Operation = "requests:view"
	OpCreateRequest     Operation = "requests:create"
	OpResolveRequest    Operation = "requests:resolve"
	OpListEmployees     Operation = "employees:list"
	OpBroadcast         Operation = "messages:broadcast"
	OpViewDashboard     Operation = "analytics:dashboard"
)

var denialMessages = map[Operation]string{
	OpCreateShift:       "only managers can create shifts",
	OpUpdateShiftStatus: "can only update your own shift status",
	OpGenerateRoster:    "only managers can generate rosters",
	OpResolveRequest:    "only managers can resolve requests",
	OpListEmployees:     "only managers can view all employees",
	OpBroadcast:         "only managers can broadcast messages",
	OpViewDashboard:     "only managers can access analytics",
}

// Actor is the authenticated caller as seen by the policy.
type Actor struct {
	ID   string
	Role domain.Role
}

// ActorFromUser builds an Actor from a loaded user.
func ActorFromUser(u *domain.User) Actor {
	if u == nil {
		return Actor{}
	}
	return Actor{ID: u.ID, Role: u.Role}
}

// IsManager reports whether the actor holds the manager role.
func (a Actor) IsManager() bool {
	return a.Role == domain.RoleManager
}

// Authorize decides whether actor may perform op. ownerID is the employee
// owning the target record and is only consulted for ownership rules.
// A nil result means allow; denials are FORBIDDEN domain errors.
func Authorize(actor Actor, op Operation, ownerID string) error {
	if actor.ID == "" {
		return apperrors.NewUnauthorized("could not validate credentials")
	}
	switch op {
	case OpViewShifts, OpViewRequests, OpCreateRequest:
		return nil
	case OpCreateShift, OpGenerateRoster, OpResolveRequest, OpListEmployees, OpBroadcast, OpViewDashboard:
		if actor.IsManager() {
			return nil
		}
	case OpUpdateShiftStatus:
		if actor.IsManager() || ownerID == actor.ID {
			return nil
		}
	default:
		return apperrors.NewForbidden("operation not permitted")
	}
	return apperrors.NewForbidden(denialMessages[op])
}

// ScopeEmployeeID returns the employee id list queries must be narrowed to,
// or nil when the actor may see every record.
func ScopeEmployeeID(actor Actor) *string {
	if actor.IsManager() {
		return nil
	}
	id := actor.ID
	return &id
}
