package service

import (
	"context"

	"github.com/spec-kit/shift-roster/internal/auth"
	"github.com/spec-kit/shift-roster/internal/domain"
	"github.com/spec-kit/shift-roster/internal/repository"
	apperrors "github.com/spec-kit/shift-roster/pkg/util/errorutil"
)

// EmployeeService exposes the employee directory to managers.
type EmployeeService struct {
	users repository.UserRepository
}

// NewEmployeeService constructs the service.
func NewEmployeeService(users repository.UserRepository) *EmployeeService {
	return &EmployeeService{users: users}
}

// ListEmployees returns every user with the employee role.
func (s *EmployeeService) ListEmployees(ctx context.Context, actor auth.Actor) ([]domain.User, error) {
	if err := auth.Authorize(actor, auth.OpListEmployees, ""); err != nil {
		return nil, err
	}
	role := domain.RoleEmployee
	users, err := s.users.List(ctx, repository.UserFilter{Role: &role})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}
