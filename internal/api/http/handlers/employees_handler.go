package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-roster/internal/api/dto"
	"github.com/spec-kit/shift-roster/internal/auth"
	"github.com/spec-kit/shift-roster/internal/service"
)

// EmployeesHandler exposes the employee directory.
type EmployeesHandler struct {
	service *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{service: employeeService}
}

// ListEmployees GET /employees.
func (h *EmployeesHandler) ListEmployees(c *fiber.Ctx) error {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		return err
	}
	users, err := h.service.ListEmployees(c.UserContext(), actor)
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
