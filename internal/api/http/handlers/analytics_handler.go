package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-roster/internal/api/dto"
	"github.com/spec-kit/shift-roster/internal/auth"
	"github.com/spec-kit/shift-roster/internal/service"
)

// AnalyticsHandler serves the manager dashboard.
type AnalyticsHandler struct {
	service *service.AnalyticsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: analyticsService}
}

// Dashboard GET /analytics/dashboard.
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		return err
	}
	dash, err := h.service.Dashboard(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DashboardResponse{
		TotalEmployees:  dash.TotalEmployees,
		TotalShifts:     dash.TotalShifts,
		PendingRequests: dash.PendingRequests,
		TodayShifts:     dash.TodayShifts,
		TodayStatus: dto.TodayStatusResponse{
			OnDuty: dash.TodayStatus.OnDuty,
			Late:   dash.TodayStatus.Late,
			Absent: dash.TodayStatus.Absent,
		},
	}})
}
