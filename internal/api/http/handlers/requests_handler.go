package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-roster/internal/api/dto"
	"github.com/spec-kit/shift-roster/internal/auth"
	"github.com/spec-kit/shift-roster/internal/domain"
	"github.com/spec-kit/shift-roster/internal/service"
	apperrors "github.com/spec-kit/shift-roster/pkg/util/errorutil"
)

// RequestsHandler manages swap and leave request endpoints.
type RequestsHandler struct {
	service *service.RequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.RequestService) *RequestsHandler {
	return &RequestsHandler{service: requestService}
}

// ListRequests GET /requests.
func (h *RequestsHandler) ListRequests(c *fiber.Ctx) error {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		return err
	}
	var query service.RequestQuery
	if v := c.Query("status"); v != "" {
		status := domain.RequestStatus(v)
		query.Status = &status
	}
	if v := c.Query("request_type"); v != "" {
		typ := domain.RequestType(v)
		query.Type = &typ
	}
	requests, err := h.service.List(c.UserContext(), actor, query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponses(requests)})
}

// ListPending GET /requests/pending.
func (h *RequestsHandler) ListPending(c *fiber.Ctx) error {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		return err
	}
	requests, err := h.service.ListPending(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponses(requests)})
}

// CreateSwap POST /requests/swap. Any employee_id in the body is ignored.
func (h *RequestsHandler) CreateSwap(c *fiber.Ctx) error {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.SwapRequestBody
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	created, err := h.service.CreateSwap(c.UserContext(), actor, service.SwapInput{
		TargetEmployeeID: req.TargetEmployeeID,
		MyShiftDate:      req.MyShiftDate,
		TargetShiftDate:  req.TargetShiftDate,
		Reason:           req.Reason,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": requestResponse(created)})
}

// CreateLeave POST /requests/leave. Any employee_id in the body is ignored.
func (h *RequestsHandler) CreateLeave(c *fiber.Ctx) error {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.LeaveRequestBody
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	created, err := h.service.CreateLeave(c.UserContext(), actor, service.LeaveInput{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		LeaveType: req.LeaveType,
		Reason:    req.Reason,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": requestResponse(created)})
}

// Approve POST /requests/:id/approve.
func (h *RequestsHandler) Approve(c *fiber.Ctx) error {
	return h.resolve(c, domain.RequestStatusApproved)
}

// Deny POST /requests/:id/deny.
func (h *RequestsHandler) Deny(c *fiber.Ctx) error {
	return h.resolve(c, domain.RequestStatusDenied)
}

func (h *RequestsHandler) resolve(c *fiber.Ctx, decision domain.RequestStatus) error {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		return err
	}
	var body dto.ResolveRequestBody
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}
	resolved, err := h.service.Resolve(c.UserContext(), actor, c.Params("id"), decision, body.ManagerNotes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": requestResponse(resolved)})
}

func requestResponses(requests []domain.Request) []dto.RequestResponse {
	items := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, requestResponse(&requests[i]))
	}
	return items
}
