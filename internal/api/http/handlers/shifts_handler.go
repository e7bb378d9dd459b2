package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-roster/internal/api/dto"
	"github.com/spec-kit/shift-roster/internal/auth"
	"github.com/spec-kit/shift-roster/internal/domain"
	"github.com/spec-kit/shift-roster/internal/service"
	apperrors "github.com/spec-kit/shift-roster/pkg/util/errorutil"
)

// ShiftsHandler manages shift endpoints.
type ShiftsHandler struct {
	shifts *service.ShiftService
	roster *service.RosterService
}

// NewShiftsHandler constructs handler.
func NewShiftsHandler(shiftService *service.ShiftService, rosterService *service.RosterService) *ShiftsHandler {
	return &ShiftsHandler{shifts: shiftService, roster: rosterService}
}

// ListShifts GET /shifts.
func (h *ShiftsHandler) ListShifts(c *fiber.Ctx) error {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		return err
	}
	query, err := parseShiftQuery(c)
	if err != nil {
		return err
	}
	shifts, err := h.shifts.ListShifts(c.UserContext(), actor, query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": shiftResponses(shifts)})
}

// CreateShift POST /shifts.
func (h *ShiftsHandler) CreateShift(c *fiber.Ctx) error {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.CreateShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	shift, err := h.shifts.CreateShift(c.UserContext(), actor, service.ShiftCreateInput{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Type:       req.ShiftType,
		Location:   req.Location,
		Notes:      req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": shiftResponse(shift)})
}

// GetShift GET /shifts/:id.
func (h *ShiftsHandler) GetShift(c *fiber.Ctx) error {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		return err
	}
	shift, err := h.shifts.GetShift(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": shiftResponse(shift)})
}

// UpdateStatus PUT /shifts/:id/status.
func (h *ShiftsHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.UpdateShiftStatusRequest
	if err := c.QueryParser(&req); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	if req.Status == "" && len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	shift, err := h.shifts.UpdateStatus(c.UserContext(), actor, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": shiftResponse(shift)})
}

// GenerateRoster POST /shifts/ai-generate.
func (h *ShiftsHandler) GenerateRoster(c *fiber.Ctx) error {
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.GenerateRosterRequest
	if err := c.QueryParser(&req); err != nil {
		return apperrors.NewValidationError("invalid query", nil)
	}
	if body := c.Body(); len(body) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
		if req.Constraints == nil {
			if req.Constraints, err = bareConstraints(body); err != nil {
				return apperrors.NewValidationError("invalid payload", nil)
			}
		}
	}

	draft, err := h.roster.Generate(c.UserContext(), actor, service.RosterInput{
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		MinStaffRequired: req.MinStaffRequired,
		Constraints:      req.Constraints,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.RosterResponse{
		ID:          draft.ID,
		ManagerID:   draft.ManagerID,
		StartDate:   draft.StartDate.Format(domain.DateLayout),
		EndDate:     draft.EndDate.Format(domain.DateLayout),
		Constraints: draft.Constraints,
		Shifts:      shiftResponses(draft.Shifts),
		Status:      draft.Status,
		CreatedAt:   draft.CreatedAt,
	}})
}

// bareConstraints reads a body that is itself the constraints object, as
// sent by clients that pass the range in the query string.
func bareConstraints(body []byte) (map[string]any, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	for _, key := range []string{"start_date", "end_date", "min_staff_required", "constraints"} {
		delete(raw, key)
	}
	return raw, nil
}

func parseShiftQuery(c *fiber.Ctx) (service.ShiftQuery, error) {
	var query service.ShiftQuery
	var err error
	if query.DateFrom, err = parseDateParam(c, "date_from"); err != nil {
		return query, err
	}
	if query.DateTo, err = parseDateParam(c, "date_to"); err != nil {
		return query, err
	}
	if v := c.Query("employee_id"); v != "" {
		query.EmployeeID = &v
	}
	if v := c.Query("status"); v != "" {
		status := domain.ShiftStatus(v)
		if !status.Valid() {
			return query, apperrors.NewValidationError("invalid status", map[string]any{"status": v})
		}
		query.Status = &status
	}
	return query, nil
}

func parseDateParam(c *fiber.Ctx, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(v)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid "+name, map[string]any{name: v})
	}
	return &t, nil
}
