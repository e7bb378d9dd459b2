package handlers

import (
	"github.com/spec-kit/shift-roster/internal/api/dto"
	"github.com/spec-kit/shift-roster/internal/domain"
)

func userResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		IsActive:  u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func employeeResponse(s *domain.EmployeeSnapshot) *dto.EmployeeResponse {
	if s == nil {
		return nil
	}
	return &dto.EmployeeResponse{ID: s.ID, Name: s.Name, Email: s.Email, Role: s.Role}
}

func shiftResponse(s *domain.Shift) dto.ShiftResponse {
	return dto.ShiftResponse{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		Date:       s.Date.Format(domain.DateLayout),
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		ShiftType:  s.Type,
		Location:   s.Location,
		Notes:      s.Notes,
		Status:     s.Status,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
		Employee:   employeeResponse(s.Employee),
	}
}

func shiftResponses(shifts []domain.Shift) []dto.ShiftResponse {
	items := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		items = append(items, shiftResponse(&shifts[i]))
	}
	return items
}

func requestResponse(r *domain.Request) dto.RequestResponse {
	resp := dto.RequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		RequestType:  r.Type,
		Status:       r.Status,
		Reason:       r.Reason,
		ManagerID:    r.ManagerID,
		ManagerNotes: r.ManagerNotes,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		Employee:     employeeResponse(r.Employee),
	}
	if r.Swap != nil {
		target := r.Swap.TargetEmployeeID
		resp.TargetEmployeeID = &target
		resp.MyShiftDate = strPtr(r.Swap.MyShiftDate.Format(domain.DateLayout))
		resp.TargetShiftDate = strPtr(r.Swap.TargetShiftDate.Format(domain.DateLayout))
	}
	if r.Leave != nil {
		leaveType := r.Leave.LeaveType
		resp.StartDate = strPtr(r.Leave.StartDate.Format(domain.DateLayout))
		resp.EndDate = strPtr(r.Leave.EndDate.Format(domain.DateLayout))
		resp.LeaveType = &leaveType
	}
	return resp
}

func strPtr(s string) *string { return &s }

func broadcastResponse(b *domain.Broadcast) dto.BroadcastResponse {
	return dto.BroadcastResponse{ID: b.ID, ManagerID: b.ManagerID, Message: b.Message, CreatedAt: b.CreatedAt}
}
