package dto

import "time"

// BroadcastRequest payload.
type BroadcastRequest struct {
	Message string `json:"message"`
}

// BroadcastResponse represents a stored broadcast.
type BroadcastResponse struct {
	ID        string    `json:"id"`
	ManagerID string    `json:"manager_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// DashboardResponse is the manager dashboard.
type DashboardResponse struct {
	TotalEmployees  int64               `json:"total_employees"`
	TotalShifts     int64               `json:"total_shifts"`
	PendingRequests int64               `json:"pending_requests"`
	TodayShifts     int64               `json:"today_shifts"`
	TodayStatus     TodayStatusResponse `json:"today_status"`
}

// TodayStatusResponse counts today's shifts by state.
type TodayStatusResponse struct {
	OnDuty int64 `json:"on_duty"`
	Late   int64 `json:"late"`
	Absent int64 `json:"absent"`
}
