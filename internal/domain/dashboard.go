package domain

// TodayStatus counts today's shifts by attendance state.
type TodayStatus struct {
	OnDuty int64
	Late   int64
	Absent int64
}

// Dashboard is a point-in-time summary across the ledgers.
type Dashboard struct {
	TotalEmployees  int64
	TotalShifts     int64
	PendingRequests int64
	TodayShifts     int64
	TodayStatus     TodayStatus
}
