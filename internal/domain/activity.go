package domain

import "time"

type Activity struct {
	ID        uint      `json:"id"`
	EventName string    `json:"eventName"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

type DashboardStats struct {
	TotalEvents        int64 `json:"totalEvents"`
	ActiveEvents       int64 `json:"activeEvents"`
	TotalRegistrations int64 `json:"totalRegistrations"`
	PendingApprovals   int64 `json:"pendingApprovals"`
}
