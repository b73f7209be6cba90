package domain

import "time"

const (
	RegistrationStatusPending  = "Pending"
	RegistrationStatusApproved = "Approved"
	RegistrationStatusRejected = "Rejected"
)

type Registration struct {
	ID            uint      `json:"id"`
	EventID       uint      `json:"eventId"`
	Event         Event     `json:"event"`
	StudentName   string    `json:"studentName"`
	StudentEmail  string    `json:"studentEmail"`
	CollegeName   string    `json:"collegeName"`
	Status        string    `json:"status"`
	FeedbackGiven bool      `json:"feedbackGiven"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PendingRegistration is the flattened shape the admin notification feed uses.
type PendingRegistration struct {
	ID           uint      `json:"id"`
	StudentName  string    `json:"studentName"`
	StudentEmail string    `json:"studentEmail"`
	EventName    string    `json:"eventName"`
	Timestamp    time.Time `json:"timestamp"`
}
