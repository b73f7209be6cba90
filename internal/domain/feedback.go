package domain

import "time"

// MaxFeedbackEdits gates the single permitted edit after the initial
// submission.
const MaxFeedbackEdits = 1

type Feedback struct {
	ID         uint      `json:"id"`
	EventID    uint      `json:"eventId"`
	EventTitle string    `json:"eventTitle"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Rating     int       `json:"rating"`
	Comments   string    `json:"comments"`
	EditCount  int       `json:"editCount"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
