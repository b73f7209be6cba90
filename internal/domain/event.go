package domain

import "time"

type Event struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Category    string    `json:"category"`
	Venue       string    `json:"venue"`
	Image       string    `json:"image"`
	CreatedBy   string    `json:"createdBy"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventUpdate carries the optional fields of an event edit. Nil means
// "leave unchanged".
type EventUpdate struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
	Category    *string
	Venue       *string
	Image       *string
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type EventStats struct {
	TotalEvents int64           `json:"totalEvents"`
	Categories  []CategoryCount `json:"categories"`
}
