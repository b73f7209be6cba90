package domain

import "time"

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
	RoleFaculty = "faculty"
)

type User struct {
	ID                uint      `json:"id"`
	FullName          string    `json:"fullName"`
	Email             string    `json:"email"`
	Password          string    `json:"-"`
	Role              string    `json:"role"`
	College           string    `json:"college"`
	PasswordChangedAt time.Time `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
