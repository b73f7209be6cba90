package domain

import "time"

type OTP struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (o OTP) Expired(now time.Time) bool {
	return o.ExpiresAt.Before(now)
}
