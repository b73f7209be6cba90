package response

import "github.com/eventhub/eventhub-api/internal/domain"

type SignupResponse struct {
	Message string      `json:"message"`
	User    domain.User `json:"user"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    domain.User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
