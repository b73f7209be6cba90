package response

import "github.com/eventhub/eventhub-api/internal/domain"

type RegistrationResponse struct {
	Message      string              `json:"message"`
	Registration domain.Registration `json:"registration"`
}

type PendingCountResponse struct {
	Count int64 `json:"count"`
}

type FeedbackCheckResponse struct {
	Exists   bool             `json:"exists"`
	Feedback *domain.Feedback `json:"feedback"`
}
