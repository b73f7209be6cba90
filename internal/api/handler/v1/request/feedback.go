package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type SubmitFeedbackRequest struct {
	EventID  uint   `json:"eventId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Rating   int    `json:"rating"`
	Comments string `json:"comments"`
}

func (req *SubmitFeedbackRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&req.Comments, validation.Required),
	)
}
