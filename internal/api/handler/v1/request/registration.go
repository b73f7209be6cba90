package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateRegistrationRequest struct {
	EventID uint   `json:"eventId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	College string `json:"college"`
}

func (req *CreateRegistrationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.College, validation.Required),
	)
}

type UpdateRegistrationStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateRegistrationStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In("Approved", "Rejected")),
	)
}
