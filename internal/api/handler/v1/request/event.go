package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// Event payloads arrive as multipart form fields because the image rides
// along in the same request.

type CreateEventRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Date        string `form:"date"`
	Time        string `form:"time"`
	Category    string `form:"category"`
	Venue       string `form:"venue"`
	CreatedBy   string `form:"createdBy"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Required),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.Time, validation.Required),
		validation.Field(&req.Category, validation.Required),
		validation.Field(&req.Venue, validation.Required),
	)
}

type UpdateEventRequest struct {
	Title       *string `form:"title"`
	Description *string `form:"description"`
	Date        *string `form:"date"`
	Time        *string `form:"time"`
	Category    *string `form:"category"`
	Venue       *string `form:"venue"`
}

func (req *UpdateEventRequest) Validate() error {
	if req.Title != nil {
		return validation.Validate(*req.Title, validation.Required, validation.Length(2, 100))
	}

	return nil
}
