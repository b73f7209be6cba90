package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventhub/eventhub-api/internal/api/handler/v1/request"
	"github.com/eventhub/eventhub-api/internal/api/handler/v1/response"
	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/service"
)

type FeedbackService interface {
	Submit(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error)
	Check(ctx context.Context, eventID uint, email string) (domain.Feedback, bool, error)
	ListAll(ctx context.Context) ([]domain.Feedback, error)
	Delete(ctx context.Context, id uint) error
}

type FeedbackHandler struct {
	svc FeedbackService
}

func NewFeedbackHandler(svc FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		svc: svc,
	}
}

// HandleSubmitFeedback godoc
// @Summary      Submit or edit feedback for an event
// @Description  The first submission creates the feedback; exactly one later
// @Description  edit is permitted, after which further writes are rejected.
// @Tags         feedback
// @Produce      json
// @Param        request   body      request.SubmitFeedbackRequest true "request body"
// @Success      200  {object}  domain.Feedback
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /feedback [post]
// @Security BearerAuth
func (h *FeedbackHandler) HandleSubmitFeedback(ctx *gin.Context) {
	var req request.SubmitFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	feedback, err := h.svc.Submit(ctx.Request.Context(), domain.Feedback{
		EventID:  req.EventID,
		Name:     req.Name,
		Email:    req.Email,
		Rating:   req.Rating,
		Comments: req.Comments,
	})
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", req.EventID))

			return
		}
		if errors.Is(err, service.ErrFeedbackLocked) {
			response.RenderErr(ctx, response.ErrForbidden(service.ErrFeedbackLocked))

			return
		}

		err = fmt.Errorf("v1.HandleSubmitFeedback -> h.svc.Submit -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, feedback)
}

// HandleCheckFeedback godoc
// @Summary      Fetch existing feedback for an (event, email) pair
// @Tags         feedback
// @Produce      json
// @Param        eventID  path  int     true  "event ID"
// @Param        email    path  string  true  "student email"
// @Success      200  {object}  response.FeedbackCheckResponse
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /feedback/{eventID}/{email} [get]
// @Security BearerAuth
func (h *FeedbackHandler) HandleCheckFeedback(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid event ID")))

		return
	}

	email := ctx.Param("email")
	if email == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("email is required")))

		return
	}

	feedback, exists, err := h.svc.Check(ctx.Request.Context(), eventID, email)
	if err != nil {
		err = fmt.Errorf("v1.HandleCheckFeedback -> h.svc.Check -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	resp := response.FeedbackCheckResponse{Exists: exists}
	if exists {
		resp.Feedback = &feedback
	}

	ctx.JSON(http.StatusOK, resp)
}

// HandleGetFeedbacks godoc
// @Summary      List all feedback, newest first
// @Tags         feedback
// @Produce      json
// @Success      200  {array}   domain.Feedback
// @Failure      500  {object}  response.Err
// @Router       /feedback [get]
// @Security BearerAuth
func (h *FeedbackHandler) HandleGetFeedbacks(ctx *gin.Context) {
	feedbacks, err := h.svc.ListAll(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetFeedbacks -> h.svc.ListAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, feedbacks)
}

// HandleDeleteFeedback godoc
// @Summary      Delete feedback (moderation)
// @Tags         feedback
// @Produce      json
// @Param        feedbackID  path  int  true  "feedback ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /feedback/{feedbackID} [delete]
// @Security BearerAuth
func (h *FeedbackHandler) HandleDeleteFeedback(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "feedbackID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid feedback ID")))

		return
	}

	if err = h.svc.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrFeedbackNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("feedback", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteFeedback -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "feedback deleted"})
}
