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

type RegistrationService interface {
	Register(ctx context.Context, eventID uint, name, email, college string) (domain.Registration, error)
	ListAll(ctx context.Context) ([]domain.Registration, error)
	ListForStudent(ctx context.Context, email string) ([]domain.Registration, error)
	ListPending(ctx context.Context) ([]domain.PendingRegistration, error)
	CountPending(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) (domain.Registration, error)
	Delete(ctx context.Context, id uint) error
}

type RegistrationHandler struct {
	svc RegistrationService
}

func NewRegistrationHandler(svc RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		svc: svc,
	}
}

// HandleRegister godoc
// @Summary      Register a student for an event
// @Tags         registrations
// @Produce      json
// @Param        request   body      request.CreateRegistrationRequest true "request body"
// @Success      201  {object}  response.RegistrationResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /registrations [post]
// @Security BearerAuth
func (h *RegistrationHandler) HandleRegister(ctx *gin.Context) {
	var req request.CreateRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	registration, err := h.svc.Register(ctx.Request.Context(), req.EventID, req.Name, req.Email, req.College)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", req.EventID))

			return
		}
		if errors.Is(err, service.ErrRegistrationExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrRegistrationExists))

			return
		}

		err = fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.RegistrationResponse{
		Message:      "event registration successful",
		Registration: registration,
	})
}

// HandleGetRegistrations godoc
// @Summary      List every registration with its event
// @Tags         registrations
// @Produce      json
// @Success      200  {array}   domain.Registration
// @Failure      500  {object}  response.Err
// @Router       /registrations [get]
// @Security BearerAuth
func (h *RegistrationHandler) HandleGetRegistrations(ctx *gin.Context) {
	registrations, err := h.svc.ListAll(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetRegistrations -> h.svc.ListAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, registrations)
}

// HandleGetStudentRegistrations godoc
// @Summary      List registrations for one student email
// @Tags         registrations
// @Produce      json
// @Param        email  path  string  true  "student email"
// @Success      200  {array}   domain.Registration
// @Failure      500  {object}  response.Err
// @Router       /registrations/student/{email} [get]
// @Security BearerAuth
func (h *RegistrationHandler) HandleGetStudentRegistrations(ctx *gin.Context) {
	email := ctx.Param("email")
	if email == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("email is required")))

		return
	}

	registrations, err := h.svc.ListForStudent(ctx.Request.Context(), email)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetStudentRegistrations -> h.svc.ListForStudent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, registrations)
}

// HandleGetPendingRegistrations godoc
// @Summary      List pending registrations, newest first
// @Tags         registrations
// @Produce      json
// @Success      200  {array}   domain.PendingRegistration
// @Failure      500  {object}  response.Err
// @Router       /registrations/pending [get]
// @Security BearerAuth
func (h *RegistrationHandler) HandleGetPendingRegistrations(ctx *gin.Context) {
	pending, err := h.svc.ListPending(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetPendingRegistrations -> h.svc.ListPending -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, pending)
}

// HandleGetPendingCount godoc
// @Summary      Count pending registrations
// @Tags         registrations
// @Produce      json
// @Success      200  {object}  response.PendingCountResponse
// @Failure      500  {object}  response.Err
// @Router       /registrations/pending/count [get]
// @Security BearerAuth
func (h *RegistrationHandler) HandleGetPendingCount(ctx *gin.Context) {
	count, err := h.svc.CountPending(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetPendingCount -> h.svc.CountPending -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.PendingCountResponse{Count: count})
}

// HandleUpdateRegistrationStatus godoc
// @Summary      Approve or reject a pending registration
// @Tags         registrations
// @Produce      json
// @Param        registrationID  path  int  true  "registration ID"
// @Param        request   body      request.UpdateRegistrationStatusRequest true "request body"
// @Success      200  {object}  response.RegistrationResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /registrations/{registrationID}/status [put]
// @Security BearerAuth
func (h *RegistrationHandler) HandleUpdateRegistrationStatus(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "registrationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid registration ID")))

		return
	}

	var req request.UpdateRegistrationStatusRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	registration, err := h.svc.UpdateStatus(ctx.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidStatus))
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", id))
		case errors.Is(err, service.ErrRegistrationDecided):
			response.RenderErr(ctx, response.ErrConflict(service.ErrRegistrationDecided))
		default:
			err = fmt.Errorf("v1.HandleUpdateRegistrationStatus -> h.svc.UpdateStatus -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.RegistrationResponse{
		Message:      "registration " + registration.Status,
		Registration: registration,
	})
}

// HandleDeleteRegistration godoc
// @Summary      Delete a registration
// @Tags         registrations
// @Produce      json
// @Param        registrationID  path  int  true  "registration ID"
// @Success      200  {object}  response.MessageResponse
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /registrations/{registrationID} [delete]
// @Security BearerAuth
func (h *RegistrationHandler) HandleDeleteRegistration(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "registrationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid registration ID")))

		return
	}

	if err = h.svc.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", id))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteRegistration -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "registration deleted successfully"})
}
