package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventhub/eventhub-api/internal/api/handler/v1/response"
	"github.com/eventhub/eventhub-api/internal/domain"
)

type AdminService interface {
	GetDashboardStats(ctx context.Context) (domain.DashboardStats, error)
	GetRecentActivity(ctx context.Context) ([]domain.Activity, error)
}

type AdminHandler struct {
	svc AdminService
}

func NewAdminHandler(svc AdminService) *AdminHandler {
	return &AdminHandler{
		svc: svc,
	}
}

// HandleGetDashboardStats godoc
// @Summary      Dashboard counters for the admin overview
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.DashboardStats
// @Failure      500  {object}  response.Err
// @Router       /admin/stats [get]
// @Security BearerAuth
func (h *AdminHandler) HandleGetDashboardStats(ctx *gin.Context) {
	stats, err := h.svc.GetDashboardStats(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetDashboardStats -> h.svc.GetDashboardStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleGetRecentActivity godoc
// @Summary      Most recent admin actions
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.Activity
// @Failure      500  {object}  response.Err
// @Router       /admin/activity [get]
// @Security BearerAuth
func (h *AdminHandler) HandleGetRecentActivity(ctx *gin.Context) {
	activities, err := h.svc.GetRecentActivity(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetRecentActivity -> h.svc.GetRecentActivity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, activities)
}
