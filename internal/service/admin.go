package service

import (
	"context"
	"fmt"

	"github.com/eventhub/eventhub-api/internal/domain"
)

const recentActivityLimit = 5

type AdminEventRepository interface {
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type AdminRegistrationRepository interface {
	CountAll(ctx context.Context) (int64, error)
	CountPending(ctx context.Context) (int64, error)
}

type AdminActivityRepository interface {
	FindRecent(ctx context.Context, limit int) ([]domain.Activity, error)
}

type AdminService struct {
	eventRepo    AdminEventRepository
	regRepo      AdminRegistrationRepository
	activityRepo AdminActivityRepository
}

func NewAdminService(
	eventRepo AdminEventRepository,
	regRepo AdminRegistrationRepository,
	activityRepo AdminActivityRepository,
) *AdminService {
	return &AdminService{
		eventRepo:    eventRepo,
		regRepo:      regRepo,
		activityRepo: activityRepo,
	}
}

func (s *AdminService) GetDashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	totalEvents, err := s.eventRepo.CountAll(ctx)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.eventRepo.CountAll -> %w", err)
	}

	activeEvents, err := s.eventRepo.CountByStatus(ctx, "Active")
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.eventRepo.CountByStatus -> %w", err)
	}

	totalRegistrations, err := s.regRepo.CountAll(ctx)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.regRepo.CountAll -> %w", err)
	}

	pendingApprovals, err := s.regRepo.CountPending(ctx)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.regRepo.CountPending -> %w", err)
	}

	return domain.DashboardStats{
		TotalEvents:        totalEvents,
		ActiveEvents:       activeEvents,
		TotalRegistrations: totalRegistrations,
		PendingApprovals:   pendingApprovals,
	}, nil
}

func (s *AdminService) GetRecentActivity(ctx context.Context) ([]domain.Activity, error) {
	activities, err := s.activityRepo.FindRecent(ctx, recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("s.activityRepo.FindRecent -> %w", err)
	}

	return activities, nil
}
