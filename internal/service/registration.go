package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository"
)

var (
	ErrRegistrationExists   = repository.ErrRegistrationExists
	ErrRegistrationNotFound = repository.ErrRegistrationNotFound
	ErrRegistrationDecided  = repository.ErrRegistrationDecided
	ErrInvalidStatus        = errors.New("invalid status value")
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration domain.Registration) (domain.Registration, error)
	FindAll(ctx context.Context) ([]domain.Registration, error)
	FindByStudentEmail(ctx context.Context, email string) ([]domain.Registration, error)
	FindPending(ctx context.Context) ([]domain.PendingRegistration, error)
	CountPending(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) (domain.Registration, error)
	Delete(ctx context.Context, id uint) error
}

type RegistrationEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

type RegistrationNotifier interface {
	SendRegistrationConfirmation(registration domain.Registration, event domain.Event) error
	SendRegistrationDecision(registration domain.Registration) error
}

type RegistrationService struct {
	repo      RegistrationRepository
	eventRepo RegistrationEventRepository
	notifier  RegistrationNotifier
	activity  ActivityRecorder
}

func NewRegistrationService(
	repo RegistrationRepository,
	eventRepo RegistrationEventRepository,
	notifier RegistrationNotifier,
	activity ActivityRecorder,
) *RegistrationService {
	return &RegistrationService{
		repo:      repo,
		eventRepo: eventRepo,
		notifier:  notifier,
		activity:  activity,
	}
}

// Register creates a Pending registration. Uniqueness per (event, email) is
// enforced by the insert itself, so concurrent duplicates cannot slip
// through. The confirmation email is best-effort.
func (s *RegistrationService) Register(ctx context.Context, eventID uint, name, email, college string) (domain.Registration, error) {
	email = NormalizeEmail(email)

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Registration{}, ErrEventNotFound
		}

		return domain.Registration{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.Registration{
		EventID:      eventID,
		StudentName:  name,
		StudentEmail: email,
		CollegeName:  college,
	})
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationExists) {
			return domain.Registration{}, ErrRegistrationExists
		}

		return domain.Registration{}, fmt.Errorf("s.repo.Create -> %w", err)
	}
	created.Event = event

	if err = s.notifier.SendRegistrationConfirmation(created, event); err != nil {
		zap.L().Warn("failed to send registration confirmation email",
			zap.String("email", created.StudentEmail),
			zap.Error(err),
		)
	}

	return created, nil
}

func (s *RegistrationService) ListAll(ctx context.Context) ([]domain.Registration, error) {
	registrations, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return registrations, nil
}

func (s *RegistrationService) ListForStudent(ctx context.Context, email string) ([]domain.Registration, error) {
	registrations, err := s.repo.FindByStudentEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByStudentEmail -> %w", err)
	}

	return registrations, nil
}

func (s *RegistrationService) ListPending(ctx context.Context) ([]domain.PendingRegistration, error) {
	pending, err := s.repo.FindPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindPending -> %w", err)
	}

	return pending, nil
}

func (s *RegistrationService) CountPending(ctx context.Context) (int64, error) {
	count, err := s.repo.CountPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("s.repo.CountPending -> %w", err)
	}

	return count, nil
}

// UpdateStatus moves a Pending registration to Approved or Rejected. Decided
// registrations stay decided. The status email is best-effort.
func (s *RegistrationService) UpdateStatus(ctx context.Context, id uint, status string) (domain.Registration, error) {
	if status != domain.RegistrationStatusApproved && status != domain.RegistrationStatusRejected {
		return domain.Registration{}, ErrInvalidStatus
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRegistrationNotFound):
			return domain.Registration{}, ErrRegistrationNotFound
		case errors.Is(err, repository.ErrRegistrationDecided):
			return domain.Registration{}, ErrRegistrationDecided
		}

		return domain.Registration{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	if err = s.notifier.SendRegistrationDecision(updated); err != nil {
		zap.L().Warn("failed to send registration decision email",
			zap.String("email", updated.StudentEmail),
			zap.String("status", updated.Status),
			zap.Error(err),
		)
	}

	if _, err = s.activity.Record(ctx, updated.Event.Title, "Registration "+status); err != nil {
		zap.L().Warn("failed to record activity",
			zap.String("event", updated.Event.Title),
			zap.Error(err),
		)
	}

	return updated, nil
}

func (s *RegistrationService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
