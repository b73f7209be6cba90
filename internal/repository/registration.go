package repository

import (
	"context"
	"fmt"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository/dao"
)

var (
	ErrRegistrationExists   = dao.ErrRegistrationExists
	ErrRegistrationNotFound = dao.ErrRegistrationNotFound
	ErrRegistrationDecided  = dao.ErrRegistrationDecided
)

type RegistrationDAO interface {
	Insert(ctx context.Context, registration dao.Registration) (dao.Registration, error)
	FindByID(ctx context.Context, id uint) (dao.Registration, error)
	FindAll(ctx context.Context) ([]dao.Registration, error)
	FindByStudentEmail(ctx context.Context, email string) ([]dao.Registration, error)
	FindByStatus(ctx context.Context, status string) ([]dao.Registration, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	UpdateStatusFromPending(ctx context.Context, id uint, status string) (dao.Registration, error)
	SetFeedbackGiven(ctx context.Context, eventID uint, studentEmail string) error
	Delete(ctx context.Context, id uint) error
}

type RegistrationRepository struct {
	dao RegistrationDAO
}

func NewRegistrationRepository(dao RegistrationDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao: dao,
	}
}

func (r *RegistrationRepository) Create(ctx context.Context, registration domain.Registration) (domain.Registration, error) {
	created, err := r.dao.Insert(ctx, dao.Registration{
		EventID:      registration.EventID,
		StudentName:  registration.StudentName,
		StudentEmail: registration.StudentEmail,
		CollegeName:  registration.CollegeName,
		Status:       domain.RegistrationStatusPending,
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return registrationDaoToDomain(created), nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id uint) (domain.Registration, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return registrationDaoToDomain(found), nil
}

func (r *RegistrationRepository) FindAll(ctx context.Context) ([]domain.Registration, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return registrationsDaoToDomain(found), nil
}

func (r *RegistrationRepository) FindByStudentEmail(ctx context.Context, email string) ([]domain.Registration, error) {
	found, err := r.dao.FindByStudentEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStudentEmail -> %w", err)
	}

	return registrationsDaoToDomain(found), nil
}

func (r *RegistrationRepository) FindPending(ctx context.Context) ([]domain.PendingRegistration, error) {
	found, err := r.dao.FindByStatus(ctx, domain.RegistrationStatusPending)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStatus -> %w", err)
	}

	pending := make([]domain.PendingRegistration, 0, len(found))
	for _, reg := range found {
		pending = append(pending, domain.PendingRegistration{
			ID:           reg.ID,
			StudentName:  reg.StudentName,
			StudentEmail: reg.StudentEmail,
			EventName:    reg.Event.Title,
			Timestamp:    reg.CreatedAt,
		})
	}

	return pending, nil
}

func (r *RegistrationRepository) CountPending(ctx context.Context) (int64, error) {
	count, err := r.dao.CountByStatus(ctx, domain.RegistrationStatusPending)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	return count, nil
}

func (r *RegistrationRepository) CountAll(ctx context.Context) (int64, error) {
	count, err := r.dao.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountAll -> %w", err)
	}

	return count, nil
}

func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id uint, status string) (domain.Registration, error) {
	updated, err := r.dao.UpdateStatusFromPending(ctx, id, status)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.UpdateStatusFromPending -> %w", err)
	}

	return registrationDaoToDomain(updated), nil
}

func (r *RegistrationRepository) SetFeedbackGiven(ctx context.Context, eventID uint, studentEmail string) error {
	if err := r.dao.SetFeedbackGiven(ctx, eventID, studentEmail); err != nil {
		return fmt.Errorf("r.dao.SetFeedbackGiven -> %w", err)
	}

	return nil
}

func (r *RegistrationRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func registrationDaoToDomain(reg dao.Registration) domain.Registration {
	return domain.Registration{
		ID:            reg.ID,
		EventID:       reg.EventID,
		Event:         eventDaoToDomain(reg.Event),
		StudentName:   reg.StudentName,
		StudentEmail:  reg.StudentEmail,
		CollegeName:   reg.CollegeName,
		Status:        reg.Status,
		FeedbackGiven: reg.FeedbackGiven,
		CreatedAt:     reg.CreatedAt,
		UpdatedAt:     reg.UpdatedAt,
	}
}

func registrationsDaoToDomain(regs []dao.Registration) []domain.Registration {
	registrations := make([]domain.Registration, 0, len(regs))
	for _, reg := range regs {
		registrations = append(registrations, registrationDaoToDomain(reg))
	}

	return registrations
}
