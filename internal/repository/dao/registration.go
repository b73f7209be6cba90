package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrRegistrationExists   = errors.New("already registered for this event")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrRegistrationDecided  = errors.New("registration already decided")
)

type Registration struct {
	ID uint `gorm:"primaryKey"`

	EventID uint  `gorm:"not null;uniqueIndex:idx_registrations_event_email"`
	Event   Event `gorm:"foreignKey:EventID"`

	StudentName  string `gorm:"not null"`
	StudentEmail string `gorm:"not null;uniqueIndex:idx_registrations_event_email"`
	CollegeName  string `gorm:"not null"`

	Status        string `gorm:"not null;default:Pending"` // "Pending", "Approved" or "Rejected"
	FeedbackGiven bool   `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

// Insert relies on the composite unique index so that two concurrent
// submissions for the same (event, email) pair cannot both succeed.
func (d *RegistrationDAO) Insert(ctx context.Context, registration Registration) (Registration, error) {
	result := d.db.WithContext(ctx).Create(&registration)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_registrations_event_email") {
			return Registration{}, ErrRegistrationExists
		}

		return Registration{}, result.Error
	}

	return registration, nil
}

func (d *RegistrationDAO) FindByID(ctx context.Context, id uint) (Registration, error) {
	var registration Registration

	result := d.db.WithContext(ctx).Preload("Event").First(&registration, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Registration{}, ErrRegistrationNotFound
		}

		return Registration{}, result.Error
	}

	return registration, nil
}

func (d *RegistrationDAO) FindAll(ctx context.Context) ([]Registration, error) {
	var registrations []Registration

	result := d.db.WithContext(ctx).Preload("Event").Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

func (d *RegistrationDAO) FindByStudentEmail(ctx context.Context, email string) ([]Registration, error) {
	var registrations []Registration

	result := d.db.WithContext(ctx).
		Preload("Event").
		Where("student_email = ?", email).
		Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

func (d *RegistrationDAO) FindByStatus(ctx context.Context, status string) ([]Registration, error) {
	var registrations []Registration

	result := d.db.WithContext(ctx).
		Preload("Event").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

func (d *RegistrationDAO) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Registration{}).
		Where("status = ?", status).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *RegistrationDAO) CountAll(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Registration{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// UpdateStatusFromPending transitions a registration out of Pending. The
// condition is part of the UPDATE so a decided registration can never be
// re-transitioned, regardless of interleaving.
func (d *RegistrationDAO) UpdateStatusFromPending(ctx context.Context, id uint, status string) (Registration, error) {
	result := d.db.WithContext(ctx).
		Model(&Registration{}).
		Where("id = ? AND status = ?", id, "Pending").
		Update("status", status)
	if result.Error != nil {
		return Registration{}, result.Error
	}

	if result.RowsAffected == 0 {
		if _, err := d.FindByID(ctx, id); err != nil {
			return Registration{}, err
		}

		return Registration{}, ErrRegistrationDecided
	}

	return d.FindByID(ctx, id)
}

func (d *RegistrationDAO) SetFeedbackGiven(ctx context.Context, eventID uint, studentEmail string) error {
	result := d.db.WithContext(ctx).
		Model(&Registration{}).
		Where("event_id = ? AND student_email = ?", eventID, studentEmail).
		Update("feedback_given", true)

	return result.Error
}

func (d *RegistrationDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Registration{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}
