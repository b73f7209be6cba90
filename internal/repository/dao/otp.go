package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrOTPNotFound = errors.New("otp not found")

type OTP struct {
	ID uint `gorm:"primaryKey"`

	Email     string    `gorm:"unique;not null"`
	Code      string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type OTPDAO struct {
	db *gorm.DB
}

func NewOTPDAO(db *gorm.DB) *OTPDAO {
	return &OTPDAO{
		db: db,
	}
}

// Upsert keeps at most one live code per email.
func (d *OTPDAO) Upsert(ctx context.Context, otp OTP) (OTP, error) {
	result := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "updated_at"}),
		}).
		Create(&otp)
	if result.Error != nil {
		return OTP{}, result.Error
	}

	return otp, nil
}

func (d *OTPDAO) FindByEmailAndCode(ctx context.Context, email, code string) (OTP, error) {
	var otp OTP

	result := d.db.WithContext(ctx).First(&otp, "email = ? AND code = ?", email, code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return OTP{}, ErrOTPNotFound
		}

		return OTP{}, result.Error
	}

	return otp, nil
}

func (d *OTPDAO) DeleteByID(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Delete(&OTP{}, id).Error
}

func (d *OTPDAO) DeleteByEmail(ctx context.Context, email string) error {
	return d.db.WithContext(ctx).Where("email = ?", email).Delete(&OTP{}).Error
}
