package repository

import (
	"context"
	"fmt"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository/dao"
)

var ErrOTPNotFound = dao.ErrOTPNotFound

type OTPDAO interface {
	Upsert(ctx context.Context, otp dao.OTP) (dao.OTP, error)
	FindByEmailAndCode(ctx context.Context, email, code string) (dao.OTP, error)
	DeleteByID(ctx context.Context, id uint) error
	DeleteByEmail(ctx context.Context, email string) error
}

type OTPRepository struct {
	dao OTPDAO
}

func NewOTPRepository(dao OTPDAO) *OTPRepository {
	return &OTPRepository{
		dao: dao,
	}
}

func (r *OTPRepository) Upsert(ctx context.Context, otp domain.OTP) (domain.OTP, error) {
	saved, err := r.dao.Upsert(ctx, dao.OTP{
		Email:     otp.Email,
		Code:      otp.Code,
		ExpiresAt: otp.ExpiresAt,
	})
	if err != nil {
		return domain.OTP{}, fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return otpDaoToDomain(saved), nil
}

func (r *OTPRepository) FindByEmailAndCode(ctx context.Context, email, code string) (domain.OTP, uint, error) {
	found, err := r.dao.FindByEmailAndCode(ctx, email, code)
	if err != nil {
		return domain.OTP{}, 0, fmt.Errorf("r.dao.FindByEmailAndCode -> %w", err)
	}

	return otpDaoToDomain(found), found.ID, nil
}

func (r *OTPRepository) DeleteByID(ctx context.Context, id uint) error {
	if err := r.dao.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteByID -> %w", err)
	}

	return nil
}

func (r *OTPRepository) DeleteByEmail(ctx context.Context, email string) error {
	if err := r.dao.DeleteByEmail(ctx, email); err != nil {
		return fmt.Errorf("r.dao.DeleteByEmail -> %w", err)
	}

	return nil
}

func otpDaoToDomain(o dao.OTP) domain.OTP {
	return domain.OTP{
		Email:     o.Email,
		Code:      o.Code,
		ExpiresAt: o.ExpiresAt,
	}
}
