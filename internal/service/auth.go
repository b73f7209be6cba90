package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository"
)

var (
	ErrUserEmailExists = repository.ErrUserEmailExists
	ErrUserNotFound    = repository.ErrUserNotFound
	ErrWrongPassword   = errors.New("invalid email or password")
	ErrInvalidOTP      = errors.New("invalid OTP")
	ErrOTPExpired      = errors.New("OTP expired")
)

const otpLifespan = 10 * time.Minute

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	UpdatePassword(ctx context.Context, email, hashedPassword string, changedAt time.Time) error
}

type AuthOTPRepository interface {
	Upsert(ctx context.Context, otp domain.OTP) (domain.OTP, error)
	FindByEmailAndCode(ctx context.Context, email, code string) (domain.OTP, uint, error)
	DeleteByID(ctx context.Context, id uint) error
	DeleteByEmail(ctx context.Context, email string) error
}

type AuthNotifier interface {
	SendPasswordResetOTP(email, code string) error
}

type AuthService struct {
	repo     AuthUserRepository
	otpRepo  AuthOTPRepository
	notifier AuthNotifier
}

func NewAuthService(repo AuthUserRepository, otpRepo AuthOTPRepository, notifier AuthNotifier) *AuthService {
	return &AuthService{
		repo:     repo,
		otpRepo:  otpRepo,
		notifier: notifier,
	}
}

func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	user.Email = NormalizeEmail(user.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = string(hash)

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserEmailExists) {
			return domain.User{}, ErrUserEmailExists
		}

		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

// ForgotPassword issues a fresh 4-digit code for a known email. There is at
// most one live code per email; a second request overwrites the first.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	if _, err := s.repo.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	code, err := generateOTPCode()
	if err != nil {
		return fmt.Errorf("generateOTPCode -> %w", err)
	}

	_, err = s.otpRepo.Upsert(ctx, domain.OTP{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(otpLifespan),
	})
	if err != nil {
		return fmt.Errorf("s.otpRepo.Upsert -> %w", err)
	}

	// The code reaches the user by email only, so delivery failure fails the
	// whole operation, unlike the other notifications.
	if err = s.notifier.SendPasswordResetOTP(email, code); err != nil {
		return fmt.Errorf("s.notifier.SendPasswordResetOTP -> %w", err)
	}

	return nil
}

func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) error {
	email = NormalizeEmail(email)

	otp, otpID, err := s.otpRepo.FindByEmailAndCode(ctx, email, code)
	if err != nil {
		if errors.Is(err, repository.ErrOTPNotFound) {
			return ErrInvalidOTP
		}

		return fmt.Errorf("s.otpRepo.FindByEmailAndCode -> %w", err)
	}

	if otp.Expired(time.Now()) {
		if err = s.otpRepo.DeleteByID(ctx, otpID); err != nil {
			return fmt.Errorf("s.otpRepo.DeleteByID -> %w", err)
		}

		return ErrOTPExpired
	}

	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) error {
	email = NormalizeEmail(email)

	if _, err := s.repo.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err = s.repo.UpdatePassword(ctx, email, string(hash), time.Now()); err != nil {
		return fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}

	if err = s.otpRepo.DeleteByEmail(ctx, email); err != nil {
		return fmt.Errorf("s.otpRepo.DeleteByEmail -> %w", err)
	}

	return nil
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}

// NormalizeEmail is the canonical form every email-keyed lookup uses.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
