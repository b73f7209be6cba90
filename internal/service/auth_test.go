package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository"
)

type fakeUserRepo struct {
	users map[string]domain.User

	updatedEmail string
	updatedHash  string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := r.users[user.Email]; ok {
		return domain.User{}, repository.ErrUserEmailExists
	}

	user.ID = uint(len(r.users) + 1)
	r.users[user.Email] = user

	return user, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := r.users[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, email, hashedPassword string, _ time.Time) error {
	user, ok := r.users[email]
	if !ok {
		return repository.ErrUserNotFound
	}

	user.Password = hashedPassword
	r.users[email] = user
	r.updatedEmail = email
	r.updatedHash = hashedPassword

	return nil
}

type fakeOTPRepo struct {
	otps map[string]domain.OTP

	deletedByEmail string
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{otps: make(map[string]domain.OTP)}
}

func (r *fakeOTPRepo) Upsert(_ context.Context, otp domain.OTP) (domain.OTP, error) {
	r.otps[otp.Email] = otp

	return otp, nil
}

func (r *fakeOTPRepo) FindByEmailAndCode(_ context.Context, email, code string) (domain.OTP, uint, error) {
	otp, ok := r.otps[email]
	if !ok || otp.Code != code {
		return domain.OTP{}, 0, repository.ErrOTPNotFound
	}

	return otp, 1, nil
}

func (r *fakeOTPRepo) DeleteByID(_ context.Context, _ uint) error {
	r.otps = make(map[string]domain.OTP)

	return nil
}

func (r *fakeOTPRepo) DeleteByEmail(_ context.Context, email string) error {
	delete(r.otps, email)
	r.deletedByEmail = email

	return nil
}

type fakeNotifier struct {
	otpEmails []string
	otpCodes  []string

	confirmations []domain.Registration
	decisions     []domain.Registration
}

func (n *fakeNotifier) SendPasswordResetOTP(email, code string) error {
	n.otpEmails = append(n.otpEmails, email)
	n.otpCodes = append(n.otpCodes, code)

	return nil
}

func (n *fakeNotifier) SendRegistrationConfirmation(registration domain.Registration, _ domain.Event) error {
	n.confirmations = append(n.confirmations, registration)

	return nil
}

func (n *fakeNotifier) SendRegistrationDecision(registration domain.Registration) error {
	n.decisions = append(n.decisions, registration)

	return nil
}

func TestAuthService_Signup(t *testing.T) {
	t.Run("creates user with hashed password and normalized email", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewAuthService(repo, newFakeOTPRepo(), &fakeNotifier{})

		created, err := svc.Signup(context.Background(), domain.User{
			FullName: "Jane Doe",
			Email:    "  Jane.Doe@Example.COM ",
			Password: "password123",
			Role:     domain.RoleStudent,
			College:  "Engineering",
		})

		require.NoError(t, err)
		assert.Equal(t, "jane.doe@example.com", created.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")))
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewAuthService(repo, newFakeOTPRepo(), &fakeNotifier{})

		user := domain.User{Email: "jane@example.com", Password: "password123"}
		_, err := svc.Signup(context.Background(), user)
		require.NoError(t, err)

		_, err = svc.Signup(context.Background(), user)
		assert.ErrorIs(t, err, ErrUserEmailExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, newFakeOTPRepo(), &fakeNotifier{})

	_, err := svc.Signup(context.Background(), domain.User{
		Email:    "jane@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	t.Run("succeeds with the right password", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "Jane@Example.com", "password123")

		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", user.Email)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "jane@example.com", "nope12345")

		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("rejects an unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@example.com", "password123")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestAuthService_ForgotPassword(t *testing.T) {
	t.Run("stores and emails a 4-digit code", func(t *testing.T) {
		repo := newFakeUserRepo()
		otpRepo := newFakeOTPRepo()
		notifier := &fakeNotifier{}
		svc := NewAuthService(repo, otpRepo, notifier)

		_, err := svc.Signup(context.Background(), domain.User{Email: "jane@example.com", Password: "password123"})
		require.NoError(t, err)

		err = svc.ForgotPassword(context.Background(), "jane@example.com")
		require.NoError(t, err)

		require.Len(t, notifier.otpCodes, 1)
		assert.Len(t, notifier.otpCodes[0], 4)

		stored, ok := otpRepo.otps["jane@example.com"]
		require.True(t, ok)
		assert.Equal(t, notifier.otpCodes[0], stored.Code)
		assert.WithinDuration(t, time.Now().Add(otpLifespan), stored.ExpiresAt, time.Minute)
	})

	t.Run("fails for an unknown email", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo(), newFakeOTPRepo(), &fakeNotifier{})

		err := svc.ForgotPassword(context.Background(), "nobody@example.com")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestAuthService_VerifyOTP(t *testing.T) {
	t.Run("accepts a live code", func(t *testing.T) {
		otpRepo := newFakeOTPRepo()
		otpRepo.otps["jane@example.com"] = domain.OTP{
			Email:     "jane@example.com",
			Code:      "1234",
			ExpiresAt: time.Now().Add(5 * time.Minute),
		}
		svc := NewAuthService(newFakeUserRepo(), otpRepo, &fakeNotifier{})

		err := svc.VerifyOTP(context.Background(), "jane@example.com", "1234")

		assert.NoError(t, err)
	})

	t.Run("rejects a wrong code", func(t *testing.T) {
		otpRepo := newFakeOTPRepo()
		otpRepo.otps["jane@example.com"] = domain.OTP{
			Email:     "jane@example.com",
			Code:      "1234",
			ExpiresAt: time.Now().Add(5 * time.Minute),
		}
		svc := NewAuthService(newFakeUserRepo(), otpRepo, &fakeNotifier{})

		err := svc.VerifyOTP(context.Background(), "jane@example.com", "9999")

		assert.ErrorIs(t, err, ErrInvalidOTP)
	})

	t.Run("deletes an expired code", func(t *testing.T) {
		otpRepo := newFakeOTPRepo()
		otpRepo.otps["jane@example.com"] = domain.OTP{
			Email:     "jane@example.com",
			Code:      "1234",
			ExpiresAt: time.Now().Add(-time.Minute),
		}
		svc := NewAuthService(newFakeUserRepo(), otpRepo, &fakeNotifier{})

		err := svc.VerifyOTP(context.Background(), "jane@example.com", "1234")

		assert.ErrorIs(t, err, ErrOTPExpired)
		assert.Empty(t, otpRepo.otps)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	repo := newFakeUserRepo()
	otpRepo := newFakeOTPRepo()
	svc := NewAuthService(repo, otpRepo, &fakeNotifier{})

	_, err := svc.Signup(context.Background(), domain.User{Email: "jane@example.com", Password: "password123"})
	require.NoError(t, err)
	otpRepo.otps["jane@example.com"] = domain.OTP{Email: "jane@example.com", Code: "1234"}

	err = svc.ResetPassword(context.Background(), "jane@example.com", "newpassword1")
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", repo.updatedEmail)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.updatedHash), []byte("newpassword1")))
	assert.Equal(t, "jane@example.com", otpRepo.deletedByEmail)

	_, err = svc.Login(context.Background(), "jane@example.com", "newpassword1")
	assert.NoError(t, err)
}
