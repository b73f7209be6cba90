package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository"
)

type fakeRegistrationRepo struct {
	registrations map[uint]domain.Registration
	nextID        uint
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{registrations: make(map[uint]domain.Registration), nextID: 1}
}

func (r *fakeRegistrationRepo) Create(_ context.Context, registration domain.Registration) (domain.Registration, error) {
	for _, existing := range r.registrations {
		if existing.EventID == registration.EventID && existing.StudentEmail == registration.StudentEmail {
			return domain.Registration{}, repository.ErrRegistrationExists
		}
	}

	registration.ID = r.nextID
	r.nextID++
	registration.Status = domain.RegistrationStatusPending
	r.registrations[registration.ID] = registration

	return registration, nil
}

func (r *fakeRegistrationRepo) FindAll(_ context.Context) ([]domain.Registration, error) {
	var registrations []domain.Registration
	for _, registration := range r.registrations {
		registrations = append(registrations, registration)
	}

	return registrations, nil
}

func (r *fakeRegistrationRepo) FindByStudentEmail(_ context.Context, email string) ([]domain.Registration, error) {
	var registrations []domain.Registration
	for _, registration := range r.registrations {
		if registration.StudentEmail == email {
			registrations = append(registrations, registration)
		}
	}

	return registrations, nil
}

func (r *fakeRegistrationRepo) FindPending(_ context.Context) ([]domain.PendingRegistration, error) {
	var pending []domain.PendingRegistration
	for _, registration := range r.registrations {
		if registration.Status == domain.RegistrationStatusPending {
			pending = append(pending, domain.PendingRegistration{
				ID:           registration.ID,
				StudentName:  registration.StudentName,
				StudentEmail: registration.StudentEmail,
				EventName:    registration.Event.Title,
				Timestamp:    registration.CreatedAt,
			})
		}
	}

	return pending, nil
}

func (r *fakeRegistrationRepo) CountPending(_ context.Context) (int64, error) {
	var count int64
	for _, registration := range r.registrations {
		if registration.Status == domain.RegistrationStatusPending {
			count++
		}
	}

	return count, nil
}

func (r *fakeRegistrationRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.registrations)), nil
}

func (r *fakeRegistrationRepo) UpdateStatus(_ context.Context, id uint, status string) (domain.Registration, error) {
	registration, ok := r.registrations[id]
	if !ok {
		return domain.Registration{}, repository.ErrRegistrationNotFound
	}
	if registration.Status != domain.RegistrationStatusPending {
		return domain.Registration{}, repository.ErrRegistrationDecided
	}

	registration.Status = status
	r.registrations[id] = registration

	return registration, nil
}

func (r *fakeRegistrationRepo) SetFeedbackGiven(_ context.Context, eventID uint, studentEmail string) error {
	for id, registration := range r.registrations {
		if registration.EventID == eventID && registration.StudentEmail == studentEmail {
			registration.FeedbackGiven = true
			r.registrations[id] = registration
		}
	}

	return nil
}

func (r *fakeRegistrationRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.registrations[id]; !ok {
		return repository.ErrRegistrationNotFound
	}
	delete(r.registrations, id)

	return nil
}

func TestRegistrationService_Register(t *testing.T) {
	t.Run("creates a pending registration and emails a confirmation", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		event, err := eventRepo.Create(context.Background(), domain.Event{Title: "Tech Fest"})
		require.NoError(t, err)

		notifier := &fakeNotifier{}
		svc := NewRegistrationService(newFakeRegistrationRepo(), eventRepo, notifier, &fakeActivityRecorder{})

		created, err := svc.Register(context.Background(), event.ID, "Jane Doe", " Jane@Example.com ", "Engineering")

		require.NoError(t, err)
		assert.Equal(t, domain.RegistrationStatusPending, created.Status)
		assert.Equal(t, "jane@example.com", created.StudentEmail)
		assert.Equal(t, "Tech Fest", created.Event.Title)

		require.Len(t, notifier.confirmations, 1)
		assert.Equal(t, created.ID, notifier.confirmations[0].ID)
	})

	t.Run("rejects an unknown event", func(t *testing.T) {
		svc := NewRegistrationService(newFakeRegistrationRepo(), newFakeEventRepo(), &fakeNotifier{}, &fakeActivityRecorder{})

		_, err := svc.Register(context.Background(), 999, "Jane", "jane@example.com", "Engineering")

		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("rejects a duplicate registration", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		event, err := eventRepo.Create(context.Background(), domain.Event{Title: "Tech Fest"})
		require.NoError(t, err)

		svc := NewRegistrationService(newFakeRegistrationRepo(), eventRepo, &fakeNotifier{}, &fakeActivityRecorder{})

		_, err = svc.Register(context.Background(), event.ID, "Jane", "jane@example.com", "Engineering")
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), event.ID, "Jane", "JANE@example.com", "Engineering")
		assert.ErrorIs(t, err, ErrRegistrationExists)
	})
}

func TestRegistrationService_UpdateStatus(t *testing.T) {
	setup := func(t *testing.T) (*RegistrationService, *fakeNotifier, *fakeActivityRecorder, domain.Registration) {
		t.Helper()

		eventRepo := newFakeEventRepo()
		event, err := eventRepo.Create(context.Background(), domain.Event{Title: "Tech Fest"})
		require.NoError(t, err)

		notifier := &fakeNotifier{}
		activity := &fakeActivityRecorder{}
		svc := NewRegistrationService(newFakeRegistrationRepo(), eventRepo, notifier, activity)

		created, err := svc.Register(context.Background(), event.ID, "Jane", "jane@example.com", "Engineering")
		require.NoError(t, err)

		return svc, notifier, activity, created
	}

	t.Run("approves a pending registration", func(t *testing.T) {
		svc, notifier, activity, created := setup(t)

		updated, err := svc.UpdateStatus(context.Background(), created.ID, domain.RegistrationStatusApproved)

		require.NoError(t, err)
		assert.Equal(t, domain.RegistrationStatusApproved, updated.Status)

		require.Len(t, notifier.decisions, 1)
		assert.Equal(t, domain.RegistrationStatusApproved, notifier.decisions[0].Status)
		assert.Equal(t, "Registration Approved", activity.recorded[len(activity.recorded)-1].Action)
	})

	t.Run("rejects an invalid status value", func(t *testing.T) {
		svc, _, _, created := setup(t)

		_, err := svc.UpdateStatus(context.Background(), created.ID, "Pending")

		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("refuses to re-decide a decided registration", func(t *testing.T) {
		svc, _, _, created := setup(t)

		_, err := svc.UpdateStatus(context.Background(), created.ID, domain.RegistrationStatusApproved)
		require.NoError(t, err)

		_, err = svc.UpdateStatus(context.Background(), created.ID, domain.RegistrationStatusRejected)
		assert.ErrorIs(t, err, ErrRegistrationDecided)
	})

	t.Run("returns not found for an unknown ID", func(t *testing.T) {
		svc, _, _, _ := setup(t)

		_, err := svc.UpdateStatus(context.Background(), 999, domain.RegistrationStatusApproved)

		assert.ErrorIs(t, err, ErrRegistrationNotFound)
	})
}

func TestRegistrationService_Lists(t *testing.T) {
	eventRepo := newFakeEventRepo()
	event, err := eventRepo.Create(context.Background(), domain.Event{Title: "Tech Fest"})
	require.NoError(t, err)

	svc := NewRegistrationService(newFakeRegistrationRepo(), eventRepo, &fakeNotifier{}, &fakeActivityRecorder{})

	first, err := svc.Register(context.Background(), event.ID, "Jane", "jane@example.com", "Engineering")
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), event.ID, "John", "john@example.com", "Science")
	require.NoError(t, err)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.ListForStudent(context.Background(), "JANE@example.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "jane@example.com", mine[0].StudentEmail)

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	count, err := svc.CountPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = svc.UpdateStatus(context.Background(), first.ID, domain.RegistrationStatusApproved)
	require.NoError(t, err)

	count, err = svc.CountPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRegistrationService_Delete(t *testing.T) {
	eventRepo := newFakeEventRepo()
	event, err := eventRepo.Create(context.Background(), domain.Event{Title: "Tech Fest"})
	require.NoError(t, err)

	svc := NewRegistrationService(newFakeRegistrationRepo(), eventRepo, &fakeNotifier{}, &fakeActivityRecorder{})

	created, err := svc.Register(context.Background(), event.ID, "Jane", "jane@example.com", "Engineering")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), ErrRegistrationNotFound)
}
