package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository"
)

type fakeFeedbackRepo struct {
	feedbacks map[uint]domain.Feedback
	nextID    uint
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{feedbacks: make(map[uint]domain.Feedback), nextID: 1}
}

func (r *fakeFeedbackRepo) Create(_ context.Context, feedback domain.Feedback) (domain.Feedback, error) {
	for _, existing := range r.feedbacks {
		if existing.EventID == feedback.EventID && existing.Email == feedback.Email {
			return domain.Feedback{}, repository.ErrFeedbackExists
		}
	}

	feedback.ID = r.nextID
	r.nextID++
	r.feedbacks[feedback.ID] = feedback

	return feedback, nil
}

func (r *fakeFeedbackRepo) FindByEventAndEmail(_ context.Context, eventID uint, email string) (domain.Feedback, error) {
	for _, feedback := range r.feedbacks {
		if feedback.EventID == eventID && feedback.Email == email {
			return feedback, nil
		}
	}

	return domain.Feedback{}, repository.ErrFeedbackNotFound
}

func (r *fakeFeedbackRepo) FindAll(_ context.Context) ([]domain.Feedback, error) {
	var feedbacks []domain.Feedback
	for _, feedback := range r.feedbacks {
		feedbacks = append(feedbacks, feedback)
	}

	return feedbacks, nil
}

func (r *fakeFeedbackRepo) UpdateOnce(_ context.Context, id uint, rating int, comments string) (domain.Feedback, error) {
	feedback, ok := r.feedbacks[id]
	if !ok {
		return domain.Feedback{}, repository.ErrFeedbackNotFound
	}
	if feedback.EditCount >= domain.MaxFeedbackEdits {
		return domain.Feedback{}, repository.ErrFeedbackLocked
	}

	feedback.Rating = rating
	feedback.Comments = comments
	feedback.EditCount++
	r.feedbacks[id] = feedback

	return feedback, nil
}

func (r *fakeFeedbackRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.feedbacks[id]; !ok {
		return repository.ErrFeedbackNotFound
	}
	delete(r.feedbacks, id)

	return nil
}

func setupFeedbackService(t *testing.T) (*FeedbackService, *fakeRegistrationRepo, domain.Event) {
	t.Helper()

	eventRepo := newFakeEventRepo()
	event, err := eventRepo.Create(context.Background(), domain.Event{Title: "Tech Fest"})
	require.NoError(t, err)

	regRepo := newFakeRegistrationRepo()
	_, err = regRepo.Create(context.Background(), domain.Registration{
		EventID:      event.ID,
		StudentEmail: "jane@example.com",
	})
	require.NoError(t, err)

	return NewFeedbackService(newFakeFeedbackRepo(), eventRepo, regRepo), regRepo, event
}

func TestFeedbackService_Submit(t *testing.T) {
	t.Run("creates feedback and flags the registration", func(t *testing.T) {
		svc, regRepo, event := setupFeedbackService(t)

		created, err := svc.Submit(context.Background(), domain.Feedback{
			EventID:  event.ID,
			Name:     "Jane",
			Email:    " Jane@Example.com ",
			Rating:   4,
			Comments: "great event",
		})

		require.NoError(t, err)
		assert.Equal(t, 0, created.EditCount)
		assert.Equal(t, "jane@example.com", created.Email)

		registrations, err := regRepo.FindByStudentEmail(context.Background(), "jane@example.com")
		require.NoError(t, err)
		require.Len(t, registrations, 1)
		assert.True(t, registrations[0].FeedbackGiven)
	})

	t.Run("permits exactly one edit", func(t *testing.T) {
		svc, _, event := setupFeedbackService(t)

		feedback := domain.Feedback{EventID: event.ID, Email: "jane@example.com", Rating: 4, Comments: "good"}

		_, err := svc.Submit(context.Background(), feedback)
		require.NoError(t, err)

		feedback.Rating = 5
		feedback.Comments = "even better on reflection"
		edited, err := svc.Submit(context.Background(), feedback)
		require.NoError(t, err)
		assert.Equal(t, 1, edited.EditCount)
		assert.Equal(t, 5, edited.Rating)

		_, err = svc.Submit(context.Background(), feedback)
		assert.ErrorIs(t, err, ErrFeedbackLocked)
	})

	t.Run("rejects an unknown event", func(t *testing.T) {
		svc, _, _ := setupFeedbackService(t)

		_, err := svc.Submit(context.Background(), domain.Feedback{EventID: 999, Email: "jane@example.com", Rating: 3})

		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestFeedbackService_Check(t *testing.T) {
	svc, _, event := setupFeedbackService(t)

	t.Run("reports absence without mutating", func(t *testing.T) {
		_, found, err := svc.Check(context.Background(), event.ID, "jane@example.com")

		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("returns existing feedback", func(t *testing.T) {
		_, err := svc.Submit(context.Background(), domain.Feedback{
			EventID: event.ID, Email: "jane@example.com", Rating: 4, Comments: "good",
		})
		require.NoError(t, err)

		feedback, found, err := svc.Check(context.Background(), event.ID, " JANE@example.com ")

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 4, feedback.Rating)

		again, foundAgain, err := svc.Check(context.Background(), event.ID, "jane@example.com")
		require.NoError(t, err)
		assert.True(t, foundAgain)
		assert.Equal(t, feedback.EditCount, again.EditCount)
	})
}

func TestFeedbackService_Delete(t *testing.T) {
	svc, _, event := setupFeedbackService(t)

	created, err := svc.Submit(context.Background(), domain.Feedback{
		EventID: event.ID, Email: "jane@example.com", Rating: 4,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), ErrFeedbackNotFound)
}
