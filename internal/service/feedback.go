package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository"
)

var (
	ErrFeedbackNotFound = repository.ErrFeedbackNotFound
	ErrFeedbackLocked   = repository.ErrFeedbackLocked
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error)
	FindByEventAndEmail(ctx context.Context, eventID uint, email string) (domain.Feedback, error)
	FindAll(ctx context.Context) ([]domain.Feedback, error)
	UpdateOnce(ctx context.Context, id uint, rating int, comments string) (domain.Feedback, error)
	Delete(ctx context.Context, id uint) error
}

type FeedbackRegistrationRepository interface {
	SetFeedbackGiven(ctx context.Context, eventID uint, studentEmail string) error
}

type FeedbackService struct {
	repo      FeedbackRepository
	eventRepo RegistrationEventRepository
	regRepo   FeedbackRegistrationRepository
}

func NewFeedbackService(
	repo FeedbackRepository,
	eventRepo RegistrationEventRepository,
	regRepo FeedbackRegistrationRepository,
) *FeedbackService {
	return &FeedbackService{
		repo:      repo,
		eventRepo: eventRepo,
		regRepo:   regRepo,
	}
}

// Submit creates the feedback on first call and permits exactly one edit
// afterwards. The edit gate lives in a conditional UPDATE, so two concurrent
// edits cannot both pass; the loser gets ErrFeedbackLocked.
func (s *FeedbackService) Submit(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error) {
	feedback.Email = NormalizeEmail(feedback.Email)

	if _, err := s.eventRepo.FindByID(ctx, feedback.EventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Feedback{}, ErrEventNotFound
		}

		return domain.Feedback{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	existing, err := s.repo.FindByEventAndEmail(ctx, feedback.EventID, feedback.Email)
	switch {
	case err == nil:
		return s.edit(ctx, existing.ID, feedback)

	case errors.Is(err, repository.ErrFeedbackNotFound):
		created, err := s.repo.Create(ctx, feedback)
		if err != nil {
			// A concurrent first submission won the insert; fall back to the
			// single permitted edit.
			if errors.Is(err, repository.ErrFeedbackExists) {
				winner, findErr := s.repo.FindByEventAndEmail(ctx, feedback.EventID, feedback.Email)
				if findErr != nil {
					return domain.Feedback{}, fmt.Errorf("s.repo.FindByEventAndEmail -> %w", findErr)
				}

				return s.edit(ctx, winner.ID, feedback)
			}

			return domain.Feedback{}, fmt.Errorf("s.repo.Create -> %w", err)
		}

		if err = s.regRepo.SetFeedbackGiven(ctx, feedback.EventID, feedback.Email); err != nil {
			return domain.Feedback{}, fmt.Errorf("s.regRepo.SetFeedbackGiven -> %w", err)
		}

		return created, nil

	default:
		return domain.Feedback{}, fmt.Errorf("s.repo.FindByEventAndEmail -> %w", err)
	}
}

func (s *FeedbackService) edit(ctx context.Context, id uint, feedback domain.Feedback) (domain.Feedback, error) {
	updated, err := s.repo.UpdateOnce(ctx, id, feedback.Rating, feedback.Comments)
	if err != nil {
		if errors.Is(err, repository.ErrFeedbackLocked) {
			return domain.Feedback{}, ErrFeedbackLocked
		}

		return domain.Feedback{}, fmt.Errorf("s.repo.UpdateOnce -> %w", err)
	}

	if err = s.regRepo.SetFeedbackGiven(ctx, feedback.EventID, feedback.Email); err != nil {
		return domain.Feedback{}, fmt.Errorf("s.regRepo.SetFeedbackGiven -> %w", err)
	}

	return updated, nil
}

// Check never mutates state; the client uses it to pre-fill the form and
// decide between create and edit mode.
func (s *FeedbackService) Check(ctx context.Context, eventID uint, email string) (domain.Feedback, bool, error) {
	feedback, err := s.repo.FindByEventAndEmail(ctx, eventID, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrFeedbackNotFound) {
			return domain.Feedback{}, false, nil
		}

		return domain.Feedback{}, false, fmt.Errorf("s.repo.FindByEventAndEmail -> %w", err)
	}

	return feedback, true, nil
}

func (s *FeedbackService) ListAll(ctx context.Context) ([]domain.Feedback, error) {
	feedbacks, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return feedbacks, nil
}

func (s *FeedbackService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrFeedbackNotFound) {
			return ErrFeedbackNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
