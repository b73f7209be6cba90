package repository

import (
	"context"
	"fmt"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository/dao"
)

var (
	ErrFeedbackExists   = dao.ErrFeedbackExists
	ErrFeedbackNotFound = dao.ErrFeedbackNotFound
	ErrFeedbackLocked   = dao.ErrFeedbackLocked
)

type FeedbackDAO interface {
	Insert(ctx context.Context, feedback dao.Feedback) (dao.Feedback, error)
	FindByEventAndEmail(ctx context.Context, eventID uint, email string) (dao.Feedback, error)
	FindAll(ctx context.Context) ([]dao.Feedback, error)
	UpdateOnce(ctx context.Context, id uint, rating int, comments string, maxEdits int) (dao.Feedback, error)
	Delete(ctx context.Context, id uint) error
}

type FeedbackRepository struct {
	dao FeedbackDAO
}

func NewFeedbackRepository(dao FeedbackDAO) *FeedbackRepository {
	return &FeedbackRepository{
		dao: dao,
	}
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error) {
	created, err := r.dao.Insert(ctx, dao.Feedback{
		EventID:  feedback.EventID,
		Name:     feedback.Name,
		Email:    feedback.Email,
		Rating:   feedback.Rating,
		Comments: feedback.Comments,
	})
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return feedbackDaoToDomain(created), nil
}

func (r *FeedbackRepository) FindByEventAndEmail(ctx context.Context, eventID uint, email string) (domain.Feedback, error) {
	found, err := r.dao.FindByEventAndEmail(ctx, eventID, email)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("r.dao.FindByEventAndEmail -> %w", err)
	}

	return feedbackDaoToDomain(found), nil
}

func (r *FeedbackRepository) FindAll(ctx context.Context) ([]domain.Feedback, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	feedbacks := make([]domain.Feedback, 0, len(found))
	for _, f := range found {
		feedbacks = append(feedbacks, feedbackDaoToDomain(f))
	}

	return feedbacks, nil
}

func (r *FeedbackRepository) UpdateOnce(ctx context.Context, id uint, rating int, comments string) (domain.Feedback, error) {
	updated, err := r.dao.UpdateOnce(ctx, id, rating, comments, domain.MaxFeedbackEdits)
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("r.dao.UpdateOnce -> %w", err)
	}

	return feedbackDaoToDomain(updated), nil
}

func (r *FeedbackRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func feedbackDaoToDomain(f dao.Feedback) domain.Feedback {
	return domain.Feedback{
		ID:         f.ID,
		EventID:    f.EventID,
		EventTitle: f.Event.Title,
		Name:       f.Name,
		Email:      f.Email,
		Rating:     f.Rating,
		Comments:   f.Comments,
		EditCount:  f.EditCount,
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}
