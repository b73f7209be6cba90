package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrFeedbackExists   = errors.New("feedback already exists")
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrFeedbackLocked   = errors.New("feedback already edited once")
)

type Feedback struct {
	ID uint `gorm:"primaryKey"`

	EventID uint  `gorm:"not null;uniqueIndex:idx_feedbacks_event_email"`
	Event   Event `gorm:"foreignKey:EventID"`

	Name     string `gorm:"not null"`
	Email    string `gorm:"not null;uniqueIndex:idx_feedbacks_event_email"`
	Rating   int    `gorm:"not null"`
	Comments string `gorm:"not null"`

	EditCount int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type FeedbackDAO struct {
	db *gorm.DB
}

func NewFeedbackDAO(db *gorm.DB) *FeedbackDAO {
	return &FeedbackDAO{
		db: db,
	}
}

func (d *FeedbackDAO) Insert(ctx context.Context, feedback Feedback) (Feedback, error) {
	result := d.db.WithContext(ctx).Create(&feedback)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "idx_feedbacks_event_email") {
			return Feedback{}, ErrFeedbackExists
		}

		return Feedback{}, result.Error
	}

	return feedback, nil
}

func (d *FeedbackDAO) FindByEventAndEmail(ctx context.Context, eventID uint, email string) (Feedback, error) {
	var feedback Feedback

	result := d.db.WithContext(ctx).
		First(&feedback, "event_id = ? AND email = ?", eventID, email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Feedback{}, ErrFeedbackNotFound
		}

		return Feedback{}, result.Error
	}

	return feedback, nil
}

func (d *FeedbackDAO) FindAll(ctx context.Context) ([]Feedback, error) {
	var feedbacks []Feedback

	result := d.db.WithContext(ctx).
		Preload("Event").
		Order("created_at DESC").
		Find(&feedbacks)
	if result.Error != nil {
		return nil, result.Error
	}

	return feedbacks, nil
}

// UpdateOnce edits rating and comments while incrementing edit_count, all
// guarded by edit_count < maxEdits inside the same UPDATE. A second edit
// loses the race by construction and maps to ErrFeedbackLocked.
func (d *FeedbackDAO) UpdateOnce(ctx context.Context, id uint, rating int, comments string, maxEdits int) (Feedback, error) {
	result := d.db.WithContext(ctx).
		Model(&Feedback{}).
		Where("id = ? AND edit_count < ?", id, maxEdits).
		Updates(map[string]interface{}{
			"rating":     rating,
			"comments":   comments,
			"edit_count": gorm.Expr("edit_count + 1"),
		})
	if result.Error != nil {
		return Feedback{}, result.Error
	}

	if result.RowsAffected == 0 {
		var feedback Feedback
		if err := d.db.WithContext(ctx).First(&feedback, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Feedback{}, ErrFeedbackNotFound
			}

			return Feedback{}, err
		}

		return Feedback{}, ErrFeedbackLocked
	}

	var updated Feedback
	if err := d.db.WithContext(ctx).First(&updated, id).Error; err != nil {
		return Feedback{}, err
	}

	return updated, nil
}

func (d *FeedbackDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Feedback{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFeedbackNotFound
	}

	return nil
}
