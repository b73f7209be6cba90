package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository"
)

var ErrEventNotFound = repository.ErrEventNotFound

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	Update(ctx context.Context, id uint, update domain.EventUpdate) (domain.Event, error)
	Delete(ctx context.Context, id uint) (domain.Event, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountByCategory(ctx context.Context) ([]domain.CategoryCount, error)
}

// ImageStore is the object-storage boundary. The returned URL is persisted
// on the event.
type ImageStore interface {
	Upload(filename string, reader io.Reader) (string, error)
}

type ActivityRecorder interface {
	Record(ctx context.Context, eventName, action string) (domain.Activity, error)
}

type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

type EventService struct {
	repo     EventRepository
	images   ImageStore
	activity ActivityRecorder
}

func NewEventService(repo EventRepository, images ImageStore, activity ActivityRecorder) *EventService {
	return &EventService{
		repo:     repo,
		images:   images,
		activity: activity,
	}
}

// CreateEvent uploads the optional image first; the event row is only written
// once the hosted URL is known.
func (s *EventService) CreateEvent(ctx context.Context, event domain.Event, image *ImageUpload) (domain.Event, error) {
	if image != nil {
		url, err := s.images.Upload(image.Filename, image.Reader)
		if err != nil {
			return domain.Event{}, fmt.Errorf("s.images.Upload -> %w", err)
		}
		event.Image = url
	}

	if event.CreatedBy == "" {
		event.CreatedBy = "Admin"
	}
	if event.Status == "" {
		event.Status = "Active"
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.recordActivity(ctx, created.Title, "New Event Created")

	return created, nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, id uint, update domain.EventUpdate, image *ImageUpload) (domain.Event, error) {
	if image != nil {
		url, err := s.images.Upload(image.Filename, image.Reader)
		if err != nil {
			return domain.Event{}, fmt.Errorf("s.images.Upload -> %w", err)
		}
		update.Image = &url
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	s.recordActivity(ctx, updated.Title, "Event Updated")

	return updated, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return ErrEventNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	s.recordActivity(ctx, deleted.Title, "Event Deleted")

	return nil
}

func (s *EventService) GetEventStats(ctx context.Context) (domain.EventStats, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return domain.EventStats{}, fmt.Errorf("s.repo.CountAll -> %w", err)
	}

	categories, err := s.repo.CountByCategory(ctx)
	if err != nil {
		return domain.EventStats{}, fmt.Errorf("s.repo.CountByCategory -> %w", err)
	}

	return domain.EventStats{
		TotalEvents: total,
		Categories:  categories,
	}, nil
}

// recordActivity keeps the audit feed best-effort: a write failure is logged
// and never fails the parent operation.
func (s *EventService) recordActivity(ctx context.Context, eventName, action string) {
	if _, err := s.activity.Record(ctx, eventName, action); err != nil {
		zap.L().Warn("failed to record activity",
			zap.String("event", eventName),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
