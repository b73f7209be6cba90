package repository

import (
	"context"
	"fmt"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository/dao"
)

var ErrEventNotFound = dao.ErrEventNotFound

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindAll(ctx context.Context) ([]dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (dao.Event, error)
	Delete(ctx context.Context, id uint) (dao.Event, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountByCategory(ctx context.Context) ([]dao.CategoryCount, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, dao.Event{
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date,
		Time:        event.Time,
		Category:    event.Category,
		Venue:       event.Venue,
		Image:       event.Image,
		CreatedBy:   event.CreatedBy,
		Status:      event.Status,
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return eventDaoToDomain(created), nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	events := make([]domain.Event, 0, len(found))
	for _, e := range found {
		events = append(events, eventDaoToDomain(e))
	}

	return events, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return eventDaoToDomain(found), nil
}

func (r *EventRepository) Update(ctx context.Context, id uint, update domain.EventUpdate) (domain.Event, error) {
	fields := map[string]interface{}{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Date != nil {
		fields["date"] = *update.Date
	}
	if update.Time != nil {
		fields["time"] = *update.Time
	}
	if update.Category != nil {
		fields["category"] = *update.Category
	}
	if update.Venue != nil {
		fields["venue"] = *update.Venue
	}
	if update.Image != nil {
		fields["image"] = *update.Image
	}

	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}

	updated, err := r.dao.Update(ctx, id, fields)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return eventDaoToDomain(updated), nil
}

func (r *EventRepository) Delete(ctx context.Context, id uint) (domain.Event, error) {
	deleted, err := r.dao.Delete(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return eventDaoToDomain(deleted), nil
}

func (r *EventRepository) CountAll(ctx context.Context) (int64, error) {
	count, err := r.dao.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountAll -> %w", err)
	}

	return count, nil
}

func (r *EventRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	count, err := r.dao.CountByStatus(ctx, status)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	return count, nil
}

func (r *EventRepository) CountByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	found, err := r.dao.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountByCategory -> %w", err)
	}

	counts := make([]domain.CategoryCount, 0, len(found))
	for _, c := range found {
		counts = append(counts, domain.CategoryCount{
			Category: c.Category,
			Count:    c.Count,
		})
	}

	return counts, nil
}

func eventDaoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Time:        e.Time,
		Category:    e.Category,
		Venue:       e.Venue,
		Image:       e.Image,
		CreatedBy:   e.CreatedBy,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
