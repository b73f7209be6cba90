package repository

import (
	"context"
	"fmt"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository/dao"
)

type ActivityDAO interface {
	Insert(ctx context.Context, activity dao.Activity) (dao.Activity, error)
	FindRecent(ctx context.Context, limit int) ([]dao.Activity, error)
}

type ActivityRepository struct {
	dao ActivityDAO
}

func NewActivityRepository(dao ActivityDAO) *ActivityRepository {
	return &ActivityRepository{
		dao: dao,
	}
}

func (r *ActivityRepository) Record(ctx context.Context, eventName, action string) (domain.Activity, error) {
	created, err := r.dao.Insert(ctx, dao.Activity{
		EventName: eventName,
		Action:    action,
	})
	if err != nil {
		return domain.Activity{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return activityDaoToDomain(created), nil
}

func (r *ActivityRepository) FindRecent(ctx context.Context, limit int) ([]domain.Activity, error) {
	found, err := r.dao.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindRecent -> %w", err)
	}

	activities := make([]domain.Activity, 0, len(found))
	for _, a := range found {
		activities = append(activities, activityDaoToDomain(a))
	}

	return activities, nil
}

func activityDaoToDomain(a dao.Activity) domain.Activity {
	return domain.Activity{
		ID:        a.ID,
		EventName: a.EventName,
		Action:    a.Action,
		Timestamp: a.CreatedAt,
	}
}
