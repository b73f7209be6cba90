package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type Event struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`
	Date        string `gorm:"not null"`
	Time        string `gorm:"not null"`
	Category    string `gorm:"not null"`
	Venue       string `gorm:"not null"`
	Image       string
	CreatedBy   string `gorm:"not null;default:Admin"`
	Status      string `gorm:"not null;default:Active"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type CategoryCount struct {
	Category string
	Count    int64
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindAll(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Order("created_at DESC").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) Update(ctx context.Context, id uint, fields map[string]interface{}) (Event, error) {
	result := d.db.WithContext(ctx).
		Model(&Event{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return Event{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Event{}, ErrEventNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *EventDAO) Delete(ctx context.Context, id uint) (Event, error) {
	event, err := d.FindByID(ctx, id)
	if err != nil {
		return Event{}, err
	}

	result := d.db.WithContext(ctx).Delete(&Event{}, id)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) CountAll(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Event{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *EventDAO) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Event{}).Where("status = ?", status).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *EventDAO) CountByCategory(ctx context.Context) ([]CategoryCount, error) {
	var counts []CategoryCount

	result := d.db.WithContext(ctx).
		Model(&Event{}).
		Select("category", "COUNT(*) AS count").
		Group("category").
		Scan(&counts)
	if result.Error != nil {
		return nil, result.Error
	}

	return counts, nil
}
