package repository

import (
	"context"

	"github.com/metaraffle/backend/internal/entity"
	"github.com/metaraffle/backend/pkg/xcontext"
)

type EventRepository interface {
	Create(ctx context.Context, data *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	GetList(ctx context.Context) ([]entity.Event, error)
	GetListByCreatorID(ctx context.Context, creatorID string) ([]entity.Event, error)
	Count(ctx context.Context) (int64, error)
}

type eventRepository struct{}

func NewEventRepository() *eventRepository {
	return &eventRepository{}
}

func (r *eventRepository) Create(ctx context.Context, data *entity.Event) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	var result entity.Event
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *eventRepository) GetList(ctx context.Context) ([]entity.Event, error) {
	var result []entity.Event
	if err := xcontext.DB(ctx).Order("created_at DESC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *eventRepository) GetListByCreatorID(ctx context.Context, creatorID string) ([]entity.Event, error) {
	var result []entity.Event
	err := xcontext.DB(ctx).
		Where("creator_id=?", creatorID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *eventRepository) Count(ctx context.Context) (int64, error) {
	var result int64
	if err := xcontext.DB(ctx).Model(&entity.Event{}).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}
