package repository

import (
	"context"

	"github.com/metaraffle/backend/internal/entity"
	"github.com/metaraffle/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type EventCompletionRepository interface {
	Create(ctx context.Context, data *entity.EventCompletion) error
	GetByID(ctx context.Context, id string) (*entity.EventCompletion, error)
	GetUnclaimedByUserID(ctx context.Context, userID string) ([]entity.EventCompletion, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.EventCompletion, error)
	Claim(ctx context.Context, id string) error
}

type eventCompletionRepository struct{}

func NewEventCompletionRepository() *eventCompletionRepository {
	return &eventCompletionRepository{}
}

func (r *eventCompletionRepository) Create(ctx context.Context, data *entity.EventCompletion) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *eventCompletionRepository) GetByID(ctx context.Context, id string) (*entity.EventCompletion, error) {
	var result entity.EventCompletion
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *eventCompletionRepository) GetUnclaimedByUserID(
	ctx context.Context, userID string,
) ([]entity.EventCompletion, error) {
	var result []entity.EventCompletion
	err := xcontext.DB(ctx).
		Where("user_id=? AND reward_claimed=?", userID, false).
		Order("completed_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *eventCompletionRepository) GetListByUserID(
	ctx context.Context, userID string,
) ([]entity.EventCompletion, error) {
	var result []entity.EventCompletion
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("completed_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Claim marks the reward of a completion as claimed. It returns
// gorm.ErrRecordNotFound if the completion does not exist or its reward was
// already claimed.
func (r *eventCompletionRepository) Claim(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.EventCompletion{}).
		Where("id=? AND reward_claimed=?", id, false).
		Update("reward_claimed", true)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
