package repository

import (
	"context"
	"time"

	"github.com/metaraffle/backend/internal/entity"
	"github.com/metaraffle/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type RaffleRepository interface {
	Create(ctx context.Context, data *entity.Raffle) error
	GetByID(ctx context.Context, id string) (*entity.Raffle, error)
	GetByEventID(ctx context.Context, eventID string) (*entity.Raffle, error)
	GetActive(ctx context.Context, now time.Time) ([]entity.Raffle, error)
	GetAll(ctx context.Context) ([]entity.Raffle, error)
	CheckOpen(ctx context.Context, id string, now time.Time) error
	End(ctx context.Context, id string) error
}

type raffleRepository struct{}

func NewRaffleRepository() *raffleRepository {
	return &raffleRepository{}
}

func (r *raffleRepository) Create(ctx context.Context, data *entity.Raffle) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *raffleRepository) GetByID(ctx context.Context, id string) (*entity.Raffle, error) {
	var result entity.Raffle
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *raffleRepository) GetByEventID(ctx context.Context, eventID string) (*entity.Raffle, error) {
	var result entity.Raffle
	if err := xcontext.DB(ctx).Where("event_id=?", eventID).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetActive returns raffles which are still active and whose end time has not
// come yet, along with their events.
func (r *raffleRepository) GetActive(ctx context.Context, now time.Time) ([]entity.Raffle, error) {
	var result []entity.Raffle
	err := xcontext.DB(ctx).
		Preload("Event").
		Where("status=? AND end_time>?", entity.RaffleActive, now).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *raffleRepository) GetAll(ctx context.Context) ([]entity.Raffle, error) {
	var result []entity.Raffle
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// CheckOpen touches the raffle only if it still accepts entries. Inside a
// transaction this holds the row until commit, so a concurrent End waits for
// it. It returns gorm.ErrRecordNotFound if the raffle is not open.
func (r *raffleRepository) CheckOpen(ctx context.Context, id string, now time.Time) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Raffle{}).
		Where("id=? AND status=? AND end_time>?", id, entity.RaffleActive, now).
		Update("updated_at", now)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// End moves an active raffle to the ended status. It returns
// gorm.ErrRecordNotFound if the raffle does not exist or was already ended.
func (r *raffleRepository) End(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Raffle{}).
		Where("id=? AND status=?", id, entity.RaffleActive).
		Update("status", entity.RaffleEnded)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
