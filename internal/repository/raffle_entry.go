package repository

import (
	"context"
	"time"

	"github.com/metaraffle/backend/internal/entity"
	"github.com/metaraffle/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RaffleEntryRepository interface {
	Increase(ctx context.Context, raffleID, userID string) error
	Get(ctx context.Context, raffleID, userID string) (*entity.RaffleEntry, error)
	GetListByRaffleID(ctx context.Context, raffleID string) ([]entity.RaffleEntry, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.RaffleEntry, error)
	GetActiveByUserID(ctx context.Context, userID string, now time.Time) ([]entity.RaffleEntry, error)
	DeleteByUserID(ctx context.Context, userID string) error
	DeleteByRaffleIDs(ctx context.Context, raffleIDs []string) error

	CreateWinners(ctx context.Context, winners []entity.RaffleWinner) error
	GetWinners(ctx context.Context, raffleID string) ([]entity.RaffleWinner, error)
	IsWinner(ctx context.Context, raffleID, userID string) (bool, error)
	CountWinners(ctx context.Context) (int64, error)
	DeleteWinnersByRaffleIDs(ctx context.Context, raffleIDs []string) error
}

type raffleEntryRepository struct{}

func NewRaffleEntryRepository() *raffleEntryRepository {
	return &raffleEntryRepository{}
}

// Increase adds one ticket to the entry of the user, creating the entry with
// a single ticket if it does not exist.
func (r *raffleEntryRepository) Increase(ctx context.Context, raffleID, userID string) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "raffle_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"entry_count": gorm.Expr("entry_count+1"),
				"updated_at":  time.Now(),
			}),
		}).
		Create(&entity.RaffleEntry{
			RaffleID:   raffleID,
			UserID:     userID,
			EntryCount: 1,
		}).Error
}

func (r *raffleEntryRepository) Get(ctx context.Context, raffleID, userID string) (*entity.RaffleEntry, error) {
	var result entity.RaffleEntry
	err := xcontext.DB(ctx).
		Where("raffle_id=? AND user_id=?", raffleID, userID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *raffleEntryRepository) GetListByRaffleID(ctx context.Context, raffleID string) ([]entity.RaffleEntry, error) {
	var result []entity.RaffleEntry
	err := xcontext.DB(ctx).
		Where("raffle_id=?", raffleID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *raffleEntryRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.RaffleEntry, error) {
	var result []entity.RaffleEntry
	err := xcontext.DB(ctx).
		Preload("Raffle.Event").
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetActiveByUserID returns the entries of the user in active raffles, along
// with the raffle and its event.
func (r *raffleEntryRepository) GetActiveByUserID(
	ctx context.Context, userID string, now time.Time,
) ([]entity.RaffleEntry, error) {
	var result []entity.RaffleEntry
	err := xcontext.DB(ctx).
		Preload("Raffle.Event").
		Joins("JOIN raffles ON raffles.id=raffle_entries.raffle_id").
		Where("raffle_entries.user_id=?", userID).
		Where("raffles.status=? AND raffles.end_time>? AND raffles.deleted_at IS NULL",
			entity.RaffleActive, now).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *raffleEntryRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Where("user_id=?", userID).Delete(&entity.RaffleEntry{}).Error
}

func (r *raffleEntryRepository) DeleteByRaffleIDs(ctx context.Context, raffleIDs []string) error {
	if len(raffleIDs) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Where("raffle_id IN (?)", raffleIDs).Delete(&entity.RaffleEntry{}).Error
}

// CreateWinners stores the winners of a raffle. A winner which already exists
// is left untouched.
func (r *raffleEntryRepository) CreateWinners(ctx context.Context, winners []entity.RaffleWinner) error {
	if len(winners) == 0 {
		return nil
	}

	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "raffle_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&winners).Error
}

func (r *raffleEntryRepository) GetWinners(ctx context.Context, raffleID string) ([]entity.RaffleWinner, error) {
	var result []entity.RaffleWinner
	err := xcontext.DB(ctx).
		Where("raffle_id=?", raffleID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *raffleEntryRepository) IsWinner(ctx context.Context, raffleID, userID string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.RaffleWinner{}).
		Where("raffle_id=? AND user_id=?", raffleID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *raffleEntryRepository) CountWinners(ctx context.Context) (int64, error) {
	var result int64
	if err := xcontext.DB(ctx).Model(&entity.RaffleWinner{}).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}

func (r *raffleEntryRepository) DeleteWinnersByRaffleIDs(ctx context.Context, raffleIDs []string) error {
	if len(raffleIDs) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Where("raffle_id IN (?)", raffleIDs).Delete(&entity.RaffleWinner{}).Error
}
