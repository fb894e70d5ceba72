// Package ledger owns the SP balance of users. Every mutation is a single
// conditional update, so concurrent requests never drive a balance negative.
package ledger

import (
	"context"
	"errors"

	"github.com/metaraffle/backend/internal/repository"
	"github.com/metaraffle/backend/pkg/errorx"
	"github.com/metaraffle/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type Ledger interface {
	Debit(ctx context.Context, userID string, amount uint64) error
	Credit(ctx context.Context, userID string, amount uint64) error
	Balance(ctx context.Context, userID string) (uint64, error)
}

type ledger struct {
	userRepo repository.UserRepository
}

func New(userRepo repository.UserRepository) *ledger {
	return &ledger{userRepo: userRepo}
}

func (l *ledger) Debit(ctx context.Context, userID string, amount uint64) error {
	if amount == 0 {
		return errorx.New(errorx.BadRequest, "Amount must be a positive number")
	}

	err := l.userRepo.DecreasePoints(ctx, userID, amount)
	if err == nil {
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot decrease points: %v", err)
		return errorx.Unknown
	}

	// The conditional update does not tell a missing user apart from a low
	// balance.
	if _, err := l.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return errorx.Unknown
	}

	return errorx.New(errorx.InsufficientFunds, "Not enough points, required %d", amount)
}

func (l *ledger) Credit(ctx context.Context, userID string, amount uint64) error {
	if amount == 0 {
		return errorx.New(errorx.BadRequest, "Amount must be a positive number")
	}

	if err := l.userRepo.IncreasePoints(ctx, userID, amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot increase points: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (l *ledger) Balance(ctx context.Context, userID string) (uint64, error) {
	user, err := l.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return 0, errorx.Unknown
	}

	return user.Points, nil
}
