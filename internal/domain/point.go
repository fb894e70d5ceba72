package domain

import (
	"context"
	"errors"
	"time"

	"github.com/metaraffle/backend/internal/domain/ledger"
	"github.com/metaraffle/backend/internal/domain/settlement"
	"github.com/metaraffle/backend/internal/model"
	"github.com/metaraffle/backend/internal/repository"
	"github.com/metaraffle/backend/pkg/errorx"
	"github.com/metaraffle/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PointDomain interface {
	GetBalance(context.Context, *model.GetBalanceRequest) (*model.GetBalanceResponse, error)
	Award(context.Context, *model.AwardPointsRequest) (*model.AwardPointsResponse, error)
	RefundEntries(context.Context, *model.RefundEntriesRequest) (*model.RefundEntriesResponse, error)
}

type pointDomain struct {
	userRepo        repository.UserRepository
	raffleEntryRepo repository.RaffleEntryRepository
	ledger          ledger.Ledger
	notifier        settlement.Notifier
}

func NewPointDomain(
	userRepo repository.UserRepository,
	raffleEntryRepo repository.RaffleEntryRepository,
	ledger ledger.Ledger,
	notifier settlement.Notifier,
) *pointDomain {
	return &pointDomain{
		userRepo:        userRepo,
		raffleEntryRepo: raffleEntryRepo,
		ledger:          ledger,
		notifier:        notifier,
	}
}

func (d *pointDomain) GetBalance(
	ctx context.Context, req *model.GetBalanceRequest,
) (*model.GetBalanceResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetBalanceResponse{
		Points:    user.Points,
		UpdatedAt: user.UpdatedAt.Format(defaultTimeLayout),
	}, nil
}

func (d *pointDomain) Award(
	ctx context.Context, req *model.AwardPointsRequest,
) (*model.AwardPointsResponse, error) {
	if req.Amount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Amount must be a positive number")
	}

	userID := xcontext.RequestUserID(ctx)
	if err := d.ledger.Credit(ctx, userID, uint64(req.Amount)); err != nil {
		return nil, err
	}

	balance, err := d.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}

	d.notifier.Notify(ctx, settlement.Message{
		Kind:   settlement.Credit,
		UserID: userID,
		Amount: uint64(req.Amount),
	})

	return &model.AwardPointsResponse{Points: balance}, nil
}

// RefundEntries returns the cost of every entry the user holds in raffles
// which are still open, then removes all entries of the user.
func (d *pointDomain) RefundEntries(
	ctx context.Context, req *model.RefundEntriesRequest,
) (*model.RefundEntriesResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	entries, err := d.raffleEntryRepo.GetActiveByUserID(ctx, userID, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active entries: %v", err)
		return nil, errorx.Unknown
	}

	var refunded uint64
	for _, e := range entries {
		refunded += uint64(e.EntryCount) * e.Raffle.Event.EntryPoints
	}

	if refunded > 0 {
		if err := d.ledger.Credit(ctx, userID, refunded); err != nil {
			return nil, err
		}
	}

	if err := d.raffleEntryRepo.DeleteByUserID(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete entries: %v", err)
		return nil, errorx.Unknown
	}

	balance, err := d.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}

	ctx, err = xcontext.WithCommitDBTransaction(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit the transaction: %v", err)
		return nil, errorx.Unknown
	}

	if refunded > 0 {
		d.notifier.Notify(ctx, settlement.Message{
			Kind:   settlement.Credit,
			UserID: userID,
			Amount: refunded,
		})
	}

	return &model.RefundEntriesResponse{
		Refunded:   refunded,
		NewBalance: balance,
	}, nil
}
