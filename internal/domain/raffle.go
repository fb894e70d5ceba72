package domain

import (
	"context"
	"errors"
	"time"

	"github.com/metaraffle/backend/internal/common"
	"github.com/metaraffle/backend/internal/domain/ledger"
	"github.com/metaraffle/backend/internal/domain/raffledraw"
	"github.com/metaraffle/backend/internal/domain/settlement"
	"github.com/metaraffle/backend/internal/entity"
	"github.com/metaraffle/backend/internal/model"
	"github.com/metaraffle/backend/internal/repository"
	"github.com/metaraffle/backend/pkg/errorx"
	"github.com/metaraffle/backend/pkg/xcontext"
	"github.com/metaraffle/backend/pkg/xredis"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type RaffleDomain interface {
	Enter(context.Context, *model.EnterRaffleRequest) (*model.EnterRaffleResponse, error)
	Draw(context.Context, *model.DrawRaffleRequest) (*model.DrawRaffleResponse, error)
	GetWinnerStatus(context.Context, *model.GetWinnerStatusRequest) (*model.GetWinnerStatusResponse, error)
	GetActive(context.Context, *model.GetActiveRafflesRequest) (*model.GetActiveRafflesResponse, error)
	GetMyEntries(context.Context, *model.GetMyEntriesRequest) (*model.GetMyEntriesResponse, error)
	MakeWinner(context.Context, *model.MakeWinnerRequest) (*model.MakeWinnerResponse, error)
	Clear(context.Context, *model.ClearRafflesRequest) (*model.ClearRafflesResponse, error)
}

type raffleDomain struct {
	eventRepo       repository.EventRepository
	raffleRepo      repository.RaffleRepository
	raffleEntryRepo repository.RaffleEntryRepository
	ledger          ledger.Ledger
	selector        *raffledraw.Selector
	notifier        settlement.Notifier
	redisClient     xredis.Client
}

func NewRaffleDomain(
	eventRepo repository.EventRepository,
	raffleRepo repository.RaffleRepository,
	raffleEntryRepo repository.RaffleEntryRepository,
	ledger ledger.Ledger,
	selector *raffledraw.Selector,
	notifier settlement.Notifier,
	redisClient xredis.Client,
) *raffleDomain {
	return &raffleDomain{
		eventRepo:       eventRepo,
		raffleRepo:      raffleRepo,
		raffleEntryRepo: raffleEntryRepo,
		ledger:          ledger,
		selector:        selector,
		notifier:        notifier,
		redisClient:     redisClient,
	}
}

// dropStats removes the cached platform stats so the next read sees the
// new winners.
func (d *raffleDomain) dropStats(ctx context.Context) {
	if d.redisClient == nil {
		return
	}

	if err := d.redisClient.Del(ctx, common.RedisKeyStats); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot drop cached stats: %v", err)
	}
}

func (d *raffleDomain) Enter(
	ctx context.Context, req *model.EnterRaffleRequest,
) (*model.EnterRaffleResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	now := time.Now()

	raffle, err := d.raffleRepo.GetByID(ctx, req.RaffleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.RaffleNotFound, "Not found raffle")
		}

		xcontext.Logger(ctx).Errorf("Cannot get raffle: %v", err)
		return nil, errorx.Unknown
	}

	if !raffle.IsOpen(now) {
		return nil, errorx.New(errorx.RaffleClosed, "Raffle is closed")
	}

	event, err := d.eventRepo.GetByID(ctx, raffle.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.EventNotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The raffle may have been drawn since it was read above.
	if err := d.raffleRepo.CheckOpen(ctx, raffle.ID, now); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.RaffleClosed, "Raffle is closed")
		}

		xcontext.Logger(ctx).Errorf("Cannot check raffle: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.ledger.Debit(ctx, userID, event.EntryPoints); err != nil {
		return nil, err
	}

	if err := d.raffleEntryRepo.Increase(ctx, raffle.ID, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase raffle entry: %v", err)
		return nil, errorx.Unknown
	}

	entry, err := d.raffleEntryRepo.Get(ctx, raffle.ID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get raffle entry: %v", err)
		return nil, errorx.Unknown
	}

	remaining, err := d.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}

	ctx, err = xcontext.WithCommitDBTransaction(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit the transaction: %v", err)
		return nil, errorx.Unknown
	}

	d.notifier.Notify(ctx, settlement.Message{
		Kind:     settlement.Debit,
		UserID:   userID,
		RaffleID: raffle.ID,
		Amount:   event.EntryPoints,
	})

	return &model.EnterRaffleResponse{
		Entry:           convertRaffleEntry(entry),
		RemainingPoints: remaining,
	}, nil
}

func (d *raffleDomain) Draw(
	ctx context.Context, req *model.DrawRaffleRequest,
) (*model.DrawRaffleResponse, error) {
	event, err := d.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.EventNotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	raffle, err := d.raffleRepo.GetByEventID(ctx, event.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.RaffleNotFound, "Not found raffle")
		}

		xcontext.Logger(ctx).Errorf("Cannot get raffle: %v", err)
		return nil, errorx.Unknown
	}

	if raffle.Status != entity.RaffleActive {
		return nil, errorx.New(errorx.RaffleClosed, "Raffle was already drawn")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// Ending the raffle first makes the draw at-most-once and blocks entries
	// until the winners are stored.
	if err := d.raffleRepo.End(ctx, raffle.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.RaffleClosed, "Raffle was already drawn")
		}

		xcontext.Logger(ctx).Errorf("Cannot end raffle: %v", err)
		return nil, errorx.Unknown
	}

	entries, err := d.raffleEntryRepo.GetListByRaffleID(ctx, raffle.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get raffle entries: %v", err)
		return nil, errorx.Unknown
	}

	pool := []raffledraw.Entry{}
	for _, e := range entries {
		pool = append(pool, raffledraw.Entry{UserID: e.UserID, EntryCount: e.EntryCount})
	}

	winnerIDs, err := d.selector.Select(pool, event.MaxWinners)
	if err != nil {
		if errors.Is(err, raffledraw.ErrNoEntries) {
			common.PromCounters[common.RaffleDrawTotal].WithLabelValues("no_entries").Inc()
			return nil, errorx.New(errorx.NoEntries, "No entries found")
		}

		xcontext.Logger(ctx).Errorf("Cannot select winners: %v", err)
		return nil, errorx.Unknown
	}

	winners := []entity.RaffleWinner{}
	for _, id := range winnerIDs {
		winners = append(winners, entity.RaffleWinner{RaffleID: raffle.ID, UserID: id})
	}

	if err := d.raffleEntryRepo.CreateWinners(ctx, winners); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create winners: %v", err)
		return nil, errorx.Unknown
	}

	ctx, err = xcontext.WithCommitDBTransaction(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit the transaction: %v", err)
		return nil, errorx.Unknown
	}

	common.PromCounters[common.RaffleDrawTotal].WithLabelValues("drawn").Inc()
	d.dropStats(ctx)
	d.notifier.Notify(ctx, settlement.Message{
		Kind:     settlement.Draw,
		RaffleID: raffle.ID,
		Winners:  winnerIDs,
	})

	return &model.DrawRaffleResponse{
		WinnersCount:   len(winnerIDs),
		IsCallerWinner: slices.Contains(winnerIDs, xcontext.RequestUserID(ctx)),
	}, nil
}

func (d *raffleDomain) GetWinnerStatus(
	ctx context.Context, req *model.GetWinnerStatusRequest,
) (*model.GetWinnerStatusResponse, error) {
	raffle, err := d.raffleRepo.GetByEventID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.RaffleNotFound, "Not found raffle")
		}

		xcontext.Logger(ctx).Errorf("Cannot get raffle: %v", err)
		return nil, errorx.Unknown
	}

	isWinner, err := d.raffleEntryRepo.IsWinner(ctx, raffle.ID, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check winner: %v", err)
		return nil, errorx.Unknown
	}

	if !isWinner {
		return &model.GetWinnerStatusResponse{IsWinner: false}, nil
	}

	event, err := d.eventRepo.GetByID(ctx, raffle.EventID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetWinnerStatusResponse{
		IsWinner:   true,
		WorldURL:   event.WorldURL,
		EventTitle: event.Title,
	}, nil
}

func (d *raffleDomain) GetActive(
	ctx context.Context, req *model.GetActiveRafflesRequest,
) (*model.GetActiveRafflesResponse, error) {
	raffles, err := d.raffleRepo.GetActive(ctx, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active raffles: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Raffle{}
	for _, r := range raffles {
		event := convertEvent(&r.Event)
		result = append(result, convertRaffle(&r, &event))
	}

	return &model.GetActiveRafflesResponse{Raffles: result}, nil
}

func (d *raffleDomain) GetMyEntries(
	ctx context.Context, req *model.GetMyEntriesRequest,
) (*model.GetMyEntriesResponse, error) {
	entries, err := d.raffleEntryRepo.GetListByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get raffle entries of user: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.MyEntry{}
	for _, e := range entries {
		result = append(result, model.MyEntry{
			Entry:  convertRaffleEntry(&e),
			Raffle: convertRaffle(&e.Raffle, nil),
			Event:  convertEvent(&e.Raffle.Event),
		})
	}

	return &model.GetMyEntriesResponse{Entries: result}, nil
}

func (d *raffleDomain) MakeWinner(
	ctx context.Context, req *model.MakeWinnerRequest,
) (*model.MakeWinnerResponse, error) {
	raffle, err := d.raffleRepo.GetByEventID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.RaffleNotFound, "Not found raffle")
		}

		xcontext.Logger(ctx).Errorf("Cannot get raffle: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	isWinner, err := d.raffleEntryRepo.IsWinner(ctx, raffle.ID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check winner: %v", err)
		return nil, errorx.Unknown
	}

	if !isWinner {
		winner := entity.RaffleWinner{RaffleID: raffle.ID, UserID: userID}
		if err := d.raffleEntryRepo.CreateWinners(ctx, []entity.RaffleWinner{winner}); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create winner: %v", err)
			return nil, errorx.Unknown
		}
	}

	event, err := d.eventRepo.GetByID(ctx, raffle.EventID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	return &model.MakeWinnerResponse{
		EventID:    event.ID,
		EventTitle: event.Title,
		WorldURL:   event.WorldURL,
	}, nil
}

func (d *raffleDomain) Clear(
	ctx context.Context, req *model.ClearRafflesRequest,
) (*model.ClearRafflesResponse, error) {
	raffles, err := d.raffleRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get raffles: %v", err)
		return nil, errorx.Unknown
	}

	raffleIDs := []string{}
	for _, r := range raffles {
		raffleIDs = append(raffleIDs, r.ID)
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.raffleEntryRepo.DeleteByRaffleIDs(ctx, raffleIDs); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete raffle entries: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.raffleEntryRepo.DeleteWinnersByRaffleIDs(ctx, raffleIDs); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete raffle winners: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit the transaction: %v", err)
		return nil, errorx.Unknown
	}

	d.dropStats(ctx)
	return &model.ClearRafflesResponse{}, nil
}
