package domain

import (
	"context"
	"errors"

	"github.com/metaraffle/backend/internal/common"
	"github.com/metaraffle/backend/internal/model"
	"github.com/metaraffle/backend/internal/repository"
	"github.com/metaraffle/backend/pkg/errorx"
	"github.com/metaraffle/backend/pkg/xcontext"
	"github.com/metaraffle/backend/pkg/xredis"
)

type StatisticDomain interface {
	GetStats(context.Context, *model.GetStatsRequest) (*model.GetStatsResponse, error)
}

type statisticDomain struct {
	userRepo        repository.UserRepository
	eventRepo       repository.EventRepository
	raffleEntryRepo repository.RaffleEntryRepository
	redisClient     xredis.Client
}

// NewStatisticDomain creates the statistic domain. The redis client is
// optional; without it every request reads the database.
func NewStatisticDomain(
	userRepo repository.UserRepository,
	eventRepo repository.EventRepository,
	raffleEntryRepo repository.RaffleEntryRepository,
	redisClient xredis.Client,
) *statisticDomain {
	return &statisticDomain{
		userRepo:        userRepo,
		eventRepo:       eventRepo,
		raffleEntryRepo: raffleEntryRepo,
		redisClient:     redisClient,
	}
}

func (d *statisticDomain) GetStats(
	ctx context.Context, req *model.GetStatsRequest,
) (*model.GetStatsResponse, error) {
	if d.redisClient != nil {
		cached := model.GetStatsResponse{}
		err := d.redisClient.GetObj(ctx, common.RedisKeyStats, &cached)
		if err == nil {
			return &cached, nil
		}

		if !errors.Is(err, xredis.ErrNotFound) {
			xcontext.Logger(ctx).Warnf("Cannot get cached stats: %v", err)
		}
	}

	totalEvents, err := d.eventRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count events: %v", err)
		return nil, errorx.Unknown
	}

	activeUsers, err := d.userRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count users: %v", err)
		return nil, errorx.Unknown
	}

	points, err := d.userRepo.TotalPoints(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot sum points: %v", err)
		return nil, errorx.Unknown
	}

	winners, err := d.raffleEntryRepo.CountWinners(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count winners: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetStatsResponse{
		TotalEvents:       totalEvents,
		ActiveUsers:       activeUsers,
		PointsDistributed: points,
		RaffleWinners:     winners,
	}

	if d.redisClient != nil {
		ttl := xcontext.Configs(ctx).Redis.StatsTTL
		if err := d.redisClient.SetObj(ctx, common.RedisKeyStats, resp, ttl); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot cache stats: %v", err)
		}
	}

	return resp, nil
}
