package domain

import (
	"context"
	"testing"
	"time"

	"github.com/metaraffle/backend/internal/common"
	"github.com/metaraffle/backend/internal/entity"
	"github.com/metaraffle/backend/internal/model"
	"github.com/metaraffle/backend/internal/repository"
	"github.com/metaraffle/backend/pkg/testutil"
	"github.com/metaraffle/backend/pkg/xcontext"
	"github.com/metaraffle/backend/pkg/xredis"
	"github.com/stretchr/testify/require"
)

func Test_statisticDomain_GetStats(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	winner := entity.RaffleWinner{RaffleID: testutil.Raffle4.ID, UserID: testutil.User1.ID}
	require.NoError(t, xcontext.DB(ctx).Create(&winner).Error)

	d := NewStatisticDomain(
		repository.NewUserRepository(),
		repository.NewEventRepository(),
		repository.NewRaffleEntryRepository(),
		nil,
	)

	resp, err := d.GetStats(ctx, &model.GetStatsRequest{})
	require.NoError(t, err)
	require.Equal(t, &model.GetStatsResponse{
		TotalEvents:       int64(len(testutil.Events)),
		ActiveUsers:       int64(len(testutil.Users)),
		PointsDistributed: testutil.User1.Points + testutil.User2.Points + testutil.User3.Points,
		RaffleWinners:     1,
	}, resp)
}

func Test_statisticDomain_GetStats_Cache(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	var cached *model.GetStatsResponse
	var cachedTTL time.Duration
	redisClient := &testutil.MockRedisClient{
		GetObjFunc: func(ctx context.Context, key string, v any) error {
			require.Equal(t, common.RedisKeyStats, key)
			if cached == nil {
				return xredis.ErrNotFound
			}

			*v.(*model.GetStatsResponse) = *cached
			return nil
		},
		SetObjFunc: func(ctx context.Context, key string, obj any, ttl time.Duration) error {
			cached = obj.(*model.GetStatsResponse)
			cachedTTL = ttl
			return nil
		},
	}

	d := NewStatisticDomain(
		repository.NewUserRepository(),
		repository.NewEventRepository(),
		repository.NewRaffleEntryRepository(),
		redisClient,
	)

	first, err := d.GetStats(ctx, &model.GetStatsRequest{})
	require.NoError(t, err)
	require.NotNil(t, cached)
	require.Equal(t, xcontext.Configs(ctx).Redis.StatsTTL, cachedTTL)

	// A new event is not visible until the cache expires.
	_, _, err = testutil.SampleEvent(ctx, nil)
	require.NoError(t, err)

	second, err := d.GetStats(ctx, &model.GetStatsRequest{})
	require.NoError(t, err)
	require.Equal(t, first, second)
}
