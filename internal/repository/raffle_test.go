package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/metaraffle/backend/internal/entity"
	"github.com/metaraffle/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_raffleRepository_CheckOpen_End(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewRaffleRepository()
	now := time.Now()

	require.NoError(t, repo.CheckOpen(ctx, testutil.Raffle1.ID, now))

	err := repo.CheckOpen(ctx, testutil.Raffle4.ID, now)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	err = repo.CheckOpen(ctx, testutil.Raffle5.ID, now)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	require.NoError(t, repo.End(ctx, testutil.Raffle1.ID))

	// A raffle is ended at most once.
	err = repo.End(ctx, testutil.Raffle1.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	err = repo.CheckOpen(ctx, testutil.Raffle1.ID, now)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	raffle, err := repo.GetByEventID(ctx, testutil.Event1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RaffleEnded, raffle.Status)
}

func Test_raffleRepository_GetActive(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewRaffleRepository()

	raffles, err := repo.GetActive(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, raffles, 3)
	for _, r := range raffles {
		require.Equal(t, entity.RaffleActive, r.Status)
		require.True(t, r.EndTime.After(time.Now()))
		require.Equal(t, r.EventID, r.Event.ID)
	}
}
