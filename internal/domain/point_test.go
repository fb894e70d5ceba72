package domain

import (
	"errors"
	"testing"

	"github.com/metaraffle/backend/internal/domain/ledger"
	"github.com/metaraffle/backend/internal/domain/settlement"
	"github.com/metaraffle/backend/internal/entity"
	"github.com/metaraffle/backend/internal/model"
	"github.com/metaraffle/backend/internal/repository"
	"github.com/metaraffle/backend/pkg/errorx"
	"github.com/metaraffle/backend/pkg/testutil"
	"github.com/metaraffle/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestPointDomain(notifier settlement.Notifier) *pointDomain {
	userRepo := repository.NewUserRepository()
	return NewPointDomain(userRepo, repository.NewRaffleEntryRepository(), ledger.New(userRepo), notifier)
}

func Test_pointDomain_RefundEntries(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	entries := []entity.RaffleEntry{
		{RaffleID: testutil.Raffle2.ID, UserID: testutil.User3.ID, EntryCount: 3}, // 3 x 100 SP
		{RaffleID: testutil.Raffle3.ID, UserID: testutil.User3.ID, EntryCount: 1}, // 1 x 200 SP
		{RaffleID: testutil.Raffle4.ID, UserID: testutil.User3.ID, EntryCount: 2}, // drawn, not refunded
		{RaffleID: testutil.Raffle2.ID, UserID: testutil.User2.ID, EntryCount: 1},
	}
	require.NoError(t, xcontext.DB(ctx).Create(&entries).Error)

	recorder := &recordingPublisher{}
	notifier := newTestNotifier(t, recorder)
	d := newTestPointDomain(notifier)

	userCtx := testutil.NewMockContextWithUserID(ctx, testutil.User3.ID)
	resp, err := d.RefundEntries(userCtx, &model.RefundEntriesRequest{})
	require.NoError(t, err)
	require.Equal(t, &model.RefundEntriesResponse{Refunded: 500, NewBalance: 550}, resp)

	remaining, err := repository.NewRaffleEntryRepository().GetListByUserID(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.Empty(t, remaining)

	// Entries of other users are untouched.
	others, err := repository.NewRaffleEntryRepository().GetListByUserID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Len(t, others, 1)

	notifier.Wait()
	require.Equal(t, []settlement.Kind{settlement.Credit}, recorder.kinds())

	// Nothing is left to refund.
	resp, err = d.RefundEntries(userCtx, &model.RefundEntriesRequest{})
	require.NoError(t, err)
	require.Equal(t, &model.RefundEntriesResponse{Refunded: 0, NewBalance: 550}, resp)
}

func Test_pointDomain_RefundEntries_RollbackOnDeleteFailure(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	entries := []entity.RaffleEntry{
		{RaffleID: testutil.Raffle2.ID, UserID: testutil.User3.ID, EntryCount: 3},
		{RaffleID: testutil.Raffle3.ID, UserID: testutil.User3.ID, EntryCount: 1},
	}
	require.NoError(t, xcontext.DB(ctx).Create(&entries).Error)

	recorder := &recordingPublisher{}
	notifier := newTestNotifier(t, recorder)
	userRepo := repository.NewUserRepository()
	entryRepo := &failingEntryRepo{
		RaffleEntryRepository: repository.NewRaffleEntryRepository(),
		deleteByUserErr:       errors.New("delete failed"),
	}
	d := NewPointDomain(userRepo, entryRepo, ledger.New(userRepo), notifier)

	userCtx := testutil.NewMockContextWithUserID(ctx, testutil.User3.ID)
	_, err := d.RefundEntries(userCtx, &model.RefundEntriesRequest{})
	require.Equal(t, errorx.Unknown, err)

	// The credit is rolled back and the entries are kept.
	balance, err := ledger.New(userRepo).Balance(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User3.Points, balance)

	remaining, err := repository.NewRaffleEntryRepository().GetListByUserID(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)

	notifier.Wait()
	require.Empty(t, recorder.kinds())

	entryRepo.deleteByUserErr = nil
	resp, err := d.RefundEntries(userCtx, &model.RefundEntriesRequest{})
	require.NoError(t, err)
	require.Equal(t, &model.RefundEntriesResponse{Refunded: 500, NewBalance: 550}, resp)
}

func Test_pointDomain_Award(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestPointDomain(newTestNotifier(t, nil))

	userCtx := testutil.NewMockContextWithUserID(ctx, testutil.User3.ID)
	resp, err := d.Award(userCtx, &model.AwardPointsRequest{Amount: 150})
	require.NoError(t, err)
	require.Equal(t, uint64(200), resp.Points)

	balance, err := d.GetBalance(userCtx, &model.GetBalanceRequest{})
	require.NoError(t, err)
	require.Equal(t, uint64(200), balance.Points)
	require.NotEmpty(t, balance.UpdatedAt)

	_, err = d.Award(userCtx, &model.AwardPointsRequest{Amount: 0})
	require.Equal(t, errorx.New(errorx.BadRequest, "Amount must be a positive number"), err)

	_, err = d.Award(userCtx, &model.AwardPointsRequest{Amount: -10})
	require.Equal(t, errorx.New(errorx.BadRequest, "Amount must be a positive number"), err)
}

func Test_pointDomain_GetBalance_NotFound(t *testing.T) {
	ctx := testutil.NewMockContext()
	d := newTestPointDomain(newTestNotifier(t, nil))

	_, err := d.GetBalance(testutil.NewMockContextWithUserID(ctx, "invalid-user"), &model.GetBalanceRequest{})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found user"), err)
}
