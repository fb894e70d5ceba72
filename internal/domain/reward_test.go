package domain

import (
	"testing"

	"github.com/metaraffle/backend/config"
	"github.com/metaraffle/backend/internal/domain/ledger"
	"github.com/metaraffle/backend/internal/domain/settlement"
	"github.com/metaraffle/backend/internal/model"
	"github.com/metaraffle/backend/internal/repository"
	"github.com/metaraffle/backend/pkg/errorx"
	"github.com/metaraffle/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestRewardDomain(notifier settlement.Notifier) *rewardDomain {
	return NewRewardDomain(
		repository.NewEventRepository(),
		repository.NewEventCompletionRepository(),
		ledger.New(repository.NewUserRepository()),
		notifier,
	)
}

func TestCalculateReward(t *testing.T) {
	cfg := config.RewardConfigs{BasePoints: 50, BonusPoints: 450}

	require.Equal(t, uint64(50), CalculateReward(cfg, 0))
	require.Equal(t, uint64(275), CalculateReward(cfg, 50))
	require.Equal(t, uint64(500), CalculateReward(cfg, 100))
	require.Equal(t, uint64(54), CalculateReward(cfg, 1))
}

func Test_rewardDomain_CompleteEvent(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestRewardDomain(newTestNotifier(t, nil))

	userCtx := testutil.NewMockContextWithUserID(ctx, testutil.User2.ID)
	resp, err := d.CompleteEvent(userCtx, &model.CompleteEventRequest{
		EventID:          testutil.Event1.ID,
		PerformanceScore: scoreOf(80),
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)
	require.Equal(t, testutil.Event1.ID, resp.EventID)
	require.Equal(t, testutil.User2.ID, resp.UserID)
	require.Equal(t, uint64(410), resp.SPAwarded)
	require.False(t, resp.RewardClaimed)

	_, err = d.CompleteEvent(userCtx, &model.CompleteEventRequest{
		EventID:          testutil.Event1.ID,
		PerformanceScore: scoreOf(100),
	})
	require.Equal(t, errorx.New(errorx.AlreadyExists, "Event was already completed"), err)
}

func Test_rewardDomain_CompleteEvent_Failed(t *testing.T) {
	tests := []struct {
		name    string
		req     *model.CompleteEventRequest
		wantErr error
	}{
		{
			name:    "missing score",
			req:     &model.CompleteEventRequest{EventID: testutil.Event1.ID},
			wantErr: errorx.New(errorx.BadRequest, "Performance score is required"),
		},
		{
			name:    "score too high",
			req:     &model.CompleteEventRequest{EventID: testutil.Event1.ID, PerformanceScore: scoreOf(101)},
			wantErr: errorx.New(errorx.BadRequest, "Performance score must be between 0 and 100"),
		},
		{
			name:    "negative score",
			req:     &model.CompleteEventRequest{EventID: testutil.Event1.ID, PerformanceScore: scoreOf(-1)},
			wantErr: errorx.New(errorx.BadRequest, "Performance score must be between 0 and 100"),
		},
		{
			name:    "not found event",
			req:     &model.CompleteEventRequest{EventID: "invalid-event", PerformanceScore: scoreOf(10)},
			wantErr: errorx.New(errorx.EventNotFound, "Not found event"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.NewMockContext()
			testutil.CreateFixtureDb(ctx)
			d := newTestRewardDomain(newTestNotifier(t, nil))

			_, err := d.CompleteEvent(testutil.NewMockContextWithUserID(ctx, testutil.User2.ID), tt.req)
			require.Equal(t, tt.wantErr, err)
		})
	}
}

func Test_rewardDomain_Claim(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	recorder := &recordingPublisher{}
	notifier := newTestNotifier(t, recorder)
	d := newTestRewardDomain(notifier)

	userCtx := testutil.NewMockContextWithUserID(ctx, testutil.User3.ID)
	completion, err := d.CompleteEvent(userCtx, &model.CompleteEventRequest{
		EventID:          testutil.Event2.ID,
		PerformanceScore: scoreOf(100),
	})
	require.NoError(t, err)

	unclaimed, err := d.GetUnclaimed(userCtx, &model.GetUnclaimedRewardsRequest{})
	require.NoError(t, err)
	require.Len(t, unclaimed.Rewards, 1)

	// Another user cannot claim the reward.
	otherCtx := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	_, err = d.Claim(otherCtx, &model.ClaimRewardRequest{CompletionID: completion.ID})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "This reward does not belong to you"), err)

	resp, err := d.Claim(userCtx, &model.ClaimRewardRequest{CompletionID: completion.ID})
	require.NoError(t, err)
	require.Equal(t, &model.ClaimRewardResponse{Claimed: true, NewBalance: 550}, resp)

	// The second claim does not credit the ledger again.
	_, err = d.Claim(userCtx, &model.ClaimRewardRequest{CompletionID: completion.ID})
	require.Equal(t, errorx.New(errorx.AlreadyClaimed, "Reward not found or already claimed"), err)

	balance, err := ledger.New(repository.NewUserRepository()).Balance(ctx, testutil.User3.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(550), balance)

	unclaimed, err = d.GetUnclaimed(userCtx, &model.GetUnclaimedRewardsRequest{})
	require.NoError(t, err)
	require.Empty(t, unclaimed.Rewards)

	history, err := d.GetHistory(userCtx, &model.GetRewardHistoryRequest{})
	require.NoError(t, err)
	require.Len(t, history.Completions, 1)
	require.True(t, history.Completions[0].RewardClaimed)

	_, err = d.Claim(userCtx, &model.ClaimRewardRequest{CompletionID: "invalid-completion"})
	require.Equal(t, errorx.New(errorx.AlreadyClaimed, "Reward not found or already claimed"), err)

	notifier.Wait()
	require.Equal(t, []settlement.Kind{settlement.Credit}, recorder.kinds())
}

func scoreOf(n int) *int {
	return &n
}
