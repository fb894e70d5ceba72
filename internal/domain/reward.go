package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/metaraffle/backend/config"
	"github.com/metaraffle/backend/internal/domain/ledger"
	"github.com/metaraffle/backend/internal/domain/settlement"
	"github.com/metaraffle/backend/internal/entity"
	"github.com/metaraffle/backend/internal/model"
	"github.com/metaraffle/backend/internal/repository"
	"github.com/metaraffle/backend/pkg/errorx"
	"github.com/metaraffle/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const maxPerformanceScore = 100

type RewardDomain interface {
	CompleteEvent(context.Context, *model.CompleteEventRequest) (*model.CompleteEventResponse, error)
	Claim(context.Context, *model.ClaimRewardRequest) (*model.ClaimRewardResponse, error)
	GetUnclaimed(context.Context, *model.GetUnclaimedRewardsRequest) (*model.GetUnclaimedRewardsResponse, error)
	GetHistory(context.Context, *model.GetRewardHistoryRequest) (*model.GetRewardHistoryResponse, error)
}

type rewardDomain struct {
	eventRepo      repository.EventRepository
	completionRepo repository.EventCompletionRepository
	ledger         ledger.Ledger
	notifier       settlement.Notifier
}

func NewRewardDomain(
	eventRepo repository.EventRepository,
	completionRepo repository.EventCompletionRepository,
	ledger ledger.Ledger,
	notifier settlement.Notifier,
) *rewardDomain {
	return &rewardDomain{
		eventRepo:      eventRepo,
		completionRepo: completionRepo,
		ledger:         ledger,
		notifier:       notifier,
	}
}

// CalculateReward returns the SP earned for a performance score in [0, 100].
func CalculateReward(cfg config.RewardConfigs, score int) uint64 {
	return cfg.BasePoints + uint64(score)*cfg.BonusPoints/maxPerformanceScore
}

func (d *rewardDomain) CompleteEvent(
	ctx context.Context, req *model.CompleteEventRequest,
) (*model.CompleteEventResponse, error) {
	if req.PerformanceScore == nil {
		return nil, errorx.New(errorx.BadRequest, "Performance score is required")
	}

	score := *req.PerformanceScore
	if score < 0 || score > maxPerformanceScore {
		return nil, errorx.New(errorx.BadRequest, "Performance score must be between 0 and %d", maxPerformanceScore)
	}

	event, err := d.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.EventNotFound, "Not found event")
		}

		xcontext.Logger(ctx).Errorf("Cannot get event: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	completions, err := d.completionRepo.GetListByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get completions: %v", err)
		return nil, errorx.Unknown
	}

	for _, c := range completions {
		if c.EventID == event.ID {
			return nil, errorx.New(errorx.AlreadyExists, "Event was already completed")
		}
	}

	completion := &entity.EventCompletion{
		Base:             entity.Base{ID: uuid.NewString()},
		EventID:          event.ID,
		UserID:           userID,
		PerformanceScore: score,
		SPAwarded:        CalculateReward(xcontext.Configs(ctx).Reward, score),
		RewardClaimed:    false,
		CompletedAt:      time.Now(),
	}

	if err := d.completionRepo.Create(ctx, completion); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create completion: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CompleteEventResponse{EventCompletion: convertEventCompletion(completion)}, nil
}

func (d *rewardDomain) Claim(
	ctx context.Context, req *model.ClaimRewardRequest,
) (*model.ClaimRewardResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	completion, err := d.completionRepo.GetByID(ctx, req.CompletionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.AlreadyClaimed, "Reward not found or already claimed")
		}

		xcontext.Logger(ctx).Errorf("Cannot get completion: %v", err)
		return nil, errorx.Unknown
	}

	if completion.UserID != userID {
		return nil, errorx.New(errorx.PermissionDenied, "This reward does not belong to you")
	}

	if err := d.completionRepo.Claim(ctx, completion.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.AlreadyClaimed, "Reward not found or already claimed")
		}

		xcontext.Logger(ctx).Errorf("Cannot claim completion: %v", err)
		return nil, errorx.Unknown
	}

	if completion.SPAwarded > 0 {
		if err := d.ledger.Credit(ctx, userID, completion.SPAwarded); err != nil {
			return nil, err
		}
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

	if completion.SPAwarded > 0 {
		d.notifier.Notify(ctx, settlement.Message{
			Kind:   settlement.Credit,
			UserID: userID,
			Amount: completion.SPAwarded,
		})
	}

	return &model.ClaimRewardResponse{Claimed: true, NewBalance: balance}, nil
}

func (d *rewardDomain) GetUnclaimed(
	ctx context.Context, req *model.GetUnclaimedRewardsRequest,
) (*model.GetUnclaimedRewardsResponse, error) {
	completions, err := d.completionRepo.GetUnclaimedByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get unclaimed rewards: %v", err)
		return nil, errorx.Unknown
	}

	rewards := []model.EventCompletion{}
	for _, c := range completions {
		rewards = append(rewards, convertEventCompletion(&c))
	}

	return &model.GetUnclaimedRewardsResponse{Rewards: rewards}, nil
}

func (d *rewardDomain) GetHistory(
	ctx context.Context, req *model.GetRewardHistoryRequest,
) (*model.GetRewardHistoryResponse, error) {
	completions, err := d.completionRepo.GetListByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reward history: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.EventCompletion{}
	for _, c := range completions {
		result = append(result, convertEventCompletion(&c))
	}

	return &model.GetRewardHistoryResponse{Completions: result}, nil
}
