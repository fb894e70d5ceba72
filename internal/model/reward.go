package model

type EventCompletion struct {
	ID               string `json:"id"`
	EventID          string `json:"eventId"`
	UserID           string `json:"userId"`
	PerformanceScore int    `json:"performanceScore"`
	SPAwarded        uint64 `json:"spAwarded"`
	RewardClaimed    bool   `json:"rewardClaimed"`
	CompletedAt      string `json:"completedAt"`
}

type CompleteEventRequest struct {
	EventID          string `uri:"eventId" json:"-"`
	PerformanceScore *int   `json:"performanceScore"`
}

type CompleteEventResponse struct {
	EventCompletion
}

type ClaimRewardRequest struct {
	CompletionID string `uri:"completionId" json:"-"`
}

type ClaimRewardResponse struct {
	Claimed    bool   `json:"claimed"`
	NewBalance uint64 `json:"newBalance"`
}

type GetUnclaimedRewardsRequest struct{}

type GetUnclaimedRewardsResponse struct {
	Rewards []EventCompletion `json:"rewards"`
}

type GetRewardHistoryRequest struct{}

type GetRewardHistoryResponse struct {
	Completions []EventCompletion `json:"completions"`
}
