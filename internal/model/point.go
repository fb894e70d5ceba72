package model

type GetBalanceRequest struct{}

type GetBalanceResponse struct {
	Points    uint64 `json:"points"`
	UpdatedAt string `json:"updatedAt"`
}

type AwardPointsRequest struct {
	Amount int64 `json:"amount"`
}

type AwardPointsResponse struct {
	Points uint64 `json:"points"`
}

type RefundEntriesRequest struct{}

type RefundEntriesResponse struct {
	Refunded   uint64 `json:"refunded"`
	NewBalance uint64 `json:"newBalance"`
}
