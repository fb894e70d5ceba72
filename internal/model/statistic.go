package model

type GetStatsRequest struct{}

type GetStatsResponse struct {
	TotalEvents       int64  `json:"totalEvents"`
	ActiveUsers       int64  `json:"activeUsers"`
	PointsDistributed uint64 `json:"pointsDistributed"`
	RaffleWinners     int64  `json:"raffleWinners"`
}
