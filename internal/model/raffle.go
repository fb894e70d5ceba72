package model

type Raffle struct {
	ID        string `json:"id"`
	EventID   string `json:"eventId"`
	Status    string `json:"status"`
	EndTime   string `json:"endTime"`
	CreatedAt string `json:"createdAt"`

	// Event is only set by endpoints returning raffles with their events.
	Event *Event `json:"event,omitempty"`
}

type RaffleEntry struct {
	RaffleID   string `json:"raffleId"`
	UserID     string `json:"userId"`
	EntryCount int    `json:"entryCount"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

type EnterRaffleRequest struct {
	RaffleID string `uri:"raffleId" json:"-"`
}

type EnterRaffleResponse struct {
	Entry           RaffleEntry `json:"entry"`
	RemainingPoints uint64      `json:"remainingPoints"`
}

type DrawRaffleRequest struct {
	EventID string `uri:"eventId" json:"-"`
}

type DrawRaffleResponse struct {
	WinnersCount   int  `json:"winnersCount"`
	IsCallerWinner bool `json:"isCallerWinner"`
}

type GetWinnerStatusRequest struct {
	EventID string `uri:"eventId" json:"-"`
}

type GetWinnerStatusResponse struct {
	IsWinner   bool   `json:"isWinner"`
	WorldURL   string `json:"worldUrl,omitempty"`
	EventTitle string `json:"eventTitle,omitempty"`
}

type GetActiveRafflesRequest struct{}

type GetActiveRafflesResponse struct {
	Raffles []Raffle `json:"raffles"`
}

type MyEntry struct {
	Entry  RaffleEntry `json:"entry"`
	Raffle Raffle      `json:"raffle"`
	Event  Event       `json:"event"`
}

type GetMyEntriesRequest struct{}

type GetMyEntriesResponse struct {
	Entries []MyEntry `json:"entries"`
}

type MakeWinnerRequest struct {
	EventID string `uri:"eventId" json:"-"`
}

type MakeWinnerResponse struct {
	EventID    string `json:"eventId"`
	EventTitle string `json:"eventTitle"`
	WorldURL   string `json:"worldUrl"`
}

type ClearRafflesRequest struct{}

type ClearRafflesResponse struct{}
