package model

import "time"

type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatorID   string `json:"creatorId"`
	Platform    string `json:"platform"`
	WorldURL    string `json:"worldUrl"`
	EntryPoints uint64 `json:"entryPoints"`
	MaxWinners  int    `json:"maxWinners"`
	EventDate   string `json:"eventDate"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Platform    string    `json:"platform"`
	WorldURL    string    `json:"worldUrl"`
	EntryPoints uint64    `json:"entryPoints"`
	MaxWinners  int       `json:"maxWinners"`
	EventDate   time.Time `json:"eventDate"`
}

type CreateEventResponse struct {
	Event  Event  `json:"event"`
	Raffle Raffle `json:"raffle"`
}

type GetEventsRequest struct{}

type GetEventsResponse struct {
	Events []Event `json:"events"`
}

type GetEventRequest struct {
	EventID string `uri:"eventId" json:"-"`
}

type GetEventResponse struct {
	Event
}

type GetMyEventsRequest struct{}

type GetMyEventsResponse struct {
	Events []Event `json:"events"`
}
