package domain

import (
	"time"

	"github.com/metaraffle/backend/internal/entity"
	"github.com/metaraffle/backend/internal/model"
)

const defaultTimeLayout string = time.RFC3339Nano

func convertUser(user *entity.User) model.User {
	if user == nil {
		return model.User{}
	}

	return model.User{
		ID:        user.ID,
		Name:      user.Name,
		Role:      user.Role,
		Points:    user.Points,
		CreatedAt: user.CreatedAt.Format(defaultTimeLayout),
	}
}

func convertEvent(event *entity.Event) model.Event {
	if event == nil {
		return model.Event{}
	}

	return model.Event{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		CreatorID:   event.CreatorID,
		Platform:    string(event.Platform),
		WorldURL:    event.WorldURL,
		EntryPoints: event.EntryPoints,
		MaxWinners:  event.MaxWinners,
		EventDate:   event.EventDate.Format(defaultTimeLayout),
		Status:      string(event.Status),
		CreatedAt:   event.CreatedAt.Format(defaultTimeLayout),
	}
}

func convertRaffle(raffle *entity.Raffle, event *model.Event) model.Raffle {
	if raffle == nil {
		return model.Raffle{}
	}

	return model.Raffle{
		ID:        raffle.ID,
		EventID:   raffle.EventID,
		Status:    string(raffle.Status),
		EndTime:   raffle.EndTime.Format(defaultTimeLayout),
		CreatedAt: raffle.CreatedAt.Format(defaultTimeLayout),
		Event:     event,
	}
}

func convertRaffleEntry(entry *entity.RaffleEntry) model.RaffleEntry {
	if entry == nil {
		return model.RaffleEntry{}
	}

	return model.RaffleEntry{
		RaffleID:   entry.RaffleID,
		UserID:     entry.UserID,
		EntryCount: entry.EntryCount,
		CreatedAt:  entry.CreatedAt.Format(defaultTimeLayout),
		UpdatedAt:  entry.UpdatedAt.Format(defaultTimeLayout),
	}
}

func convertEventCompletion(completion *entity.EventCompletion) model.EventCompletion {
	if completion == nil {
		return model.EventCompletion{}
	}

	return model.EventCompletion{
		ID:               completion.ID,
		EventID:          completion.EventID,
		UserID:           completion.UserID,
		PerformanceScore: completion.PerformanceScore,
		SPAwarded:        completion.SPAwarded,
		RewardClaimed:    completion.RewardClaimed,
		CompletedAt:      completion.CompletedAt.Format(defaultTimeLayout),
	}
}
