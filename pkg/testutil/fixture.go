package testutil

import (
	"context"
	"time"

	"github.com/metaraffle/backend/internal/entity"
	"github.com/metaraffle/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

var (
	now = time.Now()

	// Users
	User1 = entity.User{Base: entity.Base{ID: "user1"}, Name: "User1", Role: entity.UserRole, Points: 1000}
	User2 = entity.User{Base: entity.Base{ID: "user2"}, Name: "User2", Role: entity.UserRole, Points: 1000}
	User3 = entity.User{Base: entity.Base{ID: "user3"}, Name: "User3", Role: entity.UserRole, Points: 50}
	Admin = entity.User{Base: entity.Base{ID: "admin"}, Name: "Admin", Role: entity.AdminRole, Points: 0}

	Users = []entity.User{User1, User2, User3, Admin}

	// Events
	Event1 = entity.Event{
		Base:        entity.Base{ID: "event1", CreatedAt: now.Add(-5 * time.Hour)},
		Title:       "Concert in VR",
		Description: "A live concert",
		CreatorID:   User1.ID,
		Platform:    entity.VivePlatform,
		WorldURL:    "https://www.viveverse.com/world/concert",
		EntryPoints: 500,
		MaxWinners:  2,
		EventDate:   now.Add(48 * time.Hour),
		Status:      entity.EventUpcoming,
	}

	Event2 = entity.Event{
		Base:        entity.Base{ID: "event2", CreatedAt: now.Add(-4 * time.Hour)},
		Title:       "Gallery opening",
		Description: "Digital art gallery",
		CreatorID:   User1.ID,
		Platform:    entity.MetaHorizonPlatform,
		WorldURL:    "https://horizon.meta.com/world/gallery",
		EntryPoints: 100,
		MaxWinners:  1,
		EventDate:   now.Add(24 * time.Hour),
		Status:      entity.EventUpcoming,
	}

	Event3 = entity.Event{
		Base:        entity.Base{ID: "event3", CreatedAt: now.Add(-3 * time.Hour)},
		Title:       "Game night",
		Description: "Play together",
		CreatorID:   User2.ID,
		Platform:    entity.VivePlatform,
		WorldURL:    "https://www.viveverse.com/world/game",
		EntryPoints: 200,
		MaxWinners:  3,
		EventDate:   now.Add(72 * time.Hour),
		Status:      entity.EventUpcoming,
	}

	// Event4 was already drawn.
	Event4 = entity.Event{
		Base:        entity.Base{ID: "event4", CreatedAt: now.Add(-2 * time.Hour)},
		Title:       "Past meetup",
		Description: "Already happened",
		CreatorID:   User2.ID,
		Platform:    entity.MetaHorizonPlatform,
		WorldURL:    "https://horizon.meta.com/world/meetup",
		EntryPoints: 100,
		MaxWinners:  1,
		EventDate:   now.Add(-24 * time.Hour),
		Status:      entity.EventEnded,
	}

	// Event5 has a raffle which is still active but whose end time passed.
	Event5 = entity.Event{
		Base:        entity.Base{ID: "event5", CreatedAt: now.Add(-time.Hour)},
		Title:       "Starting soon",
		Description: "Entries are closed",
		CreatorID:   User1.ID,
		Platform:    entity.VivePlatform,
		WorldURL:    "https://www.viveverse.com/world/soon",
		EntryPoints: 100,
		MaxWinners:  1,
		EventDate:   now.Add(30 * time.Minute),
		Status:      entity.EventUpcoming,
	}

	Events = []entity.Event{Event1, Event2, Event3, Event4, Event5}

	// Raffles
	Raffle1 = entity.Raffle{
		Base:    entity.Base{ID: "raffle1", CreatedAt: Event1.CreatedAt},
		EventID: Event1.ID,
		Status:  entity.RaffleActive,
		EndTime: Event1.EventDate.Add(-time.Hour),
	}

	Raffle2 = entity.Raffle{
		Base:    entity.Base{ID: "raffle2", CreatedAt: Event2.CreatedAt},
		EventID: Event2.ID,
		Status:  entity.RaffleActive,
		EndTime: Event2.EventDate.Add(-time.Hour),
	}

	Raffle3 = entity.Raffle{
		Base:    entity.Base{ID: "raffle3", CreatedAt: Event3.CreatedAt},
		EventID: Event3.ID,
		Status:  entity.RaffleActive,
		EndTime: Event3.EventDate.Add(-time.Hour),
	}

	Raffle4 = entity.Raffle{
		Base:    entity.Base{ID: "raffle4", CreatedAt: Event4.CreatedAt},
		EventID: Event4.ID,
		Status:  entity.RaffleEnded,
		EndTime: Event4.EventDate.Add(-time.Hour),
	}

	Raffle5 = entity.Raffle{
		Base:    entity.Base{ID: "raffle5", CreatedAt: Event5.CreatedAt},
		EventID: Event5.ID,
		Status:  entity.RaffleActive,
		EndTime: Event5.EventDate.Add(-time.Hour),
	}

	Raffles = []entity.Raffle{Raffle1, Raffle2, Raffle3, Raffle4, Raffle5}
)

// CreateFixtureDb inserts the fixture users, events and raffles into the
// database of ctx.
func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertEvents(ctx)
	InsertRaffles(ctx)
}

func InsertUsers(ctx context.Context) {
	for _, u := range Users {
		user := u
		if err := xcontext.DB(ctx).Create(&user).Error; err != nil {
			panic(err)
		}
	}
}

func InsertEvents(ctx context.Context) {
	for _, e := range Events {
		event := e
		if err := xcontext.DB(ctx).Omit(clause.Associations).Create(&event).Error; err != nil {
			panic(err)
		}
	}
}

func InsertRaffles(ctx context.Context) {
	for _, r := range Raffles {
		raffle := r
		if err := xcontext.DB(ctx).Omit(clause.Associations).Create(&raffle).Error; err != nil {
			panic(err)
		}
	}
}
