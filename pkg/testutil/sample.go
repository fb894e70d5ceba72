package testutil

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/metaraffle/backend/internal/entity"
	"github.com/metaraffle/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

// SampleEvent creates a new event and its active raffle with randomized
// fields. The sample event can be overwritten by non-zero fields of init.
//
// This function returns the sample event and raffle.
func SampleEvent(ctx context.Context, init *entity.Event) (entity.Event, entity.Raffle, error) {
	event := &entity.Event{
		Base:        entity.Base{ID: uuid.NewString()},
		Title:       uuid.NewString(),
		Description: "sample event",
		CreatorID:   User1.ID,
		Platform:    entity.VivePlatform,
		WorldURL:    "https://www.viveverse.com/world/sample",
		EntryPoints: 100,
		MaxWinners:  1,
		EventDate:   time.Now().Add(24 * time.Hour),
		Status:      entity.EventUpcoming,
	}

	if init != nil {
		overwriteFields(event, *init)
	}

	if err := xcontext.DB(ctx).Omit(clause.Associations).Create(event).Error; err != nil {
		return *event, entity.Raffle{}, err
	}

	raffle := &entity.Raffle{
		Base:    entity.Base{ID: uuid.NewString()},
		EventID: event.ID,
		Status:  entity.RaffleActive,
		EndTime: event.EventDate.Add(-xcontext.Configs(ctx).Raffle.LeadWindow),
	}

	if err := xcontext.DB(ctx).Omit(clause.Associations).Create(raffle).Error; err != nil {
		return *event, *raffle, err
	}

	return *event, *raffle, nil
}

// SampleUser creates a new user with the given balance.
func SampleUser(ctx context.Context, points uint64) (entity.User, error) {
	user := entity.User{
		Base:   entity.Base{ID: uuid.NewString()},
		Name:   "sample user",
		Role:   entity.UserRole,
		Points: points,
	}

	err := xcontext.DB(ctx).Create(&user).Error
	return user, err
}

func overwriteFields[T any](origin *T, overwrite T) {
	originValue := reflect.ValueOf(origin).Elem()
	overwriteValue := reflect.ValueOf(overwrite)

	for i := 0; i < overwriteValue.NumField(); i++ {
		overwriteField := overwriteValue.Field(i)
		if !overwriteField.IsZero() {
			originValue.Field(i).Set(overwriteField)
		}
	}
}
