package entity

import (
	"context"

	"github.com/metaraffle/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Event{},
		&Raffle{},
		&RaffleEntry{},
		&RaffleWinner{},
		&EventCompletion{},
	)
}
