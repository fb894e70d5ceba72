package entity

import (
	"time"

	"github.com/metaraffle/backend/pkg/enum"
)

type RaffleStatus string

var (
	RaffleActive = enum.New(RaffleStatus("active"))
	RaffleEnded  = enum.New(RaffleStatus("ended"))
)

type Raffle struct {
	Base

	EventID string `gorm:"unique"`
	Event   Event  `gorm:"foreignKey:EventID"`

	Status  RaffleStatus
	EndTime time.Time
}

// IsOpen reports whether the raffle still accepts entries at the given time.
func (r *Raffle) IsOpen(now time.Time) bool {
	return r.Status == RaffleActive && now.Before(r.EndTime)
}

// RaffleEntry holds the accumulated tickets of a user in a raffle. There is
// at most one record per (raffle, user).
type RaffleEntry struct {
	RaffleID string `gorm:"primaryKey"`
	Raffle   Raffle `gorm:"foreignKey:RaffleID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	EntryCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

type RaffleWinner struct {
	RaffleID string `gorm:"primaryKey"`
	Raffle   Raffle `gorm:"foreignKey:RaffleID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
}
