package entity

import (
	"time"

	"github.com/metaraffle/backend/pkg/enum"
)

type EventPlatform string

var (
	VivePlatform        = enum.New(EventPlatform("viveverse"))
	MetaHorizonPlatform = enum.New(EventPlatform("meta-horizon"))
)

type EventStatus string

var (
	EventUpcoming = enum.New(EventStatus("upcoming"))
	EventLive     = enum.New(EventStatus("live"))
	EventEnded    = enum.New(EventStatus("ended"))
)

type Event struct {
	Base

	Title       string
	Description string

	CreatorID string
	Creator   User `gorm:"foreignKey:CreatorID"`

	Platform    EventPlatform
	WorldURL    string
	EntryPoints uint64
	MaxWinners  int
	EventDate   time.Time
	Status      EventStatus
}
