package entity

import "time"

type EventCompletion struct {
	Base

	EventID string `gorm:"uniqueIndex:idx_event_completions_event_id_user_id"`
	Event   Event  `gorm:"foreignKey:EventID"`

	UserID string `gorm:"uniqueIndex:idx_event_completions_event_id_user_id"`
	User   User   `gorm:"foreignKey:UserID"`

	PerformanceScore int
	SPAwarded        uint64
	RewardClaimed    bool
	CompletedAt      time.Time
}
