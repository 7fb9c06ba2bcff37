package db

import (
	"time"

	"gorm.io/datatypes"
)

// CycleHistory stores one user's full period history as a JSON blob. The list
// is always replaced whole; SaveHistory is the single mutation point that keeps
// the cached averages in UserSettings consistent with it.
type CycleHistory struct {
	ID        uint           `gorm:"primaryKey"`
	UserKey   string         `gorm:"uniqueIndex;not null"`
	Records   datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserSettings carries per-user cycle averages plus reminder preferences.
// UserKey is an opaque scope key: the Telegram user id for bot users, an email
// for API users.
type UserSettings struct {
	ID                  uint   `gorm:"primaryKey"`
	UserKey             string `gorm:"uniqueIndex;not null"`
	TelegramChatID      int64  `gorm:"index"`
	AverageCycleLength  int    `gorm:"not null;default:28"`
	AveragePeriodLength int    `gorm:"not null;default:5"`
	LastPeriodStart     *time.Time
	ReminderMorning     bool `gorm:"not null;default:false"`
	ReminderEvening     bool `gorm:"not null;default:true"`
	TimezoneOffsetHours int  `gorm:"not null;default:0"`
	LastReminderSentAt  *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
