package db

import (
	"encoding/json"
	"errors"

	"github.com/msolovieva/tg-cycle-companion/pkg/cycle"
	"github.com/msolovieva/tg-cycle-companion/pkg/logger"
	"gorm.io/gorm"
)

// GetHistory returns all period records stored for userKey. A missing row and
// a corrupt blob both yield an empty history: a broken cache must never take
// down the statistics surface.
func GetHistory(userKey string) []cycle.PeriodRecord {
	var row CycleHistory
	err := DB.Where("user_key = ?", userKey).First(&row).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("failed to load cycle history", "user_key", userKey, "error", err)
		}
		return nil
	}

	var records []cycle.PeriodRecord
	if err := json.Unmarshal(row.Records, &records); err != nil {
		logger.Error("corrupt cycle history blob, treating as empty", "user_key", userKey, "error", err)
		return nil
	}
	for i := range records {
		records[i].StartDate = cycle.Date(records[i].StartDate)
	}
	return records
}

// SaveHistory replaces the full record list for userKey and refreshes the
// cached averages and last period start. The cycle average needs at least two
// records and the period average at least one; otherwise the stored value is
// left as is.
func SaveHistory(userKey string, records []cycle.PeriodRecord) error {
	blob, err := json.Marshal(records)
	if err != nil {
		return err
	}

	row := CycleHistory{UserKey: userKey, Records: blob}
	if err := DB.Where("user_key = ?", userKey).
		Assign(CycleHistory{Records: blob}).
		FirstOrCreate(&row).Error; err != nil {
		return err
	}

	settings, err := getOrCreateSettings(userKey)
	if err != nil {
		return err
	}
	cycleLen, periodLen, okCycle, okPeriod := cycle.Averages(records)
	if okCycle {
		settings.AverageCycleLength = cycleLen
	}
	if okPeriod {
		settings.AveragePeriodLength = periodLen
	}
	if last, ok := cycle.Latest(records); ok {
		start := cycle.Date(last.StartDate)
		settings.LastPeriodStart = &start
	} else {
		settings.LastPeriodStart = nil
	}
	return DB.Save(settings).Error
}

// GetSettings returns the engine settings for userKey, falling back to the
// clinical defaults when nothing is stored yet.
func GetSettings(userKey string) cycle.Settings {
	var row UserSettings
	err := DB.Where("user_key = ?", userKey).First(&row).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("failed to load user settings", "user_key", userKey, "error", err)
		}
		return cycle.DefaultSettings()
	}
	settings := cycle.DefaultSettings()
	if row.AverageCycleLength > 0 {
		settings.AverageCycleLength = row.AverageCycleLength
	}
	if row.AveragePeriodLength > 0 {
		settings.AveragePeriodLength = row.AveragePeriodLength
	}
	return settings
}

// SetAverageCycleLength records an explicit user override of the cycle length.
func SetAverageCycleLength(userKey string, length int) error {
	settings, err := getOrCreateSettings(userKey)
	if err != nil {
		return err
	}
	settings.AverageCycleLength = length
	return DB.Save(settings).Error
}

// GetUserSettings returns the full settings row, creating it on first use.
func GetUserSettings(userKey string) (*UserSettings, error) {
	return getOrCreateSettings(userKey)
}

// SaveUserSettings persists reminder preferences and other row fields.
func SaveUserSettings(settings *UserSettings) error {
	return DB.Save(settings).Error
}

// RegisterChat links a Telegram chat to the user key so reminders can reach it.
func RegisterChat(userKey string, chatID int64) error {
	settings, err := getOrCreateSettings(userKey)
	if err != nil {
		return err
	}
	settings.TelegramChatID = chatID
	return DB.Save(settings).Error
}

// ListReminderUsers returns every user with a linked chat and at least one
// reminder slot enabled.
func ListReminderUsers() ([]UserSettings, error) {
	var users []UserSettings
	err := DB.Where("telegram_chat_id <> 0").
		Where("reminder_morning OR reminder_evening").
		Find(&users).Error
	return users, err
}

func getOrCreateSettings(userKey string) (*UserSettings, error) {
	settings := UserSettings{
		UserKey:             userKey,
		AverageCycleLength:  cycle.DefaultCycleLength,
		AveragePeriodLength: cycle.DefaultPeriodLength,
		ReminderEvening:     true,
	}
	if err := DB.Where("user_key = ?", userKey).FirstOrCreate(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}
