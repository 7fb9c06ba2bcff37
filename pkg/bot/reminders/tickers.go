package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/msolovieva/tg-cycle-companion/pkg/cycle"
	"github.com/msolovieva/tg-cycle-companion/pkg/db"
	"github.com/msolovieva/tg-cycle-companion/pkg/logger"
)

const (
	slotMorningHour = 8
	slotEveningHour = 20
)

// How many days before the predicted period the heads-up goes out.
const periodNoticeDays = 2

// fertileWindowLead mirrors the fertility window: ovulation minus 4 days.
const fertileWindowLead = 4

// Sender is the minimal Telegram surface reminders need.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type botSender struct {
	b *bot.Bot
}

func (s botSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	_, err := s.b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	return err
}

// StartPeriodicMessages delivers cycle reminders in each user's morning and
// evening slots. It blocks until ctx is cancelled.
func StartPeriodicMessages(ctx context.Context, b *bot.Bot) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	sender := botSender{b: b}
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			processReminders(ctx, sender, now.UTC())
		}
	}
}

func processReminders(ctx context.Context, s Sender, now time.Time) {
	users, err := db.ListReminderUsers()
	if err != nil {
		logger.Error("failed to fetch users for reminders", "error", err)
		return
	}
	for _, user := range users {
		handleUserReminder(ctx, s, user, now)
	}
}

func handleUserReminder(ctx context.Context, s Sender, user db.UserSettings, now time.Time) {
	slot, ok := latestDueSlot(now, user)
	if !ok {
		return
	}

	history := db.GetHistory(user.UserKey)
	settings := db.GetSettings(user.UserKey)
	localToday := cycle.Date(now.Add(time.Duration(user.TimezoneOffsetHours) * time.Hour))
	snap := cycle.ComputeSnapshot(history, settings, localToday)

	if text := reminderText(snap); text != "" {
		if err := s.SendMessage(ctx, user.TelegramChatID, text); err != nil {
			logger.Error("failed to send reminder", "user_key", user.UserKey, "error", err)
			return
		}
	}

	// The slot is consumed even when there was nothing to say, so a quiet
	// day doesn't retry every minute.
	user.LastReminderSentAt = &slot
	if err := db.SaveUserSettings(&user); err != nil {
		logger.Error("failed to update reminder state", "user_key", user.UserKey, "error", err)
	}
}

// reminderText picks at most one message per slot, most urgent first.
func reminderText(snap cycle.Snapshot) string {
	if !snap.HasData {
		return ""
	}
	switch {
	case snap.DaysUntilNextPeriod == periodNoticeDays:
		return fmt.Sprintf("Heads up: your next period is expected in %d days.", periodNoticeDays)
	case snap.DaysUntilOvulation == 0:
		return "Today is your predicted ovulation day."
	case snap.DaysUntilOvulation == fertileWindowLead:
		return "Your fertile window opens today."
	}
	return ""
}

// latestDueSlot returns the most recent enabled slot that has passed and was
// not already handled, in UTC.
func latestDueSlot(now time.Time, user db.UserSettings) (time.Time, bool) {
	offset := time.Duration(user.TimezoneOffsetHours) * time.Hour
	localNow := now.Add(offset)
	year, month, day := localNow.Date()

	var latest time.Time
	consider := func(enabled bool, hour int) {
		if !enabled {
			return
		}
		localSlot := time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
		slotUTC := localSlot.Add(-offset)
		if now.Before(slotUTC) {
			return
		}
		if user.LastReminderSentAt != nil && !user.LastReminderSentAt.Before(slotUTC) {
			return
		}
		if latest.IsZero() || slotUTC.After(latest) {
			latest = slotUTC
		}
	}

	consider(user.ReminderMorning, slotMorningHour)
	consider(user.ReminderEvening, slotEveningHour)

	if latest.IsZero() {
		return time.Time{}, false
	}
	return latest, true
}
