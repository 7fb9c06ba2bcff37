package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/msolovieva/tg-cycle-companion/pkg/cycle"
	"github.com/msolovieva/tg-cycle-companion/pkg/db"
	"github.com/msolovieva/tg-cycle-companion/pkg/logger"
)

const (
	MinTimezoneOffset = -12
	MaxTimezoneOffset = 14
)

// HandleSetCycle stores an explicit average cycle length: "/setcycle <days>".
func HandleSetCycle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !validMessage(update) {
		logger.Error("invalid update in HandleSetCycle")
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.Fields(update.Message.Text)[1:]
	if len(args) != 1 {
		reply(ctx, b, chatID, "Please use: /setcycle <days>, e.g. /setcycle 30")
		return
	}
	length, err := strconv.Atoi(args[0])
	if err != nil || length < cycle.NormalCycleMin || length > cycle.NormalCycleMax {
		reply(ctx, b, chatID, fmt.Sprintf("Please enter a number between %d and %d.", cycle.NormalCycleMin, cycle.NormalCycleMax))
		return
	}

	if err := db.SetAverageCycleLength(userKey(update), length); err != nil {
		logger.Error("failed to set cycle length", "user_id", update.Message.From.ID, "error", err)
		reply(ctx, b, chatID, "Failed to update your settings. Please try again later.")
		return
	}
	reply(ctx, b, chatID, fmt.Sprintf("Average cycle length set to %d days.", length))
}

// HandleReminders shows the reminder preferences keyboard.
func HandleReminders(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !validMessage(update) {
		logger.Error("invalid update in HandleReminders")
		return
	}
	chatID := update.Message.Chat.ID

	settings, err := db.GetUserSettings(userKey(update))
	if err != nil {
		logger.Error("failed to load user settings", "user_id", update.Message.From.ID, "error", err)
		reply(ctx, b, chatID, "Failed to load your settings. Please try again later.")
		return
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        remindersText(settings),
		ReplyMarkup: remindersKeyboard(settings),
	}); err != nil {
		logger.Error("failed to send reminders message", "user_id", update.Message.From.ID, "error", err)
	}
}

// HandleRemindersCallback processes the "r:" keyboard actions.
func HandleRemindersCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.CallbackQuery == nil {
		logger.Error("invalid update in HandleRemindersCallback")
		return
	}

	answerCallback := func(text string) {
		if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
			Text:            text,
		}); err != nil {
			logger.Error("failed to answer callback query", "error", err)
		}
	}

	message := update.CallbackQuery.Message
	if message.Type != models.MaybeInaccessibleMessageTypeMessage || message.Message == nil {
		logger.Error("callback query message is inaccessible", "user_id", update.CallbackQuery.From.ID)
		answerCallback("Message is not available")
		return
	}
	msg := message.Message

	key := strconv.FormatInt(update.CallbackQuery.From.ID, 10)
	settings, err := db.GetUserSettings(key)
	if err != nil {
		logger.Error("failed to load user settings", "user_id", update.CallbackQuery.From.ID, "error", err)
		answerCallback("Failed to load settings")
		return
	}

	switch update.CallbackQuery.Data {
	case "r:morning":
		settings.ReminderMorning = !settings.ReminderMorning
	case "r:evening":
		settings.ReminderEvening = !settings.ReminderEvening
	case "r:tz:+":
		if settings.TimezoneOffsetHours < MaxTimezoneOffset {
			settings.TimezoneOffsetHours++
		}
	case "r:tz:-":
		if settings.TimezoneOffsetHours > MinTimezoneOffset {
			settings.TimezoneOffsetHours--
		}
	default:
		logger.Error("unknown reminders callback", "data", update.CallbackQuery.Data)
		answerCallback("Unknown command")
		return
	}

	if err := db.SaveUserSettings(settings); err != nil {
		logger.Error("failed to save user settings", "user_id", update.CallbackQuery.From.ID, "error", err)
		answerCallback("Failed to save settings")
		return
	}

	if _, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        remindersText(settings),
		ReplyMarkup: remindersKeyboard(settings),
	}); err != nil {
		logger.Error("failed to update reminders message", "user_id", update.CallbackQuery.From.ID, "error", err)
	}
	answerCallback("Saved")
}

func remindersText(settings *db.UserSettings) string {
	return fmt.Sprintf(
		"Reminder settings\n\nMorning (8:00): %s\nEvening (20:00): %s\nTimezone: UTC%+d\n\nI'll message you about upcoming periods, ovulation, and your fertile window.",
		onOff(settings.ReminderMorning), onOff(settings.ReminderEvening), settings.TimezoneOffsetHours)
}

func remindersKeyboard(settings *db.UserSettings) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "Morning: " + onOff(settings.ReminderMorning), CallbackData: "r:morning"},
				{Text: "Evening: " + onOff(settings.ReminderEvening), CallbackData: "r:evening"},
			},
			{
				{Text: "Timezone -1h", CallbackData: "r:tz:-"},
				{Text: "Timezone +1h", CallbackData: "r:tz:+"},
			},
		},
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
