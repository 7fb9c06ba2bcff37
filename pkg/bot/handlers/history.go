package handlers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/msolovieva/tg-cycle-companion/pkg/cycle"
	"github.com/msolovieva/tg-cycle-companion/pkg/db"
	"github.com/msolovieva/tg-cycle-companion/pkg/logger"
)

func HandleHistory(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !validMessage(update) {
		logger.Error("invalid update in HandleHistory")
		return
	}
	chatID := update.Message.Chat.ID

	history := db.GetHistory(userKey(update))
	if len(history) == 0 {
		reply(ctx, b, chatID, "No periods logged yet.")
		return
	}

	sort.Slice(history, func(i, j int) bool {
		return history[i].StartDate.After(history[j].StartDate)
	})

	var sb strings.Builder
	sb.WriteString("Your period history:\n")
	for _, r := range history {
		fmt.Fprintf(&sb, "%s to %s (%d days)\n", formatDay(r.StartDate), formatDay(r.EndDate()), r.DurationDays)
	}
	reply(ctx, b, chatID, sb.String())
}

// HandleEditLast changes the end date of the most recent period:
// "/editlast <end date>".
func HandleEditLast(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !validMessage(update) {
		logger.Error("invalid update in HandleEditLast")
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.Fields(update.Message.Text)[1:]
	if len(args) != 1 {
		reply(ctx, b, chatID, "Please use: /editlast <new end date>, e.g. /editlast 2024-06-15")
		return
	}
	newEnd, err := parseDay(args[0])
	if err != nil {
		reply(ctx, b, chatID, err.Error())
		return
	}

	key := userKey(update)
	history := db.GetHistory(key)
	last, ok := cycle.Latest(history)
	if !ok {
		reply(ctx, b, chatID, "No periods logged yet.")
		return
	}

	updated, err := cycle.UpdatePeriodEndDate(history, last.StartDate, newEnd)
	if err != nil {
		switch {
		case errors.Is(err, cycle.ErrInvalidRange):
			reply(ctx, b, chatID, fmt.Sprintf("The end date can't be before the period start (%s).", formatDay(last.StartDate)))
		case errors.Is(err, cycle.ErrNotFound):
			reply(ctx, b, chatID, "Couldn't find that period anymore. Check /history.")
		default:
			logger.Error("failed to edit period", "user_id", update.Message.From.ID, "error", err)
			reply(ctx, b, chatID, "Failed to update your period. Please try again later.")
		}
		return
	}

	if err := db.SaveHistory(key, updated); err != nil {
		logger.Error("failed to save history", "user_id", update.Message.From.ID, "error", err)
		reply(ctx, b, chatID, "Failed to update your period. Please try again later.")
		return
	}
	reply(ctx, b, chatID, fmt.Sprintf("Updated: %s now ends on %s.", formatDay(last.StartDate), formatDay(newEnd)))
}

func HandleDeleteLast(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !validMessage(update) {
		logger.Error("invalid update in HandleDeleteLast")
		return
	}
	chatID := update.Message.Chat.ID

	key := userKey(update)
	history := db.GetHistory(key)
	last, ok := cycle.Latest(history)
	if !ok {
		reply(ctx, b, chatID, "No periods logged yet.")
		return
	}

	updated, err := cycle.RemovePeriod(history, last.StartDate)
	if err != nil {
		logger.Error("failed to delete period", "user_id", update.Message.From.ID, "error", err)
		reply(ctx, b, chatID, "Failed to delete your period. Please try again later.")
		return
	}
	if err := db.SaveHistory(key, updated); err != nil {
		logger.Error("failed to save history", "user_id", update.Message.From.ID, "error", err)
		reply(ctx, b, chatID, "Failed to delete your period. Please try again later.")
		return
	}
	reply(ctx, b, chatID, fmt.Sprintf("Deleted the period from %s to %s.", formatDay(last.StartDate), formatDay(last.EndDate())))
}
