package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/msolovieva/tg-cycle-companion/pkg/cycle"
	"github.com/msolovieva/tg-cycle-companion/pkg/db"
	"github.com/msolovieva/tg-cycle-companion/pkg/logger"
)

// HandleLogPeriod records a period from "/log <start> [end]". With only a
// start date the user's average period length fills in the duration.
func HandleLogPeriod(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !validMessage(update) {
		logger.Error("invalid update in HandleLogPeriod")
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.Fields(update.Message.Text)[1:]
	if len(args) < 1 || len(args) > 2 {
		reply(ctx, b, chatID, "Please use: /log <start date> [end date], e.g. /log 2024-06-10 2024-06-14")
		return
	}

	start, err := parseDay(args[0])
	if err != nil {
		reply(ctx, b, chatID, err.Error())
		return
	}

	key := userKey(update)
	settings := db.GetSettings(key)

	var end time.Time
	if len(args) == 2 {
		end, err = parseDay(args[1])
		if err != nil {
			reply(ctx, b, chatID, err.Error())
			return
		}
	} else {
		end = start.AddDate(0, 0, settings.AveragePeriodLength-1)
	}

	today := cycle.Date(time.Now().UTC())
	if start.After(today) {
		reply(ctx, b, chatID, "The start date can't be in the future.")
		return
	}

	history := db.GetHistory(key)
	overlapped := cycle.OverlapsExisting(history, start, end)

	updated, err := cycle.AddPeriodWithDates(history, start, end)
	if err != nil {
		if errors.Is(err, cycle.ErrInvalidRange) {
			reply(ctx, b, chatID, "The end date can't be before the start date.")
			return
		}
		logger.Error("failed to add period", "user_id", update.Message.From.ID, "error", err)
		reply(ctx, b, chatID, "Failed to log your period. Please try again later.")
		return
	}

	if err := db.SaveHistory(key, updated); err != nil {
		logger.Error("failed to save history", "user_id", update.Message.From.ID, "error", err)
		reply(ctx, b, chatID, "Failed to log your period. Please try again later.")
		return
	}

	duration := int(cycle.Date(end).Sub(cycle.Date(start)).Hours()/24) + 1
	text := fmt.Sprintf("Logged your period: %s to %s (%d days).", formatDay(start), formatDay(end), duration)
	if overlapped {
		text += "\nNote: this overlaps a previously logged period."
	}
	if next := cycle.PredictedPeriodStarts(updated, db.GetSettings(key), 1); len(next) == 1 {
		text += fmt.Sprintf("\nNext period expected around %s.", formatDay(next[0]))
	}
	reply(ctx, b, chatID, text)
}
