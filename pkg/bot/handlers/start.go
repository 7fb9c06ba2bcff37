package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/msolovieva/tg-cycle-companion/pkg/db"
	"github.com/msolovieva/tg-cycle-companion/pkg/logger"
)

const startText = `Hi! I track your menstrual cycle and predict what's ahead.

Log a period:
/log 2024-06-10 2024-06-14 - start and end date
/log 2024-06-10 - start only, length from your average

Then ask me:
/status - today's cycle snapshot and a daily tip
/predict - upcoming period and ovulation dates
/stats - averages and regularity scores
/history - everything you've logged

Manage your data:
/editlast 2024-06-15 - fix the last period's end date
/deletelast - remove the last period
/setcycle 30 - set your average cycle length
/export - download your history as CSV
/reminders - reminder settings`

func HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !validMessage(update) {
		logger.Error("invalid update in HandleStart")
		return
	}

	if err := db.RegisterChat(userKey(update), update.Message.Chat.ID); err != nil {
		logger.Error("failed to register chat", "user_id", update.Message.From.ID, "error", err)
		reply(ctx, b, update.Message.Chat.ID, "Something went wrong while setting up your account. Please try again later.")
		return
	}

	reply(ctx, b, update.Message.Chat.ID, startText)
}
