package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/msolovieva/tg-cycle-companion/pkg/logger"
)

func DefaultHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil {
		logger.Error("received invalid update in DefaultHandler")
		return
	}
	if update.Message.Chat.ID == 0 {
		logger.Error("chat ID is zero in DefaultHandler")
		return
	}

	reply(ctx, b, update.Message.Chat.ID,
		"I didn't understand that. Try /status, /log, /predict, /stats, or /start for the full command list.")
}
