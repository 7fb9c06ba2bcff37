package handlers

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/msolovieva/tg-cycle-companion/pkg/logger"
)

const dateLayout = "2006-01-02"

func validMessage(update *models.Update) bool {
	return update != nil && update.Message != nil && update.Message.From != nil && update.Message.Chat.ID != 0
}

// userKey scopes all stored data for a bot user.
func userKey(update *models.Update) string {
	return strconv.FormatInt(update.Message.From.ID, 10)
}

func reply(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}); err != nil {
		logger.Error("failed to send message", "chat_id", chatID, "error", err)
	}
}

func parseDay(value string) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return day, nil
}

func formatDay(day time.Time) string {
	return day.Format("Jan 2, 2006")
}
