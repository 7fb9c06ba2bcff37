package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/msolovieva/tg-cycle-companion/pkg/cycle"
	"github.com/msolovieva/tg-cycle-companion/pkg/db"
	"github.com/msolovieva/tg-cycle-companion/pkg/logger"
)

// PredictionCount is how many future cycles /predict projects.
const PredictionCount = 3

func HandlePredict(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !validMessage(update) {
		logger.Error("invalid update in HandlePredict")
		return
	}
	chatID := update.Message.Chat.ID

	key := userKey(update)
	history := db.GetHistory(key)
	settings := db.GetSettings(key)

	periods := cycle.PredictedPeriodStarts(history, settings, PredictionCount)
	if len(periods) == 0 {
		reply(ctx, b, chatID, "Mark your period with /log to get predictions.")
		return
	}
	ovulations := cycle.PredictedOvulationDates(history, settings, PredictionCount)

	var sb strings.Builder
	sb.WriteString("Next periods:\n")
	for _, d := range periods {
		fmt.Fprintf(&sb, "  %s\n", formatDay(d))
	}
	sb.WriteString("\nOvulation days:\n")
	for _, d := range ovulations {
		fmt.Fprintf(&sb, "  %s\n", formatDay(d))
	}
	fmt.Fprintf(&sb, "\nBased on a %d-day average cycle and %d-day average period.",
		settings.AverageCycleLength, settings.AveragePeriodLength)

	reply(ctx, b, chatID, sb.String())
}
