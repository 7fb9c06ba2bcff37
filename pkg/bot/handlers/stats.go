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

// Only the most recent intervals are shown to keep the message readable.
const recentLengthsShown = 6

func HandleStats(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !validMessage(update) {
		logger.Error("invalid update in HandleStats")
		return
	}
	chatID := update.Message.Chat.ID

	key := userKey(update)
	history := db.GetHistory(key)
	if len(history) == 0 {
		reply(ctx, b, chatID, "No periods logged yet. Use /log to start building your statistics.")
		return
	}
	settings := db.GetSettings(key)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Periods logged: %d\n", len(history))
	fmt.Fprintf(&sb, "Average cycle: %d days\n", settings.AverageCycleLength)
	fmt.Fprintf(&sb, "Average period: %d days\n", settings.AveragePeriodLength)
	fmt.Fprintf(&sb, "Cycle regularity: %d%%\n", cycle.CycleRegularityScore(history))
	fmt.Fprintf(&sb, "Period duration regularity: %d%%\n", cycle.PeriodDurationRegularityScore(history))

	if lengths := cycle.CycleLengths(history); len(lengths) > 0 {
		if len(lengths) > recentLengthsShown {
			lengths = lengths[len(lengths)-recentLengthsShown:]
		}
		parts := make([]string, len(lengths))
		for i, l := range lengths {
			parts[i] = fmt.Sprintf("%d", l)
		}
		fmt.Fprintf(&sb, "Recent cycle lengths: %s days", strings.Join(parts, ", "))
	}

	reply(ctx, b, chatID, sb.String())
}
