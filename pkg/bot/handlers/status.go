package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/msolovieva/tg-cycle-companion/pkg/cycle"
	"github.com/msolovieva/tg-cycle-companion/pkg/db"
	"github.com/msolovieva/tg-cycle-companion/pkg/logger"
)

func HandleStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !validMessage(update) {
		logger.Error("invalid update in HandleStatus")
		return
	}
	chatID := update.Message.Chat.ID

	key := userKey(update)
	history := db.GetHistory(key)
	settings := db.GetSettings(key)
	today := cycle.Date(time.Now().UTC())

	snap := cycle.ComputeSnapshot(history, settings, today)
	if !snap.HasData {
		reply(ctx, b, chatID, "No periods logged yet. Use /log <start date> [end date] to get started.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Cycle day %d\n", snap.CurrentCycleDay)
	if snap.OnPeriod {
		fmt.Fprintf(&sb, "On period: day %d of %d (%d%%)\n", snap.PeriodDay, snap.PeriodLength, snap.PeriodProgressPercent)
	}
	fmt.Fprintf(&sb, "Next period: %s\n", describeDaysUntil(snap.DaysUntilNextPeriod))
	fmt.Fprintf(&sb, "Ovulation: %s\n", describeOvulation(snap.DaysUntilOvulation))
	fmt.Fprintf(&sb, "Fertility: %s\n\n", snap.Fertility)
	sb.WriteString(cycle.DailyTip(snap))

	reply(ctx, b, chatID, sb.String())
}

func describeDaysUntil(days int) string {
	switch days {
	case 0:
		return "expected today or overdue"
	case 1:
		return "expected tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

func describeOvulation(days int) string {
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days > 1:
		return fmt.Sprintf("in %d days", days)
	case days == -1:
		return "yesterday"
	default:
		return fmt.Sprintf("%d days ago", -days)
	}
}
