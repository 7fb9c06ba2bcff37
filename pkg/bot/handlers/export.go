package handlers

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/msolovieva/tg-cycle-companion/pkg/cycle"
	"github.com/msolovieva/tg-cycle-companion/pkg/db"
	"github.com/msolovieva/tg-cycle-companion/pkg/logger"
)

// HandleExport sends the user's full period history as a CSV document.
func HandleExport(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !validMessage(update) {
		logger.Error("invalid update in HandleExport")
		return
	}
	chatID := update.Message.Chat.ID
	if update.Message.Chat.Type != models.ChatTypePrivate {
		reply(ctx, b, chatID, "The /export command works only in private chat.")
		return
	}

	history := db.GetHistory(userKey(update))
	if len(history) == 0 {
		reply(ctx, b, chatID, "You have no period history to export.")
		return
	}

	data, err := buildExportCSV(history)
	if err != nil {
		logger.Error("failed to build export CSV", "user_id", update.Message.From.ID, "error", err)
		reply(ctx, b, chatID, "Failed to export your history. Please try again later.")
		return
	}

	filename := fmt.Sprintf("cycle-history-%s.csv", time.Now().Format("2006-01-02"))
	caption := fmt.Sprintf("Your period history (%d entries).", len(history))
	if _, err := b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID: chatID,
		Document: &models.InputFileUpload{
			Filename: filename,
			Data:     bytes.NewReader(data),
		},
		Caption: caption,
	}); err != nil {
		logger.Error("failed to send export document", "user_id", update.Message.From.ID, "error", err)
		reply(ctx, b, chatID, "Failed to export your history. Please try again later.")
	}
}

func buildExportCSV(history []cycle.PeriodRecord) ([]byte, error) {
	sorted := make([]cycle.PeriodRecord, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"start_date", "end_date", "duration_days"}); err != nil {
		return nil, err
	}
	for _, r := range sorted {
		row := []string{
			r.StartDate.Format(dateLayout),
			r.EndDate().Format(dateLayout),
			strconv.Itoa(r.DurationDays),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
