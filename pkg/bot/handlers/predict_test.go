package handlers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/msolovieva/tg-cycle-companion/pkg/cycle"
	"github.com/msolovieva/tg-cycle-companion/pkg/db"
	"github.com/msolovieva/tg-cycle-companion/pkg/internal/testutil"
	"github.com/msolovieva/tg-cycle-companion/pkg/logger"
)

func TestHandlePredictNoData(t *testing.T) {
	testutil.SetupTestDB(t)
	logger.SetLogLevel(logger.ERROR)

	client := newMockClient()
	b := newTestTelegramBot(t, client)
	update := newTestUpdate("/predict", 301)

	HandlePredict(context.Background(), b, update)

	got := client.lastMessageText(t)
	if !strings.Contains(got, "Mark your period with /log") {
		t.Fatalf("expected no-data message, got %q", got)
	}
}

func TestHandlePredictListsUpcomingCycles(t *testing.T) {
	testutil.SetupTestDB(t)
	logger.SetLogLevel(logger.ERROR)

	today := cycle.Date(time.Now().UTC())
	seed := []cycle.PeriodRecord{
		{StartDate: today.AddDate(0, 0, -58), DurationDays: 5},
		{StartDate: today.AddDate(0, 0, -28), DurationDays: 5},
	}
	if err := db.SaveHistory("302", seed); err != nil {
		t.Fatalf("failed to seed history: %v", err)
	}

	client := newMockClient()
	b := newTestTelegramBot(t, client)
	update := newTestUpdate("/predict", 302)

	HandlePredict(context.Background(), b, update)

	got := client.lastMessageText(t)
	if !strings.Contains(got, "30-day") {
		t.Errorf("expected the 30-day average to be mentioned, got %q", got)
	}
	// avg cycle 30: next start is today+2, ovulation 14 days earlier.
	if !strings.Contains(got, formatDay(today.AddDate(0, 0, 2))) {
		t.Errorf("expected first predicted start %s, got %q", formatDay(today.AddDate(0, 0, 2)), got)
	}
	if !strings.Contains(got, formatDay(today.AddDate(0, 0, -12))) {
		t.Errorf("expected first ovulation date %s, got %q", formatDay(today.AddDate(0, 0, -12)), got)
	}
}
