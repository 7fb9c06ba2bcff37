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

func seedTwoPeriods(t *testing.T, key string) []cycle.PeriodRecord {
	t.Helper()
	seed := []cycle.PeriodRecord{
		{StartDate: time.Date(2024, time.May, 13, 0, 0, 0, 0, time.UTC), DurationDays: 5},
		{StartDate: time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), DurationDays: 4},
	}
	if err := db.SaveHistory(key, seed); err != nil {
		t.Fatalf("failed to seed history: %v", err)
	}
	return seed
}

func TestHandleHistoryListsNewestFirst(t *testing.T) {
	testutil.SetupTestDB(t)
	logger.SetLogLevel(logger.ERROR)
	seedTwoPeriods(t, "501")

	client := newMockClient()
	b := newTestTelegramBot(t, client)
	update := newTestUpdate("/history", 501)

	HandleHistory(context.Background(), b, update)

	got := client.lastMessageText(t)
	june := strings.Index(got, "Jun 10, 2024")
	may := strings.Index(got, "May 13, 2024")
	if june < 0 || may < 0 {
		t.Fatalf("expected both periods in %q", got)
	}
	if june > may {
		t.Errorf("expected newest period first, got %q", got)
	}
}

func TestHandleEditLastUpdatesEndDate(t *testing.T) {
	testutil.SetupTestDB(t)
	logger.SetLogLevel(logger.ERROR)
	seedTwoPeriods(t, "502")

	client := newMockClient()
	b := newTestTelegramBot(t, client)
	update := newTestUpdate("/editlast 2024-06-16", 502)

	HandleEditLast(context.Background(), b, update)

	got := client.lastMessageText(t)
	if !strings.Contains(got, "now ends on Jun 16, 2024") {
		t.Fatalf("unexpected reply: %q", got)
	}

	history := db.GetHistory("502")
	last, ok := cycle.Latest(history)
	if !ok || last.DurationDays != 7 {
		t.Errorf("expected latest period duration 7, got %+v", history)
	}
}

func TestHandleEditLastRejectsEndBeforeStart(t *testing.T) {
	testutil.SetupTestDB(t)
	logger.SetLogLevel(logger.ERROR)
	seedTwoPeriods(t, "503")

	client := newMockClient()
	b := newTestTelegramBot(t, client)
	update := newTestUpdate("/editlast 2024-06-01", 503)

	HandleEditLast(context.Background(), b, update)

	got := client.lastMessageText(t)
	if !strings.Contains(got, "can't be before the period start") {
		t.Fatalf("expected invalid range message, got %q", got)
	}

	last, _ := cycle.Latest(db.GetHistory("503"))
	if last.DurationDays != 4 {
		t.Errorf("history must be unchanged after a rejected edit, got %+v", last)
	}
}

func TestHandleDeleteLastRemovesNewestPeriod(t *testing.T) {
	testutil.SetupTestDB(t)
	logger.SetLogLevel(logger.ERROR)
	seedTwoPeriods(t, "504")

	client := newMockClient()
	b := newTestTelegramBot(t, client)
	update := newTestUpdate("/deletelast", 504)

	HandleDeleteLast(context.Background(), b, update)

	got := client.lastMessageText(t)
	if !strings.Contains(got, "Deleted the period from Jun 10, 2024") {
		t.Fatalf("unexpected reply: %q", got)
	}

	history := db.GetHistory("504")
	if len(history) != 1 || !history[0].StartDate.Equal(time.Date(2024, time.May, 13, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected only the May period to remain, got %+v", history)
	}
}

func TestHandleEditLastNoData(t *testing.T) {
	testutil.SetupTestDB(t)
	logger.SetLogLevel(logger.ERROR)

	client := newMockClient()
	b := newTestTelegramBot(t, client)
	update := newTestUpdate("/editlast 2024-06-16", 505)

	HandleEditLast(context.Background(), b, update)

	if got := client.lastMessageText(t); !strings.Contains(got, "No periods logged yet") {
		t.Fatalf("expected no-data message, got %q", got)
	}
}
