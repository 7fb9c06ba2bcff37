package testutil

import (
	"testing"

	"github.com/msolovieva/tg-cycle-companion/pkg/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB points db.DB at a fresh in-memory sqlite database for the test
// and tears it down afterwards.
func SetupTestDB(t *testing.T) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.CycleHistory{}, &db.UserSettings{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	db.DB = gdb

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to access underlying DB: %v", err)
	}

	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Fatalf("failed to close database: %v", err)
		}
		db.DB = nil
	})
}
