package db

import (
	"testing"

	"github.com/google/uuid"

	"github.com/spendings-bot/ledger/config"
)

func TestNewConnection_SQLiteMemory(t *testing.T) {
	database, err := NewConnection(&config.DatabaseConfig{
		Driver: DriverSQLite,
		URL:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	for _, table := range []string{"owners", "currencies", "categories", "spendings", "exchange_rates"} {
		if !database.DB().Migrator().HasTable(table) {
			t.Errorf("expected table %s to exist", table)
		}
	}
	if !database.HealthCheck() {
		t.Error("expected healthy database")
	}
}

func TestNewConnection_UnsupportedDriver(t *testing.T) {
	if _, err := NewConnection(&config.DatabaseConfig{Driver: "oracle"}, false); err == nil {
		t.Error("expected error for unsupported driver")
	}
}
