// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendings-bot/ledger/config"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	"github.com/spendings-bot/ledger/internal/infra/db"
)

// NewDatabase opens a migrated, private in-memory SQLite database that is
// closed when the test ends.
func NewDatabase(t testing.TB) *db.Database {
	t.Helper()

	database, err := db.NewConnection(&config.DatabaseConfig{
		Driver: db.DriverSQLite,
		URL:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, false)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// StubRateSource is an in-memory rate source that counts fetches.
type StubRateSource struct {
	mu    sync.Mutex
	rates map[string]decimal.Decimal
	Err   error         // Returned by every fetch when set
	Delay time.Duration // Applied before answering, honoring the context
	calls atomic.Int64
}

// NewStubRateSource creates an empty StubRateSource.
func NewStubRateSource() *StubRateSource {
	return &StubRateSource{rates: map[string]decimal.Decimal{}}
}

// Set registers the rate for a pair on the day of at.
func (s *StubRateSource) Set(base, quote string, at time.Time, rate string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[stubKey(base, quote, at)] = decimal.RequireFromString(rate)
}

// Calls returns how many fetches were made.
func (s *StubRateSource) Calls() int64 {
	return s.calls.Load()
}

// FetchRate implements adapter.RateSource.
func (s *StubRateSource) FetchRate(ctx context.Context, base, quote string, date time.Time) (decimal.Decimal, error) {
	s.calls.Add(1)
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return decimal.Zero, ctx.Err()
		}
	}
	if s.Err != nil {
		return decimal.Zero, s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rate, ok := s.rates[stubKey(base, quote, date)]
	if !ok {
		return decimal.Zero, fmt.Errorf("no stub rate for %s/%s", base, quote)
	}
	return rate, nil
}

func stubKey(base, quote string, at time.Time) string {
	return base + quote + entity.RateDate(at).Format("2006-01-02")
}

// RecordingPublisher collects published events.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []entity.LedgerEvent
}

// Publish implements adapter.EventPublisher.
func (p *RecordingPublisher) Publish(_ context.Context, event entity.LedgerEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Types returns the types of the published events in order.
func (p *RecordingPublisher) Types() []entity.LedgerEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]entity.LedgerEventType, len(p.events))
	for i, event := range p.events {
		types[i] = event.Type
	}
	return types
}
