package adapter

import (
	"context"
	"log/slog"

	"github.com/spendings-bot/ledger/internal/domain/entity"
)

// EventPublisher publishes ledger events to interested front ends.
// Publishing is best effort; callers log failures and carry on.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.LedgerEvent) error
}

// PublishBestEffort publishes event and logs, rather than returns, any failure.
// A nil publisher is allowed.
func PublishBestEffort(ctx context.Context, publisher EventPublisher, event entity.LedgerEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish ledger event",
			"type", event.Type,
			"ownerID", event.OwnerID,
			"error", err,
		)
	}
}
