package adapter

import (
	"context"
	"time"
)

// StoredResponse is a response recorded for an idempotency key.
type StoredResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// IdempotencyStore records responses so that repeated requests replay them.
type IdempotencyStore interface {
	// Get returns the stored response for key, or nil when none is stored.
	Get(ctx context.Context, key string) (*StoredResponse, error)

	// Save stores the response for key unless one is already stored.
	Save(ctx context.Context, key string, response StoredResponse, ttl time.Duration) error
}
