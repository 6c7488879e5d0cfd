package entity

import "time"

// LedgerEventType identifies what changed in an owner's ledger.
type LedgerEventType string

const (
	EventSpendingAdded    LedgerEventType = "spending.added"
	EventSpendingRemoved  LedgerEventType = "spending.removed"
	EventCurrencyArchived LedgerEventType = "currency.archived"
	EventMainCurrencySet  LedgerEventType = "currency.main_set"
	EventCategoryRemoved  LedgerEventType = "category.removed"
	EventLedgerImported   LedgerEventType = "ledger.imported"
	EventOwnerDataDeleted LedgerEventType = "owner.deleted"
)

// LedgerEvent is a notification about a change in an owner's ledger.
type LedgerEvent struct {
	Type       LedgerEventType   `json:"type"`
	OwnerID    string            `json:"owner_id"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// NewLedgerEvent creates a new LedgerEvent stamped with the current time.
func NewLedgerEvent(eventType LedgerEventType, ownerID string, attributes map[string]string) LedgerEvent {
	return LedgerEvent{
		Type:       eventType,
		OwnerID:    ownerID,
		Attributes: attributes,
		OccurredAt: time.Now().UTC(),
	}
}
