// Package spending contains spending-related use cases.
package spending

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/domain/valueobject"
)

// Draft is an unvalidated spending as entered by a user or read from a file.
type Draft struct {
	OwnerID      string
	Amount       string
	CurrencyCode string
	CategoryName string
	Description  string
	OccurredAt   time.Time // Zero means now
}

// Prepare validates a draft and returns the spending to insert with its references.
// Failures are coded validation errors whose message is fit for the user.
func Prepare(draft Draft) (*entity.Spending, adapter.SpendingRefs, error) {
	if draft.OwnerID == "" {
		return nil, adapter.SpendingRefs{}, domainerror.NewLedgerError(
			domainerror.ErrCodeMissingOwner, "owner is required", domainerror.ErrMissingOwner,
		)
	}

	amount, err := valueobject.ParseAmount(draft.Amount)
	if err != nil {
		return nil, adapter.SpendingRefs{}, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidAmount,
			fmt.Sprintf("amount %q must be a positive number no larger than %s", draft.Amount, valueobject.FormatAmount(valueobject.MaxAmount)),
			domainerror.ErrInvalidAmount,
		)
	}

	code, ok := entity.NormalizeCurrencyCode(draft.CurrencyCode)
	if !ok {
		return nil, adapter.SpendingRefs{}, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidCurrencyCode,
			fmt.Sprintf("currency %q must be a three letter code", draft.CurrencyCode),
			domainerror.ErrInvalidCurrencyCode,
		)
	}

	category, ok := entity.NormalizeCategoryName(draft.CategoryName)
	if !ok {
		return nil, adapter.SpendingRefs{}, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidCategoryName,
			fmt.Sprintf("category must be 1 to %d characters", entity.MaxCategoryNameLength),
			domainerror.ErrInvalidCategoryName,
		)
	}

	description := strings.TrimSpace(draft.Description)
	if utf8.RuneCountInString(description) > entity.MaxDescriptionLength {
		return nil, adapter.SpendingRefs{}, domainerror.NewLedgerError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", entity.MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	occurredAt := draft.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	spending := entity.NewSpending(draft.OwnerID, amount, description, occurredAt)
	return spending, adapter.SpendingRefs{CurrencyCode: code, CategoryName: category}, nil
}

func requireOwner(ownerID string) error {
	if ownerID == "" {
		return domainerror.NewLedgerError(domainerror.ErrCodeMissingOwner, "owner is required", domainerror.ErrMissingOwner)
	}
	return nil
}
