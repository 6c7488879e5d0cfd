// Package currency contains currency registry use cases.
package currency

import (
	"errors"

	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
)

// parseCode normalizes a currency code or returns a coded validation error.
func parseCode(raw string) (string, error) {
	code, ok := entity.NormalizeCurrencyCode(raw)
	if !ok {
		return "", domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidCurrencyCode,
			"currency code must be three letters",
			domainerror.ErrInvalidCurrencyCode,
		)
	}
	return code, nil
}

// requireOwner returns a coded validation error when ownerID is empty.
func requireOwner(ownerID string) error {
	if ownerID == "" {
		return domainerror.NewLedgerError(domainerror.ErrCodeMissingOwner, "owner is required", domainerror.ErrMissingOwner)
	}
	return nil
}

// translateError attaches an error code to registry errors. Other errors pass through.
func translateError(err error, code string) error {
	switch {
	case errors.Is(err, domainerror.ErrCurrencyNotFound):
		return domainerror.NewLedgerError(domainerror.ErrCodeCurrencyNotFound, "currency "+code+" not found", err)
	case errors.Is(err, domainerror.ErrDuplicateCurrency):
		return domainerror.NewLedgerError(domainerror.ErrCodeDuplicateCurrency, "currency "+code+" already exists", err)
	case errors.Is(err, domainerror.ErrCurrencyAlreadyArchived):
		return domainerror.NewLedgerError(domainerror.ErrCodeCurrencyAlreadyArchived, "currency "+code+" is already archived", err)
	case errors.Is(err, domainerror.ErrCurrencyNotArchived):
		return domainerror.NewLedgerError(domainerror.ErrCodeCurrencyNotArchived, "currency "+code+" is not archived", err)
	case errors.Is(err, domainerror.ErrMainCurrencyInUse):
		return domainerror.NewLedgerError(domainerror.ErrCodeMainCurrencyInUse, "currency "+code+" is the main currency", err)
	case errors.Is(err, domainerror.ErrCurrencyInUse):
		return domainerror.NewLedgerError(domainerror.ErrCodeCurrencyInUse, "currency "+code+" is used by spendings", err)
	case errors.Is(err, domainerror.ErrCurrencyArchived):
		return domainerror.NewLedgerError(domainerror.ErrCodeCurrencyArchived, "currency "+code+" is archived", err)
	default:
		return err
	}
}
