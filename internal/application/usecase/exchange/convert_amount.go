package exchange

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/domain/valueobject"
)

// ConvertAmountInput represents the input for a one-off conversion.
type ConvertAmountInput struct {
	Amount string
	From   string
	To     string
	At     time.Time // Zero means now
}

// ConvertAmountOutput represents the output of a one-off conversion.
type ConvertAmountOutput struct {
	Amount    decimal.Decimal
	Converted decimal.Decimal
	From      string
	To        string
	Date      time.Time
}

// ConvertAmountUseCase converts a user supplied amount between two currencies.
type ConvertAmountUseCase struct {
	resolver *Resolver
}

// NewConvertAmountUseCase creates a new ConvertAmountUseCase instance.
func NewConvertAmountUseCase(resolver *Resolver) *ConvertAmountUseCase {
	return &ConvertAmountUseCase{
		resolver: resolver,
	}
}

// Execute performs the conversion.
func (uc *ConvertAmountUseCase) Execute(ctx context.Context, input ConvertAmountInput) (*ConvertAmountOutput, error) {
	amount, err := valueobject.ParseAmount(input.Amount)
	if err != nil {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be a positive number with at most two decimals",
			domainerror.ErrInvalidAmount,
		)
	}

	from, fromOK := entity.NormalizeCurrencyCode(input.From)
	to, toOK := entity.NormalizeCurrencyCode(input.To)
	if !fromOK || !toOK {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidCurrencyCode,
			"currency codes must be three letters",
			domainerror.ErrInvalidCurrencyCode,
		)
	}

	at := input.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	converted, err := uc.resolver.Convert(ctx, amount, from, to, at)
	if err != nil {
		return nil, err
	}

	return &ConvertAmountOutput{
		Amount:    amount,
		Converted: converted,
		From:      from,
		To:        to,
		Date:      entity.RateDate(at),
	}, nil
}
