// Package transfer contains ledger import and export use cases.
package transfer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/domain/valueobject"
)

// ExportLedgerInput represents the input for exporting spendings.
type ExportLedgerInput struct {
	OwnerID string
	From    time.Time // Inclusive; zero is unbounded
	To      time.Time // Exclusive; zero is unbounded
}

// ExportLedgerUseCase flattens spendings into rows, oldest first, so that an
// export can be imported back unchanged.
type ExportLedgerUseCase struct {
	spendingRepo adapter.SpendingRepository
}

// NewExportLedgerUseCase creates a new ExportLedgerUseCase instance.
func NewExportLedgerUseCase(spendingRepo adapter.SpendingRepository) *ExportLedgerUseCase {
	return &ExportLedgerUseCase{
		spendingRepo: spendingRepo,
	}
}

// Execute performs the export.
func (uc *ExportLedgerUseCase) Execute(ctx context.Context, input ExportLedgerInput) ([]entity.LedgerRow, error) {
	if input.OwnerID == "" {
		return nil, domainerror.NewLedgerError(domainerror.ErrCodeMissingOwner, "owner is required", domainerror.ErrMissingOwner)
	}

	dateRange, err := valueobject.NewDateRange(input.From, input.To)
	if err != nil {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidDateRange,
			"range end must be after its start",
			domainerror.ErrInvalidDateRange,
		)
	}

	spendings, err := uc.spendingRepo.FindInRange(ctx, input.OwnerID, dateRange)
	if err != nil {
		return nil, fmt.Errorf("failed to load spendings: %w", err)
	}

	rows := make([]entity.LedgerRow, len(spendings))
	for i, s := range spendings {
		rows[i] = entity.LedgerRow{
			Date:        valueobject.FormatLedgerDate(s.OccurredAt),
			Amount:      valueobject.FormatAmount(s.Amount),
			Currency:    s.CurrencyCode,
			Category:    s.CategoryName,
			Description: s.Description,
		}
	}

	slog.Info("Ledger exported", "ownerID", input.OwnerID, "rows", len(rows))
	return rows, nil
}
