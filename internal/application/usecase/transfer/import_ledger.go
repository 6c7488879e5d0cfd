package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spendings-bot/ledger/internal/application/adapter"
	"github.com/spendings-bot/ledger/internal/application/usecase/spending"
	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/domain/valueobject"
)

// ImportRow is one row to import. Err carries a decoding failure from the file layer.
type ImportRow struct {
	Line int // Defaults to the row's 1-based position
	Row  entity.LedgerRow
	Err  error
}

// ImportLedgerInput represents the input for importing spendings.
type ImportLedgerInput struct {
	OwnerID string
	Rows    []ImportRow
}

// ImportLedgerUseCase writes each row as its own spending. Bad rows are
// collected and reported; they never fail the batch.
type ImportLedgerUseCase struct {
	spendingRepo adapter.SpendingRepository
	publisher    adapter.EventPublisher
}

// NewImportLedgerUseCase creates a new ImportLedgerUseCase instance.
func NewImportLedgerUseCase(spendingRepo adapter.SpendingRepository, publisher adapter.EventPublisher) *ImportLedgerUseCase {
	return &ImportLedgerUseCase{
		spendingRepo: spendingRepo,
		publisher:    publisher,
	}
}

// Execute performs the import. Unknown currencies and categories are created.
func (uc *ImportLedgerUseCase) Execute(ctx context.Context, input ImportLedgerInput) (*entity.ImportResult, error) {
	if input.OwnerID == "" {
		return nil, domainerror.NewLedgerError(domainerror.ErrCodeMissingOwner, "owner is required", domainerror.ErrMissingOwner)
	}

	result := &entity.ImportResult{
		Rejected:      []entity.RejectedRow{},
		NewCategories: []string{},
		NewCurrencies: []string{},
	}

	for i, row := range input.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := row.Line
		if line == 0 {
			line = i + 1
		}
		reject := func(reason string) {
			result.Rejected = append(result.Rejected, entity.RejectedRow{Line: line, Row: row.Row, Reason: reason})
		}

		if row.Err != nil {
			reject(row.Err.Error())
			continue
		}

		occurredAt, err := valueobject.ParseLedgerDate(row.Row.Date)
		if err != nil {
			reject(fmt.Sprintf("date %q is not a recognized date", row.Row.Date))
			continue
		}

		draft, refs, err := spending.Prepare(spending.Draft{
			OwnerID:      input.OwnerID,
			Amount:       row.Row.Amount,
			CurrencyCode: row.Row.Currency,
			CategoryName: row.Row.Category,
			Description:  row.Row.Description,
			OccurredAt:   occurredAt,
		})
		if err != nil {
			reject(reasonOf(err))
			continue
		}
		refs.CreateCurrency = true

		created, err := uc.spendingRepo.Create(ctx, draft, refs)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			slog.Error("Failed to import row", "ownerID", input.OwnerID, "line", line, "error", err)
			reject("could not be stored")
			continue
		}

		result.Accepted++
		if created.CategoryCreated {
			result.NewCategories = append(result.NewCategories, created.Spending.CategoryName)
		}
		if created.CurrencyCreated {
			result.NewCurrencies = append(result.NewCurrencies, created.Spending.CurrencyCode)
		}
	}

	slog.Info("Ledger imported",
		"ownerID", input.OwnerID,
		"accepted", result.Accepted,
		"rejected", len(result.Rejected),
		"newCategories", len(result.NewCategories),
		"newCurrencies", len(result.NewCurrencies),
	)
	if result.Accepted > 0 {
		adapter.PublishBestEffort(ctx, uc.publisher, entity.NewLedgerEvent(entity.EventLedgerImported, input.OwnerID, map[string]string{
			"accepted": strconv.Itoa(result.Accepted),
			"rejected": strconv.Itoa(len(result.Rejected)),
		}))
	}
	return result, nil
}

func reasonOf(err error) string {
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		return ledgerErr.Message
	}
	return err.Error()
}
