package report

import (
	"context"
	"time"

	"github.com/spendings-bot/ledger/internal/domain/entity"
	domainerror "github.com/spendings-bot/ledger/internal/domain/error"
	"github.com/spendings-bot/ledger/internal/domain/valueobject"
)

// MonthlyReportInput represents the input for a calendar month report.
type MonthlyReportInput struct {
	OwnerID        string
	Year           int
	Month          time.Month
	TargetCurrency string
}

// MonthlyReportUseCase reports on one calendar month in UTC.
type MonthlyReportUseCase struct {
	generate *GenerateReportUseCase
}

// NewMonthlyReportUseCase creates a new MonthlyReportUseCase instance.
func NewMonthlyReportUseCase(generate *GenerateReportUseCase) *MonthlyReportUseCase {
	return &MonthlyReportUseCase{
		generate: generate,
	}
}

// Execute builds the month's report.
func (uc *MonthlyReportUseCase) Execute(ctx context.Context, input MonthlyReportInput) (*entity.Report, error) {
	if input.Month < time.January || input.Month > time.December || input.Year < 1 {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidDate,
			"month must be between 1 and 12",
			domainerror.ErrInvalidDate,
		)
	}

	month := valueobject.MonthRange(input.Year, input.Month)
	return uc.generate.Execute(ctx, GenerateReportInput{
		OwnerID:        input.OwnerID,
		From:           month.From,
		To:             month.To,
		TargetCurrency: input.TargetCurrency,
	})
}
