package dto

import (
	"time"

	"github.com/spendings-bot/ledger/internal/domain/entity"
	"github.com/spendings-bot/ledger/internal/domain/valueobject"
)

// ReportLineResponse represents one keyed amount of a report.
type ReportLineResponse struct {
	Key    string `json:"key"`
	Amount string `json:"amount"`
}

// ReportResponse represents a currency-normalized spending report.
type ReportResponse struct {
	From           *time.Time           `json:"from,omitempty"`
	To             *time.Time           `json:"to,omitempty"`
	TargetCurrency string               `json:"target_currency"`
	Total          string               `json:"total"`
	ByCategory     []ReportLineResponse `json:"by_category"`
	ByCurrency     []ReportLineResponse `json:"by_currency"`
	SpendingCount  int                  `json:"spending_count"`
}

// ToReportResponse converts a domain Report to a ReportResponse DTO.
func ToReportResponse(report *entity.Report) ReportResponse {
	response := ReportResponse{
		TargetCurrency: report.TargetCurrency,
		Total:          valueobject.FormatAmount(report.Total),
		ByCategory:     toLines(report.ByCategory),
		ByCurrency:     toLines(report.ByCurrency),
		SpendingCount:  report.SpendingCount,
	}
	if !report.From.IsZero() {
		from := report.From
		response.From = &from
	}
	if !report.To.IsZero() {
		to := report.To
		response.To = &to
	}
	return response
}

func toLines(lines []entity.ReportLine) []ReportLineResponse {
	result := make([]ReportLineResponse, len(lines))
	for i, line := range lines {
		result[i] = ReportLineResponse{Key: line.Key, Amount: valueobject.FormatAmount(line.Amount)}
	}
	return result
}
