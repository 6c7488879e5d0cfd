package dto

import (
	"time"

	"github.com/spendings-bot/ledger/internal/domain/entity"
	"github.com/spendings-bot/ledger/internal/domain/valueobject"
)

// CreateSpendingRequest represents the request body for spending creation.
// Amount is a string so that "12,50" and "12.50" both arrive unchanged.
type CreateSpendingRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Currency    string `json:"currency" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
	OccurredAt  string `json:"occurred_at"` // Optional; YYYY-MM-DD or RFC 3339
}

// SpendingResponse represents a single spending in API responses.
type SpendingResponse struct {
	ID          string    `json:"id"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateSpendingResponse represents the response for spending creation.
type CreateSpendingResponse struct {
	Spending        SpendingResponse `json:"spending"`
	CategoryCreated bool             `json:"category_created"`
}

// SpendingPageResponse represents one page of spendings.
type SpendingPageResponse struct {
	Spendings  []SpendingResponse `json:"spendings"`
	NextCursor string             `json:"next_cursor,omitempty"`
	HasMore    bool               `json:"has_more"`
	Limit      int                `json:"limit"`
}

// PeriodResponse represents a calendar month that contains spendings.
type PeriodResponse struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Count int `json:"count"`
}

// PeriodListResponse represents the response for listing periods.
type PeriodListResponse struct {
	Periods []PeriodResponse `json:"periods"`
}

// ToSpendingResponse converts a domain Spending entity to a SpendingResponse DTO.
func ToSpendingResponse(spending *entity.Spending) SpendingResponse {
	return SpendingResponse{
		ID:          spending.ID.String(),
		Amount:      valueobject.FormatAmount(spending.Amount),
		Currency:    spending.CurrencyCode,
		Category:    spending.CategoryName,
		Description: spending.Description,
		OccurredAt:  spending.OccurredAt,
		CreatedAt:   spending.CreatedAt,
	}
}

// ToSpendingPageResponse converts a page of spendings to a SpendingPageResponse DTO.
func ToSpendingPageResponse(spendings []*entity.Spending, nextCursor string, hasMore bool, limit int) SpendingPageResponse {
	response := SpendingPageResponse{
		Spendings:  make([]SpendingResponse, len(spendings)),
		NextCursor: nextCursor,
		HasMore:    hasMore,
		Limit:      limit,
	}
	for i, spending := range spendings {
		response.Spendings[i] = ToSpendingResponse(spending)
	}
	return response
}

// ToPeriodListResponse converts periods to a PeriodListResponse DTO.
func ToPeriodListResponse(periods []entity.Period) PeriodListResponse {
	response := PeriodListResponse{Periods: make([]PeriodResponse, len(periods))}
	for i, period := range periods {
		response.Periods[i] = PeriodResponse{Year: period.Year, Month: int(period.Month), Count: period.Count}
	}
	return response
}
