package dto

import "github.com/spendings-bot/ledger/internal/domain/entity"

// LedgerRowDTO represents one flat ledger row.
type LedgerRowDTO struct {
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// ImportRequest represents a JSON import body.
type ImportRequest struct {
	Rows []LedgerRowDTO `json:"rows" binding:"required"`
}

// RejectedRowResponse represents an import row that was not accepted.
type RejectedRowResponse struct {
	Line   int          `json:"line"`
	Row    LedgerRowDTO `json:"row"`
	Reason string       `json:"reason"`
}

// ImportResponse represents the outcome of an import.
type ImportResponse struct {
	Accepted      int                   `json:"accepted"`
	Rejected      []RejectedRowResponse `json:"rejected"`
	NewCategories []string              `json:"new_categories"`
	NewCurrencies []string              `json:"new_currencies"`
}

// ExportResponse represents a JSON export.
type ExportResponse struct {
	Rows []LedgerRowDTO `json:"rows"`
}

// ToLedgerRowDTO converts a domain LedgerRow to its DTO.
func ToLedgerRowDTO(row entity.LedgerRow) LedgerRowDTO {
	return LedgerRowDTO{
		Date:        row.Date,
		Amount:      row.Amount,
		Currency:    row.Currency,
		Category:    row.Category,
		Description: row.Description,
	}
}

// ToEntity converts the DTO to a domain LedgerRow.
func (r LedgerRowDTO) ToEntity() entity.LedgerRow {
	return entity.LedgerRow{
		Date:        r.Date,
		Amount:      r.Amount,
		Currency:    r.Currency,
		Category:    r.Category,
		Description: r.Description,
	}
}

// ToExportResponse converts rows to an ExportResponse DTO.
func ToExportResponse(rows []entity.LedgerRow) ExportResponse {
	response := ExportResponse{Rows: make([]LedgerRowDTO, len(rows))}
	for i, row := range rows {
		response.Rows[i] = ToLedgerRowDTO(row)
	}
	return response
}

// ToImportResponse converts an ImportResult to an ImportResponse DTO.
func ToImportResponse(result *entity.ImportResult) ImportResponse {
	response := ImportResponse{
		Accepted:      result.Accepted,
		Rejected:      make([]RejectedRowResponse, len(result.Rejected)),
		NewCategories: result.NewCategories,
		NewCurrencies: result.NewCurrencies,
	}
	for i, rejected := range result.Rejected {
		response.Rejected[i] = RejectedRowResponse{
			Line:   rejected.Line,
			Row:    ToLedgerRowDTO(rejected.Row),
			Reason: rejected.Reason,
		}
	}
	return response
}
