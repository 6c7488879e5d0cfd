package dto

import (
	"time"

	"github.com/spendings-bot/ledger/internal/domain/entity"
)

// CurrencyCodeRequest represents a request body naming a currency.
type CurrencyCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// CurrencyResponse represents a single currency in API responses.
type CurrencyResponse struct {
	Code      string    `json:"code"`
	Active    bool      `json:"active"`
	Main      bool      `json:"main"`
	CreatedAt time.Time `json:"created_at"`
}

// CurrencyListResponse represents the response for listing currencies.
type CurrencyListResponse struct {
	Currencies   []CurrencyResponse `json:"currencies"`
	MainCurrency string             `json:"main_currency,omitempty"`
}

// AddCurrencyResponse represents the response for adding a currency.
type AddCurrencyResponse struct {
	Currency   CurrencyResponse `json:"currency"`
	Restored   bool             `json:"restored"`
	BecameMain bool             `json:"became_main"`
}

// ArchiveCurrencyResponse represents the response for archiving a currency.
type ArchiveCurrencyResponse struct {
	Currency CurrencyResponse `json:"currency"`
	NewMain  string           `json:"new_main,omitempty"`
}

// MainCurrencyResponse represents the owner's main currency.
type MainCurrencyResponse struct {
	Code string `json:"code"`
}

// ToCurrencyResponse converts a domain Currency entity to a CurrencyResponse DTO.
func ToCurrencyResponse(currency *entity.Currency, mainCurrency string) CurrencyResponse {
	return CurrencyResponse{
		Code:      currency.Code,
		Active:    currency.Active,
		Main:      currency.Code == mainCurrency,
		CreatedAt: currency.CreatedAt,
	}
}

// ToCurrencyListResponse converts currencies to a CurrencyListResponse DTO.
func ToCurrencyListResponse(currencies []*entity.Currency, mainCurrency string) CurrencyListResponse {
	response := CurrencyListResponse{
		Currencies:   make([]CurrencyResponse, len(currencies)),
		MainCurrency: mainCurrency,
	}
	for i, currency := range currencies {
		response.Currencies[i] = ToCurrencyResponse(currency, mainCurrency)
	}
	return response
}
