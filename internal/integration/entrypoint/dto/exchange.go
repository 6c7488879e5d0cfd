package dto

// RecordRateRequest represents the request body for seeding an exchange rate.
type RecordRateRequest struct {
	Base  string `json:"base" binding:"required"`
	Quote string `json:"quote" binding:"required"`
	Date  string `json:"date" binding:"required"`
	Rate  string `json:"rate" binding:"required"`
}

// RateResponse represents a stored exchange rate.
type RateResponse struct {
	Base  string `json:"base"`
	Quote string `json:"quote"`
	Date  string `json:"date"`
	Rate  string `json:"rate"`
}

// ConversionResponse represents the result of a one-off conversion.
type ConversionResponse struct {
	Amount    string `json:"amount"`
	From      string `json:"from"`
	Converted string `json:"converted"`
	To        string `json:"to"`
	Date      string `json:"date"`
}
