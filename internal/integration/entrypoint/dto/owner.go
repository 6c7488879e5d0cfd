package dto

// OnboardResponse represents the outcome of onboarding.
type OnboardResponse struct {
	OwnerID           string   `json:"owner_id"`
	MainCurrency      string   `json:"main_currency"`
	CreatedCurrencies []string `json:"created_currencies"`
	CreatedCategories []string `json:"created_categories"`
}

// DeleteOwnerDataResponse represents how much data was erased.
type DeleteOwnerDataResponse struct {
	Spendings  int64 `json:"spendings"`
	Categories int64 `json:"categories"`
	Currencies int64 `json:"currencies"`
}
