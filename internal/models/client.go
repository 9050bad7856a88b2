package models

import "github.com/shopspring/decimal"

// ClientSummary is the externally visible state of one client account.
type ClientSummary struct {
	ID        ClientID        `json:"client"`
	Available decimal.Decimal `json:"available"`
	Held      decimal.Decimal `json:"held"`
	Total     decimal.Decimal `json:"total"`
	Frozen    bool            `json:"locked"`
}

// Rounded returns a copy with every balance rounded to places decimal places.
// Midpoints round to the nearest even digit.
func (s ClientSummary) Rounded(places int32) ClientSummary {
	s.Available = s.Available.RoundBank(places)
	s.Held = s.Held.RoundBank(places)
	s.Total = s.Total.RoundBank(places)
	return s
}
