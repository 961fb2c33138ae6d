package model

import "github.com/shopspring/decimal"

// ProfitSummary is the backend's aggregate answer to a filtered profit
// query: total sale value and total profit for the period.
type ProfitSummary struct {
	Sale   decimal.Decimal `json:"sale"`
	Profit decimal.Decimal `json:"profit"`
}
