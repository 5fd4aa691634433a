package model

import "github.com/shopspring/decimal"

// Account is a currency-denominated balance record owned by a customer.
// The balance is a fixed-point decimal with scale 4 and is never negative
// at any commit point.
type Account struct {
	ID           int64           `json:"id"`
	CustomerName string          `json:"customer_name"`
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currency_code"`
}
