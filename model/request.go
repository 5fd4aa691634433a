package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the payload for opening a new account.
// It includes validation tags to ensure data integrity at the entry point.
type CreateAccountRequest struct {
	CustomerName string          `json:"customer_name" validate:"required,min=1,max=100"`
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currency_code" validate:"required,iso4217"`
}

// TransferRequest defines the payload for an atomic two-account transfer.
// It is ephemeral: it exists only for the duration of one transfer operation
// and is never persisted.
type TransferRequest struct {
	CurrencyCode  string          `json:"currency_code" validate:"required,iso4217"`
	Amount        decimal.Decimal `json:"amount"`
	FromAccountID int64           `json:"from_account_id" validate:"required"`
	ToAccountID   int64           `json:"to_account_id" validate:"required"`
	RequestedAt   time.Time       `json:"requested_at"`
}

// CustomerRequest defines the payload for creating or updating a customer profile.
type CustomerRequest struct {
	CustomerName string `json:"customer_name" validate:"required,min=1,max=100"`
	EmailAddress string `json:"email_address" validate:"required,email"`
	PhoneNumber  string `json:"phone_number" validate:"required,min=5,max=30"`
}
