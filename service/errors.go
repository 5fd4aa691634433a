package service

import "errors"

var (
	ErrAccountNotFound         = errors.New("account cannot be found or locked")
	ErrSenderAccountNotFound   = errors.New("sender account not found")
	ErrReceiverAccountNotFound = errors.New("receiver account not found")
	ErrCustomerNotFound        = errors.New("customer not found")
	ErrCustomerNameTaken       = errors.New("customer name already in use")
	ErrSameAccountTransfer     = errors.New("cannot transfer money to the same account")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrCurrencyMismatch        = errors.New("currency mismatch between transfer and accounts")
	ErrInvalidAmount           = errors.New("amount must be greater than zero")
	ErrLockTimeout             = errors.New("account is locked by another transaction, retry later")
	ErrRollbackFailed          = errors.New("failed to roll back transaction")
)
