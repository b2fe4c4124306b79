package domain

import "errors"

var (
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInvalidSnapshot   = errors.New("invalid session snapshot")
	ErrInvalidEmail      = errors.New("invalid email")
	ErrInvalidName       = errors.New("invalid name")
	ErrProductNotFound   = errors.New("product not found")
	ErrKeyNotFound       = errors.New("key not found")
	ErrEmptyMessage      = errors.New("message is empty")
	ErrFAQNotFound       = errors.New("faq question not found")

	ErrAdapterUnavailable  = errors.New("ledger adapter unavailable")
	ErrConfirmationTimeout = errors.New("timed out waiting for transaction confirmation")
	ErrTransactionRejected = errors.New("transaction rejected")
	ErrTransactionNotFound = errors.New("transaction not found")
)
