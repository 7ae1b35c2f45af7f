package analytics

import "errors"

var (
	ErrInvalidTimestamp     = errors.New("transaction timestamp is missing")
	ErrMissingCategory      = errors.New("transaction category is missing")
	ErrInvalidQuantity      = errors.New("holding quantity must be positive")
	ErrInvalidPurchasePrice = errors.New("holding purchase price must not be negative")
	ErrInvalidCurrentValue  = errors.New("holding current value must not be negative")
	ErrInvalidSavingsTarget = errors.New("savings target must be between 0 and 100 percent")
)
