package holding

import "errors"

var (
	// Validation errors
	ErrInvalidUserID        = errors.New("invalid user ID")
	ErrMissingAssetName     = errors.New("asset name is required")
	ErrAssetNameTooLong     = errors.New("asset name exceeds 200 characters")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrInvalidPurchasePrice = errors.New("purchase price must be positive")
	ErrInvalidCurrentValue  = errors.New("current value must not be negative")

	// Repository errors
	ErrHoldingNotFound    = errors.New("holding not found")
	ErrUnauthorizedAccess = errors.New("unauthorized holding access")
)
