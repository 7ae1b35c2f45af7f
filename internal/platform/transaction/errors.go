package transaction

import "errors"

var (
	// Validation errors
	ErrInvalidUserID        = errors.New("invalid user ID")
	ErrInvalidTransactionID = errors.New("invalid transaction ID")
	ErrInvalidCategory      = errors.New("invalid or unsupported category")
	ErrZeroAmount           = errors.New("amount must not be zero")
	ErrDescriptionTooLong   = errors.New("description exceeds 500 characters")
	ErrInvalidPeriod        = errors.New("period must be one of all, week, month, year")
	ErrInvalidDateRange     = errors.New("start date must be before end date")

	// Repository errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrUnauthorizedAccess  = errors.New("unauthorized transaction access")
)
