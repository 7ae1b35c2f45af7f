package market

import "errors"

var (
	ErrQuoteUnavailable = errors.New("quote unavailable")
	ErrSymbolNotFound   = errors.New("symbol not found")
	ErrInvalidSymbol    = errors.New("symbol is required")
	ErrCircuitOpen      = errors.New("quote provider circuit is open")
)
