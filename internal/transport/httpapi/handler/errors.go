package handler

import (
	"context"
	"errors"

	"github.com/Akshan03/Personal-Finance-Agent/internal/analytics"
	"github.com/Akshan03/Personal-Finance-Agent/internal/infra/llm"
	"github.com/Akshan03/Personal-Finance-Agent/internal/module/investment"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/holding"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/market"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/user"
	apperrors "github.com/Akshan03/Personal-Finance-Agent/internal/shared/errors"
)

var validationErrors = []error{
	user.ErrInvalidEmail,
	user.ErrPasswordTooShort,
	user.ErrFullNameTooLong,
	transaction.ErrInvalidUserID,
	transaction.ErrInvalidCategory,
	transaction.ErrZeroAmount,
	transaction.ErrDescriptionTooLong,
	transaction.ErrInvalidPeriod,
	transaction.ErrInvalidDateRange,
	holding.ErrInvalidUserID,
	holding.ErrMissingAssetName,
	holding.ErrAssetNameTooLong,
	holding.ErrInvalidQuantity,
	holding.ErrInvalidPurchasePrice,
	holding.ErrInvalidCurrentValue,
	analytics.ErrInvalidTimestamp,
	analytics.ErrMissingCategory,
	analytics.ErrInvalidQuantity,
	analytics.ErrInvalidPurchasePrice,
	analytics.ErrInvalidCurrentValue,
	analytics.ErrInvalidSavingsTarget,
	investment.ErrInvalidAmount,
	investment.ErrInvalidRisk,
	investment.ErrInvalidTimeHorizon,
	market.ErrInvalidSymbol,
}

// toAppError translates domain errors into their client-facing form. Ownership failures
// are reported as not found so that other users' IDs are not disclosed.
func toAppError(err error) *apperrors.AppError {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr
	}

	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return apperrors.Wrap(err, apperrors.ErrCodeValidation, v.Error())
		}
	}

	switch {
	case errors.Is(err, user.ErrUserAlreadyExists):
		return apperrors.Wrap(err, apperrors.ErrCodeConflict, user.ErrUserAlreadyExists.Error())
	case errors.Is(err, user.ErrInvalidPassword):
		return apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "invalid email or password")
	case errors.Is(err, user.ErrUserInactive):
		return apperrors.Wrap(err, apperrors.ErrCodeForbidden, user.ErrUserInactive.Error())
	case errors.Is(err, user.ErrUserNotFound):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "user not found")
	case errors.Is(err, transaction.ErrTransactionNotFound), errors.Is(err, transaction.ErrUnauthorizedAccess):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "transaction not found")
	case errors.Is(err, holding.ErrHoldingNotFound), errors.Is(err, holding.ErrUnauthorizedAccess):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "holding not found")
	case errors.Is(err, market.ErrSymbolNotFound):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "symbol not found")
	case errors.Is(err, market.ErrQuoteUnavailable), errors.Is(err, market.ErrCircuitOpen):
		return apperrors.ServiceUnavailable("market data unavailable", err)
	case errors.Is(err, llm.ErrDisabled):
		return apperrors.ServiceUnavailable("AI provider is not configured", err)
	case errors.Is(err, llm.ErrEmptyResponse), errors.Is(err, llm.ErrMalformedResponse):
		return apperrors.Upstream("AI provider returned an unusable answer", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.ServiceUnavailable("request timed out", err)
	}

	return apperrors.Internal("internal server error", err)
}
