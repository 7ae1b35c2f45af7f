package handler

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Akshan03/Personal-Finance-Agent/internal/analytics"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
	apperrors "github.com/Akshan03/Personal-Finance-Agent/internal/shared/errors"
)

// TransactionService defines the transaction operations needed by TransactionHandler
type TransactionService interface {
	Create(ctx context.Context, tx *transaction.Transaction) (*transaction.Transaction, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*transaction.Transaction, error)
	List(ctx context.Context, userID uuid.UUID, filter transaction.Filter) ([]*transaction.Transaction, error)
	Update(ctx context.Context, id, userID uuid.UUID, upd transaction.Update) (*transaction.Transaction, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// SpendingSummarizer aggregates a user's transactions over a period
type SpendingSummarizer interface {
	Summary(ctx context.Context, userID uuid.UUID, period transaction.Period) (analytics.AggregationResult, error)
}

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactions TransactionService
	stats        SpendingSummarizer
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactions TransactionService, stats SpendingSummarizer) *TransactionHandler {
	return &TransactionHandler{transactions: transactions, stats: stats}
}

// CreateTransactionRequest represents the transaction creation request.
// A positive amount is income, a negative amount is spending.
type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description *string         `json:"description,omitempty"`
	Timestamp   *time.Time      `json:"timestamp,omitempty"`
}

// TransactionListResponse represents a page of transactions
type TransactionListResponse struct {
	Transactions []*transaction.Transaction `json:"transactions"`
	Count        int                        `json:"count"`
	Limit        int                        `json:"limit"`
	Offset       int                        `json:"offset"`
}

// StatsResponse is the aggregated view of a period
type StatsResponse struct {
	Period transaction.Period `json:"period"`
	analytics.AggregationResult
}

// CreateTransaction handles POST /transactions
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondAppError(w, err)
		return
	}

	tx := &transaction.Transaction{
		UserID:      userID,
		Amount:      req.Amount,
		Category:    transaction.Category(req.Category),
		Description: req.Description,
	}
	if req.Timestamp != nil {
		tx.Timestamp = *req.Timestamp
	}

	created, err := h.transactions.Create(r.Context(), tx)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, created, http.StatusCreated)
}

// GetTransactions handles GET /transactions
func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		respondAppError(w, err)
		return
	}

	txs, err := h.transactions.List(r.Context(), userID, filter)
	if err != nil {
		respondAppError(w, err)
		return
	}
	if txs == nil {
		txs = []*transaction.Transaction{}
	}

	filter.Normalize()
	respondJSON(w, TransactionListResponse{
		Transactions: txs,
		Count:        len(txs),
		Limit:        filter.Limit,
		Offset:       filter.Offset,
	}, http.StatusOK)
}

// GetStats handles GET /transactions/stats?period=all|week|month|year
func (h *TransactionHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	period := transaction.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = transaction.PeriodAll
	}

	agg, err := h.stats.Summary(r.Context(), userID, period)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, StatsResponse{Period: period, AggregationResult: agg}, http.StatusOK)
}

// GetTransaction handles GET /transactions/{id}
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, chi.URLParam(r, "id"), "transaction")
	if !ok {
		return
	}

	tx, err := h.transactions.GetByID(r.Context(), id, userID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, tx, http.StatusOK)
}

// UpdateTransaction handles PUT /transactions/{id}
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, chi.URLParam(r, "id"), "transaction")
	if !ok {
		return
	}

	var upd transaction.Update
	if err := decodeJSON(w, r, &upd); err != nil {
		respondAppError(w, err)
		return
	}

	tx, err := h.transactions.Update(r.Context(), id, userID, upd)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, tx, http.StatusOK)
}

// DeleteTransaction handles DELETE /transactions/{id}
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, chi.URLParam(r, "id"), "transaction")
	if !ok {
		return
	}

	if err := h.transactions.Delete(r.Context(), id, userID); err != nil {
		respondAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseFilter reads category, start_date, end_date, fraudulent_only, limit and offset
func parseFilter(q url.Values) (transaction.Filter, error) {
	var f transaction.Filter

	if c := q.Get("category"); c != "" {
		cat := transaction.Category(c)
		f.Category = &cat
	}

	var err error
	if f.StartDate, err = parseDate(q.Get("start_date"), false); err != nil {
		return f, apperrors.Validation("invalid start_date")
	}
	if f.EndDate, err = parseDate(q.Get("end_date"), true); err != nil {
		return f, apperrors.Validation("invalid end_date")
	}

	if v := q.Get("fraudulent_only"); v != "" {
		if f.FraudulentOnly, err = strconv.ParseBool(v); err != nil {
			return f, apperrors.Validation("invalid fraudulent_only")
		}
	}
	if v := q.Get("limit"); v != "" {
		if f.Limit, err = strconv.Atoi(v); err != nil || f.Limit < 1 || f.Limit > transaction.MaxListLimit {
			return f, apperrors.Validation("limit must be between 1 and 100")
		}
	}
	if v := q.Get("offset"); v != "" {
		if f.Offset, err = strconv.Atoi(v); err != nil || f.Offset < 0 {
			return f, apperrors.Validation("offset must not be negative")
		}
	}

	return f, nil
}

// parseDate accepts RFC3339 or YYYY-MM-DD. A bare end date covers the whole day.
func parseDate(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
