package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Akshan03/Personal-Finance-Agent/internal/module/fraud"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
)

// FraudService defines the fraud operations needed by FraudHandler
type FraudService interface {
	Scan(ctx context.Context, userID uuid.UUID) (*fraud.ScanResult, error)
	Report(ctx context.Context, id, userID uuid.UUID) (*transaction.Transaction, error)
}

// FraudHandler handles fraud screening requests
type FraudHandler struct {
	fraud FraudService
}

// NewFraudHandler creates a new fraud handler
func NewFraudHandler(svc FraudService) *FraudHandler {
	return &FraudHandler{fraud: svc}
}

// ReportResponse confirms a fraud report
type ReportResponse struct {
	Message     string                   `json:"message"`
	Transaction *transaction.Transaction `json:"transaction"`
}

// Scan handles POST /fraud/scan
func (h *FraudHandler) Scan(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	result, err := h.fraud.Scan(r.Context(), userID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, result, http.StatusOK)
}

// Report handles POST /fraud/report/{id}
func (h *FraudHandler) Report(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, chi.URLParam(r, "id"), "transaction")
	if !ok {
		return
	}

	tx, err := h.fraud.Report(r.Context(), id, userID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, ReportResponse{
		Message:     "Transaction reported as fraudulent.",
		Transaction: tx,
	}, http.StatusOK)
}
