package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/Akshan03/Personal-Finance-Agent/internal/module/investment"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/market"
)

// InvestmentService defines the investment operations needed by InvestmentHandler
type InvestmentService interface {
	Assess(ctx context.Context, userID uuid.UUID) (*investment.Assessment, error)
	Recommend(ctx context.Context, userID uuid.UUID, req investment.Request) (*investment.Recommendation, error)
	Trends(ctx context.Context) market.Trends
}

// InvestmentHandler handles portfolio assessment and recommendation requests
type InvestmentHandler struct {
	investment InvestmentService
}

// NewInvestmentHandler creates a new investment handler
func NewInvestmentHandler(svc InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{investment: svc}
}

// GetAssessment handles GET /investment/assessment
func (h *InvestmentHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	assessment, err := h.investment.Assess(r.Context(), userID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, assessment, http.StatusOK)
}

// Recommend handles POST /investment/recommendations
func (h *InvestmentHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req investment.Request
	if err := decodeJSON(w, r, &req); err != nil {
		respondAppError(w, err)
		return
	}

	rec, err := h.investment.Recommend(r.Context(), userID, req)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, rec, http.StatusOK)
}

// GetMarketTrends handles GET /investment/market-trends
func (h *InvestmentHandler) GetMarketTrends(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	respondJSON(w, h.investment.Trends(r.Context()), http.StatusOK)
}
