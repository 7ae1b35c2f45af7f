package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/Akshan03/Personal-Finance-Agent/internal/module/budget"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
)

// BudgetService defines the budget operations needed by BudgetHandler
type BudgetService interface {
	SpendingSummarizer
	Advice(ctx context.Context, userID uuid.UUID) (*budget.Advice, error)
	Plan(ctx context.Context, userID uuid.UUID, target *float64) (*budget.Plan, error)
}

// BudgetHandler handles budget analysis requests
type BudgetHandler struct {
	budget BudgetService
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(svc BudgetService) *BudgetHandler {
	return &BudgetHandler{budget: svc}
}

// PlanRequest asks for a budget plan; a missing target uses the configured default, an
// explicit 0 plans for no savings
type PlanRequest struct {
	SavingsTargetPercent *float64 `json:"savings_target_percent,omitempty"`
}

// GetSummary handles GET /budget/summary?period=all|week|month|year
func (h *BudgetHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	period := transaction.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = transaction.PeriodMonth
	}

	agg, err := h.budget.Summary(r.Context(), userID, period)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, StatsResponse{Period: period, AggregationResult: agg}, http.StatusOK)
}

// GetAdvice handles POST /budget/advice
func (h *BudgetHandler) GetAdvice(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	advice, err := h.budget.Advice(r.Context(), userID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, advice, http.StatusOK)
}

// CreatePlan handles POST /budget/plan
func (h *BudgetHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req PlanRequest
	if err := decodeOptionalJSON(w, r, &req); err != nil {
		respondAppError(w, err)
		return
	}

	plan, err := h.budget.Plan(r.Context(), userID, req.SavingsTargetPercent)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, plan, http.StatusOK)
}
