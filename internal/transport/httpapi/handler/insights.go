package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/Akshan03/Personal-Finance-Agent/internal/module/advisor"
)

// ReportBuilder builds the comprehensive report
type ReportBuilder interface {
	Comprehensive(ctx context.Context, userID uuid.UUID) (*advisor.Report, error)
}

// InsightsHandler serves the combined financial review
type InsightsHandler struct {
	advisor ReportBuilder
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(svc ReportBuilder) *InsightsHandler {
	return &InsightsHandler{advisor: svc}
}

// GetComprehensive handles GET /insights/comprehensive
func (h *InsightsHandler) GetComprehensive(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	report, err := h.advisor.Comprehensive(r.Context(), userID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, report, http.StatusOK)
}
