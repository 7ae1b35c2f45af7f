package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/holding"
)

// HoldingService defines the holding operations needed by PortfolioHandler
type HoldingService interface {
	Create(ctx context.Context, h *holding.Holding) (*holding.Holding, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*holding.Holding, error)
	List(ctx context.Context, userID uuid.UUID) ([]*holding.Holding, error)
	Update(ctx context.Context, id, userID uuid.UUID, upd holding.Update) (*holding.Holding, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	holdings HoldingService
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(holdings HoldingService) *PortfolioHandler {
	return &PortfolioHandler{holdings: holdings}
}

// CreateHoldingRequest represents the holding creation request
type CreateHoldingRequest struct {
	AssetName     string           `json:"asset_name"`
	Symbol        *string          `json:"symbol,omitempty"`
	AssetType     string           `json:"asset_type"`
	Quantity      decimal.Decimal  `json:"quantity"`
	PurchasePrice decimal.Decimal  `json:"purchase_price"`
	PurchaseDate  *time.Time       `json:"purchase_date,omitempty"`
	CurrentValue  *decimal.Decimal `json:"current_value,omitempty"`
}

// HoldingResponse is a holding with its performance since purchase
type HoldingResponse struct {
	*holding.Holding
	Performance holding.Performance `json:"performance"`
}

// PortfolioResponse lists every holding with portfolio totals
type PortfolioResponse struct {
	Holdings      []HoldingResponse `json:"holdings"`
	TotalValue    decimal.Decimal   `json:"total_value"`
	TotalCost     decimal.Decimal   `json:"total_cost"`
	TotalChange   decimal.Decimal   `json:"total_change"`
	PercentChange float64           `json:"percent_change"`
	HoldingsCount int               `json:"holdings_count"`
}

func holdingResponse(h *holding.Holding) HoldingResponse {
	return HoldingResponse{Holding: h, Performance: h.Performance()}
}

// GetPortfolio handles GET /portfolio
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	holdings, err := h.holdings.List(r.Context(), userID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	resp := PortfolioResponse{
		Holdings:      make([]HoldingResponse, 0, len(holdings)),
		TotalValue:    decimal.Zero,
		TotalCost:     decimal.Zero,
		HoldingsCount: len(holdings),
	}
	for _, hd := range holdings {
		resp.Holdings = append(resp.Holdings, holdingResponse(hd))
		resp.TotalValue = resp.TotalValue.Add(hd.EffectiveValue())
		resp.TotalCost = resp.TotalCost.Add(hd.CostBasis())
	}
	resp.TotalChange = resp.TotalValue.Sub(resp.TotalCost)
	if resp.TotalCost.IsPositive() {
		resp.PercentChange = resp.TotalChange.Div(resp.TotalCost).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	}

	respondJSON(w, resp, http.StatusOK)
}

// CreateHolding handles POST /portfolio
func (h *PortfolioHandler) CreateHolding(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateHoldingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondAppError(w, err)
		return
	}

	hd := &holding.Holding{
		UserID:        userID,
		AssetName:     req.AssetName,
		Symbol:        req.Symbol,
		AssetType:     holding.AssetType(req.AssetType),
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		CurrentValue:  req.CurrentValue,
	}
	if req.PurchaseDate != nil {
		hd.PurchaseDate = req.PurchaseDate.UTC()
	}

	created, err := h.holdings.Create(r.Context(), hd)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, holdingResponse(created), http.StatusCreated)
}

// GetHolding handles GET /portfolio/{id}
func (h *PortfolioHandler) GetHolding(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, chi.URLParam(r, "id"), "holding")
	if !ok {
		return
	}

	hd, err := h.holdings.GetByID(r.Context(), id, userID)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, holdingResponse(hd), http.StatusOK)
}

// UpdateHolding handles PUT /portfolio/{id}
func (h *PortfolioHandler) UpdateHolding(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, chi.URLParam(r, "id"), "holding")
	if !ok {
		return
	}

	var upd holding.Update
	if err := decodeJSON(w, r, &upd); err != nil {
		respondAppError(w, err)
		return
	}

	hd, err := h.holdings.Update(r.Context(), id, userID, upd)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, holdingResponse(hd), http.StatusOK)
}

// DeleteHolding handles DELETE /portfolio/{id}
func (h *PortfolioHandler) DeleteHolding(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, chi.URLParam(r, "id"), "holding")
	if !ok {
		return
	}

	if err := h.holdings.Delete(r.Context(), id, userID); err != nil {
		respondAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
