package holding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service provides business logic for portfolio holdings
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new holding service
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create adds a holding to a user's portfolio.
// Unknown asset types become "other"; a missing current value defaults to the cost basis.
func (s *Service) Create(ctx context.Context, h *Holding) (*Holding, error) {
	h.AssetType = ParseAssetType(string(h.AssetType))
	if h.Symbol != nil {
		sym := strings.ToUpper(strings.TrimSpace(*h.Symbol))
		if sym == "" {
			h.Symbol = nil
		} else {
			h.Symbol = &sym
		}
	}

	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	now := s.now().UTC()
	if h.PurchaseDate.IsZero() {
		h.PurchaseDate = now
	}
	if h.CurrentValue == nil {
		basis := h.CostBasis()
		h.CurrentValue = &basis
	}
	h.ID = uuid.New()
	h.LastUpdated = now
	h.CreatedAt = now

	if err := s.repo.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to create holding: %w", err)
	}

	return h, nil
}

// GetByID retrieves a holding and validates user ownership
func (s *Service) GetByID(ctx context.Context, id, userID uuid.UUID) (*Holding, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if h.UserID != userID {
		return nil, ErrUnauthorizedAccess
	}

	return h, nil
}

// List retrieves all holdings of a user
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Holding, error) {
	holdings, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}

	return holdings, nil
}

// Portfolio loads a user's holdings as values for analysis
func (s *Service) Portfolio(ctx context.Context, userID uuid.UUID) ([]Holding, error) {
	rows, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]Holding, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	return out, nil
}

// Update applies a partial update and refreshes LastUpdated
func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, upd Update) (*Holding, error) {
	existing, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	upd.Apply(existing)
	if err := existing.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	existing.LastUpdated = s.now().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update holding: %w", err)
	}

	return existing, nil
}

// Delete removes a holding owned by the user
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}

	return nil
}
