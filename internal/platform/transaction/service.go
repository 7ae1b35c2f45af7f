package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AnalysisWindow is the maximum number of transactions loaded for analytics
const AnalysisWindow = 1000

// Service provides business logic for transaction operations
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new transaction service
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create records a new transaction for a user
func (s *Service) Create(ctx context.Context, tx *Transaction) (*Transaction, error) {
	if err := tx.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	now := s.now().UTC()
	if tx.Timestamp.IsZero() {
		tx.Timestamp = now
	}
	tx.Timestamp = tx.Timestamp.UTC()
	tx.ID = uuid.New()
	tx.IsFraudulent = false
	tx.CreatedAt = now
	tx.UpdatedAt = now

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return tx, nil
}

// GetByID retrieves a transaction and validates user ownership
func (s *Service) GetByID(ctx context.Context, id, userID uuid.UUID) (*Transaction, error) {
	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if tx.UserID != userID {
		return nil, ErrUnauthorizedAccess
	}

	return tx, nil
}

// List retrieves a page of a user's transactions
func (s *Service) List(ctx context.Context, userID uuid.UUID, filter Filter) ([]*Transaction, error) {
	filter.Normalize()

	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return nil, ErrInvalidDateRange
	}
	if filter.Category != nil {
		c := filter.Category.Normalize()
		if !c.IsValid() {
			return nil, ErrInvalidCategory
		}
		filter.Category = &c
	}

	txs, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return txs, nil
}

// Recent loads up to limit of the user's newest transactions, optionally bounded by a start time.
// Used by the analysis services, which need more rows than a listing page allows.
func (s *Service) Recent(ctx context.Context, userID uuid.UUID, since *time.Time, limit int) ([]Transaction, error) {
	if limit <= 0 || limit > AnalysisWindow {
		limit = AnalysisWindow
	}

	rows, err := s.repo.List(ctx, userID, Filter{StartDate: since, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	txs := make([]Transaction, 0, len(rows))
	for _, r := range rows {
		txs = append(txs, *r)
	}
	return txs, nil
}

// RecentForPeriod loads the user's transactions within a stats period
func (s *Service) RecentForPeriod(ctx context.Context, userID uuid.UUID, period Period) ([]Transaction, error) {
	since, err := period.Since(s.now().UTC())
	if err != nil {
		return nil, err
	}
	return s.Recent(ctx, userID, since, AnalysisWindow)
}

// Update applies a partial update to a transaction
func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, upd Update) (*Transaction, error) {
	existing, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	upd.Apply(existing)
	if err := existing.ValidateCreate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	existing.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return existing, nil
}

// Delete removes a transaction owned by the user
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return nil
}

// MarkFraudulent flags a transaction the user reported as suspicious
func (s *Service) MarkFraudulent(ctx context.Context, id, userID uuid.UUID) (*Transaction, error) {
	tx, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetFraudulent(ctx, id, true); err != nil {
		return nil, fmt.Errorf("failed to flag transaction: %w", err)
	}

	tx.IsFraudulent = true
	return tx, nil
}
