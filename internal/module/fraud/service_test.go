package fraud_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Akshan03/Personal-Finance-Agent/internal/analytics"
	"github.com/Akshan03/Personal-Finance-Agent/internal/infra/llm"
	"github.com/Akshan03/Personal-Finance-Agent/internal/module/fraud"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
)

type MockTransactions struct {
	mock.Mock
}

func (m *MockTransactions) Recent(ctx context.Context, userID uuid.UUID, since *time.Time, limit int) ([]transaction.Transaction, error) {
	args := m.Called(ctx, userID, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]transaction.Transaction), args.Error(1)
}

func (m *MockTransactions) MarkFraudulent(ctx context.Context, id, userID uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

type stubGenerator struct {
	answer string
	err    error
	calls  int
	last   llm.Request
}

func (g *stubGenerator) Name() string { return "stub" }

func (g *stubGenerator) Generate(_ context.Context, req llm.Request) (string, error) {
	g.calls++
	g.last = req
	return g.answer, g.err
}

var start = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

func tx(amount int64, category transaction.Category, day int) transaction.Transaction {
	return transaction.Transaction{
		ID:        uuid.New(),
		Amount:    decimal.NewFromInt(amount),
		Category:  category,
		Timestamp: start.AddDate(0, 0, day),
	}
}

func expectRecent(m *MockTransactions, userID uuid.UUID, txs []transaction.Transaction) {
	m.On("Recent", mock.Anything, userID, (*time.Time)(nil), fraud.ScanWindow).Return(txs, nil)
}

func TestService_Scan_NoTransactions(t *testing.T) {
	userID := uuid.New()
	txs := new(MockTransactions)
	expectRecent(txs, userID, []transaction.Transaction{})
	gen := &stubGenerator{}

	result, err := fraud.NewService(txs, gen, nil).Scan(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, "No transactions provided for analysis.", result.Message)
	assert.Empty(t, result.Suspicious)
	assert.Zero(t, gen.calls)
}

func TestService_Scan_CleanShortListSkipsModel(t *testing.T) {
	userID := uuid.New()
	txs := new(MockTransactions)
	expectRecent(txs, userID, []transaction.Transaction{
		tx(-20, transaction.CategoryFood, 0),
		tx(-22, transaction.CategoryFood, 1),
		tx(-21, transaction.CategoryFood, 2),
	})
	gen := &stubGenerator{}

	result, err := fraud.NewService(txs, gen, nil).Scan(context.Background(), userID)
	require.NoError(t, err)

	assert.Zero(t, gen.calls)
	assert.False(t, result.LLMReviewed)
	assert.Equal(t, 3, result.ScannedCount)
	assert.Empty(t, result.Suspicious)
}

func TestService_Scan_MergesModelFlags(t *testing.T) {
	userID := uuid.New()
	food := tx(-20, transaction.CategoryFood, 0)
	food2 := tx(-25, transaction.CategoryFood, 1)
	bet := tx(-100, transaction.CategoryGambling, 2)
	txs := new(MockTransactions)
	expectRecent(txs, userID, []transaction.Transaction{bet, food2, food})

	gen := &stubGenerator{answer: fmt.Sprintf(`{"suspicious_transactions": [
		{"transaction_id": %q, "reason": "Unusual merchant", "risk_level": "high"},
		{"transaction_id": %q, "reason": "Gambling", "risk_level": "Low"},
		{"transaction_id": %q, "reason": "Unknown", "risk_level": "High"},
		{"transaction_id": "tx-42", "reason": "Bad id", "risk_level": "High"}
	]}`, food2.ID, bet.ID, uuid.New())}

	result, err := fraud.NewService(txs, gen, nil).Scan(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	assert.Contains(t, gen.last.Prompt, bet.ID.String())
	assert.True(t, result.LLMReviewed)
	assert.Equal(t, "Fraud analysis completed.", result.Message)

	require.Len(t, result.Suspicious, 2)
	assert.Equal(t, bet.ID, result.Suspicious[0].TransactionID)
	assert.Equal(t, analytics.MethodRuleBased, result.Suspicious[0].DetectionMethod)
	assert.Equal(t, analytics.RiskMedium, result.Suspicious[0].RiskLevel)

	assert.Equal(t, food2.ID, result.Suspicious[1].TransactionID)
	assert.Equal(t, analytics.MethodLLM, result.Suspicious[1].DetectionMethod)
	assert.Equal(t, analytics.RiskHigh, result.Suspicious[1].RiskLevel)
}

func TestService_Scan_ModelFailureKeepsRuleFlags(t *testing.T) {
	userID := uuid.New()
	bet := tx(-100, transaction.CategoryGambling, 2)
	txs := new(MockTransactions)
	expectRecent(txs, userID, []transaction.Transaction{bet, tx(-20, transaction.CategoryFood, 0)})

	gen := &stubGenerator{err: errors.New("rate limited")}
	result, err := fraud.NewService(txs, gen, nil).Scan(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	assert.False(t, result.LLMReviewed)
	assert.Equal(t, "Fraud analysis completed using rule-based detection only.", result.Message)
	require.Len(t, result.Suspicious, 1)
	assert.Equal(t, bet.ID, result.Suspicious[0].TransactionID)
}

func TestService_Scan_LongListIsReviewedWithoutRuleHits(t *testing.T) {
	userID := uuid.New()
	list := make([]transaction.Transaction, 0, 12)
	for i := 0; i < 12; i++ {
		list = append(list, tx(-30, transaction.CategoryFood, i))
	}
	txs := new(MockTransactions)
	expectRecent(txs, userID, list)

	gen := &stubGenerator{answer: `{"suspicious_transactions": []}`}
	result, err := fraud.NewService(txs, gen, nil).Scan(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	assert.True(t, result.LLMReviewed)
	assert.Empty(t, result.Suspicious)
	assert.Contains(t, gen.last.Prompt, "None flagged by rules yet.")
}

func TestService_Scan_SourceError(t *testing.T) {
	userID := uuid.New()
	txs := new(MockTransactions)
	txs.On("Recent", mock.Anything, userID, (*time.Time)(nil), fraud.ScanWindow).Return(nil, errors.New("db down"))

	_, err := fraud.NewService(txs, nil, nil).Scan(context.Background(), userID)

	assert.EqualError(t, err, "db down")
}

func TestService_Scan_RejectsUndatedTransaction(t *testing.T) {
	userID := uuid.New()
	undated := tx(-20, transaction.CategoryFood, 0)
	undated.Timestamp = time.Time{}
	txs := new(MockTransactions)
	expectRecent(txs, userID, []transaction.Transaction{undated})
	gen := &stubGenerator{}

	_, err := fraud.NewService(txs, gen, nil).Scan(context.Background(), userID)

	assert.ErrorIs(t, err, analytics.ErrInvalidTimestamp)
	assert.Zero(t, gen.calls)
}

func TestService_Report(t *testing.T) {
	ctx := context.Background()
	id, userID := uuid.New(), uuid.New()
	txs := new(MockTransactions)
	txs.On("MarkFraudulent", ctx, id, userID).Return(&transaction.Transaction{ID: id, UserID: userID, IsFraudulent: true}, nil)

	reported, err := fraud.NewService(txs, nil, nil).Report(ctx, id, userID)
	require.NoError(t, err)

	assert.True(t, reported.IsFraudulent)
	txs.AssertExpectations(t)
}
