// Package fraud screens a user's recent transactions with the rule-based detector and,
// when a model is configured, a second LLM review.
package fraud

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Akshan03/Personal-Finance-Agent/internal/analytics"
	"github.com/Akshan03/Personal-Finance-Agent/internal/infra/llm"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
	"github.com/Akshan03/Personal-Finance-Agent/pkg/logger"
)

const (
	// ScanWindow is how many of the newest transactions a scan looks at
	ScanWindow = 50
	// ReviewThreshold is the list size above which the model reviews even a clean scan
	ReviewThreshold = 10
)

// TransactionSource loads and flags a user's transactions
type TransactionSource interface {
	Recent(ctx context.Context, userID uuid.UUID, since *time.Time, limit int) ([]transaction.Transaction, error)
	MarkFraudulent(ctx context.Context, id, userID uuid.UUID) (*transaction.Transaction, error)
}

// ScanResult is the outcome of one fraud scan
type ScanResult struct {
	Message      string                            `json:"message"`
	ScannedCount int                               `json:"scanned_count"`
	LLMReviewed  bool                              `json:"llm_reviewed"`
	Suspicious   []analytics.SuspiciousTransaction `json:"suspicious_transactions"`
}

const (
	msgNoTransactions = "No transactions provided for analysis."
	msgCombined       = "Fraud analysis completed."
	msgRulesOnly      = "Fraud analysis completed using rule-based detection only."
)

// Service runs fraud scans
type Service struct {
	txs        TransactionSource
	gen        llm.Generator
	llmTimeout time.Duration
	logger     *logger.Logger
}

// Config holds configuration for the fraud service
type Config struct {
	LLMTimeout time.Duration
	Logger     *logger.Logger
}

// NewService creates a new fraud service. A nil generator means rule-based screening only.
func NewService(txs TransactionSource, gen llm.Generator, cfg *Config) *Service {
	s := &Service{
		txs:        txs,
		gen:        gen,
		llmTimeout: llm.DefaultTimeout,
		logger:     logger.Nop(),
	}
	if gen == nil {
		s.gen = llm.Disabled{}
	}
	if cfg != nil {
		if cfg.LLMTimeout > 0 {
			s.llmTimeout = cfg.LLMTimeout
		}
		if cfg.Logger != nil {
			s.logger = cfg.Logger
		}
	}
	s.logger = s.logger.WithComponent("fraud")
	return s
}

// Scan screens the user's newest transactions. The model is consulted only when the rules
// flagged something or the list is longer than ReviewThreshold; its flags are merged after
// the rule flags, and flags for transactions outside the scanned set are dropped.
func (s *Service) Scan(ctx context.Context, userID uuid.UUID) (*ScanResult, error) {
	txs, err := s.txs.Recent(ctx, userID, nil, ScanWindow)
	if err != nil {
		return nil, err
	}
	if err := analytics.ValidateTransactions(txs); err != nil {
		return nil, err
	}

	result := &ScanResult{ScannedCount: len(txs), Suspicious: []analytics.SuspiciousTransaction{}}
	if len(txs) == 0 {
		result.Message = msgNoTransactions
		return result, nil
	}

	ruleFlags := analytics.Detect(txs)
	result.Suspicious = ruleFlags
	result.Message = msgRulesOnly

	if len(ruleFlags) == 0 && len(txs) <= ReviewThreshold {
		return result, nil
	}
	if !llm.Enabled(s.gen) {
		return result, nil
	}

	llmFlags, err := s.review(ctx, txs, ruleFlags)
	if err != nil {
		s.logger.WithContext(ctx).Warn("llm fraud review failed", "provider", s.gen.Name(), "error", err)
		return result, nil
	}

	result.Suspicious = analytics.MergeDetections(ruleFlags, llmFlags)
	result.LLMReviewed = true
	result.Message = msgCombined
	return result, nil
}

// Report marks a transaction the user recognises as fraud
func (s *Service) Report(ctx context.Context, id, userID uuid.UUID) (*transaction.Transaction, error) {
	tx, err := s.txs.MarkFraudulent(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	s.logger.WithContext(ctx).Info("transaction reported as fraudulent", "transaction_id", id)
	return tx, nil
}

func (s *Service) review(ctx context.Context, txs []transaction.Transaction, ruleFlags []analytics.SuspiciousTransaction) ([]analytics.SuspiciousTransaction, error) {
	var answer reviewAnswer
	err := llm.GenerateJSON(ctx, s.gen, llm.Request{
		System:      systemPrompt,
		Prompt:      reviewPrompt(txs, ruleFlags),
		Schema:      reviewSchema,
		Temperature: 0.1,
		Timeout:     s.llmTimeout,
	}, &answer)
	if err != nil {
		return nil, fmt.Errorf("review transactions: %w", err)
	}

	scanned := make(map[uuid.UUID]bool, len(txs))
	for i := range txs {
		scanned[txs[i].ID] = true
	}

	flags := make([]analytics.SuspiciousTransaction, 0, len(answer.Suspicious))
	for _, f := range answer.Suspicious {
		id, err := uuid.Parse(strings.TrimSpace(f.TransactionID))
		if err != nil || !scanned[id] {
			continue
		}
		flags = append(flags, analytics.SuspiciousTransaction{
			TransactionID:   id,
			Reason:          strings.TrimSpace(f.Reason),
			RiskLevel:       analytics.ParseRiskLevel(f.RiskLevel),
			DetectionMethod: analytics.MethodLLM,
		})
	}
	return flags, nil
}
