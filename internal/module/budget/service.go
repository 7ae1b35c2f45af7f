// Package budget serves spending summaries, rule-based budget advice and savings plans.
package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Akshan03/Personal-Finance-Agent/internal/analytics"
	"github.com/Akshan03/Personal-Finance-Agent/internal/infra/llm"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/transaction"
	"github.com/Akshan03/Personal-Finance-Agent/pkg/logger"
)

const (
	// AdviceWindow is how many recent transactions the advice is based on
	AdviceWindow = 100
	// promptWindow is how many recent transactions are shown to the model
	promptWindow = 20
)

// TransactionSource loads a user's transactions for analysis
type TransactionSource interface {
	Recent(ctx context.Context, userID uuid.UUID, since *time.Time, limit int) ([]transaction.Transaction, error)
	RecentForPeriod(ctx context.Context, userID uuid.UUID, period transaction.Period) ([]transaction.Transaction, error)
}

// Service computes budget views over a user's transactions
type Service struct {
	txs           TransactionSource
	gen           llm.Generator
	savingsTarget float64
	llmTimeout    time.Duration
	logger        *logger.Logger
}

// Config holds configuration for the budget service
type Config struct {
	SavingsTargetPercent float64
	LLMTimeout           time.Duration
	Logger               *logger.Logger
}

// NewService creates a new budget service. A nil generator disables plan narratives.
func NewService(txs TransactionSource, gen llm.Generator, cfg *Config) *Service {
	s := &Service{
		txs:           txs,
		gen:           gen,
		savingsTarget: analytics.DefaultSavingsTargetPercent,
		llmTimeout:    llm.DefaultTimeout,
		logger:        logger.Nop(),
	}
	if gen == nil {
		s.gen = llm.Disabled{}
	}
	if cfg != nil {
		if cfg.SavingsTargetPercent > 0 {
			s.savingsTarget = cfg.SavingsTargetPercent
		}
		if cfg.LLMTimeout > 0 {
			s.llmTimeout = cfg.LLMTimeout
		}
		if cfg.Logger != nil {
			s.logger = cfg.Logger
		}
	}
	s.logger = s.logger.WithComponent("budget")
	return s
}

// Summary aggregates the user's transactions within period
func (s *Service) Summary(ctx context.Context, userID uuid.UUID, period transaction.Period) (analytics.AggregationResult, error) {
	txs, err := s.txs.RecentForPeriod(ctx, userID, period)
	if err != nil {
		return analytics.AggregationResult{}, err
	}
	if err := analytics.ValidateTransactions(txs); err != nil {
		return analytics.AggregationResult{}, err
	}
	return analytics.Aggregate(txs), nil
}

// Advice is the rule-based review of a user's recent spending
type Advice struct {
	Message         string                        `json:"message,omitempty"`
	Summary         analytics.AggregationResult   `json:"summary"`
	Insights        []string                      `json:"insights"`
	Recommendations []string                      `json:"recommendations"`
	Fixed           analytics.ExpenseGroup        `json:"fixed_expenses"`
	Discretionary   analytics.ExpenseGroup        `json:"discretionary_expenses"`
	Rule            analytics.RuleTargets         `json:"benchmarks"`
	Categories      []analytics.CategoryBenchmark `json:"category_analysis"`
	Anomalies       []analytics.CategoryAnomaly   `json:"anomalies"`
}

// NoDataMessage is returned when the user has no transactions yet
const NoDataMessage = "We don't have enough transaction data to provide personalized advice yet. Start by adding some transactions."

// Advice reviews the user's latest transactions against the 50/30/20 rule and the
// per-category benchmarks, and flags outflows that are unusual for their category
func (s *Service) Advice(ctx context.Context, userID uuid.UUID) (*Advice, error) {
	txs, err := s.txs.Recent(ctx, userID, nil, AdviceWindow)
	if err != nil {
		return nil, err
	}
	if err := analytics.ValidateTransactions(txs); err != nil {
		return nil, err
	}

	agg := analytics.Aggregate(txs)
	bench := analytics.Benchmark(agg)
	advice := &Advice{
		Summary:         agg,
		Insights:        []string{},
		Recommendations: []string{},
		Fixed:           bench.Fixed,
		Discretionary:   bench.Discretionary,
		Rule:            bench.Rule,
		Categories:      bench.Categories,
		Anomalies:       analytics.DetectCategoryAnomalies(txs, analytics.DefaultZScoreThreshold),
	}
	if len(txs) == 0 {
		advice.Message = NoDataMessage
		return advice, nil
	}

	advice.Insights, advice.Recommendations = adviseOn(agg, bench)
	return advice, nil
}

// Plan is a savings-target budget with an optional model-written narrative
type Plan struct {
	Projection analytics.BudgetProjection `json:"projection"`
	Narrative  *Narrative                 `json:"narrative,omitempty"`
	Message    string                     `json:"message,omitempty"`
}

// Plan projects category limits that meet the savings target. A nil target uses the
// configured default. The narrative is best effort; its limits never replace the computed ones.
func (s *Service) Plan(ctx context.Context, userID uuid.UUID, target *float64) (*Plan, error) {
	targetPercent := s.savingsTarget
	if target != nil {
		targetPercent = *target
	}
	if err := analytics.ValidateSavingsTarget(targetPercent); err != nil {
		return nil, err
	}

	txs, err := s.txs.Recent(ctx, userID, nil, transaction.AnalysisWindow)
	if err != nil {
		return nil, err
	}
	if err := analytics.ValidateTransactions(txs); err != nil {
		return nil, err
	}

	agg := analytics.Aggregate(txs)
	plan := &Plan{Projection: analytics.Project(agg, targetPercent)}
	if len(txs) == 0 {
		plan.Message = "No transaction data available to create a budget plan."
		return plan, nil
	}

	if !llm.Enabled(s.gen) {
		return plan, nil
	}

	narrative, err := s.narrate(ctx, txs, agg, targetPercent)
	if err != nil {
		s.logger.WithContext(ctx).Warn("budget narrative unavailable", "provider", s.gen.Name(), "error", err)
		return plan, nil
	}
	plan.Narrative = narrative
	return plan, nil
}

func (s *Service) narrate(ctx context.Context, txs []transaction.Transaction, agg analytics.AggregationResult, target float64) (*Narrative, error) {
	var n Narrative
	err := llm.GenerateJSON(ctx, s.gen, llm.Request{
		System:      systemPrompt,
		Prompt:      planPrompt(txs, agg, target),
		Schema:      narrativeSchema,
		Temperature: 0.2,
		Timeout:     s.llmTimeout,
	}, &n)
	if err != nil {
		return nil, fmt.Errorf("generate narrative: %w", err)
	}
	return &n, nil
}
