// Package investment reviews portfolio quality and proposes allocations for new money.
package investment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Akshan03/Personal-Finance-Agent/internal/analytics"
	"github.com/Akshan03/Personal-Finance-Agent/internal/infra/llm"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/holding"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/market"
	"github.com/Akshan03/Personal-Finance-Agent/pkg/logger"
)

// HoldingSource loads a user's portfolio
type HoldingSource interface {
	Portfolio(ctx context.Context, userID uuid.UUID) ([]holding.Holding, error)
}

// MarketData provides the market outlook and the low-risk product list
type MarketData interface {
	GetTrends(ctx context.Context) market.Trends
	LowRiskOptions() []market.LowRiskOption
}

// Service provides investment analysis
type Service struct {
	holdings   HoldingSource
	market     MarketData
	gen        llm.Generator
	llmTimeout time.Duration
	logger     *logger.Logger
}

// Config holds configuration for the investment service
type Config struct {
	LLMTimeout time.Duration
	Logger     *logger.Logger
}

// NewService creates a new investment service. A nil generator means rule-based allocations only.
func NewService(holdings HoldingSource, md MarketData, gen llm.Generator, cfg *Config) *Service {
	s := &Service{
		holdings:   holdings,
		market:     md,
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
	s.logger = s.logger.WithComponent("investment")
	return s
}

// Assess scores the diversification of the user's portfolio and rates it
func (s *Service) Assess(ctx context.Context, userID uuid.UUID) (*Assessment, error) {
	holdings, err := s.holdings.Portfolio(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := analytics.ValidateHoldings(holdings); err != nil {
		return nil, err
	}

	result := analytics.Analyze(holdings)
	return &Assessment{
		Summary:              summarize(result),
		OverallRating:        RatingFor(result.DiversificationScore),
		DiversificationScore: result.DiversificationScore,
		Analysis:             result,
	}, nil
}

// Trends returns the current market outlook
func (s *Service) Trends(ctx context.Context) market.Trends {
	return s.market.GetTrends(ctx)
}

// Recommend proposes how to split req.Amount. The model's allocation is used when one is
// configured and answers validly; otherwise the allocation is derived from the portfolio gaps.
func (s *Service) Recommend(ctx context.Context, userID uuid.UUID, req Request) (*Recommendation, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	holdings, err := s.holdings.Portfolio(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := analytics.ValidateHoldings(holdings); err != nil {
		return nil, err
	}

	trends := s.market.GetTrends(ctx)
	options := s.market.LowRiskOptions()
	rec := &Recommendation{
		TotalAmount:    req.Amount,
		RiskTolerance:  req.RiskTolerance,
		TimeHorizon:    req.TimeHorizon,
		LowRiskOptions: options,
		MarketTrends:   trends,
	}

	if llm.Enabled(s.gen) {
		answer, err := s.ask(ctx, req, holdings, trends, options)
		if err == nil {
			rec.Source = SourceLLM
			rec.Allocations = answer.allocations(req.Amount)
			rec.Reasoning = answer.Reasoning
			return rec, nil
		}
		s.logger.WithContext(ctx).Warn("llm allocation unavailable, using rule-based allocation",
			"provider", s.gen.Name(), "error", err)
	}

	rec.Source = SourceRules
	rec.Allocations, rec.Reasoning = fallbackAllocation(req, analytics.Analyze(holdings), options)
	return rec, nil
}

func (s *Service) ask(ctx context.Context, req Request, holdings []holding.Holding, trends market.Trends, options []market.LowRiskOption) (*allocationAnswer, error) {
	var answer allocationAnswer
	err := llm.GenerateJSON(ctx, s.gen, llm.Request{
		System:      systemPrompt,
		Prompt:      recommendPrompt(req, holdings, trends, options),
		Schema:      allocationSchema,
		Temperature: 0.3,
		Timeout:     s.llmTimeout,
	}, &answer)
	if err != nil {
		return nil, fmt.Errorf("generate allocation: %w", err)
	}
	return &answer, nil
}

func summarize(r analytics.DiversificationResult) string {
	var parts []string

	switch score := r.DiversificationScore; {
	case len(r.Holdings) == 0:
		parts = append(parts, "You have no investments yet. A simple diversified core portfolio is a good place to start.")
	case score >= 70:
		parts = append(parts, "Your portfolio is well diversified across asset types and sectors.")
	case score >= 40:
		parts = append(parts, "Your portfolio is moderately diversified but could spread risk further.")
	default:
		parts = append(parts, "Your portfolio lacks diversification and is highly concentrated, which increases risk.")
	}

	var missing []string
	for _, g := range r.Gaps {
		if g != analytics.GapStarterPortfolio {
			missing = append(missing, string(g))
		}
	}
	if len(missing) > 0 {
		parts = append(parts, "Your portfolio is missing exposure to: "+strings.Join(missing, ", ")+".")
	}

	return strings.Join(parts, " ")
}
