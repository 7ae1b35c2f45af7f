// Package advisor combines the budget, fraud and investment views into one report.
package advisor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Akshan03/Personal-Finance-Agent/internal/module/budget"
	"github.com/Akshan03/Personal-Finance-Agent/internal/module/fraud"
	"github.com/Akshan03/Personal-Finance-Agent/internal/module/investment"
	"github.com/Akshan03/Personal-Finance-Agent/pkg/logger"
)

// BudgetAdvisor produces budget advice
type BudgetAdvisor interface {
	Advice(ctx context.Context, userID uuid.UUID) (*budget.Advice, error)
}

// FraudScanner screens recent transactions
type FraudScanner interface {
	Scan(ctx context.Context, userID uuid.UUID) (*fraud.ScanResult, error)
}

// PortfolioAssessor rates the portfolio
type PortfolioAssessor interface {
	Assess(ctx context.Context, userID uuid.UUID) (*investment.Assessment, error)
}

// Section is one part of the report; Error is set instead of Data when that part failed
type Section[T any] struct {
	Data  *T     `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Report is the comprehensive financial review of a user
type Report struct {
	UserID      uuid.UUID                      `json:"user_id"`
	GeneratedAt time.Time                      `json:"generated_at"`
	Budget      Section[budget.Advice]         `json:"budget"`
	Fraud       Section[fraud.ScanResult]      `json:"fraud"`
	Investment  Section[investment.Assessment] `json:"investment"`
}

// Service builds comprehensive reports
type Service struct {
	budget     BudgetAdvisor
	fraud      FraudScanner
	investment PortfolioAssessor
	logger     *logger.Logger
	now        func() time.Time
}

// NewService creates a new advisor service
func NewService(b BudgetAdvisor, f FraudScanner, i PortfolioAssessor, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		budget:     b,
		fraud:      f,
		investment: i,
		logger:     log.WithComponent("advisor"),
		now:        time.Now,
	}
}

// Comprehensive runs the three reviews concurrently. A failing review is reported in its
// section and does not fail the others; only cancellation of ctx fails the whole report, and
// it stops the reviews still running.
func (s *Service) Comprehensive(ctx context.Context, userID uuid.UUID) (*Report, error) {
	report := &Report{UserID: userID, GeneratedAt: s.now().UTC()}
	log := s.logger.WithContext(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.Budget = section(s.budget.Advice(gctx, userID))
		logSection(log, "budget", report.Budget.Error)
		return gctx.Err()
	})
	g.Go(func() error {
		report.Fraud = section(s.fraud.Scan(gctx, userID))
		logSection(log, "fraud", report.Fraud.Error)
		return gctx.Err()
	})
	g.Go(func() error {
		report.Investment = section(s.investment.Assess(gctx, userID))
		logSection(log, "investment", report.Investment.Error)
		return gctx.Err()
	})

	if err := g.Wait(); err != nil {
		log.Warn("comprehensive report abandoned", "error", err)
		return nil, err
	}
	return report, nil
}

func section[T any](data *T, err error) Section[T] {
	if err != nil {
		return Section[T]{Error: err.Error()}
	}
	return Section[T]{Data: data}
}

func logSection(log *logger.Logger, name, errMsg string) {
	if errMsg != "" {
		log.Warn("report section failed", "section", name, "error", errMsg)
	}
}
