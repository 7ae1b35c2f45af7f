package investment

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Akshan03/Personal-Finance-Agent/internal/analytics"
	"github.com/Akshan03/Personal-Finance-Agent/internal/platform/market"
)

var (
	ErrInvalidAmount      = errors.New("amount to invest must be positive")
	ErrInvalidRisk        = errors.New("risk tolerance must be one of low, medium, high")
	ErrInvalidTimeHorizon = errors.New("time horizon must be one of short, medium, long")
)

// Rating grades a portfolio's diversification
type Rating string

const (
	RatingExcellent        Rating = "Excellent"
	RatingGood             Rating = "Good"
	RatingFair             Rating = "Fair"
	RatingNeedsImprovement Rating = "Needs Improvement"
)

// RatingFor maps a diversification score to a rating
func RatingFor(score int) Rating {
	switch {
	case score >= 80:
		return RatingExcellent
	case score >= 60:
		return RatingGood
	case score >= 40:
		return RatingFair
	default:
		return RatingNeedsImprovement
	}
}

// Assessment is the portfolio quality review
type Assessment struct {
	Summary              string                          `json:"portfolio_assessment"`
	OverallRating        Rating                          `json:"overall_rating"`
	DiversificationScore int                             `json:"diversification_score"`
	Analysis             analytics.DiversificationResult `json:"analysis"`
}

// Risk is an investor's risk tolerance
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// Horizon is an investment time horizon
type Horizon string

const (
	HorizonShort  Horizon = "short"
	HorizonMedium Horizon = "medium"
	HorizonLong   Horizon = "long"
)

// Request asks for an allocation of Amount
type Request struct {
	Amount        decimal.Decimal `json:"amount"`
	RiskTolerance Risk            `json:"risk_tolerance"`
	TimeHorizon   Horizon         `json:"time_horizon"`
}

// Normalize applies defaults (low risk, medium horizon) and validates the request
func (r *Request) Normalize() error {
	if !r.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	r.RiskTolerance = Risk(strings.ToLower(strings.TrimSpace(string(r.RiskTolerance))))
	switch r.RiskTolerance {
	case "":
		r.RiskTolerance = RiskLow
	case RiskLow, RiskMedium, RiskHigh:
	default:
		return ErrInvalidRisk
	}

	r.TimeHorizon = Horizon(strings.ToLower(strings.TrimSpace(string(r.TimeHorizon))))
	switch r.TimeHorizon {
	case "":
		r.TimeHorizon = HorizonMedium
	case HorizonShort, HorizonMedium, HorizonLong:
	default:
		return ErrInvalidTimeHorizon
	}
	return nil
}

// AllocationSource records who produced an allocation
type AllocationSource string

const (
	SourceLLM   AllocationSource = "llm"
	SourceRules AllocationSource = "rules"
)

// Allocation is one line of a recommended allocation
type Allocation struct {
	Name           string          `json:"name"`
	Percent        float64         `json:"percent"`
	Amount         decimal.Decimal `json:"amount"`
	ExpectedReturn string          `json:"expected_return"`
	Risk           string          `json:"risk"`
}

// Recommendation is an allocation of the amount to invest
type Recommendation struct {
	TotalAmount    decimal.Decimal        `json:"total_investment_amount"`
	RiskTolerance  Risk                   `json:"risk_tolerance"`
	TimeHorizon    Horizon                `json:"time_horizon"`
	Source         AllocationSource       `json:"source"`
	Allocations    []Allocation           `json:"allocations"`
	Reasoning      []string               `json:"reasoning"`
	LowRiskOptions []market.LowRiskOption `json:"low_risk_options"`
	MarketTrends   market.Trends          `json:"market_trends"`
}
