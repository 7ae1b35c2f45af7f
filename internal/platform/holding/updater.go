package holding

import (
	"context"
	"time"

	"github.com/Akshan03/Personal-Finance-Agent/pkg/logger"
)

const (
	// DefaultValuationInterval is the default interval between valuation cycles
	DefaultValuationInterval = 15 * time.Minute
)

// ValuationUpdater periodically re-values holdings that carry a market symbol
type ValuationUpdater struct {
	repo     Repository
	pricer   Pricer
	interval time.Duration
	logger   *logger.Logger
	now      func() time.Time
}

// ValuationUpdaterConfig holds configuration for the valuation updater
type ValuationUpdaterConfig struct {
	Interval time.Duration
	Logger   *logger.Logger
}

// NewValuationUpdater creates a new valuation updater
func NewValuationUpdater(repo Repository, pricer Pricer, config *ValuationUpdaterConfig) *ValuationUpdater {
	interval := DefaultValuationInterval
	log := logger.Nop()

	if config != nil {
		if config.Interval > 0 {
			interval = config.Interval
		}
		if config.Logger != nil {
			log = config.Logger
		}
	}

	return &ValuationUpdater{
		repo:     repo,
		pricer:   pricer,
		interval: interval,
		logger:   log.WithField("component", "valuation_updater"),
		now:      time.Now,
	}
}

// Run starts the updater and runs until the context is cancelled
func (u *ValuationUpdater) Run(ctx context.Context) {
	u.logger.Info("valuation updater started", "interval", u.interval)

	// Run immediately on start
	u.RunOnce(ctx)

	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			u.logger.Info("valuation updater stopped")
			return
		case <-ticker.C:
			u.RunOnce(ctx)
		}
	}
}

// RunOnce runs a single valuation cycle and reports how many holdings were updated
func (u *ValuationUpdater) RunOnce(ctx context.Context) (success, fail int) {
	holdings, err := u.repo.GetPriced(ctx)
	if err != nil {
		u.logger.Error("failed to load priced holdings", "error", err)
		return 0, 0
	}

	if len(holdings) == 0 {
		u.logger.Debug("no priced holdings to update")
		return 0, 0
	}

	for _, h := range holdings {
		if ctx.Err() != nil {
			break
		}
		if h.Symbol == nil {
			continue
		}

		price, err := u.pricer.UnitPrice(ctx, *h.Symbol, string(h.AssetType))
		if err != nil {
			u.logger.Warn("failed to price holding", "symbol", *h.Symbol, "error", err)
			fail++
			continue
		}

		value := price.Mul(h.Quantity).Round(2)
		if err := u.repo.UpdateValuation(ctx, h.ID, value, u.now().UTC()); err != nil {
			u.logger.Error("failed to record valuation", "holding_id", h.ID, "error", err)
			fail++
			continue
		}

		success++
	}

	u.logger.Info("valuation cycle completed", "success_count", success, "fail_count", fail)
	return success, fail
}
