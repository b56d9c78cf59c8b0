package sim

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Observer receives run lifecycle notifications. Implementations must not
// retain or mutate the values they are handed.
type Observer interface {
	RunStarted(params Params)
	DayCompleted(record DayRecord)
	CampaignTriggered(day int, np3Produced, lvConsumed float64)
	RunCompleted(summary RunSummary)
}

// NoopObserver ignores all notifications.
type NoopObserver struct{}

func (NoopObserver) RunStarted(Params)                       {}
func (NoopObserver) DayCompleted(DayRecord)                  {}
func (NoopObserver) CampaignTriggered(int, float64, float64) {}
func (NoopObserver) RunCompleted(RunSummary)                 {}

// Engine runs the day-by-day allocation and replenishment simulation. One
// engine may be reused across runs; every run owns an independent ledger
// and state map.
type Engine struct {
	logger   *zap.Logger
	observer Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a logger for per-day diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithObserver attaches a run observer.
func WithObserver(obs Observer) Option {
	return func(e *Engine) {
		if obs != nil {
			e.observer = obs
		}
	}
}

// NewEngine creates a simulation engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:   zap.NewNop(),
		observer: NoopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run simulates the full horizon, stopping early once every product with a
// positive target is satisfied. The context is only consulted between days;
// a day always completes synchronously.
func (e *Engine) Run(ctx context.Context, params Params) (*RunResult, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	products, order := buildProducts(params)
	statuses := newStatuses(products)
	ledger := NewMaterialLedger(params.initialStocks())
	pl := newPlanner(params, products)
	start := params.startDate()

	e.observer.RunStarted(params)

	var days []DayRecord
	switches := 0

	for day := 0; day < params.HorizonDays; day++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run abandoned before day %d: %w", day+1, err)
		}

		date := start.AddDate(0, 0, day)
		for _, st := range statuses {
			st.PackedToday = 0
		}

		// Replenishment first: same-day production can satisfy same-day
		// packing demand.
		plan := pl.PlanDay(ledger, statuses)
		if plan.campaignNP3 > 0 {
			e.observer.CampaignTriggered(day+1, plan.campaignNP3, plan.campaignLV)
			e.logger.Debug("np3 campaign batch",
				zap.Int("day", day+1),
				zap.Float64("np3_produced", plan.campaignNP3),
				zap.Float64("lv_consumed", plan.campaignLV))
		}

		packed := allocateDay(params, products, statuses, ledger, &switches)

		// The planner's LLV buffer and the allocator's safety floor guard
		// the same stock independently; surface the days where they
		// disagree instead of silently preferring one.
		if statuses[ProductCPellet].Left > Epsilon &&
			ledger.Stock(RefS3LLV) <= LLVSafetyStockForC+Epsilon {
			e.logger.Warn("llv stock pinned at safety floor with open c pellet target",
				zap.Int("day", day+1),
				zap.Float64("llv_stock", ledger.Stock(RefS3LLV)),
				zap.Float64("safety_floor", LLVSafetyStockForC),
				zap.Float64("c_pellet_left", statuses[ProductCPellet].Left))
		}

		record := DayRecord{
			Date:       date,
			Packed:     packed,
			Stocks:     ledger.Snapshot(),
			Production: plan.production,
			Switches:   switches,
		}
		days = append(days, record)
		e.observer.DayCompleted(record)

		if allTargetsMet(statuses) {
			e.logger.Debug("all targets met, stopping early", zap.Int("days_run", day+1))
			break
		}
	}

	summary := summarize(order, statuses, switches)
	e.observer.RunCompleted(summary)

	return &RunResult{Days: days, Summary: summary}, nil
}

// allTargetsMet reports whether every product with a positive original
// target has at most Epsilon remaining.
func allTargetsMet(statuses map[ProductID]*ProductStatus) bool {
	for _, st := range statuses {
		if st.TargetOrig > 0 && st.Left > Epsilon {
			return false
		}
	}
	return true
}
