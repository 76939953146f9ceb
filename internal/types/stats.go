package types

import "github.com/moznion/go-optional"

// TradeOutcome is a single realized trade result, net of costs. Outcomes are
// appended to the performance history on each close and never mutated.
type TradeOutcome struct {
	PnL float64
}

// StrategyStats holds the expected-value statistics for one (strategy, regime)
// pair. It is recomputed on every decision step and never persisted.
type StrategyStats struct {
	Name       string
	Regime     Regime
	WinRate    float64
	AvgWin     float64
	AvgLoss    float64
	EV         float64
	Confidence float64
	// Signal is the entry proposal this evaluation was made for, attached by
	// the decision engine so the selector's pick carries its own signal.
	Signal optional.Option[TradeSignal]
}

// Decision is the output of one decision step. At most one non-empty Decision
// is produced per step.
type Decision struct {
	Strategy string
	Regime   Regime
	// Size is the position size in currency units.
	Size   float64
	EV     float64
	Signal TradeSignal
}
