package backtest

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-brain/internal/backtest/costs"
	"github.com/rxtech-lab/argo-brain/internal/backtest/ledger"
	"github.com/rxtech-lab/argo-brain/internal/engine"
	"github.com/rxtech-lab/argo-brain/internal/logger"
	"github.com/rxtech-lab/argo-brain/internal/types"
	"github.com/rxtech-lab/argo-brain/internal/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Position is the simulator's single open position. At most one exists at any
// time.
type Position struct {
	Strategy  string
	Regime    types.Regime
	Direction types.Direction
	// Size is the position notional in currency units.
	Size   float64
	Entry  float64
	Stop   float64
	Target float64
	// EntryCommission was already charged against equity when the position
	// opened; it is folded into the recorded net PnL at close.
	EntryCommission float64
	OpenedAt        time.Time
}

// OnCandleCallback reports replay progress as (processed, total).
type OnCandleCallback func(current int, total int)

// Simulator replays an ordered candle sequence through a decision engine,
// simulating fills with slippage and commission and maintaining the equity
// ledger. It is a two-state machine: flat, or holding the one open position.
type Simulator struct {
	config Config
	log    *logger.Logger
	engine *engine.Engine
	cost   costs.Model
	ledger *ledger.Ledger

	equity      float64
	position    optional.Option[Position]
	equityCurve []float64
	trades      []ledger.Trade
	totalFees   float64
}

// NewSimulator builds a simulator around an engine instance. The engine,
// ledger and simulator together form one isolated replay; parallel searches
// must construct one set per worker.
func NewSimulator(config Config, eng *engine.Engine, led *ledger.Ledger, log *logger.Logger) *Simulator {
	return &Simulator{
		config:      config,
		log:         log,
		engine:      eng,
		cost:        costs.GetCostModel(config.Exchange),
		ledger:      led,
		equity:      config.InitialEquity,
		position:    optional.None[Position](),
		equityCurve: nil,
		trades:      nil,
		totalFees:   0,
	}
}

// Run replays the candles in order and returns the summary statistics.
func (s *Simulator) Run(candles []types.Candle, onCandle optional.Option[OnCandleCallback]) (types.BacktestStats, error) {
	if err := s.ledger.Initialize(); err != nil {
		return types.BacktestStats{}, fmt.Errorf("failed to initialize ledger: %w", err)
	}

	for i, candle := range candles {
		// Exit first: an exit on this candle frees the engine to re-enter on
		// the same candle's features.
		if err := s.processExit(candle); err != nil {
			return types.BacktestStats{}, err
		}

		if s.position.IsNone() {
			s.processEntry(candle)
		}

		// The curve grows by exactly one point per candle, changed or not.
		s.equityCurve = append(s.equityCurve, s.equity)

		if onCandle.IsSome() {
			onCandle.Unwrap()(i+1, len(candles))
		}
	}

	symbol := ""
	if len(candles) > 0 {
		symbol = candles[0].Symbol
	}

	return s.stats(symbol)
}

// processExit checks the open position against the candle's extremes. The
// stop is checked before the target: when both levels are touched inside one
// candle the stop wins. That is a modeling choice, not a claim about real
// intrabar sequencing.
func (s *Simulator) processExit(candle types.Candle) error {
	if s.position.IsNone() {
		return nil
	}

	p := s.position.Unwrap()

	var (
		exitPrice float64
		reason    ledger.ExitReason
		hit       bool
	)

	switch p.Direction {
	case types.DirectionLong:
		if candle.Low <= p.Stop {
			// Stops fill through the level, targets fill short of it.
			exitPrice = s.cost.Slippage.Sell(p.Stop)
			reason = ledger.ExitReasonStop
			hit = true
		} else if candle.High >= p.Target {
			exitPrice = s.cost.Slippage.Sell(p.Target)
			reason = ledger.ExitReasonTarget
			hit = true
		}
	case types.DirectionShort:
		if candle.High >= p.Stop {
			exitPrice = s.cost.Slippage.Buy(p.Stop)
			reason = ledger.ExitReasonStop
			hit = true
		} else if candle.Low <= p.Target {
			exitPrice = s.cost.Slippage.Buy(p.Target)
			reason = ledger.ExitReasonTarget
			hit = true
		}
	}

	if !hit {
		return nil
	}

	grossPnL := directionalPnL(p.Direction, p.Entry, exitPrice, p.Size)
	exitCommission := s.cost.Commission.Calculate(p.Size)

	s.equity += grossPnL - exitCommission
	s.totalFees += exitCommission

	// Net of both ends' commissions, so the recorded trades sum exactly to
	// the equity change.
	netPnL := grossPnL - exitCommission - p.EntryCommission

	trade := ledger.Trade{
		Symbol:     candle.Symbol,
		Strategy:   p.Strategy,
		Regime:     p.Regime,
		Direction:  p.Direction,
		Size:       p.Size,
		EntryPrice: p.Entry,
		ExitPrice:  exitPrice,
		PnL:        netPnL,
		Commission: exitCommission + p.EntryCommission,
		Reason:     reason,
		OpenedAt:   p.OpenedAt,
		ClosedAt:   candle.Time,
	}

	if err := s.ledger.Record(trade); err != nil {
		return fmt.Errorf("failed to record trade: %w", err)
	}

	s.trades = append(s.trades, trade)
	s.position = optional.None[Position]()

	s.log.Debug("Position closed",
		zap.String("strategy", p.Strategy),
		zap.String("reason", string(reason)),
		zap.Float64("pnl", netPnL),
		zap.Float64("equity", s.equity),
	)

	// The engine learns from the return on notional so outcome and cost
	// terms share units.
	outcome := 0.0
	if p.Size > 0 {
		outcome = netPnL / p.Size
	}

	s.engine.OnTradeClose(p.Strategy, p.Regime, outcome)

	return nil
}

// processEntry asks the engine for a decision and opens a position when one
// is produced.
func (s *Simulator) processEntry(candle types.Candle) {
	decision := s.engine.Step(candle.Features, s.equity)
	if decision.IsNone() {
		return
	}

	d := decision.Unwrap()
	signal := d.Signal

	// Entry fills adverse to the trader.
	var entryPrice float64

	switch signal.Direction {
	case types.DirectionLong:
		entryPrice = s.cost.Slippage.Buy(candle.Close)
	case types.DirectionShort:
		entryPrice = s.cost.Slippage.Sell(candle.Close)
	}

	entryCommission := s.cost.Commission.Calculate(d.Size)
	s.equity -= entryCommission
	s.totalFees += entryCommission

	s.position = optional.Some(Position{
		Strategy:        d.Strategy,
		Regime:          d.Regime,
		Direction:       signal.Direction,
		Size:            d.Size,
		Entry:           entryPrice,
		Stop:            signal.Stop,
		Target:          signal.Target,
		EntryCommission: entryCommission,
		OpenedAt:        candle.Time,
	})

	s.log.Debug("Position opened",
		zap.String("strategy", d.Strategy),
		zap.String("regime", string(d.Regime)),
		zap.String("direction", string(signal.Direction)),
		zap.Float64("size", d.Size),
		zap.Float64("entry", entryPrice),
	)
}

// directionalPnL computes the gross PnL of a round trip on the given notional.
func directionalPnL(direction types.Direction, entry float64, exit float64, size float64) float64 {
	if entry == 0 {
		return 0
	}

	entryDec := decimal.NewFromFloat(entry)
	exitDec := decimal.NewFromFloat(exit)
	sizeDec := decimal.NewFromFloat(size)

	move := exitDec.Sub(entryDec)
	if direction == types.DirectionShort {
		move = entryDec.Sub(exitDec)
	}

	pnl, _ := move.Div(entryDec).Mul(sizeDec).Float64()

	return pnl
}

// Equity returns the current realized equity.
func (s *Simulator) Equity() float64 {
	return s.equity
}

// EquityCurve returns one equity point per processed candle.
func (s *Simulator) EquityCurve() []float64 {
	return s.equityCurve
}

// Trades returns the closed trades in close order.
func (s *Simulator) Trades() []ledger.Trade {
	return s.trades
}

// InPosition reports whether the simulator currently holds a position.
func (s *Simulator) InPosition() bool {
	return s.position.IsSome()
}

// stats summarizes the replay. The recorded trades sum exactly to the equity
// change only when the replay ends flat: a position still open at the end has
// had its entry commission charged against equity and TotalFees, but no closed
// trade carries that commission yet.
func (s *Simulator) stats(symbol string) (types.BacktestStats, error) {
	winning := 0

	for _, trade := range s.trades {
		if trade.PnL > 0 {
			winning++
		}
	}

	winRate := 0.0
	if len(s.trades) > 0 {
		winRate = float64(winning) / float64(len(s.trades))
	}

	strategyPnL, err := s.ledger.StrategyPnL()
	if err != nil {
		return types.BacktestStats{}, fmt.Errorf("failed to summarize ledger: %w", err)
	}

	return types.BacktestStats{
		ID:            uuid.New().String(),
		Timestamp:     time.Now(),
		Symbol:        symbol,
		InitialEquity: s.config.InitialEquity,
		FinalEquity:   s.equity,
		TotalReturn:   (s.equity - s.config.InitialEquity) / s.config.InitialEquity,
		Sharpe:        annualizedSharpe(s.equityCurve, s.config.SamplesPerYear),
		TradeResult: types.TradeResult{
			NumberOfTrades:        len(s.trades),
			NumberOfWinningTrades: winning,
			NumberOfLosingTrades:  len(s.trades) - winning,
			WinRate:               winRate,
			MaxDrawdown:           maxDrawdown(s.equityCurve),
		},
		TotalFees:   s.totalFees,
		StrategyPnL: strategyPnL,
		CandleCount: len(s.equityCurve),
	}, nil
}

// maxDrawdown is the largest peak-to-trough decline on the equity curve, as a
// fraction of the peak.
func maxDrawdown(curve []float64) float64 {
	peak := math.Inf(-1)
	maxDD := 0.0

	for _, equity := range curve {
		if equity > peak {
			peak = equity
		}

		if peak > 0 {
			dd := (peak - equity) / peak
			if dd > maxDD {
				maxDD = dd
			}
		}
	}

	return maxDD
}

// annualizedSharpe is mean/stdev of the step-to-step equity returns scaled by
// the square root of the sampling frequency per year.
func annualizedSharpe(curve []float64, samplesPerYear float64) float64 {
	if len(curve) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(curve)-1)

	for i := 1; i < len(curve); i++ {
		if curve[i-1] == 0 {
			continue
		}

		returns = append(returns, (curve[i]-curve[i-1])/curve[i-1])
	}

	std := utils.StdDev(returns)
	if std == 0 {
		return 0
	}

	return utils.Mean(returns) / std * math.Sqrt(samplesPerYear)
}
