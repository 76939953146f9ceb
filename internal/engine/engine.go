package engine

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-brain/internal/logger"
	"github.com/rxtech-lab/argo-brain/internal/regime"
	"github.com/rxtech-lab/argo-brain/internal/strategy"
	"github.com/rxtech-lab/argo-brain/internal/types"
	"go.uber.org/zap"
)

// Engine is the decision core: it classifies the regime, runs the eligible
// signal generators, scores them against the performance history and turns the
// best candidate into a sized Decision. All state (history, cooldowns) is
// owned exclusively by this instance; operation is strictly sequential.
type Engine struct {
	config     Config
	log        *logger.Logger
	classifier *regime.Classifier
	pool       map[types.Regime][]strategy.Strategy
	history    *History
	estimator  *Estimator
	selector   *Selector
	sizer      *Sizer
	cooldowns  *CooldownTracker
}

// New builds an engine from an immutable config.
func New(config Config, log *logger.Logger) *Engine {
	return &Engine{
		config:     config,
		log:        log,
		classifier: regime.NewClassifier(config.Regime),
		pool:       strategy.NewRegimePool(config.Strategy),
		history:    NewHistory(config.HistoryCapacity),
		estimator:  NewEstimator(config.Estimator),
		selector:   NewSelector(config.Selector),
		sizer:      NewSizer(config.Sizer),
		cooldowns:  NewCooldownTracker(config.CooldownSteps),
	}
}

// Step runs one decision pass over a feature snapshot. "No eligible strategy",
// "no positive-EV candidate" and "size computed to zero" are all normal
// outcomes represented as None.
func (e *Engine) Step(features types.FeatureSnapshot, equity float64) optional.Option[types.Decision] {
	marketRegime := e.classifier.Classify(features)

	var candidates []types.StrategyStats

	for _, s := range e.pool[marketRegime] {
		// A cooling strategy is skipped but its countdown still advances.
		if e.cooldowns.Tick(s.Name()) {
			continue
		}

		signal := s.Generate(features)
		if signal.IsNone() {
			continue
		}

		outcomes := e.history.Get(s.Name(), marketRegime)
		stats := e.estimator.Estimate(s.Name(), marketRegime, outcomes, features.FundingRate)
		stats.Signal = signal

		candidates = append(candidates, stats)
	}

	best := e.selector.SelectBest(candidates)
	if best.IsNone() {
		return optional.None[types.Decision]()
	}

	chosen := best.Unwrap()

	size := e.sizer.Size(equity, chosen, features.ATRPct)
	if size <= 0 {
		return optional.None[types.Decision]()
	}

	e.log.Debug("Decision produced",
		zap.String("strategy", chosen.Name),
		zap.String("regime", string(marketRegime)),
		zap.Float64("ev", chosen.EV),
		zap.Float64("size", size),
	)

	return optional.Some(types.Decision{
		Strategy: chosen.Name,
		Regime:   marketRegime,
		Size:     size,
		EV:       chosen.EV,
		Signal:   chosen.Signal.Unwrap(),
	})
}

// OnTradeClose records a realized outcome and punishes the strategy with a
// cooldown when the trade lost. It must be invoked exactly once per closed
// position, before the next Step.
func (e *Engine) OnTradeClose(strategyName string, marketRegime types.Regime, pnl float64) {
	e.history.Add(strategyName, marketRegime, types.TradeOutcome{PnL: pnl})

	if pnl < 0 {
		e.cooldowns.Punish(strategyName)
	}
}
