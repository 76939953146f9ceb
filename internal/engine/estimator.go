package engine

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-brain/internal/types"
	"github.com/rxtech-lab/argo-brain/internal/utils"
)

// Bootstrap statistics returned while a (strategy, regime) pair has fewer than
// MinSamples outcomes. A small positive EV keeps untested pairs receiving
// trial evaluations.
const (
	bootstrapWinRate    = 0.5
	bootstrapAvgWin     = 0.02
	bootstrapAvgLoss    = 0.01
	bootstrapEV         = 0.002
	bootstrapConfidence = 0.5
)

// EstimatorConfig holds the expected-value estimation parameters.
type EstimatorConfig struct {
	// FeeRate is the per-side commission rate.
	FeeRate float64 `yaml:"fee_rate" json:"fee_rate" jsonschema:"minimum=0"`
	// Alpha is the EWMA weight; higher favors recent outcomes.
	Alpha float64 `yaml:"alpha" json:"alpha" jsonschema:"minimum=0,maximum=1"`
	// MinSamples is the outcome count below which bootstrap statistics are
	// returned.
	MinSamples int `yaml:"min_samples" json:"min_samples" jsonschema:"minimum=1"`
}

func DefaultEstimatorConfig() EstimatorConfig {
	return EstimatorConfig{
		FeeRate:    0.0004,
		Alpha:      0.25,
		MinSamples: 15,
	}
}

// Estimator derives expected-value statistics with a confidence score from a
// performance-history sequence and the current cost inputs.
type Estimator struct {
	config EstimatorConfig
}

func NewEstimator(config EstimatorConfig) *Estimator {
	return &Estimator{config: config}
}

// Estimate computes the statistics for one (strategy, regime) pair. It never
// fails: degenerate inputs fall back to guarded denominators rather than
// errors.
func (e *Estimator) Estimate(strategy string, regime types.Regime, outcomes []types.TradeOutcome, fundingRate float64) types.StrategyStats {
	if len(outcomes) < e.config.MinSamples {
		return types.StrategyStats{
			Name:       strategy,
			Regime:     regime,
			WinRate:    bootstrapWinRate,
			AvgWin:     bootstrapAvgWin,
			AvgLoss:    bootstrapAvgLoss,
			EV:         bootstrapEV,
			Confidence: bootstrapConfidence,
			Signal:     optional.None[types.TradeSignal](),
		}
	}

	pnls := make([]float64, len(outcomes))
	for i, outcome := range outcomes {
		pnls[i] = outcome.PnL
	}

	// EWMA folded forward from the oldest outcome so recent trades dominate.
	ewma := pnls[0]
	for _, pnl := range pnls[1:] {
		ewma = e.config.Alpha*pnl + (1-e.config.Alpha)*ewma
	}

	var wins, losses []float64

	for _, pnl := range pnls {
		if pnl > 0 {
			wins = append(wins, pnl)
		} else {
			losses = append(losses, pnl)
		}
	}

	winRate := float64(len(wins)) / float64(len(pnls))
	avgWin := utils.Mean(wins)

	avgLoss := 0.0
	if len(losses) > 0 {
		avgLoss = -utils.Mean(losses)
	}

	// Round-trip commission plus funding, always treated as a cost.
	totalCost := 2*e.config.FeeRate + abs(fundingRate)
	ev := ewma - totalCost

	// Confidence grows with sample count and outcome consistency.
	tradeCountTerm := utils.Clamp(float64(len(pnls))/100.0, 0, 1)
	meanPnL := utils.Mean(pnls)
	stdPnL := utils.StdDev(pnls)
	consistency := 1.0 / (1.0 + stdPnL/(abs(meanPnL)+1e-4))

	confidence := tradeCountTerm * (0.5 + 0.5*consistency)

	// Extreme win rates on 100 trades or fewer smell like overfit.
	if winRate > 0.8 || winRate < 0.2 {
		confidence *= 0.8
	}

	confidence = utils.Clamp(confidence, 0, 1)

	return types.StrategyStats{
		Name:       strategy,
		Regime:     regime,
		WinRate:    winRate,
		AvgWin:     avgWin,
		AvgLoss:    avgLoss,
		EV:         ev,
		Confidence: confidence,
		Signal:     optional.None[types.TradeSignal](),
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
