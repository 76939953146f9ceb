package strategy

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-brain/internal/types"
)

// Strategy is a rule-based signal generator. Implementations are pure
// functions over a snapshot: no mutable state, at most one signal per call.
// New variants are added by implementing this interface and extending the
// regime pool, not by subclassing.
type Strategy interface {
	// Name returns the stable identifier used as the performance-history and
	// cooldown key.
	Name() string
	// Generate returns an entry proposal for the snapshot, or None when the
	// variant's entry conditions do not hold.
	Generate(f types.FeatureSnapshot) optional.Option[types.TradeSignal]
}

// Config aggregates the per-variant threshold sets.
type Config struct {
	Breakout      BreakoutConfig      `yaml:"breakout" json:"breakout"`
	TrendFollow   TrendFollowConfig   `yaml:"trend_follow" json:"trend_follow"`
	MeanReversion MeanReversionConfig `yaml:"mean_reversion" json:"mean_reversion"`
}

// DefaultConfig returns the tuned per-variant thresholds.
func DefaultConfig() Config {
	return Config{
		Breakout:      DefaultBreakoutConfig(),
		TrendFollow:   DefaultTrendFollowConfig(),
		MeanReversion: DefaultMeanReversionConfig(),
	}
}

// NewRegimePool builds the static regime -> eligible strategies table. Squeeze
// and chop regimes trade nothing. The per-regime order is the evaluation
// order seen by the selector.
func NewRegimePool(config Config) map[types.Regime][]Strategy {
	return map[types.Regime][]Strategy{
		types.RegimeTrend: {
			NewBreakout(config.Breakout),
			NewTrendFollow(config.TrendFollow),
		},
		types.RegimeDistribution: {
			NewMeanReversion(config.MeanReversion),
		},
		types.RegimeSqueeze: {},
		types.RegimeChop:    {},
	}
}
