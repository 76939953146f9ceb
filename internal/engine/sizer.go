package engine

import (
	"github.com/rxtech-lab/argo-brain/internal/types"
	"github.com/rxtech-lab/argo-brain/internal/utils"
)

// SizerConfig holds the position-sizing parameters.
type SizerConfig struct {
	// TargetRisk is the per-trade risk fraction of equity.
	TargetRisk float64 `yaml:"target_risk" json:"target_risk" jsonschema:"minimum=0"`
	// MaxPositionFraction caps the position at this fraction of equity.
	MaxPositionFraction float64 `yaml:"max_position_fraction" json:"max_position_fraction" jsonschema:"minimum=0,maximum=1"`
	// StopDistanceATRMult estimates the stop distance as a multiple of
	// current volatility.
	StopDistanceATRMult float64 `yaml:"stop_distance_atr_mult" json:"stop_distance_atr_mult" jsonschema:"minimum=0"`
	// MinStopDistance floors the estimated stop distance.
	MinStopDistance float64 `yaml:"min_stop_distance" json:"min_stop_distance" jsonschema:"minimum=0"`
	// DecimalPrecision is the number of decimals the size is rounded down to.
	DecimalPrecision int `yaml:"decimal_precision" json:"decimal_precision" jsonschema:"minimum=0"`
}

func DefaultSizerConfig() SizerConfig {
	return SizerConfig{
		TargetRisk:          0.02,
		MaxPositionFraction: 0.5,
		StopDistanceATRMult: 1.5,
		MinStopDistance:     0.01,
		DecimalPrecision:    2,
	}
}

// Sizer converts equity, strategy statistics and current volatility into a
// monetary position size using a half-Kelly adjusted volatility target.
type Sizer struct {
	config SizerConfig
}

func NewSizer(config SizerConfig) *Sizer {
	return &Sizer{config: config}
}

// Size returns the position size in currency units. It returns exactly 0
// whenever the candidate's EV is non-positive.
func (s *Sizer) Size(equity float64, stat types.StrategyStats, volatility float64) float64 {
	if stat.EV <= 0 {
		return 0
	}

	// Kelly fraction from the realized payoff ratio and win rate.
	kelly := 0.0
	if stat.AvgWin > 0 && stat.AvgLoss > 0 {
		b := stat.AvgWin / stat.AvgLoss
		p := stat.WinRate
		q := 1 - p
		kelly = (b*p - q) / b
	}

	// Half-Kelly edge mapped linearly onto the allowed multiplier band.
	halfKelly := 0.5 * kelly
	kellyFactor := utils.Clamp(0.5+2*halfKelly, 0.5, 1.5)

	adjustedRisk := s.config.TargetRisk * kellyFactor * stat.Confidence

	// Stop distance as a fraction of price, floored so a dead-calm market
	// cannot blow the division up.
	stopDistance := s.config.StopDistanceATRMult * volatility
	if stopDistance < s.config.MinStopDistance {
		stopDistance = s.config.MinStopDistance
	}

	size := equity * adjustedRisk / stopDistance

	maxPosition := equity * s.config.MaxPositionFraction
	if size > maxPosition {
		size = maxPosition
	}

	return utils.RoundToDecimalPrecision(size, s.config.DecimalPrecision)
}
