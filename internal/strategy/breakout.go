package strategy

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-brain/internal/types"
)

// BreakoutConfig holds the breakout variant thresholds.
type BreakoutConfig struct {
	// MinADX is the minimum trend strength to consider a breakout.
	MinADX float64 `yaml:"min_adx" json:"min_adx" jsonschema:"minimum=0"`
	// MinATRPct is the minimum volatility floor.
	MinATRPct float64 `yaml:"min_atr_pct" json:"min_atr_pct" jsonschema:"minimum=0"`
	// MinVolumeZ is the minimum volume z-score.
	MinVolumeZ float64 `yaml:"min_volume_z" json:"min_volume_z"`
	// BaseStopATR is the stop distance in ATR multiples.
	BaseStopATR float64 `yaml:"base_stop_atr" json:"base_stop_atr" jsonschema:"minimum=0"`
	// WideStopATR replaces BaseStopATR above HighVolATRPct.
	WideStopATR float64 `yaml:"wide_stop_atr" json:"wide_stop_atr" jsonschema:"minimum=0"`
	// HighVolATRPct is the volatility level at which the stop widens.
	HighVolATRPct float64 `yaml:"high_vol_atr_pct" json:"high_vol_atr_pct" jsonschema:"minimum=0"`
	// BaseTargetATR is the base target distance in ATR multiples.
	BaseTargetATR float64 `yaml:"base_target_atr" json:"base_target_atr" jsonschema:"minimum=0"`
	// MaxTargetATR caps the target distance after bonuses.
	MaxTargetATR float64 `yaml:"max_target_atr" json:"max_target_atr" jsonschema:"minimum=0"`
	// MinFastSlope is the fast EMA slope floor for a long entry; the short
	// entry mirrors it.
	MinFastSlope float64 `yaml:"min_fast_slope" json:"min_fast_slope"`
	// FundingOverheat rejects longs when funding exceeds it and shorts when
	// funding is below its negation.
	FundingOverheat float64 `yaml:"funding_overheat" json:"funding_overheat"`
}

func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		MinADX:          20,
		MinATRPct:       0.002,
		MinVolumeZ:      0.5,
		BaseStopATR:     1.2,
		WideStopATR:     1.5,
		HighVolATRPct:   0.015,
		BaseTargetATR:   2.0,
		MaxTargetATR:    4.0,
		MinFastSlope:    0.0005,
		FundingOverheat: 0.0003,
	}
}

// Breakout trades momentum breaks confirmed by trend strength and a volume
// spike. The target widens with ADX and volume, the stop widens with
// volatility.
type Breakout struct {
	config BreakoutConfig
}

func NewBreakout(config BreakoutConfig) *Breakout {
	return &Breakout{config: config}
}

// Name implements Strategy.
func (s *Breakout) Name() string {
	return "breakout"
}

// Generate implements Strategy.
func (s *Breakout) Generate(f types.FeatureSnapshot) optional.Option[types.TradeSignal] {
	if f.ADX < s.config.MinADX {
		return optional.None[types.TradeSignal]()
	}

	if f.ATRPct < s.config.MinATRPct {
		return optional.None[types.TradeSignal]()
	}

	if f.VolumeZ < s.config.MinVolumeZ {
		return optional.None[types.TradeSignal]()
	}

	// Strong trends and volume spikes earn a wider target.
	adxBonus := math.Min((f.ADX-25)*0.05, 1.0)
	volumeBonus := math.Min((f.VolumeZ-1.0)*0.3, 0.5)
	targetMult := math.Min(s.config.BaseTargetATR+adxBonus+volumeBonus, s.config.MaxTargetATR)

	stopMult := s.config.BaseStopATR
	if f.ATRPct > s.config.HighVolATRPct {
		stopMult = s.config.WideStopATR
	}

	// Long: upward break.
	if f.EMAFastSlope > s.config.MinFastSlope && f.EMASlowSlope > 0 {
		// Crowded long side, skip.
		if f.FundingRate > s.config.FundingOverheat {
			return optional.None[types.TradeSignal]()
		}

		return optional.Some(types.TradeSignal{
			Direction: types.DirectionLong,
			Entry:     f.Price,
			Stop:      f.Price - f.ATRValue*stopMult,
			Target:    f.Price + f.ATRValue*targetMult,
		})
	}

	// Short: downward break.
	if f.EMAFastSlope < -s.config.MinFastSlope && f.EMASlowSlope < 0 {
		if f.FundingRate < -s.config.FundingOverheat {
			return optional.None[types.TradeSignal]()
		}

		return optional.Some(types.TradeSignal{
			Direction: types.DirectionShort,
			Entry:     f.Price,
			Stop:      f.Price + f.ATRValue*stopMult,
			Target:    f.Price - f.ATRValue*targetMult,
		})
	}

	return optional.None[types.TradeSignal]()
}
