package strategy

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-brain/internal/types"
)

// TrendFollowConfig holds the trend-following variant thresholds.
type TrendFollowConfig struct {
	// MinADX only admits very strong trends.
	MinADX float64 `yaml:"min_adx" json:"min_adx" jsonschema:"minimum=0"`
	// MinATRPct is the minimum volatility floor.
	MinATRPct float64 `yaml:"min_atr_pct" json:"min_atr_pct" jsonschema:"minimum=0"`
	// StrongADX marks the strong-trend threshold that extends the target.
	StrongADX float64 `yaml:"strong_adx" json:"strong_adx" jsonschema:"minimum=0"`
	// BaseStopATR is the stop distance in ATR multiples.
	BaseStopATR float64 `yaml:"base_stop_atr" json:"base_stop_atr" jsonschema:"minimum=0"`
	// TailwindStopATR replaces BaseStopATR when funding is favorable; a paid
	// carry is worth sitting through more noise.
	TailwindStopATR float64 `yaml:"tailwind_stop_atr" json:"tailwind_stop_atr" jsonschema:"minimum=0"`
	// BaseTargetATR is the base target distance in ATR multiples.
	BaseTargetATR float64 `yaml:"base_target_atr" json:"base_target_atr" jsonschema:"minimum=0"`
	// MaxTargetATR caps the target distance after bonuses.
	MaxTargetATR float64 `yaml:"max_target_atr" json:"max_target_atr" jsonschema:"minimum=0"`
	// MinFastSlope is the fast EMA slope floor for a long; shorts mirror it.
	MinFastSlope float64 `yaml:"min_fast_slope" json:"min_fast_slope"`
	// MinSlowSlope is the slow EMA slope floor for a long; shorts mirror it.
	MinSlowSlope float64 `yaml:"min_slow_slope" json:"min_slow_slope"`
	// LongFundingTailwind: shorts pay longs below this rate.
	LongFundingTailwind float64 `yaml:"long_funding_tailwind" json:"long_funding_tailwind"`
	// ShortFundingTailwind: longs pay shorts above this rate.
	ShortFundingTailwind float64 `yaml:"short_funding_tailwind" json:"short_funding_tailwind"`
}

func DefaultTrendFollowConfig() TrendFollowConfig {
	return TrendFollowConfig{
		MinADX:               30,
		MinATRPct:            0.002,
		StrongADX:            40,
		BaseStopATR:          1.5,
		TailwindStopATR:      2.0,
		BaseTargetATR:        3.0,
		MaxTargetATR:         6.0,
		MinFastSlope:         0.0008,
		MinSlowSlope:         0.0002,
		LongFundingTailwind:  -0.0001,
		ShortFundingTailwind: 0.0002,
	}
}

// TrendFollow rides established trends, requiring either same-sign return
// momentum or a funding-rate tailwind before committing.
type TrendFollow struct {
	config TrendFollowConfig
}

func NewTrendFollow(config TrendFollowConfig) *TrendFollow {
	return &TrendFollow{config: config}
}

// Name implements Strategy.
func (s *TrendFollow) Name() string {
	return "trend_following"
}

// Generate implements Strategy.
func (s *TrendFollow) Generate(f types.FeatureSnapshot) optional.Option[types.TradeSignal] {
	if f.ADX < s.config.MinADX {
		return optional.None[types.TradeSignal]()
	}

	if f.ATRPct < s.config.MinATRPct {
		return optional.None[types.TradeSignal]()
	}

	strongTrend := f.ADX > s.config.StrongADX
	fundingLong := f.FundingRate < s.config.LongFundingTailwind
	fundingShort := f.FundingRate > s.config.ShortFundingTailwind
	longMomentum := f.Ret1 > 0 && f.Ret5 > 0
	shortMomentum := f.Ret1 < 0 && f.Ret5 < 0

	targetMult := s.config.BaseTargetATR
	if strongTrend {
		targetMult += 1.0
	}

	if fundingLong || fundingShort {
		targetMult += 0.5
	}

	targetMult = math.Min(targetMult, s.config.MaxTargetATR)

	// Long: both EMAs rising.
	if f.EMAFastSlope > s.config.MinFastSlope && f.EMASlowSlope > s.config.MinSlowSlope {
		if !(longMomentum || fundingLong) {
			return optional.None[types.TradeSignal]()
		}

		stopMult := s.config.BaseStopATR
		if fundingLong {
			stopMult = s.config.TailwindStopATR
		}

		return optional.Some(types.TradeSignal{
			Direction: types.DirectionLong,
			Entry:     f.Price,
			Stop:      f.Price - f.ATRValue*stopMult,
			Target:    f.Price + f.ATRValue*targetMult,
		})
	}

	// Short: both EMAs falling.
	if f.EMAFastSlope < -s.config.MinFastSlope && f.EMASlowSlope < -s.config.MinSlowSlope {
		if !(shortMomentum || fundingShort) {
			return optional.None[types.TradeSignal]()
		}

		stopMult := s.config.BaseStopATR
		if fundingShort {
			stopMult = s.config.TailwindStopATR
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
