package strategy

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-brain/internal/types"
)

// MeanReversionConfig holds the mean-reversion variant thresholds.
type MeanReversionConfig struct {
	// MaxADX avoids fading real trends.
	MaxADX float64 `yaml:"max_adx" json:"max_adx" jsonschema:"minimum=0"`
	// MaxVolumeZ avoids panic bars.
	MaxVolumeZ float64 `yaml:"max_volume_z" json:"max_volume_z"`
	// MinATRPct is the minimum volatility floor.
	MinATRPct float64 `yaml:"min_atr_pct" json:"min_atr_pct" jsonschema:"minimum=0"`
	// WeakDip is the five-period return that triggers a long look; pumps
	// mirror it for shorts.
	WeakDip float64 `yaml:"weak_dip" json:"weak_dip"`
	// StrongDip marks a strong oversold move.
	StrongDip float64 `yaml:"strong_dip" json:"strong_dip"`
	// StrongRet1 is the one-period confirmation for a strong move.
	StrongRet1 float64 `yaml:"strong_ret_1" json:"strong_ret_1"`
	// ConfirmRet1 is the smaller one-period confirmation for a weak move.
	ConfirmRet1 float64 `yaml:"confirm_ret_1" json:"confirm_ret_1"`
	// VolumeSpikeZ lets a volume spike stand in for the return confirmation.
	VolumeSpikeZ float64 `yaml:"volume_spike_z" json:"volume_spike_z"`
	// StopATR is the fixed stop distance in ATR multiples.
	StopATR float64 `yaml:"stop_atr" json:"stop_atr" jsonschema:"minimum=0"`
	// WeakTargetATR is the target for a weak signal.
	WeakTargetATR float64 `yaml:"weak_target_atr" json:"weak_target_atr" jsonschema:"minimum=0"`
	// StrongTargetATR is the target for a strong signal.
	StrongTargetATR float64 `yaml:"strong_target_atr" json:"strong_target_atr" jsonschema:"minimum=0"`
}

func DefaultMeanReversionConfig() MeanReversionConfig {
	return MeanReversionConfig{
		MaxADX:          25,
		MaxVolumeZ:      3.0,
		MinATRPct:       0.002,
		WeakDip:         -0.006,
		StrongDip:       -0.012,
		StrongRet1:      -0.005,
		ConfirmRet1:     -0.003,
		VolumeSpikeZ:    1.2,
		StopATR:         0.8,
		WeakTargetATR:   1.0,
		StrongTargetATR: 1.8,
	}
}

// MeanReversion fades overdone dips and pumps in non-trending markets: tight
// stop, quick take-profit, larger target only when the move is clearly
// stretched.
type MeanReversion struct {
	config MeanReversionConfig
}

func NewMeanReversion(config MeanReversionConfig) *MeanReversion {
	return &MeanReversion{config: config}
}

// Name implements Strategy.
func (s *MeanReversion) Name() string {
	return "mean_reversion"
}

// Generate implements Strategy.
func (s *MeanReversion) Generate(f types.FeatureSnapshot) optional.Option[types.TradeSignal] {
	// Mean reversion only works sideways.
	if f.ADX > s.config.MaxADX {
		return optional.None[types.TradeSignal]()
	}

	if f.VolumeZ > s.config.MaxVolumeZ {
		return optional.None[types.TradeSignal]()
	}

	if f.ATRPct < s.config.MinATRPct {
		return optional.None[types.TradeSignal]()
	}

	// Long: oversold dip.
	if f.Ret5 < s.config.WeakDip {
		strong := f.Ret5 < s.config.StrongDip && f.Ret1 < s.config.StrongRet1
		volumeBoost := f.VolumeZ > s.config.VolumeSpikeZ

		if !(strong || volumeBoost || f.Ret1 < s.config.ConfirmRet1) {
			return optional.None[types.TradeSignal]()
		}

		targetMult := s.config.WeakTargetATR
		if strong {
			targetMult = s.config.StrongTargetATR
		}

		return optional.Some(types.TradeSignal{
			Direction: types.DirectionLong,
			Entry:     f.Price,
			Stop:      f.Price - f.ATRValue*s.config.StopATR,
			Target:    f.Price + f.ATRValue*targetMult,
		})
	}

	// Short: overbought pump, numeric mirror of the dip rules.
	if f.Ret5 > -s.config.WeakDip {
		strong := f.Ret5 > -s.config.StrongDip && f.Ret1 > -s.config.StrongRet1
		volumeBoost := f.VolumeZ > s.config.VolumeSpikeZ

		if !(strong || volumeBoost || f.Ret1 > -s.config.ConfirmRet1) {
			return optional.None[types.TradeSignal]()
		}

		targetMult := s.config.WeakTargetATR
		if strong {
			targetMult = s.config.StrongTargetATR
		}

		return optional.Some(types.TradeSignal{
			Direction: types.DirectionShort,
			Entry:     f.Price,
			Stop:      f.Price + f.ATRValue*s.config.StopATR,
			Target:    f.Price - f.ATRValue*targetMult,
		})
	}

	return optional.None[types.TradeSignal]()
}
