package regime

import (
	"github.com/rxtech-lab/argo-brain/internal/types"
)

// Config holds the classification thresholds. The struct is immutable after
// construction; parameter-search workers must each build their own copy.
type Config struct {
	// ChopMaxATRPct is the volatility ceiling for the chop rule.
	ChopMaxATRPct float64 `yaml:"chop_max_atr_pct" json:"chop_max_atr_pct" jsonschema:"minimum=0"`
	// ChopMaxADX is the trend-strength ceiling for the chop rule.
	ChopMaxADX float64 `yaml:"chop_max_adx" json:"chop_max_adx" jsonschema:"minimum=0"`
	// SqueezeMinATRPct is the volatility floor for the squeeze rule.
	SqueezeMinATRPct float64 `yaml:"squeeze_min_atr_pct" json:"squeeze_min_atr_pct" jsonschema:"minimum=0"`
	// SqueezeMinVolumeZ is the volume-spike floor for the squeeze rule.
	SqueezeMinVolumeZ float64 `yaml:"squeeze_min_volume_z" json:"squeeze_min_volume_z"`
	// TrendMinADX is the trend-strength floor for the trend rule.
	TrendMinADX float64 `yaml:"trend_min_adx" json:"trend_min_adx" jsonschema:"minimum=0"`
}

// DefaultConfig returns the canonical classification thresholds.
func DefaultConfig() Config {
	return Config{
		ChopMaxATRPct:     0.006,
		ChopMaxADX:        18,
		SqueezeMinATRPct:  0.015,
		SqueezeMinVolumeZ: 1.2,
		TrendMinADX:       22,
	}
}

// Classifier maps a feature snapshot to a market regime. It is stateless and
// deterministic; the rule list is ordered and the first match wins.
type Classifier struct {
	config Config
}

func NewClassifier(config Config) *Classifier {
	return &Classifier{config: config}
}

// Classify is a total function over well-formed snapshots; there is no error
// path.
func (c *Classifier) Classify(f types.FeatureSnapshot) types.Regime {
	if f.ATRPct < c.config.ChopMaxATRPct && f.ADX < c.config.ChopMaxADX {
		return types.RegimeChop
	}

	if f.ATRPct > c.config.SqueezeMinATRPct && f.VolumeZ > c.config.SqueezeMinVolumeZ {
		return types.RegimeSqueeze
	}

	if f.ADX > c.config.TrendMinADX {
		return types.RegimeTrend
	}

	return types.RegimeDistribution
}
