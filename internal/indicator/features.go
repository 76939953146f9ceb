package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-brain/internal/types"
	"github.com/rxtech-lab/argo-brain/internal/utils"
)

// Config holds the lookback periods of the feature pipeline.
type Config struct {
	// FastEMAPeriod is the fast EMA span.
	FastEMAPeriod int `yaml:"fast_ema_period" json:"fast_ema_period" jsonschema:"minimum=1"`
	// SlowEMAPeriod is the slow EMA span.
	SlowEMAPeriod int `yaml:"slow_ema_period" json:"slow_ema_period" jsonschema:"minimum=1"`
	// ATRPeriod is the true-range lookback shared by ATR and ADX.
	ATRPeriod int `yaml:"atr_period" json:"atr_period" jsonschema:"minimum=1"`
	// VolumeWindow is the volume z-score lookback.
	VolumeWindow int `yaml:"volume_window" json:"volume_window" jsonschema:"minimum=2"`
	// HurstWindow is the rescaled-range lookback; candles without enough
	// history get the neutral 0.5.
	HurstWindow int `yaml:"hurst_window" json:"hurst_window" jsonschema:"minimum=8"`
	// Warmup candles are dropped from the front of the computed series so no
	// half-filled indicator reaches the decision core.
	Warmup int `yaml:"warmup" json:"warmup" jsonschema:"minimum=0"`
}

func DefaultConfig() Config {
	return Config{
		FastEMAPeriod: 9,
		SlowEMAPeriod: 21,
		ATRPeriod:     14,
		VolumeWindow:  30,
		HurstWindow:   64,
		Warmup:        50,
	}
}

// Pipeline turns a raw OHLCV series into replay candles carrying the full
// feature snapshot. The decision core never calls this package; it is the
// collaborator that feeds it.
type Pipeline struct {
	config Config
}

func NewPipeline(config Config) *Pipeline {
	return &Pipeline{config: config}
}

// Compute derives the feature snapshot for every candle and drops the warmup
// prefix. The funding rate is constant across the replay; historical candle
// feeds carry no per-bar funding.
func (p *Pipeline) Compute(data []types.MarketData, fundingRate float64) []types.Candle {
	n := len(data)
	if n == 0 {
		return nil
	}

	closes := make([]float64, n)
	for i, d := range data {
		closes[i] = d.Close
	}

	emaFast := ema(closes, p.config.FastEMAPeriod)
	emaSlow := ema(closes, p.config.SlowEMAPeriod)

	tr := trueRange(data)
	atr := rollingMean(tr, p.config.ATRPeriod)
	adx := p.adx(data, tr)

	candles := make([]types.Candle, 0, n)

	for i, d := range data {
		f := types.FeatureSnapshot{
			Price: d.Close,
			Hurst: 0.5,
		}

		if d.Close > 0 {
			f.ATRValue = atr[i]
			f.ATRPct = atr[i] / d.Close
		}

		f.ADX = adx[i]

		if i > 0 && emaFast[i-1] > 0 {
			f.EMAFastSlope = (emaFast[i] - emaFast[i-1]) / emaFast[i-1]
		}

		if i > 0 && emaSlow[i-1] > 0 {
			f.EMASlowSlope = (emaSlow[i] - emaSlow[i-1]) / emaSlow[i-1]
		}

		f.VolumeZ = p.volumeZ(data, i)

		if i > 0 && data[i-1].Close > 0 {
			f.Ret5 = (d.Close - data[i-1].Close) / data[i-1].Close
			f.Ret1 = f.Ret5 / 5
		}

		if h, ok := p.hurst(closes, i); ok {
			f.Hurst = h
		}

		f.FundingRate = fundingRate

		candles = append(candles, types.Candle{MarketData: d, Features: f})
	}

	if len(candles) > p.config.Warmup {
		return candles[p.config.Warmup:]
	}

	return nil
}

// ema computes the exponential moving average series with the usual
// 2/(period+1) smoothing, seeded at the first close.
func ema(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	k := 2.0 / float64(period+1)
	out[0] = values[0]

	for i := 1; i < len(values); i++ {
		out[i] = values[i]*k + out[i-1]*(1-k)
	}

	return out
}

// trueRange returns the per-candle true range; the first candle uses its own
// high-low span.
func trueRange(data []types.MarketData) []float64 {
	out := make([]float64, len(data))

	for i, d := range data {
		if i == 0 {
			out[i] = d.High - d.Low

			continue
		}

		prevClose := data[i-1].Close
		out[i] = math.Max(d.High-d.Low, math.Max(math.Abs(d.High-prevClose), math.Abs(d.Low-prevClose)))
	}

	return out
}

// rollingMean returns the window-mean series, 0 until the window fills.
func rollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}

		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}

	return out
}

// adx computes the smoothed ADX: rolling sums of +DM/-DM/TR give the
// directional indexes, and the DX series is then mean-smoothed over the same
// period. The unsmoothed-DX shortcut some feeds use is deliberately not
// replicated here.
func (p *Pipeline) adx(data []types.MarketData, tr []float64) []float64 {
	n := len(data)
	period := p.config.ATRPeriod

	plusDM := make([]float64, n)
	minusDM := make([]float64, n)

	for i := 1; i < n; i++ {
		up := data[i].High - data[i-1].High
		down := data[i-1].Low - data[i].Low

		if up > down && up > 0 {
			plusDM[i] = up
		}

		if down > up && down > 0 {
			minusDM[i] = down
		}
	}

	trSum := rollingSum(tr, period)
	plusSum := rollingSum(plusDM, period)
	minusSum := rollingSum(minusDM, period)

	dx := make([]float64, n)

	for i := 0; i < n; i++ {
		if trSum[i] <= 0 {
			continue
		}

		plusDI := 100 * plusSum[i] / trSum[i]
		minusDI := 100 * minusSum[i] / trSum[i]

		if plusDI+minusDI > 0 {
			dx[i] = 100 * math.Abs(plusDI-minusDI) / (plusDI + minusDI)
		}
	}

	return rollingMean(dx, period)
}

// rollingSum returns the window-sum series, 0 until the window fills.
func rollingSum(values []float64, window int) []float64 {
	out := make([]float64, len(values))

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}

		if i >= window-1 {
			out[i] = sum
		}
	}

	return out
}

// volumeZ is the current volume's deviation from the rolling window mean in
// standard-deviation units.
func (p *Pipeline) volumeZ(data []types.MarketData, i int) float64 {
	window := p.config.VolumeWindow
	if i < window-1 {
		return 0
	}

	volumes := make([]float64, 0, window)
	for j := i - window + 1; j <= i; j++ {
		volumes = append(volumes, data[j].Volume)
	}

	mean := utils.Mean(volumes)
	std := utils.StdDev(volumes)

	if std == 0 {
		return 0
	}

	return (data[i].Volume - mean) / std
}

// hurst estimates the Hurst exponent by rescaled-range analysis over the
// configured window of log returns. The second return reports whether enough
// history was available.
func (p *Pipeline) hurst(closes []float64, i int) (float64, bool) {
	window := p.config.HurstWindow
	if i < window {
		return 0, false
	}

	returns := make([]float64, 0, window)

	for j := i - window + 1; j <= i; j++ {
		if closes[j-1] <= 0 || closes[j] <= 0 {
			return 0, false
		}

		returns = append(returns, math.Log(closes[j]/closes[j-1]))
	}

	mean := utils.Mean(returns)
	std := utils.StdDev(returns)

	if std == 0 {
		return 0, false
	}

	// Range of the mean-adjusted cumulative deviations.
	cumulative := 0.0
	minDev, maxDev := math.Inf(1), math.Inf(-1)

	for _, r := range returns {
		cumulative += r - mean
		minDev = math.Min(minDev, cumulative)
		maxDev = math.Max(maxDev, cumulative)
	}

	rs := (maxDev - minDev) / std
	if rs <= 0 {
		return 0, false
	}

	h := math.Log(rs) / math.Log(float64(window))

	return utils.Clamp(h, 0, 1), true
}
