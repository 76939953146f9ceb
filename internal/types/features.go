package types

// FeatureSnapshot is one observation of market state, produced once per
// decision step by the feature pipeline and consumed read-only by the decision
// core. All fields are assumed to be validated finite numbers; the pipeline
// substitutes neutral defaults (e.g. Hurst 0.5) when history is insufficient.
type FeatureSnapshot struct {
	// Price is the current mark price.
	Price float64 `csv:"price"`
	// ATRPct is ATR divided by price.
	ATRPct float64 `csv:"atr_pct"`
	// ATRValue is the absolute ATR in price units.
	ATRValue float64 `csv:"atr_value"`
	// ADX is the trend strength indicator.
	ADX float64 `csv:"adx"`
	// EMAFastSlope is the normalized one-bar rate of change of the fast EMA.
	EMAFastSlope float64 `csv:"ema_fast_slope"`
	// EMASlowSlope is the normalized one-bar rate of change of the slow EMA.
	EMASlowSlope float64 `csv:"ema_slow_slope"`
	// VolumeZ is the current volume's deviation from its rolling mean in
	// standard-deviation units.
	VolumeZ float64 `csv:"volume_z"`
	// FundingRate is the current perpetual funding rate.
	FundingRate float64 `csv:"funding_rate"`
	// Ret1 is the short-horizon return.
	Ret1 float64 `csv:"ret_1"`
	// Ret5 is the five-period return.
	Ret5 float64 `csv:"ret_5"`
	// Hurst is the Hurst exponent, 0.5 when unavailable.
	Hurst float64 `csv:"hurst"`
}
