package types

import "time"

// MarketData is a single OHLCV candle.
type MarketData struct {
	Time   time.Time `csv:"time"`
	Symbol string    `csv:"symbol"`
	Open   float64   `csv:"open"`
	High   float64   `csv:"high"`
	Low    float64   `csv:"low"`
	Close  float64   `csv:"close"`
	Volume float64   `csv:"volume"`
}

// Candle is the replay input contract: one OHLCV bar plus the derived feature
// fields produced by the indicator pipeline for that bar.
type Candle struct {
	MarketData
	Features FeatureSnapshot
}
