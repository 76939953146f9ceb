package types

// Direction is the side of a trade signal.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// TradeSignal is an entry proposal from a signal generator. Stop is always on
// the adverse side of entry and target on the favorable side, relative to
// Direction.
type TradeSignal struct {
	Direction Direction `yaml:"direction" json:"direction"`
	Entry     float64   `yaml:"entry" json:"entry"`
	Stop      float64   `yaml:"stop" json:"stop"`
	Target    float64   `yaml:"target" json:"target"`
}

// Regime is a coarse market-state classification used to gate which strategies
// are considered.
type Regime string

const (
	RegimeTrend        Regime = "trend"
	RegimeChop         Regime = "chop"
	RegimeDistribution Regime = "distribution"
	RegimeSqueeze      Regime = "squeeze"
)

// AllRegimes lists every regime tag, used for schema generation.
var AllRegimes = []any{
	RegimeTrend,
	RegimeChop,
	RegimeDistribution,
	RegimeSqueeze,
}
