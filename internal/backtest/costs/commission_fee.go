package costs

// RateCommissionFee charges a flat proportional rate on the filled notional,
// the taker-fee model of a perpetual-futures venue.
type RateCommissionFee struct {
	rate float64
}

func NewRateCommissionFee(rate float64) *RateCommissionFee {
	return &RateCommissionFee{rate: rate}
}

// Calculate implements CommissionFee.
func (f *RateCommissionFee) Calculate(notional float64) float64 {
	if notional <= 0 {
		return 0
	}

	return notional * f.rate
}

// ZeroCommissionFee charges nothing, used for friction-free experiments.
type ZeroCommissionFee struct{}

func NewZeroCommissionFee() *ZeroCommissionFee {
	return &ZeroCommissionFee{}
}

// Calculate implements CommissionFee.
func (f *ZeroCommissionFee) Calculate(notional float64) float64 {
	return 0
}
