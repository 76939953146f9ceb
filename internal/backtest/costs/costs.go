package costs

// CommissionFee prices the commission for a fill.
type CommissionFee interface {
	// Calculate the commission fee for a given notional and returns the fee
	// in currency units.
	Calculate(notional float64) float64
}

// Slippage applies a proportional price penalty in the adverse direction: buys
// fill above the requested price, sells below it.
type Slippage struct {
	Rate float64
}

func (s Slippage) Buy(price float64) float64 {
	return price * (1 + s.Rate)
}

func (s Slippage) Sell(price float64) float64 {
	return price * (1 - s.Rate)
}

// Model bundles the execution frictions the simulator charges on every fill.
type Model struct {
	Commission CommissionFee
	Slippage   Slippage
}

type Exchange string

const (
	ExchangeBinanceFutures Exchange = "binance_futures"
	ExchangeZero           Exchange = "zero_cost"
)

var AllExchanges = []any{
	ExchangeBinanceFutures,
	ExchangeZero,
}

// GetCostModel returns the friction preset for the exchange; unknown exchanges
// fall back to the zero-cost model.
func GetCostModel(exchange Exchange) Model {
	switch exchange {
	case ExchangeBinanceFutures:
		return Model{
			Commission: NewRateCommissionFee(0.0004),
			Slippage:   Slippage{Rate: 0.0002},
		}
	case ExchangeZero:
		return Model{
			Commission: NewZeroCommissionFee(),
			Slippage:   Slippage{},
		}
	default:
		return Model{
			Commission: NewZeroCommissionFee(),
			Slippage:   Slippage{},
		}
	}
}
