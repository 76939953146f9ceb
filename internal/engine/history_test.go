package engine

import (
	"testing"

	"github.com/rxtech-lab/argo-brain/internal/types"
	"github.com/stretchr/testify/suite"
)

// HistoryTestSuite is a test suite for the performance history
type HistoryTestSuite struct {
	suite.Suite
}

// TestHistorySuite runs the test suite
func TestHistorySuite(t *testing.T) {
	suite.Run(t, new(HistoryTestSuite))
}

func (suite *HistoryTestSuite) TestAbsentKeyIsEmpty() {
	history := NewHistory(100)

	suite.Assert().Empty(history.Get("breakout", types.RegimeTrend))
}

func (suite *HistoryTestSuite) TestKeysAreIndependent() {
	history := NewHistory(100)

	history.Add("breakout", types.RegimeTrend, types.TradeOutcome{PnL: 0.01})
	history.Add("breakout", types.RegimeDistribution, types.TradeOutcome{PnL: 0.02})
	history.Add("mean_reversion", types.RegimeTrend, types.TradeOutcome{PnL: 0.03})

	suite.Assert().Len(history.Get("breakout", types.RegimeTrend), 1)
	suite.Assert().Len(history.Get("breakout", types.RegimeDistribution), 1)
	suite.Assert().Len(history.Get("mean_reversion", types.RegimeTrend), 1)
	suite.Assert().Empty(history.Get("mean_reversion", types.RegimeDistribution))
}

func (suite *HistoryTestSuite) TestCapacityEvictsOldest() {
	history := NewHistory(100)

	for i := 0; i < 150; i++ {
		history.Add("breakout", types.RegimeTrend, types.TradeOutcome{PnL: float64(i)})
	}

	outcomes := history.Get("breakout", types.RegimeTrend)
	suite.Require().Len(outcomes, 100)

	// The first 50 outcomes have been evicted, order is preserved.
	suite.Assert().Equal(50.0, outcomes[0].PnL)
	suite.Assert().Equal(149.0, outcomes[99].PnL)
}

func (suite *HistoryTestSuite) TestGetReturnsCopy() {
	history := NewHistory(100)
	history.Add("breakout", types.RegimeTrend, types.TradeOutcome{PnL: 0.01})

	outcomes := history.Get("breakout", types.RegimeTrend)
	outcomes[0].PnL = -1

	suite.Assert().Equal(0.01, history.Get("breakout", types.RegimeTrend)[0].PnL)
}
