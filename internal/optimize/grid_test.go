package optimize

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-brain/internal/backtest"
	"github.com/rxtech-lab/argo-brain/internal/backtest/costs"
	"github.com/rxtech-lab/argo-brain/internal/engine"
	"github.com/rxtech-lab/argo-brain/internal/logger"
	"github.com/rxtech-lab/argo-brain/internal/types"
	"github.com/stretchr/testify/suite"
)

// GridTestSuite is a test suite for the grid-search runner
type GridTestSuite struct {
	suite.Suite
	runner  *Runner
	candles []types.Candle
}

// TestGridSuite runs the test suite
func TestGridSuite(t *testing.T) {
	suite.Run(t, new(GridTestSuite))
}

func (suite *GridTestSuite) SetupTest() {
	config := backtest.Config{
		InitialEquity:  10000,
		Exchange:       costs.ExchangeZero,
		SamplesPerYear: 105120,
		StartTime:      optional.None[time.Time](),
		EndTime:        optional.None[time.Time](),
	}

	suite.runner = NewRunner(config, 2, logger.NewDiscardLogger())
	suite.candles = suite.buildCandles()
}

// buildCandles produces one breakout entry followed by a clean target exit.
func (suite *GridTestSuite) buildCandles() []types.Candle {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	entry := types.FeatureSnapshot{
		Price:        100,
		ATRPct:       0.01,
		ATRValue:     1.0,
		ADX:          30,
		EMAFastSlope: 0.001,
		EMASlowSlope: 0.0005,
		VolumeZ:      1.5,
		FundingRate:  0.0001,
		Ret1:         0.001,
		Ret5:         0.004,
		Hurst:        0.5,
	}

	idle := types.FeatureSnapshot{Price: 100, ATRPct: 0.01, ADX: 10, Hurst: 0.5}

	bar := func(i int, high, low float64, f types.FeatureSnapshot) types.Candle {
		return types.Candle{
			MarketData: types.MarketData{
				Time:   t0.Add(time.Duration(i) * 5 * time.Minute),
				Symbol: "BTCUSDT",
				Open:   100,
				High:   high,
				Low:    low,
				Close:  100,
				Volume: 1000,
			},
			Features: f,
		}
	}

	return []types.Candle{
		bar(0, 100.5, 99.5, entry),
		bar(1, 103, 99, idle),
		bar(2, 100.5, 99.5, idle),
	}
}

func (suite *GridTestSuite) TestRunRanksCandidates() {
	aggressive := engine.DefaultConfig()

	// The conservative variant risks half as much per trade, so on a winning
	// replay it scores below the default.
	conservative := engine.DefaultConfig()
	conservative.Sizer.TargetRisk = 0.01

	results, err := suite.runner.Run(suite.candles, []Candidate{
		{Name: "conservative", Engine: conservative},
		{Name: "aggressive", Engine: aggressive},
	})
	suite.Require().NoError(err)
	suite.Require().Len(results, 2)

	suite.Assert().Equal("aggressive", results[0].Name)
	suite.Assert().Equal("conservative", results[1].Name)
	suite.Assert().Greater(results[0].Score, results[1].Score)
	suite.Assert().Greater(results[0].Stats.TotalReturn, 0.0)
}

func (suite *GridTestSuite) TestRunIsDeterministicAcrossWorkerCounts() {
	candidates := []Candidate{
		{Name: "a", Engine: engine.DefaultConfig()},
		{Name: "b", Engine: engine.DefaultConfig()},
		{Name: "c", Engine: engine.DefaultConfig()},
	}

	serial := NewRunner(suite.runner.backtestConfig, 1, logger.NewDiscardLogger())

	parallel, err := suite.runner.Run(suite.candles, candidates)
	suite.Require().NoError(err)

	sequential, err := serial.Run(suite.candles, candidates)
	suite.Require().NoError(err)

	suite.Require().Len(parallel, 3)

	// Identical configurations tie on score and fall back to name order.
	for i := range parallel {
		suite.Assert().Equal(sequential[i].Name, parallel[i].Name)
		suite.Assert().InDelta(sequential[i].Score, parallel[i].Score, 1e-9)
	}

	suite.Assert().Equal("a", parallel[0].Name)
	suite.Assert().Equal("b", parallel[1].Name)
	suite.Assert().Equal("c", parallel[2].Name)
}

func (suite *GridTestSuite) TestRunNoCandidates() {
	results, err := suite.runner.Run(suite.candles, nil)
	suite.Require().NoError(err)
	suite.Assert().Empty(results)
}
