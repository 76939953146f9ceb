package types

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

// StatisticsTestSuite is a test suite for the backtest statistics
type StatisticsTestSuite struct {
	suite.Suite
}

// TestStatisticsSuite runs the test suite
func TestStatisticsSuite(t *testing.T) {
	suite.Run(t, new(StatisticsTestSuite))
}

func (suite *StatisticsTestSuite) TestWriteBacktestStats() {
	stats := BacktestStats{
		ID:            "run-1",
		Timestamp:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Symbol:        "BTCUSDT",
		InitialEquity: 10000,
		FinalEquity:   10120,
		TotalReturn:   0.012,
		Sharpe:        1.8,
		TradeResult: TradeResult{
			NumberOfTrades:        1,
			NumberOfWinningTrades: 1,
			WinRate:               1.0,
		},
		TotalFees:   4,
		StrategyPnL: map[string]float64{"breakout": 120},
		CandleCount: 3,
	}

	path := filepath.Join(suite.T().TempDir(), "stats.yaml")
	suite.Require().NoError(WriteBacktestStats(path, stats))

	content, err := os.ReadFile(path)
	suite.Require().NoError(err)

	var loaded BacktestStats
	suite.Require().NoError(yaml.Unmarshal(content, &loaded))

	suite.Assert().Equal(stats.ID, loaded.ID)
	suite.Assert().Equal(stats.Symbol, loaded.Symbol)
	suite.Assert().Equal(stats.FinalEquity, loaded.FinalEquity)
	suite.Assert().Equal(stats.TradeResult, loaded.TradeResult)
	suite.Assert().Equal(stats.StrategyPnL, loaded.StrategyPnL)
}

func (suite *StatisticsTestSuite) TestWriteBacktestStatsBadPath() {
	err := WriteBacktestStats("/nonexistent-folder/stats.yaml", BacktestStats{})
	suite.Assert().Error(err)
}
