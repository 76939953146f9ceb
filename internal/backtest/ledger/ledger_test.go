package ledger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-brain/internal/logger"
	"github.com/rxtech-lab/argo-brain/internal/types"
	"github.com/stretchr/testify/suite"
)

// LedgerTestSuite is a test suite for the trade ledger
type LedgerTestSuite struct {
	suite.Suite
	ledger *Ledger
}

// TestLedgerSuite runs the test suite
func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func (suite *LedgerTestSuite) SetupTest() {
	led, err := NewLedger(logger.NewDiscardLogger())
	suite.Require().NoError(err)
	suite.Require().NoError(led.Initialize())
	suite.ledger = led
}

func (suite *LedgerTestSuite) TearDownTest() {
	suite.ledger.Close()
}

func sampleTrade(strategy string, pnl float64, closedAt time.Time) Trade {
	return Trade{
		Symbol:     "BTCUSDT",
		Strategy:   strategy,
		Regime:     types.RegimeTrend,
		Direction:  types.DirectionLong,
		Size:       5000,
		EntryPrice: 100,
		ExitPrice:  100 + pnl/50,
		PnL:        pnl,
		Commission: 4,
		Reason:     ExitReasonTarget,
		OpenedAt:   closedAt.Add(-5 * time.Minute),
		ClosedAt:   closedAt,
	}
}

func (suite *LedgerTestSuite) TestRecordAssignsID() {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.Require().NoError(suite.ledger.Record(sampleTrade("breakout", 120, t0)))

	trades, err := suite.ledger.Trades()
	suite.Require().NoError(err)
	suite.Require().Len(trades, 1)
	suite.Assert().NotEmpty(trades[0].ID)
	suite.Assert().Equal("breakout", trades[0].Strategy)
	suite.Assert().Equal(types.RegimeTrend, trades[0].Regime)
	suite.Assert().Equal(types.DirectionLong, trades[0].Direction)
	suite.Assert().Equal(ExitReasonTarget, trades[0].Reason)
	suite.Assert().InDelta(120.0, trades[0].PnL, 1e-9)
}

func (suite *LedgerTestSuite) TestTradesOrderedByCloseTime() {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Inserted out of order on purpose.
	suite.Require().NoError(suite.ledger.Record(sampleTrade("breakout", 50, t0.Add(10*time.Minute))))
	suite.Require().NoError(suite.ledger.Record(sampleTrade("trend_following", -30, t0)))

	trades, err := suite.ledger.Trades()
	suite.Require().NoError(err)
	suite.Require().Len(trades, 2)
	suite.Assert().Equal("trend_following", trades[0].Strategy)
	suite.Assert().Equal("breakout", trades[1].Strategy)
}

func (suite *LedgerTestSuite) TestStrategyPnL() {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	suite.Require().NoError(suite.ledger.Record(sampleTrade("breakout", 120, t0)))
	suite.Require().NoError(suite.ledger.Record(sampleTrade("breakout", -60, t0.Add(5*time.Minute))))
	suite.Require().NoError(suite.ledger.Record(sampleTrade("mean_reversion", 15, t0.Add(10*time.Minute))))

	pnl, err := suite.ledger.StrategyPnL()
	suite.Require().NoError(err)
	suite.Require().Len(pnl, 2)
	suite.Assert().InDelta(60.0, pnl["breakout"], 1e-9)
	suite.Assert().InDelta(15.0, pnl["mean_reversion"], 1e-9)
}

func (suite *LedgerTestSuite) TestWriteExportsParquet() {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.Require().NoError(suite.ledger.Record(sampleTrade("breakout", 120, t0)))

	folder := suite.T().TempDir()
	suite.Require().NoError(suite.ledger.Write(folder))

	info, err := os.Stat(filepath.Join(folder, "trades.parquet"))
	suite.Require().NoError(err)
	suite.Assert().Greater(info.Size(), int64(0))
}

func (suite *LedgerTestSuite) TestCleanupAllowsReuse() {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.Require().NoError(suite.ledger.Record(sampleTrade("breakout", 120, t0)))

	suite.Require().NoError(suite.ledger.Cleanup())
	suite.Require().NoError(suite.ledger.Initialize())

	trades, err := suite.ledger.Trades()
	suite.Require().NoError(err)
	suite.Assert().Empty(trades)
}
