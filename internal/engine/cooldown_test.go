package engine

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// CooldownTestSuite is a test suite for the cooldown tracker
type CooldownTestSuite struct {
	suite.Suite
}

// TestCooldownSuite runs the test suite
func TestCooldownSuite(t *testing.T) {
	suite.Run(t, new(CooldownTestSuite))
}

func (suite *CooldownTestSuite) TestUnknownStrategyIsActive() {
	tracker := NewCooldownTracker(3)

	suite.Assert().False(tracker.Tick("breakout"))
	suite.Assert().Equal(0, tracker.Remaining("breakout"))
}

func (suite *CooldownTestSuite) TestPunishSkipsExactlyPenaltySteps() {
	tracker := NewCooldownTracker(3)
	tracker.Punish("breakout")

	suite.Assert().Equal(3, tracker.Remaining("breakout"))

	// Three skipped passes, then eligible again.
	suite.Assert().True(tracker.Tick("breakout"))
	suite.Assert().True(tracker.Tick("breakout"))
	suite.Assert().True(tracker.Tick("breakout"))
	suite.Assert().False(tracker.Tick("breakout"))
}

func (suite *CooldownTestSuite) TestRepeatedPunishAccumulates() {
	tracker := NewCooldownTracker(3)
	tracker.Punish("breakout")
	suite.Assert().True(tracker.Tick("breakout"))

	tracker.Punish("breakout")
	suite.Assert().Equal(5, tracker.Remaining("breakout"))
}

func (suite *CooldownTestSuite) TestStrategiesCoolIndependently() {
	tracker := NewCooldownTracker(3)
	tracker.Punish("breakout")

	suite.Assert().True(tracker.Tick("breakout"))
	suite.Assert().False(tracker.Tick("trend_following"))
}
