package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type BacktestCmdTestSuite struct {
	suite.Suite
}

func TestBacktestCmdSuite(t *testing.T) {
	suite.Run(t, new(BacktestCmdTestSuite))
}

func (suite *BacktestCmdTestSuite) TestSchemaSubcommand() {
	var out bytes.Buffer

	cmd := newCommand()
	cmd.Writer = &out

	err := cmd.Run(context.Background(), []string{"backtest", "schema"})
	suite.Require().NoError(err)

	// Both config schemas are printed in one pass.
	suite.Contains(out.String(), "history_capacity")
	suite.Contains(out.String(), "initial_equity")
}

func (suite *BacktestCmdTestSuite) TestReplayRequiresDataFlag() {
	err := newCommand().Run(context.Background(), []string{"backtest"})
	suite.Require().Error(err)
	suite.Contains(err.Error(), "data")
}

func (suite *BacktestCmdTestSuite) TestLoadEngineConfigDefaults() {
	config, err := loadEngineConfig("")
	suite.Require().NoError(err)
	suite.Equal(3, config.CooldownSteps)
}

func (suite *BacktestCmdTestSuite) TestLoadBacktestConfigDefaults() {
	config, err := loadBacktestConfig("")
	suite.Require().NoError(err)
	suite.Equal(10000.0, config.InitialEquity)
}

func (suite *BacktestCmdTestSuite) TestLoadConfigMissingFile() {
	_, err := loadEngineConfig("does-not-exist.yaml")
	suite.Require().Error(err)

	_, err = loadBacktestConfig("does-not-exist.yaml")
	suite.Require().Error(err)
}
