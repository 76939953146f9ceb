package engine

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// ConfigTestSuite is a test suite for the engine configuration
type ConfigTestSuite struct {
	suite.Suite
}

// TestConfigSuite runs the test suite
func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestLoadConfig() {
	tests := []struct {
		name          string
		content       string
		expectedError bool
		check         func(config Config)
	}{
		{
			name:          "Empty content keeps defaults",
			content:       "",
			expectedError: false,
			check: func(config Config) {
				suite.Assert().Equal(100, config.HistoryCapacity)
				suite.Assert().Equal(3, config.CooldownSteps)
				suite.Assert().Equal(0.02, config.Sizer.TargetRisk)
			},
		},
		{
			name: "Partial overlay keeps untouched defaults",
			content: `
history_capacity: 200
sizer:
  target_risk: 0.01
  max_position_fraction: 0.5
  stop_distance_atr_mult: 1.5
  min_stop_distance: 0.01
  decimal_precision: 2
`,
			expectedError: false,
			check: func(config Config) {
				suite.Assert().Equal(200, config.HistoryCapacity)
				suite.Assert().Equal(0.01, config.Sizer.TargetRisk)
				suite.Assert().Equal(3, config.CooldownSteps)
				suite.Assert().Equal(0.25, config.Estimator.Alpha)
			},
		},
		{
			name:          "Zero cooldown is allowed",
			content:       "cooldown_steps: 0",
			expectedError: false,
			check: func(config Config) {
				suite.Assert().Equal(0, config.CooldownSteps)
			},
		},
		{
			name:          "Zero history capacity is rejected",
			content:       "history_capacity: 0",
			expectedError: true,
		},
		{
			name:          "Negative cooldown is rejected",
			content:       "cooldown_steps: -1",
			expectedError: true,
		},
		{
			name:          "Malformed yaml is rejected",
			content:       "history_capacity: [not a number",
			expectedError: true,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			config, err := LoadConfig(tc.content)

			if tc.expectedError {
				suite.Assert().Error(err)

				return
			}

			suite.Require().NoError(err)

			if tc.check != nil {
				tc.check(config)
			}
		})
	}
}

func (suite *ConfigTestSuite) TestGenerateSchema() {
	config := DefaultConfig()

	schema, err := config.GenerateSchemaJSON()
	suite.Require().NoError(err)
	suite.Assert().Contains(schema, "history_capacity")
	suite.Assert().Contains(schema, "cooldown_steps")
	suite.Assert().Contains(schema, "target_risk")
}
