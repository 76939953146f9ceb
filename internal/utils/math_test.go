package utils

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// MathTestSuite is a test suite for the math helpers
type MathTestSuite struct {
	suite.Suite
}

// TestMathSuite runs the test suite
func TestMathSuite(t *testing.T) {
	suite.Run(t, new(MathTestSuite))
}

func (suite *MathTestSuite) TestMean() {
	suite.Assert().Equal(0.0, Mean(nil))
	suite.Assert().Equal(2.0, Mean([]float64{1, 2, 3}))
}

func (suite *MathTestSuite) TestStdDev() {
	suite.Assert().Equal(0.0, StdDev(nil))
	suite.Assert().Equal(0.0, StdDev([]float64{5}))
	suite.Assert().InDelta(2.0, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
}

func (suite *MathTestSuite) TestClamp() {
	suite.Assert().Equal(0.5, Clamp(0.5, 0, 1))
	suite.Assert().Equal(0.0, Clamp(-2, 0, 1))
	suite.Assert().Equal(1.0, Clamp(3, 0, 1))
}

func (suite *MathTestSuite) TestRoundToDecimalPrecision() {
	tests := []struct {
		name      string
		quantity  float64
		precision int
		expected  float64
	}{
		{
			name:      "Round to 2 decimal places",
			quantity:  1.23456789,
			precision: 2,
			expected:  1.23,
		},
		{
			name:      "Round to 0 decimal places",
			quantity:  1.23456789,
			precision: 0,
			expected:  1.0,
		},
		{
			name:      "Rounds down, not to nearest",
			quantity:  1.999,
			precision: 2,
			expected:  1.99,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Assert().Equal(tc.expected, RoundToDecimalPrecision(tc.quantity, tc.precision))
		})
	}
}
