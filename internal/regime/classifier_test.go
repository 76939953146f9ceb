package regime

import (
	"testing"

	"github.com/rxtech-lab/argo-brain/internal/types"
	"github.com/stretchr/testify/suite"
)

// ClassifierTestSuite is a test suite for the regime classifier
type ClassifierTestSuite struct {
	suite.Suite
	classifier *Classifier
}

// TestClassifierSuite runs the test suite
func TestClassifierSuite(t *testing.T) {
	suite.Run(t, new(ClassifierTestSuite))
}

func (suite *ClassifierTestSuite) SetupTest() {
	suite.classifier = NewClassifier(DefaultConfig())
}

func (suite *ClassifierTestSuite) TestClassify() {
	tests := []struct {
		name     string
		features types.FeatureSnapshot
		expected types.Regime
	}{
		{
			name:     "Quiet directionless market is chop",
			features: types.FeatureSnapshot{ATRPct: 0.004, ADX: 12},
			expected: types.RegimeChop,
		},
		{
			name:     "Chop boundary values are exclusive",
			features: types.FeatureSnapshot{ATRPct: 0.006, ADX: 18},
			expected: types.RegimeDistribution,
		},
		{
			name:     "High volatility with volume burst is squeeze",
			features: types.FeatureSnapshot{ATRPct: 0.02, VolumeZ: 2.0, ADX: 15},
			expected: types.RegimeSqueeze,
		},
		{
			name:     "Squeeze takes precedence over trend",
			features: types.FeatureSnapshot{ATRPct: 0.02, VolumeZ: 2.0, ADX: 35},
			expected: types.RegimeSqueeze,
		},
		{
			name:     "Strong directional movement is trend",
			features: types.FeatureSnapshot{ATRPct: 0.01, ADX: 30, VolumeZ: 0.5},
			expected: types.RegimeTrend,
		},
		{
			name:     "Trend boundary is exclusive",
			features: types.FeatureSnapshot{ATRPct: 0.01, ADX: 22},
			expected: types.RegimeDistribution,
		},
		{
			name:     "High volatility without volume is not squeeze",
			features: types.FeatureSnapshot{ATRPct: 0.02, VolumeZ: 0.8, ADX: 20},
			expected: types.RegimeDistribution,
		},
		{
			name:     "Nothing matching falls back to distribution",
			features: types.FeatureSnapshot{ATRPct: 0.01, ADX: 20, VolumeZ: 0},
			expected: types.RegimeDistribution,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			result := suite.classifier.Classify(tc.features)
			suite.Assert().Equal(tc.expected, result)
		})
	}
}

func (suite *ClassifierTestSuite) TestClassifyCustomConfig() {
	classifier := NewClassifier(Config{
		ChopMaxATRPct:     0.01,
		ChopMaxADX:        25,
		SqueezeMinATRPct:  0.05,
		SqueezeMinVolumeZ: 3.0,
		TrendMinADX:       50,
	})

	// These features are a trend under the defaults but chop under the wider
	// custom thresholds.
	result := classifier.Classify(types.FeatureSnapshot{ATRPct: 0.008, ADX: 24})
	suite.Assert().Equal(types.RegimeChop, result)
}
