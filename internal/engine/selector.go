package engine

import (
	"math"
	"sort"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-brain/internal/types"
)

// SelectorConfig holds the candidate-filter thresholds.
type SelectorConfig struct {
	// MinConfidence excludes candidates whose statistics are too thin to act
	// on.
	MinConfidence float64 `yaml:"min_confidence" json:"min_confidence" jsonschema:"minimum=0,maximum=1"`
}

func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{
		MinConfidence: 0.2,
	}
}

// Selector picks the single best candidate by composite score, or none when no
// candidate has positive EV and sufficient confidence.
type Selector struct {
	config SelectorConfig
}

func NewSelector(config SelectorConfig) *Selector {
	return &Selector{config: config}
}

// compositeScore blends EV with confidence, win rate and the realized
// reward/risk ratio.
func compositeScore(s types.StrategyStats) float64 {
	score := s.EV * math.Sqrt(s.Confidence)

	switch {
	case s.WinRate > 0.55:
		score *= 1.2
	case s.WinRate > 0.50:
		score *= 1.1
	case s.WinRate < 0.40:
		score *= 0.8
	}

	if s.AvgLoss > 0 {
		rr := s.AvgWin / s.AvgLoss
		if rr > 2.0 {
			score *= 1.15
		} else if rr > 1.5 {
			score *= 1.05
		}
	}

	return score
}

// SelectBest returns the candidate with the maximum composite score. Equal
// scores break toward the lexicographically smaller strategy name so the
// choice never depends on evaluation order.
func (sel *Selector) SelectBest(candidates []types.StrategyStats) optional.Option[types.StrategyStats] {
	valid := sel.filter(candidates)
	if len(valid) == 0 {
		return optional.None[types.StrategyStats]()
	}

	best := valid[0]
	bestScore := compositeScore(best)

	for _, candidate := range valid[1:] {
		score := compositeScore(candidate)
		if score > bestScore || (score == bestScore && candidate.Name < best.Name) {
			best = candidate
			bestScore = score
		}
	}

	return optional.Some(best)
}

// Rank returns up to topN valid candidates ordered by descending composite
// score, names ascending on ties.
func (sel *Selector) Rank(candidates []types.StrategyStats, topN int) []types.StrategyStats {
	valid := sel.filter(candidates)

	sort.SliceStable(valid, func(i, j int) bool {
		si, sj := compositeScore(valid[i]), compositeScore(valid[j])
		if si != sj {
			return si > sj
		}

		return valid[i].Name < valid[j].Name
	})

	if len(valid) > topN {
		valid = valid[:topN]
	}

	return valid
}

func (sel *Selector) filter(candidates []types.StrategyStats) []types.StrategyStats {
	var valid []types.StrategyStats

	for _, candidate := range candidates {
		if candidate.EV > 0 && candidate.Confidence > sel.config.MinConfidence {
			valid = append(valid, candidate)
		}
	}

	return valid
}
