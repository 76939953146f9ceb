package engine

import (
	"github.com/rxtech-lab/argo-brain/internal/types"
)

type historyKey struct {
	strategy string
	regime   types.Regime
}

// History is a bounded, append-only record of realized trade outcomes keyed by
// (strategy, regime). Each key holds a fixed-capacity FIFO sequence: insertion
// order is preserved and the oldest entry is evicted beyond capacity. Reads on
// an absent key return an empty sequence. The history is owned by a single
// engine instance; there are no external writers.
type History struct {
	capacity int
	store    map[historyKey][]types.TradeOutcome
}

// NewHistory creates a history with the given per-key capacity.
func NewHistory(capacity int) *History {
	return &History{
		capacity: capacity,
		store:    make(map[historyKey][]types.TradeOutcome),
	}
}

// Add appends an outcome, evicting the oldest entry once the key is at
// capacity.
func (h *History) Add(strategy string, regime types.Regime, outcome types.TradeOutcome) {
	key := historyKey{strategy: strategy, regime: regime}

	seq := h.store[key]
	if len(seq) >= h.capacity {
		seq = seq[1:]
	}

	h.store[key] = append(seq, outcome)
}

// Get returns the current sequence for the key in insertion order. The
// returned slice is a copy; callers cannot mutate the stored history.
func (h *History) Get(strategy string, regime types.Regime) []types.TradeOutcome {
	seq := h.store[historyKey{strategy: strategy, regime: regime}]

	out := make([]types.TradeOutcome, len(seq))
	copy(out, seq)

	return out
}
