package engine

// CooldownTracker is a per-strategy countdown gating re-evaluation after a
// loss. A strategy is active while its counter is zero and cooling while it is
// positive; a losing close adds PenaltySteps, and every evaluation pass that
// skips a cooling strategy also decrements its counter. Absent keys read as
// zero.
type CooldownTracker struct {
	penaltySteps int
	counters     map[string]int
}

// NewCooldownTracker creates a tracker that punishes a loss with penaltySteps
// skipped evaluations.
func NewCooldownTracker(penaltySteps int) *CooldownTracker {
	return &CooldownTracker{
		penaltySteps: penaltySteps,
		counters:     make(map[string]int),
	}
}

// Punish puts the strategy into (or deeper into) cooldown.
func (c *CooldownTracker) Punish(strategy string) {
	c.counters[strategy] += c.penaltySteps
}

// Tick reports whether the strategy is cooling and must be skipped this step,
// decrementing the counter when it is.
func (c *CooldownTracker) Tick(strategy string) bool {
	if c.counters[strategy] > 0 {
		c.counters[strategy]--

		return true
	}

	return false
}

// Remaining returns the number of steps the strategy will still be skipped.
func (c *CooldownTracker) Remaining(strategy string) int {
	return c.counters[strategy]
}
