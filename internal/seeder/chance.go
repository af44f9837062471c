package seeder

import (
	"math/rand"
	"sync"
	"time"
)

// ChanceSource is the random source behind every probabilistic decision
// the generators make. Seeding it makes a generation run reproducible.
type ChanceSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewChanceSource creates a chance source. A zero seed picks a
// time-based seed.
func NewChanceSource(seed int64) *ChanceSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &ChanceSource{rng: rand.New(rand.NewSource(seed))}
}

// Happens performs a Bernoulli draw against a percentage in [0,100]
func (c *ChanceSource) Happens(percent int) bool {
	if percent <= 0 {
		return false
	}
	if percent >= 100 {
		return true
	}
	return c.Between(1, 100) <= percent
}

// Between returns a uniform integer in [min, max] inclusive
func (c *ChanceSource) Between(min, max int) int {
	if max <= min {
		return min
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return min + c.rng.Intn(max-min+1)
}

// Intn returns a uniform integer in [0, n)
func (c *ChanceSource) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Intn(n)
}

// Shuffle pseudo-randomizes the order of n elements
func (c *ChanceSource) Shuffle(n int, swap func(i, j int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rng.Shuffle(n, swap)
}

// Pick returns a random element of values, or "" when empty
func (c *ChanceSource) Pick(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[c.Intn(len(values))]
}
