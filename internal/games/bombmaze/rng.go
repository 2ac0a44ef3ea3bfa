package bombmaze

// SimpleRNG is a deterministic pseudo-random number generator.
// Uses a 64-bit LCG. The whole state is one word, so copying a World
// copies its random stream too.
type SimpleRNG struct {
	state uint64
}

// NewSimpleRNG creates a new RNG with the given seed.
func NewSimpleRNG(seed int64) *SimpleRNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &SimpleRNG{state: s}
}

// Next generates the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	// High bits of an LCG are far better distributed than the low ones.
	return int((r.Next() >> 33) % uint64(n)) //#nosec G115 -- n is always positive
}

// Float64 returns a random float64 in [0, 1).
func (r *SimpleRNG) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Chance returns true with probability p.
func (r *SimpleRNG) Chance(p float64) bool {
	return r.Float64() < p
}

// Shuffle permutes n elements in place with Fisher-Yates.
func (r *SimpleRNG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, r.Intn(i+1))
	}
}

// State returns the raw generator state for snapshots.
func (r *SimpleRNG) State() uint64 {
	return r.state
}
