package rng

import "math"

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// ID returns a random identifier in the range [1, MaxInt32]
// Zero is never returned so it can be used to mean "no player"
func ID(g Generator) int64 {
	return int64(g.Intn(math.MaxInt32)) + 1
}
