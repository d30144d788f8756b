// Package rng provides the single seeded PRNG used throughout one solver
// run: neighbour shuffling, parent selection, operator ordering and
// restarts all draw from this one source, never from package-level or
// thread-local randomness.
package rng

import "math/rand"

// RNG wraps a seeded *rand.Rand so the rest of the solver never imports
// math/rand directly, keeping every non-deterministic draw traceable to
// one instance per solver run.
type RNG struct {
	r *rand.Rand
}

// New returns an RNG seeded deterministically from seed.
func New(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Intn returns a pseudo-random int in [0, n).
func (g *RNG) Intn(n int) int { return g.r.Intn(n) }

// Float64 returns a pseudo-random float64 in [0.0, 1.0).
func (g *RNG) Float64() float64 { return g.r.Float64() }

// Perm returns a pseudo-random permutation of [0, n).
func (g *RNG) Perm(n int) []int { return g.r.Perm(n) }

// Shuffle randomizes the order of elements using the swap function.
func (g *RNG) Shuffle(n int, swap func(i, j int)) { g.r.Shuffle(n, swap) }
