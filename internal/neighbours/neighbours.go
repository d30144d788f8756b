// Package neighbours precomputes, for each client, an ordered list of its
// k nearest other clients under a weighted proximity measure. Local
// search restricts candidate moves to these granular neighbourhoods
// rather than considering every client pair.
package neighbours

import (
	"sort"

	"github.com/routeforge/hgsvrp/internal/model"
)

// Config tunes neighbour-list construction.
type Config struct {
	K               int
	WeightDistance  float64
	WeightDuration  float64
	WeightTWOverlap float64
	Concurrency     int
}

// DefaultConfig returns the spec's default neighbour-list tuning.
func DefaultConfig() Config {
	return Config{
		K:               20,
		WeightDistance:  1,
		WeightDuration:  1,
		WeightTWOverlap: 1,
		Concurrency:     1,
	}
}

// List holds, for each client index, its ordered nearest-neighbour list.
// The relation is not symmetric: c2 in List.Of(c1) does not imply c1 in
// List.Of(c2).
type List struct {
	cfg   Config
	lists map[int][]int
}

// Of returns client c's ordered neighbour list. Callers must not mutate
// the returned slice.
func (l *List) Of(c int) []int { return l.lists[c] }

type candidate struct {
	client int
	score  float64
}

// proximity scores the cost of visiting b immediately after or before a,
// blending travel distance, travel duration and a time-window
// separation term: clients whose windows are far apart are poor
// granular neighbours even if geographically close.
func proximity(problem *model.ProblemData, profile, a, b int, cfg Config) float64 {
	dist := float64(problem.Distance(profile, a, b))
	dur := float64(problem.Duration(profile, a, b))
	la, lb := problem.Location(a), problem.Location(b)
	twSeparation := twGap(la, lb)
	return cfg.WeightDistance*dist + cfg.WeightDuration*dur + cfg.WeightTWOverlap*twSeparation
}

// twGap approximates how little two time windows overlap: zero when they
// fully overlap, and the gap between them otherwise.
func twGap(a, b model.Location) float64 {
	if a.TWEarly > b.TWLate {
		return float64(a.TWEarly - b.TWLate)
	}
	if b.TWEarly > a.TWLate {
		return float64(b.TWEarly - a.TWLate)
	}
	return 0
}

func buildOne(problem *model.ProblemData, c int, cfg Config) []int {
	profile := 0 // neighbour lists are profile-agnostic; callers filter incompatible edges during local search
	n := problem.NumLocations()
	candidates := make([]candidate, 0, n)
	for other := problem.NumDepots(); other < n; other++ {
		if other == c {
			continue
		}
		candidates = append(candidates, candidate{client: other, score: proximity(problem, profile, c, other, cfg)})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].score < candidates[j].score })

	k := cfg.K
	if k > len(candidates) {
		k = len(candidates)
	}
	out := make([]int, k)
	for i := 0; i < k; i++ {
		out[i] = candidates[i].client
	}
	return out
}
