// Package population manages the two biased-fitness sub-populations
// (feasible and infeasible) that drive parent selection, offspring
// insertion, diversity-aware culling and periodic restart.
package population

import (
	"sort"

	"github.com/routeforge/hgsvrp/internal/costeval"
	"github.com/routeforge/hgsvrp/internal/rng"
	"github.com/routeforge/hgsvrp/internal/solution"
)

// Config tunes population sizing and fitness blending.
type Config struct {
	MuMin  int
	MuGen  int
	NElite int
}

// DefaultConfig returns the spec's default population tuning.
func DefaultConfig() Config {
	return Config{MuMin: 25, MuGen: 40, NElite: 5}
}

func (c Config) capacity() int { return c.MuMin + c.MuGen }

// subPopulation holds one feasible-or-infeasible pool of individuals.
type subPopulation struct {
	individuals []*solution.Solution
}

// Population is the two feasible/infeasible sub-populations the GA loop
// selects parents from and inserts offspring into.
type Population struct {
	cfg        Config
	evaluator  *costeval.CostEvaluator
	feasible   subPopulation
	infeasible subPopulation
}

// New returns an empty Population.
func New(evaluator *costeval.CostEvaluator, cfg Config) *Population {
	return &Population{cfg: cfg, evaluator: evaluator}
}

// Size returns the combined size of both sub-populations.
func (p *Population) Size() int { return len(p.feasible.individuals) + len(p.infeasible.individuals) }

// FeasibleSize returns the feasible sub-population's size.
func (p *Population) FeasibleSize() int { return len(p.feasible.individuals) }

// InfeasibleSize returns the infeasible sub-population's size.
func (p *Population) InfeasibleSize() int { return len(p.infeasible.individuals) }

// All returns every individual across both sub-populations, used for
// tournament parent selection over their union.
func (p *Population) All() []*solution.Solution {
	out := make([]*solution.Solution, 0, p.Size())
	out = append(out, p.feasible.individuals...)
	out = append(out, p.infeasible.individuals...)
	return out
}

// BestFeasible returns the lowest-cost feasible individual, or nil if
// the feasible sub-population is empty.
func (p *Population) BestFeasible() *solution.Solution {
	return p.bestOf(p.feasible.individuals)
}

// BestInfeasible returns the lowest-penalised-cost infeasible individual,
// or nil if the infeasible sub-population is empty.
func (p *Population) BestInfeasible() *solution.Solution {
	return p.bestOf(p.infeasible.individuals)
}

func (p *Population) bestOf(individuals []*solution.Solution) *solution.Solution {
	if len(individuals) == 0 {
		return nil
	}
	best := individuals[0]
	bestCost := p.evaluator.PenalizedCost(best)
	for _, s := range individuals[1:] {
		c := p.evaluator.PenalizedCost(s)
		if c < bestCost {
			best, bestCost = s, c
		}
	}
	return best
}

// Insert adds sol to the sub-population matching its feasibility. If that
// sub-population now exceeds capacity (MuMin+MuGen), it is purged back
// down to MuMin individuals.
func (p *Population) Insert(sol *solution.Solution) {
	if sol.IsFeasible() {
		p.feasible.individuals = append(p.feasible.individuals, sol)
		p.cull(&p.feasible)
	} else {
		p.infeasible.individuals = append(p.infeasible.individuals, sol)
		p.cull(&p.infeasible)
	}
}

// cull only fires once a sub-population exceeds capacity (MuMin+MuGen),
// but then purges all the way back down to MuMin rather than merely back
// under capacity, per §4.6's "remove the worst individual, recomputing
// after each removal, until size = MuMin".
func (p *Population) cull(sp *subPopulation) {
	if len(sp.individuals) <= p.cfg.capacity() {
		return
	}
	for len(sp.individuals) > p.cfg.MuMin {
		fitness := p.biasedFitness(sp.individuals)
		worst := 0
		for i := 1; i < len(fitness); i++ {
			if fitness[i] > fitness[worst] {
				worst = i
			}
		}
		sp.individuals = append(sp.individuals[:worst], sp.individuals[worst+1:]...)
	}
}

// biasedFitness returns, parallel to individuals, fitness(s) =
// rankCost(s)/n + (1 - nElite/n)·rankDiv(s)/n, where rankCost is the
// 1-based ascending cost rank and rankDiv is the 1-based descending rank
// by average broken-pairs distance to the nElite closest neighbours.
func (p *Population) biasedFitness(individuals []*solution.Solution) []float64 {
	n := len(individuals)
	if n == 0 {
		return nil
	}
	nElite := p.cfg.NElite
	if nElite > n {
		nElite = n
	}
	if nElite < 1 {
		nElite = 1
	}

	costs := make([]int64, n)
	for i, s := range individuals {
		costs[i] = p.evaluator.PenalizedCost(s)
	}
	costRank := rankAscending(costs)

	diversity := make([]float64, n)
	for i := range individuals {
		diversity[i] = averageDistanceToClosest(individuals, i, nElite)
	}
	divRank := rankDescendingFloat(diversity)

	fitness := make([]float64, n)
	for i := 0; i < n; i++ {
		fitness[i] = float64(costRank[i])/float64(n) + (1-float64(nElite)/float64(n))*float64(divRank[i])/float64(n)
	}
	return fitness
}

func averageDistanceToClosest(individuals []*solution.Solution, i, nElite int) float64 {
	dists := make([]float64, 0, len(individuals)-1)
	for j, other := range individuals {
		if i == j {
			continue
		}
		dists = append(dists, individuals[i].BrokenPairsDistance(other))
	}
	sort.Float64s(dists)
	if nElite > len(dists) {
		nElite = len(dists)
	}
	if nElite == 0 {
		return 0
	}
	var sum float64
	for k := 0; k < nElite; k++ {
		sum += dists[k]
	}
	return sum / float64(nElite)
}

// rankAscending returns each element's 1-based rank by ascending value.
func rankAscending(values []int64) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })
	ranks := make([]int, len(values))
	for r, i := range idx {
		ranks[i] = r + 1
	}
	return ranks
}

// rankDescendingFloat returns each element's 1-based rank by descending
// value (the largest value gets rank 1).
func rankDescendingFloat(values []float64) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return values[idx[a]] > values[idx[b]] })
	ranks := make([]int, len(values))
	for r, i := range idx {
		ranks[i] = r + 1
	}
	return ranks
}

// TournamentSelect picks the better (by biased fitness) of two
// uniformly-random individuals drawn from the union of both
// sub-populations.
func (p *Population) TournamentSelect(r *rng.RNG) *solution.Solution {
	all := p.All()
	if len(all) == 0 {
		return nil
	}
	fitness := p.biasedFitness(all)
	i := r.Intn(len(all))
	j := r.Intn(len(all))
	if fitness[i] <= fitness[j] {
		return all[i]
	}
	return all[j]
}

// Restart clears both sub-populations. The caller is responsible for
// reseeding with fresh random solutions and resetting penalty
// coefficients to their defaults.
func (p *Population) Restart() {
	p.feasible.individuals = nil
	p.infeasible.individuals = nil
}
