// Package ga orchestrates the hybrid genetic search loop: parent
// selection, crossover, education, insertion, penalty adaptation and
// restart, polling a stopping criterion at each generation boundary.
package ga

import (
	"time"

	"github.com/routeforge/hgsvrp/internal/costeval"
	"github.com/routeforge/hgsvrp/internal/crossover"
	"github.com/routeforge/hgsvrp/internal/localsearch"
	"github.com/routeforge/hgsvrp/internal/logging"
	"github.com/routeforge/hgsvrp/internal/model"
	"github.com/routeforge/hgsvrp/internal/neighbours"
	"github.com/routeforge/hgsvrp/internal/population"
	"github.com/routeforge/hgsvrp/internal/rng"
	"github.com/routeforge/hgsvrp/internal/solution"
	"github.com/routeforge/hgsvrp/internal/stopping"
)

// Config tunes the genetic algorithm loop itself; sub-component tuning
// (penalties, neighbour lists, local search, population sizing) is
// passed through from their own Config types.
type Config struct {
	Seed              int64
	RestartThreshold  int
	InitialPopulation int
}

// DefaultConfig returns the spec's default GA-loop tuning.
func DefaultConfig() Config {
	return Config{Seed: 1, RestartThreshold: 20000, InitialPopulation: 50}
}

// GeneticAlgorithm owns every sub-component for one solver run: the
// population, local search engine, cost evaluator, neighbour lists and
// the single seeded PRNG they all share.
type GeneticAlgorithm struct {
	problem    *model.ProblemData
	rng        *rng.RNG
	evaluator  *costeval.CostEvaluator
	nbrs       *neighbours.List
	engine     *localsearch.Engine
	population *population.Population
	cfg        Config
	logger     *logging.Logger
	monitor    *logging.GenerationMonitor
	progress   *logging.ProgressThrottle
	stats      *StatsCollector

	genSinceImprovement int
	bestSeen            int64
	haveBest            bool
}

// New wires together a GeneticAlgorithm from its already-constructed
// sub-components.
func New(problem *model.ProblemData, nbrs *neighbours.List, evaluator *costeval.CostEvaluator, engine *localsearch.Engine, pop *population.Population, r *rng.RNG, cfg Config, logger *logging.Logger) *GeneticAlgorithm {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &GeneticAlgorithm{
		problem:    problem,
		rng:        r,
		evaluator:  evaluator,
		nbrs:       nbrs,
		engine:     engine,
		population: pop,
		cfg:        cfg,
		logger:     logger,
		monitor:    logging.NewGenerationMonitor(logger, 0),
		progress:   logging.NewProgressThrottle(time.Second),
		stats:      NewStatsCollector(),
	}
}

// Stats returns the run's per-generation statistics collector.
func (g *GeneticAlgorithm) Stats() *StatsCollector { return g.stats }

// Run seeds an initial population and iterates generations until
// criterion.ShouldStop reports true, returning the best feasible
// solution found, or the best infeasible (penalised) solution if no
// feasible solution was ever produced.
func (g *GeneticAlgorithm) Run(criterion stopping.Criterion) *solution.Solution {
	g.seedPopulation()

	var bestFeasible *solution.Solution
	gen := 0
	for {
		start := time.Now()
		g.runGeneration()
		gen++
		duration := time.Since(start)

		best := g.bestCost()
		g.stats.Record(gen, g.population, g.evaluator, duration)
		g.monitor.Observe(gen, duration)
		if g.progress.Allow() {
			g.logger.LogGeneration(gen, g.feasibleCost(), g.infeasibleCost(), g.population.FeasibleSize(), g.population.InfeasibleSize(), duration)
		}

		if bf := g.population.BestFeasible(); bf != nil && (bestFeasible == nil || g.evaluator.PenalizedCost(bf) < g.evaluator.PenalizedCost(bestFeasible)) {
			bestFeasible = bf
		}

		g.trackImprovement(best)
		if g.genSinceImprovement >= g.cfg.RestartThreshold {
			g.restart(gen)
		}

		if criterion.ShouldStop(best) {
			break
		}
	}

	if bestFeasible != nil {
		return bestFeasible
	}
	return g.finalBest()
}

func (g *GeneticAlgorithm) runGeneration() {
	p1 := g.population.TournamentSelect(g.rng)
	p2 := g.population.TournamentSelect(g.rng)
	if p1 == nil || p2 == nil {
		return
	}

	var offspring crossover.Offspring
	if g.useOX() {
		offspring = crossover.OX(g.problem, p1, p2, g.rng)
	} else {
		offspring = crossover.SREX(g.problem, p1, p2, g.rng)
	}

	state := &localsearch.State{Routes: offspring.Routes, Unassigned: offspring.Unassigned}
	educated := g.engine.Educate(state)

	g.evaluator.RecordOffspring(educated)
	g.population.Insert(educated)
	g.evaluator.AdaptPenalties(g.logger)
}

// useOX reports whether the instance is symmetric enough (a single
// vehicle type) for ordered crossover; SREX is used otherwise.
func (g *GeneticAlgorithm) useOX() bool {
	return len(g.problem.VehicleTypes()) == 1
}

func (g *GeneticAlgorithm) bestCost() int64 {
	if bf := g.population.BestFeasible(); bf != nil {
		return g.evaluator.PenalizedCost(bf)
	}
	if bi := g.population.BestInfeasible(); bi != nil {
		return g.evaluator.PenalizedCost(bi)
	}
	return 0
}

func (g *GeneticAlgorithm) feasibleCost() int64 {
	if bf := g.population.BestFeasible(); bf != nil {
		return g.evaluator.PenalizedCost(bf)
	}
	return 0
}

func (g *GeneticAlgorithm) infeasibleCost() int64 {
	if bi := g.population.BestInfeasible(); bi != nil {
		return g.evaluator.PenalizedCost(bi)
	}
	return 0
}

func (g *GeneticAlgorithm) trackImprovement(best int64) {
	if !g.haveBest || best < g.bestSeen {
		g.bestSeen = best
		g.haveBest = true
		g.genSinceImprovement = 0
		return
	}
	g.genSinceImprovement++
}

func (g *GeneticAlgorithm) restart(gen int) {
	g.logger.LogRestart(gen, "no improvement threshold reached")
	g.population.Restart()
	*g.evaluator.Penalties() = *costeval.DefaultPenalties()
	g.genSinceImprovement = 0
	g.haveBest = false
	g.seedPopulation()
}

func (g *GeneticAlgorithm) seedPopulation() {
	for i := 0; i < g.cfg.InitialPopulation; i++ {
		state := RandomInitial(g.problem, g.rng)
		educated := g.engine.Educate(state)
		g.evaluator.RecordOffspring(educated)
		g.population.Insert(educated)
	}
}

func (g *GeneticAlgorithm) finalBest() *solution.Solution {
	if bf := g.population.BestFeasible(); bf != nil {
		return bf
	}
	return g.population.BestInfeasible()
}
