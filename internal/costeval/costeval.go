// Package costeval implements the penalised objective function and the
// mutable penalty coefficients that drive feasibility-aware local search
// and penalty self-adaptation between generations.
package costeval

import (
	"math"

	"github.com/routeforge/hgsvrp/internal/logging"
	"github.com/routeforge/hgsvrp/internal/model"
	"github.com/routeforge/hgsvrp/internal/solution"
)

// Penalties holds the four mutable, non-negative penalty coefficients.
// It is a single plain record owned by the GA loop and passed by
// reference into the CostEvaluator; it changes only at generation
// boundaries, never during local search.
type Penalties struct {
	Load     float64
	TimeWarp float64
	Distance float64
	Duration float64
}

// Config tunes the penalty self-adaptation behaviour.
type Config struct {
	Target     float64 // τ, target feasible fraction
	Epsilon    float64
	Rate       float64 // r
	Decay      float64 // multiplicative decay applied to Rate each adaptation
	LambdaMin  float64
	LambdaMax  float64
	WindowSize int
}

// DefaultConfig returns the spec's default penalty-adaptation tuning.
func DefaultConfig() Config {
	return Config{
		Target:     0.2,
		Epsilon:    0.02,
		Rate:       0.3,
		Decay:      1.0, // no decay by default
		LambdaMin:  0.1,
		LambdaMax:  10000,
		WindowSize: 100,
	}
}

// CostEvaluator combines distance, load excess, time-warp, prize and
// fixed cost into a single penalised objective.
type CostEvaluator struct {
	problem   *model.ProblemData
	penalties *Penalties
	cfg       Config
	rate      float64

	loadWindow     *slidingWindow
	timeWarpWindow *slidingWindow
	distWindow     *slidingWindow
	durWindow      *slidingWindow
}

// New returns a CostEvaluator sharing the given Penalties record (owned
// by the caller, typically the GA loop) and tuned by cfg.
func New(problem *model.ProblemData, penalties *Penalties, cfg Config) *CostEvaluator {
	return &CostEvaluator{
		problem:        problem,
		penalties:      penalties,
		cfg:            cfg,
		rate:           cfg.Rate,
		loadWindow:     newSlidingWindow(cfg.WindowSize),
		timeWarpWindow: newSlidingWindow(cfg.WindowSize),
		distWindow:     newSlidingWindow(cfg.WindowSize),
		durWindow:      newSlidingWindow(cfg.WindowSize),
	}
}

// Penalties returns the evaluator's shared penalty record.
func (e *CostEvaluator) Penalties() *Penalties { return e.penalties }

// PenalizedCost returns the full penalised objective of sol.
func (e *CostEvaluator) PenalizedCost(sol *solution.Solution) int64 {
	var fixedCost, distCost, durCost int64
	for _, r := range sol.Routes() {
		vt := r.VehicleType()
		if r.NumClients() > 0 {
			fixedCost += vt.FixedCost
		}
		distCost += vt.UnitDistanceCost * r.Distance()
		durCost += vt.UnitDurationCost * r.DurationValue()
	}

	cost := fixedCost + distCost + durCost - sol.PrizeCollected()
	cost += int64(e.penalties.Load * float64(sol.ExcessLoad()))
	cost += int64(e.penalties.TimeWarp * float64(sol.TimeWarp()))
	cost += int64(e.penalties.Distance * float64(sol.ExcessDistance()))
	cost += int64(e.penalties.Duration * float64(sol.ExcessDuration()))

	for _, c := range sol.Unassigned() {
		cost += int64(e.penalties.Load * float64(requiredPenaltyUnit(e.problem, c)))
	}

	for range sol.GroupViolations() {
		cost += int64(e.penalties.Load * float64(groupViolationPenaltyUnit()))
	}

	return cost
}

// groupViolationPenaltyUnit charges the same heavy, load-penalty-scaled
// cost as an unassigned required client for each group with more than one
// member present, in case the hard constraints in construction and
// repair (RandomInitial, crossover's greedy reinsertion) are ever
// bypassed.
func groupViolationPenaltyUnit() int64 {
	return 1 << 20
}

// requiredPenaltyUnit charges a heavy, load-penalty-scaled cost for each
// unassigned required client, so the evaluator always prefers assigning
// required clients over leaving them out, while still being driven down
// by the same adapting coefficient as excess load.
func requiredPenaltyUnit(problem *model.ProblemData, client int) int64 {
	_ = problem
	_ = client
	return 1 << 20
}

// FeasibleCost returns PenalizedCost(sol) if sol is feasible, or
// math.MaxInt64 otherwise. Move deltas and best-solution tracking must
// use FeasibleCost when only feasible solutions are acceptable.
func (e *CostEvaluator) FeasibleCost(sol *solution.Solution) int64 {
	if !sol.IsFeasible() {
		return math.MaxInt64
	}
	return e.PenalizedCost(sol)
}

// RecordOffspring updates the sliding-window feasibility trackers with a
// new offspring's per-dimension feasibility. Unassigned required clients
// count against the load dimension, whose coefficient also scales their
// penalty in PenalizedCost.
func (e *CostEvaluator) RecordOffspring(sol *solution.Solution) {
	e.loadWindow.push(sol.ExcessLoad() == 0 && len(sol.Unassigned()) == 0)
	e.timeWarpWindow.push(sol.TimeWarp() == 0)
	e.distWindow.push(sol.ExcessDistance() == 0)
	e.durWindow.push(sol.ExcessDuration() == 0)
}

// AdaptPenalties adjusts each penalty coefficient independently based on
// its sliding-window feasible fraction versus the target τ, and applies
// the configured rate decay. logger may be nil.
func (e *CostEvaluator) AdaptPenalties(logger *logging.Logger) {
	e.adaptOne("load", &e.penalties.Load, e.loadWindow.fraction(), logger)
	e.adaptOne("time_warp", &e.penalties.TimeWarp, e.timeWarpWindow.fraction(), logger)
	e.adaptOne("distance", &e.penalties.Distance, e.distWindow.fraction(), logger)
	e.adaptOne("duration", &e.penalties.Duration, e.durWindow.fraction(), logger)
	e.rate *= e.cfg.Decay
}

func (e *CostEvaluator) adaptOne(name string, lambda *float64, feasibleFraction float64, logger *logging.Logger) {
	old := *lambda
	switch {
	case feasibleFraction < e.cfg.Target-e.cfg.Epsilon:
		*lambda *= 1 + e.rate
	case feasibleFraction > e.cfg.Target+e.cfg.Epsilon:
		*lambda /= 1 + e.rate
	default:
		return
	}
	if *lambda < e.cfg.LambdaMin {
		*lambda = e.cfg.LambdaMin
	}
	if *lambda > e.cfg.LambdaMax {
		*lambda = e.cfg.LambdaMax
	}
	if logger != nil && *lambda != old {
		logger.LogPenaltyAdjustment(name, old, *lambda, feasibleFraction)
	}
}

// DefaultPenalties returns a starting Penalties record with every
// coefficient at 1.0.
func DefaultPenalties() *Penalties {
	return &Penalties{Load: 1, TimeWarp: 1, Distance: 1, Duration: 1}
}
