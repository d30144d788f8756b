// Package localsearch implements the granular-neighbourhood descent:
// node and route operators applied until a full pass makes no further
// change, in two feasibility modes per §4.4.
package localsearch

import (
	"github.com/routeforge/hgsvrp/internal/costeval"
	"github.com/routeforge/hgsvrp/internal/model"
	"github.com/routeforge/hgsvrp/internal/neighbours"
	"github.com/routeforge/hgsvrp/internal/rng"
	"github.com/routeforge/hgsvrp/internal/solution"
)

// Mode selects whether the control loop applies the first improving move
// found, or searches exhaustively for the best one, per client.
type Mode int

const (
	ModeFirst Mode = iota
	ModeBest
)

// Config tunes the local search engine.
type Config struct {
	Mode              Mode
	RepairProbability float64
}

// DefaultConfig returns the spec's default local search tuning.
func DefaultConfig() Config {
	return Config{Mode: ModeFirst, RepairProbability: 0.5}
}

// Engine runs the granular neighbourhood descent for one solver instance.
type Engine struct {
	problem   *model.ProblemData
	nbrs      *neighbours.List
	evaluator *costeval.CostEvaluator
	rng       *rng.RNG
	cfg       Config
}

// New returns a local search Engine.
func New(problem *model.ProblemData, nbrs *neighbours.List, evaluator *costeval.CostEvaluator, r *rng.RNG, cfg Config) *Engine {
	return &Engine{problem: problem, nbrs: nbrs, evaluator: evaluator, rng: r, cfg: cfg}
}

// Educate runs local search to a fixed point starting from state,
// following the two-pass feasibility protocol of §4.4: a relaxed pass
// that may accept infeasible intermediate moves, followed — with
// probability RepairProbability, if the relaxed result is infeasible —
// by a feasibility-enforced pass starting from the relaxed result.
func (e *Engine) Educate(state *State) *solution.Solution {
	relaxed := e.descend(state.Clone(), false)
	relaxedSol := relaxed.ToSolution(e.problem)
	if relaxedSol.IsFeasible() {
		return relaxedSol
	}
	if e.rng.Float64() >= e.cfg.RepairProbability {
		return relaxedSol
	}

	repaired := e.descend(relaxed.Clone(), true)
	repairedSol := repaired.ToSolution(e.problem)
	if repairedSol.IsFeasible() || e.evaluator.PenalizedCost(repairedSol) < e.evaluator.PenalizedCost(relaxedSol) {
		return repairedSol
	}
	return relaxedSol
}

// descend runs node, route-pair and depot operator passes until a full
// cycle makes no change; it returns the resulting state (mutated in
// place for convenience, but callers should treat the return value as
// authoritative).
func (e *Engine) descend(state *State, enforceFeasible bool) *State {
	for {
		changed := e.nodePass(state, enforceFeasible)
		changed = e.routePass(state, enforceFeasible) || changed
		changed = e.depotPass(state, enforceFeasible) || changed
		if !changed {
			return state
		}
	}
}

func (e *Engine) cost(s *State) int64 {
	return e.evaluator.PenalizedCost(s.ToSolution(e.problem))
}

func (e *Engine) isFeasible(s *State) bool {
	return s.ToSolution(e.problem).IsFeasible()
}

// nodePass runs one full permuted sweep of the node operators (1-9).
func (e *Engine) nodePass(state *State, enforceFeasible bool) bool {
	clients := make([]int, 0, e.problem.NumClients())
	for c := e.problem.NumDepots(); c < e.problem.NumLocations(); c++ {
		clients = append(clients, c)
	}
	order := e.rng.Perm(len(clients))

	anyChange := false
	for _, idx := range order {
		u := clients[idx]
		if _, _, ok := locate(state.Routes, u); !ok {
			continue
		}
		if e.tryMovesForClient(state, u, enforceFeasible) {
			anyChange = true
		}
	}
	return anyChange
}

func (e *Engine) tryMovesForClient(state *State, u int, enforceFeasible bool) bool {
	baseline := e.cost(state)

	var bestTrial *State
	bestCost := baseline

	for _, v := range e.nbrs.Of(u) {
		if _, _, ok := locate(state.Routes, v); !ok {
			continue
		}
		for _, op := range AllNodeOperators {
			trial := state.Clone()
			if !Apply(e.problem, trial, op, u, v) {
				continue
			}
			if enforceFeasible && !e.isFeasible(trial) {
				continue
			}
			trialCost := e.cost(trial)
			if trialCost < bestCost {
				bestCost = trialCost
				bestTrial = trial
				if e.cfg.Mode == ModeFirst {
					*state = *bestTrial
					return true
				}
			}
		}
	}

	if bestTrial != nil {
		*state = *bestTrial
		return true
	}
	return false
}

// routePass tries the route-level RELOCATE_STAR operator between every
// ordered pair of distinct routes. SWAP_TAILS is not tried here; the same
// tail exchange is covered by OpTwoOptStar in nodePass.
func (e *Engine) routePass(state *State, enforceFeasible bool) bool {
	anyChange := false
	for i := 0; i < len(state.Routes); i++ {
		for j := 0; j < len(state.Routes); j++ {
			if i == j {
				continue
			}
			if e.tryRouteMove(state, i, j, enforceFeasible) {
				anyChange = true
			}
		}
	}
	return anyChange
}

func (e *Engine) tryRouteMove(state *State, from, to int, enforceFeasible bool) bool {
	baseline := e.cost(state)

	trial := state.Clone()
	if RelocateStar(e.problem, trial, from, to) {
		if !enforceFeasible || e.isFeasible(trial) {
			if e.cost(trial) < baseline {
				*state = *trial
				return true
			}
		}
	}
	return false
}

// depotPass tries inserting a reload-depot visit at the route's midpoint
// and removing existing mid-route depot visits, for every route whose
// vehicle type permits reloads. Other insertion positions and
// RelocateReloadDepot are not tried.
func (e *Engine) depotPass(state *State, enforceFeasible bool) bool {
	anyChange := false
	for ri, r := range state.Routes {
		vt := r.VehicleType()
		if vt.MaxReloads <= 0 || len(vt.ReloadDepots) == 0 {
			continue
		}
		baseline := e.cost(state)

		for _, depot := range vt.ReloadDepots {
			mid := state.Routes[ri].Len() / 2
			if mid <= 0 {
				continue
			}
			trial := state.Clone()
			if InsertReloadDepot(e.problem, trial, ri, mid, depot) {
				if (!enforceFeasible || e.isFeasible(trial)) && e.cost(trial) < baseline {
					*state = *trial
					anyChange = true
					baseline = e.cost(state)
				}
			}
		}

		for pos := 1; pos < state.Routes[ri].Len()-1; pos++ {
			if !e.problem.IsDepotIndex(state.Routes[ri].Visits()[pos]) {
				continue
			}
			trial := state.Clone()
			if RemoveReloadDepot(e.problem, trial, ri, pos) {
				if (!enforceFeasible || e.isFeasible(trial)) && e.cost(trial) < baseline {
					*state = *trial
					anyChange = true
					baseline = e.cost(state)
				}
			}
		}
	}
	return anyChange
}
