// Package solution implements the immutable Solution aggregate: a
// snapshot of routes plus unassigned clients with precomputed totals and
// an O(1) neighbour-of-client lookup table.
package solution

import (
	"github.com/google/uuid"

	"github.com/routeforge/hgsvrp/internal/model"
	"github.com/routeforge/hgsvrp/internal/route"
)

// NeighborInfo locates a client within a solution: which route it is on
// and its immediate predecessor/successor location indices.
type NeighborInfo struct {
	RouteIndex int
	Position   int
	Pred       int
	Succ       int
}

// Solution is an immutable snapshot of a full routing plan.
type Solution struct {
	ID         string
	problem    *model.ProblemData
	routes     []*route.Route
	unassigned []int

	distance        int64
	durationCost    int64
	excessLoad      int64
	excessDuration  int64
	excessDistance  int64
	timeWarp        int64
	prizeCollected  int64
	feasible        bool
	groupViolations []int // ClientGroup.IDs with more than one member present

	neighbor map[int]NeighborInfo
}

// Build constructs an immutable Solution from a list of routes (one per
// used vehicle) and the set of required-but-unassigned client indices
// (non-empty only for an infeasible-by-missing solution, which the
// evaluator penalizes).
func Build(problem *model.ProblemData, routes []*route.Route, unassigned []int) *Solution {
	s := &Solution{
		ID:         uuid.NewString(),
		problem:    problem,
		routes:     routes,
		unassigned: append([]int(nil), unassigned...),
		feasible:   true,
		neighbor:   make(map[int]NeighborInfo),
	}

	groupCount := make(map[int]int)
	for ri, r := range routes {
		s.distance += r.Distance()
		s.durationCost += r.DurationValue()
		s.timeWarp += r.TimeWarp()
		s.excessLoad += r.ExcessLoad()
		s.excessDuration += r.ExcessDuration()
		s.excessDistance += r.ExcessDistance()

		visits := r.Visits()
		for pos, loc := range visits {
			if problem.IsDepotIndex(loc) {
				continue
			}
			var pred, succ int
			if pos > 0 {
				pred = visits[pos-1]
			}
			if pos < len(visits)-1 {
				succ = visits[pos+1]
			}
			s.neighbor[loc] = NeighborInfo{RouteIndex: ri, Position: pos, Pred: pred, Succ: succ}

			c := problem.Location(loc)
			if !c.Required {
				s.prizeCollected += c.Prize
			}
			if gid, ok := problem.GroupOf(loc); ok {
				groupCount[gid]++
			}
		}
	}

	for gid, n := range groupCount {
		if n > 1 {
			s.groupViolations = append(s.groupViolations, gid)
		}
	}

	if len(unassigned) > 0 || s.timeWarp != 0 || s.excessLoad != 0 || s.excessDuration != 0 || s.excessDistance != 0 || len(s.groupViolations) > 0 {
		s.feasible = false
	}

	return s
}

// GroupViolations returns the ClientGroup.IDs (if any) with more than one
// member present in the solution. A non-empty result indicates the
// "group double-use" fatal invariant has been violated — construction and
// repair paths (RandomInitial, crossover's greedy reinsertion) must
// prevent this from ever occurring, so it should always be empty.
func (s *Solution) GroupViolations() []int { return s.groupViolations }

// Routes returns the solution's routes. Callers must treat them as
// read-only; Solution is immutable once built.
func (s *Solution) Routes() []*route.Route { return s.routes }

// Unassigned returns the required clients that could not be placed.
func (s *Solution) Unassigned() []int { return s.unassigned }

// Distance returns total travel distance across all routes.
func (s *Solution) Distance() int64 { return s.distance }

// DurationCost returns total travel+service duration across all routes.
func (s *Solution) DurationCost() int64 { return s.durationCost }

// TimeWarp returns total time-warp infeasibility across all routes.
func (s *Solution) TimeWarp() int64 { return s.timeWarp }

// ExcessLoad returns total excess load across all routes.
func (s *Solution) ExcessLoad() int64 { return s.excessLoad }

// ExcessDuration returns total route-duration overage across all routes.
func (s *Solution) ExcessDuration() int64 { return s.excessDuration }

// ExcessDistance returns total route-distance overage across all routes.
func (s *Solution) ExcessDistance() int64 { return s.excessDistance }

// PrizeCollected returns the sum of prizes for visited optional clients.
func (s *Solution) PrizeCollected() int64 { return s.prizeCollected }

// IsFeasible reports whether every route is feasible and every required
// client is assigned.
func (s *Solution) IsFeasible() bool { return s.feasible }

// NeighborOf returns the route/predecessor/successor of client c.
func (s *Solution) NeighborOf(c int) (NeighborInfo, bool) {
	info, ok := s.neighbor[c]
	return info, ok
}

// BrokenPairsDistance counts clients whose predecessor or successor
// (ignoring depots) differs between s and other, normalised by the
// number of clients in the problem. It is symmetric and zero when s and
// other are identical.
func (s *Solution) BrokenPairsDistance(other *Solution) float64 {
	broken := 0
	total := s.problem.NumClients()
	for c := s.problem.NumDepots(); c < s.problem.NumLocations(); c++ {
		a, aok := s.neighbor[c]
		b, bok := other.neighbor[c]
		if aok != bok {
			broken++
			continue
		}
		if !aok {
			continue
		}
		if !samePair(a, b, s.problem) {
			broken++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(broken) / float64(total)
}

func samePair(a, b NeighborInfo, problem *model.ProblemData) bool {
	predA, succA := normalizeDepot(a.Pred, problem), normalizeDepot(a.Succ, problem)
	predB, succB := normalizeDepot(b.Pred, problem), normalizeDepot(b.Succ, problem)
	return predA == predB && succA == succB
}

// normalizeDepot maps any depot index to a single sentinel so that two
// clients adjacent to different depots are still considered "adjacent to
// a depot" for broken-pairs purposes, matching the glossary's definition
// ("ignoring depots").
func normalizeDepot(loc int, problem *model.ProblemData) int {
	if problem.IsDepotIndex(loc) {
		return -1
	}
	return loc
}
