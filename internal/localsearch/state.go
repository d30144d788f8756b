package localsearch

import (
	"github.com/routeforge/hgsvrp/internal/model"
	"github.com/routeforge/hgsvrp/internal/route"
	"github.com/routeforge/hgsvrp/internal/solution"
)

// State is a working, mutable copy of a full routing plan, used as the
// local search engine's scratch representation during a descent. It is
// cloned before every tentative move so a non-improving trial can simply
// be discarded.
type State struct {
	Routes     []*route.Route
	Unassigned []int
}

// Clone returns an independent deep copy of the state.
func (s *State) Clone() *State {
	routes := make([]*route.Route, len(s.Routes))
	for i, r := range s.Routes {
		routes[i] = r.Clone()
	}
	unassigned := append([]int(nil), s.Unassigned...)
	return &State{Routes: routes, Unassigned: unassigned}
}

// ToSolution builds an immutable Solution snapshot of the current state.
func (s *State) ToSolution(problem *model.ProblemData) *solution.Solution {
	return solution.Build(problem, s.Routes, s.Unassigned)
}

// locate returns the route index and position of client c, or ok=false
// if c does not currently appear in any route.
func locate(routes []*route.Route, c int) (routeIdx, pos int, ok bool) {
	for ri, r := range routes {
		for p, v := range r.Visits() {
			if v == c {
				return ri, p, true
			}
		}
	}
	return 0, 0, false
}
