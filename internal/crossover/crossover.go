// Package crossover implements the two recombination operators that
// produce an offspring routing plan from two parent solutions: SREX
// (route-level exchange) and OX (ordered crossover on a flattened tour).
package crossover

import (
	"github.com/routeforge/hgsvrp/internal/model"
	"github.com/routeforge/hgsvrp/internal/rng"
	"github.com/routeforge/hgsvrp/internal/route"
	"github.com/routeforge/hgsvrp/internal/solution"
)

// Offspring is the raw output of a crossover: a set of routes plus any
// required clients that still need a greedy-repair reinsertion.
type Offspring struct {
	Routes     []*route.Route
	Unassigned []int
}

// SREX (Selective Route Exchange) copies parent1, swaps out a randomly
// chosen run of k routes for the corresponding run from parent2, and
// greedily reinserts every required client left unassigned by the
// exchange. Optional clients dropped by the exchange are not reinserted.
func SREX(problem *model.ProblemData, parent1, parent2 *solution.Solution, r *rng.RNG) Offspring {
	routes1 := parent1.Routes()
	routes2 := parent2.Routes()
	if len(routes1) == 0 || len(routes2) == 0 {
		return Offspring{Routes: cloneRoutes(routes1)}
	}

	maxK := min(len(routes1), len(routes2)) / 2
	if maxK < 1 {
		maxK = 1
	}
	k := 1 + r.Intn(maxK)
	start1 := r.Intn(len(routes1))
	start2 := r.Intn(len(routes2))

	chosen2 := selectRun(routes2, start2, k)

	clientsInChosen2 := make(map[int]bool)
	for _, rt := range chosen2 {
		for _, v := range rt.Visits() {
			if !problem.IsDepotIndex(v) {
				clientsInChosen2[v] = true
			}
		}
	}

	offspringRoutes := make([]*route.Route, 0, len(routes1))
	chosenIdx := make(map[int]bool)
	for i := 0; i < k; i++ {
		chosenIdx[(start1+i)%len(routes1)] = true
	}

	present := make(map[int]bool)
	for i, rt := range routes1 {
		if chosenIdx[i] {
			continue
		}
		clone := stripClients(problem, rt, clientsInChosen2)
		offspringRoutes = append(offspringRoutes, clone)
		for _, v := range clone.Visits() {
			if !problem.IsDepotIndex(v) {
				present[v] = true
			}
		}
	}
	for _, rt := range chosen2 {
		clone := rt.Clone()
		offspringRoutes = append(offspringRoutes, clone)
		for _, v := range clone.Visits() {
			if !problem.IsDepotIndex(v) {
				present[v] = true
			}
		}
	}

	// pad to the vehicle-type count of parent1 if SREX dropped routes
	for len(offspringRoutes) < len(routes1) {
		offspringRoutes = append(offspringRoutes, route.New(problem, routes1[len(offspringRoutes)%len(routes1)].VehicleTypeIndex()))
	}

	var unassigned []int
	for c := problem.NumDepots(); c < problem.NumLocations(); c++ {
		loc := problem.Location(c)
		if loc.Required && !present[c] {
			unassigned = append(unassigned, c)
		}
	}

	greedyInsertAll(problem, offspringRoutes, unassigned)
	return Offspring{Routes: offspringRoutes}
}

// OX runs ordered crossover over the flattened giant tour representation,
// intended for symmetric single-vehicle-type instances where both
// parents use the same number of routes.
func OX(problem *model.ProblemData, parent1, parent2 *solution.Solution, r *rng.RNG) Offspring {
	tour1 := flatten(problem, parent1)
	tour2 := flatten(problem, parent2)
	n := len(tour1)
	if n == 0 {
		return Offspring{Routes: cloneRoutes(parent1.Routes())}
	}

	a := r.Intn(n)
	b := r.Intn(n)
	if a > b {
		a, b = b, a
	}

	child := make([]int, n)
	used := make(map[int]bool, n)
	for i := a; i <= b; i++ {
		child[i] = tour1[i]
		used[tour1[i]] = true
	}

	pos := (b + 1) % n
	for _, c := range tour2 {
		if used[c] {
			continue
		}
		child[pos] = c
		used[c] = true
		pos = (pos + 1) % n
	}

	routeLengths := routeClientCounts(problem, parent1)
	routes := splitIntoRoutes(problem, parent1, child, routeLengths)
	return Offspring{Routes: routes}
}

func flatten(problem *model.ProblemData, sol *solution.Solution) []int {
	var tour []int
	for _, r := range sol.Routes() {
		for _, v := range r.Visits() {
			if !problem.IsDepotIndex(v) {
				tour = append(tour, v)
			}
		}
	}
	return tour
}

func routeClientCounts(problem *model.ProblemData, sol *solution.Solution) []int {
	counts := make([]int, len(sol.Routes()))
	for i, r := range sol.Routes() {
		n := 0
		for _, v := range r.Visits() {
			if !problem.IsDepotIndex(v) {
				n++
			}
		}
		counts[i] = n
	}
	return counts
}

func splitIntoRoutes(problem *model.ProblemData, template *solution.Solution, tour []int, lengths []int) []*route.Route {
	routes := make([]*route.Route, len(template.Routes()))
	pos := 0
	for i, r := range template.Routes() {
		nr := route.New(problem, r.VehicleTypeIndex())
		for j := 0; j < lengths[i] && pos < len(tour); j++ {
			nr.Insert(nr.Len()-1, tour[pos])
			pos++
		}
		routes[i] = nr
	}
	for pos < len(tour) && len(routes) > 0 {
		last := routes[len(routes)-1]
		last.Insert(last.Len()-1, tour[pos])
		pos++
	}
	return routes
}

func selectRun(routes []*route.Route, start, k int) []*route.Route {
	out := make([]*route.Route, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, routes[(start+i)%len(routes)])
	}
	return out
}

func stripClients(problem *model.ProblemData, r *route.Route, drop map[int]bool) *route.Route {
	nr := route.New(problem, r.VehicleTypeIndex())
	pos := 1
	for _, v := range r.Visits() {
		if problem.IsDepotIndex(v) {
			continue
		}
		if drop[v] {
			continue
		}
		nr.Insert(pos, v)
		pos++
	}
	return nr
}

func cloneRoutes(routes []*route.Route) []*route.Route {
	out := make([]*route.Route, len(routes))
	for i, r := range routes {
		out[i] = r.Clone()
	}
	return out
}

// greedyInsertAll reinserts every client in unassigned at its best-cost
// position across all routes. Infeasible insertions (capacity, time
// windows) are allowed: they will incur penalties under the cost
// evaluator, per the spec's tolerance for infeasible offspring pending
// education. Group exclusivity (§3: "at most one client per group") is
// never relaxed this way — a client whose group already has a member
// present in routes is skipped rather than inserted.
func greedyInsertAll(problem *model.ProblemData, routes []*route.Route, unassigned []int) {
	usedGroup := make(map[int]bool)
	for _, r := range routes {
		for _, v := range r.Visits() {
			if problem.IsDepotIndex(v) {
				continue
			}
			if gid, ok := problem.GroupOf(v); ok {
				usedGroup[gid] = true
			}
		}
	}

	for _, c := range unassigned {
		if gid, ok := problem.GroupOf(c); ok {
			if usedGroup[gid] {
				continue
			}
		}

		bestRoute := -1
		bestPos := 1
		bestDist := int64(-1)
		for ri, r := range routes {
			loc := problem.Location(c)
			if len(loc.AllowedVehicleTypes) > 0 {
				allowed := false
				for _, vt := range loc.AllowedVehicleTypes {
					if vt == r.VehicleTypeIndex() {
						allowed = true
						break
					}
				}
				if !allowed {
					continue
				}
			}
			for pos := 1; pos < r.Len(); pos++ {
				r.Insert(pos, c)
				d := r.Distance()
				r.Remove(pos)
				if bestDist < 0 || d < bestDist {
					bestDist = d
					bestRoute = ri
					bestPos = pos
				}
			}
		}
		if bestRoute >= 0 {
			routes[bestRoute].Insert(bestPos, c)
			if gid, ok := problem.GroupOf(c); ok {
				usedGroup[gid] = true
			}
		}
	}
}
