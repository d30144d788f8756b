package localsearch

import "github.com/routeforge/hgsvrp/internal/model"

func countReloads(problem *model.ProblemData, r interface{ Visits() []int }) int {
	visits := r.Visits()
	count := 0
	for i := 1; i < len(visits)-1; i++ {
		if problem.IsDepotIndex(visits[i]) {
			count++
		}
	}
	return count
}

// InsertReloadDepot inserts depotID as a reload visit at position pos in
// the given route, provided the vehicle type permits reloads at that
// depot and the route has not already reached its maximum reload count.
func InsertReloadDepot(problem *model.ProblemData, state *State, routeIdx, pos, depotID int) bool {
	r := state.Routes[routeIdx]
	vt := r.VehicleType()
	if vt.MaxReloads <= 0 {
		return false
	}
	if countReloads(problem, r) >= vt.MaxReloads {
		return false
	}
	allowed := false
	for _, d := range vt.ReloadDepots {
		if d == depotID {
			allowed = true
			break
		}
	}
	if !allowed {
		return false
	}
	if pos <= 0 || pos >= r.Len() {
		return false
	}
	r.Insert(pos, depotID)
	return true
}

// RemoveReloadDepot removes the reload-depot visit at position pos in
// the given route, if that position indeed holds a mid-route depot
// visit (not the start/end depot endpoints).
func RemoveReloadDepot(problem *model.ProblemData, state *State, routeIdx, pos int) bool {
	r := state.Routes[routeIdx]
	if pos <= 0 || pos >= r.Len()-1 {
		return false
	}
	if !problem.IsDepotIndex(r.Visits()[pos]) {
		return false
	}
	r.Remove(pos)
	return true
}

// RelocateReloadDepot moves an existing reload-depot visit from oldPos to
// newPos within the same route.
func RelocateReloadDepot(problem *model.ProblemData, state *State, routeIdx, oldPos, newPos int) bool {
	r := state.Routes[routeIdx]
	if oldPos <= 0 || oldPos >= r.Len()-1 {
		return false
	}
	depotID := r.Visits()[oldPos]
	if !problem.IsDepotIndex(depotID) {
		return false
	}
	r.Remove(oldPos)
	if newPos > oldPos {
		newPos--
	}
	if newPos <= 0 || newPos >= r.Len() {
		r.Insert(oldPos, depotID) // restore
		return false
	}
	r.Insert(newPos, depotID)
	return true
}
