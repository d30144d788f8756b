package ga

import (
	"github.com/routeforge/hgsvrp/internal/localsearch"
	"github.com/routeforge/hgsvrp/internal/model"
	"github.com/routeforge/hgsvrp/internal/rng"
	"github.com/routeforge/hgsvrp/internal/route"
)

// RandomInitial builds a random starting solution: one route per
// available vehicle instance, every required client (and a random subset
// of optional clients) inserted in shuffled order at an arbitrary
// position. It is intentionally crude — local search and penalty-aware
// insertion during later generations are what make it useful, not the
// construction itself.
func RandomInitial(problem *model.ProblemData, r *rng.RNG) *localsearch.State {
	var routes []*route.Route
	for vtIdx, vt := range problem.VehicleTypes() {
		for k := 0; k < vt.Count; k++ {
			routes = append(routes, route.New(problem, vtIdx))
		}
	}
	if len(routes) == 0 {
		return &localsearch.State{}
	}

	var clients []int
	usedGroup := make(map[int]bool)
	for c := problem.NumDepots(); c < problem.NumLocations(); c++ {
		loc := problem.Location(c)
		if gid, ok := problem.GroupOf(c); ok {
			if usedGroup[gid] {
				continue // at most one client per group (§3)
			}
			if !loc.Required && r.Float64() >= 0.5 {
				continue
			}
			clients = append(clients, c)
			usedGroup[gid] = true
			continue
		}
		if loc.Required || r.Float64() < 0.5 {
			clients = append(clients, c)
		}
	}
	order := r.Perm(len(clients))

	for _, idx := range order {
		c := clients[idx]
		ri := r.Intn(len(routes))
		target := routes[ri]
		loc := problem.Location(c)
		if len(loc.AllowedVehicleTypes) > 0 {
			compatible := -1
			for i, rt := range routes {
				for _, vt := range loc.AllowedVehicleTypes {
					if rt.VehicleTypeIndex() == vt {
						compatible = i
						break
					}
				}
				if compatible >= 0 {
					break
				}
			}
			if compatible < 0 {
				continue
			}
			target = routes[compatible]
		}
		pos := 1
		if target.Len() > 2 {
			pos = 1 + r.Intn(target.Len()-1)
		}
		target.Insert(pos, c)
	}

	return &localsearch.State{Routes: routes}
}
