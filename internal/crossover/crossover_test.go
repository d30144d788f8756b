package crossover

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeforge/hgsvrp/internal/model"
	"github.com/routeforge/hgsvrp/internal/rng"
	"github.com/routeforge/hgsvrp/internal/route"
	"github.com/routeforge/hgsvrp/internal/solution"
)

func buildProblem(t *testing.T, n int) *model.ProblemData {
	t.Helper()
	dist := make(model.Matrix, n)
	dur := make(model.Matrix, n)
	for i := range dist {
		dist[i] = make([]int64, n)
		dur[i] = make([]int64, n)
		for j := range dist[i] {
			if i != j {
				dist[i][j] = 3
				dur[i][j] = 3
			}
		}
	}
	locs := make([]model.Location, n)
	locs[0] = model.Location{ID: 0, TWLate: 10000}
	for i := 1; i < n; i++ {
		locs[i] = model.Location{ID: i, TWLate: 10000, Delivery: []int64{1}, Required: true}
	}
	vt := []model.VehicleType{{Count: 2, Capacity: []int64{int64(n)}, StartDepot: 0, EndDepot: 0, ShiftLate: 10000}}
	profiles := []model.RoutingProfile{{Name: "default", Distance: dist, Duration: dur}}
	pd, err := model.New(locs, 1, profiles, vt, nil)
	require.NoError(t, err)
	return pd
}

func twoRouteSolution(pd *model.ProblemData, a, b []int) *solution.Solution {
	r1 := route.New(pd, 0)
	for i, c := range a {
		r1.Insert(i+1, c)
	}
	r2 := route.New(pd, 0)
	for i, c := range b {
		r2.Insert(i+1, c)
	}
	return solution.Build(pd, []*route.Route{r1, r2}, nil)
}

func allClients(problem *model.ProblemData, offspring Offspring) map[int]bool {
	seen := make(map[int]bool)
	for _, r := range offspring.Routes {
		for _, v := range r.Visits() {
			if !problem.IsDepotIndex(v) {
				seen[v] = true
			}
		}
	}
	return seen
}

func TestSREXPreservesAllRequiredClients(t *testing.T) {
	pd := buildProblem(t, 7)
	p1 := twoRouteSolution(pd, []int{1, 2, 3}, []int{4, 5, 6})
	p2 := twoRouteSolution(pd, []int{4, 1, 6}, []int{2, 3, 5})

	r := rng.New(1)
	offspring := SREX(pd, p1, p2, r)

	seen := allClients(pd, offspring)
	for c := 1; c <= 6; c++ {
		assert.True(t, seen[c], "client %d missing from SREX offspring", c)
	}
}

func TestOXPreservesAllRequiredClients(t *testing.T) {
	pd := buildProblem(t, 7)
	p1 := twoRouteSolution(pd, []int{1, 2, 3}, []int{4, 5, 6})
	p2 := twoRouteSolution(pd, []int{4, 1, 6}, []int{2, 3, 5})

	r := rng.New(2)
	offspring := OX(pd, p1, p2, r)

	seen := allClients(pd, offspring)
	for c := 1; c <= 6; c++ {
		assert.True(t, seen[c], "client %d missing from OX offspring", c)
	}
}

func TestGreedyInsertAllNeverDoublesUpAGroup(t *testing.T) {
	n := 5
	dist := make(model.Matrix, n)
	dur := make(model.Matrix, n)
	for i := range dist {
		dist[i] = make([]int64, n)
		dur[i] = make([]int64, n)
		for j := range dist[i] {
			if i != j {
				dist[i][j] = 3
				dur[i][j] = 3
			}
		}
	}
	locs := make([]model.Location, n)
	locs[0] = model.Location{ID: 0, TWLate: 10000}
	for i := 1; i < n; i++ {
		locs[i] = model.Location{ID: i, TWLate: 10000, Delivery: []int64{1}, Group: -1}
	}
	groups := []model.ClientGroup{{ID: 0, Members: []int{1, 2}}, {ID: 1, Members: []int{3, 4}}}
	vt := []model.VehicleType{{Count: 1, Capacity: []int64{int64(n)}, StartDepot: 0, EndDepot: 0, ShiftLate: 10000}}
	profiles := []model.RoutingProfile{{Name: "default", Distance: dist, Duration: dur}}
	pd, err := model.New(locs, 1, profiles, vt, groups)
	require.NoError(t, err)

	r1 := route.New(pd, 0)
	r1.Insert(1, 1) // group 0's member 1 already present
	routes := []*route.Route{r1}

	greedyInsertAll(pd, routes, []int{2, 3, 4})

	seen := allClients(pd, Offspring{Routes: routes})
	assert.True(t, seen[1])
	assert.False(t, seen[2], "client 2 shares a group with already-present client 1")
	// group 1 had no member present beforehand, so exactly one of {3,4} may be inserted.
	assert.NotEqual(t, seen[3], seen[4], "exactly one of group 1's members should be inserted")
}
