package localsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeforge/hgsvrp/internal/costeval"
	"github.com/routeforge/hgsvrp/internal/model"
	"github.com/routeforge/hgsvrp/internal/neighbours"
	"github.com/routeforge/hgsvrp/internal/rng"
	"github.com/routeforge/hgsvrp/internal/route"
)

func lineProblem(t *testing.T, n int) *model.ProblemData {
	t.Helper()
	dist := make(model.Matrix, n)
	dur := make(model.Matrix, n)
	for i := range dist {
		dist[i] = make([]int64, n)
		dur[i] = make([]int64, n)
		for j := range dist[i] {
			d := int64(i - j)
			if d < 0 {
				d = -d
			}
			dist[i][j] = d
			dur[i][j] = d
		}
	}
	locs := make([]model.Location, n)
	locs[0] = model.Location{ID: 0, TWLate: 10000}
	for i := 1; i < n; i++ {
		locs[i] = model.Location{ID: i, TWLate: 10000, Delivery: []int64{1}, Required: true}
	}
	vt := []model.VehicleType{{Count: 1, Capacity: []int64{int64(n)}, StartDepot: 0, EndDepot: 0, ShiftLate: 10000}}
	profiles := []model.RoutingProfile{{Name: "default", Distance: dist, Duration: dur}}
	pd, err := model.New(locs, 1, profiles, vt, nil)
	require.NoError(t, err)
	return pd
}

func buildEngine(pd *model.ProblemData, seed int64) *Engine {
	nbrs := neighbours.Build(pd, neighbours.DefaultConfig())
	ce := costeval.New(pd, costeval.DefaultPenalties(), costeval.DefaultConfig())
	return New(pd, nbrs, ce, rng.New(seed), DefaultConfig())
}

func scrambledState(pd *model.ProblemData, order []int) *State {
	r := route.New(pd, 0)
	for i, c := range order {
		r.Insert(i+1, c)
	}
	return &State{Routes: []*route.Route{r}}
}

func TestEducateReducesOrEqualsInitialCost(t *testing.T) {
	pd := lineProblem(t, 6)
	e := buildEngine(pd, 42)
	state := scrambledState(pd, []int{5, 3, 1, 4, 2})

	before := e.cost(state)
	sol := e.Educate(state)
	ce := costeval.New(pd, costeval.DefaultPenalties(), costeval.DefaultConfig())

	assert.LessOrEqual(t, ce.PenalizedCost(sol), before)
}

func TestEducateIdempotent(t *testing.T) {
	pd := lineProblem(t, 6)
	e := buildEngine(pd, 7)
	state := scrambledState(pd, []int{5, 3, 1, 4, 2})

	sol := e.Educate(state)

	again := &State{Routes: []*route.Route{sol.Routes()[0].Clone()}}
	sol2 := e.Educate(again)

	assert.Equal(t, sol.Distance(), sol2.Distance())
}

func TestTwoOptReversesSameRoute(t *testing.T) {
	pd := lineProblem(t, 5)
	state := scrambledState(pd, []int{1, 2, 3, 4})

	ok := twoOpt(pd, state, 2, 4)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 4, 3, 2, 0}, state.Routes[0].Visits())
}

func TestRelocateSingle(t *testing.T) {
	pd := lineProblem(t, 5)
	state := scrambledState(pd, []int{1, 2, 3, 4})

	ok := relocateSegment(pd, state, 1, 3, 1, false)
	require.True(t, ok)
	assert.Equal(t, []int{0, 2, 3, 1, 4, 0}, state.Routes[0].Visits())
}
