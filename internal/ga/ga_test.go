package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeforge/hgsvrp/internal/costeval"
	"github.com/routeforge/hgsvrp/internal/localsearch"
	"github.com/routeforge/hgsvrp/internal/model"
	"github.com/routeforge/hgsvrp/internal/neighbours"
	"github.com/routeforge/hgsvrp/internal/population"
	"github.com/routeforge/hgsvrp/internal/rng"
	"github.com/routeforge/hgsvrp/internal/stopping"
)

func smallInstance(t *testing.T) *model.ProblemData {
	t.Helper()
	n := 6
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
	vt := []model.VehicleType{{Count: 2, Capacity: []int64{int64(n)}, StartDepot: 0, EndDepot: 0, ShiftLate: 10000}}
	profiles := []model.RoutingProfile{{Name: "default", Distance: dist, Duration: dur}}
	pd, err := model.New(locs, 1, profiles, vt, nil)
	require.NoError(t, err)
	return pd
}

func buildGA(t *testing.T, seed int64) *GeneticAlgorithm {
	pd := smallInstance(t)
	nbrs := neighbours.Build(pd, neighbours.DefaultConfig())
	penalties := costeval.DefaultPenalties()
	ce := costeval.New(pd, penalties, costeval.DefaultConfig())
	r := rng.New(seed)
	engine := localsearch.New(pd, nbrs, ce, r, localsearch.DefaultConfig())
	pop := population.New(ce, population.Config{MuMin: 5, MuGen: 5, NElite: 2})
	cfg := Config{Seed: seed, RestartThreshold: 1000, InitialPopulation: 6}
	return New(pd, nbrs, ce, engine, pop, r, cfg, nil)
}

func TestRunReturnsFeasibleOrBestEffort(t *testing.T) {
	g := buildGA(t, 1)
	crit := stopping.NewMaxIterations(5)

	best := g.Run(crit)

	require.NotNil(t, best)
	assert.NotEmpty(t, best.Routes())
}

func TestRunRecordsStatsPerGeneration(t *testing.T) {
	g := buildGA(t, 2)
	crit := stopping.NewMaxIterations(3)

	g.Run(crit)

	assert.Len(t, g.Stats().History(), 3)
}

func TestRunIsDeterministicGivenSeed(t *testing.T) {
	g1 := buildGA(t, 99)
	g2 := buildGA(t, 99)
	crit1 := stopping.NewMaxIterations(4)
	crit2 := stopping.NewMaxIterations(4)

	best1 := g1.Run(crit1)
	best2 := g2.Run(crit2)

	ce := costeval.New(g1.problem, costeval.DefaultPenalties(), costeval.DefaultConfig())
	assert.Equal(t, ce.PenalizedCost(best1), ce.PenalizedCost(best2))
}
