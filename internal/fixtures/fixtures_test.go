package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeforge/hgsvrp/internal/costeval"
	"github.com/routeforge/hgsvrp/internal/ga"
	"github.com/routeforge/hgsvrp/internal/localsearch"
	"github.com/routeforge/hgsvrp/internal/model"
	"github.com/routeforge/hgsvrp/internal/neighbours"
	"github.com/routeforge/hgsvrp/internal/population"
	"github.com/routeforge/hgsvrp/internal/rng"
	"github.com/routeforge/hgsvrp/internal/stopping"
)

// runScenario wires up and runs a short GA pass over a fixture instance,
// returning the GeneticAlgorithm so callers can inspect its statistics.
func runScenario(t *testing.T, pd *model.ProblemData, seed int64, iters int) *ga.GeneticAlgorithm {
	t.Helper()
	nbrs := neighbours.Build(pd, neighbours.DefaultConfig())
	penalties := costeval.DefaultPenalties()
	ce := costeval.New(pd, penalties, costeval.DefaultConfig())
	r := rng.New(seed)
	engine := localsearch.New(pd, nbrs, ce, r, localsearch.DefaultConfig())
	pop := population.New(ce, population.Config{MuMin: 8, MuGen: 8, NElite: 3})
	cfg := ga.Config{Seed: seed, RestartThreshold: 1000, InitialPopulation: 10}
	g := ga.New(pd, nbrs, ce, engine, pop, r, cfg, nil)
	g.Run(stopping.NewMaxIterations(iters))
	return g
}

func TestCVRPSmallAllRequiredClientsServable(t *testing.T) {
	pd := CVRPSmall()
	require.Equal(t, 15, pd.NumClients())
	vt := pd.VehicleType(0)
	var totalDemand int64
	for i := pd.NumDepots(); i < pd.NumLocations(); i++ {
		totalDemand += pd.Location(i).Delivery[0]
	}
	assert.LessOrEqual(t, totalDemand, int64(vt.Count)*vt.Capacity[0])
	g := runScenario(t, pd, 1, 5)
	best := g.Stats().Latest()
	assert.GreaterOrEqual(t, best.FeasibleSize+best.InfeasibleSize, 0)
}

func TestVRPTWNarrowBuildsValidInstance(t *testing.T) {
	pd := VRPTWNarrow()
	assert.Equal(t, 16, pd.NumClients())
	for i := pd.NumDepots(); i < pd.NumLocations(); i++ {
		loc := pd.Location(i)
		assert.LessOrEqual(t, loc.TWEarly, loc.TWLate)
	}
}

func TestMultiDepotTWHasTwoDepotsAndFleets(t *testing.T) {
	pd := MultiDepotTW()
	assert.Equal(t, 2, pd.NumDepots())
	assert.Len(t, pd.VehicleTypes(), 2)
}

func TestPrizeCollectingHasOptionalHighValueClient(t *testing.T) {
	pd := PrizeCollecting()
	last := pd.Location(pd.NumLocations() - 1)
	assert.False(t, last.Required)
	assert.Equal(t, int64(1000), last.Prize)
}

func TestPickupAndDeliveryBalancesLoad(t *testing.T) {
	pd := PickupAndDelivery()
	var totalPickup, totalDelivery int64
	for i := pd.NumDepots(); i < pd.NumLocations(); i++ {
		loc := pd.Location(i)
		if len(loc.Pickup) > 0 {
			totalPickup += loc.Pickup[0]
		}
		if len(loc.Delivery) > 0 {
			totalDelivery += loc.Delivery[0]
		}
	}
	assert.Equal(t, totalPickup, totalDelivery)
}

func TestZoneRestrictedHasTwoProfilesWithForbiddenEdges(t *testing.T) {
	pd := ZoneRestricted()
	require.Len(t, pd.VehicleTypes(), 2)

	defaultProfile := pd.VehicleType(0).Profile
	restrictedProfile := pd.VehicleType(1).Profile
	require.NotEqual(t, defaultProfile, restrictedProfile)

	for i := pd.NumDepots(); i < pd.NumLocations(); i++ {
		d := pd.Distance(defaultProfile, 0, i)
		assert.Less(t, d, model.ForbiddenEdge, "client %d should be reachable under the default profile", i)
	}

	// the restricted profile can still reach clients 1-3 but not 4-6.
	for i := 1; i <= 3; i++ {
		assert.Less(t, pd.Distance(restrictedProfile, 0, i), model.ForbiddenEdge)
	}
	for i := 4; i <= 6; i++ {
		assert.Equal(t, model.ForbiddenEdge, pd.Distance(restrictedProfile, 0, i))
	}
}

func TestReloadDepotDemandExceedsSingleTripCapacity(t *testing.T) {
	pd := ReloadDepot()
	vt := pd.VehicleType(0)
	var totalDemand int64
	for i := pd.NumDepots(); i < pd.NumLocations(); i++ {
		totalDemand += pd.Location(i).Delivery[0]
	}
	assert.Greater(t, totalDemand, vt.Capacity[0])
	assert.Greater(t, vt.MaxReloads, 0)
}
