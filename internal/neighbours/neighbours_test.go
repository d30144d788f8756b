package neighbours

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeforge/hgsvrp/internal/model"
)

func gridProblem(t *testing.T) *model.ProblemData {
	t.Helper()
	n := 5
	dist := make(model.Matrix, n)
	dur := make(model.Matrix, n)
	for i := range dist {
		dist[i] = make([]int64, n)
		dur[i] = make([]int64, n)
		for j := range dist[i] {
			d := int64(i-j) * int64(i-j)
			dist[i][j] = d
			dur[i][j] = d
		}
	}
	locs := make([]model.Location, n)
	for i := range locs {
		locs[i] = model.Location{ID: i, TWLate: 1000}
	}
	vt := []model.VehicleType{{Count: 1, Capacity: []int64{10}, StartDepot: 0, EndDepot: 0, ShiftLate: 1000}}
	profiles := []model.RoutingProfile{{Name: "default", Distance: dist, Duration: dur}}
	pd, err := model.New(locs, 1, profiles, vt, nil)
	require.NoError(t, err)
	return pd
}

func TestBuildProducesKNeighbours(t *testing.T) {
	pd := gridProblem(t)
	cfg := DefaultConfig()
	cfg.K = 2
	list := Build(pd, cfg)

	assert.Len(t, list.Of(1), 2)
}

func TestBuildConcurrentMatchesSerial(t *testing.T) {
	pd := gridProblem(t)
	cfg := DefaultConfig()
	cfg.K = 2

	serial := Build(pd, cfg)
	cfg.Concurrency = 4
	parallel := Build(pd, cfg)

	for c := pd.NumDepots(); c < pd.NumLocations(); c++ {
		assert.Equal(t, serial.Of(c), parallel.Of(c))
	}
}

func TestNearestNeighbourIsClosest(t *testing.T) {
	pd := gridProblem(t)
	cfg := DefaultConfig()
	cfg.K = 1
	list := Build(pd, cfg)

	assert.Equal(t, []int{2}, list.Of(1))
}
