// Package fixtures builds small, literal VRP instances used by the test
// suite and documented in the solver's scenario catalogue: one per
// distinguishing feature (pure capacity, time windows, multi-depot,
// prizes, pickup-and-delivery, zone restriction, and mid-route reload).
// Every builder constructs a grid-style instance small enough to eyeball
// by hand, the way a teacher's seed data builds a handful of literal
// fixtures rather than loading external fixtures for unit tests.
package fixtures

import (
	"github.com/routeforge/hgsvrp/internal/model"
)

func gridMatrix(coords [][2]int64) model.Matrix {
	n := len(coords)
	m := make(model.Matrix, n)
	for i := range m {
		m[i] = make([]int64, n)
		for j := range m[i] {
			dx := coords[i][0] - coords[j][0]
			dy := coords[i][1] - coords[j][1]
			if dx < 0 {
				dx = -dx
			}
			if dy < 0 {
				dy = -dy
			}
			m[i][j] = dx + dy
		}
	}
	return m
}

// CVRPSmall builds a pure capacitated VRP: one depot at a corner of a
// 4x4 grid whose other 15 points are clients, each demanding a unit of the single capacity dimension, no time
// windows. Mirrors the classic OR-Tools "16 node" capacitated routing
// tutorial instance shape.
func CVRPSmall() *model.ProblemData {
	coords := [][2]int64{
		{0, 0},
		{1, 0}, {2, 0}, {3, 0}, {3, 1}, {3, 2}, {3, 3}, {2, 3}, {1, 3},
		{0, 3}, {0, 2}, {0, 1}, {1, 1}, {2, 1}, {2, 2}, {1, 2},
	}
	dist := gridMatrix(coords)
	locs := make([]model.Location, len(coords))
	locs[0] = model.Location{ID: 0, TWLate: 1 << 30}
	for i := 1; i < len(coords); i++ {
		locs[i] = model.Location{ID: i, TWLate: 1 << 30, Delivery: []int64{1}, Required: true}
	}
	profiles := []model.RoutingProfile{{Name: "default", Distance: dist, Duration: dist}}
	vt := []model.VehicleType{{Count: 4, Capacity: []int64{4}, StartDepot: 0, EndDepot: 0, ShiftLate: 1 << 30}}
	pd, err := model.New(locs, 1, profiles, vt, nil)
	if err != nil {
		panic(err)
	}
	return pd
}

// VRPTWNarrow builds a VRP with tight time windows and a shift duration
// cap of 30 per vehicle, forcing the solver to trade off route length
// against time-warp feasibility.
func VRPTWNarrow() *model.ProblemData {
	coords := [][2]int64{
		{0, 0},
		{2, 0}, {4, 0}, {6, 0}, {8, 0}, {10, 0}, {6, 4}, {4, 4}, {2, 4},
		{0, 4}, {0, 2}, {10, 2}, {8, 4}, {2, 2}, {4, 2}, {6, 2}, {8, 2},
	}
	dist := gridMatrix(coords)
	locs := make([]model.Location, len(coords))
	locs[0] = model.Location{ID: 0, TWLate: 200}
	for i := 1; i < len(coords); i++ {
		early := int64(i) * 3
		locs[i] = model.Location{
			ID: i, ServiceDuration: 2,
			TWEarly: early, TWLate: early + 10,
			Delivery: []int64{1}, Required: true,
		}
	}
	profiles := []model.RoutingProfile{{Name: "default", Distance: dist, Duration: dist}}
	vt := []model.VehicleType{{Count: 5, Capacity: []int64{6}, StartDepot: 0, EndDepot: 0, ShiftLate: 200, MaxDuration: 30}}
	pd, err := model.New(locs, 1, profiles, vt, nil)
	if err != nil {
		panic(err)
	}
	return pd
}

// MultiDepotTW builds a multi-depot VRPTW with two depots, each owning
// its own fleet, requiring the solver to choose the right depot per
// client as well as the right route.
func MultiDepotTW() *model.ProblemData {
	coords := [][2]int64{
		{0, 0}, {10, 0},
		{1, 1}, {2, 2}, {3, 1}, {1, 3},
		{9, 1}, {8, 2}, {7, 1}, {9, 3},
	}
	dist := gridMatrix(coords)
	locs := make([]model.Location, len(coords))
	locs[0] = model.Location{ID: 0, TWLate: 1000}
	locs[1] = model.Location{ID: 1, TWLate: 1000}
	for i := 2; i < len(coords); i++ {
		locs[i] = model.Location{ID: i, TWLate: 1000, Delivery: []int64{1}, Required: true}
	}
	profiles := []model.RoutingProfile{{Name: "default", Distance: dist, Duration: dist}}
	vt := []model.VehicleType{
		{Count: 2, Capacity: []int64{4}, StartDepot: 0, EndDepot: 0, ShiftLate: 1000},
		{Count: 2, Capacity: []int64{4}, StartDepot: 1, EndDepot: 1, ShiftLate: 1000},
	}
	pd, err := model.New(locs, 2, profiles, vt, nil)
	if err != nil {
		panic(err)
	}
	return pd
}

// PrizeCollecting builds an instance with a mix of required clients and
// optional, prize-bearing clients, where visiting an optional client
// only pays off if its prize exceeds the extra routing cost.
func PrizeCollecting() *model.ProblemData {
	coords := [][2]int64{
		{0, 0},
		{1, 0}, {2, 0}, {3, 0},
		{10, 10}, {11, 10},
	}
	dist := gridMatrix(coords)
	locs := make([]model.Location, len(coords))
	locs[0] = model.Location{ID: 0, TWLate: 1 << 30}
	locs[1] = model.Location{ID: 1, TWLate: 1 << 30, Delivery: []int64{1}, Required: true}
	locs[2] = model.Location{ID: 2, TWLate: 1 << 30, Delivery: []int64{1}, Required: true}
	locs[3] = model.Location{ID: 3, TWLate: 1 << 30, Delivery: []int64{1}, Required: true}
	locs[4] = model.Location{ID: 4, TWLate: 1 << 30, Delivery: []int64{1}, Required: false, Prize: 5}
	locs[5] = model.Location{ID: 5, TWLate: 1 << 30, Delivery: []int64{1}, Required: false, Prize: 1000}
	profiles := []model.RoutingProfile{{Name: "default", Distance: dist, Duration: dist}}
	vt := []model.VehicleType{{Count: 2, Capacity: []int64{5}, StartDepot: 0, EndDepot: 0, ShiftLate: 1 << 30}}
	pd, err := model.New(locs, 1, profiles, vt, nil)
	if err != nil {
		panic(err)
	}
	return pd
}

// PickupAndDelivery builds an instance with paired pickup/delivery
// clients sharing a single capacity dimension, so load on a route rises
// and falls rather than monotonically decreasing.
func PickupAndDelivery() *model.ProblemData {
	coords := [][2]int64{
		{0, 0},
		{1, 0}, {2, 0}, {3, 0}, {4, 0},
	}
	dist := gridMatrix(coords)
	locs := make([]model.Location, len(coords))
	locs[0] = model.Location{ID: 0, TWLate: 1 << 30}
	locs[1] = model.Location{ID: 1, TWLate: 1 << 30, Pickup: []int64{2}, Required: true}
	locs[2] = model.Location{ID: 2, TWLate: 1 << 30, Delivery: []int64{2}, Required: true}
	locs[3] = model.Location{ID: 3, TWLate: 1 << 30, Pickup: []int64{1}, Required: true}
	locs[4] = model.Location{ID: 4, TWLate: 1 << 30, Delivery: []int64{1}, Required: true}
	profiles := []model.RoutingProfile{{Name: "default", Distance: dist, Duration: dist}}
	vt := []model.VehicleType{{Count: 1, Capacity: []int64{3}, StartDepot: 0, EndDepot: 0, ShiftLate: 1 << 30}}
	pd, err := model.New(locs, 1, profiles, vt, nil)
	if err != nil {
		panic(err)
	}
	return pd
}

// ZoneRestricted builds an instance with two routing profiles over the
// same coordinates: "default" uses plain grid distance everywhere, while
// "restricted" substitutes ForbiddenEdge for every edge entering the
// rectangle covering clients 4-6 (x <= -1). A vehicle type pinned to the
// restricted profile can reach clients 1-3 but can never be routed into
// that rectangle, so only the default-profile vehicle can clear the full
// instance.
func ZoneRestricted() *model.ProblemData {
	coords := [][2]int64{
		{0, 0},
		{1, 0}, {2, 0}, {3, 0},
		{-1, 0}, {-2, 0}, {-3, 0},
	}
	dist := gridMatrix(coords)

	restrictedRect := func(loc int) bool { return loc >= 4 }
	restricted := make(model.Matrix, len(coords))
	for i := range restricted {
		restricted[i] = append([]int64(nil), dist[i]...)
		for j := range restricted[i] {
			if i != j && restrictedRect(j) {
				restricted[i][j] = model.ForbiddenEdge
			}
		}
	}

	locs := make([]model.Location, len(coords))
	locs[0] = model.Location{ID: 0, TWLate: 1 << 30}
	for i := 1; i <= 3; i++ {
		locs[i] = model.Location{ID: i, TWLate: 1 << 30, Delivery: []int64{1}, Required: true}
	}
	for i := 4; i <= 6; i++ {
		locs[i] = model.Location{ID: i, TWLate: 1 << 30, Delivery: []int64{1}, Required: true}
	}
	profiles := []model.RoutingProfile{
		{Name: "default", Distance: dist, Duration: dist},
		{Name: "restricted", Distance: restricted, Duration: restricted},
	}
	vt := []model.VehicleType{
		{Count: 1, Capacity: []int64{3}, StartDepot: 0, EndDepot: 0, ShiftLate: 1 << 30, Profile: 0},
		{Count: 1, Capacity: []int64{3}, StartDepot: 0, EndDepot: 0, ShiftLate: 1 << 30, Profile: 1},
	}
	pd, err := model.New(locs, 1, profiles, vt, nil)
	if err != nil {
		panic(err)
	}
	return pd
}

// ReloadDepot builds an instance whose single vehicle type may revisit
// the depot mid-route to reload, with total demand exceeding vehicle
// capacity so at least one reload is unavoidable for full coverage.
func ReloadDepot() *model.ProblemData {
	coords := [][2]int64{
		{0, 0},
		{1, 0}, {2, 0}, {3, 0}, {4, 0}, {5, 0}, {6, 0},
	}
	dist := gridMatrix(coords)
	locs := make([]model.Location, len(coords))
	locs[0] = model.Location{ID: 0, TWLate: 1 << 30}
	for i := 1; i < len(coords); i++ {
		locs[i] = model.Location{ID: i, TWLate: 1 << 30, Delivery: []int64{2}, Required: true}
	}
	profiles := []model.RoutingProfile{{Name: "default", Distance: dist, Duration: dist}}
	vt := []model.VehicleType{{
		Count: 1, Capacity: []int64{4}, StartDepot: 0, EndDepot: 0, ShiftLate: 1 << 30,
		ReloadDepots: []int{0}, MaxReloads: 3,
	}}
	pd, err := model.New(locs, 1, profiles, vt, nil)
	if err != nil {
		panic(err)
	}
	return pd
}
