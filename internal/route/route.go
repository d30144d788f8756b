// Package route implements the mutable Route: a vehicle's ordered visit
// sequence with cached cumulative segment summaries for O(1) neighbourhood
// queries during local search.
package route

import (
	"github.com/routeforge/hgsvrp/internal/model"
	"github.com/routeforge/hgsvrp/internal/segment"
)

// Route is a single vehicle's visit sequence: start depot, zero or more
// clients and reload-depot visits, end depot. It caches cumulative
// forward (before) and backward (after) segment summaries, refreshed
// lazily the next time a query needs them.
type Route struct {
	problem     *model.ProblemData
	vehicleType int
	visits      []int // location indices; visits[0] and visits[len-1] are depots

	before     []segment.DDSegment
	after      []segment.DDSegment
	beforeLoad []segment.LoadSegment
	afterLoad  []segment.LoadSegment
	dirty      bool
}

// New returns an empty route for the given vehicle type: just its start
// and end depot, back to back.
func New(problem *model.ProblemData, vehicleType int) *Route {
	vt := problem.VehicleType(vehicleType)
	r := &Route{
		problem:     problem,
		vehicleType: vehicleType,
		visits:      []int{vt.StartDepot, vt.EndDepot},
		dirty:       true,
	}
	r.refresh()
	return r
}

// Visits returns the full visit sequence, including the depot endpoints.
// Callers must not mutate the returned slice.
func (r *Route) Visits() []int { return r.visits }

// Len returns the number of visits, including both depot endpoints.
func (r *Route) Len() int { return len(r.visits) }

// NumClients returns the number of non-depot visits.
func (r *Route) NumClients() int {
	n := 0
	for i, v := range r.visits {
		if i == 0 || i == len(r.visits)-1 {
			continue
		}
		if !r.problem.IsDepotIndex(v) {
			n++
		}
	}
	return n
}

// VehicleType returns the vehicle type this route is assigned.
func (r *Route) VehicleType() model.VehicleType { return r.problem.VehicleType(r.vehicleType) }

// VehicleTypeIndex returns the vehicle type's index.
func (r *Route) VehicleTypeIndex() int { return r.vehicleType }

// Insert places client at position pos (1 ≤ pos ≤ Len()-1, i.e. strictly
// between the depot endpoints, inserting before the current occupant of
// pos).
func (r *Route) Insert(pos int, client int) {
	r.visits = append(r.visits, 0)
	copy(r.visits[pos+1:], r.visits[pos:])
	r.visits[pos] = client
	r.dirty = true
}

// Remove deletes the visit at position pos (must not be a depot endpoint).
func (r *Route) Remove(pos int) {
	r.visits = append(r.visits[:pos], r.visits[pos+1:]...)
	r.dirty = true
}

// Swap exchanges the visits at positions i and j.
func (r *Route) Swap(i, j int) {
	r.visits[i], r.visits[j] = r.visits[j], r.visits[i]
	r.dirty = true
}

// Reverse reverses the visit sub-sequence [i, j] inclusive.
func (r *Route) Reverse(i, j int) {
	for i < j {
		r.visits[i], r.visits[j] = r.visits[j], r.visits[i]
		i++
		j--
	}
	r.dirty = true
}

// ReplaceVisits overwrites the entire visit sequence, e.g. for SWAP_TAILS
// across two routes. visits must still start and end with a depot.
func (r *Route) ReplaceVisits(visits []int) {
	r.visits = visits
	r.dirty = true
}

func (r *Route) edge(i, j int) (dist, dur int64) {
	profile := r.VehicleType().Profile
	return r.problem.Distance(profile, i, j), r.problem.Duration(profile, i, j)
}

// refresh recomputes the before/after cumulative arrays if the route has
// been mutated since the last query.
func (r *Route) refresh() {
	if !r.dirty {
		return
	}
	n := len(r.visits)
	dims := r.problem.Dimensions()

	r.before = make([]segment.DDSegment, n)
	r.after = make([]segment.DDSegment, n)
	r.beforeLoad = make([]segment.LoadSegment, n)
	r.afterLoad = make([]segment.LoadSegment, n)

	r.before[0] = segment.Unit(r.problem.Location(r.visits[0]))
	r.beforeLoad[0] = segment.UnitLoad(r.problem.Location(r.visits[0]), dims)
	for k := 1; k < n; k++ {
		loc := r.problem.Location(r.visits[k])
		dist, dur := r.edge(r.visits[k-1], r.visits[k])
		r.before[k] = segment.Concatenate(r.before[k-1], segment.Unit(loc), dist, dur)
		r.beforeLoad[k] = segment.ConcatenateLoad(r.beforeLoad[k-1], segment.UnitLoad(loc, dims))
	}

	r.after[n-1] = segment.Unit(r.problem.Location(r.visits[n-1]))
	r.afterLoad[n-1] = segment.UnitLoad(r.problem.Location(r.visits[n-1]), dims)
	for k := n - 2; k >= 0; k-- {
		loc := r.problem.Location(r.visits[k])
		dist, dur := r.edge(r.visits[k], r.visits[k+1])
		r.after[k] = segment.Concatenate(segment.Unit(loc), r.after[k+1], dist, dur)
		r.afterLoad[k] = segment.ConcatenateLoad(segment.UnitLoad(loc, dims), r.afterLoad[k+1])
	}

	r.dirty = false
}

// BeforeDD returns the cumulative distance/duration segment for visits[0:k+1].
func (r *Route) BeforeDD(k int) segment.DDSegment {
	r.refresh()
	return r.before[k]
}

// AfterDD returns the cumulative distance/duration segment for visits[k:].
func (r *Route) AfterDD(k int) segment.DDSegment {
	r.refresh()
	return r.after[k]
}

// BeforeLoad returns the cumulative load segment for visits[0:k+1].
func (r *Route) BeforeLoad(k int) segment.LoadSegment {
	r.refresh()
	return r.beforeLoad[k]
}

// AfterLoad returns the cumulative load segment for visits[k:].
func (r *Route) AfterLoad(k int) segment.LoadSegment {
	r.refresh()
	return r.afterLoad[k]
}

// Full returns the whole-route distance/duration segment.
func (r *Route) Full() segment.DDSegment {
	r.refresh()
	return r.before[len(r.before)-1]
}

// FullLoad returns the whole-route load segment.
func (r *Route) FullLoad() segment.LoadSegment {
	r.refresh()
	return r.beforeLoad[len(r.beforeLoad)-1]
}

// Distance returns the total travel distance of the route.
func (r *Route) Distance() int64 { return r.Full().Distance }

// DurationValue returns the total travel+service duration of the route.
func (r *Route) DurationValue() int64 { return r.Full().Duration }

// TimeWarp returns the total time-warp infeasibility of the route.
func (r *Route) TimeWarp() int64 { return r.Full().TimeWarp }

// ExcessLoad returns the total excess load over capacity, summed across
// dimensions and across trips: load resets to zero at every reload-depot
// visit (§3), so each trip between reload boundaries is re-concatenated
// from scratch and checked against capacity independently, rather than
// folding the whole route's demand into one segment.
func (r *Route) ExcessLoad() int64 {
	dims := r.problem.Dimensions()
	capacity := r.VehicleType().Capacity
	var total int64
	for _, trip := range r.Trips() {
		if len(trip) == 0 {
			continue
		}
		load := segment.UnitLoad(r.problem.Location(trip[0]), dims)
		for _, c := range trip[1:] {
			load = segment.ConcatenateLoad(load, segment.UnitLoad(r.problem.Location(c), dims))
		}
		total += load.TotalExcessLoad(capacity)
	}
	return total
}

// ExcessDuration returns max(0, duration-maxDuration).
func (r *Route) ExcessDuration() int64 {
	vt := r.VehicleType()
	if vt.MaxDuration <= 0 {
		return 0
	}
	excess := r.DurationValue() - vt.MaxDuration
	if excess < 0 {
		return 0
	}
	return excess
}

// ExcessDistance returns max(0, distance-maxDistance).
func (r *Route) ExcessDistance() int64 {
	vt := r.VehicleType()
	if vt.MaxDistance <= 0 {
		return 0
	}
	excess := r.Distance() - vt.MaxDistance
	if excess < 0 {
		return 0
	}
	return excess
}

// IsFeasible reports whether the route has zero excess in every dimension.
func (r *Route) IsFeasible() bool {
	return r.TimeWarp() == 0 && r.ExcessLoad() == 0 && r.ExcessDuration() == 0 && r.ExcessDistance() == 0
}

// Trips splits the route into maximal sub-sequences of client visits
// between consecutive reload-depot (or endpoint-depot) visits. Each trip
// is the slice of visit positions belonging to it, excluding the
// bracketing depot visits.
func (r *Route) Trips() [][]int {
	var trips [][]int
	var current []int
	for i := 1; i < len(r.visits)-1; i++ {
		if r.problem.IsDepotIndex(r.visits[i]) {
			trips = append(trips, current)
			current = nil
			continue
		}
		current = append(current, r.visits[i])
	}
	trips = append(trips, current)
	return trips
}

// Clone returns an independent deep copy of the route.
func (r *Route) Clone() *Route {
	visits := make([]int, len(r.visits))
	copy(visits, r.visits)
	c := &Route{problem: r.problem, vehicleType: r.vehicleType, visits: visits, dirty: true}
	c.refresh()
	return c
}
