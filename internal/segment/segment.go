// Package segment implements the associative segment summaries used to
// evaluate a route's distance, duration, time-warp and load in O(1) per
// concatenation, independent of route length.
package segment

import "github.com/routeforge/hgsvrp/internal/model"

// DDSegment (distance/duration segment) summarizes a contiguous
// subsequence of a route: its accumulated distance, duration, time-warp,
// feasible start-time window and release time.
type DDSegment struct {
	Distance int64
	Duration int64
	TimeWarp int64
	TWEarly  int64
	TWLate   int64
	Release  int64
}

// Unit returns the single-location segment for loc.
func Unit(loc model.Location) DDSegment {
	return DDSegment{
		Distance: 0,
		Duration: loc.ServiceDuration,
		TimeWarp: 0,
		TWEarly:  loc.TWEarly,
		TWLate:   loc.TWLate,
		Release:  loc.ReleaseTime,
	}
}

func maxI64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func minI64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// Concatenate combines segment a followed by segment b across an edge of
// distance edgeDist and duration edgeDur. This reproduces the standard
// Vidal time-warp propagation formula exactly; do not approximate it.
func Concatenate(a, b DDSegment, edgeDist, edgeDur int64) DDSegment {
	atJ := a.TWEarly + a.Duration
	arrK := atJ + edgeDur
	waiting := maxI64(0, b.TWEarly-arrK)
	newTimeWarp := a.TimeWarp + b.TimeWarp + maxI64(0, arrK-b.TWLate)
	newEarly := maxI64(b.TWEarly-edgeDur-a.Duration, a.TWEarly) - waiting
	newLate := minI64(b.TWLate-edgeDur-a.Duration, a.TWLate) + newTimeWarp

	return DDSegment{
		Distance: a.Distance + edgeDist + b.Distance,
		Duration: a.Duration + edgeDur + b.Duration,
		TimeWarp: newTimeWarp,
		TWEarly:  newEarly,
		TWLate:   newLate,
		Release:  maxI64(a.Release, b.Release),
	}
}

// LoadSegment summarizes per-dimension delivery, pickup and carried load
// over a contiguous subsequence.
type LoadSegment struct {
	Delivery []int64
	Pickup   []int64
	Load     []int64
}

// UnitLoad returns the single-location load segment for loc, given the
// problem's dimension count (loc.Delivery/Pickup may be nil for depots).
func UnitLoad(loc model.Location, dims int) LoadSegment {
	delivery := make([]int64, dims)
	pickup := make([]int64, dims)
	load := make([]int64, dims)
	copy(delivery, loc.Delivery)
	copy(pickup, loc.Pickup)
	copy(load, delivery)
	return LoadSegment{Delivery: delivery, Pickup: pickup, Load: load}
}

// ConcatenateLoad combines load segment a followed by b.
func ConcatenateLoad(a, b LoadSegment) LoadSegment {
	dims := len(a.Delivery)
	out := LoadSegment{
		Delivery: make([]int64, dims),
		Pickup:   make([]int64, dims),
		Load:     make([]int64, dims),
	}
	for d := 0; d < dims; d++ {
		out.Delivery[d] = a.Delivery[d] + b.Delivery[d]
		out.Pickup[d] = a.Pickup[d] + b.Pickup[d]
		out.Load[d] = maxI64(a.Load[d]+b.Delivery[d], b.Load[d]+a.Pickup[d])
	}
	return out
}

// ExcessLoad returns, per dimension, max(0, load-capacity).
func (l LoadSegment) ExcessLoad(capacity []int64) []int64 {
	out := make([]int64, len(l.Load))
	for d := range l.Load {
		cap := int64(0)
		if d < len(capacity) {
			cap = capacity[d]
		}
		out[d] = maxI64(0, l.Load[d]-cap)
	}
	return out
}

// TotalExcessLoad sums ExcessLoad across all dimensions.
func (l LoadSegment) TotalExcessLoad(capacity []int64) int64 {
	var total int64
	for _, e := range l.ExcessLoad(capacity) {
		total += e
	}
	return total
}
