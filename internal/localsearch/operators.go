package localsearch

import (
	"github.com/routeforge/hgsvrp/internal/model"
	"github.com/routeforge/hgsvrp/internal/route"
)

// Operator identifies one of the granular node/route moves of §4.4.
type Operator int

const (
	OpRelocateSingle Operator = iota
	OpRelocateSegment
	OpRelocateSegmentReversed
	OpSwapSingle
	OpSwapSegmentSingle
	OpSwapSegmentSegment
	OpTwoOpt
	OpTwoOptStar
	OpSwapStar
)

// AllNodeOperators lists the node-pair operators tried for every (u, v)
// with v in N(u), in the fixed order that makes first-improvement
// selection deterministic given a seed.
var AllNodeOperators = []Operator{
	OpRelocateSingle,
	OpRelocateSegment,
	OpRelocateSegmentReversed,
	OpSwapSingle,
	OpSwapSegmentSingle,
	OpSwapSegmentSegment,
	OpTwoOpt,
	OpTwoOptStar,
	OpSwapStar,
}

func vehicleCompatible(problem *model.ProblemData, client int, vehicleType int) bool {
	loc := problem.Location(client)
	if len(loc.AllowedVehicleTypes) == 0 {
		return true
	}
	for _, vt := range loc.AllowedVehicleTypes {
		if vt == vehicleType {
			return true
		}
	}
	return false
}

// Apply dispatches to the named operator, returning true if the
// structural move was applied (the caller is responsible for deciding,
// via cost comparison, whether to keep or discard it).
func Apply(problem *model.ProblemData, state *State, op Operator, u, v int) bool {
	switch op {
	case OpRelocateSingle:
		return relocateSegment(problem, state, u, v, 1, false)
	case OpRelocateSegment:
		return relocateSegment(problem, state, u, v, 2, false)
	case OpRelocateSegmentReversed:
		return relocateSegment(problem, state, u, v, 2, true)
	case OpSwapSingle:
		return swapSegments(problem, state, u, v, 1, 1)
	case OpSwapSegmentSingle:
		return swapSegments(problem, state, u, v, 2, 1)
	case OpSwapSegmentSegment:
		return swapSegments(problem, state, u, v, 2, 2)
	case OpTwoOpt:
		return twoOpt(problem, state, u, v)
	case OpTwoOptStar:
		return twoOptStar(problem, state, u, v)
	case OpSwapStar:
		return swapStar(problem, state, u, v)
	}
	return false
}

func segmentAt(r *route.Route, pos, length int) ([]int, bool) {
	visits := r.Visits()
	if pos+length > len(visits)-1 { // must not consume the end depot
		return nil, false
	}
	seg := make([]int, length)
	copy(seg, visits[pos:pos+length])
	return seg, true
}

func isDepotSeg(problem *model.ProblemData, seg []int) bool {
	for _, c := range seg {
		if problem.IsDepotIndex(c) {
			return true
		}
	}
	return false
}

// relocateSegment moves the `length`-client segment starting at u to
// immediately after v, optionally reversed (operators 1-3).
func relocateSegment(problem *model.ProblemData, state *State, u, v int, length int, reversed bool) bool {
	ru, pu, ok := locate(state.Routes, u)
	if !ok {
		return false
	}
	seg, ok := segmentAt(state.Routes[ru], pu, length)
	if !ok || isDepotSeg(problem, seg) {
		return false
	}
	rv, _, ok := locate(state.Routes, v)
	if !ok {
		return false
	}
	for _, c := range seg {
		if !vehicleCompatible(problem, c, state.Routes[rv].VehicleTypeIndex()) {
			return false
		}
	}

	for i := 0; i < length; i++ {
		state.Routes[ru].Remove(pu)
	}

	_, pv, ok := locate(state.Routes, v)
	if !ok {
		return false
	}
	if reversed {
		for i, j := 0, len(seg)-1; i < j; i, j = i+1, j-1 {
			seg[i], seg[j] = seg[j], seg[i]
		}
	}
	for i, c := range seg {
		state.Routes[rv].Insert(pv+1+i, c)
	}
	return true
}

// swapSegments exchanges the lenU-length segment at u with the
// lenV-length segment at v (operators 4-6).
func swapSegments(problem *model.ProblemData, state *State, u, v int, lenU, lenV int) bool {
	ru, pu, ok := locate(state.Routes, u)
	if !ok {
		return false
	}
	rv, pv, ok := locate(state.Routes, v)
	if !ok {
		return false
	}
	if ru == rv && intervalsOverlap(pu, lenU, pv, lenV) {
		return false
	}
	segU, ok := segmentAt(state.Routes[ru], pu, lenU)
	if !ok || isDepotSeg(problem, segU) {
		return false
	}
	segV, ok := segmentAt(state.Routes[rv], pv, lenV)
	if !ok || isDepotSeg(problem, segV) {
		return false
	}
	for _, c := range segU {
		if !vehicleCompatible(problem, c, state.Routes[rv].VehicleTypeIndex()) {
			return false
		}
	}
	for _, c := range segV {
		if !vehicleCompatible(problem, c, state.Routes[ru].VehicleTypeIndex()) {
			return false
		}
	}

	if ru == rv {
		visits := append([]int(nil), state.Routes[ru].Visits()...)
		copy(visits[pu:pu+lenU], segV)
		copy(visits[pv:pv+lenV], segU)
		state.Routes[ru].ReplaceVisits(visits)
		return true
	}

	visitsU := append([]int(nil), state.Routes[ru].Visits()...)
	visitsV := append([]int(nil), state.Routes[rv].Visits()...)
	newU := make([]int, 0, len(visitsU))
	newU = append(newU, visitsU[:pu]...)
	newU = append(newU, segV...)
	newU = append(newU, visitsU[pu+lenU:]...)
	newV := make([]int, 0, len(visitsV))
	newV = append(newV, visitsV[:pv]...)
	newV = append(newV, segU...)
	newV = append(newV, visitsV[pv+lenV:]...)
	state.Routes[ru].ReplaceVisits(newU)
	state.Routes[rv].ReplaceVisits(newV)
	return true
}

func intervalsOverlap(pu, lenU, pv, lenV int) bool {
	return pu < pv+lenV && pv < pu+lenU
}

// twoOpt reverses the sub-sequence between u and v within the same route
// (operator 7).
func twoOpt(problem *model.ProblemData, state *State, u, v int) bool {
	_ = problem
	ru, pu, ok := locate(state.Routes, u)
	if !ok {
		return false
	}
	rv, pv, ok := locate(state.Routes, v)
	if !ok || ru != rv {
		return false
	}
	if pu == pv {
		return false
	}
	i, j := pu, pv
	if i > j {
		i, j = j, i
	}
	if i == 0 {
		i = 1 // never reverse into the start depot
	}
	if j == state.Routes[ru].Len()-1 {
		j--
	}
	if i >= j {
		return false
	}
	state.Routes[ru].Reverse(i, j)
	return true
}

// twoOptStar exchanges the tails after u and after v across two
// different routes (operator 8, identical to route-level SWAP_TAILS).
func twoOptStar(problem *model.ProblemData, state *State, u, v int) bool {
	ru, pu, ok := locate(state.Routes, u)
	if !ok {
		return false
	}
	rv, pv, ok := locate(state.Routes, v)
	if !ok || ru == rv {
		return false
	}

	visitsU := state.Routes[ru].Visits()
	visitsV := state.Routes[rv].Visits()
	tailU := visitsU[pu+1:]
	tailV := visitsV[pv+1:]

	for _, c := range tailV {
		if problem.IsDepotIndex(c) {
			continue
		}
		if !vehicleCompatible(problem, c, state.Routes[ru].VehicleTypeIndex()) {
			return false
		}
	}
	for _, c := range tailU {
		if problem.IsDepotIndex(c) {
			continue
		}
		if !vehicleCompatible(problem, c, state.Routes[rv].VehicleTypeIndex()) {
			return false
		}
	}

	newU := append(append([]int(nil), visitsU[:pu+1]...), tailV...)
	newV := append(append([]int(nil), visitsV[:pv+1]...), tailU...)
	state.Routes[ru].ReplaceVisits(newU)
	state.Routes[rv].ReplaceVisits(newV)
	return true
}

// swapStar (operator 9) removes u and v from their routes and reinserts
// each at its best-cost position (by resulting route distance) in the
// other's route, chosen among up to three evenly spaced candidate
// positions (see bestInsertPosition); other positions are not evaluated.
func swapStar(problem *model.ProblemData, state *State, u, v int) bool {
	ru, _, ok := locate(state.Routes, u)
	if !ok {
		return false
	}
	rv, _, ok := locate(state.Routes, v)
	if !ok || ru == rv {
		return false
	}
	if !vehicleCompatible(problem, u, state.Routes[rv].VehicleTypeIndex()) {
		return false
	}
	if !vehicleCompatible(problem, v, state.Routes[ru].VehicleTypeIndex()) {
		return false
	}

	_, pu, _ := locate(state.Routes, u)
	_, pv, _ := locate(state.Routes, v)
	state.Routes[ru].Remove(pu)
	state.Routes[rv].Remove(pv)

	bestInsertPosition(state.Routes[rv], u, 3)
	bestInsertPosition(state.Routes[ru], v, 3)
	return true
}

// bestInsertPosition inserts client into r at whichever of up to
// maxCandidates evenly-sampled positions yields the smallest resulting
// route distance.
func bestInsertPosition(r *route.Route, client int, maxCandidates int) {
	bestPos := 1
	bestDist := int64(-1)
	n := r.Len()
	candidates := make([]int, 0, maxCandidates)
	if n-1 <= maxCandidates {
		for p := 1; p < n; p++ {
			candidates = append(candidates, p)
		}
	} else {
		step := (n - 1) / maxCandidates
		if step < 1 {
			step = 1
		}
		for p := 1; p < n && len(candidates) < maxCandidates; p += step {
			candidates = append(candidates, p)
		}
	}
	for _, p := range candidates {
		r.Insert(p, client)
		d := r.Distance()
		if bestDist < 0 || d < bestDist {
			bestDist = d
			bestPos = p
		}
		r.Remove(p)
	}
	r.Insert(bestPos, client)
}
