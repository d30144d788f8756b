package localsearch

import "github.com/routeforge/hgsvrp/internal/model"

// SwapTails applies the route-level SWAP_TAILS operator: exchanging the
// tails after u and after v. It is the same move as OpTwoOptStar. The
// engine's route-pair pass does not call it; tail exchanges are applied
// through OpTwoOptStar in the node pass.
func SwapTails(problem *model.ProblemData, state *State, u, v int) bool {
	return twoOptStar(problem, state, u, v)
}

// RelocateStar tries relocating each client currently on route `from`
// into route `to`, at whichever of up to three evenly spaced insertion
// positions (see bestInsertPosition) minimizes the resulting total
// distance across both routes, and applies
// whichever single relocation improves the combined distance the most.
// It returns true if a relocation was applied.
func RelocateStar(problem *model.ProblemData, state *State, from, to int) bool {
	if from == to {
		return false
	}
	baseline := state.Routes[from].Distance() + state.Routes[to].Distance()

	bestClient := -1
	bestDelta := int64(0)
	for _, c := range append([]int(nil), state.Routes[from].Visits()...) {
		if problem.IsDepotIndex(c) {
			continue
		}
		if !vehicleCompatible(problem, c, state.Routes[to].VehicleTypeIndex()) {
			continue
		}
		trial := state.Clone()
		_, pos, ok := locate(trial.Routes, c)
		if !ok {
			continue
		}
		trial.Routes[from].Remove(pos)
		bestInsertPosition(trial.Routes[to], c, 3)
		newTotal := trial.Routes[from].Distance() + trial.Routes[to].Distance()
		delta := newTotal - baseline
		if delta < bestDelta {
			bestDelta = delta
			bestClient = c
		}
	}

	if bestClient < 0 {
		return false
	}
	_, pos, ok := locate(state.Routes, bestClient)
	if !ok {
		return false
	}
	state.Routes[from].Remove(pos)
	bestInsertPosition(state.Routes[to], bestClient, 3)
	return true
}
