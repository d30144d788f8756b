package instanceio

import (
	"encoding/json"
	"io"

	"github.com/routeforge/hgsvrp/internal/costeval"
	"github.com/routeforge/hgsvrp/internal/solution"
)

// routeDTO is the wire shape of one solved route.
type routeDTO struct {
	VehicleType int   `json:"vehicle_type"`
	Visits      []int `json:"visits"`
	Distance    int64 `json:"distance"`
	Duration    int64 `json:"duration"`
	TimeWarp    int64 `json:"time_warp"`
}

// SolutionDTO is the top-level wire shape of a solved solution.
type SolutionDTO struct {
	ID             string    `json:"id"`
	Feasible       bool      `json:"feasible"`
	Cost           int64     `json:"cost"`
	Distance       int64     `json:"distance"`
	DurationCost   int64     `json:"duration_cost"`
	TimeWarp       int64     `json:"time_warp"`
	ExcessLoad     int64     `json:"excess_load"`
	ExcessDuration int64     `json:"excess_duration"`
	ExcessDistance int64     `json:"excess_distance"`
	PrizeCollected int64     `json:"prize_collected"`
	Unassigned     []int     `json:"unassigned"`
	Routes         []routeDTO `json:"routes"`
}

// ToDTO converts a solved Solution into its wire representation, scoring
// it under evaluator for the reported cost.
func ToDTO(s *solution.Solution, evaluator *costeval.CostEvaluator) SolutionDTO {
	dto := SolutionDTO{
		ID:             s.ID,
		Feasible:       s.IsFeasible(),
		Cost:           evaluator.PenalizedCost(s),
		Distance:       s.Distance(),
		DurationCost:   s.DurationCost(),
		TimeWarp:       s.TimeWarp(),
		ExcessLoad:     s.ExcessLoad(),
		ExcessDuration: s.ExcessDuration(),
		ExcessDistance: s.ExcessDistance(),
		PrizeCollected: s.PrizeCollected(),
		Unassigned:     append([]int(nil), s.Unassigned()...),
	}
	for _, r := range s.Routes() {
		dto.Routes = append(dto.Routes, routeDTO{
			VehicleType: r.VehicleTypeIndex(),
			Visits:      append([]int(nil), r.Visits()...),
			Distance:    r.Distance(),
			Duration:    r.DurationValue(),
			TimeWarp:    r.TimeWarp(),
		})
	}
	return dto
}

// WriteSolution encodes a solved solution as pretty-printed JSON to w.
func WriteSolution(w io.Writer, s *solution.Solution, evaluator *costeval.CostEvaluator) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToDTO(s, evaluator))
}
