// Package instanceio loads VRP instances from JSON files and writes
// solved solutions back out, the way a CLI's request/response DTOs sit
// at the edge of a service decoding wire JSON into domain types. Core
// solver packages never import instanceio; only cmd/hgssolve does.
package instanceio

import (
	"encoding/json"
	"io"
	"os"

	"github.com/routeforge/hgsvrp/internal/model"
	"github.com/routeforge/hgsvrp/internal/vrperr"
)

// locationDTO is the wire shape of one depot or client.
type locationDTO struct {
	ID                  int     `json:"id"`
	X                   int64   `json:"x"`
	Y                   int64   `json:"y"`
	ServiceDuration     int64   `json:"service_duration"`
	TWEarly             int64   `json:"tw_early"`
	TWLate              int64   `json:"tw_late"`
	ReleaseTime         int64   `json:"release_time"`
	Delivery            []int64 `json:"delivery,omitempty"`
	Pickup              []int64 `json:"pickup,omitempty"`
	Prize               int64   `json:"prize,omitempty"`
	Required            bool    `json:"required"`
	Group               int     `json:"group"`
	AllowedVehicleTypes []int   `json:"allowed_vehicle_types,omitempty"`
}

type profileDTO struct {
	Name     string      `json:"name"`
	Distance model.Matrix `json:"distance"`
	Duration model.Matrix `json:"duration"`
}

type vehicleTypeDTO struct {
	ID               int     `json:"id"`
	Count            int     `json:"count"`
	Capacity         []int64 `json:"capacity"`
	StartDepot       int     `json:"start_depot"`
	EndDepot         int     `json:"end_depot"`
	ShiftEarly       int64   `json:"shift_early"`
	ShiftLate        int64   `json:"shift_late"`
	MaxDuration      int64   `json:"max_duration,omitempty"`
	MaxDistance      int64   `json:"max_distance,omitempty"`
	FixedCost        int64   `json:"fixed_cost,omitempty"`
	UnitDistanceCost int64   `json:"unit_distance_cost,omitempty"`
	UnitDurationCost int64   `json:"unit_duration_cost,omitempty"`
	Profile          int     `json:"profile"`
	ReloadDepots     []int   `json:"reload_depots,omitempty"`
	MaxReloads       int     `json:"max_reloads,omitempty"`
}

type groupDTO struct {
	ID      int   `json:"id"`
	Members []int `json:"members"`
}

// InstanceDTO is the top-level wire shape of an instance file.
type InstanceDTO struct {
	NumDepots    int              `json:"num_depots"`
	Locations    []locationDTO    `json:"locations"`
	Profiles     []profileDTO     `json:"profiles"`
	VehicleTypes []vehicleTypeDTO `json:"vehicle_types"`
	Groups       []groupDTO       `json:"groups,omitempty"`
}

// LoadFile reads and parses an instance JSON file from path.
func LoadFile(path string) (*model.ProblemData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, vrperr.Wrap(err, "instanceio: open instance file")
	}
	defer f.Close()
	return Load(f)
}

// Load decodes an instance from r and constructs a validated ProblemData.
func Load(r io.Reader) (*model.ProblemData, error) {
	var dto InstanceDTO
	if err := json.NewDecoder(r).Decode(&dto); err != nil {
		return nil, vrperr.WrapWithKind(err, vrperr.KindInstanceValidation, "instanceio: decode instance json")
	}

	locs := make([]model.Location, len(dto.Locations))
	for i, l := range dto.Locations {
		locs[i] = model.Location{
			ID:                  l.ID,
			X:                   l.X,
			Y:                   l.Y,
			ServiceDuration:     l.ServiceDuration,
			TWEarly:             l.TWEarly,
			TWLate:              l.TWLate,
			ReleaseTime:         l.ReleaseTime,
			Delivery:            l.Delivery,
			Pickup:              l.Pickup,
			Prize:               l.Prize,
			Required:            l.Required,
			Group:               l.Group,
			AllowedVehicleTypes: l.AllowedVehicleTypes,
		}
	}

	profiles := make([]model.RoutingProfile, len(dto.Profiles))
	for i, p := range dto.Profiles {
		profiles[i] = model.RoutingProfile{Name: p.Name, Distance: p.Distance, Duration: p.Duration}
	}

	vts := make([]model.VehicleType, len(dto.VehicleTypes))
	for i, v := range dto.VehicleTypes {
		vts[i] = model.VehicleType{
			ID:               v.ID,
			Count:            v.Count,
			Capacity:         v.Capacity,
			StartDepot:       v.StartDepot,
			EndDepot:         v.EndDepot,
			ShiftEarly:       v.ShiftEarly,
			ShiftLate:        v.ShiftLate,
			MaxDuration:      v.MaxDuration,
			MaxDistance:      v.MaxDistance,
			FixedCost:        v.FixedCost,
			UnitDistanceCost: v.UnitDistanceCost,
			UnitDurationCost: v.UnitDurationCost,
			Profile:          v.Profile,
			ReloadDepots:     v.ReloadDepots,
			MaxReloads:       v.MaxReloads,
		}
	}

	groups := make([]model.ClientGroup, len(dto.Groups))
	for i, g := range dto.Groups {
		groups[i] = model.ClientGroup{ID: g.ID, Members: g.Members}
	}

	pd, err := model.New(locs, dto.NumDepots, profiles, vts, groups)
	if err != nil {
		return nil, err
	}
	return pd, nil
}
