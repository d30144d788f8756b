package model

import (
	"fmt"

	"github.com/routeforge/hgsvrp/internal/vrperr"
)

// ProblemData is the immutable VRP instance: locations (depots then
// clients), one or more routing profiles, vehicle types and client
// groups. It is constructed once via New and never mutated afterwards,
// so it may be freely shared across goroutines.
type ProblemData struct {
	locations    []Location
	numDepots    int
	profiles     []RoutingProfile
	vehicleTypes []VehicleType
	groups       []ClientGroup
	dimensions   int
	groupOf      map[int]int // client index -> owning ClientGroup.ID
}

// New validates and constructs a ProblemData. locations must list depots
// first (indices [0, numDepots)) followed by clients. It returns a
// *vrperr.SolverError of Kind KindInstanceValidation on the first
// violated invariant.
func New(locations []Location, numDepots int, profiles []RoutingProfile, vehicleTypes []VehicleType, groups []ClientGroup) (*ProblemData, error) {
	pd := &ProblemData{
		locations:    locations,
		numDepots:    numDepots,
		profiles:     profiles,
		vehicleTypes: vehicleTypes,
		groups:       groups,
	}
	if len(locations) > numDepots {
		pd.dimensions = len(locations[numDepots].Delivery)
	}
	if err := pd.validate(); err != nil {
		return nil, err
	}

	pd.groupOf = make(map[int]int)
	for _, g := range pd.groups {
		for _, m := range g.Members {
			pd.groupOf[m] = g.ID
		}
	}

	return pd, nil
}

func (pd *ProblemData) validate() error {
	n := len(pd.locations)
	if pd.numDepots <= 0 {
		return vrperr.NewInstanceValidationError("problem must have at least one depot")
	}
	if n <= pd.numDepots {
		return vrperr.NewInstanceValidationError("problem must have at least one client")
	}
	if len(pd.vehicleTypes) == 0 {
		return vrperr.NewInstanceValidationError("vehicle type set must not be empty")
	}
	if len(pd.profiles) == 0 {
		return vrperr.NewInstanceValidationError("at least one routing profile is required")
	}

	for pi, p := range pd.profiles {
		if err := validateMatrix(p.Distance, n); err != nil {
			return vrperr.NewInstanceValidationError(fmt.Sprintf("profile %d (%s) distance matrix: %v", pi, p.Name, err))
		}
		if err := validateMatrix(p.Duration, n); err != nil {
			return vrperr.NewInstanceValidationError(fmt.Sprintf("profile %d (%s) duration matrix: %v", pi, p.Name, err))
		}
	}

	for i, loc := range pd.locations {
		if loc.TWEarly > loc.TWLate {
			return vrperr.NewInstanceValidationError(fmt.Sprintf("location %d has early %d > late %d", i, loc.TWEarly, loc.TWLate))
		}
		if loc.ServiceDuration < 0 {
			return vrperr.NewInstanceValidationError(fmt.Sprintf("location %d has negative service duration", i))
		}
	}

	for vi, vt := range pd.vehicleTypes {
		if vt.Count <= 0 {
			return vrperr.NewInstanceValidationError(fmt.Sprintf("vehicle type %d has non-positive count", vi))
		}
		if vt.Profile < 0 || vt.Profile >= len(pd.profiles) {
			return vrperr.NewInstanceValidationError(fmt.Sprintf("vehicle type %d references unknown profile %d", vi, vt.Profile))
		}
		if vt.StartDepot < 0 || vt.StartDepot >= pd.numDepots || vt.EndDepot < 0 || vt.EndDepot >= pd.numDepots {
			return vrperr.NewInstanceValidationError(fmt.Sprintf("vehicle type %d references a depot out of range", vi))
		}
	}

	for ci := pd.numDepots; ci < n; ci++ {
		c := pd.locations[ci]
		if !c.Required {
			continue
		}
		if !pd.hasCompatibleVehicle(c) {
			return vrperr.NewInstanceValidationError(fmt.Sprintf("required client %d is unreachable: no vehicle type permits it", ci))
		}
	}

	groupsSeen := make(map[int]bool)
	for _, g := range pd.groups {
		if groupsSeen[g.ID] {
			return vrperr.NewInstanceValidationError(fmt.Sprintf("duplicate group id %d", g.ID))
		}
		groupsSeen[g.ID] = true
	}

	return nil
}

func (pd *ProblemData) hasCompatibleVehicle(c Location) bool {
	if len(c.AllowedVehicleTypes) == 0 {
		return len(pd.vehicleTypes) > 0
	}
	for _, vt := range c.AllowedVehicleTypes {
		if vt >= 0 && vt < len(pd.vehicleTypes) {
			return true
		}
	}
	return false
}

func validateMatrix(m Matrix, n int) error {
	if len(m) != n {
		return fmt.Errorf("expected %d rows, got %d", n, len(m))
	}
	for i, row := range m {
		if len(row) != n {
			return fmt.Errorf("row %d has %d columns, expected %d", i, len(row), n)
		}
		for j, v := range row {
			if v < 0 && v != ForbiddenEdge {
				return fmt.Errorf("negative value at (%d,%d): %d", i, j, v)
			}
		}
	}
	return nil
}

// NumLocations returns the total number of depots plus clients.
func (pd *ProblemData) NumLocations() int { return len(pd.locations) }

// NumDepots returns the count of depot locations (indices [0, NumDepots)).
func (pd *ProblemData) NumDepots() int { return pd.numDepots }

// NumClients returns the count of client locations.
func (pd *ProblemData) NumClients() int { return len(pd.locations) - pd.numDepots }

// Dimensions returns the number of capacity dimensions.
func (pd *ProblemData) Dimensions() int { return pd.dimensions }

// Location returns the location at index i (depot or client).
func (pd *ProblemData) Location(i int) Location { return pd.locations[i] }

// Locations returns the full location slice. Callers must not mutate it.
func (pd *ProblemData) Locations() []Location { return pd.locations }

// IsDepotIndex reports whether i indexes a depot.
func (pd *ProblemData) IsDepotIndex(i int) bool { return i >= 0 && i < pd.numDepots }

// VehicleTypes returns the vehicle type slice.
func (pd *ProblemData) VehicleTypes() []VehicleType { return pd.vehicleTypes }

// VehicleType returns the vehicle type at index i.
func (pd *ProblemData) VehicleType(i int) VehicleType { return pd.vehicleTypes[i] }

// Groups returns the client group slice.
func (pd *ProblemData) Groups() []ClientGroup { return pd.groups }

// GroupOf returns the ClientGroup.ID that client belongs to, and whether
// it belongs to any group at all.
func (pd *ProblemData) GroupOf(client int) (int, bool) {
	id, ok := pd.groupOf[client]
	return id, ok
}

// Profile returns the routing profile at index i.
func (pd *ProblemData) Profile(i int) RoutingProfile { return pd.profiles[i] }

// Distance returns the distance from i to j under the given profile.
func (pd *ProblemData) Distance(profile, i, j int) int64 { return pd.profiles[profile].Distance[i][j] }

// Duration returns the travel duration from i to j under the given profile.
func (pd *ProblemData) Duration(profile, i, j int) int64 { return pd.profiles[profile].Duration[i][j] }

// Summary returns a one-line human-readable instance summary, used by the
// CLI before a solve starts.
func (pd *ProblemData) Summary() string {
	var totalPrize int64
	required := 0
	for i := pd.numDepots; i < len(pd.locations); i++ {
		c := pd.locations[i]
		totalPrize += c.Prize
		if c.Required {
			required++
		}
	}
	return fmt.Sprintf("depots=%d clients=%d required=%d vehicle_types=%d profiles=%d total_prize=%d",
		pd.numDepots, pd.NumClients(), required, len(pd.vehicleTypes), len(pd.profiles), totalPrize)
}
