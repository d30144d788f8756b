// Package model holds the immutable problem instance: locations, vehicle
// types, routing profiles and client groups.
package model

// ForbiddenEdge is the sentinel distance/duration value denoting an
// impassable edge between two locations.
const ForbiddenEdge = int64(1) << 61

// Location is a depot or a client. Depots use the zero value for the
// client-only fields (Delivery/Pickup/Prize/Required/Group/AllowedVehicleTypes).
type Location struct {
	ID                  int
	X, Y                int64
	ServiceDuration      int64
	TWEarly, TWLate      int64
	ReleaseTime          int64
	Delivery             []int64
	Pickup               []int64
	Prize                int64
	Required             bool
	Group                int // -1 if the location belongs to no group
	AllowedVehicleTypes  []int // empty means all vehicle types are allowed
}

// IsDepot reports whether a location has no client-specific demand;
// depots are distinguished structurally by their index (< NumDepots), not
// by this heuristic, but it is useful for diagnostics.
func (l Location) IsDepot() bool {
	return !l.Required && l.Prize == 0 && len(l.Delivery) == 0 && len(l.Pickup) == 0
}

// Matrix is a square distance or duration matrix over location indices.
type Matrix [][]int64

// RoutingProfile names one (distance, duration) matrix pair.
type RoutingProfile struct {
	Name     string
	Distance Matrix
	Duration Matrix
}

// VehicleType describes a homogeneous fleet of vehicles.
type VehicleType struct {
	ID               int
	Count            int
	Capacity         []int64
	StartDepot       int
	EndDepot         int
	ShiftEarly       int64
	ShiftLate        int64
	MaxDuration      int64
	MaxDistance      int64
	FixedCost        int64
	UnitDistanceCost int64
	UnitDurationCost int64
	Profile          int
	ReloadDepots     []int
	MaxReloads       int
}

// ClientGroup is a mutually-exclusive set of client indices; at most one
// member may appear in a feasible solution.
type ClientGroup struct {
	ID      int
	Members []int
}
