package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/routeforge/hgsvrp/internal/model"
)

func loc(id int, early, late, service int64) model.Location {
	return model.Location{ID: id, TWEarly: early, TWLate: late, ServiceDuration: service}
}

func TestConcatenateAssociativity(t *testing.T) {
	a := Unit(loc(0, 0, 100, 5))
	b := Unit(loc(1, 10, 50, 3))
	c := Unit(loc(2, 20, 80, 2))

	const edgeAB, edgeBC, edgeCA = 4, 6, 7

	left := Concatenate(Concatenate(a, b, edgeAB, edgeAB), c, edgeBC, edgeBC)
	right := Concatenate(a, Concatenate(b, c, edgeBC, edgeBC), edgeAB, edgeAB)

	assert.Equal(t, left, right)
}

func TestConcatenateNoTimeWarpWhenFeasible(t *testing.T) {
	a := Unit(loc(0, 0, 100, 0))
	b := Unit(loc(1, 5, 100, 0))

	got := Concatenate(a, b, 3, 3)

	assert.Equal(t, int64(0), got.TimeWarp)
	assert.Equal(t, int64(3), got.Duration)
}

func TestConcatenateAccumulatesTimeWarp(t *testing.T) {
	a := Unit(loc(0, 0, 10, 0))
	b := Unit(loc(1, 0, 5, 0))

	got := Concatenate(a, b, 10, 10)

	assert.Greater(t, got.TimeWarp, int64(0))
}

func TestLoadSegmentConcatenateDelivery(t *testing.T) {
	c1 := model.Location{Delivery: []int64{5}, Pickup: []int64{0}}
	c2 := model.Location{Delivery: []int64{3}, Pickup: []int64{0}}

	a := UnitLoad(c1, 1)
	b := UnitLoad(c2, 1)

	got := ConcatenateLoad(a, b)

	assert.Equal(t, int64(8), got.Delivery[0])
	assert.Equal(t, int64(8), got.Load[0])
}

func TestLoadSegmentPickupDeliveryMix(t *testing.T) {
	c1 := model.Location{Delivery: []int64{5}, Pickup: []int64{2}}
	c2 := model.Location{Delivery: []int64{1}, Pickup: []int64{4}}

	a := UnitLoad(c1, 1)
	b := UnitLoad(c2, 1)

	got := ConcatenateLoad(a, b)

	assert.Equal(t, int64(6), got.Delivery[0])
	assert.Equal(t, int64(6), got.Pickup[0])
	assert.Equal(t, int64(6), got.Load[0])
}

func TestExcessLoad(t *testing.T) {
	l := LoadSegment{Load: []int64{12, 3}}
	excess := l.ExcessLoad([]int64{10, 10})
	assert.Equal(t, []int64{2, 0}, excess)
	assert.Equal(t, int64(2), l.TotalExcessLoad([]int64{10, 10}))
}
