package stopping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMaxIterationsStopsAfterLimit(t *testing.T) {
	c := NewMaxIterations(3)
	assert.False(t, c.ShouldStop(0))
	assert.False(t, c.ShouldStop(0))
	assert.True(t, c.ShouldStop(0))
}

func TestMaxIterationsLatches(t *testing.T) {
	c := NewMaxIterations(1)
	assert.True(t, c.ShouldStop(0))
	assert.True(t, c.ShouldStop(0))
}

func TestMaxRuntimeStopsAfterBudget(t *testing.T) {
	c := NewMaxRuntime(10 * time.Millisecond)
	assert.False(t, c.ShouldStop(0))
	time.Sleep(15 * time.Millisecond)
	assert.True(t, c.ShouldStop(0))
}

func TestNoImprovementStopsAfterStreak(t *testing.T) {
	c := NewNoImprovement(2)
	assert.False(t, c.ShouldStop(100))
	assert.False(t, c.ShouldStop(100))
	assert.True(t, c.ShouldStop(100))
}

func TestNoImprovementResetsOnImprovement(t *testing.T) {
	c := NewNoImprovement(2)
	assert.False(t, c.ShouldStop(100))
	assert.False(t, c.ShouldStop(100))
	assert.False(t, c.ShouldStop(50))
	assert.False(t, c.ShouldStop(50))
}

func TestMultipleCriteriaAny(t *testing.T) {
	a := NewMaxIterations(100)
	b := NewNoImprovement(1)
	m := NewMultipleCriteria(Any, a, b)

	assert.False(t, m.ShouldStop(10))
	assert.True(t, m.ShouldStop(10))
}

func TestMultipleCriteriaAll(t *testing.T) {
	a := NewMaxIterations(2)
	b := NewNoImprovement(3)
	m := NewMultipleCriteria(All, a, b)

	assert.False(t, m.ShouldStop(10))
	assert.False(t, m.ShouldStop(10))
	assert.False(t, m.ShouldStop(10))
	assert.True(t, m.ShouldStop(10))
}
