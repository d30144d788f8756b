package ga

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/routeforge/hgsvrp/internal/costeval"
	"github.com/routeforge/hgsvrp/internal/population"
)

// GenerationStats summarizes one generation's population state, modelled
// on a per-iteration metrics sample.
type GenerationStats struct {
	ID                string
	Generation        int
	FeasibleSize       int
	InfeasibleSize     int
	BestFeasible       int64
	BestInfeasible     int64
	Penalties          costeval.Penalties
	Duration           time.Duration
}

// StatsCollector accumulates GenerationStats across a run and can render
// a human-readable end-of-run summary block.
type StatsCollector struct {
	history []GenerationStats
}

// NewStatsCollector returns an empty collector.
func NewStatsCollector() *StatsCollector {
	return &StatsCollector{}
}

// Record appends one generation's statistics.
func (c *StatsCollector) Record(gen int, pop *population.Population, eval *costeval.CostEvaluator, duration time.Duration) GenerationStats {
	var bestFeasible, bestInfeasible int64
	if bf := pop.BestFeasible(); bf != nil {
		bestFeasible = eval.PenalizedCost(bf)
	}
	if bi := pop.BestInfeasible(); bi != nil {
		bestInfeasible = eval.PenalizedCost(bi)
	}
	s := GenerationStats{
		ID:             uuid.NewString(),
		Generation:     gen,
		FeasibleSize:   pop.FeasibleSize(),
		InfeasibleSize: pop.InfeasibleSize(),
		BestFeasible:   bestFeasible,
		BestInfeasible: bestInfeasible,
		Penalties:      *eval.Penalties(),
		Duration:       duration,
	}
	c.history = append(c.history, s)
	return s
}

// History returns every recorded generation's statistics.
func (c *StatsCollector) History() []GenerationStats { return c.history }

// Latest returns the most recently recorded statistics, or the zero
// value if none have been recorded.
func (c *StatsCollector) Latest() GenerationStats {
	if len(c.history) == 0 {
		return GenerationStats{}
	}
	return c.history[len(c.history)-1]
}

// DumpText renders a plain-text end-of-run summary, one line per
// generation, suitable for CLI output.
func (c *StatsCollector) DumpText() string {
	var b strings.Builder
	b.WriteString("# generation  feasible  infeasible  best_feasible  best_infeasible  duration\n")
	for _, s := range c.history {
		fmt.Fprintf(&b, "%d %d %d %d %d %s\n", s.Generation, s.FeasibleSize, s.InfeasibleSize, s.BestFeasible, s.BestInfeasible, s.Duration)
	}
	return b.String()
}
