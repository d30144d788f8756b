// Command hgssolve loads a VRP instance from JSON, runs the hybrid
// genetic search solver until a stopping criterion fires, and writes the
// best solution found to stdout (or a file), mirroring the boot sequence
// a long-running service follows: load config, wire dependencies, run,
// shut down cleanly on signal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/routeforge/hgsvrp/internal/config"
	"github.com/routeforge/hgsvrp/internal/costeval"
	"github.com/routeforge/hgsvrp/internal/ga"
	"github.com/routeforge/hgsvrp/internal/instanceio"
	"github.com/routeforge/hgsvrp/internal/localsearch"
	"github.com/routeforge/hgsvrp/internal/logging"
	"github.com/routeforge/hgsvrp/internal/neighbours"
	"github.com/routeforge/hgsvrp/internal/population"
	"github.com/routeforge/hgsvrp/internal/rng"
	"github.com/routeforge/hgsvrp/internal/stopping"
)

func main() {
	instancePath := flag.String("instance", "", "path to instance JSON file (required)")
	outputPath := flag.String("output", "", "path to write solution JSON (default: stdout)")
	maxIterations := flag.Int("max-iterations", 0, "override max generations (0 = use config default)")
	maxRuntime := flag.Duration("max-runtime", 0, "override max wall-clock runtime (0 = use config default)")
	flag.Parse()

	cfg := config.Load()
	logging.InitDefaultLogger(&logging.LoggerConfig{
		Level:      logging.LogLevel(cfg.LogLevel),
		Format:     cfg.LogFormat,
		Output:     os.Stdout,
		TimeFormat: time.RFC3339,
	})
	logger := logging.GetLogger()

	if *instancePath == "" {
		logger.LogError(fmt.Errorf("missing required flag"), "no instance file given", map[string]interface{}{"flag": "-instance"})
		os.Exit(2)
	}
	if *maxIterations > 0 {
		cfg.MaxIterations = *maxIterations
	}
	if *maxRuntime > 0 {
		cfg.MaxRuntime = *maxRuntime
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *instancePath, *outputPath); err != nil {
		logger.LogError(err, "solve failed", nil)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, instancePath, outputPath string) error {
	logger := logging.GetLogger()

	problem, err := instanceio.LoadFile(instancePath)
	if err != nil {
		return err
	}
	logger.Info("instance loaded", "summary", problem.Summary())

	nbrs := neighbours.Build(problem, cfg.Neighbours)
	penalties := costeval.DefaultPenalties()
	evaluator := costeval.New(problem, penalties, cfg.CostEval)
	r := rng.New(cfg.Seed)
	engine := localsearch.New(problem, nbrs, evaluator, r, cfg.LocalSearch)
	pop := population.New(evaluator, cfg.Population)

	solver := ga.New(problem, nbrs, evaluator, engine, pop, r, cfg.GA, logger)

	criterion := stopping.NewMultipleCriteria(stopping.Any,
		stopping.NewMaxIterations(cfg.MaxIterations),
		stopping.NewMaxRuntime(cfg.MaxRuntime),
		stopping.NewNoImprovement(cfg.NoImprovementIters),
		contextCriterion{ctx},
	)

	best := solver.Run(criterion)
	logger.Info("solve complete", "best_cost", evaluator.PenalizedCost(best), "feasible", best.IsFeasible())

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := instanceio.WriteSolution(out, best, evaluator); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, solver.Stats().DumpText())
	return nil
}

// contextCriterion adapts ctx cancellation (e.g. SIGINT/SIGTERM) into a
// stopping.Criterion so a signal can interrupt a run cleanly between
// generations.
type contextCriterion struct {
	ctx context.Context
}

func (c contextCriterion) ShouldStop(int64) bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}
