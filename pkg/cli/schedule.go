package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"runtime"

	"github.com/mchmarny/ncapsim/pkg/task"
	urfave "github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const (
	budgetFlagName  = "budget"
	workersFlagName = "workers"
)

func newScheduleCmd() *urfave.Command {
	return &urfave.Command{
		Name:  "schedule",
		Usage: "Run the num_simulations schedule against a shared simulation budget",
		UsageText: `ncapsim schedule --config config.yaml
   ncapsim schedule --config config.yaml --budget 5000`,
		Action: cmdSchedule,
		Flags: []urfave.Flag{
			&urfave.IntFlag{
				Name:  budgetFlagName,
				Usage: "Maximum number of simulator calls across all batches (optional, default: schedule total)",
			},
			&urfave.IntFlag{
				Name:  workersFlagName,
				Usage: "Number of batches simulated concurrently",
				Value: runtime.NumCPU(),
			},
		},
	}
}

// BatchSummary describes one scheduled batch. Stats is nil when the batch
// was not simulated.
type BatchSummary struct {
	NumSimulations int         `json:"num_simulations" yaml:"num_simulations"`
	Stats          *BatchStats `json:"stats,omitempty" yaml:"stats,omitempty"`
	Error          string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// BatchStats summarizes the observations of a batch.
type BatchStats struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
}

// ScheduleResult is the output of the schedule command.
type ScheduleResult struct {
	Variant string         `json:"variant" yaml:"variant"`
	Budget  int            `json:"budget" yaml:"budget"`
	Used    int            `json:"used" yaml:"used"`
	Batches []BatchSummary `json:"batches" yaml:"batches"`
}

func cmdSchedule(ctx context.Context, cmd *urfave.Command) error {
	cfg, err := getConfig(cmd)
	if err != nil {
		return err
	}

	schedule := cfg.Task.Config().NumSimulations
	budget := cmd.Int(budgetFlagName)
	if budget <= 0 {
		for _, n := range schedule {
			budget += n
		}
	}

	sim := cfg.Task.Simulator().WithBudget(budget)
	batches := make([]BatchSummary, len(schedule))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cmd.Int(workersFlagName), 1))

	for i, n := range schedule {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			seed := cfg.Seed + uint64(i)
			b, err := runBatch(cfg.Task, sim, n, seed)
			if errors.Is(err, task.ErrBudgetExceeded) {
				slog.Warn("batch skipped", "num_simulations", n, "remaining", sim.Remaining())
				batches[i] = BatchSummary{NumSimulations: n, Error: err.Error()}
				return nil
			}
			if err != nil {
				return fmt.Errorf("batch %d: %w", n, err)
			}
			slog.Info("batch done", "num_simulations", n, "mean", b.Stats.Mean)
			batches[i] = *b
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return cfg.encode(&ScheduleResult{
		Variant: cfg.Task.Config().Variant.String(),
		Budget:  budget,
		Used:    sim.Used(),
		Batches: batches,
	})
}

func runBatch(t *task.Task, sim *task.BudgetedSimulator, n int, seed uint64) (*BatchSummary, error) {
	params, err := t.Prior().Sample(n, rand.NewPCG(seed, priorStream))
	if err != nil {
		return nil, err
	}

	obs, err := sim.Simulate(params, rand.NewPCG(seed, noiseStream))
	if err != nil {
		return nil, err
	}

	ys := mat.Col(nil, 0, obs)
	mean, std := stat.MeanStdDev(ys, nil)
	if len(ys) < 2 {
		std = 0
	}
	return &BatchSummary{
		NumSimulations: n,
		Stats: &BatchStats{
			Mean:   mean,
			StdDev: std,
			Min:    floats.Min(ys),
			Max:    floats.Max(ys),
		},
	}, nil
}
