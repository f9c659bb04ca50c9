package task

import (
	"log/slog"
	"math/rand/v2"
	"sync/atomic"

	"github.com/mchmarny/ncapsim/pkg/rating"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Simulator maps parameter batches to noisy relative risk observations. It
// holds no mutable state and may be shared between goroutines as long as
// each call brings its own random source.
type Simulator struct {
	rating *rating.Rating
	noise  float64
}

// Dim returns the parameter dimensionality.
func (s *Simulator) Dim() int {
	return s.rating.Dim()
}

// NoiseLevel returns the standard deviation of the observation noise.
func (s *Simulator) NoiseLevel() float64 {
	return s.noise
}

// Simulate evaluates an (N, D) parameter batch and returns an (N, 1) batch
// of relative risks with Gaussian noise drawn from src. Each output row
// depends only on its own input row. With a zero noise level src may be nil
// and the result is deterministic.
func (s *Simulator) Simulate(params mat.Matrix, src rand.Source) (*mat.Dense, error) {
	n, d := params.Dims()
	if n == 0 || d != s.rating.Dim() {
		return nil, errors.Wrapf(ErrShape, "simulator: expected (N, %d) parameters, got (%d, %d)", s.rating.Dim(), n, d)
	}
	if s.noise > 0 && src == nil {
		return nil, errors.Wrap(ErrConfig, "noisy simulation requires a random source")
	}

	var noise distuv.Normal
	if s.noise > 0 {
		noise = distuv.Normal{Mu: 0, Sigma: s.noise, Src: src}
	}

	out := mat.NewDense(n, 1, nil)
	row := make([]float64, d)
	for i := 0; i < n; i++ {
		mat.Row(row, i, params)
		risk, err := s.rating.RelativeRisk(row)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		if s.noise > 0 {
			risk += noise.Rand()
		}
		out.Set(i, 0, risk)
	}

	slog.Debug("simulated batch", "rows", n, "noise", s.noise)
	return out, nil
}

// BudgetedSimulator limits the total number of simulated parameter vectors.
// It is safe for concurrent use.
type BudgetedSimulator struct {
	sim  *Simulator
	max  int64
	used atomic.Int64
}

// WithBudget wraps the simulator with a budget of limit simulations.
func (s *Simulator) WithBudget(limit int) *BudgetedSimulator {
	return &BudgetedSimulator{sim: s, max: int64(limit)}
}

// Simulate reserves one simulation per row and runs the batch. A batch that
// would exceed the budget is rejected as a whole and nothing is consumed.
func (b *BudgetedSimulator) Simulate(params mat.Matrix, src rand.Source) (*mat.Dense, error) {
	n, _ := params.Dims()
	rows := int64(n)

	for {
		used := b.used.Load()
		if used+rows > b.max {
			return nil, errors.Wrapf(ErrBudgetExceeded, "requested %d simulations, %d of %d remaining", rows, b.max-used, b.max)
		}
		if b.used.CompareAndSwap(used, used+rows) {
			break
		}
	}

	out, err := b.sim.Simulate(params, src)
	if err != nil {
		b.used.Add(-rows)
		return nil, err
	}
	return out, nil
}

// Used returns the number of simulations consumed so far.
func (b *BudgetedSimulator) Used() int {
	return int(b.used.Load())
}

// Remaining returns the number of simulations left in the budget.
func (b *BudgetedSimulator) Remaining() int {
	return int(b.max - b.used.Load())
}
