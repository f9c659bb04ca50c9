package task

import (
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Prior is an independent uniform distribution per parameter dimension.
type Prior struct {
	dists []distuv.Uniform
}

func newPrior(lower, upper []float64) *Prior {
	p := &Prior{dists: make([]distuv.Uniform, len(lower))}
	for i := range lower {
		p.dists[i] = distuv.Uniform{Min: lower[i], Max: upper[i]}
	}
	return p
}

// Dim returns the parameter dimensionality.
func (p *Prior) Dim() int {
	return len(p.dists)
}

// Bounds returns copies of the lower and upper bounds.
func (p *Prior) Bounds() (lower, upper []float64) {
	lower = make([]float64, len(p.dists))
	upper = make([]float64, len(p.dists))
	for i, d := range p.dists {
		lower[i], upper[i] = d.Min, d.Max
	}
	return lower, upper
}

// Sample draws n parameter vectors into an (n, Dim) matrix using src.
func (p *Prior) Sample(n int, src rand.Source) (*mat.Dense, error) {
	if n <= 0 {
		return nil, errors.Errorf("number of samples must be positive, got %d", n)
	}
	if src == nil {
		return nil, errors.Wrap(ErrConfig, "prior sampling requires a random source")
	}

	dists := make([]distuv.Uniform, len(p.dists))
	for i, d := range p.dists {
		d.Src = src
		dists[i] = d
	}

	out := mat.NewDense(n, len(dists), nil)
	for i := 0; i < n; i++ {
		for j := range dists {
			out.Set(i, j, dists[j].Rand())
		}
	}
	return out, nil
}

// LogProb returns the log density of one parameter vector. Vectors outside
// the support have a log density of -Inf.
func (p *Prior) LogProb(row []float64) (float64, error) {
	if len(row) != len(p.dists) {
		return 0, errors.Wrapf(ErrShape, "prior: expected %d parameters, got %d", len(p.dists), len(row))
	}
	var lp float64
	for i, d := range p.dists {
		lp += d.LogProb(row[i])
		if math.IsInf(lp, -1) {
			return lp, nil
		}
	}
	return lp, nil
}
