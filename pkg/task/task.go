package task

import (
	"github.com/mchmarny/ncapsim/pkg/injury"
	"github.com/mchmarny/ncapsim/pkg/rating"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var observationLabels = []string{"relative_risk"}

// Task is the US NCAP benchmark task: a uniform prior over crash-test
// measurements and a simulator mapping them to a relative risk rating.
type Task struct {
	cfg    Config
	rating *rating.Rating
	prior  *Prior
	sim    *Simulator
}

// New validates cfg and builds the task with the published curves.
func New(cfg Config) (*Task, error) {
	return NewWithCurves(cfg, injury.DefaultCurves())
}

// NewWithCurves builds the task with a substitute curve table.
func NewWithCurves(cfg Config, curves injury.Curves) (*Task, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := curves.Validate(); err != nil {
		return nil, errors.Wrapf(ErrConfig, "curves: %v", err)
	}

	r, err := cfg.Variant.Rating(cfg.BaseRisk, curves)
	if err != nil {
		return nil, err
	}

	cfg = cfg.clone()
	return &Task{
		cfg:    cfg,
		rating: r,
		prior:  newPrior(cfg.PriorLowerBound, cfg.PriorUpperBound),
		sim:    &Simulator{rating: r, noise: cfg.NoiseLevel},
	}, nil
}

// Name returns the task name.
func (t *Task) Name() string {
	return t.cfg.Name
}

// Config returns a copy of the task configuration.
func (t *Task) Config() Config {
	return t.cfg.clone()
}

// Rating returns the rating the simulator evaluates.
func (t *Task) Rating() *rating.Rating {
	return t.rating
}

// Prior returns the parameter prior.
func (t *Task) Prior() *Prior {
	return t.prior
}

// Simulator returns the unbudgeted simulator.
func (t *Task) Simulator() *Simulator {
	return t.sim
}

// ParameterLabels returns one name per parameter dimension.
func (t *Task) ParameterLabels() []string {
	return t.rating.Labels()
}

// ObservationLabels returns one name per observation dimension.
func (t *Task) ObservationLabels() []string {
	return append([]string(nil), observationLabels...)
}

// Observation is not available for this task.
func (t *Task) Observation(num int) (*mat.Dense, error) {
	return nil, errors.Wrapf(ErrNotImplemented, "observation %d", num)
}

// ReferencePosteriorSamples is not available for this task.
func (t *Task) ReferencePosteriorSamples(num int) (*mat.Dense, error) {
	return nil, errors.Wrapf(ErrNotImplemented, "reference posterior samples %d", num)
}
