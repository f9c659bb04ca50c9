package task

import (
	"math"

	"github.com/mchmarny/ncapsim/pkg/injury"
	"github.com/mchmarny/ncapsim/pkg/rating"
	"github.com/pkg/errors"
)

const (
	// DefaultName is the task name used by the benchmark.
	DefaultName = "us_ncap"

	DefaultBaseRisk   = 0.15
	DefaultNoiseLevel = 0.1

	defaultNumObservations              = 10
	defaultNumPosteriorSamples          = 10_000
	defaultNumReferencePosteriorSamples = 10_000
)

// DefaultNumSimulations is the simulation budget schedule of the benchmark.
var DefaultNumSimulations = []int{100, 1_000, 10_000, 100_000, 1_000_000}

type bounds struct {
	lower, upper []float64
}

// Prior bounds of each scenario block, in measurement order. Frontal
// occupants: HIC, chest deflection (mm), femur load (kN), NIJ, neck
// compression and tension (kN). Side occupants: HIC, rib deflection (mm),
// abdominal and pelvic force (N).
var (
	frontalOccupantBounds = bounds{
		lower: []float64{200, 5, 2, 0.0, 1.5, 1.0},
		upper: []float64{800, 42.5, 8.0, 0.75, 4.0, 4.0},
	}
	sideRearBounds = bounds{
		lower: []float64{100, 1000},
		upper: []float64{800, 6000},
	}
	sideFrontBounds = bounds{
		lower: []float64{100, 10, 500, 1000},
		upper: []float64{800, 50, 2500, 6000},
	}
	rollOverBounds = bounds{
		lower: []float64{0.05},
		upper: []float64{0.30},
	}

	scenarioBounds = map[string][]bounds{
		rating.FrontalDriverName: {frontalOccupantBounds},
		rating.FullFrontalName:   {frontalOccupantBounds, frontalOccupantBounds},
		rating.SideImpactName:    {sideRearBounds, sideFrontBounds, sideRearBounds},
		rating.RollOverName:      {rollOverBounds},
	}
)

// Config is the constructor time configuration of a task. It is immutable
// once passed to New.
type Config struct {
	Name                         string    `json:"name" yaml:"name"`
	Variant                      Variant   `json:"variant" yaml:"variant"`
	DimData                      int       `json:"dim_data" yaml:"dim_data"`
	BaseRisk                     float64   `json:"base_risk" yaml:"base_risk"`
	NoiseLevel                   float64   `json:"noise_level" yaml:"noise_level"`
	PriorLowerBound              []float64 `json:"prior_lower_bound" yaml:"prior_lower_bound"`
	PriorUpperBound              []float64 `json:"prior_upper_bound" yaml:"prior_upper_bound"`
	NumSimulations               []int     `json:"num_simulations" yaml:"num_simulations"`
	NumObservations              int       `json:"num_observations" yaml:"num_observations"`
	NumPosteriorSamples          int       `json:"num_posterior_samples" yaml:"num_posterior_samples"`
	NumReferencePosteriorSamples int       `json:"num_reference_posterior_samples" yaml:"num_reference_posterior_samples"`
}

// DefaultConfig returns the benchmark configuration of the variant.
func DefaultConfig(v Variant) (Config, error) {
	lower, upper, err := DefaultBounds(v)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Name:                         DefaultName,
		Variant:                      v,
		DimData:                      1,
		BaseRisk:                     DefaultBaseRisk,
		NoiseLevel:                   DefaultNoiseLevel,
		PriorLowerBound:              lower,
		PriorUpperBound:              upper,
		NumSimulations:               append([]int(nil), DefaultNumSimulations...),
		NumObservations:              defaultNumObservations,
		NumPosteriorSamples:          defaultNumPosteriorSamples,
		NumReferencePosteriorSamples: defaultNumReferencePosteriorSamples,
	}, nil
}

// DefaultBounds returns the default prior bounds of the variant.
func DefaultBounds(v Variant) (lower, upper []float64, err error) {
	r, err := v.Rating(DefaultBaseRisk, injury.DefaultCurves())
	if err != nil {
		return nil, nil, err
	}
	for _, c := range r.Components() {
		for _, b := range scenarioBounds[c.Scenario.Name()] {
			lower = append(lower, b.lower...)
			upper = append(upper, b.upper...)
		}
	}
	return lower, upper, nil
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	dim := c.Variant.Dim()
	if dim == 0 {
		return errors.Wrapf(ErrConfig, "unknown variant: %q", string(c.Variant))
	}
	if c.DimData != 1 {
		return errors.Wrapf(ErrConfig, "dim_data must be 1, got %d", c.DimData)
	}
	if !(c.BaseRisk > 0) || math.IsInf(c.BaseRisk, 0) {
		return errors.Wrapf(ErrConfig, "base_risk must be positive, got %v", c.BaseRisk)
	}
	if !(c.NoiseLevel >= 0) || math.IsInf(c.NoiseLevel, 0) {
		return errors.Wrapf(ErrConfig, "noise_level must be non-negative, got %v", c.NoiseLevel)
	}
	if len(c.PriorLowerBound) != dim || len(c.PriorUpperBound) != dim {
		return errors.Wrapf(ErrConfig, "prior bounds must have %d values, got %d and %d",
			dim, len(c.PriorLowerBound), len(c.PriorUpperBound))
	}
	for i := range c.PriorLowerBound {
		if !(c.PriorLowerBound[i] < c.PriorUpperBound[i]) {
			return errors.Wrapf(ErrConfig, "prior bound %d: lower %v must be below upper %v",
				i, c.PriorLowerBound[i], c.PriorUpperBound[i])
		}
	}
	for _, n := range c.NumSimulations {
		if n <= 0 {
			return errors.Wrapf(ErrConfig, "num_simulations must be positive, got %d", n)
		}
	}
	return nil
}

func (c Config) clone() Config {
	c.PriorLowerBound = append([]float64(nil), c.PriorLowerBound...)
	c.PriorUpperBound = append([]float64(nil), c.PriorUpperBound...)
	c.NumSimulations = append([]int(nil), c.NumSimulations...)
	return c
}
