package rating

import (
	"math"

	"github.com/mchmarny/ncapsim/pkg/injury"
	"github.com/pkg/errors"
)

// Component is a scenario and its weight in the overall rating.
type Component struct {
	Scenario Scenario
	Weight   float64
}

// ScenarioRisk is the relative risk of one scenario within a rating.
type ScenarioRisk struct {
	Scenario     string  `json:"scenario" yaml:"scenario"`
	Weight       float64 `json:"weight" yaml:"weight"`
	RelativeRisk float64 `json:"relative_risk" yaml:"relative_risk"`
}

// Rating is the weighted combination of scenario risks. The parameter vector
// is the concatenation of the scenario blocks in component order. Weights are
// renormalised over the components present, so a rating covering a subset of
// scenarios stays on the same scale as the full one.
type Rating struct {
	components []Component
	total      float64
	dim        int
}

// New creates a rating from the given components.
func New(components ...Component) (*Rating, error) {
	if len(components) == 0 {
		return nil, errors.Wrap(ErrInvalidWeights, "rating requires at least one scenario")
	}

	r := &Rating{components: append([]Component(nil), components...)}
	for _, c := range components {
		if c.Scenario == nil {
			return nil, errors.New("rating component without scenario")
		}
		if v, ok := c.Scenario.(interface{ Validate() error }); ok {
			if err := v.Validate(); err != nil {
				return nil, errors.Wrapf(err, "scenario %s", c.Scenario.Name())
			}
		}
		if c.Weight < 0 || math.IsNaN(c.Weight) {
			return nil, errors.Wrapf(ErrInvalidWeights, "%s: negative weight %v", c.Scenario.Name(), c.Weight)
		}
		r.total += c.Weight
		r.dim += c.Scenario.Dim()
	}
	if !(r.total > 0) {
		return nil, errors.Wrap(ErrInvalidWeights, "rating weights sum to zero")
	}
	return r, nil
}

// Overall returns the full US NCAP rating over full frontal, side impact and
// rollover with the given weights.
func Overall(baseRisk float64, curves injury.Curves, w OverallWeights) (*Rating, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return New(
		Component{Scenario: NewFullFrontalCrash(baseRisk, curves), Weight: w.FullFrontal},
		Component{Scenario: NewSideImpact(baseRisk, curves), Weight: w.Side},
		Component{Scenario: NewRollOver(baseRisk), Weight: w.RollOver},
	)
}

// Dim returns the width of the parameter vector.
func (r *Rating) Dim() int {
	return r.dim
}

// Components returns a copy of the rating components.
func (r *Rating) Components() []Component {
	return append([]Component(nil), r.components...)
}

// Labels returns the parameter names in positional order.
func (r *Rating) Labels() []string {
	labels := make([]string, 0, r.dim)
	for _, c := range r.components {
		labels = append(labels, c.Scenario.Labels()...)
	}
	return labels
}

// Breakdown returns the relative risk of every scenario for one parameter
// vector.
func (r *Rating) Breakdown(row []float64) ([]ScenarioRisk, error) {
	if len(row) != r.dim {
		return nil, errors.Wrapf(ErrShape, "rating: expected %d parameters, got %d", r.dim, len(row))
	}

	out := make([]ScenarioRisk, 0, len(r.components))
	offset := 0
	for _, c := range r.components {
		d := c.Scenario.Dim()
		risk, err := c.Scenario.RelativeRisk(row[offset : offset+d])
		if err != nil {
			return nil, errors.Wrapf(err, "scenario %s", c.Scenario.Name())
		}
		out = append(out, ScenarioRisk{
			Scenario:     c.Scenario.Name(),
			Weight:       c.Weight / r.total,
			RelativeRisk: risk,
		})
		offset += d
	}
	return out, nil
}

// RelativeRisk returns the noise free overall relative risk.
func (r *Rating) RelativeRisk(row []float64) (float64, error) {
	parts, err := r.Breakdown(row)
	if err != nil {
		return 0, err
	}
	var risk float64
	for _, p := range parts {
		risk += p.Weight * p.RelativeRisk
	}
	return risk, nil
}
