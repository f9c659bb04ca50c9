package rating

import (
	"math"

	"github.com/pkg/errors"
)

const weightTolerance = 1e-9

// ErrInvalidWeights is returned when a weight set does not sum to one or
// carries a negative weight.
var ErrInvalidWeights = errors.New("invalid weights")

// FrontalWeights splits the full frontal risk between driver and passenger.
type FrontalWeights struct {
	Driver    float64 `json:"driver" yaml:"driver"`
	Passenger float64 `json:"passenger" yaml:"passenger"`
}

// DefaultFrontalWeights returns the equal driver/passenger split.
func DefaultFrontalWeights() FrontalWeights {
	return FrontalWeights{Driver: 0.5, Passenger: 0.5}
}

func (w FrontalWeights) Sum() float64 { return w.Driver + w.Passenger }

func (w FrontalWeights) Validate() error {
	return validateWeights("frontal", w.Driver, w.Passenger)
}

// SideFrontWeights blends the side pole and side barrier front seat risks.
type SideFrontWeights struct {
	Pole    float64 `json:"pole" yaml:"pole"`
	Barrier float64 `json:"barrier" yaml:"barrier"`
}

// DefaultSideFrontWeights returns the 0.2 pole / 0.8 barrier blend.
func DefaultSideFrontWeights() SideFrontWeights {
	return SideFrontWeights{Pole: 0.2, Barrier: 0.8}
}

func (w SideFrontWeights) Sum() float64 { return w.Pole + w.Barrier }

func (w SideFrontWeights) Validate() error {
	return validateWeights("side front", w.Pole, w.Barrier)
}

// SideWeights splits the side impact risk between front and rear seats.
type SideWeights struct {
	Front float64 `json:"front" yaml:"front"`
	Rear  float64 `json:"rear" yaml:"rear"`
}

// DefaultSideWeights returns the equal front/rear split.
func DefaultSideWeights() SideWeights {
	return SideWeights{Front: 0.5, Rear: 0.5}
}

func (w SideWeights) Sum() float64 { return w.Front + w.Rear }

func (w SideWeights) Validate() error {
	return validateWeights("side", w.Front, w.Rear)
}

// OverallWeights combines the scenario risks into the overall rating.
type OverallWeights struct {
	FullFrontal float64 `json:"full_frontal" yaml:"full_frontal"`
	Side        float64 `json:"side" yaml:"side"`
	RollOver    float64 `json:"rollover" yaml:"rollover"`
}

// DefaultOverallWeights returns 5/12 full frontal, 4/12 side, 3/12 rollover.
func DefaultOverallWeights() OverallWeights {
	return OverallWeights{
		FullFrontal: 5.0 / 12.0,
		Side:        4.0 / 12.0,
		RollOver:    3.0 / 12.0,
	}
}

func (w OverallWeights) Sum() float64 { return w.FullFrontal + w.Side + w.RollOver }

func (w OverallWeights) Validate() error {
	return validateWeights("overall", w.FullFrontal, w.Side, w.RollOver)
}

func validateWeights(name string, ws ...float64) error {
	var sum float64
	for _, w := range ws {
		if w < 0 || math.IsNaN(w) {
			return errors.Wrapf(ErrInvalidWeights, "%s: negative weight %v", name, w)
		}
		sum += w
	}
	if math.Abs(sum-1) > weightTolerance {
		return errors.Wrapf(ErrInvalidWeights, "%s: weights sum to %.6f, must sum to 1", name, sum)
	}
	return nil
}
