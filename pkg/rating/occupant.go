package rating

import (
	"github.com/mchmarny/ncapsim/pkg/injury"
	"github.com/pkg/errors"
)

// ErrShape is returned when a measurement or probability vector does not
// have the width its consumer requires.
var ErrShape = errors.New("shape mismatch")

// OccupantKind selects the measurement layout and curves of an occupant.
type OccupantKind int

const (
	FrontalDriverOccupant OccupantKind = iota
	FrontalPassengerOccupant
	SideFrontOccupant
	SideRearOccupant
)

var occupantLabels = map[OccupantKind][]string{
	FrontalDriverOccupant:    {"hic", "chest_deflection", "femur_load", "nij", "neck_compression", "neck_tension"},
	FrontalPassengerOccupant: {"hic", "chest_deflection", "femur_load", "nij", "neck_compression", "neck_tension"},
	SideFrontOccupant:        {"hic", "rib_deflection", "abdominal_force", "pelvic_force"},
	SideRearOccupant:         {"hic", "pelvic_force"},
}

func (k OccupantKind) String() string {
	switch k {
	case FrontalDriverOccupant:
		return "frontal driver"
	case FrontalPassengerOccupant:
		return "frontal passenger"
	case SideFrontOccupant:
		return "side front"
	case SideRearOccupant:
		return "side rear"
	default:
		return "unknown"
	}
}

// regions is the number of body region probabilities each kind produces.
var regions = map[OccupantKind]int{
	FrontalDriverOccupant:    4,
	FrontalPassengerOccupant: 4,
	SideFrontOccupant:        4,
	SideRearOccupant:         2,
}

// Occupant evaluates the injury risk of one dummy in one crash test.
type Occupant struct {
	Kind   OccupantKind
	Curves injury.Curves
}

// Dim returns the number of measurements the occupant consumes.
func (o Occupant) Dim() int {
	return len(occupantLabels[o.Kind])
}

// Labels returns the measurement names in positional order.
func (o Occupant) Labels() []string {
	return append([]string(nil), occupantLabels[o.Kind]...)
}

// Probabilities converts the measurements into per body region injury
// probabilities. Full frontal occupants report the worst of the three neck
// modes as a single neck probability.
func (o Occupant) Probabilities(m []float64) ([]float64, error) {
	if len(m) != o.Dim() {
		return nil, errors.Wrapf(ErrShape, "%s occupant: expected %d measurements, got %d", o.Kind, o.Dim(), len(m))
	}

	c := o.Curves
	head := c.HIC.Probability(m[0])

	switch o.Kind {
	case FrontalDriverOccupant, FrontalPassengerOccupant:
		role := injury.Driver
		if o.Kind == FrontalPassengerOccupant {
			role = injury.Passenger
		}
		f := c.Frontal(role)
		neck := injury.Max(
			c.NIJ.Probability(m[3]),
			f.Neck.Probability(m[4]),
			f.Neck.Probability(m[5]),
		)
		return []float64{head, f.Chest.Probability(m[1]), f.Femur.Probability(m[2]), neck}, nil
	case SideFrontOccupant:
		return []float64{
			head,
			c.SideRib.Probability(m[1]),
			c.SideAbdomen.Probability(m[2]),
			c.SidePelvisFront.Probability(m[3]),
		}, nil
	case SideRearOccupant:
		return []float64{head, c.SidePelvisRear.Probability(m[1])}, nil
	default:
		return nil, errors.Errorf("unknown occupant kind: %d", int(o.Kind))
	}
}

// RelativeRisk returns the combined injury probability of the occupant
// normalised by baseRisk.
func (o Occupant) RelativeRisk(m []float64, baseRisk float64) (float64, error) {
	ps, err := o.Probabilities(m)
	if err != nil {
		return 0, err
	}
	return RelativeRisk(ps, regions[o.Kind], baseRisk)
}

// Combine returns 1 − Π(1 − p), the probability that at least one region is
// injured assuming independence.
func Combine(ps []float64) float64 {
	q := 1.0
	for _, p := range ps {
		q *= 1 - p
	}
	return 1 - q
}

// RelativeRisk combines exactly want probabilities and divides by baseRisk.
func RelativeRisk(ps []float64, want int, baseRisk float64) (float64, error) {
	if len(ps) != want {
		return 0, errors.Wrapf(ErrShape, "expected %d probabilities, got %d", want, len(ps))
	}
	return Combine(ps) / baseRisk, nil
}
