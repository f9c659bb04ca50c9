package rating

import (

	"github.com/mchmarny/ncapsim/pkg/injury"
	"github.com/pkg/errors"
)

// Scenario names, also used as label prefixes.
const (
	FrontalDriverName = "frontal_driver"
	FullFrontalName   = "full_frontal"
	SideImpactName    = "side"
	RollOverName      = "rollover"
)

// Scenario computes the relative risk of one crash scenario from its block
// of measurements.
type Scenario interface {
	Name() string
	Dim() int
	Labels() []string
	RelativeRisk(m []float64) (float64, error)
}

// FrontalDriver rates the driver of a full frontal test on its own.
type FrontalDriver struct {
	BaseRisk float64
	Curves   injury.Curves
}

// NewFrontalDriver returns the driver only frontal scenario.
func NewFrontalDriver(baseRisk float64, curves injury.Curves) *FrontalDriver {
	return &FrontalDriver{BaseRisk: baseRisk, Curves: curves}
}

func (s *FrontalDriver) occupant() Occupant {
	return Occupant{Kind: FrontalDriverOccupant, Curves: s.Curves}
}

func (s *FrontalDriver) Name() string { return FrontalDriverName }

func (s *FrontalDriver) Dim() int { return s.occupant().Dim() }

func (s *FrontalDriver) Labels() []string {
	return prefixed("ff_driver", s.occupant().Labels())
}

func (s *FrontalDriver) RelativeRisk(m []float64) (float64, error) {
	return s.occupant().RelativeRisk(m, s.BaseRisk)
}

// FullFrontalCrash rates the 56 km/h full overlap frontal test. The
// measurement block is the driver followed by the front passenger.
type FullFrontalCrash struct {
	BaseRisk float64
	Curves   injury.Curves
	Weights  FrontalWeights
}

// NewFullFrontalCrash returns the scenario with the default weights.
func NewFullFrontalCrash(baseRisk float64, curves injury.Curves) *FullFrontalCrash {
	return &FullFrontalCrash{BaseRisk: baseRisk, Curves: curves, Weights: DefaultFrontalWeights()}
}

func (s *FullFrontalCrash) occupants() (driver, passenger Occupant) {
	return Occupant{Kind: FrontalDriverOccupant, Curves: s.Curves},
		Occupant{Kind: FrontalPassengerOccupant, Curves: s.Curves}
}

func (s *FullFrontalCrash) Name() string { return FullFrontalName }

func (s *FullFrontalCrash) Dim() int {
	d, p := s.occupants()
	return d.Dim() + p.Dim()
}

func (s *FullFrontalCrash) Labels() []string {
	d, p := s.occupants()
	return append(prefixed("ff_driver", d.Labels()), prefixed("ff_passenger", p.Labels())...)
}

// Validate checks the driver/passenger split.
func (s *FullFrontalCrash) Validate() error {
	return s.Weights.Validate()
}

func (s *FullFrontalCrash) RelativeRisk(m []float64) (float64, error) {
	if len(m) != s.Dim() {
		return 0, errors.Wrapf(ErrShape, "%s: expected %d measurements, got %d", s.Name(), s.Dim(), len(m))
	}
	d, p := s.occupants()

	driver, err := d.RelativeRisk(m[:d.Dim()], s.BaseRisk)
	if err != nil {
		return 0, err
	}
	passenger, err := p.RelativeRisk(m[d.Dim():], s.BaseRisk)
	if err != nil {
		return 0, err
	}

	return s.Weights.Driver*driver + s.Weights.Passenger*passenger, nil
}

// SideImpact rates the side pole and side barrier tests together. The block
// is the pole front seat (HIC, pelvis), the barrier front seat (HIC, rib,
// abdomen, pelvis) and the barrier rear seat (HIC, pelvis).
//
// The pole front seat is rated with the rear seat curves, as the rating
// protocol prescribes.
type SideImpact struct {
	BaseRisk     float64
	Curves       injury.Curves
	FrontWeights SideFrontWeights
	Weights      SideWeights
}

// NewSideImpact returns the scenario with the default weights.
func NewSideImpact(baseRisk float64, curves injury.Curves) *SideImpact {
	return &SideImpact{
		BaseRisk:     baseRisk,
		Curves:       curves,
		FrontWeights: DefaultSideFrontWeights(),
		Weights:      DefaultSideWeights(),
	}
}

func (s *SideImpact) occupants() (pole, front, rear Occupant) {
	return Occupant{Kind: SideRearOccupant, Curves: s.Curves},
		Occupant{Kind: SideFrontOccupant, Curves: s.Curves},
		Occupant{Kind: SideRearOccupant, Curves: s.Curves}
}

func (s *SideImpact) Name() string { return SideImpactName }

func (s *SideImpact) Dim() int {
	pole, front, rear := s.occupants()
	return pole.Dim() + front.Dim() + rear.Dim()
}

func (s *SideImpact) Labels() []string {
	pole, front, rear := s.occupants()
	labels := prefixed("side_pole_front", pole.Labels())
	labels = append(labels, prefixed("side_barrier_front", front.Labels())...)
	return append(labels, prefixed("side_barrier_rear", rear.Labels())...)
}

// Validate checks both the front seat blend and the front/rear split.
func (s *SideImpact) Validate() error {
	if err := s.FrontWeights.Validate(); err != nil {
		return err
	}
	return s.Weights.Validate()
}

func (s *SideImpact) RelativeRisk(m []float64) (float64, error) {
	if len(m) != s.Dim() {
		return 0, errors.Wrapf(ErrShape, "%s: expected %d measurements, got %d", s.Name(), s.Dim(), len(m))
	}
	pole, front, rear := s.occupants()
	i, j := pole.Dim(), pole.Dim()+front.Dim()

	poleRisk, err := pole.RelativeRisk(m[:i], s.BaseRisk)
	if err != nil {
		return 0, err
	}
	frontRisk, err := front.RelativeRisk(m[i:j], s.BaseRisk)
	if err != nil {
		return 0, err
	}
	rearRisk, err := rear.RelativeRisk(m[j:], s.BaseRisk)
	if err != nil {
		return 0, err
	}

	seat := s.FrontWeights.Pole*poleRisk + s.FrontWeights.Barrier*frontRisk
	return s.Weights.Front*seat + s.Weights.Rear*rearRisk, nil
}

// RollOver rates the static stability rollover probability.
type RollOver struct {
	BaseRisk float64
}

// NewRollOver returns the rollover scenario.
func NewRollOver(baseRisk float64) *RollOver {
	return &RollOver{BaseRisk: baseRisk}
}

func (s *RollOver) Name() string { return RollOverName }

func (s *RollOver) Dim() int { return 1 }

func (s *RollOver) Labels() []string { return []string{"rollover_probability"} }

func (s *RollOver) RelativeRisk(m []float64) (float64, error) {
	if len(m) != s.Dim() {
		return 0, errors.Wrapf(ErrShape, "%s: expected 1 measurement, got %d", s.Name(), len(m))
	}
	return m[0] / s.BaseRisk, nil
}

func prefixed(prefix string, labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = prefix + "_" + l
	}
	return out
}
