package injury

import (
	"github.com/pkg/errors"
)

// Role identifies the occupant seating position a curve was fitted for.
type Role int

const (
	Driver Role = iota
	Passenger
)

func (r Role) String() string {
	switch r {
	case Driver:
		return "driver"
	case Passenger:
		return "passenger"
	default:
		return "unknown"
	}
}

// ErrInvalidCurve is returned when a curve table cannot produce probabilities.
var ErrInvalidCurve = errors.New("invalid injury curve")

// FrontalCurves holds the role specific curves of a full frontal occupant.
type FrontalCurves struct {
	Chest LogisticCurve `json:"chest" yaml:"chest"`
	Femur LogisticCurve `json:"femur" yaml:"femur"`
	// Neck applies to both tension and compression.
	Neck LogisticCurve `json:"neck" yaml:"neck"`
}

// Curves is the complete table of risk curves used by the rating.
type Curves struct {
	HIC       NormalCDFCurve `json:"hic" yaml:"hic"`
	NIJ       LogisticCurve  `json:"nij" yaml:"nij"`
	Driver    FrontalCurves  `json:"driver" yaml:"driver"`
	Passenger FrontalCurves  `json:"passenger" yaml:"passenger"`

	SideRib         LogisticCurve `json:"side_rib" yaml:"side_rib"`
	SideAbdomen     LogisticCurve `json:"side_abdomen" yaml:"side_abdomen"`
	SidePelvisFront LogisticCurve `json:"side_pelvis_front" yaml:"side_pelvis_front"`
	SidePelvisRear  LogisticCurve `json:"side_pelvis_rear" yaml:"side_pelvis_rear"`
}

// DefaultCurves returns the published NCAP curve constants.
func DefaultCurves() Curves {
	return Curves{
		HIC: NormalCDFCurve{Mu: 7.45231, Sigma: 0.73998},
		NIJ: LogisticCurve{A: 3.2269, B: 1.9688, C: 1},
		Driver: FrontalCurves{
			Chest: LogisticCurve{A: 10.5456, B: 1.568, C: 0.4612},
			Femur: LogisticCurve{A: 5.795, B: 0.5196, C: 1},
			Neck:  LogisticCurve{A: 10.9745, B: 2.375, C: 1},
		},
		Passenger: FrontalCurves{
			Chest: LogisticCurve{A: 10.5456, B: 1.721, C: 0.4612},
			Femur: LogisticCurve{A: 5.795, B: 0.762, C: 1},
			Neck:  LogisticCurve{A: 10.958, B: 3.770, C: 1},
		},
		SideRib:         LogisticCurve{A: 5.3895, B: 0.092, C: 1},
		SideAbdomen:     LogisticCurve{A: 6.04, B: 0.0021, C: 1},
		SidePelvisFront: LogisticCurve{A: 7.597, B: 0.001, C: 1},
		SidePelvisRear:  LogisticCurve{A: 6.3055, B: 0.00094, C: 1},
	}
}

// Frontal returns the full frontal curves for the given role.
func (c Curves) Frontal(r Role) FrontalCurves {
	if r == Passenger {
		return c.Passenger
	}
	return c.Driver
}

// Validate checks that the HIC curve has a usable spread.
func (c Curves) Validate() error {
	if !(c.HIC.Sigma > 0) {
		return errors.Wrapf(ErrInvalidCurve, "hic sigma must be positive, got %v", c.HIC.Sigma)
	}
	return nil
}
