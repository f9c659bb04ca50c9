package task

import (
	"strings"

	"github.com/mchmarny/ncapsim/pkg/injury"
	"github.com/mchmarny/ncapsim/pkg/rating"
	"github.com/pkg/errors"
)

// Variant selects which crash scenarios the task parameters cover.
type Variant string

const (
	// FrontalDriver covers the driver of the full frontal test (6 parameters).
	FrontalDriver Variant = "frontal-driver"
	// FullFrontal covers driver and passenger of the full frontal test (12).
	FullFrontal Variant = "full-frontal"
	// FrontalSide adds the side pole and side barrier tests (20).
	FrontalSide Variant = "frontal-side"
	// Overall covers every scenario including rollover (21).
	Overall Variant = "overall"
)

// Variants lists the supported variants in increasing coverage.
var Variants = []Variant{FrontalDriver, FullFrontal, FrontalSide, Overall}

// ParseVariant converts a string into a Variant.
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Variants {
		if v == known {
			return v, nil
		}
	}
	return "", errors.Wrapf(ErrConfig, "unknown variant: %q", s)
}

func (v Variant) String() string {
	return string(v)
}

// Dim returns the parameter dimensionality of the variant.
func (v Variant) Dim() int {
	r, err := v.Rating(0.15, injury.DefaultCurves())
	if err != nil {
		return 0
	}
	return r.Dim()
}

// Rating builds the rating for the variant. Scenario weights are the overall
// NCAP weights restricted to the covered scenarios.
func (v Variant) Rating(baseRisk float64, curves injury.Curves) (*rating.Rating, error) {
	w := rating.DefaultOverallWeights()
	frontal := rating.Component{Scenario: rating.NewFullFrontalCrash(baseRisk, curves), Weight: w.FullFrontal}
	side := rating.Component{Scenario: rating.NewSideImpact(baseRisk, curves), Weight: w.Side}

	switch v {
	case FrontalDriver:
		return rating.New(rating.Component{Scenario: rating.NewFrontalDriver(baseRisk, curves), Weight: 1})
	case FullFrontal:
		return rating.New(frontal)
	case FrontalSide:
		return rating.New(frontal, side)
	case Overall:
		return rating.Overall(baseRisk, curves, w)
	default:
		return nil, errors.Wrapf(ErrConfig, "unknown variant: %q", string(v))
	}
}
