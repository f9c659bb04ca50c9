package rating

import (
	"testing"

	"github.com/mchmarny/ncapsim/pkg/injury"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sideMeasurements = []float64{
	300, 3000, // pole front
	300, 30, 1500, 3000, // barrier front
	300, 3000, // barrier rear
}

func TestFullFrontalCrash(t *testing.T) {
	s := NewFullFrontalCrash(baseRisk, injury.DefaultCurves())
	assert.Equal(t, 12, s.Dim())
	assert.Len(t, s.Labels(), 12)
	assert.Equal(t, "ff_driver_hic", s.Labels()[0])
	assert.Equal(t, "ff_passenger_neck_tension", s.Labels()[11])

	m := append(append([]float64{}, frontalMeasurements...), frontalMeasurements...)
	risk, err := s.RelativeRisk(m)
	require.NoError(t, err)
	assert.InDelta(t, (1.1356135648539722+1.8764820299332774)/2, risk, tolerance)

	_, err = s.RelativeRisk(frontalMeasurements)
	assert.ErrorIs(t, err, ErrShape)
}

func TestFrontalDriver(t *testing.T) {
	s := NewFrontalDriver(baseRisk, injury.DefaultCurves())
	assert.Equal(t, FrontalDriverName, s.Name())
	assert.Equal(t, 6, s.Dim())

	risk, err := s.RelativeRisk(frontalMeasurements)
	require.NoError(t, err)
	assert.InDelta(t, 1.1356135648539722, risk, tolerance)
}

func TestSideImpact(t *testing.T) {
	s := NewSideImpact(baseRisk, injury.DefaultCurves())
	assert.Equal(t, 8, s.Dim())
	assert.Equal(t, []string{
		"side_pole_front_hic",
		"side_pole_front_pelvic_force",
		"side_barrier_front_hic",
		"side_barrier_front_rib_deflection",
		"side_barrier_front_abdominal_force",
		"side_barrier_front_pelvic_force",
		"side_barrier_rear_hic",
		"side_barrier_rear_pelvic_force",
	}, s.Labels())

	risk, err := s.RelativeRisk(sideMeasurements)
	require.NoError(t, err)
	assert.InDelta(t, 0.5090878552205347, risk, tolerance)

	_, err = s.RelativeRisk(sideMeasurements[:7])
	assert.ErrorIs(t, err, ErrShape)
}

func TestSideImpact_PoleUsesRearFormula(t *testing.T) {
	c := injury.DefaultCurves()
	s := NewSideImpact(baseRisk, c)
	s.FrontWeights = SideFrontWeights{Pole: 1}
	s.Weights = SideWeights{Front: 1}

	got, err := s.RelativeRisk(sideMeasurements)
	require.NoError(t, err)

	want, err := Occupant{Kind: SideRearOccupant, Curves: c}.RelativeRisk(sideMeasurements[:2], baseRisk)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-15)
}

func TestRollOver(t *testing.T) {
	s := NewRollOver(baseRisk)
	assert.Equal(t, 1, s.Dim())
	assert.Equal(t, []string{"rollover_probability"}, s.Labels())

	risk, err := s.RelativeRisk([]float64{0.15})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, risk, 1e-15)

	_, err = s.RelativeRisk([]float64{0.1, 0.2})
	assert.ErrorIs(t, err, ErrShape)
}

func TestScenarios_ScaleInverselyWithBaseRisk(t *testing.T) {
	c := injury.DefaultCurves()
	m := append(append([]float64{}, frontalMeasurements...), frontalMeasurements...)

	tests := []struct {
		name   string
		single Scenario
		double Scenario
		m      []float64
	}{
		{"full frontal", NewFullFrontalCrash(baseRisk, c), NewFullFrontalCrash(2*baseRisk, c), m},
		{"side", NewSideImpact(baseRisk, c), NewSideImpact(2*baseRisk, c), sideMeasurements},
		{"rollover", NewRollOver(baseRisk), NewRollOver(2 * baseRisk), []float64{0.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r1, err := tt.single.RelativeRisk(tt.m)
			require.NoError(t, err)
			r2, err := tt.double.RelativeRisk(tt.m)
			require.NoError(t, err)
			assert.InDelta(t, r1/2, r2, 1e-12)
		})
	}
}
