package rating

import (
	"testing"

	"github.com/mchmarny/ncapsim/pkg/injury"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func overallRow() []float64 {
	row := append([]float64{}, frontalMeasurements...)
	row = append(row, frontalMeasurements...)
	row = append(row, sideMeasurements...)
	return append(row, 0.15)
}

func overall(t *testing.T) *Rating {
	t.Helper()
	r, err := Overall(baseRisk, injury.DefaultCurves(), DefaultOverallWeights())
	require.NoError(t, err)
	return r
}

func TestOverall(t *testing.T) {
	r := overall(t)
	assert.Equal(t, 21, r.Dim())
	assert.Len(t, r.Labels(), 21)
	assert.Equal(t, "rollover_probability", r.Labels()[20])

	risk, err := r.RelativeRisk(overallRow())
	require.NoError(t, err)
	assert.InDelta(t, 1.0472158673208551, risk, tolerance)
}

func TestOverall_Breakdown(t *testing.T) {
	r := overall(t)

	parts, err := r.Breakdown(overallRow())
	require.NoError(t, err)
	require.Len(t, parts, 3)

	assert.Equal(t, FullFrontalName, parts[0].Scenario)
	assert.Equal(t, SideImpactName, parts[1].Scenario)
	assert.Equal(t, RollOverName, parts[2].Scenario)
	assert.InDelta(t, 1.5060477973936248, parts[0].RelativeRisk, tolerance)
	assert.InDelta(t, 0.5090878552205347, parts[1].RelativeRisk, tolerance)
	assert.InDelta(t, 1.0, parts[2].RelativeRisk, tolerance)

	var sum float64
	for _, p := range parts {
		sum += p.Weight
	}
	assert.InDelta(t, 1.0, sum, weightTolerance)
}

func TestRating_Renormalises(t *testing.T) {
	c := injury.DefaultCurves()
	w := DefaultOverallWeights()
	r, err := New(
		Component{Scenario: NewFullFrontalCrash(baseRisk, c), Weight: w.FullFrontal},
		Component{Scenario: NewSideImpact(baseRisk, c), Weight: w.Side},
	)
	require.NoError(t, err)
	assert.Equal(t, 20, r.Dim())

	risk, err := r.RelativeRisk(overallRow()[:20])
	require.NoError(t, err)
	assert.InDelta(t, 1.0629544897611403, risk, tolerance)
}

func TestRating_ShapeMismatch(t *testing.T) {
	r := overall(t)
	_, err := r.RelativeRisk(overallRow()[:20])
	assert.ErrorIs(t, err, ErrShape)
}

func TestNew_Invalid(t *testing.T) {
	_, err := New()
	assert.ErrorIs(t, err, ErrInvalidWeights)

	_, err = New(Component{Scenario: NewRollOver(baseRisk), Weight: -1})
	assert.ErrorIs(t, err, ErrInvalidWeights)

	_, err = New(Component{Scenario: NewRollOver(baseRisk), Weight: 0})
	assert.ErrorIs(t, err, ErrInvalidWeights)

	_, err = New(Component{Weight: 1})
	assert.Error(t, err)
}

func TestRating_ComponentsIsCopy(t *testing.T) {
	r := overall(t)
	cs := r.Components()
	cs[0].Weight = 100
	assert.InDelta(t, 5.0/12, r.Components()[0].Weight, 1e-15)
}

func TestOverall_InvalidWeights(t *testing.T) {
	_, err := Overall(baseRisk, injury.DefaultCurves(), OverallWeights{FullFrontal: 0.5, Side: 0.5, RollOver: 0.5})
	assert.ErrorIs(t, err, ErrInvalidWeights)
}

func TestNew_ValidatesScenarioWeights(t *testing.T) {
	c := injury.DefaultCurves()

	ff := NewFullFrontalCrash(baseRisk, c)
	ff.Weights = FrontalWeights{Driver: 0.7, Passenger: 0.7}

	side := NewSideImpact(baseRisk, c)
	side.FrontWeights = SideFrontWeights{Pole: -0.2, Barrier: 1.2}

	tests := []struct {
		name     string
		scenario Scenario
	}{
		{name: "full frontal split", scenario: ff},
		{name: "side front blend", scenario: side},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Component{Scenario: tt.scenario, Weight: 1})
			assert.ErrorIs(t, err, ErrInvalidWeights)
		})
	}

	_, err := New(Component{Scenario: NewSideImpact(baseRisk, c), Weight: 1})
	assert.NoError(t, err)
}
