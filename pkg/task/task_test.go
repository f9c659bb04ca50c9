package task

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const tolerance = 1e-9

func newTestTask(t *testing.T, v Variant, noise float64) *Task {
	t.Helper()
	cfg, err := DefaultConfig(v)
	require.NoError(t, err)
	cfg.NoiseLevel = noise
	tk, err := New(cfg)
	require.NoError(t, err)
	return tk
}

func batch(rows ...[]float64) *mat.Dense {
	m := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, r := range rows {
		m.SetRow(i, r)
	}
	return m
}

func TestVariants(t *testing.T) {
	tests := []struct {
		variant Variant
		dim     int
	}{
		{FrontalDriver, 6},
		{FullFrontal, 12},
		{FrontalSide, 20},
		{Overall, 21},
	}

	for _, tt := range tests {
		t.Run(tt.variant.String(), func(t *testing.T) {
			assert.Equal(t, tt.dim, tt.variant.Dim())

			v, err := ParseVariant(" " + string(tt.variant) + " ")
			require.NoError(t, err)
			assert.Equal(t, tt.variant, v)

			tk := newTestTask(t, tt.variant, 0)
			assert.Len(t, tk.ParameterLabels(), tt.dim)
			assert.Equal(t, tt.dim, tk.Prior().Dim())
			assert.Equal(t, tt.dim, tk.Simulator().Dim())
		})
	}

	_, err := ParseVariant("pole-only")
	assert.ErrorIs(t, err, ErrConfig)
	assert.Equal(t, 0, Variant("nope").Dim())
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig(FrontalDriver)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultName, cfg.Name)
	assert.Equal(t, 1, cfg.DimData)
	assert.Equal(t, 0.15, cfg.BaseRisk)
	assert.Equal(t, 0.1, cfg.NoiseLevel)
	assert.Equal(t, []float64{200, 5, 2, 0.0, 1.5, 1.0}, cfg.PriorLowerBound)
	assert.Equal(t, []float64{800, 42.5, 8.0, 0.75, 4.0, 4.0}, cfg.PriorUpperBound)
	assert.Equal(t, []int{100, 1_000, 10_000, 100_000, 1_000_000}, cfg.NumSimulations)
	assert.Equal(t, 10, cfg.NumObservations)

	_, err = DefaultConfig("nope")
	assert.ErrorIs(t, err, ErrConfig)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero base risk", func(c *Config) { c.BaseRisk = 0 }},
		{"negative base risk", func(c *Config) { c.BaseRisk = -0.15 }},
		{"nan base risk", func(c *Config) { c.BaseRisk = math.NaN() }},
		{"negative noise", func(c *Config) { c.NoiseLevel = -1 }},
		{"dim data", func(c *Config) { c.DimData = 2 }},
		{"short bounds", func(c *Config) { c.PriorLowerBound = c.PriorLowerBound[:5] }},
		{"inverted bounds", func(c *Config) { c.PriorLowerBound[0] = 900 }},
		{"variant", func(c *Config) { c.Variant = "nope" }},
		{"schedule", func(c *Config) { c.NumSimulations = []int{100, 0} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := DefaultConfig(FrontalDriver)
			require.NoError(t, err)
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrConfig)

			_, err = New(cfg)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestTask_ConfigIsImmutable(t *testing.T) {
	cfg, err := DefaultConfig(FrontalDriver)
	require.NoError(t, err)
	tk, err := New(cfg)
	require.NoError(t, err)

	cfg.PriorLowerBound[0] = -1
	got := tk.Config()
	assert.Equal(t, 200.0, got.PriorLowerBound[0])

	got.PriorLowerBound[0] = -1
	assert.Equal(t, 200.0, tk.Config().PriorLowerBound[0])

	lower, _ := tk.Prior().Bounds()
	assert.Equal(t, 200.0, lower[0])
}

func TestTask_Labels(t *testing.T) {
	tk := newTestTask(t, FrontalDriver, 0)
	assert.Equal(t, []string{
		"ff_driver_hic",
		"ff_driver_chest_deflection",
		"ff_driver_femur_load",
		"ff_driver_nij",
		"ff_driver_neck_compression",
		"ff_driver_neck_tension",
	}, tk.ParameterLabels())
	assert.Equal(t, []string{"relative_risk"}, tk.ObservationLabels())
	assert.Equal(t, DefaultName, tk.Name())
}

func TestTask_NotImplemented(t *testing.T) {
	tk := newTestTask(t, Overall, 0)

	obs, err := tk.Observation(1)
	assert.Nil(t, obs)
	assert.ErrorIs(t, err, ErrNotImplemented)

	ref, err := tk.ReferencePosteriorSamples(1)
	assert.Nil(t, ref)
	assert.ErrorIs(t, err, ErrNotImplemented)
}
