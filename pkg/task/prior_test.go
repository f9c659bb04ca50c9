package task

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrior_SampleWithinBounds(t *testing.T) {
	for _, v := range Variants {
		t.Run(v.String(), func(t *testing.T) {
			tk := newTestTask(t, v, 0)
			lower, upper := tk.Prior().Bounds()

			m, err := tk.Prior().Sample(500, rand.NewPCG(1, 2))
			require.NoError(t, err)

			r, c := m.Dims()
			assert.Equal(t, 500, r)
			assert.Equal(t, v.Dim(), c)
			for i := 0; i < r; i++ {
				for j := 0; j < c; j++ {
					x := m.At(i, j)
					assert.GreaterOrEqual(t, x, lower[j])
					assert.LessOrEqual(t, x, upper[j])
				}
			}
		})
	}
}

func TestPrior_SampleIsSeeded(t *testing.T) {
	tk := newTestTask(t, Overall, 0)

	a, err := tk.Prior().Sample(10, rand.NewPCG(7, 7))
	require.NoError(t, err)
	b, err := tk.Prior().Sample(10, rand.NewPCG(7, 7))
	require.NoError(t, err)
	c, err := tk.Prior().Sample(10, rand.NewPCG(8, 8))
	require.NoError(t, err)

	assert.Equal(t, a.RawMatrix().Data, b.RawMatrix().Data)
	assert.NotEqual(t, a.RawMatrix().Data, c.RawMatrix().Data)
}

func TestPrior_SampleErrors(t *testing.T) {
	tk := newTestTask(t, FrontalDriver, 0)

	_, err := tk.Prior().Sample(0, rand.NewPCG(1, 1))
	assert.Error(t, err)

	_, err = tk.Prior().Sample(1, nil)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestPrior_LogProb(t *testing.T) {
	tk := newTestTask(t, FrontalDriver, 0)
	lower, upper := tk.Prior().Bounds()

	var want float64
	for i := range lower {
		want -= math.Log(upper[i] - lower[i])
	}

	lp, err := tk.Prior().LogProb([]float64{500, 20, 4, 0.5, 2.5, 2.5})
	require.NoError(t, err)
	assert.InDelta(t, want, lp, 1e-12)

	lp, err = tk.Prior().LogProb([]float64{5000, 20, 4, 0.5, 2.5, 2.5})
	require.NoError(t, err)
	assert.True(t, math.IsInf(lp, -1))

	_, err = tk.Prior().LogProb([]float64{500})
	assert.ErrorIs(t, err, ErrShape)
}
