package injury

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Curve converts a single measurement into an injury probability.
type Curve interface {
	Probability(x float64) float64
}

// NormalCDFCurve is the log-normal risk curve Φ((ln x − Mu) / Sigma).
// Non-positive inputs are not guarded and yield 0 or NaN.
type NormalCDFCurve struct {
	Mu    float64 `json:"mu" yaml:"mu"`
	Sigma float64 `json:"sigma" yaml:"sigma"`
}

// Probability returns the probability of injury for x.
func (c NormalCDFCurve) Probability(x float64) float64 {
	z := (math.Log(x) - c.Mu) / c.Sigma
	return distuv.UnitNormal.CDF(z)
}

// LogisticCurve is the risk curve 1 / (1 + exp(A − B·x^C)).
type LogisticCurve struct {
	A float64 `json:"a" yaml:"a"`
	B float64 `json:"b" yaml:"b"`
	C float64 `json:"c" yaml:"c"`
}

// Probability returns the probability of injury for x.
func (c LogisticCurve) Probability(x float64) float64 {
	return 1 / (1 + math.Exp(c.A-c.B*math.Pow(x, c.C)))
}

// Max returns the largest of the given probabilities. It is used where the
// governing injury mode is the worst one rather than a combination.
func Max(ps ...float64) float64 {
	m := math.Inf(-1)
	for _, p := range ps {
		m = math.Max(m, p)
	}
	return m
}
