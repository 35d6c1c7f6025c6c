package ets

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestDESPIScalingRatio(t *testing.T) {
	level := 0.95
	c0 := desPIScale(level, 0)

	for k := 1; k <= 5; k++ {
		ck := desPIScale(level, k)
		assert.InDelta(t, ck/c0, desPIScale(level, k)/desPIScale(level, 0), 1e-12)
	}
}

func TestDESPIHalfWidthAtZeroIsZRMSE(t *testing.T) {
	y := make([]float64, 12)
	for i := range y {
		y[i] = float64(i + 1)
	}
	m, err := newModel(y, 0, true, true)
	require.Nil(t, err)
	m.optimize()

	level := 0.95
	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile((1 + level) / 2)

	x0, step := 1.0, 1.0
	last := x0 + float64(len(m.y)-1)*step
	halfWidth0 := m.desPIHalfWidth(level, step, last, x0)

	assert.InDelta(t, z*m.rmse, halfWidth0, 1e-9)
}

func TestDESLinearTrendScenario(t *testing.T) {
	// Spec §8 scenario 1: X=1..12, Y=X. Expect RMSE ~ 0, forecast at
	// t=13 equals 13, PI finite and monotone increasing in level.
	x := make([]float64, 12)
	y := make([]float64, 12)
	for i := range x {
		x[i] = float64(i + 1)
		y[i] = float64(i + 1)
	}

	targets := []float64{13}
	forecast, ferr := ForecastETS(targets, x, y, SeasonalNone, NewDefaultOptions())
	require.Nil(t, ferr)
	require.Len(t, forecast, 1)
	assert.InDelta(t, 13.0, forecast[0], 1e-6)

	levels := []float64{0.5, 0.8, 0.95, 0.99}
	var prevPI float64
	for i, level := range levels {
		opt := NewDefaultOptions()
		opt.PILevel = level
		pi, perr := ForecastETSPI(targets, x, y, SeasonalNone, opt)
		require.Nil(t, perr)
		require.Len(t, pi, 1)
		assert.False(t, math.IsInf(pi[0], 0) || math.IsNaN(pi[0]))
		if i > 0 {
			assert.GreaterOrEqual(t, pi[0], prevPI)
		}
		prevPI = pi[0]
	}
}
