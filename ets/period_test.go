package ets

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPeriodRangeBounds(t *testing.T) {
	testData := map[string]struct {
		n int
	}{
		"n=4":  {n: 4},
		"n=8":  {n: 8},
		"n=20": {n: 20},
		"n=37": {n: 37},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			pts := make([]DataPoint, td.n)
			for i := range pts {
				pts[i] = DataPoint{X: float64(i), Y: math.Sin(float64(i))}
			}
			p := detectPeriod(pts)
			assert.GreaterOrEqual(t, p, 2)
			assert.LessOrEqual(t, p, td.n/2)
		})
	}
}

func TestDetectPeriodExactCycleShortCircuits(t *testing.T) {
	// N=12 keeps n/2=6 below the next multiple of 4 (8), so period 4 is
	// the only zero-error candidate the descending search can land on.
	pts := make([]DataPoint, 12)
	for i := range pts {
		pts[i] = DataPoint{X: float64(i), Y: float64(i % 4)}
	}
	assert.Equal(t, 4, detectPeriod(pts))
}
