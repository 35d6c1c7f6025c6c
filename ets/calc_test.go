package ets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastETSAdditiveTESPerfectCycle(t *testing.T) {
	// Spec §8 scenario 2: X=1..24, Y = i mod 4 (period 4). With period=4,
	// forecast at t=25..28 equals 0,1,2,3.
	x := make([]float64, 24)
	y := make([]float64, 24)
	for i := range x {
		x[i] = float64(i + 1)
		y[i] = float64(i % 4)
	}

	opt := NewDefaultOptions()
	opt.Period = 4

	targets := []float64{25, 26, 27, 28}
	forecast, err := ForecastETS(targets, x, y, SeasonalAdditive, opt)
	require.Nil(t, err)
	require.Len(t, forecast, 4)

	assert.InDelta(t, 0.0, forecast[0], 1e-6)
	assert.InDelta(t, 1.0, forecast[1], 1e-6)
	assert.InDelta(t, 2.0, forecast[2], 1e-6)
	assert.InDelta(t, 3.0, forecast[3], 1e-6)
}

func TestForecastETSMultiplicativeZeroMeanPeriod(t *testing.T) {
	// Spec §8 scenario 3: a period whose mean is 0 under multiplicative
	// mode must fail DivisionByZero.
	x := make([]float64, 12)
	y := make([]float64, 12)
	for i := range x {
		x[i] = float64(i + 1)
	}
	// Period 4, 3 periods; make the first period sum to zero.
	copy(y, []float64{-1, 0, 1, 0})
	copy(y[4:], []float64{1, 2, 3, 4})
	copy(y[8:], []float64{2, 3, 4, 5})

	opt := NewDefaultOptions()
	opt.Period = 4

	_, err := ForecastETS([]float64{13}, x, y, SeasonalMultiplicative, opt)
	require.NotNil(t, err)
	assert.Equal(t, DivisionByZero, err.Code)
}

func TestForecastETSMonthAxisDefinesForecast(t *testing.T) {
	// Spec §8 scenario 4: the 15th of 24 consecutive months; expect a
	// defined forecast at the 25th month.
	start := time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC)
	x := make([]float64, 24)
	y := make([]float64, 24)
	for i := range x {
		x[i] = serialFromDate(start.AddDate(0, i, 0))
		y[i] = float64(100 + i)
	}

	targetX := serialFromDate(start.AddDate(0, 24, 0))
	opt := NewDefaultOptions()
	opt.Period = 0 // DES: no seasonal period needed for a monotone monthly trend

	forecast, err := ForecastETS([]float64{targetX}, x, y, SeasonalNone, opt)
	require.Nil(t, err)
	require.Len(t, forecast, 1)
	assert.False(t, isNaNOrInf(forecast[0]))
}

func TestForecastETSDuplicateTimestampAbort(t *testing.T) {
	x := []float64{1, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	y := make([]float64, len(x))
	for i := range y {
		y[i] = float64(i)
	}
	opt := NewDefaultOptions()
	opt.Aggregation = AggNone

	_, err := ForecastETS([]float64{10}, x, y, SeasonalNone, opt)
	require.NotNil(t, err)
	assert.Equal(t, NoValue, err.Code)
}

func TestForecastETSGapOverflowAbort(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 11, 12, 13, 14}
	y := make([]float64, len(x))
	for i := range y {
		y[i] = float64(i)
	}
	opt := NewDefaultOptions()

	_, err := ForecastETS([]float64{15}, x, y, SeasonalNone, opt)
	require.NotNil(t, err)
	assert.Equal(t, NoValue, err.Code)
}

func TestForecastETSSeasonReturnsBoundedPeriod(t *testing.T) {
	x := make([]float64, 16)
	y := make([]float64, 16)
	for i := range x {
		x[i] = float64(i + 1)
		y[i] = float64(i % 4)
	}

	p, err := ForecastETSSeason(x, y, nil)
	require.Nil(t, err)
	assert.GreaterOrEqual(t, p, 2)
	assert.LessOrEqual(t, p, len(x)/2)
}

func TestForecastETSStatSelectors(t *testing.T) {
	x := make([]float64, 12)
	y := make([]float64, 12)
	for i := range x {
		x[i] = float64(i + 1)
		y[i] = float64(i + 1)
	}

	stats, err := ForecastETSStat(x, y, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, SeasonalNone, nil)
	require.Nil(t, err)
	require.Len(t, stats, 9)
	for i, v := range stats[:3] {
		assert.GreaterOrEqual(t, v, 0.0, "selector %d", i+1)
		assert.LessOrEqual(t, v, 1.0, "selector %d", i+1)
	}
}

func isNaNOrInf(v float64) bool {
	return v != v || v > 1e300 || v < -1e300
}
