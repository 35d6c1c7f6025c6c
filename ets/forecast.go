package ets

import "math"

// forecastAt implements interpr8.cxx::GetForecast: in-sample targets
// interpolate between stored Forecast values, out-of-sample targets
// extrapolate the base/trend (and seasonal index, for TES) recurrence and
// then interpolate between the two bracketing horizon steps.
func (m *model) forecastAt(x0, step, t float64) float64 {
	n := len(m.y)
	last := x0 + float64(n-1)*step

	if t <= last {
		steps := math.Floor((t - x0) / step)
		ni := int(steps)
		r := (t - x0) - steps*step

		val := m.y[ni]
		if r >= minABCResolution && ni+1 < n {
			frac := r / step
			val += frac * (m.forecast[ni+1] - val)
		}
		return val
	}

	ni, r := horizonSteps(last, step, t)

	v0 := m.extrapolate(ni)
	if r < minABCResolution {
		return v0
	}
	v1 := m.extrapolate(ni + 1)
	frac := r / step
	return v0 + frac*(v1-v0)
}

// extrapolate projects k steps past the last training point using the
// frozen Base[N-1]/Trend[N-1] and, for TES, the seasonal index from the
// most recent observed cycle wrapped forward by k steps.
func (m *model) extrapolate(k int) float64 {
	n := len(m.y)
	level := m.base[n-1] + float64(k)*m.trend[n-1]
	if m.eds {
		return level
	}
	idx := seasonalHorizonIndex(n, m.p, k)
	if m.additive {
		return level + m.perIdx[idx]
	}
	return level * m.perIdx[idx]
}

// seasonalHorizonIndex returns the PerIdx slot used when extrapolating k
// steps past the end of the training range: PerIdx[N-1-P+(k mod P)],
// wrapping the last observed seasonal cycle forward per interpr8.cxx's
// extrapolation branch.
func seasonalHorizonIndex(n, perLen, k int) int {
	return n - 1 - perLen + ((k%perLen)+perLen)%perLen
}
