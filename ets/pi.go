package ets

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// monteCarloScenarios is the number of simulated future paths used for
// the TES prediction interval, per interpr8.cxx's cnScenarios.
const monteCarloScenarios = 1000

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// desPIHalfWidth implements interpr8.cxx::GetEDSPredictionIntervals: an
// analytic half-width at fractional horizon step k, per Yar & Chatfield's
// approximation, with the same §4.6 fractional-step interpolation used by
// forecastAt.
func (m *model) desPIHalfWidth(level, step, t, x0 float64) float64 {
	n := len(m.y)
	last := x0 + float64(n-1)*step
	z := stdNormal.Quantile((1 + level) / 2)
	c0 := desPIScale(level, 0)

	ni, r := horizonSteps(last, step, t)
	halfWidth := func(k int) float64 {
		return z * m.rmse * desPIScale(level, k) / c0
	}

	v0 := halfWidth(ni)
	if r < minABCResolution {
		return v0
	}
	v1 := halfWidth(ni + 1)
	return v0 + (r/step)*(v1-v0)
}

// desPIScale computes c[i] = sqrt(1 + (L/(1+o)^3) * ((1+4o+5o^2) +
// 2*i*L*(1+3o) + 2*i^2*L^2)) with o = 1-L, per interpr8.cxx's analytic
// DES prediction interval formula.
func desPIScale(level float64, i int) float64 {
	o := 1 - level
	fi := float64(i)
	inner := (1 + 4*o + 5*o*o) + 2*fi*level*(1+3*o) + 2*fi*fi*level*level
	return math.Sqrt(1 + (level/((1+o)*(1+o)*(1+o)))*inner)
}

// horizonSteps splits a target into an integer step count past `last` and
// the fractional remainder, used identically by forecastAt and both PI
// paths for §4.6's fractional-step interpolation.
func horizonSteps(last, step, t float64) (n int, r float64) {
	steps := (t - last) / step
	if steps < 0 {
		steps = 0
	}
	n = int(steps)
	r = (t - last) - float64(n)*step
	return n, r
}

// runMonteCarloPaths implements interpr8.cxx::GetETSPredictionIntervals's
// core simulation: 1000 independent scenario paths evolving Base/Trend/
// PerIdx under a simulated observation (model forecast plus a half-normal
// deviate scaled by RMSE), returning the per-step half-width between the
// requested percentile and the median across paths.
//
// The epsilon sampling draws U from Uniform(0.5, 1.0) rather than
// Uniform(0, 1), producing only positive-half-plane deviates. This is
// reproduced literally from interpr8.cxx's RandDev rather than "fixed" to
// a full-range uniform draw; see DESIGN.md's Open Question notes.
func (m *model) runMonteCarloPaths(level float64, horizon int) []float64 {
	n := len(m.y)
	scenarios := mat.NewDense(horizon, monteCarloScenarios, nil)

	for s := 0; s < monteCarloScenarios; s++ {
		base, trend := m.base[n-1], m.trend[n-1]
		seasonal := make([]float64, m.p)
		copy(seasonal, m.perIdx[n-m.p:n])

		for h := 1; h <= horizon; h++ {
			idxPos := (h - 1) % m.p
			var levelForecast float64
			if m.additive {
				levelForecast = base + trend + seasonal[idxPos]
			} else {
				levelForecast = (base + trend) * seasonal[idxPos]
			}

			u := 0.5 + 0.5*rand.Float64()
			eps := m.rmse * stdNormal.Quantile(u)
			simY := levelForecast + eps

			var newBase, newSeasonal float64
			if m.additive {
				newBase = m.alpha*(simY-seasonal[idxPos]) + (1-m.alpha)*(base+trend)
				newSeasonal = m.beta*(simY-newBase) + (1-m.beta)*seasonal[idxPos]
			} else {
				newBase = m.alpha*(simY/seasonal[idxPos]) + (1-m.alpha)*(base+trend)
				newSeasonal = m.beta*(simY/newBase) + (1-m.beta)*seasonal[idxPos]
			}
			newTrend := m.gamma*(newBase-base) + (1-m.gamma)*trend
			base, trend = newBase, newTrend
			seasonal[idxPos] = newSeasonal

			scenarios.Set(h-1, s, simY)
		}
	}

	halfWidths := make([]float64, horizon)
	row := make([]float64, monteCarloScenarios)
	for h := 0; h < horizon; h++ {
		mat.Row(row, h, scenarios)
		sort.Float64s(row)
		upper := stat.Quantile((1+level)/2, stat.LinInterp, row, nil)
		median := stat.Quantile(0.5, stat.LinInterp, row, nil)
		halfWidths[h] = upper - median
	}
	return halfWidths
}

// tesPIHalfWidthAt interpolates a precomputed halfWidths series (indexed
// from horizon step 1) at a fractional target per §4.6.
func tesPIHalfWidthAt(halfWidths []float64, step, t, last float64) float64 {
	horizon := len(halfWidths)
	ni, r := horizonSteps(last, step, t)

	at := func(k int) float64 {
		if k < 1 {
			return 0
		}
		if k > horizon {
			k = horizon
		}
		return halfWidths[k-1]
	}

	v0 := at(ni)
	if r < minABCResolution {
		return v0
	}
	v1 := at(ni + 1)
	return v0 + (r/step)*(v1-v0)
}
