package ets

// minABCResolution is the minimum interval width the ternary search
// narrows to before settling on a smoothing constant, per interpr8.cxx's
// cfMinABCResolution.
const minABCResolution = 0.001

// ternarySearch minimizes eval over [0, 1] using the nested ternary-search
// style described by interpr8.cxx's CalcAlphaBetaGamma/CalcBetaGamma/
// CalcGamma: evaluate both endpoints and the midpoint; if all three
// coincide, the error surface is flat and the parameter is fixed at 0;
// otherwise repeatedly bisect the half-interval adjacent to whichever
// endpoint scored higher until the interval shrinks to the resolution
// bound, then adopt whichever evaluated point scored lowest overall.
func ternarySearch(eval func(float64) float64) float64 {
	lo, hi := 0.0, 1.0
	f0 := eval(lo)
	f1 := eval(hi)
	mid := 0.5 * (lo + hi)
	f2 := eval(mid)

	if f0 == f1 && f1 == f2 {
		return 0
	}

	bestVal, bestErr := lo, f0
	if f1 < bestErr {
		bestVal, bestErr = hi, f1
	}
	if f2 < bestErr {
		bestVal, bestErr = mid, f2
	}

	for hi-lo > minABCResolution {
		if f0 > f1 {
			hi, f1 = mid, f2
		} else {
			lo, f0 = mid, f2
		}
		mid = 0.5 * (lo + hi)
		f2 = eval(mid)

		if f0 < bestErr {
			bestVal, bestErr = lo, f0
		}
		if f1 < bestErr {
			bestVal, bestErr = hi, f1
		}
		if f2 < bestErr {
			bestVal, bestErr = mid, f2
		}
	}
	return bestVal
}

// calcGamma implements interpr8.cxx::CalcGamma: the innermost search,
// picking the gamma minimizing MSE for a fixed alpha/beta.
func (m *model) calcGamma(alpha, beta float64) (gamma, mse float64) {
	g := ternarySearch(func(g float64) float64 {
		m.refill(alpha, beta, g)
		return m.mse
	})
	m.refill(alpha, beta, g)
	return g, m.mse
}

// calcBetaGamma implements interpr8.cxx::CalcBetaGamma: searches beta for
// a fixed alpha, where every beta trial re-runs calcGamma so each beta is
// scored against its own best-achievable gamma.
func (m *model) calcBetaGamma(alpha float64) (beta, gamma, mse float64) {
	b := ternarySearch(func(b float64) float64 {
		_, mse := m.calcGamma(alpha, b)
		return mse
	})
	gamma, mse = m.calcGamma(alpha, b)
	return b, gamma, mse
}

// optimize finds smoothing constants minimizing MSE following
// interpr8.cxx's nested CalcAlphaBetaGamma/CalcBetaGamma/CalcGamma: DES
// nests alpha around gamma with beta fixed at 0; TES nests alpha around
// beta around gamma, so every alpha trial is scored against its own
// best-achievable beta/gamma rather than stale prior values.
func (m *model) optimize() {
	if m.eds {
		alpha := ternarySearch(func(a float64) float64 {
			_, mse := m.calcGamma(a, 0)
			return mse
		})
		gamma, _ := m.calcGamma(alpha, 0)
		m.alpha, m.gamma = alpha, gamma
		m.refill(m.alpha, 0, m.gamma)
		return
	}

	alpha := ternarySearch(func(a float64) float64 {
		_, _, mse := m.calcBetaGamma(a)
		return mse
	})
	beta, gamma, _ := m.calcBetaGamma(alpha)
	m.alpha, m.beta, m.gamma = alpha, beta, gamma
	m.refill(m.alpha, m.beta, m.gamma)
}
