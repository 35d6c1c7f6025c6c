package ets

import "math"

// model owns the Base/Trend/PerIdx/Forecast arrays and smoothing
// constants for one calculation session, per interpr8.cxx's mpBase/
// mpTrend/mpPerIdx/mpForecast arrays tied to ScETSForecastCalculation's
// lifetime.
type model struct {
	y        []float64
	p        int // samples per period; 0 for DES
	eds      bool
	additive bool

	base, trend, perIdx, forecast []float64

	alpha, beta, gamma float64

	mae, mase, mse, rmse, smape float64
}

func newModel(y []float64, p int, eds, additive bool) (*model, *Error) {
	n := len(y)
	m := &model{
		y:        y,
		p:        p,
		eds:      eds,
		additive: additive,
		base:     make([]float64, n),
		trend:    make([]float64, n),
		forecast: make([]float64, n),
	}

	if eds {
		m.base[0], m.trend[0] = seedDES(y)
	} else {
		m.trend[0] = seedTrendTES(y, p)
		perIdx, err := seedSeasonalIndices(y, p, m.trend[0], additive)
		if err != nil {
			return nil, err
		}
		m.perIdx = make([]float64, n)
		copy(m.perIdx, perIdx)
		for i := p; i < n; i++ {
			m.perIdx[i] = m.perIdx[i%p]
		}
		if additive {
			m.base[0] = y[0]
		} else {
			m.base[0] = y[0] / m.perIdx[0]
		}
	}
	m.forecast[0] = y[0]

	return m, nil
}

// refill recomputes the full one-step-ahead recurrence for i in [1, N)
// using the current smoothing constants, then refreshes the accuracy
// indicators. This mirrors interpr8.cxx's refill()/calcAccuracyIndicators().
func (m *model) refill(alpha, beta, gamma float64) {
	m.alpha, m.beta, m.gamma = alpha, beta, gamma
	n := len(m.y)

	for i := 1; i < n; i++ {
		switch {
		case m.eds:
			m.base[i] = alpha*m.y[i] + (1-alpha)*(m.base[i-1]+m.trend[i-1])
			m.trend[i] = gamma*(m.base[i]-m.base[i-1]) + (1-gamma)*m.trend[i-1]
			m.forecast[i] = m.base[i-1] + m.trend[i-1]
		case m.additive:
			idx := i
			if i > m.p {
				idx = i - m.p
			}
			m.base[i] = alpha*(m.y[i]-m.perIdx[idx]) + (1-alpha)*(m.base[i-1]+m.trend[i-1])
			m.perIdx[i] = beta*(m.y[i]-m.base[i]) + (1-beta)*m.perIdx[idx]
			m.trend[i] = gamma*(m.base[i]-m.base[i-1]) + (1-gamma)*m.trend[i-1]
			m.forecast[i] = m.base[i-1] + m.trend[i-1] + m.perIdx[idx]
		default: // multiplicative
			idx := i
			if i >= m.p {
				idx = i - m.p
			}
			m.base[i] = alpha*(m.y[i]/m.perIdx[idx]) + (1-alpha)*(m.base[i-1]+m.trend[i-1])
			m.perIdx[i] = beta*(m.y[i]/m.base[i]) + (1-beta)*m.perIdx[idx]
			m.trend[i] = gamma*(m.base[i]-m.base[i-1]) + (1-gamma)*m.trend[i-1]
			m.forecast[i] = (m.base[i-1] + m.trend[i-1]) * m.perIdx[idx]
		}
	}

	m.calcAccuracyIndicators()
}

func (m *model) calcAccuracyIndicators() {
	n := len(m.y)
	var sumAbs, sumSq, sumSmape float64
	for i := 1; i < n; i++ {
		diff := m.forecast[i] - m.y[i]
		sumAbs += math.Abs(diff)
		sumSq += diff * diff
		denom := math.Abs(m.forecast[i]) + math.Abs(m.y[i])
		if denom != 0 {
			sumSmape += math.Abs(diff) / denom
		}
	}
	m.mae = sumAbs / float64(n-1)
	m.mse = sumSq / float64(n-1)
	m.rmse = math.Sqrt(m.mse)
	m.smape = 2 * sumSmape / float64(n-1)

	var sumNaiveAbs float64
	for i := 2; i < n; i++ {
		sumNaiveAbs += math.Abs(m.y[i] - m.y[i-1])
	}
	naiveMAE := sumNaiveAbs / float64(n-2)
	if naiveMAE != 0 {
		m.mase = m.mae / naiveMAE
	}
}
