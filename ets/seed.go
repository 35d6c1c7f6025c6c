package ets

// seedDES initializes Base[0] and Trend[0] for double exponential
// smoothing, per interpr8.cxx::prefillBaseData/prefillTrendData (EDS
// branch).
func seedDES(y []float64) (base0, trend0 float64) {
	n := len(y)
	base0 = y[0]
	trend0 = (y[n-1] - y[0]) / float64(n-1)
	return base0, trend0
}

// seedTrendTES computes Trend[0] for triple exponential smoothing:
// (1/P^2) * sum_{i=0}^{P-1} (Y[i+P] - Y[i]).
func seedTrendTES(y []float64, p int) float64 {
	var sum float64
	for i := 0; i < p; i++ {
		sum += y[i+p] - y[i]
	}
	return sum / float64(p*p)
}

// seedSeasonalIndices computes the initial per-position seasonal indices
// by averaging, across all full periods, the detrended (additive) or
// detrended-ratio (multiplicative) value at each in-period position, per
// interpr8.cxx::prefillPerIdx. The detrend adjustment at position j within
// a period is (j - 0.5*(P-1)) * trend0.
func seedSeasonalIndices(y []float64, p int, trend0 float64, additive bool) ([]float64, *Error) {
	periods := len(y) / p
	perIdx := make([]float64, p)

	periodMeans := make([]float64, periods)
	for k := 0; k < periods; k++ {
		var sum float64
		for j := 0; j < p; j++ {
			sum += y[k*p+j]
		}
		periodMeans[k] = sum / float64(p)
		if !additive && periodMeans[k] == 0 {
			return nil, newError(DivisionByZero, ErrZeroPeriodMean)
		}
	}

	for j := 0; j < p; j++ {
		adj := (float64(j) - 0.5*float64(p-1)) * trend0
		var sum float64
		for k := 0; k < periods; k++ {
			level := periodMeans[k] + adj
			if additive {
				sum += y[k*p+j] - level
			} else {
				sum += y[k*p+j] / level
			}
		}
		perIdx[j] = sum / float64(periods)
	}
	return perIdx, nil
}
