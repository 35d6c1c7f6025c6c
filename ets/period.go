package ets

import "math"

// detectPeriod implements interpr8.cxx::CalcPeriodLen: search candidate
// period lengths from floor(N/2) down to 2, aligning the most recent
// floor(N/P)*P points so trailing periods pack tightly, and return the P
// with the smallest mean absolute first-difference mismatch between
// corresponding positions of adjacent periods: fabs((Y[i]-Y[i-1]) -
// (Y[i-P]-Y[i-P-1])), which cancels any underlying linear trend. Ties
// favor the smaller P because the descending loop overwrites its
// best-so-far on an equal error as well as on an improvement.
func detectPeriod(pts []DataPoint) int {
	n := len(pts)
	if n < 4 {
		return 0
	}

	bestP := 2
	bestErr := math.Inf(1)

	for p := n / 2; p >= 2; p-- {
		periods := n / p
		if periods < 2 {
			continue
		}
		used := periods * p
		start := n - used

		var sumAbsDiff float64
		var count int
		for per := 1; per < periods; per++ {
			baseOffset := start + (per-1)*p
			curOffset := start + per*p
			for j := 0; j < p; j++ {
				i := curOffset + j
				bi := baseOffset + j
				if i-1 < 0 || bi-1 < 0 {
					continue
				}
				diffCur := pts[i].Y - pts[i-1].Y
				diffBase := pts[bi].Y - pts[bi-1].Y
				sumAbsDiff += math.Abs(diffCur - diffBase)
				count++
			}
		}
		if count == 0 {
			continue
		}
		meanErr := sumAbsDiff / float64(count)

		if meanErr == 0 {
			return p
		}
		if meanErr <= bestErr {
			bestErr = meanErr
			bestP = p
		}
	}
	return bestP
}
