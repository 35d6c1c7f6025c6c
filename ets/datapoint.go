package ets

import "sort"

// DataPoint is a single (X, Y) observation in the training range.
type DataPoint struct {
	X, Y float64
}

// sortDataPoints sorts points ascending by X, matching interpr8.cxx's
// lcl_SortByX ordering used before any preprocessing step runs.
func sortDataPoints(pts []DataPoint) {
	sort.Slice(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
}

func toDataPoints(x, y []float64) []DataPoint {
	pts := make([]DataPoint, len(x))
	for i := range x {
		pts[i] = DataPoint{X: x[i], Y: y[i]}
	}
	return pts
}

func splitDataPoints(pts []DataPoint) (x, y []float64) {
	x = make([]float64, len(pts))
	y = make([]float64, len(pts))
	for i, p := range pts {
		x[i] = p.X
		y[i] = p.Y
	}
	return x, y
}
