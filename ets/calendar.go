package ets

import (
	"math"
	"time"
)

// nullDate is the spreadsheet epoch (1899-12-30) that numeric X values are
// interpreted as day offsets from when probing for a monthly axis, matching
// interpr8.cxx's use of the formula engine's null date.
var nullDate = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

func dateFromSerial(x float64) time.Time {
	days := math.Floor(x)
	return nullDate.AddDate(0, 0, int(days))
}

func serialFromDate(t time.Time) float64 {
	return math.Round(t.Sub(nullDate).Hours() / 24)
}

// detectMonthAxis checks whether every X maps to a date sharing the same
// day-of-month. When it does, it returns that day and the remapped
// year*12+month integers; otherwise ok is false and the caller keeps the
// numeric X axis untouched.
func detectMonthAxis(x []float64) (monthDay int, remapped []float64, ok bool) {
	if len(x) == 0 {
		return 0, nil, false
	}
	first := dateFromSerial(x[0])
	day := first.Day()
	out := make([]float64, len(x))
	for i, v := range x {
		d := dateFromSerial(v)
		if d.Day() != day {
			return 0, nil, false
		}
		out[i] = float64(d.Year()*12 + int(d.Month()))
	}
	return day, out, true
}

// daysInMonth returns the leap-aware number of days in the given
// year/month (1-12).
func daysInMonth(year, month int) int {
	firstOfNext := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	lastOfThis := firstOfNext.AddDate(0, 0, -1)
	return lastOfThis.Day()
}

// monthsFromSerial converts a raw X value (day offset, with monthDay
// recorded by detectMonthAxis) into the fractional year*12+month coordinate
// used for forecasting targets on a monthly axis, per interpr8.cxx's
// convertXtoMonths.
func monthsFromSerial(x float64, monthDay int) float64 {
	d := dateFromSerial(x)
	dim := float64(daysInMonth(d.Year(), int(d.Month())))
	return float64(d.Year()*12+int(d.Month())) + float64(d.Day()-monthDay)/dim
}
