package ets

import (
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// usHolidays lists the observed holidays this module overlays on monthly
// forecast charts, following event.go's pattern of naming each *cal.Holiday
// explicitly rather than pulling in a full business calendar.
var usHolidays = []*cal.Holiday{
	us.ThanksgivingDay,
	us.ChristmasDay,
}

// LineForecast generates an echarts line chart plotting the training
// series alongside the forecast and, when piHalfWidth has one entry per
// forecast value, the upper and lower prediction-interval bounds. xTimes must have the same length as
// the combined training-plus-target range and is only used for axis
// labeling; the underlying forecast values are unaffected by it.
func LineForecast(title string, xTimes []time.Time, actual, forecast, piHalfWidth []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
	)

	lineDataActual := make([]opts.LineData, 0, len(actual))
	for _, v := range actual {
		lineDataActual = append(lineDataActual, opts.LineData{Value: v})
	}
	lineDataForecast := make([]opts.LineData, 0, len(forecast))
	for _, v := range forecast {
		lineDataForecast = append(lineDataForecast, opts.LineData{Value: v})
	}

	line.SetXAxis(xTimes).
		AddSeries("Actual", lineDataActual).
		AddSeries("Forecast", lineDataForecast)

	if len(piHalfWidth) == len(forecast) {
		lineDataUpper := make([]opts.LineData, 0, len(forecast))
		lineDataLower := make([]opts.LineData, 0, len(forecast))
		for i, v := range forecast {
			lineDataUpper = append(lineDataUpper, opts.LineData{Value: v + piHalfWidth[i]})
			lineDataLower = append(lineDataLower, opts.LineData{Value: v - piHalfWidth[i]})
		}
		line.AddSeries("Upper", lineDataUpper).AddSeries("Lower", lineDataLower)
	}

	return line
}

// HolidayMarker names an observed US holiday falling within a forecast
// chart's date range, for overlaying a marker line on LineForecast's
// output.
type HolidayMarker struct {
	Name     string
	Observed time.Time
}

// USHolidayMarkers returns the observed US holidays (per usHolidays)
// falling within [start, end], so a reader can see which seasonal dips
// on a monthly forecast chart line up with a holiday rather than a
// smoothing artifact. Grounded on event.go's Holiday: each *cal.Holiday's
// Calc(year) yields the actual and observed dates for that year.
func USHolidayMarkers(start, end time.Time) []HolidayMarker {
	markers := make([]HolidayMarker, 0)
	for y := start.Year(); y <= end.Year(); y++ {
		for _, h := range usHolidays {
			_, observed := h.Calc(y)
			if observed.Before(start) || observed.After(end) {
				continue
			}
			markers = append(markers, HolidayMarker{
				Name:     strings.ReplaceAll(h.Name, " ", "_"),
				Observed: observed,
			})
		}
	}
	return markers
}
