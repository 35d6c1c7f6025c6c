package ets

import "fmt"

// Seasonality selects the seasonal form of a Holt-Winters calculation.
// SeasonalNone always runs double exponential smoothing regardless of
// Options.Period; SeasonalAdditive and SeasonalMultiplicative select the
// corresponding triple exponential smoothing recurrence once Period
// resolves to a nonzero samples-per-period. LibreOffice exposes this
// choice as separate FORECAST.ETS.ADD/.MULT functions; this module folds
// it into one parameter rather than multiplying the exported surface.
type Seasonality int

const (
	SeasonalNone Seasonality = iota
	SeasonalAdditive
	SeasonalMultiplicative
)

// Options configures a Holt-Winters calculation, matching interpr8.cxx's
// declared-period/completion/aggregation arguments plus the PI confidence
// level used by the PI variants.
type Options struct {
	// Period is the declared samples-per-period: 0 selects double
	// exponential smoothing, 1 triggers autodetection (§4.2), and any
	// larger value is used as given.
	Period int
	// Completion fills inserted gap points with the mean of their
	// bracketing neighbors rather than zero.
	Completion bool
	// Aggregation selects how duplicate timestamps collapse.
	Aggregation Aggregation
	// PILevel is the prediction-interval confidence level in [0, 1],
	// used only by ForecastETSPI.
	PILevel float64
}

// NewDefaultOptions returns the defaults spec'd for ForecastETS's optional
// arguments: autodetected period, completion enabled, AVG aggregation, and
// a 95% prediction-interval level.
func NewDefaultOptions() *Options {
	return &Options{
		Period:      1,
		Completion:  true,
		Aggregation: AggAvg,
		PILevel:     0.95,
	}
}

// Validate checks Options for the argument constraints in spec section 6:
// period is a non-negative integer, aggregation is in range, and PILevel
// is a probability.
func (o *Options) Validate() error {
	if o.Period < 0 {
		return newError(IllegalFPOperation, ErrInvalidPeriod)
	}
	if o.Aggregation < AggNone || o.Aggregation > AggSum {
		return newError(IllegalArgument, ErrInvalidAggregation)
	}
	if o.PILevel < 0 || o.PILevel > 1 {
		return newError(IllegalParameter, ErrInvalidPILevel)
	}
	return nil
}

// Calculation holds one resolved ETS session: the preprocessed range and
// the fitted, optimized model, ready to answer Forecast/PI/Stat/Season
// queries against any number of targets. It mirrors the lifetime of
// interpr8.cxx's ScETSForecastCalculation: built once per call, parameters
// and arrays released when it goes out of scope.
type Calculation struct {
	opt     *Options
	variant Variant
	prep    *preprocessed
	m       *model
}

func seasonalVariant(s Seasonality, pi bool) Variant {
	switch {
	case pi && s == SeasonalMultiplicative:
		return VariantPIMult
	case pi:
		return VariantPIAdd
	case s == SeasonalMultiplicative:
		return VariantMult
	default:
		return VariantAdd
	}
}

func statVariant(s Seasonality) Variant {
	if s == SeasonalMultiplicative {
		return VariantStatMult
	}
	return VariantStatAdd
}

// newCalculation runs the full preprocess-initialize-optimize pipeline
// shared by every exported entry point.
func newCalculation(x, y []float64, opt *Options, firstTarget *float64, variant Variant, seasonal Seasonality) (*Calculation, *Error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if err := opt.Validate(); err != nil {
		if e, ok := err.(*Error); ok {
			return nil, e
		}
		return nil, newError(IllegalArgument, err)
	}

	period := opt.Period
	if seasonal == SeasonalNone {
		period = 0
	}
	prep, err := preprocessDataRange(x, y, period, opt.Completion, opt.Aggregation, firstTarget, variant)
	if err != nil {
		return nil, err
	}

	_, ys := splitDataPoints(prep.Points)
	m, merr := newModel(ys, prep.SmplInPrd, prep.EDS, seasonal != SeasonalMultiplicative)
	if merr != nil {
		return nil, merr
	}
	m.optimize()

	return &Calculation{opt: opt, variant: variant, prep: prep, m: m}, nil
}

// targetCoordinate converts a raw target X into the model's internal
// coordinate, applying the month-axis remap from §4.6 when the training
// range was detected to lie on a monthly grid.
func (c *Calculation) targetCoordinate(t float64) float64 {
	if c.prep.MonthDay == 0 {
		return t
	}
	return monthsFromSerial(t, c.prep.MonthDay)
}

func (c *Calculation) x0() float64 {
	return c.prep.Points[0].X
}

// ForecastETS implements FORECAST.ETS: fit a Holt-Winters model to (X, Y)
// and evaluate it at every target, returning one forecast per target. opt
// may be nil to take NewDefaultOptions. SeasonalNone runs DES whatever
// opt.Period says; SeasonalAdditive and SeasonalMultiplicative select the
// TES form and are ignored when opt.Period is 0 (DES).
func ForecastETS(targets, x, y []float64, seasonal Seasonality, opt *Options) ([]float64, *Error) {
	if len(targets) == 0 {
		return nil, newError(IllegalArgument, fmt.Errorf("empty target vector"))
	}
	variant := seasonalVariant(seasonal, false)
	c, err := newCalculation(x, y, opt, &targets[0], variant, seasonal)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(targets))
	for i, t := range targets {
		out[i] = c.m.forecastAt(c.x0(), c.prep.StepSize, c.targetCoordinate(t))
	}
	return out, nil
}

// ForecastETSPI implements FORECAST.ETS.PI: analytic half-widths for DES,
// 1000-path Monte Carlo half-widths for TES, one per target. Targets must
// all lie at or beyond the end of the training range.
func ForecastETSPI(targets, x, y []float64, seasonal Seasonality, opt *Options) ([]float64, *Error) {
	if len(targets) == 0 {
		return nil, newError(IllegalArgument, fmt.Errorf("empty target vector"))
	}
	variant := seasonalVariant(seasonal, true)
	c, err := newCalculation(x, y, opt, &targets[0], variant, seasonal)
	if err != nil {
		return nil, err
	}

	level := c.opt.PILevel
	last := c.x0() + float64(len(c.m.y)-1)*c.prep.StepSize

	out := make([]float64, len(targets))
	if c.m.eds {
		for i, t := range targets {
			out[i] = c.m.desPIHalfWidth(level, c.prep.StepSize, c.targetCoordinate(t), c.x0())
		}
		return out, nil
	}

	maxCoord := last
	for _, t := range targets {
		if tc := c.targetCoordinate(t); tc > maxCoord {
			maxCoord = tc
		}
	}
	horizon := int((maxCoord-last)/c.prep.StepSize) + 2
	halfWidths := c.m.runMonteCarloPaths(level, horizon)
	for i, t := range targets {
		out[i] = tesPIHalfWidthAt(halfWidths, c.prep.StepSize, c.targetCoordinate(t), last)
	}
	return out, nil
}

// ForecastETSStat implements FORECAST.ETS.STAT: evaluate each selector in
// 1..9 (§4.8) against the fitted model, returning one statistic per
// selector.
func ForecastETSStat(x, y []float64, selectors []int, seasonal Seasonality, opt *Options) ([]float64, *Error) {
	variant := statVariant(seasonal)
	c, err := newCalculation(x, y, opt, nil, variant, seasonal)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(selectors))
	for i, sel := range selectors {
		v, serr := c.stat(sel)
		if serr != nil {
			return nil, serr
		}
		out[i] = v
	}
	return out, nil
}

// ForecastETSSeason implements FORECAST.ETS.SEASONALITY: returns the
// autodetected samples-per-period, ignoring any declared Period in opt.
func ForecastETSSeason(x, y []float64, opt *Options) (int, *Error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	seasonOpt := *opt
	seasonOpt.Period = 1

	prep, err := preprocessDataRange(x, y, seasonOpt.Period, seasonOpt.Completion, seasonOpt.Aggregation, nil, VariantSeason)
	if err != nil {
		return 0, err
	}
	return prep.SmplInPrd, nil
}
