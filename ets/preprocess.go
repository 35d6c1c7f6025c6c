package ets

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Aggregation selects how runs of equal X values collapse into one point.
type Aggregation int

const (
	AggNone    Aggregation = 0 // duplicates are an error
	AggAvg     Aggregation = 1
	AggCount   Aggregation = 2
	AggCountA  Aggregation = 3
	AggMax     Aggregation = 4
	AggMedian  Aggregation = 5
	AggMin     Aggregation = 6
	AggSum     Aggregation = 7
)

// maxGapFillRatio bounds inserted gap points to 30% of the original sample
// count, per interpr8.cxx's PreprocessDataRange.
const maxGapFillRatio = 0.30

// Variant selects the calculation family a preprocessing pass feeds.
type Variant int

const (
	VariantAdd Variant = iota
	VariantMult
	VariantPIAdd
	VariantPIMult
	VariantStatAdd
	VariantStatMult
	VariantSeason
)

func (v Variant) isPI() bool {
	return v == VariantPIAdd || v == VariantPIMult
}

// preprocessed holds the output of preprocessDataRange: a cleaned,
// gap-filled, monotonically increasing DataPoint sequence ready for
// initialization and smoothing.
type preprocessed struct {
	Points     []DataPoint
	MonthDay   int
	StepSize   float64
	SmplInPrd  int
	EDS        bool
}

// preprocessDataRange implements interpr8.cxx::PreprocessDataRange:
// sort, bounds-check the target, detect a monthly axis, aggregate
// duplicate timestamps, discover and fill gaps, then resolve the
// seasonal period length.
func preprocessDataRange(x, y []float64, declaredPeriod int, completion bool, agg Aggregation, firstTarget *float64, variant Variant) (*preprocessed, *Error) {
	if len(x) != len(y) {
		return nil, newError(IllegalArgument, ErrLengthMismatch)
	}
	if agg < AggNone || agg > AggSum {
		return nil, newError(IllegalArgument, ErrInvalidAggregation)
	}

	pts := toDataPoints(x, y)
	sortDataPoints(pts)

	if firstTarget != nil {
		if variant.isPI() {
			if *firstTarget < pts[len(pts)-1].X {
				return nil, newError(IllegalFPOperation, ErrTargetBeforeRange)
			}
		} else if *firstTarget < pts[0].X {
			return nil, newError(IllegalFPOperation, ErrTargetBeforeRange)
		}
	}

	xs, _ := splitDataPoints(pts)
	monthDay, remapped, isMonthly := detectMonthAxis(xs)
	if isMonthly {
		for i := range pts {
			pts[i].X = remapped[i]
		}
	} else {
		monthDay = 0
	}

	pts, aggErr := aggregateDuplicates(pts, agg)
	if aggErr != nil {
		return nil, aggErr
	}

	pts, step, fillErr := fillGaps(pts, completion)
	if fillErr != nil {
		return nil, fillErr
	}

	eds := declaredPeriod == 0
	smplInPrd := declaredPeriod
	if !eds {
		if declaredPeriod == 1 {
			smplInPrd = detectPeriod(pts)
		}
		if 2*smplInPrd > len(pts) {
			return nil, newError(NoValue, fmt.Errorf("%w: need at least %d points for period %d", ErrInsufficientPeriod, 2*smplInPrd, smplInPrd))
		}
	}

	return &preprocessed{
		Points:    pts,
		MonthDay:  monthDay,
		StepSize:  step,
		SmplInPrd: smplInPrd,
		EDS:       eds,
	}, nil
}

// aggregateDuplicates collapses runs of equal X per the selected mode,
// matching interpr8.cxx's AVG/COUNT/COUNTA/MAX/MEDIAN/MIN/SUM handling.
func aggregateDuplicates(pts []DataPoint, agg Aggregation) ([]DataPoint, *Error) {
	out := make([]DataPoint, 0, len(pts))
	i := 0
	for i < len(pts) {
		j := i + 1
		for j < len(pts) && pts[j].X == pts[i].X {
			j++
		}
		run := pts[i:j]
		if len(run) == 1 {
			out = append(out, run[0])
			i = j
			continue
		}
		if agg == AggNone {
			return nil, newError(NoValue, ErrDuplicateTimestamp)
		}
		ys := make([]float64, len(run))
		for k, p := range run {
			ys[k] = p.Y
		}
		out = append(out, DataPoint{X: run[0].X, Y: aggregateValue(ys, agg)})
		i = j
	}
	return out, nil
}

func aggregateValue(ys []float64, agg Aggregation) float64 {
	switch agg {
	case AggAvg:
		return stat.Mean(ys, nil)
	case AggSum:
		return floats.Sum(ys)
	case AggCount, AggCountA:
		return float64(len(ys))
	case AggMax:
		return floats.Max(ys)
	case AggMin:
		return floats.Min(ys)
	case AggMedian:
		sorted := append([]float64(nil), ys...)
		sort.Float64s(sorted)
		n := len(sorted)
		if n%2 == 1 {
			return sorted[n/2]
		}
		return (sorted[n/2-1] + sorted[n/2]) / 2
	default:
		return ys[0]
	}
}

// fillGaps discovers the minimal step size, validates every gap is an
// integer multiple of it, and inserts synthetic points at step intervals.
// Returns NoValue if a gap isn't a clean multiple, or if the total
// inserted points would exceed 30% of the original sample count.
func fillGaps(pts []DataPoint, completion bool) ([]DataPoint, float64, *Error) {
	if len(pts) < 2 {
		return pts, 0, nil
	}

	step := math.Inf(1)
	for i := 1; i < len(pts); i++ {
		gap := pts[i].X - pts[i-1].X
		if gap > 0 && gap < step {
			step = gap
		}
	}

	originalN := len(pts)
	maxInserted := int(math.Floor(maxGapFillRatio * float64(originalN)))

	out := make([]DataPoint, 0, len(pts))
	inserted := 0
	out = append(out, pts[0])
	for i := 1; i < len(pts); i++ {
		gap := pts[i].X - pts[i-1].X
		ratio := gap / step
		rounded := math.Round(ratio)
		if math.Abs(ratio-rounded) > 1e-9 {
			return nil, 0, newError(NoValue, ErrNonMultipleGapStep)
		}
		steps := int(rounded)
		for s := 1; s < steps; s++ {
			inserted++
			if inserted > maxInserted {
				slog.Warn("gap fill exceeded 30% bound", "inserted", inserted, "max", maxInserted, "original_n", originalN)
				return nil, 0, newError(NoValue, ErrGapFillOverflow)
			}
			xVal := pts[i-1].X + float64(s)*step
			var yVal float64
			if completion {
				yVal = (pts[i-1].Y + pts[i].Y) / 2
			}
			out = append(out, DataPoint{X: xVal, Y: yVal})
		}
		out = append(out, pts[i])
	}
	if inserted > 0 {
		slog.Debug("filled gaps", "inserted", inserted, "original_n", originalN)
	}
	return out, step, nil
}
