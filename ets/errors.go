package ets

import (
	"errors"
	"fmt"
)

// Code identifies the class of failure surfaced by a Calculation, mirroring
// the single error-code field the source keeps on its calculation object.
type Code int

const (
	// NoValue covers duplicate timestamps without aggregation, non-multiple
	// gap steps, insufficient data for the requested period, and gap fills
	// exceeding 30% of the original sample count.
	NoValue Code = iota + 1
	// IllegalFPOperation covers targets outside the permitted range and
	// non-integer or negative period arguments.
	IllegalFPOperation
	// DivisionByZero covers a zero period mean under multiplicative mode.
	DivisionByZero
	// UnknownState marks an invariant violation; treated as a bug.
	UnknownState
	// IllegalArgument covers malformed caller input.
	IllegalArgument
	// IllegalParameter covers out-of-range caller parameters.
	IllegalParameter
)

func (c Code) String() string {
	switch c {
	case NoValue:
		return "NoValue"
	case IllegalFPOperation:
		return "IllegalFPOperation"
	case DivisionByZero:
		return "DivisionByZero"
	case UnknownState:
		return "UnknownState"
	case IllegalArgument:
		return "IllegalArgument"
	case IllegalParameter:
		return "IllegalParameter"
	default:
		return "Unknown"
	}
}

// Error pairs a Code with the underlying sentinel that triggered it so
// callers can both branch on Code and errors.Is/As against the sentinel.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(code Code, err error) *Error {
	return &Error{Code: code, Err: err}
}

var (
	ErrDuplicateTimestamp  = errors.New("duplicate X values without an aggregation mode")
	ErrNonMultipleGapStep  = errors.New("gap between samples is not a multiple of the detected step size")
	ErrGapFillOverflow     = errors.New("inserted points exceed 30% of the original sample count")
	ErrInsufficientPeriod  = errors.New("fewer than 2 full periods available for the requested period length")
	ErrTargetBeforeRange   = errors.New("target precedes the permitted forecasting range")
	ErrInvalidPeriod       = errors.New("period must be a non-negative integer")
	ErrZeroPeriodMean      = errors.New("a period mean is zero under multiplicative smoothing")
	ErrLengthMismatch      = errors.New("X and Y have different lengths")
	ErrInvalidAggregation  = errors.New("aggregation mode must be between 0 and 7")
	ErrInvalidSelector     = errors.New("statistic selector must be between 1 and 9")
	ErrInvalidPILevel      = errors.New("prediction interval level must be in [0, 1]")
	ErrNotInitialized      = errors.New("calculation has not been run")
)
