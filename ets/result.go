package ets

import "github.com/goccy/go-json"

// Result is a JSON-serializable snapshot of a Calculation's forecast at a
// set of targets, for callers that want to export or log a fitted session
// rather than only read back a forecast matrix.
type Result struct {
	Targets     []float64 `json:"targets"`
	Forecast    []float64 `json:"forecast"`
	PIHalfWidth []float64 `json:"pi_half_width,omitempty"`
	Alpha       float64   `json:"alpha"`
	Beta        float64   `json:"beta"`
	Gamma       float64   `json:"gamma"`
	MAE         float64   `json:"mae"`
	MASE        float64   `json:"mase"`
	MSE         float64   `json:"mse"`
	RMSE        float64   `json:"rmse"`
	SMAPE       float64   `json:"smape"`
	StepSize    float64   `json:"step_size"`
	Period      int       `json:"period"`
}

// Export builds a Result from the Calculation's fitted parameters and
// accuracy indicators, attaching a forecast (and, for PI variants,
// half-width) for each of the given targets.
func (c *Calculation) Export(targets []float64) (*Result, *Error) {
	res := &Result{
		Targets:  targets,
		Forecast: make([]float64, len(targets)),
		Alpha:    c.m.alpha,
		Beta:     c.m.beta,
		Gamma:    c.m.gamma,
		MAE:      c.m.mae,
		MASE:     c.m.mase,
		MSE:      c.m.mse,
		RMSE:     c.m.rmse,
		SMAPE:    c.m.smape,
		StepSize: c.prep.StepSize,
		Period:   c.SamplesInPeriod(),
	}
	for i, t := range targets {
		res.Forecast[i] = c.m.forecastAt(c.x0(), c.prep.StepSize, c.targetCoordinate(t))
	}
	if c.variant.isPI() {
		res.PIHalfWidth = make([]float64, len(targets))
		last := c.x0() + float64(len(c.m.y)-1)*c.prep.StepSize
		if c.m.eds {
			for i, t := range targets {
				res.PIHalfWidth[i] = c.m.desPIHalfWidth(c.opt.PILevel, c.prep.StepSize, c.targetCoordinate(t), c.x0())
			}
		} else {
			maxCoord := last
			for _, t := range targets {
				if tc := c.targetCoordinate(t); tc > maxCoord {
					maxCoord = tc
				}
			}
			horizon := int((maxCoord-last)/c.prep.StepSize) + 2
			halfWidths := c.m.runMonteCarloPaths(c.opt.PILevel, horizon)
			for i, t := range targets {
				res.PIHalfWidth[i] = tesPIHalfWidthAt(halfWidths, c.prep.StepSize, c.targetCoordinate(t), last)
			}
		}
	}
	return res, nil
}

// MarshalJSON round-trips through goccy/go-json rather than encoding/json,
// matching the JSON library the rest of the corpus reaches for.
func (r *Result) MarshalJSON() ([]byte, error) {
	type alias Result
	return json.Marshal((*alias)(r))
}
