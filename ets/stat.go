package ets

// stat implements interpr8.cxx::GetStatisticValue's selector dispatch,
// mapping selector 1..9 to one fitted statistic per §4.8.
func (c *Calculation) stat(selector int) (float64, *Error) {
	switch selector {
	case 1:
		return c.m.alpha, nil
	case 2:
		return c.m.gamma, nil
	case 3:
		return c.m.beta, nil
	case 4:
		return c.m.mase, nil
	case 5:
		return c.m.smape, nil
	case 6:
		return c.m.mae, nil
	case 7:
		return c.m.rmse, nil
	case 8:
		return c.prep.StepSize, nil
	case 9:
		return float64(c.SamplesInPeriod()), nil
	default:
		return 0, newError(IllegalParameter, ErrInvalidSelector)
	}
}

// SamplesInPeriod returns the resolved samples-per-period: 0 for a DES
// calculation, otherwise the declared or autodetected period length. The
// distilled FORECAST.ETS.STAT selector table folds this into selector 9;
// this accessor exposes it directly for callers building their own
// selector matrices, matching the original's GetSamplesInPeriod.
func (c *Calculation) SamplesInPeriod() int {
	if c.m.eds {
		return 0
	}
	return c.prep.SmplInPrd
}
