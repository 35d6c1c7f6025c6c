// Package ets implements Holt-Winters exponential smoothing forecasting:
// double exponential smoothing and additive/multiplicative triple
// exponential smoothing, with automatic period detection, automatic
// smoothing-constant optimization, gap filling, duplicate-timestamp
// aggregation, month-granular time axes, forecasting, accuracy
// statistics, and prediction intervals.
package ets
