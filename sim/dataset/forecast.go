package dataset

import (
	"fmt"
	"math"
)

// Forecast method registry. Forecast accuracy is not the point of the study;
// these are simple, interpretable baselines that feed the policy layer.
const (
	ForecastDataset        = "dataset"
	ForecastMovingAverage  = "moving_average"
	ForecastExpSmoothing   = "exp_smoothing"
	DefaultMAWindow        = 7
	DefaultSmoothingFactor = 0.3
)

// Forecast produces a demand forecast series aligned with the records.
// Moving-average and smoothing forecasts carry NaN warm-up values where no
// history exists yet; trim them with AlignWarmup before simulating.
func Forecast(records []Record, method string) ([]float64, error) {
	switch method {
	case ForecastDataset:
		out := make([]float64, len(records))
		for i, rec := range records {
			out[i] = rec.Forecast
		}
		return out, nil
	case ForecastMovingAverage:
		return MovingAverageForecast(Demand(records), DefaultMAWindow), nil
	case ForecastExpSmoothing:
		return ExpSmoothingForecast(Demand(records), DefaultSmoothingFactor), nil
	default:
		return nil, fmt.Errorf("unknown forecast method %q; valid: %s, %s, %s",
			method, ForecastDataset, ForecastMovingAverage, ForecastExpSmoothing)
	}
}

// MovingAverageForecast forecasts each period as the mean of the previous
// `window` observations, using past data only. The first `window` periods
// are NaN since insufficient history exists.
func MovingAverageForecast(demand []float64, window int) []float64 {
	out := make([]float64, len(demand))
	for t := range out {
		if t < window {
			out[t] = math.NaN()
			continue
		}
		sum := 0.0
		for _, d := range demand[t-window : t] {
			sum += d
		}
		out[t] = sum / float64(window)
	}
	return out
}

// ExpSmoothingForecast computes simple exponential smoothing:
//
//	F_t = alpha * Y_{t-1} + (1 - alpha) * F_{t-1}
//
// The first forecast is NaN (no prior data); F_1 is initialized to Y_0.
func ExpSmoothingForecast(demand []float64, alpha float64) []float64 {
	out := make([]float64, len(demand))
	if len(out) == 0 {
		return out
	}
	out[0] = math.NaN()
	if len(out) > 1 {
		out[1] = demand[0]
		for t := 2; t < len(out); t++ {
			out[t] = alpha*demand[t-1] + (1-alpha)*out[t-1]
		}
	}
	return out
}

// AlignWarmup drops the leading periods where the forecast is NaN, returning
// aligned demand and forecast slices. Interior NaNs are not tolerated and
// surface as an error from the demand generator later.
func AlignWarmup(demand, forecast []float64) ([]float64, []float64) {
	start := 0
	for start < len(forecast) && math.IsNaN(forecast[start]) {
		start++
	}
	if start > len(demand) {
		start = len(demand)
	}
	return demand[start:], forecast[start:]
}
