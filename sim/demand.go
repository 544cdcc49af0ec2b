package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// BootstrapSampler draws forecast errors by resampling (with replacement)
// from an empirical sample set, optionally scaled by a volatility multiplier.
// Scaling the residuals is how the study varies demand uncertainty without
// touching the forecast itself.
type BootstrapSampler struct {
	samples []float64
	scale   float64
}

// NewBootstrapSampler creates a sampler over the given error samples.
// scale multiplies every drawn error; 1.0 reproduces the empirical
// distribution, scale < 1 dampens volatility, scale > 1 amplifies it.
func NewBootstrapSampler(samples []float64, scale float64) (*BootstrapSampler, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("bootstrap sampler requires at least one error sample")
	}
	if scale < 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("volatility scale must be finite and non-negative, got %f", scale)
	}
	for i, s := range samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("error sample %d is not finite: %f", i, s)
		}
	}
	return &BootstrapSampler{samples: samples, scale: scale}, nil
}

// Sample returns one resampled, scaled forecast error.
func (s *BootstrapSampler) Sample(rng *rand.Rand) float64 {
	return s.samples[rng.Intn(len(s.samples))] * s.scale
}

// GenerateDemandPath produces one stochastic demand realization:
// demand[t] = max(0, forecast[t] + e_t) with e_t drawn from the sampler.
// Forecast values must be finite; warm-up NaNs from moving-average or
// smoothing forecasts have to be trimmed before calling this.
func GenerateDemandPath(forecast []float64, sampler *BootstrapSampler, rng *rand.Rand) ([]float64, error) {
	if sampler == nil {
		return nil, fmt.Errorf("nil bootstrap sampler")
	}
	demand := make([]float64, len(forecast))
	for t, f := range forecast {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("forecast[%d] is not finite: %f", t, f)
		}
		demand[t] = math.Max(0, f+sampler.Sample(rng))
	}
	return demand, nil
}
