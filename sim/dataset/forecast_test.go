package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovingAverageForecast(t *testing.T) {
	demand := []float64{10, 20, 30, 40, 50}
	got := MovingAverageForecast(demand, 3)
	require.Len(t, got, 5)

	for i := 0; i < 3; i++ {
		assert.True(t, math.IsNaN(got[i]), "period %d should be warm-up", i)
	}
	assert.InDelta(t, 20.0, got[3], 1e-12) // mean of 10, 20, 30
	assert.InDelta(t, 30.0, got[4], 1e-12) // mean of 20, 30, 40
}

func TestMovingAverageForecast_WindowExceedsSeries(t *testing.T) {
	got := MovingAverageForecast([]float64{10, 20}, 7)
	require.Len(t, got, 2)
	assert.True(t, math.IsNaN(got[0]))
	assert.True(t, math.IsNaN(got[1]))
}

func TestExpSmoothingForecast(t *testing.T) {
	demand := []float64{100, 110, 90}
	got := ExpSmoothingForecast(demand, 0.3)
	require.Len(t, got, 3)

	assert.True(t, math.IsNaN(got[0]))
	assert.InDelta(t, 100.0, got[1], 1e-12)
	// 0.3*110 + 0.7*100 = 103
	assert.InDelta(t, 103.0, got[2], 1e-12)
}

func TestExpSmoothingForecast_ShortSeries(t *testing.T) {
	assert.Empty(t, ExpSmoothingForecast(nil, 0.3))

	got := ExpSmoothingForecast([]float64{42}, 0.3)
	require.Len(t, got, 1)
	assert.True(t, math.IsNaN(got[0]))
}

func TestForecast_Methods(t *testing.T) {
	records := []Record{
		{UnitsSold: 100, Forecast: 95},
		{UnitsSold: 110, Forecast: 105},
	}

	got, err := Forecast(records, ForecastDataset)
	require.NoError(t, err)
	assert.Equal(t, []float64{95, 105}, got)

	got, err = Forecast(records, ForecastExpSmoothing)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, math.IsNaN(got[0]))
	assert.InDelta(t, 100.0, got[1], 1e-12)

	_, err = Forecast(records, "arima")
	assert.Error(t, err)
}

func TestAlignWarmup(t *testing.T) {
	demand := []float64{10, 20, 30, 40}
	forecast := []float64{math.NaN(), math.NaN(), 25, 35}

	d, f := AlignWarmup(demand, forecast)
	assert.Equal(t, []float64{30, 40}, d)
	assert.Equal(t, []float64{25, 35}, f)
}

func TestAlignWarmup_NoWarmup(t *testing.T) {
	demand := []float64{10, 20}
	forecast := []float64{9, 19}
	d, f := AlignWarmup(demand, forecast)
	assert.Equal(t, demand, d)
	assert.Equal(t, forecast, f)
}

func TestAlignWarmup_AllNaN(t *testing.T) {
	demand := []float64{10, 20}
	forecast := []float64{math.NaN(), math.NaN()}
	d, f := AlignWarmup(demand, forecast)
	assert.Empty(t, d)
	assert.Empty(t, f)
}
