package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaanmathakari/SimuLad/internal/models"
)

var seriesStart = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

func hourlySeries(metric string, n int, value func(i int) float64) *models.SensorSeries {
	s := &models.SensorSeries{Location: "Rainforest", Metric: metric}
	for i := 0; i < n; i++ {
		s.Points = append(s.Points, models.SeriesPoint{
			Timestamp: seriesStart.Add(time.Duration(i) * time.Hour),
			Value:     value(i),
		})
	}
	return s
}

func wavy(i int) float64 {
	return 20 + 0.05*float64(i) + 2*math.Sin(2*math.Pi*float64(i)/24)
}

func TestRunHorizonAndTimestamps(t *testing.T) {
	series := hourlySeries("Temperature", 100, wavy)
	lastInput := series.Points[99].Timestamp

	for _, kind := range []models.ModelKind{models.ModelARIMA, models.ModelProphet} {
		t.Run(string(kind), func(t *testing.T) {
			result, err := Run(series, models.ForecastRequest{
				Location: "Rainforest", Metric: "Temperature", Model: kind, Horizon: 24,
			})
			require.NoError(t, err)

			require.Len(t, result.Values, 24)
			require.Len(t, result.Timestamps, 24)
			assert.Equal(t, kind, result.Model)

			assert.Equal(t, lastInput.Add(time.Hour), result.Timestamps[0])
			for i := 1; i < len(result.Timestamps); i++ {
				assert.True(t, result.Timestamps[i].After(result.Timestamps[i-1]))
				assert.Equal(t, time.Hour, result.Timestamps[i].Sub(result.Timestamps[i-1]))
			}
		})
	}
}

func TestRunZeroVariance(t *testing.T) {
	series := hourlySeries("Temperature", 60, func(int) float64 { return 5.0 })

	for _, kind := range []models.ModelKind{models.ModelARIMA, models.ModelProphet} {
		t.Run(string(kind), func(t *testing.T) {
			_, err := Run(series, models.ForecastRequest{
				Location: "Rainforest", Metric: "Temperature", Model: kind, Horizon: 12,
			})
			var apiErr *models.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, models.ErrorCodeFit, apiErr.Code)
		})
	}
}

func TestRunTooFewObservations(t *testing.T) {
	tests := []struct {
		name string
		kind models.ModelKind
		n    int
	}{
		{"arima below minimum", models.ModelARIMA, 4},
		{"prophet below two seasonal cycles", models.ModelProphet, 47},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			series := hourlySeries("Temperature", tc.n, wavy)
			_, err := Run(series, models.ForecastRequest{
				Location: "Rainforest", Metric: "Temperature", Model: tc.kind, Horizon: 6,
			})
			var apiErr *models.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, models.ErrorCodeFit, apiErr.Code)
		})
	}
}

func TestRunInvalidHorizon(t *testing.T) {
	series := hourlySeries("Temperature", 100, wavy)
	_, err := Run(series, models.ForecastRequest{
		Location: "Rainforest", Metric: "Temperature", Model: models.ModelARIMA, Horizon: 0,
	})
	var apiErr *models.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, models.ErrorCodeBadRequest, apiErr.Code)
}

func TestDeltasShiftInputBeforeFit(t *testing.T) {
	ramp := func(i int) float64 { return 10 + 0.5*float64(i) }
	series := hourlySeries("Temperature", 100, ramp)

	base, err := Run(series, models.ForecastRequest{
		Location: "Rainforest", Metric: "Temperature", Model: models.ModelARIMA, Horizon: 12,
	})
	require.NoError(t, err)

	shifted, err := Run(series, models.ForecastRequest{
		Location: "Rainforest", Metric: "Temperature", Model: models.ModelARIMA, Horizon: 12,
		Deltas: models.Deltas{Temperature: 5},
	})
	require.NoError(t, err)

	for i := range base.Values {
		assert.InDelta(t, base.Values[i]+5, shifted.Values[i], 1e-6)
	}
}

func TestDeltasIgnoreUnrelatedMetric(t *testing.T) {
	series := hourlySeries("Humidity", 100, wavy)

	base, err := Run(series, models.ForecastRequest{
		Location: "Rainforest", Metric: "Humidity", Model: models.ModelProphet, Horizon: 12,
	})
	require.NoError(t, err)

	withDeltas, err := Run(series, models.ForecastRequest{
		Location: "Rainforest", Metric: "Humidity", Model: models.ModelProphet, Horizon: 12,
		Deltas: models.Deltas{Temperature: 5, WindSpeed: -2},
	})
	require.NoError(t, err)

	assert.Equal(t, base.Values, withDeltas.Values)
}

func TestProphetTracksLinearTrend(t *testing.T) {
	ramp := func(i int) float64 { return 10 + 0.5*float64(i) }
	series := hourlySeries("Temperature", 96, ramp)

	result, err := Run(series, models.ForecastRequest{
		Location: "Rainforest", Metric: "Temperature", Model: models.ModelProphet, Horizon: 4,
	})
	require.NoError(t, err)

	for i, v := range result.Values {
		assert.InDelta(t, ramp(96+i), v, 1e-6)
	}
}
