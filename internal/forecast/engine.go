// Package forecast fits univariate time-series models over sensor data and
// produces point forecasts for a requested horizon.
package forecast

import (
	"log"
	"strings"
	"time"

	"github.com/eshaanmathakari/SimuLad/internal/models"
)

// Model is the uniform contract both model kinds implement: series in,
// horizon out. Callers see the same behavior regardless of the kind.
type Model interface {
	Kind() models.ModelKind
	MinObservations() int
	Fit(values []float64) error
	Predict(horizon int) ([]float64, error)
}

// Run fits the requested model over the series and returns a forecast of
// exactly req.Horizon values with strictly increasing timestamps,
// contiguous at the series' native sampling interval starting one step
// after the last observation.
func Run(series *models.SensorSeries, req models.ForecastRequest) (*models.ForecastResult, error) {
	if req.Horizon < 1 {
		return nil, models.NewAPIError(models.ErrorCodeBadRequest, "horizon must be at least 1", nil, 400)
	}

	interval := series.Interval()
	if interval <= 0 {
		return nil, models.FitError("series for %s/%s needs at least two observations", series.Location, series.Metric)
	}

	values := series.Values()
	if !req.Deltas.IsZero() {
		values = applyDeltas(values, series.Metric, req.Deltas)
	}

	model, err := newModel(req.Model, interval)
	if err != nil {
		return nil, err
	}
	if len(values) < model.MinObservations() {
		return nil, models.FitError("%s requires at least %d observations, series %s/%s has %d",
			model.Kind(), model.MinObservations(), series.Location, series.Metric, len(values))
	}
	if !hasVariance(values) {
		return nil, models.FitError("series %s/%s has no variance", series.Location, series.Metric)
	}

	if err := model.Fit(values); err != nil {
		return nil, models.FitError("%s fit failed for %s/%s: %v", model.Kind(), series.Location, series.Metric, err)
	}
	predicted, err := model.Predict(req.Horizon)
	if err != nil {
		return nil, models.FitError("%s prediction failed for %s/%s: %v", model.Kind(), series.Location, series.Metric, err)
	}

	last := series.Points[series.Len()-1].Timestamp
	timestamps := make([]time.Time, req.Horizon)
	for i := range timestamps {
		timestamps[i] = last.Add(time.Duration(i+1) * interval)
	}

	log.Printf("forecast %s %s/%s horizon=%d interval=%s", model.Kind(), series.Location, series.Metric, req.Horizon, interval)
	return &models.ForecastResult{
		Request:    req,
		Model:      model.Kind(),
		Timestamps: timestamps,
		Values:     predicted,
	}, nil
}

func newModel(kind models.ModelKind, interval time.Duration) (Model, error) {
	switch kind {
	case models.ModelARIMA:
		return newARIMA(1, 1, 1), nil
	case models.ModelProphet:
		return newProphet(seasonalPeriod(interval)), nil
	}
	return nil, models.NewAPIError(models.ErrorCodeBadRequest, "unknown model kind: "+string(kind), nil, 400)
}

// seasonalPeriod derives the seasonal cycle length from the sampling
// interval: daily cycles for hourly data, weekly cycles for daily data.
func seasonalPeriod(interval time.Duration) int {
	switch {
	case interval == time.Hour:
		return 24
	case interval == 24*time.Hour:
		return 7
	}
	return 0
}

// applyDeltas shifts the input values by the matching offset before
// fitting. Offsets apply only to metrics of their own kind.
func applyDeltas(values []float64, metric string, d models.Deltas) []float64 {
	lower := strings.ToLower(metric)
	var shift float64
	switch {
	case strings.Contains(lower, "temp"):
		shift = d.Temperature
	case strings.Contains(lower, "wind"):
		shift = d.WindSpeed
	default:
		return values
	}
	if shift == 0 {
		return values
	}
	shifted := make([]float64, len(values))
	for i, v := range values {
		shifted[i] = v + shift
	}
	return shifted
}

func hasVariance(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return true
		}
	}
	return false
}
