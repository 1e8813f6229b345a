package models

import (
	"strings"
	"time"
)

// ModelKind selects the forecasting model.
type ModelKind string

const (
	ModelARIMA   ModelKind = "ARIMA"
	ModelProphet ModelKind = "Prophet"
)

// ParseModelKind validates a user-supplied model kind.
func ParseModelKind(s string) (ModelKind, bool) {
	switch strings.ToLower(s) {
	case "arima":
		return ModelARIMA, true
	case "prophet":
		return ModelProphet, true
	}
	return "", false
}

// Deltas are user-supplied simulation offsets. Each is applied as a
// constant additive shift to the input series before fitting, and only
// when the requested metric is of the matching kind. This is a simulation
// knob, not a physically modeled effect.
type Deltas struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"wind_speed"`
}

// IsZero reports whether no offset was requested.
func (d Deltas) IsZero() bool { return d.Temperature == 0 && d.WindSpeed == 0 }

// ForecastRequest describes one forecast to run. Immutable once constructed.
type ForecastRequest struct {
	Location string    `json:"location"`
	Metric   string    `json:"metric"`
	Model    ModelKind `json:"model"`
	Horizon  int       `json:"horizon"`
	Deltas   Deltas    `json:"deltas"`
}

// ForecastResult holds the predicted sequence for one request. Produced
// once per request and never mutated.
type ForecastResult struct {
	Request    ForecastRequest `json:"request"`
	Model      ModelKind       `json:"model"`
	Timestamps []time.Time     `json:"timestamps"`
	Values     []float64       `json:"values"`
}

// ComparisonResult pairs two forecasts aligned on a common set of
// timestamps, with a derived textual summary of their differences.
type ComparisonResult struct {
	First   *ForecastResult `json:"first"`
	Second  *ForecastResult `json:"second"`
	Summary string          `json:"summary"`
}
