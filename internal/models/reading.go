package models

import "time"

// SensorReading represents one row of the merged sensor table: a timestamp,
// a location and whatever metric values were observed there. Duplicate
// (timestamp, location) pairs are legal and simply produce multiple rows.
type SensorReading struct {
	Timestamp time.Time          `json:"timestamp"`
	Location  string             `json:"location"`
	Values    map[string]float64 `json:"values"`
}

// SeriesPoint is a single observation within a SensorSeries.
type SeriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// SensorSeries is an ordered-by-timestamp univariate series for one
// location and one metric. It is derived on demand from the dataset and
// never persisted.
type SensorSeries struct {
	Location string        `json:"location"`
	Metric   string        `json:"metric"`
	Points   []SeriesPoint `json:"points"`
}

// Len returns the number of observations.
func (s *SensorSeries) Len() int { return len(s.Points) }

// Values returns the observation values in order.
func (s *SensorSeries) Values() []float64 {
	vals := make([]float64, len(s.Points))
	for i, p := range s.Points {
		vals[i] = p.Value
	}
	return vals
}

// Interval estimates the native sampling interval as the median gap
// between consecutive observations. Zero if fewer than two points.
func (s *SensorSeries) Interval() time.Duration {
	if len(s.Points) < 2 {
		return 0
	}
	gaps := make([]time.Duration, 0, len(s.Points)-1)
	for i := 1; i < len(s.Points); i++ {
		gaps = append(gaps, s.Points[i].Timestamp.Sub(s.Points[i-1].Timestamp))
	}
	// insertion sort; the slice is small
	for i := 1; i < len(gaps); i++ {
		for j := i; j > 0 && gaps[j] < gaps[j-1]; j-- {
			gaps[j], gaps[j-1] = gaps[j-1], gaps[j]
		}
	}
	return gaps[len(gaps)/2]
}
