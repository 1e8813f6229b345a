package repository

import (
	"encoding/csv"
	"errors"
	"io"
	"log"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/eshaanmathakari/SimuLad/internal/models"
)

// sentinel used by the sensor export for missing values
const missingSentinel = -9999

const (
	timeColumn     = "DateTime"
	locationColumn = "Location"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Dataset is the in-memory sensor table, keyed by location. It is
// immutable after load and safe to share read-only across requests.
type Dataset struct {
	locations map[string]*locationTable
}

type locationTable struct {
	timestamps []time.Time
	metrics    map[string][]float64 // NaN marks a missing observation
	order      []string             // metric names in header order
}

// LoadCSV reads the merged sensor CSV into a Dataset. The file must carry
// a DateTime column, a Location column and at least one metric column.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, models.NotFoundError("data file %q does not exist", path)
		}
		return nil, models.NotFoundError("cannot open data file %q: %v", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, models.DataFormatError("cannot read CSV header: %v", err)
	}

	timeIdx, locIdx := -1, -1
	metricIdx := make(map[string]int)
	var metricOrder []string
	for i, col := range header {
		switch col {
		case timeColumn:
			timeIdx = i
		case locationColumn:
			locIdx = i
		default:
			metricIdx[col] = i
			metricOrder = append(metricOrder, col)
		}
	}
	if timeIdx < 0 {
		return nil, models.DataFormatError("required column %q is missing", timeColumn)
	}
	if locIdx < 0 {
		return nil, models.DataFormatError("required column %q is missing", locationColumn)
	}
	if len(metricOrder) == 0 {
		return nil, models.DataFormatError("no metric columns found beside %s and %s", timeColumn, locationColumn)
	}

	var readings []models.SensorReading
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, models.DataFormatError("malformed CSV at line %d: %v", line+1, err)
		}
		line++

		ts, ok := parseTimestamp(record[timeIdx])
		if !ok {
			log.Printf("skipping line %d: unparseable timestamp %q", line, record[timeIdx])
			continue
		}
		reading := models.SensorReading{
			Timestamp: ts,
			Location:  record[locIdx],
			Values:    make(map[string]float64, len(metricOrder)),
		}
		for name, idx := range metricIdx {
			if idx >= len(record) {
				continue
			}
			if v, ok := parseValue(record[idx]); ok {
				reading.Values[name] = v
			}
		}
		readings = append(readings, reading)
	}

	ds := NewDataset(readings, metricOrder)
	log.Printf("loaded %d readings across %d locations from %s", len(readings), len(ds.locations), path)
	return ds, nil
}

// NewDataset assembles a Dataset from raw readings. metricOrder fixes the
// metric listing order; pass nil to derive it from the readings.
func NewDataset(readings []models.SensorReading, metricOrder []string) *Dataset {
	if metricOrder == nil {
		seen := make(map[string]bool)
		for _, r := range readings {
			for name := range r.Values {
				if !seen[name] {
					seen[name] = true
					metricOrder = append(metricOrder, name)
				}
			}
		}
		sort.Strings(metricOrder)
	}

	byLocation := make(map[string][]models.SensorReading)
	for _, r := range readings {
		byLocation[r.Location] = append(byLocation[r.Location], r)
	}

	ds := &Dataset{locations: make(map[string]*locationTable, len(byLocation))}
	for loc, rows := range byLocation {
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Timestamp.Before(rows[j].Timestamp)
		})
		table := &locationTable{
			timestamps: make([]time.Time, len(rows)),
			metrics:    make(map[string][]float64, len(metricOrder)),
			order:      metricOrder,
		}
		for i, r := range rows {
			table.timestamps[i] = r.Timestamp
		}
		for _, name := range metricOrder {
			col := make([]float64, len(rows))
			for i, r := range rows {
				if v, ok := r.Values[name]; ok {
					col[i] = v
				} else {
					col[i] = math.NaN()
				}
			}
			interpolate(table.timestamps, col)
			table.metrics[name] = col
		}
		ds.locations[loc] = table
	}
	return ds
}

// Locations lists the locations present in the dataset, sorted.
func (d *Dataset) Locations() []string {
	names := make([]string, 0, len(d.locations))
	for name := range d.locations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Metrics returns the metric names that carry at least one observed value
// for the given location.
func (d *Dataset) Metrics(location string) ([]string, error) {
	table, ok := d.locations[location]
	if !ok {
		return nil, models.NotFoundError("no sensor data found for location %q", location)
	}
	var names []string
	for _, name := range table.order {
		if hasFinite(table.metrics[name]) {
			names = append(names, name)
		}
	}
	return names, nil
}

// Series extracts the univariate series for one location and metric,
// ordered by timestamp with missing observations dropped.
func (d *Dataset) Series(location, metric string) (*models.SensorSeries, error) {
	table, ok := d.locations[location]
	if !ok {
		return nil, models.NotFoundError("no sensor data found for location %q", location)
	}
	col, ok := table.metrics[metric]
	if !ok || !hasFinite(col) {
		return nil, models.NotFoundError("location %q has no metric %q", location, metric)
	}
	series := &models.SensorSeries{Location: location, Metric: metric}
	for i, v := range col {
		if math.IsNaN(v) {
			continue
		}
		series.Points = append(series.Points, models.SeriesPoint{
			Timestamp: table.timestamps[i],
			Value:     v,
		})
	}
	return series, nil
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func parseValue(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || v == missingSentinel {
		return 0, false
	}
	return v, true
}

func hasFinite(col []float64) bool {
	for _, v := range col {
		if !math.IsNaN(v) {
			return true
		}
	}
	return false
}

// interpolate fills NaN gaps in vals by linear interpolation against the
// timestamps, with forward/backward fill at the edges.
func interpolate(ts []time.Time, vals []float64) {
	prev := -1
	for i := 0; i < len(vals); i++ {
		if math.IsNaN(vals[i]) {
			continue
		}
		if prev >= 0 && i-prev > 1 {
			span := ts[i].Sub(ts[prev]).Seconds()
			for j := prev + 1; j < i; j++ {
				if span <= 0 {
					vals[j] = vals[prev]
					continue
				}
				frac := ts[j].Sub(ts[prev]).Seconds() / span
				vals[j] = vals[prev] + frac*(vals[i]-vals[prev])
			}
		}
		if prev < 0 {
			// backward fill the leading gap
			for j := 0; j < i; j++ {
				vals[j] = vals[i]
			}
		}
		prev = i
	}
	if prev < 0 {
		return // whole column missing
	}
	for j := prev + 1; j < len(vals); j++ {
		vals[j] = vals[prev]
	}
}
