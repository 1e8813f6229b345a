package repository

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"

	"github.com/eshaanmathakari/SimuLad/internal/models"
)

const sensorMeasurement = "sensor_data"

// InfluxSource pulls sensor readings read-only from InfluxDB, one bucket
// per location with one field per metric. It never writes.
type InfluxSource struct {
	client influxdb2.Client
	org    string
}

// NewInfluxSource creates an InfluxSource and checks the connection.
func NewInfluxSource(url, token, org string) (*InfluxSource, error) {
	client := influxdb2.NewClient(url, token)
	health, err := client.Health(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to InfluxDB: %w", err)
	}
	if health.Status != "pass" {
		return nil, fmt.Errorf("InfluxDB health check failed: %v", health.Message)
	}
	log.Println("Successfully connected to InfluxDB")
	return &InfluxSource{client: client, org: org}, nil
}

// Close releases the underlying client.
func (s *InfluxSource) Close() {
	s.client.Close()
}

// Locations lists the non-system buckets, which map one-to-one to
// sensor locations.
func (s *InfluxSource) Locations(ctx context.Context) ([]string, error) {
	bucketsAPI := s.client.BucketsAPI()
	buckets, err := bucketsAPI.GetBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching buckets: %w", err)
	}
	var names []string
	for _, bucket := range *buckets {
		if strings.HasPrefix(bucket.Name, "_") {
			continue // system bucket
		}
		names = append(names, bucket.Name)
	}
	return names, nil
}

// Load queries every location bucket since the given start time and
// assembles the same in-memory table shape the CSV loader produces.
func (s *InfluxSource) Load(ctx context.Context, since time.Time) (*Dataset, error) {
	locations, err := s.Locations(ctx)
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return nil, models.NotFoundError("no location buckets found in InfluxDB org %q", s.org)
	}

	queryAPI := s.client.QueryAPI(s.org)
	var readings []models.SensorReading

	for _, location := range locations {
		query := fmt.Sprintf(`from(bucket: %q)
			|> range(start: %s)
			|> filter(fn: (r) => r._measurement == %q)`,
			location, since.Format(time.RFC3339), sensorMeasurement)

		result, err := queryAPI.Query(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to query bucket %q: %w", location, err)
		}
		count := 0
		for result.Next() {
			record := result.Record()
			value, ok := numericValue(record.Value())
			if !ok {
				continue
			}
			readings = append(readings, models.SensorReading{
				Timestamp: record.Time(),
				Location:  location,
				Values:    map[string]float64{record.Field(): value},
			})
			count++
		}
		if result.Err() != nil {
			return nil, fmt.Errorf("query error for bucket %q: %w", location, result.Err())
		}
		log.Printf("loaded %d readings from InfluxDB bucket %q", count, location)
	}

	return NewDataset(readings, nil), nil
}

func numericValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	}
	return 0, false
}
