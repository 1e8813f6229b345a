package service

import (
	"fmt"
	"log"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/eshaanmathakari/SimuLad/internal/forecast"
	"github.com/eshaanmathakari/SimuLad/internal/models"
	"github.com/eshaanmathakari/SimuLad/internal/repository"
)

const forecastCacheSize = 128

// ForecastService handles the business logic around the dataset and the
// forecast engine. The dataset is read-only; cached forecast results are
// immutable values, so sharing them across requests is safe.
type ForecastService struct {
	data  *repository.Dataset
	cache *lru.Cache[string, *models.ForecastResult]
}

// NewForecastService creates a ForecastService over a loaded dataset.
func NewForecastService(data *repository.Dataset) *ForecastService {
	cache, _ := lru.New[string, *models.ForecastResult](forecastCacheSize)
	return &ForecastService{data: data, cache: cache}
}

// Locations lists the locations available in the dataset.
func (s *ForecastService) Locations() []string {
	return s.data.Locations()
}

// Metrics returns the forecastable metric names for a location.
func (s *ForecastService) Metrics(location string) ([]string, error) {
	if location == "" {
		return nil, models.NewAPIError(models.ErrorCodeBadRequest, "location is required", nil, 400)
	}
	return s.data.Metrics(location)
}

// Series returns the raw series for one location and metric.
func (s *ForecastService) Series(location, metric string) (*models.SensorSeries, error) {
	if location == "" || metric == "" {
		return nil, models.NewAPIError(models.ErrorCodeBadRequest, "location and metric are required", nil, 400)
	}
	return s.data.Series(location, metric)
}

// Forecast validates the request, derives the series and runs the engine.
// Results are memoized per request since the dataset never changes.
func (s *ForecastService) Forecast(req models.ForecastRequest) (*models.ForecastResult, error) {
	if req.Location == "" || req.Metric == "" {
		return nil, models.NewAPIError(models.ErrorCodeBadRequest, "location and metric are required", nil, 400)
	}
	if req.Model != models.ModelARIMA && req.Model != models.ModelProphet {
		return nil, models.NewAPIError(models.ErrorCodeBadRequest,
			fmt.Sprintf("model must be %s or %s", models.ModelARIMA, models.ModelProphet), nil, 400)
	}

	key := cacheKey(req)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	series, err := s.data.Series(req.Location, req.Metric)
	if err != nil {
		return nil, err
	}
	result, err := forecast.Run(series, req)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, result)
	return result, nil
}

// Compare runs the engine for two different locations and aligns the
// results on their common forecast timestamps.
func (s *ForecastService) Compare(first, second models.ForecastRequest) (*models.ComparisonResult, error) {
	if first.Location == second.Location {
		return nil, models.NewAPIError(models.ErrorCodeBadRequest,
			"comparison requires two different locations", nil, 400)
	}

	resultA, err := s.Forecast(first)
	if err != nil {
		return nil, err
	}
	resultB, err := s.Forecast(second)
	if err != nil {
		return nil, err
	}

	cmp, err := forecast.Compare(resultA, resultB)
	if err != nil {
		return nil, err
	}
	log.Printf("compared forecasts %s vs %s on %d shared steps",
		first.Location, second.Location, len(cmp.First.Timestamps))
	return cmp, nil
}

func cacheKey(req models.ForecastRequest) string {
	return fmt.Sprintf("%s|%s|%s|%d|%.4f|%.4f",
		req.Location, req.Metric, req.Model, req.Horizon,
		req.Deltas.Temperature, req.Deltas.WindSpeed)
}
