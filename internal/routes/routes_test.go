package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaanmathakari/SimuLad/internal/controller"
	"github.com/eshaanmathakari/SimuLad/internal/models"
	"github.com/eshaanmathakari/SimuLad/internal/narrative"
	"github.com/eshaanmathakari/SimuLad/internal/repository"
	"github.com/eshaanmathakari/SimuLad/internal/service"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	var readings []models.SensorReading
	for _, loc := range []string{"Rainforest", "Ocean"} {
		for i := 0; i < 100; i++ {
			readings = append(readings, models.SensorReading{
				Timestamp: start.Add(time.Duration(i) * time.Hour),
				Location:  loc,
				Values:    map[string]float64{"Temperature": 20 + 0.1*float64(i)},
			})
		}
	}
	data := repository.NewDataset(readings, nil)

	forecasts := service.NewForecastService(data)
	narratives := service.NewNarrativeService(narrative.NewClient("http://localhost:11434", time.Second))
	return SetupRouter(
		controller.NewDataController(forecasts),
		controller.NewForecastController(forecasts, narratives),
		controller.NewNarrativeController(narratives),
	)
}

func TestHealthRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestLocationsRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/locations", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Locations []string `json:"locations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"Ocean", "Rainforest"}, body.Locations)
}

func TestMetricsRouteUnknownLocation(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/locations/Atlantis/metrics", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestSeriesRouteRequiresMetric(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/locations/Ocean/series", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestModelsRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/models", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Models []string `json:"models"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Models, "phi3")
	assert.Contains(t, body.Models, "mistral")
}

func TestForecastRoute(t *testing.T) {
	payload := `{"location":"Rainforest","metric":"Temperature","model":"arima","horizon":24}`
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/forecast", strings.NewReader(payload)))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Forecast models.ForecastResult `json:"forecast"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Forecast.Values, 24)
	assert.Equal(t, models.ModelARIMA, body.Forecast.Model)
}

func TestForecastRouteBadModel(t *testing.T) {
	payload := `{"location":"Rainforest","metric":"Temperature","model":"oracle","horizon":24}`
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/forecast", strings.NewReader(payload)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "bad_request")
}

func TestForecastRouteMalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/forecast", strings.NewReader("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareRoute(t *testing.T) {
	payload := `{
		"first":  {"location":"Rainforest","metric":"Temperature","model":"prophet","horizon":24},
		"second": {"location":"Ocean","metric":"Temperature","model":"prophet","horizon":12}
	}`
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/forecast/compare", strings.NewReader(payload)))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Comparison models.ComparisonResult `json:"comparison"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Comparison.First.Timestamps, 12)
	assert.NotEmpty(t, body.Comparison.Summary)
}
