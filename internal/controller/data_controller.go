package controller

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eshaanmathakari/SimuLad/internal/models"
	"github.com/eshaanmathakari/SimuLad/internal/service"
	"github.com/eshaanmathakari/SimuLad/internal/utils"
)

// DataController serves the dataset surface: locations, metrics and raw
// series for charting.
type DataController struct {
	forecasts *service.ForecastService
}

// NewDataController creates a DataController.
func NewDataController(forecasts *service.ForecastService) *DataController {
	return &DataController{forecasts: forecasts}
}

// HandleLocations lists the locations present in the dataset.
func (c *DataController) HandleLocations(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"locations": c.forecasts.Locations(),
	})
}

// HandleMetrics lists the forecastable metrics for one location.
func (c *DataController) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	location := mux.Vars(r)["location"]
	metrics, err := c.forecasts.Metrics(location)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"location": location,
		"metrics":  metrics,
	})
}

// HandleSeries returns the raw series for one location and metric.
func (c *DataController) HandleSeries(w http.ResponseWriter, r *http.Request) {
	location := mux.Vars(r)["location"]
	metric := r.URL.Query().Get("metric")
	series, err := c.forecasts.Series(location, metric)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, series)
}

// HandleModels lists the supported text-generation model identifiers.
func (c *DataController) HandleModels(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"models": models.LLMModels,
	})
}
