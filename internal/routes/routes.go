package routes

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eshaanmathakari/SimuLad/internal/controller"
)

// SetupRouter registers all application routes.
func SetupRouter(data *controller.DataController, forecasts *controller.ForecastController, narratives *controller.NarrativeController) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	}).Methods(http.MethodGet)

	router.HandleFunc("/locations", data.HandleLocations).Methods(http.MethodGet)
	router.HandleFunc("/locations/{location}/metrics", data.HandleMetrics).Methods(http.MethodGet)
	router.HandleFunc("/locations/{location}/series", data.HandleSeries).Methods(http.MethodGet)
	router.HandleFunc("/models", data.HandleModels).Methods(http.MethodGet)

	router.HandleFunc("/forecast", forecasts.HandleForecast).Methods(http.MethodPost)
	router.HandleFunc("/forecast/compare", forecasts.HandleCompare).Methods(http.MethodPost)

	router.HandleFunc("/narrative", narratives.HandleNarrative).Methods(http.MethodPost)
	router.HandleFunc("/experts/discussion", narratives.HandleDiscussion).Methods(http.MethodPost)

	return router
}
