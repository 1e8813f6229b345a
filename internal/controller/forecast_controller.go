package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/eshaanmathakari/SimuLad/internal/models"
	"github.com/eshaanmathakari/SimuLad/internal/service"
	"github.com/eshaanmathakari/SimuLad/internal/utils"
)

// ForecastController handles forecast and comparison requests.
type ForecastController struct {
	forecasts  *service.ForecastService
	narratives *service.NarrativeService
}

// NewForecastController creates a ForecastController.
func NewForecastController(forecasts *service.ForecastService, narratives *service.NarrativeService) *ForecastController {
	return &ForecastController{forecasts: forecasts, narratives: narratives}
}

// forecastPayload is the wire form of a forecast request.
type forecastPayload struct {
	Location string        `json:"location"`
	Metric   string        `json:"metric"`
	Model    string        `json:"model"`
	Horizon  int           `json:"horizon"`
	Deltas   models.Deltas `json:"deltas"`
}

func (p forecastPayload) toRequest() (models.ForecastRequest, error) {
	kind, ok := models.ParseModelKind(p.Model)
	if !ok {
		return models.ForecastRequest{}, models.NewAPIError(models.ErrorCodeBadRequest,
			fmt.Sprintf("model must be %s or %s, got %q", models.ModelARIMA, models.ModelProphet, p.Model), nil, http.StatusBadRequest)
	}
	return models.ForecastRequest{
		Location: p.Location,
		Metric:   p.Metric,
		Model:    kind,
		Horizon:  p.Horizon,
		Deltas:   p.Deltas,
	}, nil
}

// HandleForecast runs one forecast. With summarize=true the response also
// carries an LLM summary of the simulation run.
func (c *ForecastController) HandleForecast(w http.ResponseWriter, r *http.Request) {
	var body struct {
		forecastPayload
		Summarize bool   `json:"summarize"`
		LLMModel  string `json:"llm_model"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeBadRequest,
			fmt.Sprintf("error unmarshalling JSON: %v", err), nil, http.StatusBadRequest))
		return
	}

	req, err := body.toRequest()
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}
	result, err := c.forecasts.Forecast(req)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	response := map[string]interface{}{"forecast": result}
	if body.Summarize {
		summary, err := c.narratives.SimulationSummary(r.Context(), result, body.LLMModel)
		if err != nil {
			utils.RespondWithError(w, err)
			return
		}
		response["summary"] = summary
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// HandleCompare forecasts two ecosystems and aligns the results. With
// narrate=true the response also carries an LLM comparison analysis.
func (c *ForecastController) HandleCompare(w http.ResponseWriter, r *http.Request) {
	var body struct {
		First    forecastPayload `json:"first"`
		Second   forecastPayload `json:"second"`
		Narrate  bool            `json:"narrate"`
		LLMModel string          `json:"llm_model"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeBadRequest,
			fmt.Sprintf("error unmarshalling JSON: %v", err), nil, http.StatusBadRequest))
		return
	}

	first, err := body.First.toRequest()
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}
	second, err := body.Second.toRequest()
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	cmp, err := c.forecasts.Compare(first, second)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}

	response := map[string]interface{}{"comparison": cmp}
	if body.Narrate {
		narrativeResult, err := c.narratives.CompareNarrative(r.Context(), cmp, body.LLMModel)
		if err != nil {
			utils.RespondWithError(w, err)
			return
		}
		response["narrative"] = narrativeResult
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
