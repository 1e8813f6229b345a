package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/eshaanmathakari/SimuLad/internal/models"
	"github.com/eshaanmathakari/SimuLad/internal/service"
	"github.com/eshaanmathakari/SimuLad/internal/utils"
)

// NarrativeController handles narrative generation and expert discussions.
type NarrativeController struct {
	narratives *service.NarrativeService
}

// NewNarrativeController creates a NarrativeController.
func NewNarrativeController(narratives *service.NarrativeService) *NarrativeController {
	return &NarrativeController{narratives: narratives}
}

// HandleNarrative generates one narrative from a NarrativeRequest.
func (c *NarrativeController) HandleNarrative(w http.ResponseWriter, r *http.Request) {
	var req models.NarrativeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeBadRequest,
			fmt.Sprintf("error unmarshalling JSON: %v", err), nil, http.StatusBadRequest))
		return
	}
	result, err := c.narratives.Generate(r.Context(), req)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// HandleDiscussion runs the expert roster and returns the discussion log.
func (c *NarrativeController) HandleDiscussion(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Model       string `json:"model"`
		DataSummary string `json:"data_summary"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, models.NewAPIError(models.ErrorCodeBadRequest,
			fmt.Sprintf("error unmarshalling JSON: %v", err), nil, http.StatusBadRequest))
		return
	}
	entries, err := c.narratives.ExpertDiscussion(r.Context(), body.Model, body.DataSummary)
	if err != nil {
		utils.RespondWithError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"log": entries})
}
