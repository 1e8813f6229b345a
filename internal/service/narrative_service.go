package service

import (
	"context"
	"fmt"
	"log"

	"github.com/eshaanmathakari/SimuLad/internal/models"
	"github.com/eshaanmathakari/SimuLad/internal/narrative"
)

const defaultLLMModel = "phi3"

// NarrativeService turns structured data into prompts and runs them
// through the text-generation client. It holds no state across calls.
type NarrativeService struct {
	client *narrative.Client
}

// NewNarrativeService creates a NarrativeService.
func NewNarrativeService(client *narrative.Client) *NarrativeService {
	return &NarrativeService{client: client}
}

// Generate builds the prompt for a request and submits it. The response
// text is returned unmodified.
func (s *NarrativeService) Generate(ctx context.Context, req models.NarrativeRequest) (*models.Narrative, error) {
	if req.Model == "" {
		req.Model = defaultLLMModel
	}
	prompt := narrative.BuildPrompt(req)
	text, err := s.client.Generate(ctx, req.Model, prompt)
	if err != nil {
		return nil, err
	}
	return &models.Narrative{
		Role:   req.Role,
		Model:  req.Model,
		Prompt: prompt,
		Text:   text,
	}, nil
}

// SimulationSummary narrates one forecast run, including the simulation
// offsets that shaped it.
func (s *NarrativeService) SimulationSummary(ctx context.Context, result *models.ForecastResult, model string) (*models.Narrative, error) {
	req := result.Request
	text := fmt.Sprintf(
		"In %s, Temperature adjusted by %.1f°F and Wind Speed by %.1f m/s. Forecast using %s shows the impact on related variables.",
		req.Location, req.Deltas.Temperature, req.Deltas.WindSpeed, result.Model)
	return s.Generate(ctx, models.NarrativeRequest{
		Model:        model,
		Instructions: text,
	})
}

// CompareNarrative asks the model for a comparison analysis of two
// aligned forecasts, feeding it the raw forecast tables.
func (s *NarrativeService) CompareNarrative(ctx context.Context, cmp *models.ComparisonResult, model string) (*models.Narrative, error) {
	if model == "" {
		model = defaultLLMModel
	}
	prompt := fmt.Sprintf(
		"Compare the following forecasts for two ecosystems:\n\n"+
			"Forecast for %s:\n%s\n\n"+
			"Forecast for %s:\n%s\n\n"+
			"Provide a detailed comparison analysis highlighting key differences, potential causes, "+
			"and actionable recommendations based on these forecasts.",
		cmp.First.Request.Location, narrative.RenderForecastTable(cmp.First),
		cmp.Second.Request.Location, narrative.RenderForecastTable(cmp.Second))

	text, err := s.client.Generate(ctx, model, prompt)
	if err != nil {
		return nil, err
	}
	return &models.Narrative{Model: model, Prompt: prompt, Text: text}, nil
}

// ExpertDiscussion runs the fixed expert roster as a sequence of
// independent single-turn generations and returns the resulting log.
func (s *NarrativeService) ExpertDiscussion(ctx context.Context, model, dataSummary string) ([]models.ExpertEntry, error) {
	if model == "" {
		model = defaultLLMModel
	}
	entries, err := narrative.Discussion(ctx, s.client, model, dataSummary)
	if err != nil {
		return nil, err
	}
	log.Printf("expert discussion produced %d entries with model %s", len(entries), model)
	return entries, nil
}
