package narrative

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eshaanmathakari/SimuLad/internal/models"
)

// expertTurn is one scripted slot in the expert roster: the expert's
// opening observation and the analysis question posed to the model.
type expertTurn struct {
	Name    string
	Opening string
	Context string
}

// roster is the fixed, ordered set of experts that take part in a
// discussion. Each produces one independent single-turn generation.
var roster = []expertTurn{
	{
		Name:    "Temperature Expert",
		Opening: "Based on the latest sensor data, I observe a subtle upward trend in temperature.",
		Context: "Temperature Expert: I observe a subtle upward trend in temperature that could affect other variables. " +
			"Please provide an in-depth analysis of the potential impacts on the ecosystem.",
	},
	{
		Name:    "Humidity Expert",
		Opening: "Based on the temperature trends, I expect corresponding changes in humidity levels.",
		Context: "Humidity Expert: Considering the observed temperature trends and their potential influence on moisture, " +
			"please analyze how humidity levels might change and suggest actionable recommendations.",
	},
	{
		Name:    "Wind Speed Expert",
		Opening: "Observations indicate fluctuations in wind speed which may affect dispersion patterns.",
		Context: "Wind Speed Expert: Given the variability in wind speed from the dataset, please evaluate how these fluctuations " +
			"might influence overall ecosystem dynamics, particularly pollutant dispersion or microclimate effects.",
	},
}

// ExpertNames lists the roster in discussion order.
func ExpertNames() []string {
	names := make([]string, len(roster))
	for i, turn := range roster {
		names[i] = turn.Name
	}
	return names
}

// Discussion walks the roster in order, generating one response per
// expert. Each expert's context folds in the responses of the experts
// before it; there is no shared conversation object, only a sequence of
// independent calls. The returned log holds openings and responses in
// the order they were produced.
func Discussion(ctx context.Context, client *Client, model string, dataSummary string) ([]models.ExpertEntry, error) {
	var entries []models.ExpertEntry
	var priorResponses []string

	for _, turn := range roster {
		entries = append(entries, newEntry(turn.Name, turn.Opening))

		instructions := turn.Context
		if len(priorResponses) > 0 {
			instructions += "\n\nEarlier expert remarks:\n" + strings.Join(priorResponses, "\n")
		}
		prompt := ExpertPrompt(turn.Name, dataSummary, instructions)

		response, err := client.Generate(ctx, model, prompt)
		if err != nil {
			return entries, err
		}
		entries = append(entries, newEntry(turn.Name, response))
		priorResponses = append(priorResponses, fmt.Sprintf("%s: %s", turn.Name, response))
	}
	return entries, nil
}

func newEntry(expert, message string) models.ExpertEntry {
	return models.ExpertEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Expert:    expert,
		Message:   message,
	}
}
