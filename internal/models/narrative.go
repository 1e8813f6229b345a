package models

import "time"

// LLMModels is the fixed set of local model identifiers the
// text-generation endpoint accepts.
var LLMModels = []string{"gemma3", "deepseek-r1", "llama3.3", "mistral", "phi3"}

// ValidLLMModel reports whether name is one of the supported models.
func ValidLLMModel(name string) bool {
	for _, m := range LLMModels {
		if m == name {
			return true
		}
	}
	return false
}

// NarrativeRequest describes one narrative generation call. Exactly one of
// Series, Forecast and Comparison may carry the structured context; all may
// be nil when Instructions alone describe the task.
type NarrativeRequest struct {
	Role         string            `json:"role"`
	Model        string            `json:"model"`
	Series       *SensorSeries     `json:"series,omitempty"`
	Forecast     *ForecastResult   `json:"forecast,omitempty"`
	Comparison   *ComparisonResult `json:"comparison,omitempty"`
	Instructions string            `json:"instructions"`
}

// Narrative is the text returned by the generation endpoint, opaque to
// this system beyond display.
type Narrative struct {
	Role   string `json:"role,omitempty"`
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Text   string `json:"text"`
}

// ExpertEntry is one message in an expert discussion log.
type ExpertEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Expert    string    `json:"expert"`
	Message   string    `json:"message"`
}
