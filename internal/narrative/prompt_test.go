package narrative

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaanmathakari/SimuLad/internal/models"
)

func risingSeries() *models.SensorSeries {
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	s := &models.SensorSeries{Location: "Rainforest", Metric: "Temperature"}
	for i := 0; i < 100; i++ {
		s.Points = append(s.Points, models.SeriesPoint{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Value:     20 + 5*float64(i)/99,
		})
	}
	return s
}

func TestBuildPromptDeterministic(t *testing.T) {
	req := models.NarrativeRequest{
		Role:         "Temperature Expert",
		Series:       risingSeries(),
		Instructions: "Assess the impact on the ecosystem.",
	}
	assert.Equal(t, BuildPrompt(req), BuildPrompt(req))
}

func TestBuildPromptDescribesRise(t *testing.T) {
	prompt := BuildPrompt(models.NarrativeRequest{
		Role:         "Temperature Expert",
		Series:       risingSeries(),
		Instructions: "Assess the impact on the ecosystem.",
	})

	assert.Contains(t, prompt, "You are Temperature Expert")
	assert.Contains(t, prompt, "Temperature rose from 20.00 to 25.00")
	assert.Contains(t, prompt, "in Rainforest")
	assert.Contains(t, prompt, "Provide your expert analysis:")
}

func TestBuildPromptWithoutRoleSummarizes(t *testing.T) {
	prompt := BuildPrompt(models.NarrativeRequest{
		Instructions: "In Rainforest, Temperature adjusted by 2.0°F.",
	})
	assert.Contains(t, prompt, "Summarize the following simulation results:")
	assert.Contains(t, prompt, "Temperature adjusted by 2.0°F")
}

func TestBuildPromptWithoutContext(t *testing.T) {
	prompt := BuildPrompt(models.NarrativeRequest{
		Role:         "Humidity Expert",
		Instructions: "Analyze humidity changes.",
	})
	assert.Contains(t, prompt, "Do not include generic placeholders or incomplete ranges.")
	assert.NotContains(t, prompt, "Data Summary:")
}

func TestRenderSeriesFalling(t *testing.T) {
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	s := &models.SensorSeries{Location: "Desert", Metric: "Humidity"}
	for i := 0; i < 24; i++ {
		s.Points = append(s.Points, models.SeriesPoint{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Value:     40 - float64(i),
		})
	}
	text := RenderSeries(s)
	assert.Contains(t, text, "Humidity fell from 40.00 to 17.00")
	assert.Contains(t, text, "23.0 hours")
}

func TestRenderForecast(t *testing.T) {
	start := time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)
	f := &models.ForecastResult{
		Request: models.ForecastRequest{Location: "Ocean", Metric: "Temperature", Model: models.ModelProphet},
		Model:   models.ModelProphet,
	}
	for i := 0; i < 6; i++ {
		f.Timestamps = append(f.Timestamps, start.Add(time.Duration(i)*time.Hour))
		f.Values = append(f.Values, 15+float64(i))
	}

	text := RenderForecast(f)
	assert.Contains(t, text, "Prophet forecast for Ocean Temperature")
	assert.Contains(t, text, "6 steps")
	assert.Contains(t, text, "starting at 15.00 and ending at 20.00")
}

func TestSpanTextSwitchesToDays(t *testing.T) {
	series := risingSeries()
	text := RenderSeries(series)
	// 99 hours is just over four days
	require.Contains(t, text, "4.1 days")
}
