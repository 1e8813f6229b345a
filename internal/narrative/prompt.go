// Package narrative builds prompts from sensor data and forecasts and
// submits them to a locally hosted text-generation endpoint.
package narrative

import (
	"fmt"
	"strings"
	"time"

	"github.com/eshaanmathakari/SimuLad/internal/models"
)

// BuildPrompt renders the full prompt for a request. Construction is pure:
// identical requests produce byte-identical prompts.
func BuildPrompt(req models.NarrativeRequest) string {
	context := RenderContext(req)

	if req.Role == "" {
		text := req.Instructions
		if context != "" {
			text = strings.TrimSpace(context + " " + req.Instructions)
		}
		return "Summarize the following simulation results: " + text
	}

	return ExpertPrompt(req.Role, context, req.Instructions)
}

// ExpertPrompt renders the expert-analysis template. A non-empty
// dataSummary selects the variant that cites summarized data.
func ExpertPrompt(role, dataSummary, context string) string {
	if strings.TrimSpace(dataSummary) != "" {
		return fmt.Sprintf(
			"You are %s, a seasoned expert in environmental sensor data analysis. "+
				"Based on the following summarized data and context, provide a detailed, actionable analysis and forecast. "+
				"Data Summary: %s\nContext: %s\n\nProvide your expert analysis:",
			role, dataSummary, context)
	}
	return fmt.Sprintf(
		"You are %s, a seasoned expert in environmental sensor data analysis. "+
			"Based on the following context, provide a detailed, actionable, and specific forecast and analysis. "+
			"Do not include generic placeholders or incomplete ranges. "+
			"Context: %s\n\nProvide your expert analysis:",
		role, context)
}

// RenderContext produces the human-readable rendering of whichever
// structured context the request carries.
func RenderContext(req models.NarrativeRequest) string {
	switch {
	case req.Series != nil:
		return RenderSeries(req.Series)
	case req.Forecast != nil:
		return RenderForecast(req.Forecast)
	case req.Comparison != nil:
		return req.Comparison.Summary
	}
	return ""
}

// RenderSeries describes the net movement of a series in plain language,
// e.g. "Temperature rose from 20.00 to 25.00 over 4.1 days in Rainforest."
func RenderSeries(s *models.SensorSeries) string {
	if s.Len() == 0 {
		return fmt.Sprintf("%s in %s has no observations.", s.Metric, s.Location)
	}
	first := s.Points[0]
	last := s.Points[s.Len()-1]

	verb := "held steady at"
	switch {
	case last.Value > first.Value:
		verb = "rose from"
	case last.Value < first.Value:
		verb = "fell from"
	}
	if verb == "held steady at" {
		return fmt.Sprintf("%s held steady at %.2f over %s in %s.",
			s.Metric, first.Value, spanText(last.Timestamp.Sub(first.Timestamp)), s.Location)
	}
	return fmt.Sprintf("%s %s %.2f to %.2f over %s in %s.",
		s.Metric, verb, first.Value, last.Value,
		spanText(last.Timestamp.Sub(first.Timestamp)), s.Location)
}

// RenderForecast describes a forecast's window and endpoints.
func RenderForecast(f *models.ForecastResult) string {
	n := len(f.Values)
	if n == 0 {
		return fmt.Sprintf("%s forecast for %s %s is empty.", f.Model, f.Request.Location, f.Request.Metric)
	}
	return fmt.Sprintf("%s forecast for %s %s: %d steps from %s to %s, starting at %.2f and ending at %.2f.",
		f.Model, f.Request.Location, f.Request.Metric, n,
		f.Timestamps[0].Format(time.RFC3339), f.Timestamps[n-1].Format(time.RFC3339),
		f.Values[0], f.Values[n-1])
}

// RenderForecastTable lists a forecast row by row for prompts that want
// the raw numbers.
func RenderForecastTable(f *models.ForecastResult) string {
	var b strings.Builder
	for i, ts := range f.Timestamps {
		fmt.Fprintf(&b, "%s  %.4f\n", ts.Format("2006-01-02 15:04"), f.Values[i])
	}
	return b.String()
}

func spanText(d time.Duration) string {
	hours := d.Hours()
	if hours >= 48 {
		return fmt.Sprintf("%.1f days", hours/24)
	}
	return fmt.Sprintf("%.1f hours", hours)
}
