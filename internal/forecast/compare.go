package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/eshaanmathakari/SimuLad/internal/models"
)

// Compare aligns two forecasts on their common timestamps (inner join;
// differing horizons truncate to the overlap) and derives a textual
// summary of the differences.
func Compare(first, second *models.ForecastResult) (*models.ComparisonResult, error) {
	secondIdx := make(map[int64]int, len(second.Timestamps))
	for i, ts := range second.Timestamps {
		secondIdx[ts.UnixNano()] = i
	}

	var (
		timestamps []time.Time
		firstVals  []float64
		secondVals []float64
	)
	for i, ts := range first.Timestamps {
		j, ok := secondIdx[ts.UnixNano()]
		if !ok {
			continue
		}
		timestamps = append(timestamps, ts)
		firstVals = append(firstVals, first.Values[i])
		secondVals = append(secondVals, second.Values[j])
	}
	if len(timestamps) == 0 {
		return nil, models.AlignmentError("forecasts for %q and %q share no timestamps",
			first.Request.Location, second.Request.Location)
	}

	aligned := &models.ComparisonResult{
		First: &models.ForecastResult{
			Request:    first.Request,
			Model:      first.Model,
			Timestamps: timestamps,
			Values:     firstVals,
		},
		Second: &models.ForecastResult{
			Request:    second.Request,
			Model:      second.Model,
			Timestamps: timestamps,
			Values:     secondVals,
		},
	}
	aligned.Summary = summarize(aligned)
	return aligned, nil
}

// summarize renders a deterministic description of how the two aligned
// forecasts differ over the shared window.
func summarize(cmp *models.ComparisonResult) string {
	a, b := cmp.First, cmp.Second
	n := len(a.Values)

	var meanA, meanB float64
	maxGap := math.Inf(-1)
	maxGapAt := a.Timestamps[0]
	for i := 0; i < n; i++ {
		meanA += a.Values[i]
		meanB += b.Values[i]
		gap := math.Abs(a.Values[i] - b.Values[i])
		if gap > maxGap {
			maxGap = gap
			maxGapAt = a.Timestamps[i]
		}
	}
	meanA /= float64(n)
	meanB /= float64(n)

	var relation string
	switch {
	case meanA > meanB:
		relation = fmt.Sprintf("%s runs %.2f higher on average", a.Request.Location, meanA-meanB)
	case meanB > meanA:
		relation = fmt.Sprintf("%s runs %.2f higher on average", b.Request.Location, meanB-meanA)
	default:
		relation = "both track the same average level"
	}

	return fmt.Sprintf(
		"Across %d shared forecast steps (%s to %s), %s %s averages %.2f while %s %s averages %.2f; %s. The widest gap of %.2f occurs at %s.",
		n,
		a.Timestamps[0].Format(time.RFC3339), a.Timestamps[n-1].Format(time.RFC3339),
		a.Request.Location, a.Request.Metric, meanA,
		b.Request.Location, b.Request.Metric, meanB,
		relation,
		maxGap, maxGapAt.Format(time.RFC3339),
	)
}
