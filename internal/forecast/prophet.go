package forecast

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/eshaanmathakari/SimuLad/internal/models"
)

// prophetModel is an additive trend-plus-seasonality decomposition: a
// least-squares linear trend with a seasonal component estimated as the
// mean detrended residual per phase of the seasonal cycle. Data whose
// sampling interval implies no known cycle is fit as pure trend.
type prophetModel struct {
	period int

	intercept float64
	slope     float64
	seasonal  []float64
	n         int
	fitted    bool
}

func newProphet(period int) *prophetModel {
	return &prophetModel{period: period}
}

func (m *prophetModel) Kind() models.ModelKind { return models.ModelProphet }

// MinObservations requires two full seasonal cycles so every phase is
// observed at least twice.
func (m *prophetModel) MinObservations() int {
	if m.period > 1 {
		return 2 * m.period
	}
	return 5
}

func (m *prophetModel) Fit(values []float64) error {
	m.n = len(values)
	xs := make([]float64, m.n)
	for i := range xs {
		xs[i] = float64(i)
	}
	m.intercept, m.slope = stat.LinearRegression(xs, values, nil, false)

	if m.period > 1 {
		m.seasonal = make([]float64, m.period)
		counts := make([]int, m.period)
		for i, v := range values {
			phase := i % m.period
			m.seasonal[phase] += v - (m.intercept + m.slope*float64(i))
			counts[phase]++
		}
		for phase := range m.seasonal {
			if counts[phase] > 0 {
				m.seasonal[phase] /= float64(counts[phase])
			}
		}
	}

	m.fitted = true
	return nil
}

func (m *prophetModel) Predict(horizon int) ([]float64, error) {
	if !m.fitted {
		return nil, fmt.Errorf("model not fitted")
	}
	preds := make([]float64, horizon)
	for i := range preds {
		step := m.n + i
		preds[i] = m.intercept + m.slope*float64(step)
		if m.period > 1 {
			preds[i] += m.seasonal[step%m.period]
		}
	}
	return preds, nil
}
