package forecast

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/eshaanmathakari/SimuLad/internal/models"
)

// arimaModel is an ARIMA(p,d,q) fit restricted to the (1,1,1) order the
// dashboard uses: first-difference the series, then estimate the ARMA(1,1)
// coefficients with the Hannan-Rissanen two-stage regression.
type arimaModel struct {
	p, d, q int

	c     float64 // drift
	phi   float64 // AR(1) coefficient
	theta float64 // MA(1) coefficient

	lastLevel float64
	lastDiff  float64
	lastResid float64
	fitted    bool
}

func newARIMA(p, d, q int) *arimaModel {
	return &arimaModel{p: p, d: d, q: q}
}

func (m *arimaModel) Kind() models.ModelKind { return models.ModelARIMA }

// MinObservations matches the dashboard's minimum-rows guard.
func (m *arimaModel) MinObservations() int { return 5 }

func (m *arimaModel) Fit(values []float64) error {
	diffs := difference(values)
	n := len(diffs)
	if n < 3 {
		return fmt.Errorf("not enough observations after differencing")
	}

	// Stage one: a short AR regression whose residuals stand in for the
	// unobserved shocks.
	order := n / 3
	if order < 1 {
		order = 1
	}
	if order > 5 {
		order = 5
	}
	resids := arResiduals(diffs, order)

	// Stage two: regress each difference on its predecessor and the
	// previous residual.
	rows := n - order - 1
	if rows >= 3 && resids != nil {
		X := mat.NewDense(rows, 3, nil)
		y := mat.NewVecDense(rows, nil)
		for i := 0; i < rows; i++ {
			t := order + 1 + i
			X.Set(i, 0, 1)
			X.Set(i, 1, diffs[t-1])
			X.Set(i, 2, resids[t-1])
			y.SetVec(i, diffs[t])
		}
		if beta, err := olsSolve(X, y); err == nil {
			m.c, m.phi, m.theta = beta[0], beta[1], beta[2]
		} else {
			m.fallback(diffs)
		}
	} else {
		m.fallback(diffs)
	}

	// Keep the AR part inside the stationary region so long-horizon
	// forecasts stay bounded.
	m.phi = clamp(m.phi, -0.98, 0.98)
	m.theta = clamp(m.theta, -0.98, 0.98)

	m.lastLevel = values[len(values)-1]
	m.lastDiff = diffs[n-1]
	if resids != nil {
		m.lastResid = resids[n-1]
	}
	m.fitted = true
	return nil
}

func (m *arimaModel) Predict(horizon int) ([]float64, error) {
	if !m.fitted {
		return nil, fmt.Errorf("model not fitted")
	}
	preds := make([]float64, horizon)
	level := m.lastLevel
	diff := m.lastDiff
	resid := m.lastResid
	for i := range preds {
		diff = m.c + m.phi*diff + m.theta*resid
		resid = 0 // future shocks are zero in expectation
		level += diff
		preds[i] = level
	}
	return preds, nil
}

// fallback degrades to a random walk with drift when the regression is
// underdetermined or singular (for example a perfectly linear series).
func (m *arimaModel) fallback(diffs []float64) {
	m.c = stat.Mean(diffs, nil)
	m.phi = 0
	m.theta = 0
}

// arResiduals fits AR(order) over the differenced series and returns the
// residual sequence, nil when the regression cannot be solved.
func arResiduals(diffs []float64, order int) []float64 {
	n := len(diffs)
	rows := n - order
	if rows <= order+1 {
		return nil
	}
	X := mat.NewDense(rows, order+1, nil)
	y := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		t := order + i
		X.Set(i, 0, 1)
		for lag := 1; lag <= order; lag++ {
			X.Set(i, lag, diffs[t-lag])
		}
		y.SetVec(i, diffs[t])
	}
	beta, err := olsSolve(X, y)
	if err != nil {
		return nil
	}

	resids := make([]float64, n)
	for t := order; t < n; t++ {
		fitted := beta[0]
		for lag := 1; lag <= order; lag++ {
			fitted += beta[lag] * diffs[t-lag]
		}
		resids[t] = diffs[t] - fitted
	}
	return resids
}

func olsSolve(X *mat.Dense, y *mat.VecDense) ([]float64, error) {
	var qr mat.QR
	qr.Factorize(X)
	var solution mat.Dense
	if err := qr.SolveTo(&solution, false, y); err != nil {
		return nil, err
	}
	_, cols := X.Dims()
	beta := make([]float64, cols)
	for i := range beta {
		beta[i] = solution.At(i, 0)
	}
	return beta, nil
}

func difference(values []float64) []float64 {
	diffs := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		diffs[i-1] = values[i] - values[i-1]
	}
	return diffs
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
