// Package analysis implements trend and milestone detection on country series.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/brightside-dev/goodnews/internal/config"
	"github.com/brightside-dev/goodnews/internal/model"
)

// DetectTrend fits an ordinary least-squares regression of value on year
// across the full available series and reports whether the country shows a
// statistically significant, sufficiently strong trend in the indicator's
// favorable direction.
//
// The fit is whole-history rather than windowed. That means a country with
// decades of slow improvement and a recent plateau can still qualify; the
// trade-off is accepted to keep results comparable across countries with
// very different data coverage.
//
// Returns (nil, false) when the series is too short, the fit is degenerate
// (zero variance), or any qualification gate fails. Abstaining is a
// classification outcome, never an error.
func DetectTrend(series model.Series, ind config.Indicator, settings config.Settings) (*model.TrendResult, bool) {
	n := series.Len()
	if n < settings.MinYearsForTrend {
		return nil, false
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, o := range series {
		xs[i] = float64(o.Year)
		ys[i] = o.Value
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	rSquared := stat.RSquared(xs, ys, nil, alpha, beta)
	pValue := slopePValue(xs, ys, alpha, beta)

	// An all-identical series has zero variance: R² and the p-value come
	// out NaN. Non-qualifying, not a failure.
	if math.IsNaN(beta) || math.IsNaN(rSquared) || math.IsNaN(pValue) {
		return nil, false
	}

	improving := beta > 0
	if ind.GoodDirection == config.DirectionDown {
		improving = beta < 0
	}

	if pValue > settings.PValueThreshold {
		return nil, false
	}
	if rSquared < settings.MinRSquared {
		return nil, false
	}
	if !improving {
		return nil, false
	}

	first := series.First()
	last := series.Last()
	percentChange := 0.0
	if first.Value != 0 {
		percentChange = (last.Value - first.Value) / math.Abs(first.Value) * 100
	}

	return &model.TrendResult{
		Country:       first.Country,
		Indicator:     ind.Name,
		DisplayName:   ind.DisplayName,
		Unit:          ind.Unit,
		Slope:         beta,
		PValue:        pValue,
		RSquared:      rSquared,
		StartYear:     first.Year,
		EndYear:       last.Year,
		StartValue:    first.Value,
		EndValue:      last.Value,
		PercentChange: percentChange,
	}, true
}

// slopePValue computes the two-sided p-value of the slope coefficient
// under the null hypothesis slope = 0, via a Student's t test with n-2
// degrees of freedom.
func slopePValue(xs, ys []float64, alpha, beta float64) float64 {
	n := len(xs)
	if n < 3 {
		return math.NaN()
	}

	meanX := stat.Mean(xs, nil)
	var sse, sxx float64
	for i := range xs {
		resid := ys[i] - (alpha + beta*xs[i])
		sse += resid * resid
		dx := xs[i] - meanX
		sxx += dx * dx
	}
	if sxx == 0 {
		return math.NaN()
	}

	se := math.Sqrt(sse / float64(n-2) / sxx)
	if se == 0 {
		// Perfect fit: a nonzero slope is as significant as it gets; a
		// zero slope carries no evidence against the null.
		if beta != 0 {
			return 0
		}
		return 1
	}

	t := beta / se
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	return 2 * dist.Survival(math.Abs(t))
}
