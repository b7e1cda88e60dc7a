package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightside-dev/goodnews/internal/config"
	"github.com/brightside-dev/goodnews/internal/model"
)

func testSettings() config.Settings {
	return config.Settings{
		MinYearsForTrend:      10,
		PValueThreshold:       0.05,
		MinRSquared:           0.5,
		MilestoneRecencyYears: 10,
	}
}

func downIndicator() config.Indicator {
	return config.Indicator{
		Name:          "child_mortality",
		DisplayName:   "child mortality rate",
		GoodDirection: config.DirectionDown,
		Unit:          "deaths per 100 live births",
	}
}

func upIndicator() config.Indicator {
	return config.Indicator{
		Name:          "literacy",
		DisplayName:   "literacy rate",
		GoodDirection: config.DirectionUp,
		Unit:          "% of adults",
	}
}

// linearSeries builds a series value = start + slope*(year-firstYear).
func linearSeries(country string, firstYear, n int, start, slope float64) model.Series {
	obs := make([]model.Observation, n)
	for i := 0; i < n; i++ {
		obs[i] = model.Observation{
			Country: country,
			Year:    firstYear + i,
			Value:   start + slope*float64(i),
		}
	}
	return model.NewSeries(obs)
}

func TestDetectTrend_QualifiesWhenDirectionMatches(t *testing.T) {
	series := linearSeries("Ghana", 2000, 15, 100, -3)

	trend, ok := DetectTrend(series, downIndicator(), testSettings())
	require.True(t, ok)
	require.NotNil(t, trend)

	assert.Equal(t, "Ghana", trend.Country)
	assert.Equal(t, "child_mortality", trend.Indicator)
	assert.InDelta(t, -3.0, trend.Slope, 1e-6)
	assert.InDelta(t, 1.0, trend.RSquared, 1e-6)
	assert.LessOrEqual(t, trend.PValue, 0.05)
	assert.Equal(t, 2000, trend.StartYear)
	assert.Equal(t, 2014, trend.EndYear)
	assert.InDelta(t, 100.0, trend.StartValue, 1e-9)
	assert.InDelta(t, 58.0, trend.EndValue, 1e-9)
	assert.InDelta(t, -42.0, trend.PercentChange, 1e-6)
}

func TestDetectTrend_RejectsWrongDirection(t *testing.T) {
	// Falling values are bad news for an up-is-good indicator.
	series := linearSeries("Ghana", 2000, 15, 100, -3)

	_, ok := DetectTrend(series, upIndicator(), testSettings())
	assert.False(t, ok)
}

func TestDetectTrend_QualifiesRisingForUpIndicator(t *testing.T) {
	series := linearSeries("Vietnam", 1995, 20, 55, 1.5)

	trend, ok := DetectTrend(series, upIndicator(), testSettings())
	require.True(t, ok)
	assert.Positive(t, trend.Slope)
	assert.Positive(t, trend.PercentChange)
}

func TestDetectTrend_AbstainsOnShortSeries(t *testing.T) {
	// One observation short of the minimum, steep slope notwithstanding.
	series := linearSeries("Ghana", 2010, 9, 100, -5)

	_, ok := DetectTrend(series, downIndicator(), testSettings())
	assert.False(t, ok)
}

func TestDetectTrend_FlatSeriesFailsDirectionTest(t *testing.T) {
	series := linearSeries("Ghana", 2000, 21, 30, 0)

	_, ok := DetectTrend(series, downIndicator(), testSettings())
	assert.False(t, ok)

	_, ok = DetectTrend(series, upIndicator(), testSettings())
	assert.False(t, ok)
}

func TestDetectTrend_NoisySeriesFailsStrengthGates(t *testing.T) {
	values := []float64{10, 90, 20, 80, 30, 70, 40, 60, 50, 55, 45, 65}
	obs := make([]model.Observation, len(values))
	for i, v := range values {
		obs[i] = model.Observation{Country: "Ghana", Year: 2000 + i, Value: v}
	}

	_, ok := DetectTrend(model.NewSeries(obs), upIndicator(), testSettings())
	assert.False(t, ok)
}

func TestDetectTrend_NegativeStartValuePercentChange(t *testing.T) {
	// Percent change normalizes by |start| so the sign reflects the move.
	series := linearSeries("Ghana", 2000, 12, -10, 2)

	trend, ok := DetectTrend(series, upIndicator(), testSettings())
	require.True(t, ok)
	assert.InDelta(t, 220.0, trend.PercentChange, 1e-6)
}

func TestDetectTrend_ZeroStartValuePercentChange(t *testing.T) {
	series := linearSeries("Ghana", 2000, 12, 0, 2)

	trend, ok := DetectTrend(series, upIndicator(), testSettings())
	require.True(t, ok)
	assert.Zero(t, trend.PercentChange)
}
