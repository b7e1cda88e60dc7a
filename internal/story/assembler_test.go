package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightside-dev/goodnews/internal/model"
)

func sampleTrend(country string, rSquared float64, endYear int) model.TrendResult {
	return model.TrendResult{
		Country:       country,
		Indicator:     "child_mortality",
		DisplayName:   "child mortality rate",
		Unit:          "deaths per 100 live births",
		Slope:         -0.42,
		PValue:        0.001,
		RSquared:      rSquared,
		StartYear:     endYear - 20,
		EndYear:       endYear,
		StartValue:    12.5,
		EndValue:      6.1,
		PercentChange: -51.2,
	}
}

func sampleMilestone(country string, threshold float64, year int) model.Milestone {
	return model.Milestone{
		Country:     country,
		Indicator:   "child_mortality",
		DisplayName: "child mortality rate",
		Unit:        "deaths per 100 live births",
		Headline:    country + " crossed a milestone",
		Threshold:   threshold,
		Year:        year,
		ValueBefore: threshold + 0.2,
		ValueAfter:  threshold - 0.3,
	}
}

func TestFromTrend_HeadlineAndFields(t *testing.T) {
	s := FromTrend(sampleTrend("Ghana", 0.91, 2020))

	require.NoError(t, s.Validate())
	assert.Equal(t, model.StoryTypeTrend, s.Type)
	assert.Equal(t, "Ghana's child mortality rate fell 51% over 20 years", s.Headline)
	assert.Equal(t, "From 12.5 in 2000 to 6.1 deaths per 100 live births in 2020", s.Detail)
	assert.Equal(t, 2020, s.Year)
	require.NotNil(t, s.RSquared)
	assert.InDelta(t, 0.91, *s.RSquared, 1e-9)
	assert.Nil(t, s.Threshold)
}

func TestFromTrend_RisingHeadline(t *testing.T) {
	trend := model.TrendResult{
		Country:       "Vietnam",
		Indicator:     "literacy",
		DisplayName:   "literacy rate",
		Unit:          "% of adults",
		Slope:         1.2,
		PValue:        0.004,
		RSquared:      0.8,
		StartYear:     2005,
		EndYear:       2020,
		StartValue:    70,
		EndValue:      94.5,
		PercentChange: 35,
	}

	s := FromTrend(trend)
	assert.Equal(t, "Vietnam's literacy rate rose 35% over 15 years", s.Headline)
}

func TestFromMilestone_Fields(t *testing.T) {
	s := FromMilestone(sampleMilestone("Ghana", 5, 2018))

	require.NoError(t, s.Validate())
	assert.Equal(t, model.StoryTypeMilestone, s.Type)
	assert.Equal(t, "Crossed from 5.2 to 4.7 deaths per 100 live births", s.Detail)
	assert.Equal(t, 2018, s.Year)
	require.NotNil(t, s.Threshold)
	assert.InDelta(t, 5.0, *s.Threshold, 1e-9)
	assert.Nil(t, s.Slope)
}

func TestAssemble_RanksTrendsByRSquared(t *testing.T) {
	trends := []model.TrendResult{
		sampleTrend("Ghana", 0.6, 2020),
		sampleTrend("Vietnam", 0.95, 2020),
		sampleTrend("Bolivia", 0.8, 2020),
	}

	stories := Assemble(trends, nil, 0)
	require.Len(t, stories, 3)
	assert.Equal(t, "Vietnam", stories[0].Country)
	assert.Equal(t, "Bolivia", stories[1].Country)
	assert.Equal(t, "Ghana", stories[2].Country)
}

func TestAssemble_TruncatesToMaxTrends(t *testing.T) {
	trends := []model.TrendResult{
		sampleTrend("Ghana", 0.6, 2020),
		sampleTrend("Vietnam", 0.95, 2020),
		sampleTrend("Bolivia", 0.8, 2020),
	}

	stories := Assemble(trends, nil, 2)
	require.Len(t, stories, 2)
	assert.Equal(t, "Vietnam", stories[0].Country)
	assert.Equal(t, "Bolivia", stories[1].Country)
}

func TestAssemble_RanksMilestonesByRecency(t *testing.T) {
	milestones := []model.Milestone{
		sampleMilestone("Ghana", 5, 2012),
		sampleMilestone("Vietnam", 5, 2019),
		sampleMilestone("Bolivia", 5, 2016),
	}

	stories := Assemble(nil, milestones, 0)
	require.Len(t, stories, 3)
	assert.Equal(t, []int{2019, 2016, 2012},
		[]int{stories[0].Year, stories[1].Year, stories[2].Year})
}

func TestSortFeed_MostRecentFirstWithStableTies(t *testing.T) {
	stories := []model.Story{
		FromMilestone(sampleMilestone("Bolivia", 5, 2015)),
		FromTrend(sampleTrend("Ghana", 0.9, 2020)),
		FromMilestone(sampleMilestone("Angola", 10, 2020)),
		FromMilestone(sampleMilestone("Angola", 5, 2020)),
	}

	SortFeed(stories)

	assert.Equal(t, 2020, stories[0].Year)
	// Same year: country breaks the tie.
	assert.Equal(t, "Angola", stories[0].Country)
	assert.Equal(t, "Angola", stories[1].Country)
	// Same year+country+type+indicator: threshold ascending.
	assert.InDelta(t, 5.0, *stories[0].Threshold, 1e-9)
	assert.InDelta(t, 10.0, *stories[1].Threshold, 1e-9)
	assert.Equal(t, "Ghana", stories[2].Country)
	assert.Equal(t, 2015, stories[3].Year)
}

func TestAssemble_Idempotent(t *testing.T) {
	trends := []model.TrendResult{
		sampleTrend("Ghana", 0.6, 2020),
		sampleTrend("Vietnam", 0.95, 2018),
	}
	milestones := []model.Milestone{
		sampleMilestone("Bolivia", 5, 2016),
		sampleMilestone("Angola", 10, 2019),
	}

	first := Assemble(append([]model.TrendResult(nil), trends...),
		append([]model.Milestone(nil), milestones...), 10)
	second := Assemble(append([]model.TrendResult(nil), trends...),
		append([]model.Milestone(nil), milestones...), 10)

	SortFeed(first)
	SortFeed(second)
	assert.Equal(t, first, second)
}
