package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightside-dev/goodnews/internal/model"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func sampleStories() []model.Story {
	return []model.Story{
		{
			Type:             model.StoryTypeTrend,
			Country:          "Ghana",
			Indicator:        "child_mortality",
			IndicatorDisplay: "child mortality rate",
			Headline:         "Ghana's child mortality rate fell 51% over 20 years",
			Detail:           "From 12.5 in 2000 to 6.1 deaths per 100 live births in 2020",
			Unit:             "deaths per 100 live births",
			Year:             2020,
			Slope:            fptr(-0.42),
			RSquared:         fptr(0.91),
			PValue:           fptr(0.001),
			StartYear:        iptr(2000),
			StartValue:       fptr(12.5),
			EndValue:         fptr(6.1),
			PercentChange:    fptr(-51.2),
		},
		{
			Type:             model.StoryTypeMilestone,
			Country:          "Vietnam",
			Indicator:        "electricity_access",
			IndicatorDisplay: "electricity access",
			Headline:         "Vietnam achieved universal electricity access",
			Detail:           "Crossed from 98.7 to 99.2 % of population",
			Unit:             "% of population",
			Year:             2019,
			Threshold:        fptr(99),
			ValueBefore:      fptr(98.7),
			ValueAfter:       fptr(99.2),
		},
	}
}

func TestWriteFeed_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "good_news.json")
	stories := sampleStories()

	require.NoError(t, WriteFeed(path, stories))

	got, err := ReadFeed(path)
	require.NoError(t, err)
	assert.Equal(t, stories, got)
}

func TestWriteFeed_OverwritesWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "good_news.json")

	require.NoError(t, WriteFeed(path, sampleStories()))
	require.NoError(t, WriteFeed(path, sampleStories()[:1]))

	got, err := ReadFeed(path)
	require.NoError(t, err)
	// The second run's single story replaces the feed; nothing is merged.
	require.Len(t, got, 1)
	assert.Equal(t, "Ghana", got[0].Country)
}

func TestWriteFeed_EmptyFeedIsAnEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "good_news.json")

	require.NoError(t, WriteFeed(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestWriteFeed_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteFeed(filepath.Join(dir, "good_news.json"), sampleStories()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "good_news.json", entries[0].Name())
}

func TestWriteFeed_CreatesOutputDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "good_news.json")
	require.NoError(t, WriteFeed(path, sampleStories()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, sampleStories(), []string{"literacy: data source unreachable"}, 10)

	out := buf.String()
	assert.Contains(t, out, "TOP STORIES")
	assert.Contains(t, out, "Ghana's child mortality rate fell 51% over 20 years")
	assert.Contains(t, out, "Total stories: 2")
	assert.Contains(t, out, "Trends: 1")
	assert.Contains(t, out, "Milestones: 1")
	assert.Contains(t, out, "child_mortality: 1")
	assert.Contains(t, out, "Skipped literacy: data source unreachable")
}

func TestPrintSummary_TruncatesToTopN(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, sampleStories(), nil, 1)

	out := buf.String()
	assert.Contains(t, out, "Ghana's child mortality rate")
	assert.NotContains(t, out, "Vietnam achieved universal electricity access")
}

func TestPrintSummary_EmptyFeed(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, nil, nil, 10)

	assert.Contains(t, buf.String(), "No good news found this run.")
}
