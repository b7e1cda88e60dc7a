// Package report writes the news feed file and prints the console summary.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/brightside-dev/goodnews/internal/cli"
	"github.com/brightside-dev/goodnews/internal/model"
)

// WriteFeed serializes the full ordered story sequence to path as an
// indented JSON array. The write is atomic: a temp file in the destination
// directory is renamed over the previous output, so an interrupted run
// never leaves a partial file and the previous feed is overwritten
// wholesale, not merged.
func WriteFeed(path string, stories []model.Story) error {
	if stories == nil {
		stories = []model.Story{}
	}
	data, err := json.MarshalIndent(stories, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode stories: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp output file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op when the rename succeeded.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

// ReadFeed loads a previously written feed. Used by tests and the
// round-trip guarantee: WriteFeed then ReadFeed yields identical records.
func ReadFeed(path string) ([]model.Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var stories []model.Story
	if err := json.Unmarshal(data, &stories); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}
	return stories, nil
}

// PrintSummary renders the human-readable run summary: the top stories,
// totals by type, per-indicator counts, and any skipped indicators.
// Purely informational; the JSON file is the machine-readable contract.
func PrintSummary(w io.Writer, stories []model.Story, skipped []string, topN int) {
	fmt.Fprintln(w, cli.FormatTitle("TOP STORIES "+cli.NewsIcon))

	if len(stories) == 0 {
		fmt.Fprintln(w, cli.StyleSubtle("No good news found this run."))
	}
	for i, s := range stories {
		if i >= topN {
			break
		}
		fmt.Fprintf(w, "%2d. [%d] %s\n", i+1, s.Year, cli.StyleHeadline(s.Headline))
		fmt.Fprintf(w, "    %s\n", cli.StyleSubtle(s.Detail))
	}

	trendCount := 0
	milestoneCount := 0
	byIndicator := make(map[string]int)
	for _, s := range stories {
		switch s.Type {
		case model.StoryTypeTrend:
			trendCount++
		case model.StoryTypeMilestone:
			milestoneCount++
		}
		byIndicator[s.Indicator]++
	}

	content := fmt.Sprintf("Total stories: %d\n", len(stories)) +
		fmt.Sprintf("  %s Trends: %d\n", cli.ChartIcon, trendCount) +
		fmt.Sprintf("  %s Milestones: %d\n", cli.TargetIcon, milestoneCount) +
		"\nBy indicator:\n"
	for _, ic := range sortIndicatorCounts(byIndicator) {
		content += fmt.Sprintf("  %s: %d\n", ic.name, ic.count)
	}
	fmt.Fprintln(w, cli.RenderBox("Summary by Indicator", content))

	for _, skip := range skipped {
		fmt.Fprintln(w, cli.FormatWarning("Skipped "+skip))
	}
}

type indicatorCount struct {
	name  string
	count int
}

func sortIndicatorCounts(m map[string]int) []indicatorCount {
	counts := make([]indicatorCount, 0, len(m))
	for name, count := range m {
		counts = append(counts, indicatorCount{name, count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].name < counts[j].name
	})
	return counts
}
