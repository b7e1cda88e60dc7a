// Package story converts detection results into ranked news feed records.
package story

import (
	"fmt"
	"math"
	"sort"

	"github.com/brightside-dev/goodnews/internal/model"
)

// FromTrend builds a story record from a qualifying trend, generating the
// headline from direction word and fitted-window values.
func FromTrend(t model.TrendResult) model.Story {
	changeWord := "rose"
	changePct := t.PercentChange
	if t.PercentChange < 0 {
		changeWord = "fell"
		changePct = -t.PercentChange
	}

	headline := fmt.Sprintf("%s's %s %s %.0f%% over %d years",
		t.Country, t.DisplayName, changeWord, changePct, t.EndYear-t.StartYear)
	detail := fmt.Sprintf("From %.1f in %d to %.1f %s in %d",
		t.StartValue, t.StartYear, t.EndValue, t.Unit, t.EndYear)

	return model.Story{
		Type:             model.StoryTypeTrend,
		Country:          t.Country,
		Indicator:        t.Indicator,
		IndicatorDisplay: t.DisplayName,
		Headline:         headline,
		Detail:           detail,
		Unit:             t.Unit,
		Year:             t.EndYear,
		Slope:            ptr(round(t.Slope, 4)),
		RSquared:         ptr(round(t.RSquared, 3)),
		PValue:           ptr(round(t.PValue, 4)),
		StartYear:        ptr(t.StartYear),
		StartValue:       ptr(round(t.StartValue, 2)),
		EndValue:         ptr(round(t.EndValue, 2)),
		PercentChange:    ptr(round(t.PercentChange, 1)),
	}
}

// FromMilestone builds a story record from a milestone crossing. The
// headline comes from the indicator's per-threshold template.
func FromMilestone(m model.Milestone) model.Story {
	detail := fmt.Sprintf("Crossed from %.1f to %.1f %s",
		m.ValueBefore, m.ValueAfter, m.Unit)

	return model.Story{
		Type:             model.StoryTypeMilestone,
		Country:          m.Country,
		Indicator:        m.Indicator,
		IndicatorDisplay: m.DisplayName,
		Headline:         m.Headline,
		Detail:           detail,
		Unit:             m.Unit,
		Year:             m.Year,
		Threshold:        ptr(m.Threshold),
		ValueBefore:      ptr(round(m.ValueBefore, 2)),
		ValueAfter:       ptr(round(m.ValueAfter, 2)),
	}
}

// Assemble ranks one indicator's detections and converts them to stories.
// Trends are ranked by R² descending and truncated to maxTrends;
// milestones by crossing year descending. Tie-breaks are deterministic so
// identical inputs always produce the identical sequence.
func Assemble(trends []model.TrendResult, milestones []model.Milestone, maxTrends int) []model.Story {
	sort.Slice(trends, func(i, j int) bool {
		if trends[i].RSquared != trends[j].RSquared {
			return trends[i].RSquared > trends[j].RSquared
		}
		return trends[i].Country < trends[j].Country
	})
	if maxTrends > 0 && len(trends) > maxTrends {
		trends = trends[:maxTrends]
	}

	sort.Slice(milestones, func(i, j int) bool {
		a, b := milestones[i], milestones[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.Country != b.Country {
			return a.Country < b.Country
		}
		return a.Threshold < b.Threshold
	})

	stories := make([]model.Story, 0, len(trends)+len(milestones))
	for _, t := range trends {
		stories = append(stories, FromTrend(t))
	}
	for _, m := range milestones {
		stories = append(stories, FromMilestone(m))
	}
	return stories
}

// SortFeed orders the full run's stories most-recent-first with
// deterministic tie-breaks on country, type, indicator and threshold.
func SortFeed(stories []model.Story) {
	sort.SliceStable(stories, func(i, j int) bool {
		a, b := stories[i], stories[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.Country != b.Country {
			return a.Country < b.Country
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.Indicator != b.Indicator {
			return a.Indicator < b.Indicator
		}
		at, bt := deref(a.Threshold), deref(b.Threshold)
		return at < bt
	})
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

func ptr[T any](v T) *T { return &v }

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
