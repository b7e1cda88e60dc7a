package analysis

import (
	"github.com/brightside-dev/goodnews/internal/config"
	"github.com/brightside-dev/goodnews/internal/model"
)

// DetectMilestones scans one country series chronologically and reports,
// for each configured threshold, the first adjacent pair of observations
// where the earlier value sits on the not-yet-crossed side and the later
// value on the crossed side of the threshold, per the indicator's
// favorable direction. The crossing is recorded at the later year.
//
// Rules:
//   - Only the first crossing per threshold is reported; re-crossings
//     from measurement noise are ignored.
//   - A threshold already satisfied at the series' very first observation
//     is never reported: with no preceding data point on the other side,
//     "for the first time" cannot be asserted.
//   - A crossing counts as news only when it falls within the recency
//     window measured from latestYear, the maximum year in the whole
//     dataset for this indicator. Anchoring to the data's own horizon
//     keeps results stable regardless of when the tool runs.
func DetectMilestones(series model.Series, ind config.Indicator, settings config.Settings, latestYear int) []model.Milestone {
	if series.Len() < 2 {
		return nil
	}

	var results []model.Milestone
	country := series.First().Country

	for _, ms := range ind.Milestones {
		for i := 1; i < series.Len(); i++ {
			prev := series[i-1]
			curr := series[i]

			var crossed bool
			if ind.GoodDirection == config.DirectionDown {
				crossed = prev.Value >= ms.Value && curr.Value < ms.Value
			} else {
				crossed = prev.Value <= ms.Value && curr.Value > ms.Value
			}
			if !crossed {
				continue
			}

			if latestYear-curr.Year <= settings.MilestoneRecencyYears {
				results = append(results, model.Milestone{
					Country:     country,
					Indicator:   ind.Name,
					DisplayName: ind.DisplayName,
					Unit:        ind.Unit,
					Headline:    ind.HeadlineFor(country, ms.Value),
					Threshold:   ms.Value,
					Year:        curr.Year,
					ValueBefore: prev.Value,
					ValueAfter:  curr.Value,
				})
			}
			break // first crossing only, recent or not
		}
	}

	return results
}
