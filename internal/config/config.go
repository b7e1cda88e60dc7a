// Package config holds run settings and the indicator catalog.
//
// Everything here is loaded once at startup and treated as immutable for
// the rest of the run: detection code receives Settings explicitly rather
// than reading ambient globals.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/brightside-dev/goodnews/internal/common"
)

// Favorable directions for an indicator.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// MilestoneDef is one newsworthy threshold for an indicator. Headline is a
// template with a {country} placeholder; when empty, a generic headline is
// generated from the threshold and unit.
type MilestoneDef struct {
	Headline string  `mapstructure:"headline"`
	Value    float64 `mapstructure:"value"`
}

// Indicator describes one tracked development metric. Indicator behavior
// (direction, thresholds, templates) is data, not code: adding an
// indicator means adding a record, never a branch.
type Indicator struct {
	Name          string         `mapstructure:"name"`
	DisplayName   string         `mapstructure:"display_name"`
	URL           string         `mapstructure:"url"`
	ValueColumn   string         `mapstructure:"value_column"`
	GoodDirection string         `mapstructure:"good_direction"`
	Unit          string         `mapstructure:"unit"`
	Milestones    []MilestoneDef `mapstructure:"milestones"`
}

// Validate checks an indicator definition.
func (i Indicator) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("%w: indicator name is required", common.ErrInvalidConfig)
	}
	if i.URL == "" {
		return fmt.Errorf("%w: indicator %q has no source URL", common.ErrInvalidConfig, i.Name)
	}
	if i.ValueColumn == "" {
		return fmt.Errorf("%w: indicator %q has no value column", common.ErrInvalidConfig, i.Name)
	}
	if i.GoodDirection != DirectionUp && i.GoodDirection != DirectionDown {
		return fmt.Errorf("%w: indicator %q direction must be %q or %q, got %q",
			common.ErrInvalidConfig, i.Name, DirectionUp, DirectionDown, i.GoodDirection)
	}
	return nil
}

// HeadlineFor returns the milestone headline for a country and threshold,
// falling back to a generic sentence when no template is configured.
func (i Indicator) HeadlineFor(country string, threshold float64) string {
	for _, m := range i.Milestones {
		if m.Value == threshold && m.Headline != "" {
			return strings.ReplaceAll(m.Headline, "{country}", country)
		}
	}
	return fmt.Sprintf("%s crossed %g %s milestone", country, threshold, i.Unit)
}

// Settings is the immutable configuration for one run.
type Settings struct {
	DataDir               string
	OutputFile            string
	Indicators            []Indicator
	MinYearsForTrend      int
	PValueThreshold       float64
	MinRSquared           float64
	MilestoneRecencyYears int
	MaxTrendsPerIndicator int
	TopStories            int
}

// Validate checks the settings and every indicator definition.
func (s Settings) Validate() error {
	if s.MinYearsForTrend < 3 {
		return fmt.Errorf("%w: min_years_for_trend must be at least 3", common.ErrInvalidConfig)
	}
	if s.PValueThreshold <= 0 || s.PValueThreshold >= 1 {
		return fmt.Errorf("%w: p_value_threshold must be in (0, 1)", common.ErrInvalidConfig)
	}
	if s.MinRSquared < 0 || s.MinRSquared > 1 {
		return fmt.Errorf("%w: min_r_squared must be in [0, 1]", common.ErrInvalidConfig)
	}
	if s.MilestoneRecencyYears < 0 {
		return fmt.Errorf("%w: milestone_recency_years must not be negative", common.ErrInvalidConfig)
	}
	if len(s.Indicators) == 0 {
		return fmt.Errorf("%w: at least one indicator is required", common.ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(s.Indicators))
	for _, ind := range s.Indicators {
		if err := ind.Validate(); err != nil {
			return err
		}
		if seen[ind.Name] {
			return fmt.Errorf("%w: duplicate indicator name %q", common.ErrInvalidConfig, ind.Name)
		}
		seen[ind.Name] = true
	}
	return nil
}

// Default returns settings that make the tool runnable with no config file.
func Default() Settings {
	return Settings{
		DataDir:               "data",
		OutputFile:            "good_news.json",
		MinYearsForTrend:      10,
		PValueThreshold:       0.05,
		MinRSquared:           0.5,
		MilestoneRecencyYears: 10,
		MaxTrendsPerIndicator: 20,
		TopStories:            10,
		Indicators:            DefaultIndicators(),
	}
}

// Load builds Settings from viper, starting from defaults. A config file
// may override any scalar and replace the indicator set wholesale.
func Load() (Settings, error) {
	s := Default()

	if viper.IsSet("data_dir") {
		s.DataDir = viper.GetString("data_dir")
	}
	if viper.IsSet("output_file") {
		s.OutputFile = viper.GetString("output_file")
	}
	if viper.IsSet("analysis.min_years_for_trend") {
		s.MinYearsForTrend = viper.GetInt("analysis.min_years_for_trend")
	}
	if viper.IsSet("analysis.p_value_threshold") {
		s.PValueThreshold = viper.GetFloat64("analysis.p_value_threshold")
	}
	if viper.IsSet("analysis.min_r_squared") {
		s.MinRSquared = viper.GetFloat64("analysis.min_r_squared")
	}
	if viper.IsSet("analysis.milestone_recency_years") {
		s.MilestoneRecencyYears = viper.GetInt("analysis.milestone_recency_years")
	}
	if viper.IsSet("analysis.max_trends_per_indicator") {
		s.MaxTrendsPerIndicator = viper.GetInt("analysis.max_trends_per_indicator")
	}
	if viper.IsSet("report.top_stories") {
		s.TopStories = viper.GetInt("report.top_stories")
	}
	if viper.IsSet("indicators") {
		var inds []Indicator
		if err := viper.UnmarshalKey("indicators", &inds); err != nil {
			return Settings{}, fmt.Errorf("failed to parse indicators: %w", err)
		}
		s.Indicators = inds
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
