package model

import (
	"errors"
	"fmt"
)

// Story types.
const (
	StoryTypeTrend     = "trend"
	StoryTypeMilestone = "milestone"
)

// Story is the exported unit of the news feed. Stories are immutable once
// assembled; the full set for a run is written out in one atomic pass.
//
// Trend stories carry Slope/RSquared/PValue plus the fitted window;
// milestone stories carry Threshold/ValueBefore/ValueAfter. Pointer fields
// keep the JSON schema tight: a field absent from a story type is omitted
// rather than serialized as zero.
type Story struct {
	Type             string   `json:"type"`
	Country          string   `json:"country"`
	Indicator        string   `json:"indicator"`
	IndicatorDisplay string   `json:"indicator_display"`
	Headline         string   `json:"headline"`
	Detail           string   `json:"detail"`
	Unit             string   `json:"unit"`
	Year             int      `json:"year"`
	Slope            *float64 `json:"slope,omitempty"`
	RSquared         *float64 `json:"r_squared,omitempty"`
	PValue           *float64 `json:"p_value,omitempty"`
	StartYear        *int     `json:"start_year,omitempty"`
	StartValue       *float64 `json:"start_value,omitempty"`
	EndValue         *float64 `json:"end_value,omitempty"`
	PercentChange    *float64 `json:"percent_change,omitempty"`
	Threshold        *float64 `json:"threshold,omitempty"`
	ValueBefore      *float64 `json:"value_before,omitempty"`
	ValueAfter       *float64 `json:"value_after,omitempty"`
}

// Validate checks structural consistency of a story.
func (s *Story) Validate() error {
	if s.Country == "" {
		return errors.New("story country is required")
	}
	if s.Indicator == "" {
		return errors.New("story indicator is required")
	}
	if s.Headline == "" {
		return errors.New("story headline is required")
	}
	switch s.Type {
	case StoryTypeTrend:
		if s.Slope == nil || s.RSquared == nil || s.PValue == nil {
			return errors.New("trend story requires slope, r_squared and p_value")
		}
		if s.Threshold != nil || s.ValueBefore != nil || s.ValueAfter != nil {
			return errors.New("trend story must not carry milestone fields")
		}
	case StoryTypeMilestone:
		if s.Threshold == nil || s.ValueBefore == nil || s.ValueAfter == nil {
			return errors.New("milestone story requires threshold, value_before and value_after")
		}
		if s.Slope != nil || s.RSquared != nil || s.PValue != nil {
			return errors.New("milestone story must not carry trend fields")
		}
	default:
		return fmt.Errorf("unknown story type: %q", s.Type)
	}
	return nil
}
