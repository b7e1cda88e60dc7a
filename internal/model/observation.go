// Package model defines the core data types shared across the application.
package model

import (
	"fmt"
	"sort"
)

// Observation is a single data point: one country, one year, one value.
type Observation struct {
	Country string
	Year    int
	Value   float64
}

// Series is an ordered-by-year sequence of observations for one country
// under one indicator. Years are strictly increasing; values are always
// present. Gaps between years are allowed and preserved.
type Series []Observation

// NewSeries builds a Series from observations in arbitrary order.
// Observations are sorted ascending by year; when the same year appears
// more than once, the last occurrence wins.
func NewSeries(obs []Observation) Series {
	byYear := make(map[int]Observation, len(obs))
	for _, o := range obs {
		byYear[o.Year] = o
	}
	s := make(Series, 0, len(byYear))
	for _, o := range byYear {
		s = append(s, o)
	}
	sort.Slice(s, func(i, j int) bool { return s[i].Year < s[j].Year })
	return s
}

// Validate checks the strictly-increasing-year invariant.
func (s Series) Validate() error {
	for i := 1; i < len(s); i++ {
		if s[i].Year <= s[i-1].Year {
			return fmt.Errorf("series years must be strictly increasing, got %d after %d", s[i].Year, s[i-1].Year)
		}
	}
	return nil
}

// First returns the earliest observation. Callers must check Len first.
func (s Series) First() Observation { return s[0] }

// Last returns the most recent observation. Callers must check Len first.
func (s Series) Last() Observation { return s[len(s)-1] }

// Len returns the number of observations.
func (s Series) Len() int { return len(s) }
