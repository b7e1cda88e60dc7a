package model

// Milestone records the first historical year a country's indicator value
// crossed a threshold in the favorable direction. At most one exists per
// (country, indicator, threshold).
type Milestone struct {
	Country     string
	Indicator   string
	DisplayName string
	Unit        string
	Headline    string
	Threshold   float64
	Year        int
	ValueBefore float64
	ValueAfter  float64
}
