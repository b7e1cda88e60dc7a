package model

// TrendResult is the outcome of trend analysis for one country/indicator
// pair that passed every qualification gate. Results are produced fresh
// per run and never persisted on their own.
type TrendResult struct {
	Country       string
	Indicator     string
	DisplayName   string
	Unit          string
	Slope         float64
	PValue        float64
	RSquared      float64
	StartYear     int
	EndYear       int
	StartValue    float64
	EndValue      float64
	PercentChange float64
}
