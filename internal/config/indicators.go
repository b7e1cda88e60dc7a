package config

// DefaultIndicators is the built-in catalog of tracked metrics, all
// sourced from Our World in Data grapher CSV exports.
//
// To track a new metric: find the chart on ourworldindata.org, append
// ".csv" to the grapher URL, check the value column name in the download,
// and add a record here or in the config file.
func DefaultIndicators() []Indicator {
	return []Indicator{
		{
			Name:          "child_mortality",
			DisplayName:   "child mortality rate",
			URL:           "https://ourworldindata.org/grapher/child-mortality.csv",
			ValueColumn:   "Child mortality rate",
			GoodDirection: DirectionDown,
			Unit:          "deaths per 100 live births",
			Milestones: []MilestoneDef{
				{Value: 10, Headline: "{country}'s child mortality fell below 100 per 1,000 for the first time"},
				{Value: 5, Headline: "{country}'s child mortality fell below 50 per 1,000 for the first time"},
				{Value: 2.5, Headline: "{country}'s child mortality fell below 25 per 1,000 for the first time"},
				{Value: 1, Headline: "{country} achieved under 10 per 1,000 child mortality for the first time"},
			},
		},
		{
			Name:          "life_expectancy",
			DisplayName:   "life expectancy",
			URL:           "https://ourworldindata.org/grapher/life-expectancy.csv",
			ValueColumn:   "Period life expectancy at birth",
			GoodDirection: DirectionUp,
			Unit:          "years",
			Milestones: []MilestoneDef{
				{Value: 60, Headline: "{country}'s life expectancy rose above 60 years for the first time"},
				{Value: 70, Headline: "{country}'s life expectancy rose above 70 years for the first time"},
				{Value: 75, Headline: "{country}'s life expectancy rose above 75 years for the first time"},
				{Value: 80, Headline: "{country}'s life expectancy rose above 80 years for the first time"},
			},
		},
		{
			Name:          "extreme_poverty",
			DisplayName:   "extreme poverty rate",
			URL:           "https://ourworldindata.org/grapher/share-of-population-in-extreme-poverty.csv",
			ValueColumn:   "Share of population in poverty ($3 a day, 2021 prices)",
			GoodDirection: DirectionDown,
			Unit:          "% of population",
			Milestones: []MilestoneDef{
				{Value: 50, Headline: "{country} reduced extreme poverty below 50% for the first time"},
				{Value: 25, Headline: "{country} reduced extreme poverty below 25% for the first time"},
				{Value: 10, Headline: "{country} reduced extreme poverty to single digits for the first time"},
				{Value: 5, Headline: "{country} nearly eliminated extreme poverty (below 5%)"},
			},
		},
		{
			Name:          "literacy",
			DisplayName:   "literacy rate",
			URL:           "https://ourworldindata.org/grapher/cross-country-literacy-rates.csv",
			ValueColumn:   "Literacy rate",
			GoodDirection: DirectionUp,
			Unit:          "% of adults",
			Milestones: []MilestoneDef{
				{Value: 50, Headline: "Majority of {country}'s adults can now read and write"},
				{Value: 75, Headline: "{country}'s literacy rate rose above 75% for the first time"},
				{Value: 90, Headline: "{country} achieved near-universal literacy (above 90%)"},
				{Value: 95, Headline: "{country} achieved 95%+ literacy rate"},
			},
		},
		{
			Name:          "electricity_access",
			DisplayName:   "electricity access",
			URL:           "https://ourworldindata.org/grapher/share-of-the-population-with-access-to-electricity.csv",
			ValueColumn:   "Access to electricity (% of population)",
			GoodDirection: DirectionUp,
			Unit:          "% of population",
			Milestones: []MilestoneDef{
				{Value: 50, Headline: "Majority of {country}'s population now has electricity"},
				{Value: 75, Headline: "{country}'s electricity access rose above 75% for the first time"},
				{Value: 90, Headline: "{country} achieved near-universal electricity access (above 90%)"},
				{Value: 99, Headline: "{country} achieved universal electricity access"},
			},
		},
	}
}
