package types

// MarketInsights summarizes demand, competition and pay for a career goal in
// a region.
type MarketInsights struct {
	CompetitionLevel       string        `json:"competitionLevel"`
	CompetitionDescription string        `json:"competitionDescription"`
	DemandTrend            string        `json:"demandTrend"`
	DemandTrendDescription string        `json:"demandTrendDescription"`
	TopSkills              []SkillDemand `json:"topSkills"`
	SalaryRange            SalaryRange   `json:"salaryRange"`
	JobListings            []JobListing  `json:"jobListings"`
}

// SkillDemand is one in-demand skill with a 0-100 demand index.
type SkillDemand struct {
	Name   string `json:"name"`
	Demand int    `json:"demand"`
}

// SalaryRange holds formatted salary figures for the region's currency.
type SalaryRange struct {
	Min string `json:"min"`
	Max string `json:"max"`
	Avg string `json:"avg"`
}

// JobListing is a live vacancy surfaced alongside market insights.
type JobListing struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	SalaryRange string `json:"salaryRange"`
	Platform    string `json:"platform"`
	URL         string `json:"url"`
}
