package types

// AnalysisResult is the structured outcome of an AI skill-gap analysis.
type AnalysisResult struct {
	Score              int                    `json:"score"`
	GlobalPercentile   int                    `json:"globalPercentile"`
	Feedback           string                 `json:"feedback"`
	StrategicNarrative string                 `json:"strategicNarrative,omitempty"`
	RadarData          []RadarPoint           `json:"radarData"`
	Gaps               []SkillGap             `json:"gaps"`
	CareerRoadmap      []string               `json:"careerRoadmap"`
	ApprenticeshipPath []ApprenticeshipOption `json:"apprenticeshipPath"`
	InterviewPrep      *InterviewPrep         `json:"interviewPrep,omitempty"`
}

// CompletedGaps counts gaps whose learning suggestion is done.
func (a *AnalysisResult) CompletedGaps() int {
	n := 0
	for _, g := range a.Gaps {
		if g.Suggestion.Completed {
			n++
		}
	}
	return n
}

// RadarPoint is one axis of the competency radar chart.
type RadarPoint struct {
	Subject  string `json:"subject"`
	A        int    `json:"A"`
	FullMark int    `json:"fullMark"`
}

// SkillGap is an identified skill deficiency paired with a recommended
// learning action.
type SkillGap struct {
	Gap             string             `json:"gap"`
	GapDescription  string             `json:"gapDescription"`
	Category        string             `json:"category"`
	CompetencyLevel int                `json:"competencyLevel"`
	Suggestion      LearningSuggestion `json:"suggestion"`
}

// LearningSuggestion is the recommended course bridging a skill gap.
type LearningSuggestion struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Provider    string `json:"provider"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Completed   bool   `json:"completed"`
	URL         string `json:"url"`
}

// ApprenticeshipOption is an alternative earn-while-you-learn route.
type ApprenticeshipOption struct {
	Title     string   `json:"title"`
	Reason    string   `json:"reason"`
	Companies []string `json:"companies"`
}

// InterviewPrep holds interview questions and strategy tips.
type InterviewPrep struct {
	Questions     []string `json:"questions"`
	StrategicTips []string `json:"strategicTips"`
}

// CareerSuggestion is one suggested alternative career path.
type CareerSuggestion struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Reason      string   `json:"reason,omitempty"`
	KeySkills   []string `json:"keySkills,omitempty"`
}

// RankedMatch pairs a candidate with a recruiter match score for a job.
type RankedMatch struct {
	Contact    string `json:"contact"`
	Name       string `json:"name"`
	MatchScore int    `json:"matchScore"`
	Rationale  string `json:"rationale,omitempty"`
}
