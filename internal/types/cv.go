package types

// CVDocument is a tailored CV produced by the AI collaborator (or the local
// fallback when the collaborator fails).
type CVDocument struct {
	PersonalInfo        PersonalInfo      `json:"personalInfo"`
	ProfessionalSummary string            `json:"professionalSummary"`
	Experience          []ExperienceEntry `json:"experience"`
	Education           []EducationEntry  `json:"education"`
	Skills              []string          `json:"skills"`
	TemplateID          string            `json:"templateId,omitempty"`
}

// PersonalInfo is the CV header block.
type PersonalInfo struct {
	Name     string `json:"name"`
	Contact  string `json:"contact"`
	Location string `json:"location"`
}

// ExperienceEntry is one role on the CV.
type ExperienceEntry struct {
	Role         string   `json:"role"`
	Company      string   `json:"company"`
	Duration     string   `json:"duration"`
	Achievements []string `json:"achievements"`
}

// EducationEntry is one qualification on the CV.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}
