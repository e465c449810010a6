// Package types provides type definitions for structured data used throughout the career-coach system.
package types

import (
	"time"

	"github.com/jonathan/career-coach/internal/entitlement"
	"github.com/jonathan/career-coach/internal/journey"
)

// Category classifies where a candidate sits in their career arc.
type Category string

const (
	CategoryAspiring     Category = "ASPIRING"
	CategoryProfessional Category = "PROFESSIONAL"
	CategoryExecutive    Category = "EXECUTIVE"
	CategoryJobReady     Category = "JOB_READY"
)

// Candidate is a member of the talent pool. The unique key across the
// candidate collection is Contact (an email-shaped string).
type Candidate struct {
	ID                string            `json:"id,omitempty"`
	Name              string            `json:"name"`
	Contact           string            `json:"contact"`
	PasswordHash      string            `json:"passwordHash,omitempty"`
	Location          string            `json:"location,omitempty"`
	Qualification     string            `json:"qualification,omitempty"`
	CareerAspirations string            `json:"careerAspirations"`
	CandidateCategory Category          `json:"candidateCategory,omitempty"`
	SelectedTier      entitlement.Tier  `json:"selectedTier,omitempty"`
	Region            string            `json:"region,omitempty"`
	CVAttemptsUsed    int               `json:"cvAttemptsUsed"`
	LastPaymentDate   int64             `json:"lastPaymentDate"`
	CurrentStage      journey.Stage     `json:"currentStage"`
	TotalCPDHours     int               `json:"totalCpdHours"`
	LastAnalysis      *AnalysisResult   `json:"lastAnalysis,omitempty"`
	UCASStatement     *UCASStatement    `json:"ucasStatement,omitempty"`
	PlacedWithClientID string           `json:"placedWithClientId,omitempty"`
	PlacementDate     int64             `json:"placementDate,omitempty"`
	CreatedAt         int64             `json:"createdAt"`
	UpdatedAt         int64             `json:"updatedAt"`

	// Optional onboarding context carried into AI prompts.
	Strengths       string `json:"strengths,omitempty"`
	Weaknesses      string `json:"weaknesses,omitempty"`
	WorkHistoryText string `json:"workHistoryText,omitempty"`
	TargetIndustry  string `json:"targetIndustry,omitempty"`
	EducationLevel  string `json:"educationLevel,omitempty"`
}

// Normalize applies the documented defaults for every optional field.
// It is pure apart from reading the supplied clock.
func (c Candidate) Normalize(now time.Time) Candidate {
	if c.Location == "" {
		c.Location = "Remote"
	}
	if c.Qualification == "" {
		c.Qualification = "N/A"
	}
	if c.CandidateCategory == "" {
		c.CandidateCategory = CategoryAspiring
	}
	if c.SelectedTier == "" {
		c.SelectedTier = entitlement.TierStarter
	}
	if c.Region == "" {
		c.Region = "UK"
	}
	if c.CVAttemptsUsed < 0 {
		c.CVAttemptsUsed = 0
	}
	if !c.CurrentStage.Valid() {
		c.CurrentStage = journey.StageProfile
	}
	if c.CreatedAt == 0 {
		c.CreatedAt = now.UnixMilli()
	}
	if c.UpdatedAt == 0 {
		c.UpdatedAt = now.UnixMilli()
	}
	return c
}

// UCASStatement is a generated university application statement.
type UCASStatement struct {
	StatementBody     string `json:"statementBody"`
	StructureGuidance string `json:"structureGuidance,omitempty"`
}
