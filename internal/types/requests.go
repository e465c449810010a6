package types

import (
	"github.com/go-playground/validator/v10"

	"github.com/jonathan/career-coach/internal/entitlement"
)

// RegisterRequest carries the onboarding form fields used to create a
// candidate account.
type RegisterRequest struct {
	Name              string           `json:"name" validate:"required,min=1"`
	Contact           string           `json:"contact" validate:"required,email"`
	Password          string           `json:"password" validate:"required,min=4"`
	Location          string           `json:"location,omitempty"`
	Qualification     string           `json:"qualification,omitempty"`
	CareerAspirations string           `json:"careerAspirations" validate:"required"`
	CandidateCategory Category         `json:"candidateCategory,omitempty"`
	SelectedTier      entitlement.Tier `json:"selectedTier,omitempty"`
	Region            string           `json:"region,omitempty"`
}

// LoginRequest carries returning-user credentials.
type LoginRequest struct {
	Contact  string `json:"contact" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AnalyzeRequest asks for a skill-gap analysis of uploaded CV content.
type AnalyzeRequest struct {
	Content    string `json:"content" validate:"required"`
	MimeType   string `json:"mimeType,omitempty"`
	CareerGoal string `json:"careerGoal" validate:"required"`
}

// GenerateCVRequest asks for a tailored CV based on a prior analysis.
type GenerateCVRequest struct {
	Content    string `json:"content" validate:"required"`
	MimeType   string `json:"mimeType,omitempty"`
	CareerGoal string `json:"careerGoal" validate:"required"`
}

// AddClientRequest creates a recruiter-side employer record.
type AddClientRequest struct {
	Name           string    `json:"name" validate:"required"`
	Industry       string    `json:"industry" validate:"required"`
	Region         string    `json:"region" validate:"required"`
	ActiveMandates []Mandate `json:"activeMandates,omitempty"`
}

// RankRequest asks the matching engine to rank candidates for a job.
type RankRequest struct {
	JobDescription string `json:"jobDescription" validate:"required"`
	Region         string `json:"region,omitempty"`
}

// PlaceRequest records a placement of a candidate with a client.
type PlaceRequest struct {
	CandidateContact string `json:"candidateContact" validate:"required,email"`
	ClientID         string `json:"clientId" validate:"required"`
	Fee              int    `json:"fee" validate:"gte=0"`
}

// Validate validates the RegisterRequest using the validator.
func (r *RegisterRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the GenerateCVRequest using the validator.
func (r *GenerateCVRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the AddClientRequest using the validator.
func (r *AddClientRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the RankRequest using the validator.
func (r *RankRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the PlaceRequest using the validator.
func (r *PlaceRequest) Validate() error {
	return validator.New().Struct(r)
}
