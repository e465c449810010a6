// Package ai is the boundary to the external generative-AI collaborator.
// Implementations return typed results or fail; the fallback policy for
// failed calls lives with the caller, not here.
package ai

import (
	"context"

	"github.com/jonathan/career-coach/internal/types"
)

// Coach is the career-intelligence collaborator consumed by the session
// controller and the recruiter portal.
type Coach interface {
	// Analyze performs a skill-gap analysis of the uploaded content.
	Analyze(ctx context.Context, content, mimeType, careerGoal string, profile *types.Candidate) (*types.AnalysisResult, error)
	// GenerateCV produces a tailored CV from the content and a prior analysis.
	GenerateCV(ctx context.Context, content, mimeType, careerGoal string, profile *types.Candidate, analysis *types.AnalysisResult) (*types.CVDocument, error)
	// MarketInsights summarizes the market for a career goal in a region.
	MarketInsights(ctx context.Context, careerGoal, region string) (*types.MarketInsights, error)
	// SuggestCareers proposes alternative career paths for a profile.
	SuggestCareers(ctx context.Context, content, mimeType, region string) ([]types.CareerSuggestion, error)
	// RankCandidates orders candidates by fit against a job description.
	RankCandidates(ctx context.Context, jobDescription string, candidates []types.Candidate, region string) ([]types.RankedMatch, error)
	// UCASStatement drafts a university application statement.
	UCASStatement(ctx context.Context, candidate types.Candidate) (*types.UCASStatement, error)
	// Close releases any resources held by the collaborator.
	Close() error
}
