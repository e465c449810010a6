package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/career-coach/internal/entitlement"
	"github.com/jonathan/career-coach/internal/types"
)

const (
	systemAnalyst   = "You are an elite career intelligence engine. Return valid JSON only."
	systemCVWriter  = "You are a Senior CV Architect. Return valid JSON only."
	systemUCAS      = "Return a JSON object with statementBody and structureGuidance."
	systemInsights  = "Provide salary ranges, competition levels, and demand trends in JSON."
	systemSuggester = "Return a JSON array of suggested career objects."
	systemRanker    = "You are a Talent Acquisition Strategist. Return an array of matches with matchScore in JSON."
)

// GeminiConfig selects the models used for candidate-facing and
// recruiter-facing calls.
type GeminiConfig struct {
	FlashModel string // cheaper model for candidate calls
	ProModel   string // stronger model for recruiter cohort calls
}

// DefaultGeminiConfig returns the default model selection.
func DefaultGeminiConfig() GeminiConfig {
	return GeminiConfig{
		FlashModel: "gemini-1.5-flash",
		ProModel:   "gemini-1.5-pro",
	}
}

// GeminiCoach implements Coach on the Google Gemini API.
type GeminiCoach struct {
	client *genai.Client
	config GeminiConfig
}

// NewGeminiCoach creates a Gemini-backed coach.
func NewGeminiCoach(ctx context.Context, apiKey string, config GeminiConfig) (*GeminiCoach, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config.FlashModel == "" {
		config = DefaultGeminiConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiCoach{client: client, config: config}, nil
}

// Close releases the underlying client.
func (c *GeminiCoach) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// generateJSON runs one JSON-mode generation and unmarshals into out.
func (c *GeminiCoach) generateJSON(ctx context.Context, modelName, system string, out any, parts ...genai.Part) error {
	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractText(resp)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(cleanJSONBlock(text)), out); err != nil {
		return fmt.Errorf("unparsable model response: %w", err)
	}
	return nil
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty model response")
	}
	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text += string(t)
		}
	}
	if text == "" {
		return "", fmt.Errorf("no text in model response")
	}
	return text, nil
}

// contentParts builds the request parts for uploaded content: inline data
// for binary uploads, plain text otherwise.
func contentParts(content, mimeType string) genai.Part {
	if mimeType != "" {
		return genai.Blob{MIMEType: mimeType, Data: []byte(content)}
	}
	return genai.Text(content)
}

func tierContext(tier entitlement.Tier) string {
	switch tier {
	case entitlement.TierPro:
		return "Plan: Pro. Focus on comprehensive skill mapping."
	case entitlement.TierElite:
		return "Plan: Elite. Focus on executive leadership."
	default:
		return "Plan: Starter. Focus on core growth."
	}
}

// Analyze implements Coach.
func (c *GeminiCoach) Analyze(ctx context.Context, content, mimeType, careerGoal string, profile *types.Candidate) (*types.AnalysisResult, error) {
	tier := entitlement.TierStarter
	region := entitlement.DefaultRegion
	if profile != nil {
		if profile.SelectedTier != "" {
			tier = profile.SelectedTier
		}
		if profile.Region != "" {
			region = profile.Region
		}
	}

	prompt := fmt.Sprintf("Perform a career gap analysis for the following user aiming for: %s in %s. %s",
		careerGoal, region, tierContext(tier))

	var result types.AnalysisResult
	err := c.generateJSON(ctx, c.config.FlashModel, systemAnalyst, &result,
		contentParts(content, mimeType), genai.Text(prompt))
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GenerateCV implements Coach.
func (c *GeminiCoach) GenerateCV(ctx context.Context, content, mimeType, careerGoal string, _ *types.Candidate, analysis *types.AnalysisResult) (*types.CVDocument, error) {
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize analysis context: %w", err)
	}

	var cv types.CVDocument
	err = c.generateJSON(ctx, c.config.FlashModel, systemCVWriter, &cv,
		genai.Text(fmt.Sprintf("Generate a tailored CV for a %s position based on this background and analysis.", careerGoal)),
		contentParts(content, mimeType),
		genai.Text(fmt.Sprintf("Context: %s", analysisJSON)))
	if err != nil {
		return nil, err
	}
	return &cv, nil
}

// MarketInsights implements Coach.
func (c *GeminiCoach) MarketInsights(ctx context.Context, careerGoal, region string) (*types.MarketInsights, error) {
	var insights types.MarketInsights
	err := c.generateJSON(ctx, c.config.FlashModel, systemInsights, &insights,
		genai.Text(fmt.Sprintf("Market insights for %s in %s.", careerGoal, region)))
	if err != nil {
		return nil, err
	}
	return &insights, nil
}

// SuggestCareers implements Coach.
func (c *GeminiCoach) SuggestCareers(ctx context.Context, content, mimeType, region string) ([]types.CareerSuggestion, error) {
	var suggestions []types.CareerSuggestion
	err := c.generateJSON(ctx, c.config.FlashModel, systemSuggester, &suggestions,
		genai.Text(fmt.Sprintf("Suggest 3 career paths based on this profile for the %s region.", region)),
		contentParts(content, mimeType))
	if err != nil {
		return nil, err
	}
	return suggestions, nil
}

// RankCandidates implements Coach. The model sometimes wraps the array in a
// {"matches": ...} object, so both shapes are accepted.
func (c *GeminiCoach) RankCandidates(ctx context.Context, jobDescription string, candidates []types.Candidate, region string) ([]types.RankedMatch, error) {
	cohort := make([]map[string]any, 0, len(candidates))
	for _, cand := range candidates {
		cohort = append(cohort, map[string]any{
			"contact":           cand.Contact,
			"name":              cand.Name,
			"careerAspirations": cand.CareerAspirations,
			"qualification":     cand.Qualification,
			"candidateCategory": cand.CandidateCategory,
			"currentStage":      cand.CurrentStage,
			"totalCpdHours":     cand.TotalCPDHours,
		})
	}
	cohortJSON, err := json.Marshal(cohort)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize cohort: %w", err)
	}

	var raw json.RawMessage
	err = c.generateJSON(ctx, c.config.ProModel, systemRanker, &raw,
		genai.Text(fmt.Sprintf("Rank these candidates for this job in the %s region: %s. Candidates: %s",
			region, jobDescription, cohortJSON)))
	if err != nil {
		return nil, err
	}

	var wrapped struct {
		Matches []types.RankedMatch `json:"matches"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Matches != nil {
		return wrapped.Matches, nil
	}
	var matches []types.RankedMatch
	if err := json.Unmarshal(raw, &matches); err != nil {
		return nil, fmt.Errorf("unparsable ranking response: %w", err)
	}
	return matches, nil
}

// UCASStatement implements Coach.
func (c *GeminiCoach) UCASStatement(ctx context.Context, candidate types.Candidate) (*types.UCASStatement, error) {
	var statement types.UCASStatement
	err := c.generateJSON(ctx, c.config.FlashModel, systemUCAS, &statement,
		genai.Text(fmt.Sprintf("Generate a UCAS personal statement for %s interested in %s.",
			candidate.Name, candidate.CareerAspirations)))
	if err != nil {
		return nil, err
	}
	return &statement, nil
}
