package types

// HistoryType distinguishes the kinds of history entries.
type HistoryType string

const (
	HistoryAnalysis     HistoryType = "ANALYSIS"
	HistoryGeneratedCV  HistoryType = "GENERATED_CV"
	HistoryUCASGuidance HistoryType = "UCAS_GUIDANCE"
)

// HistoryItem is one past analysis or CV-generation event. Items are
// immutable once created; the only mutation is user-initiated deletion.
// Exactly one of the payload groups is set depending on Type:
// ANALYSIS carries AnalysisResult + MarketInsights, GENERATED_CV carries
// GeneratedCV.
type HistoryItem struct {
	ID             string          `json:"id"`
	Timestamp      int64           `json:"timestamp"`
	CareerGoal     string          `json:"careerGoal"`
	Type           HistoryType     `json:"type"`
	AnalysisResult *AnalysisResult `json:"analysisResult,omitempty"`
	MarketInsights *MarketInsights `json:"marketInsights,omitempty"`
	GeneratedCV    *CVDocument     `json:"generatedCV,omitempty"`
}
