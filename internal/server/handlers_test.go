package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/history"
	"github.com/jonathan/career-coach/internal/session"
	"github.com/jonathan/career-coach/internal/store"
	"github.com/jonathan/career-coach/internal/types"
)

// stubCoach serves canned AI results for handler tests.
type stubCoach struct {
	analysis *types.AnalysisResult
	insights *types.MarketInsights
	cv       *types.CVDocument
	rankErr  error
}

func (s *stubCoach) Analyze(ctx context.Context, content, mimeType, careerGoal string, profile *types.Candidate) (*types.AnalysisResult, error) {
	if s.analysis == nil {
		return nil, fmt.Errorf("no canned analysis")
	}
	return s.analysis, nil
}

func (s *stubCoach) GenerateCV(ctx context.Context, content, mimeType, careerGoal string, profile *types.Candidate, analysis *types.AnalysisResult) (*types.CVDocument, error) {
	if s.cv == nil {
		return nil, fmt.Errorf("no canned cv")
	}
	return s.cv, nil
}

func (s *stubCoach) MarketInsights(ctx context.Context, careerGoal, region string) (*types.MarketInsights, error) {
	if s.insights == nil {
		return nil, fmt.Errorf("no canned insights")
	}
	return s.insights, nil
}

func (s *stubCoach) SuggestCareers(ctx context.Context, content, mimeType, region string) ([]types.CareerSuggestion, error) {
	return nil, nil
}

func (s *stubCoach) RankCandidates(ctx context.Context, jobDescription string, candidates []types.Candidate, region string) ([]types.RankedMatch, error) {
	if s.rankErr != nil {
		return nil, s.rankErr
	}
	matches := make([]types.RankedMatch, 0, len(candidates))
	for i, c := range candidates {
		matches = append(matches, types.RankedMatch{Contact: c.Contact, Name: c.Name, MatchScore: 90 - i})
	}
	return matches, nil
}

func (s *stubCoach) UCASStatement(ctx context.Context, candidate types.Candidate) (*types.UCASStatement, error) {
	return &types.UCASStatement{StatementBody: "statement"}, nil
}

func (s *stubCoach) Close() error { return nil }

func newTestServer(t *testing.T, coach *stubCoach) *Server {
	t.Helper()
	st := store.New(store.NewMemoryMedium(), nil)
	hist := history.New(st, nil, 0)
	passwords := &config.PasswordConfig{BcryptCost: 10}
	ctrl := session.New(st, coach, hist, passwords, nil)
	jwtService := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})

	return New(Config{
		Port:       "0",
		Controller: ctrl,
		Store:      st,
		History:    hist,
		JWTService: jwtService,
	})
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func registerViaHTTP(t *testing.T, handler http.Handler) (string, types.Candidate) {
	t.Helper()
	rec := doJSON(t, handler, http.MethodPost, "/auth/register", "", types.RegisterRequest{
		Name:              "Jordan Reyes",
		Contact:           "jordan@example.com",
		Password:          "hunter22",
		CareerAspirations: "Product Manager",
		Region:            "UK",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.Candidate
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubCoach{})
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestRegisterLoginAndProfile(t *testing.T) {
	srv := newTestServer(t, &stubCoach{})
	handler := srv.Handler()

	token, candidate := registerViaHTTP(t, handler)
	assert.Empty(t, candidate.PasswordHash)

	// Duplicate registration conflicts.
	rec := doJSON(t, handler, http.MethodPost, "/auth/register", "", types.RegisterRequest{
		Name: "Dup", Contact: "jordan@example.com", Password: "xxxx", CareerAspirations: "PM",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Profile requires the bearer token.
	rec = doJSON(t, handler, http.MethodGet, "/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile types.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "jordan@example.com", profile.Contact)

	// Wrong password is unauthorized.
	rec = doJSON(t, handler, http.MethodPost, "/auth/login", "", types.LoginRequest{
		Contact: "jordan@example.com", Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/auth/login", "", types.LoginRequest{
		Contact: "jordan@example.com", Password: "hunter22",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAnalyzeAndHistoryFlow(t *testing.T) {
	coach := &stubCoach{
		analysis: &types.AnalysisResult{Score: 70, Gaps: []types.SkillGap{
			{Gap: "Cloud", Suggestion: types.LearningSuggestion{ID: "course-1"}},
		}},
		insights: &types.MarketInsights{CompetitionLevel: "Medium"},
	}
	srv := newTestServer(t, coach)
	handler := srv.Handler()
	token, _ := registerViaHTTP(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/analyze", token, types.AnalyzeRequest{
		Content: "cv text", CareerGoal: "Product Manager",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Candidate types.Candidate      `json:"candidate"`
		Analysis  types.AnalysisResult `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 70, resp.Analysis.Score)
	assert.Equal(t, "LEARNING", resp.Candidate.CurrentStage.String())

	// The analysis shows up in history.
	rec = doJSON(t, handler, http.MethodGet, "/history", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []types.HistoryItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)

	// Completing the only course closes the gap and advances the stage.
	rec = doJSON(t, handler, http.MethodPost, "/courses/course-1/complete", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var after types.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	assert.Equal(t, 100, after.LastAnalysis.Score)
	assert.Equal(t, "CV_UPDATE", after.CurrentStage.String())

	// History item deletion.
	rec = doJSON(t, handler, http.MethodDelete, "/history/"+items[0].ID, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGenerateCVQuota(t *testing.T) {
	coach := &stubCoach{cv: &types.CVDocument{ProfessionalSummary: "summary"}}
	srv := newTestServer(t, coach)
	handler := srv.Handler()
	token, _ := registerViaHTTP(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/generate-cv", token, types.GenerateCVRequest{
		Content: "cv text", CareerGoal: "PM",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		AttemptsRemaining int `json:"attemptsRemaining"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.AttemptsRemaining)

	// Starter quota is one attempt.
	rec = doJSON(t, handler, http.MethodPost, "/generate-cv", token, types.GenerateCVRequest{
		Content: "cv text", CareerGoal: "PM",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRecruiterFlow(t *testing.T) {
	srv := newTestServer(t, &stubCoach{})
	handler := srv.Handler()
	registerViaHTTP(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/clients", "", types.AddClientRequest{
		Name: "Acme Ltd", Industry: "Tech", Region: "UK",
		ActiveMandates: []types.Mandate{{ID: "m1", Title: "PM opening"}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var client types.Client
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &client))
	require.NotEmpty(t, client.ID)

	rec = doJSON(t, handler, http.MethodGet, "/vacancies", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var vacancies []types.Mandate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vacancies))
	assert.Len(t, vacancies, 1)

	rec = doJSON(t, handler, http.MethodPost, "/rank", "", types.RankRequest{JobDescription: "PM role"})
	require.Equal(t, http.StatusOK, rec.Code)
	var matches []types.RankedMatch
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "jordan@example.com", matches[0].Contact)

	rec = doJSON(t, handler, http.MethodPost, "/place", "", types.PlaceRequest{
		CandidateContact: "jordan@example.com", ClientID: client.ID, Fee: 5000,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Placing an unknown candidate is a 404 and writes nothing.
	rec = doJSON(t, handler, http.MethodPost, "/place", "", types.PlaceRequest{
		CandidateContact: "nobody@example.com", ClientID: client.ID, Fee: 100,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRankDegradesToEmptyOnError(t *testing.T) {
	srv := newTestServer(t, &stubCoach{rankErr: fmt.Errorf("model unavailable")})
	handler := srv.Handler()
	registerViaHTTP(t, handler)

	rec := doJSON(t, handler, http.MethodPost, "/rank", "", types.RankRequest{JobDescription: "PM role"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestPricingEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubCoach{})

	rec := doJSON(t, srv.Handler(), http.MethodGet, "/pricing?region=UK", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Region string `json:"region"`
		Symbol string `json:"symbol"`
		Tiers  map[string]struct {
			Price     int `json:"price"`
			Templates int `json:"templates"`
		} `json:"tiers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "£", resp.Symbol)
	assert.Equal(t, 39, resp.Tiers["Starter"].Price)
	assert.Equal(t, 5, resp.Tiers["Elite"].Templates)

	// Unknown regions fall back to the global table.
	rec = doJSON(t, srv.Handler(), http.MethodGet, "/pricing?region=Atlantis", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "$", resp.Symbol)
}

func TestSessionEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubCoach{})
	handler := srv.Handler()

	rec := doJSON(t, handler, http.MethodGet, "/session", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)

	registerViaHTTP(t, handler)
	rec = doJSON(t, handler, http.MethodGet, "/session", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":true`)

	rec = doJSON(t, handler, http.MethodPost, "/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, handler, http.MethodGet, "/session", "", nil)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)
}
