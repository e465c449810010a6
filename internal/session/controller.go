// Package session orchestrates the candidate journey: authentication, AI
// analysis and CV generation, course progress, tier changes, and placements.
// Every mutation persists the candidate record and, when that candidate is
// the active session, the session pointer, so the two never drift.
package session

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-coach/internal/ai"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/entitlement"
	"github.com/jonathan/career-coach/internal/history"
	"github.com/jonathan/career-coach/internal/journey"
	"github.com/jonathan/career-coach/internal/store"
	"github.com/jonathan/career-coach/internal/types"
)

// Controller is the session and profile engine.
type Controller struct {
	store     *store.Store
	coach     ai.Coach
	history   *history.Log
	passwords *config.PasswordConfig
	log       *zap.Logger
	now       func() time.Time

	// epoch increments on every login, logout, and registration. AI driver
	// methods capture it before the call and discard results that come back
	// under a different epoch.
	epoch atomic.Uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides the controller's clock for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New wires the controller over its collaborators.
func New(s *store.Store, coach ai.Coach, hist *history.Log, passwords *config.PasswordConfig, log *zap.Logger, opts ...Option) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{
		store:     s,
		coach:     coach,
		history:   hist,
		passwords: passwords,
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RestoreSession loads the persisted active-session snapshot. A missing or
// unparsable snapshot means no session; it never errors.
func (c *Controller) RestoreSession(ctx context.Context) (types.Candidate, bool) {
	return c.store.ActiveSession(ctx)
}

// Register creates a candidate account from the onboarding form, hashes the
// password, persists the record, and makes it the active session.
func (c *Controller) Register(ctx context.Context, req types.RegisterRequest) (types.Candidate, error) {
	if err := req.Validate(); err != nil {
		return types.Candidate{}, fmt.Errorf("%w: registration: %v", ErrInvalidRequest, err)
	}
	if _, exists := c.store.FindCandidate(ctx, req.Contact); exists {
		return types.Candidate{}, ErrAccountExists
	}

	hash, err := c.passwords.HashPassword(req.Password)
	if err != nil {
		return types.Candidate{}, fmt.Errorf("failed to hash password: %w", err)
	}

	candidate := types.Candidate{
		Name:              req.Name,
		Contact:           req.Contact,
		PasswordHash:      hash,
		Location:          req.Location,
		Qualification:     req.Qualification,
		CareerAspirations: req.CareerAspirations,
		CandidateCategory: req.CandidateCategory,
		SelectedTier:      req.SelectedTier,
		Region:            req.Region,
		LastPaymentDate:   c.now().UnixMilli(),
	}

	saved, err := c.store.UpsertCandidate(ctx, candidate)
	if err != nil {
		return types.Candidate{}, err
	}
	if err := c.store.SaveActiveSession(ctx, saved); err != nil {
		return types.Candidate{}, err
	}
	c.epoch.Add(1)

	c.log.Info("candidate registered", zap.String("contact", saved.Contact), zap.String("tier", string(saved.SelectedTier)))
	return saved, nil
}

// Login authenticates a returning candidate and makes them the active
// session. Unknown contacts and wrong passwords fail identically.
func (c *Controller) Login(ctx context.Context, req types.LoginRequest) (types.Candidate, error) {
	if err := req.Validate(); err != nil {
		return types.Candidate{}, fmt.Errorf("%w: login: %v", ErrInvalidRequest, err)
	}

	candidate, found := c.store.FindCandidate(ctx, req.Contact)
	if !found || !c.passwords.VerifyPassword(req.Password, candidate.PasswordHash) {
		return types.Candidate{}, ErrInvalidCredentials
	}

	if err := c.store.SaveActiveSession(ctx, candidate); err != nil {
		return types.Candidate{}, err
	}
	c.epoch.Add(1)

	c.log.Info("candidate logged in", zap.String("contact", candidate.Contact))
	return candidate, nil
}

// Logout clears the active session.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.store.ClearActiveSession(ctx); err != nil {
		return err
	}
	c.epoch.Add(1)
	return nil
}

// persist saves the candidate and, when they are the active session, the
// session pointer too.
func (c *Controller) persist(ctx context.Context, candidate types.Candidate) (types.Candidate, error) {
	saved, err := c.store.UpsertCandidate(ctx, candidate)
	if err != nil {
		return types.Candidate{}, err
	}
	if active, ok := c.store.ActiveSession(ctx); ok && active.Contact == saved.Contact {
		if err := c.store.SaveActiveSession(ctx, saved); err != nil {
			return types.Candidate{}, err
		}
	}
	return saved, nil
}

// CompleteAnalysis records an analysis outcome: the result lands on the
// candidate profile, the journey advances to at least LEARNING, and an
// ANALYSIS item joins the history.
func (c *Controller) CompleteAnalysis(ctx context.Context, contact string, analysis *types.AnalysisResult, insights *types.MarketInsights, careerGoal string) (types.Candidate, error) {
	candidate, found := c.store.FindCandidate(ctx, contact)
	if !found {
		return types.Candidate{}, ErrNotFound
	}

	candidate.LastAnalysis = analysis
	candidate.CurrentStage = journey.Advance(candidate.CurrentStage, journey.StageLearning)

	saved, err := c.persist(ctx, candidate)
	if err != nil {
		return types.Candidate{}, err
	}

	item := types.HistoryItem{
		ID:             fmt.Sprintf("hist_%d", c.now().UnixMilli()),
		Timestamp:      c.now().UnixMilli(),
		CareerGoal:     careerGoal,
		Type:           types.HistoryAnalysis,
		AnalysisResult: analysis,
		MarketInsights: insights,
	}
	if err := c.history.Append(ctx, item); err != nil {
		return types.Candidate{}, err
	}
	return saved, nil
}

// CompleteCVGeneration records a generated CV: one quota attempt is spent,
// the journey advances to at least JOB_READY, and a GENERATED_CV item joins
// the history.
func (c *Controller) CompleteCVGeneration(ctx context.Context, contact string, cv *types.CVDocument, careerGoal string) (types.Candidate, error) {
	candidate, found := c.store.FindCandidate(ctx, contact)
	if !found {
		return types.Candidate{}, ErrNotFound
	}

	candidate.CVAttemptsUsed++
	candidate.CurrentStage = journey.Advance(candidate.CurrentStage, journey.StageJobReady)

	saved, err := c.persist(ctx, candidate)
	if err != nil {
		return types.Candidate{}, err
	}

	item := types.HistoryItem{
		ID:          fmt.Sprintf("hist_%d", c.now().UnixMilli()),
		Timestamp:   c.now().UnixMilli(),
		CareerGoal:  careerGoal,
		Type:        types.HistoryGeneratedCV,
		GeneratedCV: cv,
	}
	if err := c.history.Append(ctx, item); err != nil {
		return types.Candidate{}, err
	}
	return saved, nil
}

// CompleteCourse marks the learning suggestion with the given course id as
// done and rescores the analysis: the score closes a share of the remaining
// distance to 100 proportional to the fraction of gaps completed. Every
// completion adds 2 CPD hours; closing the final gap advances the journey to
// CV_UPDATE. An unknown course id changes nothing.
func (c *Controller) CompleteCourse(ctx context.Context, contact, courseID string) (types.Candidate, error) {
	candidate, found := c.store.FindCandidate(ctx, contact)
	if !found {
		return types.Candidate{}, ErrNotFound
	}
	if candidate.LastAnalysis == nil || len(candidate.LastAnalysis.Gaps) == 0 {
		return types.Candidate{}, ErrNoAnalysis
	}

	analysis := *candidate.LastAnalysis
	gaps := make([]types.SkillGap, len(analysis.Gaps))
	copy(gaps, analysis.Gaps)

	marked := false
	for i := range gaps {
		if gaps[i].Suggestion.ID == courseID && !gaps[i].Suggestion.Completed {
			gaps[i].Suggestion.Completed = true
			marked = true
			break
		}
	}
	if !marked {
		return candidate, nil
	}
	analysis.Gaps = gaps

	completed := analysis.CompletedGaps()
	total := len(gaps)
	old := float64(analysis.Score)
	analysis.Score = int(math.Round(math.Min(100, old+float64(completed)/float64(total)*(100-old))))

	candidate.LastAnalysis = &analysis
	candidate.TotalCPDHours += 2
	if completed == total {
		candidate.CurrentStage = journey.Advance(candidate.CurrentStage, journey.StageCVUpdate)
	}

	return c.persist(ctx, candidate)
}

// ChangeTier moves the candidate onto a new tier, resets the CV attempt
// counter, and stamps the payment date.
func (c *Controller) ChangeTier(ctx context.Context, contact string, tier entitlement.Tier) (types.Candidate, error) {
	if !tier.Valid() {
		return types.Candidate{}, fmt.Errorf("unknown tier %q", tier)
	}
	candidate, found := c.store.FindCandidate(ctx, contact)
	if !found {
		return types.Candidate{}, ErrNotFound
	}

	candidate.SelectedTier = tier
	candidate.CVAttemptsUsed = 0
	candidate.LastPaymentDate = c.now().UnixMilli()

	return c.persist(ctx, candidate)
}

// RenewTier re-stamps the payment date on the current tier and resets the
// CV attempt counter.
func (c *Controller) RenewTier(ctx context.Context, contact string) (types.Candidate, error) {
	candidate, found := c.store.FindCandidate(ctx, contact)
	if !found {
		return types.Candidate{}, ErrNotFound
	}

	candidate.CVAttemptsUsed = 0
	candidate.LastPaymentDate = c.now().UnixMilli()

	return c.persist(ctx, candidate)
}

// PlaceCandidate records a placement. ok is false, and nothing is written,
// when either the candidate or the client is missing.
func (c *Controller) PlaceCandidate(ctx context.Context, req types.PlaceRequest) (types.Candidate, types.Client, bool, error) {
	if err := req.Validate(); err != nil {
		return types.Candidate{}, types.Client{}, false, fmt.Errorf("%w: placement: %v", ErrInvalidRequest, err)
	}
	candidate, client, ok, err := c.store.PlaceCandidate(ctx, req.CandidateContact, req.ClientID, req.Fee)
	if err != nil || !ok {
		return types.Candidate{}, types.Client{}, false, err
	}
	if active, sessionOK := c.store.ActiveSession(ctx); sessionOK && active.Contact == candidate.Contact {
		if err := c.store.SaveActiveSession(ctx, candidate); err != nil {
			return types.Candidate{}, types.Client{}, false, err
		}
	}
	c.log.Info("candidate placed",
		zap.String("contact", candidate.Contact),
		zap.String("client", client.ID),
		zap.Int("fee", req.Fee))
	return candidate, client, true, nil
}

// AddClient creates an employer record with a generated id.
func (c *Controller) AddClient(ctx context.Context, req types.AddClientRequest) (types.Client, error) {
	if err := req.Validate(); err != nil {
		return types.Client{}, fmt.Errorf("%w: client: %v", ErrInvalidRequest, err)
	}
	client := types.Client{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Industry:       req.Industry,
		Region:         req.Region,
		ActiveMandates: req.ActiveMandates,
	}
	return c.store.UpsertClient(ctx, client)
}

// Analyze drives a full analysis round: the skill-gap analysis and the
// market insights are fetched concurrently, then recorded via
// CompleteAnalysis. An analysis failure surfaces; an insights failure falls
// back to the local deterministic insights. A result arriving after the
// session switched is discarded.
func (c *Controller) Analyze(ctx context.Context, contact string, req types.AnalyzeRequest) (types.Candidate, *types.AnalysisResult, *types.MarketInsights, error) {
	if err := req.Validate(); err != nil {
		return types.Candidate{}, nil, nil, fmt.Errorf("%w: analyze: %v", ErrInvalidRequest, err)
	}
	candidate, found := c.store.FindCandidate(ctx, contact)
	if !found {
		return types.Candidate{}, nil, nil, ErrNotFound
	}
	epoch := c.epoch.Load()

	var (
		analysis *types.AnalysisResult
		insights *types.MarketInsights
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := c.coach.Analyze(gctx, req.Content, req.MimeType, req.CareerGoal, &candidate)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		analysis = result
		return nil
	})
	g.Go(func() error {
		result, err := c.coach.MarketInsights(gctx, req.CareerGoal, candidate.Region)
		if err != nil {
			c.log.Warn("market insights failed, using local fallback", zap.Error(err))
			result = ai.FallbackMarketInsights(req.CareerGoal, candidate.Region)
		}
		insights = result
		return nil
	})
	if err := g.Wait(); err != nil {
		return types.Candidate{}, nil, nil, err
	}

	if c.epoch.Load() != epoch {
		c.log.Info("discarding stale analysis result", zap.String("contact", contact))
		return types.Candidate{}, nil, nil, ErrSessionChanged
	}

	saved, err := c.CompleteAnalysis(ctx, contact, analysis, insights, req.CareerGoal)
	if err != nil {
		return types.Candidate{}, nil, nil, err
	}
	return saved, analysis, insights, nil
}

// GenerateCV drives a CV generation round: the quota is checked, the
// collaborator is called (falling back to the local deterministic CV on
// failure), and the outcome is recorded via CompleteCVGeneration.
func (c *Controller) GenerateCV(ctx context.Context, contact string, req types.GenerateCVRequest) (types.Candidate, *types.CVDocument, error) {
	if err := req.Validate(); err != nil {
		return types.Candidate{}, nil, fmt.Errorf("%w: generate: %v", ErrInvalidRequest, err)
	}
	candidate, found := c.store.FindCandidate(ctx, contact)
	if !found {
		return types.Candidate{}, nil, ErrNotFound
	}
	if entitlement.AttemptsRemaining(candidate.SelectedTier, candidate.CVAttemptsUsed) == 0 {
		return types.Candidate{}, nil, ErrNoAttemptsLeft
	}
	epoch := c.epoch.Load()

	cv, err := c.coach.GenerateCV(ctx, req.Content, req.MimeType, req.CareerGoal, &candidate, candidate.LastAnalysis)
	if err != nil {
		c.log.Warn("CV generation failed, using local fallback", zap.Error(err))
		cv = ai.FallbackCV(&candidate, candidate.SelectedTier)
	}

	if c.epoch.Load() != epoch {
		c.log.Info("discarding stale CV result", zap.String("contact", contact))
		return types.Candidate{}, nil, ErrSessionChanged
	}

	saved, err := c.CompleteCVGeneration(ctx, contact, cv, req.CareerGoal)
	if err != nil {
		return types.Candidate{}, nil, err
	}
	return saved, cv, nil
}

// GenerateUCASStatement drafts a university application statement and stores
// it on the candidate. An AI failure surfaces and nothing is mutated.
func (c *Controller) GenerateUCASStatement(ctx context.Context, contact string) (types.Candidate, *types.UCASStatement, error) {
	candidate, found := c.store.FindCandidate(ctx, contact)
	if !found {
		return types.Candidate{}, nil, ErrNotFound
	}

	statement, err := c.coach.UCASStatement(ctx, candidate)
	if err != nil {
		return types.Candidate{}, nil, fmt.Errorf("UCAS statement generation failed: %w", err)
	}

	candidate.UCASStatement = statement
	saved, err := c.persist(ctx, candidate)
	if err != nil {
		return types.Candidate{}, nil, err
	}

	item := types.HistoryItem{
		ID:         fmt.Sprintf("hist_%d", c.now().UnixMilli()),
		Timestamp:  c.now().UnixMilli(),
		CareerGoal: candidate.CareerAspirations,
		Type:       types.HistoryUCASGuidance,
	}
	if err := c.history.Append(ctx, item); err != nil {
		return types.Candidate{}, nil, err
	}
	return saved, statement, nil
}

// RankCandidates asks the collaborator to order the talent pool against a
// job description. Any failure degrades to an empty ranking.
func (c *Controller) RankCandidates(ctx context.Context, req types.RankRequest) []types.RankedMatch {
	if err := req.Validate(); err != nil {
		c.log.Warn("invalid rank request", zap.Error(err))
		return []types.RankedMatch{}
	}
	region := req.Region
	if region == "" {
		region = entitlement.DefaultRegion
	}

	matches, err := c.coach.RankCandidates(ctx, req.JobDescription, c.store.Candidates(ctx), region)
	if err != nil {
		c.log.Warn("candidate ranking failed", zap.Error(err))
		return []types.RankedMatch{}
	}
	if matches == nil {
		matches = []types.RankedMatch{}
	}
	return matches
}

// SuggestCareers proposes alternative career paths for uploaded content.
// Errors surface to the caller.
func (c *Controller) SuggestCareers(ctx context.Context, contact string, content, mimeType string) ([]types.CareerSuggestion, error) {
	candidate, found := c.store.FindCandidate(ctx, contact)
	if !found {
		return nil, ErrNotFound
	}
	return c.coach.SuggestCareers(ctx, content, mimeType, candidate.Region)
}
