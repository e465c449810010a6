package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/career-coach/internal/entitlement"
	"github.com/jonathan/career-coach/internal/server/middleware"
	"github.com/jonathan/career-coach/internal/types"
)

// decodeBody decodes a JSON request body into dst, answering 400 on failure.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// contact resolves the authenticated candidate contact, answering 401 when
// the middleware did not run.
func (s *Server) contact(w http.ResponseWriter, r *http.Request) (string, bool) {
	contact, err := middleware.GetContact(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "not authenticated")
		return "", false
	}
	return contact, true
}

// authResponse is the shared register/login payload.
type authResponse struct {
	Token     string          `json:"token"`
	Candidate types.Candidate `json:"candidate"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	candidate, err := s.controller.Register(r.Context(), req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := s.jwtService.GenerateToken(candidate.Contact)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	candidate.PasswordHash = ""
	s.jsonResponse(w, http.StatusCreated, authResponse{Token: token, Candidate: candidate})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	candidate, err := s.controller.Login(r.Context(), req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := s.jwtService.GenerateToken(candidate.Contact)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	candidate.PasswordHash = ""
	s.jsonResponse(w, http.StatusOK, authResponse{Token: token, Candidate: candidate})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.controller.Logout(r.Context()); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	candidate, ok := s.controller.RestoreSession(r.Context())
	if !ok {
		s.jsonResponse(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	candidate.PasswordHash = ""
	s.jsonResponse(w, http.StatusOK, map[string]any{"authenticated": true, "candidate": candidate})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	contact, ok := s.contact(w, r)
	if !ok {
		return
	}
	candidate, found := s.store.FindCandidate(r.Context(), contact)
	if !found {
		s.errorResponse(w, http.StatusNotFound, "candidate not found")
		return
	}
	candidate.PasswordHash = ""
	s.jsonResponse(w, http.StatusOK, candidate)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	contact, ok := s.contact(w, r)
	if !ok {
		return
	}
	var req types.AnalyzeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	candidate, analysis, insights, err := s.controller.Analyze(r.Context(), contact, req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	candidate.PasswordHash = ""
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"candidate": candidate,
		"analysis":  analysis,
		"insights":  insights,
	})
}

func (s *Server) handleGenerateCV(w http.ResponseWriter, r *http.Request) {
	contact, ok := s.contact(w, r)
	if !ok {
		return
	}
	var req types.GenerateCVRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	candidate, cv, err := s.controller.GenerateCV(r.Context(), contact, req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	candidate.PasswordHash = ""
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"candidate":         candidate,
		"cv":                cv,
		"attemptsRemaining": entitlement.AttemptsRemaining(candidate.SelectedTier, candidate.CVAttemptsUsed),
	})
}

func (s *Server) handleCompleteCourse(w http.ResponseWriter, r *http.Request) {
	contact, ok := s.contact(w, r)
	if !ok {
		return
	}
	courseID := r.PathValue("course_id")

	candidate, err := s.controller.CompleteCourse(r.Context(), contact, courseID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	candidate.PasswordHash = ""
	s.jsonResponse(w, http.StatusOK, candidate)
}

func (s *Server) handleChangeTier(w http.ResponseWriter, r *http.Request) {
	contact, ok := s.contact(w, r)
	if !ok {
		return
	}
	var req struct {
		Tier entitlement.Tier `json:"tier"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	candidate, err := s.controller.ChangeTier(r.Context(), contact, req.Tier)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	candidate.PasswordHash = ""
	s.jsonResponse(w, http.StatusOK, candidate)
}

func (s *Server) handleRenewTier(w http.ResponseWriter, r *http.Request) {
	contact, ok := s.contact(w, r)
	if !ok {
		return
	}
	candidate, err := s.controller.RenewTier(r.Context(), contact)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	candidate.PasswordHash = ""
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"candidate":   candidate,
		"renewalCost": entitlement.RenewalCost(candidate.SelectedTier, candidate.Region),
	})
}

func (s *Server) handleUCASStatement(w http.ResponseWriter, r *http.Request) {
	contact, ok := s.contact(w, r)
	if !ok {
		return
	}
	candidate, statement, err := s.controller.GenerateUCASStatement(r.Context(), contact)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	candidate.PasswordHash = ""
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"candidate": candidate,
		"statement": statement,
	})
}

func (s *Server) handleSuggestCareers(w http.ResponseWriter, r *http.Request) {
	contact, ok := s.contact(w, r)
	if !ok {
		return
	}
	var req struct {
		Content  string `json:"content"`
		MimeType string `json:"mimeType,omitempty"`
	}
	if !s.decodeBody(w, r, &req) {
		return
	}

	suggestions, err := s.controller.SuggestCareers(r.Context(), contact, req.Content, req.MimeType)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if suggestions == nil {
		suggestions = []types.CareerSuggestion{}
	}
	s.jsonResponse(w, http.StatusOK, suggestions)
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.contact(w, r); !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, s.history.List(r.Context()))
}

func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.contact(w, r); !ok {
		return
	}
	if err := s.history.Remove(r.Context(), r.PathValue("id")); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.Clients(r.Context()))
}

func (s *Server) handleAddClient(w http.ResponseWriter, r *http.Request) {
	var req types.AddClientRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	client, err := s.controller.AddClient(r.Context(), req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, client)
}

func (s *Server) handleListVacancies(w http.ResponseWriter, r *http.Request) {
	vacancies := s.store.Vacancies(r.Context())
	if vacancies == nil {
		vacancies = []types.Mandate{}
	}
	s.jsonResponse(w, http.StatusOK, vacancies)
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req types.RankRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	s.jsonResponse(w, http.StatusOK, s.controller.RankCandidates(r.Context(), req))
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req types.PlaceRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	candidate, client, ok, err := s.controller.PlaceCandidate(r.Context(), req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "candidate or client not found")
		return
	}
	candidate.PasswordHash = ""
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"candidate": candidate,
		"client":    client,
	})
}

// handlePricing returns the regional price table used by the pricing page.
func (s *Server) handlePricing(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	if region == "" {
		region = entitlement.DefaultRegion
	}
	prices := entitlement.PriceTable(region)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"region": region,
		"symbol": prices.Symbol,
		"tiers": map[string]any{
			"Starter": map[string]any{"price": prices.Starter, "templates": entitlement.TemplateQuota(entitlement.TierStarter)},
			"Pro":     map[string]any{"price": prices.Pro, "templates": entitlement.TemplateQuota(entitlement.TierPro)},
			"Elite":   map[string]any{"price": prices.Elite, "templates": entitlement.TemplateQuota(entitlement.TierElite)},
		},
	})
}
