package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/career-coach/internal/session"
)

// HTTPStatus maps controller errors to response status codes.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrAccountExists):
		return http.StatusConflict
	case errors.Is(err, session.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNoAnalysis),
		errors.Is(err, session.ErrNoAttemptsLeft),
		errors.Is(err, session.ErrSessionChanged):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
