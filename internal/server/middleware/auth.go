// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// contactKey is the context key for storing the authenticated candidate contact.
const contactKey ContextKey = "contact"

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (ContactGetter, error)
}

// ContactGetter is an interface for extracting the candidate contact from token claims.
type ContactGetter interface {
	GetContact() string
}

// AuthMiddleware creates middleware that validates JWT tokens and adds the
// candidate contact to the request context.
func AuthMiddleware(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// Handle case-insensitive "Bearer" prefix
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimSpace(parts[1])
			if tokenString == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), contactKey, claims.GetContact())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetContact extracts the authenticated candidate contact from the request context.
func GetContact(r *http.Request) (string, error) {
	contact, ok := r.Context().Value(contactKey).(string)
	if !ok {
		return "", fmt.Errorf("contact not found in request context")
	}
	return contact, nil
}

// ContactKey returns the context key for the contact (for testing purposes).
func ContactKey() ContextKey {
	return contactKey
}
