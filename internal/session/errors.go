package session

import "errors"

var (
	// ErrInvalidRequest wraps request validation failures.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidCredentials is returned for an unknown contact or a wrong
	// password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid contact or password")

	// ErrAccountExists is returned when registering a contact that is
	// already in the talent pool.
	ErrAccountExists = errors.New("an account with this contact already exists")

	// ErrNotFound is returned when an operation names a candidate that is
	// not in the talent pool.
	ErrNotFound = errors.New("candidate not found")

	// ErrNoAnalysis is returned when a course completion or CV generation
	// needs a prior analysis that does not exist.
	ErrNoAnalysis = errors.New("no analysis on record")

	// ErrNoAttemptsLeft is returned when the tier's CV generation quota is
	// exhausted.
	ErrNoAttemptsLeft = errors.New("no CV generation attempts remaining")

	// ErrSessionChanged is returned when an in-flight AI result arrives
	// after the active session switched; the result is discarded.
	ErrSessionChanged = errors.New("session changed while request was in flight")
)
