package shared

import "fmt"

var (
	// Input validation errors, recoverable by the caller.
	ErrInvalidInput     = fmt.Errorf("invalid input")
	ErrEmptyName        = fmt.Errorf("list name must not be empty")
	ErrEmptyTitle       = fmt.Errorf("todo title must not be empty")
	ErrInvalidStatus    = fmt.Errorf("invalid todo status")
	ErrInvalidPriority  = fmt.Errorf("invalid todo priority")
	ErrPasswordMismatch = fmt.Errorf("passwords do not match")

	// Identity errors, mapped to friendly messages at the HTTP layer.
	ErrInvalidEmail       = fmt.Errorf("invalid email address")
	ErrWeakPassword       = fmt.Errorf("password must be at least 6 characters")
	ErrEmailInUse         = fmt.Errorf("an account with this email already exists")
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrTooManyAttempts    = fmt.Errorf("too many sign-in attempts")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrTokenRevoked       = fmt.Errorf("session has been signed out")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Store errors
	ErrStoreUnavailable = fmt.Errorf("document store unavailable")
)
