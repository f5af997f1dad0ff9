package application

import "errors"

// Sentinel errors recovered at the handler boundary and mapped onto the
// response envelope. Messages are user-facing.
var (
	ErrUsernameTaken     = errors.New("Username already exists")
	ErrEmailTaken        = errors.New("Email already registered")
	ErrUsernameNotFound  = errors.New("Username not found")
	ErrEmailNotFound     = errors.New("Email not found")
	ErrIncorrectPassword = errors.New("Incorrect password")
	ErrAccountDisabled   = errors.New("Account is disabled")
	ErrUserNotFound      = errors.New("User not found")
	ErrBookmarkNotFound  = errors.New("Bookmark not found")
	ErrCategoryNotFound  = errors.New("Category not found")
	ErrCategoryExists    = errors.New("Category name already exists")
	ErrBookmarkLimit     = errors.New("Bookmark limit reached")
	ErrImportOverLimit   = errors.New("Import would exceed bookmark limit")
	ErrInvalidURL        = errors.New("Invalid URL format")
	ErrTitleRequired     = errors.New("Title is required")
	ErrURLRequired       = errors.New("URL is required")
	ErrInvalidResetCode  = errors.New("Invalid verification code")
	ErrSuperAdmin        = errors.New("Cannot modify super admin")
	ErrInvalidToken      = errors.New("Invalid or expired token")
)

// PolicyError reports a password-policy violation with its human-readable
// reason. It is a validation failure, never a fatal condition.
type PolicyError struct {
	Reason string
}

func (e *PolicyError) Error() string { return e.Reason }
