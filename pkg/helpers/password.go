package helpers

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the work factor the rest of the system was provisioned
// for; raising it invalidates no stored hashes but slows every login.
const bcryptCost = 12

// HashPassword hashes the plain text password using bcrypt. The per-call salt
// is embedded in the returned hash, so verification needs only the hash.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword compares a bcrypt hash with a plain password.
func CheckPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// ValidatePassword enforces the password acceptability policy. It is checked
// on the write path before hashing; violations are reported as a
// human-readable message, not an error.
func ValidatePassword(plain string) (bool, string) {
	if len(plain) < 6 {
		return false, "Password must be at least 6 characters long"
	}
	var hasLetter, hasDigit bool
	for _, r := range plain {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return false, "Password must contain at least one letter and one number"
	}
	return true, ""
}
