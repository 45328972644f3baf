package domain

import (
	"regexp"
	"strings"
)

// emailRe accepts the local@domain.tld shape: non-whitespace local part,
// a single @, a dotted domain, and a TLD of at least two characters.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

// NormalizeEmail trims and lowercases raw and validates the result.
// Normalization is idempotent. Returns an "invalid_email" InputError
// for empty, malformed, or missing input.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" || !emailRe.MatchString(email) {
		return "", NewInputError("invalid_email")
	}
	return email, nil
}
