package auth

import "regexp"

// The same predicates gate both the API surface and the service layer so the
// two can never drift apart.
var (
	allowedDomainPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@(gmail\.com|[A-Z0-9.-]+\.edu)$`)
	passcodePattern      = regexp.MustCompile(`^[0-9]{6}$`)
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// IsAllowedDomain reports whether the email is syntactically valid and its
// domain is gmail.com or ends in .edu (case-insensitive). No network call.
func IsAllowedDomain(email string) bool {
	return allowedDomainPattern.MatchString(email)
}

// IsValidPassword reports whether the password meets the length requirement.
func IsValidPassword(password string) bool {
	return len(password) >= MinPasswordLength
}

// IsValidPasscode reports whether the passcode is exactly 6 decimal digits.
func IsValidPasscode(passcode string) bool {
	return passcodePattern.MatchString(passcode)
}
