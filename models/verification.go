// models/verification.go
package models

import "time"

// VerificationCode is a one-time email ownership credential. At most one
// active record exists per user; issuing a new one replaces the old record.
type VerificationCode struct {
	UserID    string    `json:"userId"`
	CodeHash  string    `json:"codeHash"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the code is past its lifetime at the given instant.
func (v VerificationCode) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}
