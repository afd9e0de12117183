// models/user.go
package models

import (
	"time"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
)

// User represents an onboarding user document.
type User struct {
	ID            string     `bson:"id" json:"id"`
	Email         string     `bson:"email" json:"email"`
	PasswordHash  string     `bson:"password_hash" json:"-"`
	EmailVerified *time.Time `bson:"email_verified,omitempty" json:"emailVerified,omitempty"`

	// Secondary credential set after email verification.
	PasscodeHash      string                `bson:"passcode_hash,omitempty" json:"-"`
	BiometricsEnabled bool                  `bson:"biometrics_enabled" json:"biometricsEnabled"`
	Credentials       []BiometricCredential `bson:"credentials,omitempty" json:"-"`

	// SHA-256 hash of the active session token; empty when logged out.
	SessionTokenHash string `bson:"session_token_hash,omitempty" json:"-"`

	ProfileData ProfileData `bson:"profile_data" json:"profileData"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// BiometricCredential is the stored form of a registered platform credential.
type BiometricCredential struct {
	CredentialID    []byte    `bson:"credential_id" json:"-"`
	PublicKey       []byte    `bson:"public_key" json:"-"`
	AttestationType string    `bson:"attestation_type" json:"-"`
	Transports      []string  `bson:"transports" json:"-"`
	AAGUID          []byte    `bson:"aaguid" json:"-"`
	SignCount       uint32    `bson:"sign_count" json:"-"`
	CreatedAt       time.Time `bson:"created_at" json:"-"`
}

// ToWebAuthn converts the stored credential back into the library representation.
func (c BiometricCredential) ToWebAuthn() webauthn.Credential {
	transports := make([]protocol.AuthenticatorTransport, 0, len(c.Transports))
	for _, t := range c.Transports {
		transports = append(transports, protocol.AuthenticatorTransport(t))
	}
	return webauthn.Credential{
		ID:              c.CredentialID,
		PublicKey:       c.PublicKey,
		AttestationType: c.AttestationType,
		Transport:       transports,
		Authenticator: webauthn.Authenticator{
			AAGUID:    c.AAGUID,
			SignCount: c.SignCount,
		},
	}
}

// FromWebAuthn converts a freshly registered library credential into its stored form.
func FromWebAuthn(cred webauthn.Credential) BiometricCredential {
	transports := make([]string, 0, len(cred.Transport))
	for _, t := range cred.Transport {
		transports = append(transports, string(t))
	}
	return BiometricCredential{
		CredentialID:    cred.ID,
		PublicKey:       cred.PublicKey,
		AttestationType: cred.AttestationType,
		Transports:      transports,
		AAGUID:          cred.Authenticator.AAGUID,
		SignCount:       cred.Authenticator.SignCount,
		CreatedAt:       time.Now(),
	}
}
