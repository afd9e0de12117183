package auth

import (
	"context"
	"net/http"
	"time"

	userRepo "roomly/database/repository/user"
	"roomly/services/mail"

	"github.com/go-redis/redis/v8"
	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
)

// AuthService defines business logic for the onboarding auth flow.
type AuthService interface {
	// SignIn validates credentials and returns the identity carried through
	// the rest of the onboarding flow. Unknown emails create a new user.
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	// AutoVerifyEmail marks the identity verified without a code. Used only
	// in skip-verification mode; outstanding codes are discarded.
	AutoVerifyEmail(ctx context.Context, userID string) error

	// IssueVerificationCode generates and emails a one-time code, replacing
	// any previously issued code for the user.
	IssueVerificationCode(ctx context.Context, userID string) error
	// VerifyEmailCode checks a candidate code and, on success, consumes it
	// and marks the email verified.
	VerifyEmailCode(ctx context.Context, userID, candidate string) error

	// EnrollPasscode records the 6-digit passcode and issues a session token.
	EnrollPasscode(ctx context.Context, userID, passcode, confirm string, enableBiometrics bool) (*AuthResponse, error)
	// VerifyPasscode unlocks a returning user with their passcode and issues
	// a fresh session token.
	VerifyPasscode(ctx context.Context, userID, passcode string) (*AuthResponse, error)

	// BeginBiometricRegistration starts the platform-credential ceremony.
	BeginBiometricRegistration(ctx context.Context, userID string) (*protocol.CredentialCreation, error)
	// FinishBiometricRegistration completes the ceremony from the
	// authenticator response carried in the request body.
	FinishBiometricRegistration(ctx context.Context, userID string, r *http.Request) error

	// RevokeSessionToken logs the user out everywhere.
	RevokeSessionToken(ctx context.Context, userID string) error
}

// Identity is the opaque handle threaded through every onboarding step.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// AuthResponse contains the user's ID and session token.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Email string `json:"email,omitempty"`
}

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	Repo      userRepo.UserRepository
	Codes     CodeStore
	Ceremony  CeremonyStore
	Mailer    mail.Sender
	WebAuthn  *webauthn.WebAuthn
	AuthCache *redis.Client

	// Now is overridable in tests; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultAuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
