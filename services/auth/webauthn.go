package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"roomly/models"
	"roomly/utils"

	"github.com/go-redis/redis/v8"
	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ceremonyKeyPrefix = "webauthn:reg:"
	ceremonyTTL       = 5 * time.Minute
)

// CeremonyStore parks WebAuthn session data between the begin and finish
// halves of the registration ceremony.
type CeremonyStore interface {
	SaveSession(ctx context.Context, userID string, data []byte) error
	// TakeSession returns and removes the parked session data; (nil, nil)
	// when none exists.
	TakeSession(ctx context.Context, userID string) ([]byte, error)
}

// RedisCeremonyStore is the production CeremonyStore.
type RedisCeremonyStore struct {
	Client *redis.Client
}

func NewRedisCeremonyStore(client *redis.Client) *RedisCeremonyStore {
	return &RedisCeremonyStore{Client: client}
}

func (s *RedisCeremonyStore) SaveSession(ctx context.Context, userID string, data []byte) error {
	if err := s.Client.Set(ctx, ceremonyKeyPrefix+userID, data, ceremonyTTL).Err(); err != nil {
		return fmt.Errorf("failed to store ceremony session: %w", err)
	}
	return nil
}

func (s *RedisCeremonyStore) TakeSession(ctx context.Context, userID string) ([]byte, error) {
	payload, err := s.Client.Get(ctx, ceremonyKeyPrefix+userID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve ceremony session: %w", err)
	}
	_ = s.Client.Del(ctx, ceremonyKeyPrefix+userID).Err()
	return []byte(payload), nil
}

// MemoryCeremonyStore is an in-memory CeremonyStore for tests.
type MemoryCeremonyStore struct {
	mu       sync.Mutex
	sessions map[string][]byte
}

func NewMemoryCeremonyStore() *MemoryCeremonyStore {
	return &MemoryCeremonyStore{sessions: make(map[string][]byte)}
}

func (s *MemoryCeremonyStore) SaveSession(_ context.Context, userID string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = data
	return nil
}

func (s *MemoryCeremonyStore) TakeSession(_ context.Context, userID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.sessions[userID]
	if !ok {
		return nil, nil
	}
	delete(s.sessions, userID)
	return data, nil
}

// webAuthnUser adapts a user document to the webauthn.User interface.
type webAuthnUser struct {
	user *models.User
}

func (u *webAuthnUser) WebAuthnID() []byte {
	id, err := uuid.Parse(u.user.ID)
	if err != nil {
		return []byte(u.user.ID)
	}
	return id[:]
}

func (u *webAuthnUser) WebAuthnName() string {
	return u.user.Email
}

func (u *webAuthnUser) WebAuthnDisplayName() string {
	if bd := u.user.ProfileData.BasicDetails; bd != nil && bd.PreferredName != "" {
		return bd.PreferredName
	}
	return u.user.Email
}

func (u *webAuthnUser) WebAuthnCredentials() []webauthn.Credential {
	creds := make([]webauthn.Credential, 0, len(u.user.Credentials))
	for _, c := range u.user.Credentials {
		creds = append(creds, c.ToWebAuthn())
	}
	return creds
}

func (u *webAuthnUser) WebAuthnIcon() string {
	if bd := u.user.ProfileData.BasicDetails; bd != nil {
		return bd.PhotoURL
	}
	return ""
}

// BeginBiometricRegistration starts the platform-credential ceremony and
// parks the session data for the finish half.
func (s *DefaultAuthService) BeginBiometricRegistration(ctx context.Context, userID string) (*protocol.CredentialCreation, error) {
	user, err := s.Repo.GetByID(userID)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}

	waUser := &webAuthnUser{user: user}
	options, sessionData, err := s.WebAuthn.BeginRegistration(waUser,
		webauthn.WithAuthenticatorSelection(protocol.AuthenticatorSelection{
			AuthenticatorAttachment: protocol.Platform,
			UserVerification:        protocol.VerificationRequired,
		}),
		webauthn.WithConveyancePreference(protocol.PreferNoAttestation),
	)
	if err != nil {
		utils.GetLogger().Error("BeginBiometricRegistration failed", zap.Error(err))
		return nil, ErrBiometricRegistration
	}

	payload, err := json.Marshal(sessionData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ceremony session: %w", err)
	}
	if err := s.Ceremony.SaveSession(ctx, userID, payload); err != nil {
		return nil, err
	}
	return options, nil
}

// FinishBiometricRegistration completes the ceremony and stores the resulting
// credential on the user.
func (s *DefaultAuthService) FinishBiometricRegistration(ctx context.Context, userID string, r *http.Request) error {
	user, err := s.Repo.GetByID(userID)
	if err != nil || user == nil {
		return ErrUserNotFound
	}

	payload, err := s.Ceremony.TakeSession(ctx, userID)
	if err != nil {
		return err
	}
	if payload == nil {
		return ErrBiometricRegistration
	}
	var sessionData webauthn.SessionData
	if err := json.Unmarshal(payload, &sessionData); err != nil {
		return fmt.Errorf("failed to unmarshal ceremony session: %w", err)
	}

	waUser := &webAuthnUser{user: user}
	cred, err := s.WebAuthn.FinishRegistration(waUser, sessionData, r)
	if err != nil {
		utils.GetLogger().Warn("FinishBiometricRegistration failed", zap.Error(err))
		return ErrBiometricRegistration
	}

	if err := s.Repo.AddBiometricCredential(userID, models.FromWebAuthn(*cred)); err != nil {
		return fmt.Errorf("failed to store biometric credential: %w", err)
	}
	return nil
}
