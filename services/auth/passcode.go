package auth

import (
	"context"
	"fmt"

	"roomly/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// EnrollPasscode records the 6-digit passcode, optionally requiring a
// completed biometric ceremony first, and issues the session token. If the
// biometric requirement is unmet the passcode is not finalized.
func (s *DefaultAuthService) EnrollPasscode(ctx context.Context, userID, passcode, confirm string, enableBiometrics bool) (*AuthResponse, error) {
	if !IsValidPasscode(passcode) {
		return nil, ErrPasscodeLength
	}
	if passcode != confirm {
		return nil, ErrPasscodeMismatch
	}

	user, err := s.Repo.GetByID(userID)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}

	// The registration ceremony runs before enrollment; requiring a stored
	// credential here is what makes a failed ceremony fail the whole step.
	if enableBiometrics && len(user.Credentials) == 0 {
		return nil, ErrBiometricRegistration
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("EnrollPasscode: failed to hash passcode", zap.Error(err))
		return nil, fmt.Errorf("failed to set passcode, please try again")
	}
	if err := s.Repo.SetPasscode(userID, string(hashed), enableBiometrics); err != nil {
		return nil, fmt.Errorf("failed to set passcode: %w", err)
	}

	return s.issueSessionToken(ctx, userID, user.Email)
}

// VerifyPasscode unlocks a returning user and rotates the session token.
func (s *DefaultAuthService) VerifyPasscode(ctx context.Context, userID, passcode string) (*AuthResponse, error) {
	user, err := s.Repo.GetByID(userID)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}
	if user.PasscodeHash == "" {
		return nil, ErrPasscodeInvalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasscodeHash), []byte(passcode)); err != nil {
		return nil, ErrPasscodeInvalid
	}
	return s.issueSessionToken(ctx, userID, user.Email)
}

// issueSessionToken mints a JWT, persists its hash on the user record, and
// mirrors the hash into the auth cache when one is configured.
func (s *DefaultAuthService) issueSessionToken(ctx context.Context, userID, email string) (*AuthResponse, error) {
	token, err := utils.GenerateToken(userID, email, utils.SessionTokenTTL)
	if err != nil {
		utils.GetLogger().Error("Failed to generate session token", zap.Error(err))
		return nil, fmt.Errorf("failed to issue session token")
	}
	tokenHash := utils.HashToken(token)

	if err := s.Repo.SetSessionTokenHash(userID, tokenHash); err != nil {
		return nil, fmt.Errorf("failed to persist session token: %w", err)
	}
	if s.AuthCache != nil {
		if err := s.AuthCache.Set(ctx, utils.AuthCachePrefix+userID, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("Failed to cache session token hash", zap.Error(err))
		}
	}

	return &AuthResponse{ID: userID, Token: token, Email: email}, nil
}
