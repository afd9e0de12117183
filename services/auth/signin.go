package auth

import (
	"context"
	"fmt"
	"strings"

	"roomly/models"
	"roomly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SignIn validates the credentials and returns the identity token for the
// onboarding flow. A new user is created on first sign-in; an existing user
// must present the original password.
func (s *DefaultAuthService) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if !IsAllowedDomain(email) {
		return nil, ErrDomainNotAllowed
	}
	if !IsValidPassword(password) {
		return nil, ErrInvalidPassword
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("SignIn: failed to look up user", zap.Error(err))
		return nil, fmt.Errorf("sign in failed, please try again")
	}

	if existing != nil {
		if err := bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(password)); err != nil {
			return nil, ErrInvalidCredentials
		}
		return &Identity{UserID: existing.ID, Email: existing.Email}, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("SignIn: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("sign in failed, please try again")
	}

	user := models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.Repo.Create(&user); err != nil {
		utils.GetLogger().Error("SignIn: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("sign in failed, please try again")
	}

	return &Identity{UserID: user.ID, Email: user.Email}, nil
}

// AutoVerifyEmail marks the identity verified without a code and discards any
// outstanding verification code. Only the wizard controller calls this, and
// only in skip-verification mode.
func (s *DefaultAuthService) AutoVerifyEmail(ctx context.Context, userID string) error {
	if err := s.Repo.SetEmailVerified(userID); err != nil {
		return ErrUserNotFound
	}
	if err := s.Codes.Delete(ctx, userID); err != nil {
		utils.GetLogger().Warn("AutoVerifyEmail: failed to clear outstanding code", zap.Error(err))
	}
	return nil
}

// RevokeSessionToken logs the user out: the cached hash and the stored hash
// are both cleared so neither redundant check can authenticate.
func (s *DefaultAuthService) RevokeSessionToken(ctx context.Context, userID string) error {
	if s.AuthCache != nil {
		if err := s.AuthCache.Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
			utils.GetLogger().Warn("RevokeSessionToken: failed to clear auth cache", zap.Error(err))
		}
	}
	if err := s.Repo.SetSessionTokenHash(userID, ""); err != nil {
		return fmt.Errorf("failed to revoke session token: %w", err)
	}
	return nil
}
