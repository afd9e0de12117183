package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"roomly/models"
	"roomly/utils"

	"go.uber.org/zap"
)

const (
	// CodeLifetime is how long an issued verification code stays valid.
	CodeLifetime = 10 * time.Minute
	// ResendCooldown is the server-enforced minimum gap between issues for
	// the same user.
	ResendCooldown = 30 * time.Second
)

// generateCode returns a uniformly random 6-digit decimal string. Leading
// zeros are allowed, so the space is the full 000000-999999.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// IssueVerificationCode generates a fresh code for the user, replacing any
// prior code, and emails it. A failed send removes the record so the user is
// never left with a code that was never delivered.
func (s *DefaultAuthService) IssueVerificationCode(ctx context.Context, userID string) error {
	user, err := s.Repo.GetByID(userID)
	if err != nil || user == nil {
		return ErrUserNotFound
	}

	now := s.now()
	if existing, err := s.Codes.Get(ctx, userID); err != nil {
		return fmt.Errorf("failed to check for existing code: %w", err)
	} else if existing != nil && now.Sub(existing.CreatedAt) < ResendCooldown {
		return ErrResendCooldown
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	rec := models.VerificationCode{
		UserID:    userID,
		CodeHash:  utils.HashToken(code),
		ExpiresAt: now.Add(CodeLifetime),
		CreatedAt: now,
	}
	if err := s.Codes.Put(ctx, rec); err != nil {
		return err
	}

	body := fmt.Sprintf("Your Roomly verification code is: %s. It expires in %d minutes.",
		code, int(CodeLifetime.Minutes()))
	if err := s.Mailer.Send(ctx, user.Email, "Verify your Roomly email", body); err != nil {
		utils.GetLogger().Error("Failed to send verification email", zap.String("userID", userID), zap.Error(err))
		if delErr := s.Codes.Delete(ctx, userID); delErr != nil {
			utils.GetLogger().Error("Failed to roll back undelivered code", zap.Error(delErr))
		}
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	utils.GetLogger().Sugar().Infof("Sent verification code to %s for user %s (expires %v)",
		user.Email, userID, rec.ExpiresAt)
	return nil
}

// VerifyEmailCode checks the candidate against the user's active code. The
// code is single-use: success deletes it and marks the email verified. An
// expired code is left in place and keeps failing with ErrCodeExpired until
// replaced or cleaned.
func (s *DefaultAuthService) VerifyEmailCode(ctx context.Context, userID, candidate string) error {
	rec, err := s.Codes.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to retrieve verification code: %w", err)
	}
	if rec == nil {
		return ErrCodeNotFound
	}
	if rec.Expired(s.now()) {
		return ErrCodeExpired
	}
	if utils.HashToken(candidate) != rec.CodeHash {
		return ErrCodeMismatch
	}

	if err := s.Codes.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to consume verification code: %w", err)
	}
	if err := s.Repo.SetEmailVerified(userID); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	return nil
}
