package auth

import (
	"context"
	"testing"
	"time"

	userRepo "roomly/database/repository/user"
	"roomly/models"
	"roomly/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPasscodeFixture(t *testing.T) (*DefaultAuthService, *userRepo.MemoryUserRepo, string) {
	t.Helper()
	repo := userRepo.NewMemoryUserRepo()
	user := models.User{ID: "user-1", Email: "alice@school.edu", PasswordHash: "x"}
	require.NoError(t, repo.Create(&user))

	svc := &DefaultAuthService{
		Repo:     repo,
		Codes:    NewMemoryCodeStore(),
		Ceremony: NewMemoryCeremonyStore(),
		Mailer:   &captureMailer{},
	}
	return svc, repo, user.ID
}

func TestEnrollPasscodeSuccess(t *testing.T) {
	svc, repo, userID := newPasscodeFixture(t)

	resp, err := svc.EnrollPasscode(context.Background(), userID, "135790", "135790", false)
	require.NoError(t, err)
	assert.Equal(t, userID, resp.ID)
	assert.NotEmpty(t, resp.Token)

	// The token is a valid session token for this user.
	sub, err := utils.ExtractIDFromToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, sub)

	user, err := repo.GetByID(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, user.PasscodeHash)
	assert.NotEqual(t, "135790", user.PasscodeHash)
	assert.False(t, user.BiometricsEnabled)
	assert.Equal(t, utils.HashToken(resp.Token), user.SessionTokenHash)
}

func TestEnrollPasscodeLength(t *testing.T) {
	svc, _, userID := newPasscodeFixture(t)
	ctx := context.Background()

	_, err := svc.EnrollPasscode(ctx, userID, "12345", "12345", false)
	assert.ErrorIs(t, err, ErrPasscodeLength)

	_, err = svc.EnrollPasscode(ctx, userID, "12345a", "12345a", false)
	assert.ErrorIs(t, err, ErrPasscodeLength)
}

func TestEnrollPasscodeConfirmationMismatch(t *testing.T) {
	svc, repo, userID := newPasscodeFixture(t)

	_, err := svc.EnrollPasscode(context.Background(), userID, "135790", "135791", false)
	assert.ErrorIs(t, err, ErrPasscodeMismatch)

	user, err := repo.GetByID(userID)
	require.NoError(t, err)
	assert.Empty(t, user.PasscodeHash)
}

func TestEnrollPasscodeUnknownUser(t *testing.T) {
	svc, _, _ := newPasscodeFixture(t)
	_, err := svc.EnrollPasscode(context.Background(), "missing", "135790", "135790", false)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestEnrollPasscodeBiometricsWithoutCredential(t *testing.T) {
	svc, repo, userID := newPasscodeFixture(t)

	// No registration ceremony completed: enrollment must fail without
	// finalizing the passcode.
	_, err := svc.EnrollPasscode(context.Background(), userID, "135790", "135790", true)
	assert.ErrorIs(t, err, ErrBiometricRegistration)

	user, err := repo.GetByID(userID)
	require.NoError(t, err)
	assert.Empty(t, user.PasscodeHash)
}

func TestEnrollPasscodeBiometricsWithCredential(t *testing.T) {
	svc, repo, userID := newPasscodeFixture(t)

	require.NoError(t, repo.AddBiometricCredential(userID, models.BiometricCredential{
		CredentialID: []byte("cred-1"),
		PublicKey:    []byte("pk"),
		CreatedAt:    time.Now(),
	}))

	resp, err := svc.EnrollPasscode(context.Background(), userID, "135790", "135790", true)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	user, err := repo.GetByID(userID)
	require.NoError(t, err)
	assert.True(t, user.BiometricsEnabled)
}

func TestVerifyPasscode(t *testing.T) {
	svc, _, userID := newPasscodeFixture(t)
	ctx := context.Background()

	_, err := svc.EnrollPasscode(ctx, userID, "135790", "135790", false)
	require.NoError(t, err)

	_, err = svc.VerifyPasscode(ctx, userID, "000000")
	assert.ErrorIs(t, err, ErrPasscodeInvalid)

	resp, err := svc.VerifyPasscode(ctx, userID, "135790")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestVerifyPasscodeBeforeEnrollment(t *testing.T) {
	svc, _, userID := newPasscodeFixture(t)
	_, err := svc.VerifyPasscode(context.Background(), userID, "135790")
	assert.ErrorIs(t, err, ErrPasscodeInvalid)
}

func TestRevokeSessionToken(t *testing.T) {
	svc, repo, userID := newPasscodeFixture(t)
	ctx := context.Background()

	_, err := svc.EnrollPasscode(ctx, userID, "135790", "135790", false)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeSessionToken(ctx, userID))

	user, err := repo.GetByID(userID)
	require.NoError(t, err)
	assert.Empty(t, user.SessionTokenHash)
}
