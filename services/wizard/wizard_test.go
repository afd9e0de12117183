package wizard

import (
	"context"
	"regexp"
	"testing"

	userRepo "roomly/database/repository/user"
	"roomly/models"
	"roomly/services/auth"
	"roomly/services/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureMailer struct {
	lastBody string
}

func (m *captureMailer) Send(_ context.Context, _, _, body string) error {
	m.lastBody = body
	return nil
}

var codePattern = regexp.MustCompile(`\b(\d{6})\b`)

func (m *captureMailer) lastCode(t *testing.T) string {
	t.Helper()
	match := codePattern.FindStringSubmatch(m.lastBody)
	require.NotNil(t, match)
	return match[1]
}

type fixture struct {
	ctrl    *Controller
	auth    *auth.DefaultAuthService
	repo    *userRepo.MemoryUserRepo
	mailer  *captureMailer
	skip    bool
	autoVer int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:   userRepo.NewMemoryUserRepo(),
		mailer: &captureMailer{},
	}
	f.auth = &auth.DefaultAuthService{
		Repo:     f.repo,
		Codes:    auth.NewMemoryCodeStore(),
		Ceremony: auth.NewMemoryCeremonyStore(),
		Mailer:   f.mailer,
	}
	profileSvc := &profile.DefaultProfileService{Repo: f.repo}
	f.ctrl = &Controller{
		Auth:             &countingAuth{AuthService: f.auth, calls: &f.autoVer},
		Profile:          profileSvc,
		SkipVerification: func() bool { return f.skip },
	}
	return f
}

func rating(v int) *int { return &v }

// answeredQuiz fills in all nine lifestyle ratings.
func answeredQuiz() models.LifestyleQuiz {
	return models.LifestyleQuiz{
		Bedtime: rating(7), WakeTime: rating(4), Cleanliness: rating(8),
		NoiseTolerance: rating(3), GuestFrequency: rating(5),
		PetFriendliness: rating(10), SmokingPreference: rating(0),
		TravelFrequency: rating(2), StudyLocation: rating(6),
	}
}

// countingAuth wraps the real service to count AutoVerifyEmail calls.
type countingAuth struct {
	auth.AuthService
	calls *int
}

func (c *countingAuth) AutoVerifyEmail(ctx context.Context, userID string) error {
	*c.calls++
	return c.AuthService.AutoVerifyEmail(ctx, userID)
}

func TestParseStep(t *testing.T) {
	for step, slug := range map[Step]string{
		StepSignIn:        "signin",
		StepVerifyEmail:   "verify-email",
		StepSetPasscode:   "set-passcode",
		StepBasicDetails:  "basic-details",
		StepLifestyleQuiz: "lifestyle-quiz",
		StepComplete:      "complete",
	} {
		got, err := ParseStep(slug)
		require.NoError(t, err)
		assert.Equal(t, step, got)
		assert.Equal(t, slug, got.String())
	}

	_, err := ParseStep("payment")
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestGateWithoutSessionState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, step := range []Step{StepVerifyEmail, StepSetPasscode, StepBasicDetails, StepLifestyleQuiz, StepComplete} {
		got, err := f.ctrl.Gate(ctx, step, State{})
		assert.ErrorIs(t, err, ErrMissingSessionState, "step %s", step)
		assert.Equal(t, StepSignIn, got)
	}

	// Sign-in itself needs nothing.
	got, err := f.ctrl.Gate(ctx, StepSignIn, State{})
	require.NoError(t, err)
	assert.Equal(t, StepSignIn, got)
}

func TestGateEmailRequirement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	noEmail := State{UserID: "user-1"}

	for _, step := range []Step{StepVerifyEmail, StepSetPasscode} {
		_, err := f.ctrl.Gate(ctx, step, noEmail)
		assert.ErrorIs(t, err, ErrMissingSessionState, "step %s", step)
	}

	// Later steps are gated on the user id alone, not prior-step completion.
	for _, step := range []Step{StepBasicDetails, StepLifestyleQuiz, StepComplete} {
		got, err := f.ctrl.Gate(ctx, step, noEmail)
		require.NoError(t, err, "step %s", step)
		assert.Equal(t, step, got)
	}
}

func TestGateSkipsVerification(t *testing.T) {
	f := newFixture(t)
	f.skip = true
	ctx := context.Background()

	identity, err := f.auth.SignIn(ctx, "alice@school.edu", "password123")
	require.NoError(t, err)
	state := State{UserID: identity.UserID, Email: identity.Email}

	got, err := f.ctrl.Gate(ctx, StepVerifyEmail, state)
	require.NoError(t, err)
	assert.Equal(t, StepSetPasscode, got)
	assert.Equal(t, 1, f.autoVer)

	// The bypass still leaves the identity verified.
	user, err := f.repo.GetByID(identity.UserID)
	require.NoError(t, err)
	assert.NotNil(t, user.EmailVerified)
}

func TestNextAfterSignIn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	identity, err := f.auth.SignIn(ctx, "alice@school.edu", "password123")
	require.NoError(t, err)
	state := State{UserID: identity.UserID, Email: identity.Email}

	next, err := f.ctrl.Next(ctx, StepSignIn, state)
	require.NoError(t, err)
	assert.Equal(t, StepVerifyEmail, next)

	f.skip = true
	next, err = f.ctrl.Next(ctx, StepSignIn, state)
	require.NoError(t, err)
	assert.Equal(t, StepSetPasscode, next)
	assert.Equal(t, 1, f.autoVer)
}

func TestNextOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	state := State{UserID: "user-1"}

	order := []struct {
		from, to Step
	}{
		{StepVerifyEmail, StepSetPasscode},
		{StepSetPasscode, StepBasicDetails},
		{StepBasicDetails, StepLifestyleQuiz},
		{StepLifestyleQuiz, StepComplete},
		{StepComplete, StepComplete},
	}
	for _, tt := range order {
		next, err := f.ctrl.Next(ctx, tt.from, state)
		require.NoError(t, err)
		assert.Equal(t, tt.to, next, "after %s", tt.from)
	}
}

func TestAdvanceValidationFailureStaysOnStep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	identity, err := f.auth.SignIn(ctx, "alice@school.edu", "password123")
	require.NoError(t, err)
	state := State{UserID: identity.UserID}

	got, err := f.ctrl.Advance(ctx, StepBasicDetails, state, models.BasicDetails{})
	var verr *profile.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StepBasicDetails, got)

	user, err := f.repo.GetByID(identity.UserID)
	require.NoError(t, err)
	assert.Nil(t, user.ProfileData.BasicDetails)
}

func TestAdvanceRepoFailureStaysOnStep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	identity, err := f.auth.SignIn(ctx, "alice@school.edu", "password123")
	require.NoError(t, err)
	state := State{UserID: identity.UserID}

	f.repo.FailNext = true
	got, err := f.ctrl.Advance(ctx, StepLifestyleQuiz, state, answeredQuiz())
	assert.Error(t, err)
	assert.Equal(t, StepLifestyleQuiz, got)

	// The same submission succeeds once storage recovers.
	got, err = f.ctrl.Advance(ctx, StepLifestyleQuiz, state, answeredQuiz())
	require.NoError(t, err)
	assert.Equal(t, StepComplete, got)
}

func TestAdvanceRejectsWrongPayload(t *testing.T) {
	f := newFixture(t)
	state := State{UserID: "user-1"}

	_, err := f.ctrl.Advance(context.Background(), StepBasicDetails, state, models.LifestyleQuiz{})
	assert.Error(t, err)

	withEmail := State{UserID: "user-1", Email: "alice@school.edu"}
	_, err = f.ctrl.Advance(context.Background(), StepSetPasscode, withEmail, models.BasicDetails{})
	assert.Error(t, err)
}

// TestFullOnboardingFlow walks a new user through the entire wizard: sign-in,
// email verification with the mailed code, passcode enrollment without
// biometrics, then both profile-builder steps.
func TestFullOnboardingFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	identity, err := f.auth.SignIn(ctx, "alice@school.edu", "password123")
	require.NoError(t, err)
	state := State{UserID: identity.UserID, Email: identity.Email}

	next, err := f.ctrl.Next(ctx, StepSignIn, state)
	require.NoError(t, err)
	require.Equal(t, StepVerifyEmail, next)

	got, err := f.ctrl.Gate(ctx, StepVerifyEmail, state)
	require.NoError(t, err)
	require.Equal(t, StepVerifyEmail, got)

	require.NoError(t, f.auth.IssueVerificationCode(ctx, identity.UserID))
	require.NoError(t, f.auth.VerifyEmailCode(ctx, identity.UserID, f.mailer.lastCode(t)))

	resp, err := f.auth.EnrollPasscode(ctx, identity.UserID, "135790", "135790", false)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	minor := ""
	details := models.BasicDetails{
		PreferredName: "Alice",
		Pronouns:      "they/them",
		YearInSchool:  "junior",
		Major:         "Biology",
		Minor:         &minor,
	}
	next, err = f.ctrl.Advance(ctx, StepBasicDetails, state, details)
	require.NoError(t, err)
	assert.Equal(t, StepLifestyleQuiz, next)

	// A partially answered quiz keeps the wizard on the step.
	next, err = f.ctrl.Advance(ctx, StepLifestyleQuiz, state, models.LifestyleQuiz{Bedtime: rating(7)})
	var verr *profile.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StepLifestyleQuiz, next)

	next, err = f.ctrl.Advance(ctx, StepLifestyleQuiz, state, answeredQuiz())
	require.NoError(t, err)
	assert.Equal(t, StepComplete, next)

	user, err := f.repo.GetByID(identity.UserID)
	require.NoError(t, err)
	require.NotNil(t, user.EmailVerified)
	require.NotNil(t, user.ProfileData.BasicDetails)
	assert.Equal(t, "Alice", user.ProfileData.BasicDetails.PreferredName)
	assert.Nil(t, user.ProfileData.BasicDetails.Minor)
	require.NotNil(t, user.ProfileData.LifestyleQuiz)
	require.NotNil(t, user.ProfileData.LifestyleQuiz.Cleanliness)
	assert.Equal(t, 8, *user.ProfileData.LifestyleQuiz.Cleanliness)
	assert.NotEmpty(t, user.PasscodeHash)
}
