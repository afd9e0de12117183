package wizard

import (
	"context"
	"errors"
	"fmt"

	"roomly/config"
	"roomly/models"
	"roomly/services/auth"
	"roomly/services/profile"
	"roomly/utils"

	"go.uber.org/zap"
)

// Step is one state of the onboarding wizard. The order of the constants is
// the order of the flow.
type Step int

const (
	StepSignIn Step = iota
	StepVerifyEmail
	StepSetPasscode
	StepBasicDetails
	StepLifestyleQuiz
	StepComplete
)

var stepSlugs = map[Step]string{
	StepSignIn:        "signin",
	StepVerifyEmail:   "verify-email",
	StepSetPasscode:   "set-passcode",
	StepBasicDetails:  "basic-details",
	StepLifestyleQuiz: "lifestyle-quiz",
	StepComplete:      "complete",
}

func (s Step) String() string {
	if slug, ok := stepSlugs[s]; ok {
		return slug
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// ParseStep resolves a step slug; unknown slugs return ErrUnknownStep.
func ParseStep(slug string) (Step, error) {
	for step, s := range stepSlugs {
		if s == slug {
			return step, nil
		}
	}
	return StepSignIn, ErrUnknownStep
}

var (
	// ErrMissingSessionState signals entry into a step without the required
	// carried state; the caller must redirect to sign-in.
	ErrMissingSessionState = errors.New("missing session state, sign in again")
	// ErrUnknownStep signals an unrecognized step slug.
	ErrUnknownStep = errors.New("unknown onboarding step")
)

// State is the identity carried between steps. UserID is the identity token;
// Email is additionally required by the verify-email and set-passcode steps.
type State struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
}

// Controller orchestrates the ordered onboarding steps. It is the only place
// that consults the skip-verification switch, so every transition decision
// agrees on it.
type Controller struct {
	Auth    auth.AuthService
	Profile profile.ProfileService

	// SkipVerification overrides the configuration lookup; nil reads
	// config.AppConfig. Tests inject their own.
	SkipVerification func() bool
}

func (c *Controller) skipVerification() bool {
	if c.SkipVerification != nil {
		return c.SkipVerification()
	}
	return config.AppConfig.SkipEmailVerification
}

// Gate decides whether the given step may be entered with the carried state.
// It returns the step to show: the requested one, a forward redirect when
// verification is skipped, or StepSignIn together with
// ErrMissingSessionState when required state is absent. Steps are gated by
// token presence only, not prior-step completion.
func (c *Controller) Gate(ctx context.Context, step Step, state State) (Step, error) {
	if step == StepSignIn {
		return StepSignIn, nil
	}
	if state.UserID == "" {
		return StepSignIn, ErrMissingSessionState
	}
	if (step == StepVerifyEmail || step == StepSetPasscode) && state.Email == "" {
		return StepSignIn, ErrMissingSessionState
	}
	if step == StepVerifyEmail && c.skipVerification() {
		// The identity must still end up verified even though the step is
		// bypassed.
		if err := c.Auth.AutoVerifyEmail(ctx, state.UserID); err != nil {
			return StepVerifyEmail, err
		}
		return StepSetPasscode, nil
	}
	return step, nil
}

// Next returns the step that follows a successfully completed step.
func (c *Controller) Next(ctx context.Context, step Step, state State) (Step, error) {
	switch step {
	case StepSignIn:
		if c.skipVerification() {
			if err := c.Auth.AutoVerifyEmail(ctx, state.UserID); err != nil {
				return StepSignIn, err
			}
			return StepSetPasscode, nil
		}
		return StepVerifyEmail, nil
	case StepVerifyEmail:
		return StepSetPasscode, nil
	case StepSetPasscode:
		return StepBasicDetails, nil
	case StepBasicDetails:
		return StepLifestyleQuiz, nil
	case StepLifestyleQuiz:
		return StepComplete, nil
	default:
		return StepComplete, nil
	}
}

// Advance runs the shared advancement contract for a profile-collection step:
// gate, validate, persist, then move forward. On validation or repository
// failure the wizard stays on the current step and the error is surfaced;
// entered data is never discarded server-side.
func (c *Controller) Advance(ctx context.Context, step Step, state State, payload any) (Step, error) {
	entered, err := c.Gate(ctx, step, state)
	if err != nil {
		return entered, err
	}

	switch step {
	case StepBasicDetails:
		details, ok := payload.(models.BasicDetails)
		if !ok {
			return step, fmt.Errorf("basic-details step requires a basic details payload")
		}
		if err := c.Profile.SaveBasicDetails(ctx, state.UserID, details); err != nil {
			return step, err
		}
	case StepLifestyleQuiz:
		quiz, ok := payload.(models.LifestyleQuiz)
		if !ok {
			return step, fmt.Errorf("lifestyle-quiz step requires a quiz payload")
		}
		if err := c.Profile.SaveLifestyleQuiz(ctx, state.UserID, quiz); err != nil {
			return step, err
		}
	default:
		return step, fmt.Errorf("step %s does not accept profile payloads", step)
	}

	next, err := c.Next(ctx, step, state)
	if err != nil {
		return step, err
	}
	utils.GetLogger().Debug("Wizard advanced",
		zap.String("userID", state.UserID),
		zap.Stringer("from", step),
		zap.Stringer("to", next))
	return next, nil
}
