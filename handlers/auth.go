package handlers

import (
	"context"
	"net/http"

	"roomly/services/auth"
	"roomly/services/wizard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes the sign-in, verification, and passcode endpoints.
type AuthHandler struct {
	Svc    auth.AuthService
	Wizard *wizard.Controller
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc auth.AuthService, wz *wizard.Controller) *AuthHandler {
	return &AuthHandler{Svc: svc, Wizard: wz}
}

// SignInHandler authenticates (or creates) a user and returns the identity
// token plus the step the client should show next.
func (h *AuthHandler) SignInHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	identity, err := h.Svc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("Sign in rejected", zap.Error(err))
		respondError(c, err)
		return
	}

	state := wizard.State{UserID: identity.UserID, Email: identity.Email}
	next, err := h.Wizard.Next(c.Request.Context(), wizard.StepSignIn, state)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":   identity.UserID,
		"email":    identity.Email,
		"nextStep": next.String(),
	})
}

// stepState binds the identity carried between the pre-session steps.
type stepState struct {
	UserID string `json:"userId" binding:"required"`
	Email  string `json:"email"`
}

// gateOrAbort runs the wizard gate for a step; it writes the response itself
// when entry is denied or the step is bypassed, returning false in both cases.
func (h *AuthHandler) gateOrAbort(c *gin.Context, ctx context.Context, step wizard.Step, state wizard.State) bool {
	entered, err := h.Wizard.Gate(ctx, step, state)
	if err != nil {
		respondError(c, err)
		return false
	}
	if entered != step {
		// Skip-verification mode: the step is bypassed, send the client forward.
		c.JSON(http.StatusOK, gin.H{"nextStep": entered.String(), "skipped": true})
		return false
	}
	return true
}

// SendCodeHandler issues (or re-issues) the email verification code.
func (h *AuthHandler) SendCodeHandler(c *gin.Context) {
	var req stepState
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	state := wizard.State{UserID: req.UserID, Email: req.Email}
	if !h.gateOrAbort(c, ctx, wizard.StepVerifyEmail, state) {
		return
	}

	if err := h.Svc.IssueVerificationCode(ctx, req.UserID); err != nil {
		getLogger(c).Warn("Failed to issue verification code", zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// VerifyCodeHandler checks the submitted code and advances to the passcode step.
func (h *AuthHandler) VerifyCodeHandler(c *gin.Context) {
	var req struct {
		stepState
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	state := wizard.State{UserID: req.UserID, Email: req.Email}
	if !h.gateOrAbort(c, ctx, wizard.StepVerifyEmail, state) {
		return
	}

	if err := h.Svc.VerifyEmailCode(ctx, req.UserID, req.Code); err != nil {
		respondError(c, err)
		return
	}

	next, err := h.Wizard.Next(ctx, wizard.StepVerifyEmail, state)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"verified": true, "nextStep": next.String()})
}

// SetPasscodeHandler enrolls the 6-digit passcode and issues the session token.
func (h *AuthHandler) SetPasscodeHandler(c *gin.Context) {
	var req struct {
		stepState
		Passcode         string `json:"passcode" binding:"required"`
		ConfirmPasscode  string `json:"confirmPasscode" binding:"required"`
		EnableBiometrics bool   `json:"enableBiometrics"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	state := wizard.State{UserID: req.UserID, Email: req.Email}
	entered, err := h.Wizard.Gate(ctx, wizard.StepSetPasscode, state)
	if err != nil {
		respondError(c, err)
		return
	}
	if entered != wizard.StepSetPasscode {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid step", "redirect": entered.String()})
		return
	}

	resp, err := h.Svc.EnrollPasscode(ctx, req.UserID, req.Passcode, req.ConfirmPasscode, req.EnableBiometrics)
	if err != nil {
		respondError(c, err)
		return
	}

	next, err := h.Wizard.Next(ctx, wizard.StepSetPasscode, state)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":    resp.Token,
		"userId":   resp.ID,
		"nextStep": next.String(),
	})
}

// VerifyPasscodeHandler unlocks a returning user with their existing passcode.
func (h *AuthHandler) VerifyPasscodeHandler(c *gin.Context) {
	var req struct {
		UserID   string `json:"userId" binding:"required"`
		Passcode string `json:"passcode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Svc.VerifyPasscode(c.Request.Context(), req.UserID, req.Passcode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": resp.Token, "userId": resp.ID})
}

// BeginBiometricHandler starts the platform-credential registration ceremony.
func (h *AuthHandler) BeginBiometricHandler(c *gin.Context) {
	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	options, err := h.Svc.BeginBiometricRegistration(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

// FinishBiometricHandler completes the ceremony; the authenticator response
// is parsed straight from the request body.
func (h *AuthHandler) FinishBiometricHandler(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	if err := h.Svc.FinishBiometricRegistration(c.Request.Context(), userID, c.Request); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"registered": true})
}

// LogoutHandler revokes the caller's session token.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.Svc.RevokeSessionToken(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
