package handlers

import (
	"errors"
	"net/http"

	"roomly/services/auth"
	"roomly/services/profile"
	"roomly/services/wizard"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to HTTP responses. Validation errors stay
// field-level, session-state errors carry a redirect target, everything else
// is a transient failure the client may retry.
func respondError(c *gin.Context, err error) {
	var vErr *profile.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
	case errors.Is(err, wizard.ErrMissingSessionState):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "redirect": wizard.StepSignIn.String()})
	case errors.Is(err, auth.ErrDomainNotAllowed):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidPassword),
		errors.Is(err, auth.ErrPasscodeLength),
		errors.Is(err, auth.ErrPasscodeMismatch),
		errors.Is(err, profile.ErrNotAnImage),
		errors.Is(err, wizard.ErrUnknownStep):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrPasscodeInvalid),
		errors.Is(err, auth.ErrCodeNotFound),
		errors.Is(err, auth.ErrCodeExpired),
		errors.Is(err, auth.ErrCodeMismatch):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrResendCooldown):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrBiometricRegistration):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// requireUserID pulls the authenticated user ID set by the auth middleware.
func requireUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization", "redirect": wizard.StepSignIn.String()})
		return "", false
	}
	return userID, true
}
