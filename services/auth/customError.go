package auth

import "errors"

var (
	// ErrDomainNotAllowed rejects sign-in emails outside gmail.com / *.edu.
	ErrDomainNotAllowed = errors.New("invalid email domain, only gmail.com and .edu domains are allowed")
	// ErrInvalidPassword rejects passwords shorter than 8 characters.
	ErrInvalidPassword = errors.New("password must be at least 8 characters")
	// ErrInvalidCredentials signals a wrong password for an existing user.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrUserNotFound signals an unknown identity token.
	ErrUserNotFound = errors.New("user not found")

	// ErrCodeNotFound signals no active verification code for the user.
	ErrCodeNotFound = errors.New("verification code not found")
	// ErrCodeExpired signals a present but stale verification code.
	ErrCodeExpired = errors.New("verification code has expired")
	// ErrCodeMismatch signals a wrong candidate code.
	ErrCodeMismatch = errors.New("invalid verification code")
	// ErrResendCooldown signals a re-issue attempt inside the cooldown window.
	ErrResendCooldown = errors.New("a code was sent recently, wait before requesting another")

	// ErrPasscodeLength rejects passcodes that are not exactly 6 digits.
	ErrPasscodeLength = errors.New("passcode must be exactly 6 digits")
	// ErrPasscodeMismatch signals a confirmation that differs from the passcode.
	ErrPasscodeMismatch = errors.New("passcodes do not match")
	// ErrPasscodeInvalid signals a wrong passcode at unlock.
	ErrPasscodeInvalid = errors.New("incorrect passcode")
	// ErrBiometricRegistration signals a failed platform-credential ceremony;
	// enrollment does not finalize the passcode when this is returned.
	ErrBiometricRegistration = errors.New("biometric registration failed")
)
