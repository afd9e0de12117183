package userRepo

import (
	"roomly/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address. Returns (nil, nil)
	// when no user exists with that email.
	GetByEmail(email string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// Delete removes a user record by its ID.
	Delete(id string) error
	// GetByIDWithProjection retrieves a user by its unique ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)

	// SetEmailVerified stamps the user's email_verified field.
	SetEmailVerified(id string) error
	// SetPasscode stores the passcode hash and biometrics flag.
	SetPasscode(id, passcodeHash string, biometricsEnabled bool) error
	// SetSessionTokenHash stores the hash of the active session token;
	// pass the empty string to revoke.
	SetSessionTokenHash(id, tokenHash string) error
	// AddBiometricCredential appends a registered platform credential.
	AddBiometricCredential(id string, cred models.BiometricCredential) error

	// SaveBasicDetails merges the basic-details step into the user's profile
	// document, leaving other steps untouched.
	SaveBasicDetails(id string, details models.BasicDetails) error
	// SaveLifestyleQuiz merges the lifestyle-quiz step into the user's profile
	// document, leaving other steps untouched.
	SaveLifestyleQuiz(id string, quiz models.LifestyleQuiz) error
}
