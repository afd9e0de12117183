package profile

import (
	"context"

	userRepo "roomly/database/repository/user"
	"roomly/models"
	"roomly/services/storage"
)

// ProfileService defines business logic for the profile-builder steps.
type ProfileService interface {
	// SaveBasicDetails validates and persists the basic-details step.
	SaveBasicDetails(ctx context.Context, userID string, details models.BasicDetails) error
	// SaveLifestyleQuiz validates and persists the lifestyle-quiz step.
	SaveLifestyleQuiz(ctx context.Context, userID string, quiz models.LifestyleQuiz) error
	// UploadPhoto runs the crop/brightness/resize pipeline and uploads the
	// result, returning the durable photo URL.
	UploadPhoto(ctx context.Context, userID string, data []byte, opts PhotoOptions) (string, error)
	// GetProfile returns the accumulated profile draft.
	GetProfile(ctx context.Context, userID string) (*models.ProfileData, error)
}

// DefaultProfileService is the production implementation.
type DefaultProfileService struct {
	Repo    userRepo.UserRepository
	Storage storage.StorageService

	// PhotoRequired is the policy switch for whether basic details must carry
	// a photo URL. Set once from configuration.
	PhotoRequired bool
}
