package profile

import (
	"context"
	"fmt"

	"roomly/models"
	"roomly/utils"

	"go.uber.org/zap"
)

// SaveBasicDetails validates the basic-details payload and merges it into the
// user's profile document. Nothing is persisted when validation fails.
func (s *DefaultProfileService) SaveBasicDetails(ctx context.Context, userID string, details models.BasicDetails) error {
	if err := ValidateBasicDetails(&details, s.PhotoRequired); err != nil {
		return err
	}
	if err := s.Repo.SaveBasicDetails(userID, details); err != nil {
		utils.GetLogger().Error("SaveBasicDetails: repository failure",
			zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to save profile details: %w", err)
	}
	return nil
}

// SaveLifestyleQuiz validates the nine ratings and merges them into the
// user's profile document.
func (s *DefaultProfileService) SaveLifestyleQuiz(ctx context.Context, userID string, quiz models.LifestyleQuiz) error {
	if err := ValidateLifestyleQuiz(quiz); err != nil {
		return err
	}
	if err := s.Repo.SaveLifestyleQuiz(userID, quiz); err != nil {
		utils.GetLogger().Error("SaveLifestyleQuiz: repository failure",
			zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to save lifestyle quiz: %w", err)
	}
	return nil
}

// GetProfile returns the accumulated profile draft for the user.
func (s *DefaultProfileService) GetProfile(ctx context.Context, userID string) (*models.ProfileData, error) {
	user, err := s.Repo.GetByID(userID)
	if err != nil || user == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}
	return &user.ProfileData, nil
}
