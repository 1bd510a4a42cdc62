package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Dosada05/pickup-server/models"
	"github.com/Dosada05/pickup-server/repositories"
	"github.com/Dosada05/pickup-server/storage"
	"github.com/google/uuid"
)

type UpdateProfileInput struct {
	Name             string             `json:"name"`
	Gender           *string            `json:"gender"`
	Age              *int               `json:"age"`
	CollegeID        *string            `json:"college_id"`
	SkillLevel       *models.SkillLevel `json:"skill_level"`
	SportPreferences []int64            `json:"sport_preferences"`
}

type ProfileService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*models.Profile, error)
	UploadAvatar(ctx context.Context, id uuid.UUID, file io.Reader, contentType string) (*models.Profile, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
	uploader    storage.FileUploader
}

func NewProfileService(profileRepo repositories.ProfileRepository, uploader storage.FileUploader) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		uploader:    uploader,
	}
}

func (s *profileService) GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", id, err)
	}
	populateProfileDetails(profile, s.uploader)
	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", id, err)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidationFailed)
	}
	if input.Age != nil && (*input.Age < 16 || *input.Age > 100) {
		return nil, fmt.Errorf("%w: age out of range", ErrValidationFailed)
	}
	if input.SkillLevel != nil && !input.SkillLevel.Valid() {
		return nil, ErrInvalidSkillLevel
	}
	for _, sportID := range input.SportPreferences {
		if sportID <= 0 {
			return nil, fmt.Errorf("%w: invalid sport preference %d", ErrValidationFailed, sportID)
		}
	}

	profile.Name = name
	profile.Gender = input.Gender
	profile.Age = input.Age
	profile.CollegeID = input.CollegeID
	profile.SkillLevel = input.SkillLevel
	profile.SportPreferences = input.SportPreferences

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to update profile %s: %w", id, err)
	}

	populateProfileDetails(profile, s.uploader)
	return profile, nil
}

func (s *profileService) UploadAvatar(ctx context.Context, id uuid.UUID, file io.Reader, contentType string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", id, err)
	}

	ext, err := extensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	oldKey := profile.AvatarKey
	key := fmt.Sprintf("avatars/%s/%s%s", id, uuid.NewString(), ext)

	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar for profile %s: %w", id, err)
	}

	if err := s.profileRepo.UpdateAvatarKey(ctx, id, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to persist avatar key for profile %s: %w", id, err)
	}
	profile.AvatarKey = &result.Key

	// Best effort: the new avatar is already live, a stale object only
	// wastes bucket space.
	if oldKey != nil && *oldKey != "" && *oldKey != result.Key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	populateProfileDetails(profile, s.uploader)
	return profile, nil
}
