package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/pickup-server/models"
	"github.com/Dosada05/pickup-server/repositories"
	"github.com/Dosada05/pickup-server/utils"
	"github.com/google/uuid"
)

const minPasswordLength = 8

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.Profile, error)
	Login(ctx context.Context, input LoginInput) (*models.Profile, error)
}

type authService struct {
	profileRepo repositories.ProfileRepository
}

func NewAuthService(profileRepo repositories.ProfileRepository) AuthService {
	return &authService{profileRepo: profileRepo}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.Profile, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidationFailed)
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := &models.Profile{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, repositories.ErrProfileEmailConflict) {
			return nil, ErrProfileEmailConflict
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	profile.PasswordHash = ""
	return profile, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, ErrInvalidCredentials
	}

	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
	}

	if !utils.CheckPasswordHash(input.Password, profile.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	profile.PasswordHash = ""
	return profile, nil
}
