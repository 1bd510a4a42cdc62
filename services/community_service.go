package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/pickup-server/models"
	"github.com/Dosada05/pickup-server/repositories"
)

type CommunityService interface {
	GetCommunityByID(ctx context.Context, id string) (*models.SportCommunity, error)
	ListByCollege(ctx context.Context, collegeID string) ([]models.SportCommunity, error)
}

type communityService struct {
	communityRepo repositories.CommunityRepository
}

func NewCommunityService(communityRepo repositories.CommunityRepository) CommunityService {
	return &communityService{communityRepo: communityRepo}
}

func (s *communityService) GetCommunityByID(ctx context.Context, id string) (*models.SportCommunity, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: community id is required", ErrValidationFailed)
	}
	community, err := s.communityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCommunityNotFound) {
			return nil, ErrCommunityNotFound
		}
		return nil, fmt.Errorf("failed to get community %s: %w", id, err)
	}
	return community, nil
}

func (s *communityService) ListByCollege(ctx context.Context, collegeID string) ([]models.SportCommunity, error) {
	if strings.TrimSpace(collegeID) == "" {
		return nil, fmt.Errorf("%w: college id is required", ErrValidationFailed)
	}
	communities, err := s.communityRepo.ListByCollege(ctx, collegeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list communities for college %s: %w", collegeID, err)
	}
	return communities, nil
}
