package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/pickup-server/models"
	"github.com/Dosada05/pickup-server/repositories"
	"github.com/google/uuid"
)

type CreateTeamInput struct {
	Name      string  `json:"name"`
	SportID   int     `json:"sport_id"`
	CollegeID *string `json:"college_id"`
}

type TeamService interface {
	CreateTeam(ctx context.Context, captainID uuid.UUID, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
	ListByCollege(ctx context.Context, collegeID string) ([]models.Team, error)
	JoinTeam(ctx context.Context, teamID, userID uuid.UUID) error
	LeaveTeam(ctx context.Context, teamID, userID uuid.UUID) error
	DeleteTeam(ctx context.Context, teamID, currentUserID uuid.UUID) error
}

type teamService struct {
	teamRepo    repositories.TeamRepository
	profileRepo repositories.ProfileRepository
	sportRepo   repositories.SportRepository
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	profileRepo repositories.ProfileRepository,
	sportRepo repositories.SportRepository,
) TeamService {
	return &teamService{
		teamRepo:    teamRepo,
		profileRepo: profileRepo,
		sportRepo:   sportRepo,
	}
}

// CreateTeam creates the team and makes the creator its captain and first
// member.
func (s *teamService) CreateTeam(ctx context.Context, captainID uuid.UUID, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	if _, err := s.sportRepo.GetByID(ctx, input.SportID); err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to verify sport %d: %w", input.SportID, err)
	}

	captain, err := s.profileRepo.GetByID(ctx, captainID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", captainID, err)
	}
	if captain.TeamID != nil {
		return nil, ErrUserAlreadyInTeam
	}

	team := &models.Team{
		ID:        uuid.New(),
		Name:      name,
		SportID:   input.SportID,
		CollegeID: input.CollegeID,
		CaptainID: captainID,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		case errors.Is(err, repositories.ErrTeamSportInvalid):
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	if err := s.profileRepo.SetTeamID(ctx, captainID, &team.ID); err != nil {
		return nil, fmt.Errorf("failed to add captain to team %s: %w", team.ID, err)
	}
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %s: %w", id, err)
	}

	members, err := s.profileRepo.ListByTeamID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of team %s: %w", id, err)
	}
	for i := range members {
		members[i].PasswordHash = ""
	}
	team.Members = members

	if sport, err := s.sportRepo.GetByID(ctx, team.SportID); err == nil {
		team.Sport = sport
	}
	return team, nil
}

func (s *teamService) ListByCollege(ctx context.Context, collegeID string) ([]models.Team, error) {
	if strings.TrimSpace(collegeID) == "" {
		return nil, fmt.Errorf("%w: college id is required", ErrValidationFailed)
	}
	teams, err := s.teamRepo.ListByCollege(ctx, collegeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for college %s: %w", collegeID, err)
	}
	return teams, nil
}

func (s *teamService) JoinTeam(ctx context.Context, teamID, userID uuid.UUID) error {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to get team %s: %w", teamID, err)
	}

	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("failed to get profile %s: %w", userID, err)
	}
	if profile.TeamID != nil {
		return ErrUserAlreadyInTeam
	}

	if err := s.profileRepo.SetTeamID(ctx, userID, &teamID); err != nil {
		return fmt.Errorf("failed to join team %s: %w", teamID, err)
	}
	return nil
}

func (s *teamService) LeaveTeam(ctx context.Context, teamID, userID uuid.UUID) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to get team %s: %w", teamID, err)
	}

	// The captain dissolves the team instead of leaving it.
	if team.CaptainID == userID {
		return ErrCaptainActionForbidden
	}

	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("failed to get profile %s: %w", userID, err)
	}
	if profile.TeamID == nil || *profile.TeamID != teamID {
		return ErrForbiddenOperation
	}

	if err := s.profileRepo.SetTeamID(ctx, userID, nil); err != nil {
		return fmt.Errorf("failed to leave team %s: %w", teamID, err)
	}
	return nil
}

func (s *teamService) DeleteTeam(ctx context.Context, teamID, currentUserID uuid.UUID) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to get team %s: %w", teamID, err)
	}
	if team.CaptainID != currentUserID {
		return ErrCaptainActionForbidden
	}

	members, err := s.profileRepo.ListByTeamID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("failed to list members of team %s: %w", teamID, err)
	}
	for _, member := range members {
		if err := s.profileRepo.SetTeamID(ctx, member.ID, nil); err != nil {
			return fmt.Errorf("failed to detach member %s from team %s: %w", member.ID, teamID, err)
		}
	}

	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team %s: %w", teamID, err)
	}
	return nil
}
