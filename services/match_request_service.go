package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/pickup-server/models"
	"github.com/Dosada05/pickup-server/repositories"
	"github.com/google/uuid"
)

type ChallengeInput struct {
	OpponentTeamID uuid.UUID `json:"opponent_team_id"`
	Venue          string    `json:"venue"`
	MatchDate      string    `json:"match_date"`
	MatchTime      string    `json:"match_time"`
}

type MatchRequestService interface {
	Challenge(ctx context.Context, currentUserID uuid.UUID, input ChallengeInput) (*models.MatchRequest, error)
	Accept(ctx context.Context, requestID, currentUserID uuid.UUID) (*models.Match, error)
	Decline(ctx context.Context, requestID, currentUserID uuid.UUID) error
	ListIncoming(ctx context.Context, teamID, currentUserID uuid.UUID) ([]models.MatchRequest, error)
	ExpireStale(ctx context.Context) (int64, error)
}

// Pending challenges whose proposed date passed this many days ago are
// auto-declined by the background sweeper.
const staleChallengeGraceDays = 1

type matchRequestService struct {
	requestRepo repositories.MatchRequestRepository
	teamRepo    repositories.TeamRepository
	profileRepo repositories.ProfileRepository
	matchRepo   repositories.MatchRepository
	loc         *time.Location
	logger      *slog.Logger
}

func NewMatchRequestService(
	requestRepo repositories.MatchRequestRepository,
	teamRepo repositories.TeamRepository,
	profileRepo repositories.ProfileRepository,
	matchRepo repositories.MatchRepository,
	loc *time.Location,
	logger *slog.Logger,
) MatchRequestService {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &matchRequestService{
		requestRepo: requestRepo,
		teamRepo:    teamRepo,
		profileRepo: profileRepo,
		matchRepo:   matchRepo,
		loc:         loc,
		logger:      logger,
	}
}

// Challenge lets a team captain propose a match against another team.
func (s *matchRequestService) Challenge(ctx context.Context, currentUserID uuid.UUID, input ChallengeInput) (*models.MatchRequest, error) {
	venue := strings.TrimSpace(input.Venue)
	if venue == "" {
		return nil, ErrVenueRequired
	}
	if _, err := time.ParseInLocation(models.MatchDateLayout, input.MatchDate, s.loc); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMatchDate, input.MatchDate)
	}
	if _, err := time.ParseInLocation(models.MatchTimeLayout, input.MatchTime, s.loc); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMatchTime, input.MatchTime)
	}

	challenger, err := s.captainTeam(ctx, currentUserID)
	if err != nil {
		return nil, err
	}

	opponent, err := s.teamRepo.GetByID(ctx, input.OpponentTeamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get opponent team %s: %w", input.OpponentTeamID, err)
	}
	if opponent.ID == challenger.ID {
		return nil, ErrCannotChallengeSelf
	}

	request := &models.MatchRequest{
		ID:               uuid.New(),
		ChallengerTeamID: challenger.ID,
		OpponentTeamID:   opponent.ID,
		SportID:          challenger.SportID,
		Venue:            venue,
		MatchDate:        input.MatchDate,
		MatchTime:        input.MatchTime,
		Status:           models.MatchRequestPending,
		CreatedBy:        currentUserID,
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		if errors.Is(err, repositories.ErrMatchRequestTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create match request: %w", err)
	}
	return request, nil
}

// Accept marks the request accepted and creates the team_challenge match
// row. Only the challenged team's captain can accept.
func (s *matchRequestService) Accept(ctx context.Context, requestID, currentUserID uuid.UUID) (*models.Match, error) {
	request, err := s.authorizedRequest(ctx, requestID, currentUserID)
	if err != nil {
		return nil, err
	}

	if err := s.requestRepo.UpdateStatus(ctx, requestID, models.MatchRequestAccepted); err != nil {
		if errors.Is(err, repositories.ErrMatchRequestNotFound) {
			return nil, ErrRequestNotPending
		}
		return nil, fmt.Errorf("failed to accept match request %s: %w", requestID, err)
	}

	matchDate, err := time.ParseInLocation(models.MatchDateLayout, request.MatchDate, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMatchDate, request.MatchDate)
	}
	matchTime, err := time.ParseInLocation(models.MatchTimeLayout, request.MatchTime, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMatchTime, request.MatchTime)
	}

	match := &models.Match{
		ID:             uuid.New(),
		MatchType:      models.MatchTypeTeamChallenge,
		Venue:          request.Venue,
		MatchDate:      matchDate,
		MatchTime:      matchTime,
		SportID:        request.SportID,
		PlayersNeeded:  1,
		PostedByUserID: request.CreatedBy,
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create challenge match for request %s: %w", requestID, err)
	}
	return match, nil
}

func (s *matchRequestService) Decline(ctx context.Context, requestID, currentUserID uuid.UUID) error {
	if _, err := s.authorizedRequest(ctx, requestID, currentUserID); err != nil {
		return err
	}
	if err := s.requestRepo.UpdateStatus(ctx, requestID, models.MatchRequestDeclined); err != nil {
		if errors.Is(err, repositories.ErrMatchRequestNotFound) {
			return ErrRequestNotPending
		}
		return fmt.Errorf("failed to decline match request %s: %w", requestID, err)
	}
	return nil
}

func (s *matchRequestService) ListIncoming(ctx context.Context, teamID, currentUserID uuid.UUID) ([]models.MatchRequest, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %s: %w", teamID, err)
	}
	if team.CaptainID != currentUserID {
		return nil, ErrCaptainActionForbidden
	}

	requests, err := s.requestRepo.ListPendingForTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list match requests for team %s: %w", teamID, err)
	}
	return requests, nil
}

func (s *matchRequestService) ExpireStale(ctx context.Context) (int64, error) {
	expired, err := s.requestRepo.DeclineStalePending(ctx, staleChallengeGraceDays)
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale match requests: %w", err)
	}
	return expired, nil
}

// captainTeam returns the team the user captains.
func (s *matchRequestService) captainTeam(ctx context.Context, userID uuid.UUID) (*models.Team, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", userID, err)
	}
	if profile.TeamID == nil {
		return nil, ErrCaptainActionForbidden
	}

	team, err := s.teamRepo.GetByID(ctx, *profile.TeamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %s: %w", *profile.TeamID, err)
	}
	if team.CaptainID != userID {
		return nil, ErrCaptainActionForbidden
	}
	return team, nil
}

// authorizedRequest loads a pending request and verifies the caller
// captains the challenged team.
func (s *matchRequestService) authorizedRequest(ctx context.Context, requestID, currentUserID uuid.UUID) (*models.MatchRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchRequestNotFound) {
			return nil, ErrMatchRequestNotFound
		}
		return nil, fmt.Errorf("failed to get match request %s: %w", requestID, err)
	}
	if request.Status != models.MatchRequestPending {
		return nil, ErrRequestNotPending
	}

	opponent, err := s.teamRepo.GetByID(ctx, request.OpponentTeamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %s: %w", request.OpponentTeamID, err)
	}
	if opponent.CaptainID != currentUserID {
		return nil, ErrCaptainActionForbidden
	}
	return request, nil
}
