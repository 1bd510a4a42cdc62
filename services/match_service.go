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

type CreateMatchInput struct {
	MatchType     models.MatchType   `json:"match_type"`
	CommunityID   *string            `json:"community_id"`
	Venue         string             `json:"venue"`
	MatchDate     string             `json:"match_date"`
	MatchTime     string             `json:"match_time"`
	SportID       int                `json:"sport_id"`
	SkillLevel    *models.SkillLevel `json:"skill_level"`
	PlayersNeeded int                `json:"players_needed"`
}

type MatchService interface {
	CreateMatch(ctx context.Context, posterID uuid.UUID, input CreateMatchInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, matchID, currentUserID uuid.UUID) error
	ListMatchPlayers(ctx context.Context, matchID uuid.UUID) ([]models.MatchPlayer, error)
}

type matchService struct {
	matchRepo     repositories.MatchRepository
	sportRepo     repositories.SportRepository
	communityRepo repositories.CommunityRepository
	rsvpRepo      repositories.RSVPRepository
	profileRepo   repositories.ProfileRepository
	loc           *time.Location
	logger        *slog.Logger
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	sportRepo repositories.SportRepository,
	communityRepo repositories.CommunityRepository,
	rsvpRepo repositories.RSVPRepository,
	profileRepo repositories.ProfileRepository,
	loc *time.Location,
	logger *slog.Logger,
) MatchService {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &matchService{
		matchRepo:     matchRepo,
		sportRepo:     sportRepo,
		communityRepo: communityRepo,
		rsvpRepo:      rsvpRepo,
		profileRepo:   profileRepo,
		loc:           loc,
		logger:        logger,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, posterID uuid.UUID, input CreateMatchInput) (*models.Match, error) {
	if !input.MatchType.Valid() {
		return nil, ErrInvalidMatchType
	}
	venue := strings.TrimSpace(input.Venue)
	if venue == "" {
		return nil, ErrVenueRequired
	}
	if input.PlayersNeeded <= 0 {
		return nil, ErrPlayersNeededPositive
	}
	if input.SkillLevel != nil && !input.SkillLevel.Valid() {
		return nil, ErrInvalidSkillLevel
	}

	matchDate, err := time.ParseInLocation(models.MatchDateLayout, input.MatchDate, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMatchDate, input.MatchDate)
	}
	matchTime, err := time.ParseInLocation(models.MatchTimeLayout, input.MatchTime, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMatchTime, input.MatchTime)
	}

	if _, err := s.sportRepo.GetByID(ctx, input.SportID); err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to verify sport %d: %w", input.SportID, err)
	}

	// Community matches must target an existing community.
	if input.MatchType == models.MatchTypeSportCommunity {
		if input.CommunityID == nil || strings.TrimSpace(*input.CommunityID) == "" {
			return nil, fmt.Errorf("%w: community id is required for community matches", ErrValidationFailed)
		}
		if _, err := s.communityRepo.GetByID(ctx, *input.CommunityID); err != nil {
			if errors.Is(err, repositories.ErrCommunityNotFound) {
				return nil, ErrCommunityNotFound
			}
			return nil, fmt.Errorf("failed to verify community %s: %w", *input.CommunityID, err)
		}
	}

	match := &models.Match{
		ID:             uuid.New(),
		MatchType:      input.MatchType,
		CommunityID:    input.CommunityID,
		Venue:          venue,
		MatchDate:      matchDate,
		MatchTime:      matchTime,
		SportID:        input.SportID,
		SkillLevel:     input.SkillLevel,
		PlayersNeeded:  input.PlayersNeeded,
		PostedByUserID: posterID,
	}

	if err := s.matchRepo.Create(ctx, match); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchSportInvalid):
			return nil, ErrSportNotFound
		case errors.Is(err, repositories.ErrMatchPosterInvalid):
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	// The poster attends their own match by default.
	rsvp := &models.RSVP{
		ID:      uuid.New(),
		MatchID: match.ID,
		UserID:  posterID,
		Status:  models.RSVPStatusGoing,
	}
	if err := s.rsvpRepo.Upsert(ctx, rsvp); err != nil {
		s.logger.WarnContext(ctx, "failed to auto-rsvp poster",
			slog.String("match_id", match.ID.String()), slog.Any("error", err))
	}

	return match, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, matchID, currentUserID uuid.UUID) error {
	row, err := s.matchRepo.GetRowByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to get match %s: %w", matchID, err)
	}

	if !row.PostedByUserID.Valid || row.PostedByUserID.String != currentUserID.String() {
		return ErrForbiddenOperation
	}

	if err := s.matchRepo.Delete(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match %s: %w", matchID, err)
	}
	return nil
}

// ListMatchPlayers returns the going attendees with resolved names. Name
// resolution is batched and degrades to "Unknown Player" per attendee.
func (s *matchService) ListMatchPlayers(ctx context.Context, matchID uuid.UUID) ([]models.MatchPlayer, error) {
	rsvps, err := s.rsvpRepo.ListGoingByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rsvps for match %s: %w", matchID, err)
	}
	if len(rsvps) == 0 {
		return []models.MatchPlayer{}, nil
	}

	idSet := make(map[uuid.UUID]struct{}, len(rsvps))
	for _, rsvp := range rsvps {
		idSet[rsvp.UserID] = struct{}{}
	}
	names, err := s.profileRepo.GetNamesByIDs(ctx, mapKeysUUID(idSet))
	if err != nil {
		s.logger.WarnContext(ctx, "player name resolution failed, falling back to defaults",
			slog.String("match_id", matchID.String()), slog.Any("error", err))
		names = map[uuid.UUID]string{}
	}

	players := make([]models.MatchPlayer, 0, len(rsvps))
	for _, rsvp := range rsvps {
		name := names[rsvp.UserID]
		if name == "" {
			name = UnknownPlayerName
		}
		players = append(players, models.MatchPlayer{
			UserID: rsvp.UserID,
			Name:   name,
			RSVPAt: rsvp.RSVPAt,
		})
	}
	return players, nil
}
