package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/pickup-server/live"
	"github.com/Dosada05/pickup-server/models"
	"github.com/Dosada05/pickup-server/repositories"
	"github.com/google/uuid"
)

// LiveBroadcaster pushes messages to websocket subscribers of a room.
// Satisfied by *live.Hub.
type LiveBroadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// MatchRoomID is the live room naming convention for a match.
func MatchRoomID(matchID uuid.UUID) string {
	return "match_" + matchID.String()
}

type rsvpUpdatePayload struct {
	MatchID    uuid.UUID `json:"match_id"`
	GoingCount int       `json:"going_count"`
}

type RSVPService interface {
	Join(ctx context.Context, matchID, userID uuid.UUID) (*models.RSVP, error)
	Leave(ctx context.Context, matchID, userID uuid.UUID) error
}

type rsvpService struct {
	rsvpRepo  repositories.RSVPRepository
	matchRepo repositories.MatchRepository
	hub       LiveBroadcaster
	logger    *slog.Logger
}

func NewRSVPService(
	rsvpRepo repositories.RSVPRepository,
	matchRepo repositories.MatchRepository,
	hub LiveBroadcaster,
	logger *slog.Logger,
) RSVPService {
	if logger == nil {
		logger = slog.Default()
	}
	return &rsvpService{
		rsvpRepo:  rsvpRepo,
		matchRepo: matchRepo,
		hub:       hub,
		logger:    logger,
	}
}

func (s *rsvpService) Join(ctx context.Context, matchID, userID uuid.UUID) (*models.RSVP, error) {
	if _, err := s.matchRepo.GetRowByID(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %s: %w", matchID, err)
	}

	rsvp := &models.RSVP{
		ID:      uuid.New(),
		MatchID: matchID,
		UserID:  userID,
		Status:  models.RSVPStatusGoing,
	}
	if err := s.rsvpRepo.Upsert(ctx, rsvp); err != nil {
		if errors.Is(err, repositories.ErrRSVPMatchInvalid) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to join match %s: %w", matchID, err)
	}

	s.broadcastGoingCount(ctx, matchID)
	return rsvp, nil
}

func (s *rsvpService) Leave(ctx context.Context, matchID, userID uuid.UUID) error {
	if err := s.rsvpRepo.Delete(ctx, matchID, userID); err != nil {
		if errors.Is(err, repositories.ErrRSVPNotFound) {
			return ErrRSVPNotFound
		}
		return fmt.Errorf("failed to leave match %s: %w", matchID, err)
	}

	s.broadcastGoingCount(ctx, matchID)
	return nil
}

// broadcastGoingCount pushes the fresh count to the match's live room.
// The count is recomputed from the table, never tracked incrementally.
func (s *rsvpService) broadcastGoingCount(ctx context.Context, matchID uuid.UUID) {
	if s.hub == nil {
		return
	}
	count, err := s.rsvpRepo.CountGoing(ctx, matchID)
	if err != nil {
		s.logger.WarnContext(ctx, "rsvp count for broadcast failed",
			slog.String("match_id", matchID.String()), slog.Any("error", err))
		return
	}
	s.hub.BroadcastToRoom(MatchRoomID(matchID), live.Message{
		Type:    "RSVP_UPDATED",
		Payload: rsvpUpdatePayload{MatchID: matchID, GoingCount: count},
	})
}
