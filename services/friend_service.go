package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/pickup-server/models"
	"github.com/Dosada05/pickup-server/repositories"
	"github.com/google/uuid"
)

type FriendService interface {
	SendRequest(ctx context.Context, fromUserID, toUserID uuid.UUID) (*models.Friend, error)
	AcceptRequest(ctx context.Context, requestID, currentUserID uuid.UUID) (*models.Friend, error)
	Unfriend(ctx context.Context, currentUserID, otherUserID uuid.UUID) error
	ListFriends(ctx context.Context, userID uuid.UUID) ([]models.FriendView, error)
	ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendView, error)
	IsFriend(ctx context.Context, a, b uuid.UUID) bool
}

type friendService struct {
	friendRepo  repositories.FriendRepository
	profileRepo repositories.ProfileRepository
	logger      *slog.Logger
}

func NewFriendService(friendRepo repositories.FriendRepository, profileRepo repositories.ProfileRepository, logger *slog.Logger) FriendService {
	if logger == nil {
		logger = slog.Default()
	}
	return &friendService{
		friendRepo:  friendRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

func (s *friendService) SendRequest(ctx context.Context, fromUserID, toUserID uuid.UUID) (*models.Friend, error) {
	if fromUserID == toUserID {
		return nil, ErrCannotFriendSelf
	}

	if _, err := s.profileRepo.GetByID(ctx, toUserID); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", toUserID, err)
	}

	// One edge per pair, in either direction.
	if existing, err := s.friendRepo.GetBetween(ctx, fromUserID, toUserID); err == nil && existing != nil {
		return nil, ErrFriendAlreadyExists
	} else if err != nil && !errors.Is(err, repositories.ErrFriendNotFound) {
		return nil, fmt.Errorf("failed to check existing friendship: %w", err)
	}

	friend := &models.Friend{
		ID:       uuid.New(),
		UserID:   fromUserID,
		FriendID: toUserID,
		Status:   models.FriendStatusPending,
	}
	if err := s.friendRepo.Create(ctx, friend); err != nil {
		switch {
		case errors.Is(err, repositories.ErrFriendConflict):
			return nil, ErrFriendAlreadyExists
		case errors.Is(err, repositories.ErrFriendUserInvalid):
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}
	return friend, nil
}

func (s *friendService) AcceptRequest(ctx context.Context, requestID, currentUserID uuid.UUID) (*models.Friend, error) {
	friend, err := s.friendRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrFriendNotFound) {
			return nil, ErrFriendNotFound
		}
		return nil, fmt.Errorf("failed to get friend request %s: %w", requestID, err)
	}

	// Only the recipient can accept.
	if friend.FriendID != currentUserID {
		return nil, ErrForbiddenOperation
	}
	if friend.Status != models.FriendStatusPending {
		return nil, ErrRequestNotPending
	}

	if err := s.friendRepo.UpdateStatus(ctx, requestID, models.FriendStatusAccepted); err != nil {
		if errors.Is(err, repositories.ErrFriendNotFound) {
			return nil, ErrFriendNotFound
		}
		return nil, fmt.Errorf("failed to accept friend request %s: %w", requestID, err)
	}
	friend.Status = models.FriendStatusAccepted
	return friend, nil
}

func (s *friendService) Unfriend(ctx context.Context, currentUserID, otherUserID uuid.UUID) error {
	if err := s.friendRepo.DeleteBetween(ctx, currentUserID, otherUserID); err != nil {
		if errors.Is(err, repositories.ErrFriendNotFound) {
			return ErrFriendNotFound
		}
		return fmt.Errorf("failed to unfriend %s: %w", otherUserID, err)
	}
	return nil
}

func (s *friendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.FriendView, error) {
	friends, err := s.friendRepo.ListAcceptedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends for %s: %w", userID, err)
	}
	return s.toViews(ctx, userID, friends), nil
}

func (s *friendService) ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendView, error) {
	requests, err := s.friendRepo.ListPendingForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friend requests for %s: %w", userID, err)
	}
	return s.toViews(ctx, userID, requests), nil
}

// IsFriend treats failures and empty ids as "not friends"; friendship is
// display metadata and must never block a fetch.
func (s *friendService) IsFriend(ctx context.Context, a, b uuid.UUID) bool {
	if a == uuid.Nil || b == uuid.Nil || a == b {
		return false
	}
	friends, err := s.friendRepo.AreFriends(ctx, a, b)
	if err != nil {
		s.logger.WarnContext(ctx, "friendship lookup failed, defaulting to false", slog.Any("error", err))
		return false
	}
	return friends
}

// toViews resolves the "other side" name of each edge relative to the
// viewer, with one batched lookup.
func (s *friendService) toViews(ctx context.Context, viewerID uuid.UUID, friends []models.Friend) []models.FriendView {
	views := make([]models.FriendView, 0, len(friends))
	if len(friends) == 0 {
		return views
	}

	idSet := make(map[uuid.UUID]struct{}, len(friends))
	for _, friend := range friends {
		idSet[friend.OtherSide(viewerID)] = struct{}{}
	}
	names, err := s.profileRepo.GetNamesByIDs(ctx, mapKeysUUID(idSet))
	if err != nil {
		s.logger.WarnContext(ctx, "friend name resolution failed, falling back to defaults", slog.Any("error", err))
		names = map[uuid.UUID]string{}
	}

	for _, friend := range friends {
		otherID := friend.OtherSide(viewerID)
		name := names[otherID]
		if name == "" {
			name = UnknownUserName
		}
		views = append(views, models.FriendView{
			Friend:      friend,
			OtherUserID: otherID,
			OtherName:   name,
		})
	}
	return views
}
