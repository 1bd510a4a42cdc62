package services

import (
	"context"
	"testing"

	"github.com/Dosada05/pickup-server/models"
	"github.com/Dosada05/pickup-server/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendFriendRequest(t *testing.T) {
	from := uuid.New()
	to := uuid.New()

	var created *models.Friend
	friendRepo := &fakeFriendRepo{
		getBetweenFn: func(ctx context.Context, a, b uuid.UUID) (*models.Friend, error) {
			return nil, repositories.ErrFriendNotFound
		},
		createFn: func(ctx context.Context, friend *models.Friend) error {
			created = friend
			return nil
		},
	}
	profileRepo := &fakeProfileRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
			return &models.Profile{ID: id}, nil
		},
	}
	svc := NewFriendService(friendRepo, profileRepo, nil)

	friend, err := svc.SendRequest(context.Background(), from, to)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, from, friend.UserID)
	assert.Equal(t, to, friend.FriendID)
	assert.Equal(t, models.FriendStatusPending, friend.Status)
}

func TestSendFriendRequestToSelf(t *testing.T) {
	svc := NewFriendService(&fakeFriendRepo{}, &fakeProfileRepo{}, nil)
	id := uuid.New()

	_, err := svc.SendRequest(context.Background(), id, id)
	assert.ErrorIs(t, err, ErrCannotFriendSelf)
}

func TestSendFriendRequestDuplicateEitherDirection(t *testing.T) {
	from := uuid.New()
	to := uuid.New()

	friendRepo := &fakeFriendRepo{
		getBetweenFn: func(ctx context.Context, a, b uuid.UUID) (*models.Friend, error) {
			// The other side already sent a request.
			return &models.Friend{UserID: to, FriendID: from, Status: models.FriendStatusPending}, nil
		},
	}
	profileRepo := &fakeProfileRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
			return &models.Profile{ID: id}, nil
		},
	}
	svc := NewFriendService(friendRepo, profileRepo, nil)

	_, err := svc.SendRequest(context.Background(), from, to)
	assert.ErrorIs(t, err, ErrFriendAlreadyExists)
}

func TestAcceptFriendRequestRecipientOnly(t *testing.T) {
	requestID := uuid.New()
	sender := uuid.New()
	recipient := uuid.New()

	updated := false
	friendRepo := &fakeFriendRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Friend, error) {
			return &models.Friend{ID: requestID, UserID: sender, FriendID: recipient, Status: models.FriendStatusPending}, nil
		},
		updateStatusFn: func(ctx context.Context, id uuid.UUID, status models.FriendStatus) error {
			updated = true
			assert.Equal(t, models.FriendStatusAccepted, status)
			return nil
		},
	}
	svc := NewFriendService(friendRepo, &fakeProfileRepo{}, nil)

	// The sender cannot accept their own request.
	_, err := svc.AcceptRequest(context.Background(), requestID, sender)
	assert.ErrorIs(t, err, ErrForbiddenOperation)
	assert.False(t, updated)

	friend, err := svc.AcceptRequest(context.Background(), requestID, recipient)
	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, models.FriendStatusAccepted, friend.Status)
}

func TestAcceptFriendRequestAlreadyAccepted(t *testing.T) {
	requestID := uuid.New()
	recipient := uuid.New()

	friendRepo := &fakeFriendRepo{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Friend, error) {
			return &models.Friend{ID: requestID, UserID: uuid.New(), FriendID: recipient, Status: models.FriendStatusAccepted}, nil
		},
	}
	svc := NewFriendService(friendRepo, &fakeProfileRepo{}, nil)

	_, err := svc.AcceptRequest(context.Background(), requestID, recipient)
	assert.ErrorIs(t, err, ErrRequestNotPending)
}

func TestListFriendsResolvesOtherSide(t *testing.T) {
	viewer := uuid.New()
	other := uuid.New()

	friendRepo := &fakeFriendRepo{
		listAcceptedFn: func(ctx context.Context, userID uuid.UUID) ([]models.Friend, error) {
			return []models.Friend{
				// Edge stored with the viewer on the friend_id side.
				{ID: uuid.New(), UserID: other, FriendID: viewer, Status: models.FriendStatusAccepted},
			}, nil
		},
	}
	profileRepo := &fakeProfileRepo{
		getNamesByIDsFn: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
			require.Equal(t, []uuid.UUID{other}, ids)
			return map[uuid.UUID]string{other: "Sam Field"}, nil
		},
	}
	svc := NewFriendService(friendRepo, profileRepo, nil)

	views, err := svc.ListFriends(context.Background(), viewer)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, other, views[0].OtherUserID)
	assert.Equal(t, "Sam Field", views[0].OtherName)
}

func TestListFriendsNameLookupDegrades(t *testing.T) {
	viewer := uuid.New()

	friendRepo := &fakeFriendRepo{
		listAcceptedFn: func(ctx context.Context, userID uuid.UUID) ([]models.Friend, error) {
			return []models.Friend{
				{ID: uuid.New(), UserID: viewer, FriendID: uuid.New(), Status: models.FriendStatusAccepted},
			}, nil
		},
	}
	profileRepo := &fakeProfileRepo{
		getNamesByIDsFn: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
			return nil, errBoom
		},
	}
	svc := NewFriendService(friendRepo, profileRepo, nil)

	views, err := svc.ListFriends(context.Background(), viewer)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, UnknownUserName, views[0].OtherName)
}

func TestIsFriendDegradesToFalse(t *testing.T) {
	friendRepo := &fakeFriendRepo{
		areFriendsFn: func(ctx context.Context, a, b uuid.UUID) (bool, error) {
			return false, errBoom
		},
	}
	svc := NewFriendService(friendRepo, &fakeProfileRepo{}, nil)

	assert.False(t, svc.IsFriend(context.Background(), uuid.New(), uuid.New()))
	assert.False(t, svc.IsFriend(context.Background(), uuid.Nil, uuid.New()))

	same := uuid.New()
	assert.False(t, svc.IsFriend(context.Background(), same, same))
}
