package models

import (
	"time"

	"github.com/google/uuid"
)

type FriendStatus string

const (
	FriendStatusPending  FriendStatus = "pending"
	FriendStatusAccepted FriendStatus = "accepted"
)

// Friend is a directional friendship edge. An accepted edge is treated as
// symmetric regardless of which side is stored as user_id.
type Friend struct {
	ID        uuid.UUID    `json:"id"`
	UserID    uuid.UUID    `json:"user_id"`
	FriendID  uuid.UUID    `json:"friend_id"`
	Status    FriendStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// OtherSide returns the edge's counterpart to the given user. For an edge
// the user is not part of, the stored friend_id is returned as-is.
func (f *Friend) OtherSide(userID uuid.UUID) uuid.UUID {
	if f.FriendID == userID {
		return f.UserID
	}
	return f.FriendID
}

// FriendView is a friendship edge with the other side's name resolved
// relative to the viewer.
type FriendView struct {
	Friend
	OtherUserID uuid.UUID `json:"other_user_id"`
	OtherName   string    `json:"other_name"`
}
