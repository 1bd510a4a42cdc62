package models

import (
	"time"

	"github.com/google/uuid"
)

type RSVPStatus string

const (
	RSVPStatusGoing    RSVPStatus = "going"
	RSVPStatusNotGoing RSVPStatus = "not_going"
)

type RSVP struct {
	ID      uuid.UUID  `json:"id"`
	MatchID uuid.UUID  `json:"match_id"`
	UserID  uuid.UUID  `json:"user_id"`
	Status  RSVPStatus `json:"rsvp_status"`
	RSVPAt  time.Time  `json:"rsvp_at"`
}

// MatchPlayer is an attendee entry on the match detail screen.
type MatchPlayer struct {
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	RSVPAt    time.Time `json:"rsvp_at"`
	AvatarURL *string   `json:"profile_pic,omitempty"`
}
