package models

import (
	"time"

	"github.com/google/uuid"
)

type MatchRequestStatus string

const (
	MatchRequestPending  MatchRequestStatus = "pending"
	MatchRequestAccepted MatchRequestStatus = "accepted"
	MatchRequestDeclined MatchRequestStatus = "declined"
)

// MatchRequest is a challenge from one team to another. Accepting it
// creates a team_challenge match row.
type MatchRequest struct {
	ID               uuid.UUID          `json:"id"`
	ChallengerTeamID uuid.UUID          `json:"challenger_team_id"`
	OpponentTeamID   uuid.UUID          `json:"opponent_team_id"`
	SportID          int                `json:"sport_id"`
	Venue            string             `json:"venue"`
	MatchDate        string             `json:"match_date"`
	MatchTime        string             `json:"match_time"`
	Status           MatchRequestStatus `json:"status"`
	CreatedBy        uuid.UUID          `json:"created_by"`
	CreatedAt        time.Time          `json:"created_at"`
}
