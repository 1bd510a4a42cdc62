package models

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SportID   int       `json:"sport_id"`
	CollegeID *string   `json:"college_id,omitempty"`
	CaptainID uuid.UUID `json:"captain_id"`
	CreatedAt time.Time `json:"created_at"`

	Sport   *Sport    `json:"sport,omitempty"`
	Members []Profile `json:"members,omitempty"`
}
