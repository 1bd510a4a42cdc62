package models

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type MatchType string

const (
	MatchTypeSportCommunity MatchType = "sport_community"
	MatchTypeTeamInternal   MatchType = "team_internal"
	MatchTypeTeamChallenge  MatchType = "team_challenge"
)

func (t MatchType) Valid() bool {
	switch t {
	case MatchTypeSportCommunity, MatchTypeTeamInternal, MatchTypeTeamChallenge:
		return true
	}
	return false
}

// Wire formats for match dates and times. These are load-bearing for
// interop with the existing mobile clients and must not change.
const (
	MatchDateLayout = "2006-01-02"
	MatchTimeLayout = "15:04:05"
)

var (
	ErrMatchRowMissingField = errors.New("match row is missing a required field")
	ErrMatchRowInvalidField = errors.New("match row has an invalid field")
)

// MatchRow is a matches-table row in its raw backend shape: every column
// nullable, dates and times still wire strings. DecodeMatchRow is the only
// path from a MatchRow to a typed Match.
type MatchRow struct {
	ID             sql.NullString
	MatchType      sql.NullString
	CommunityID    sql.NullString
	Venue          sql.NullString
	MatchDate      sql.NullString
	MatchTime      sql.NullString
	SportID        sql.NullInt64
	SkillLevel     sql.NullString
	PlayersNeeded  sql.NullInt64
	PostedByUserID sql.NullString
	CreatedAt      sql.NullTime
}

// Match is a decoded, validated match record.
type Match struct {
	ID             uuid.UUID   `json:"id"`
	MatchType      MatchType   `json:"match_type"`
	CommunityID    *string     `json:"community_id,omitempty"`
	Venue          string      `json:"venue"`
	MatchDate      time.Time   `json:"-"`
	MatchTime      time.Time   `json:"-"`
	SportID        int         `json:"sport_id"`
	SkillLevel     *SkillLevel `json:"skill_level,omitempty"`
	PlayersNeeded  int         `json:"players_needed"`
	PostedByUserID uuid.UUID   `json:"posted_by_user_id"`
	CreatedAt      time.Time   `json:"created_at"`
}

// DateString re-serializes the match date in its wire format.
func (m *Match) DateString() string {
	return m.MatchDate.Format(MatchDateLayout)
}

// TimeString re-serializes the match start time in its wire format.
func (m *Match) TimeString() string {
	return m.MatchTime.Format(MatchTimeLayout)
}

// StartsAt combines the calendar date and time-of-day into a single instant
// in the location the row was decoded with.
func (m *Match) StartsAt() time.Time {
	return time.Date(
		m.MatchDate.Year(), m.MatchDate.Month(), m.MatchDate.Day(),
		m.MatchTime.Hour(), m.MatchTime.Minute(), m.MatchTime.Second(), 0,
		m.MatchDate.Location(),
	)
}

// DecodeMatchRow validates required columns and parses the date/time wire
// strings with fixed, locale-invariant layouts in loc. A failure concerns
// that row only; callers are expected to skip it and continue the batch.
func DecodeMatchRow(row MatchRow, loc *time.Location) (*Match, error) {
	if loc == nil {
		loc = time.UTC
	}

	requiredStrings := map[string]sql.NullString{
		"id":                row.ID,
		"match_type":        row.MatchType,
		"venue":             row.Venue,
		"match_date":        row.MatchDate,
		"match_time":        row.MatchTime,
		"posted_by_user_id": row.PostedByUserID,
	}
	for column, value := range requiredStrings {
		if !value.Valid || value.String == "" {
			return nil, fmt.Errorf("%w: %s", ErrMatchRowMissingField, column)
		}
	}
	if !row.SportID.Valid {
		return nil, fmt.Errorf("%w: sport_id", ErrMatchRowMissingField)
	}
	if !row.PlayersNeeded.Valid {
		return nil, fmt.Errorf("%w: players_needed", ErrMatchRowMissingField)
	}
	if !row.CreatedAt.Valid {
		return nil, fmt.Errorf("%w: created_at", ErrMatchRowMissingField)
	}

	id, err := uuid.Parse(row.ID.String)
	if err != nil {
		return nil, fmt.Errorf("%w: id %q: %w", ErrMatchRowInvalidField, row.ID.String, err)
	}
	postedBy, err := uuid.Parse(row.PostedByUserID.String)
	if err != nil {
		return nil, fmt.Errorf("%w: posted_by_user_id %q: %w", ErrMatchRowInvalidField, row.PostedByUserID.String, err)
	}

	matchType := MatchType(row.MatchType.String)
	if !matchType.Valid() {
		return nil, fmt.Errorf("%w: match_type %q", ErrMatchRowInvalidField, row.MatchType.String)
	}

	matchDate, err := time.ParseInLocation(MatchDateLayout, row.MatchDate.String, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: match_date %q: %w", ErrMatchRowInvalidField, row.MatchDate.String, err)
	}
	matchTime, err := time.ParseInLocation(MatchTimeLayout, row.MatchTime.String, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: match_time %q: %w", ErrMatchRowInvalidField, row.MatchTime.String, err)
	}

	if row.PlayersNeeded.Int64 <= 0 {
		return nil, fmt.Errorf("%w: players_needed %d", ErrMatchRowInvalidField, row.PlayersNeeded.Int64)
	}

	match := &Match{
		ID:             id,
		MatchType:      matchType,
		Venue:          row.Venue.String,
		MatchDate:      matchDate,
		MatchTime:      matchTime,
		SportID:        int(row.SportID.Int64),
		PlayersNeeded:  int(row.PlayersNeeded.Int64),
		PostedByUserID: postedBy,
		CreatedAt:      row.CreatedAt.Time,
	}

	if row.CommunityID.Valid && row.CommunityID.String != "" {
		communityID := row.CommunityID.String
		match.CommunityID = &communityID
	}
	if row.SkillLevel.Valid && row.SkillLevel.String != "" {
		skill := SkillLevel(row.SkillLevel.String)
		if !skill.Valid() {
			return nil, fmt.Errorf("%w: skill_level %q", ErrMatchRowInvalidField, row.SkillLevel.String)
		}
		match.SkillLevel = &skill
	}

	return match, nil
}

// MatchView is the enriched, display-ready match handed to clients.
type MatchView struct {
	ID                uuid.UUID   `json:"id"`
	MatchType         MatchType   `json:"match_type"`
	CommunityID       *string     `json:"community_id,omitempty"`
	Venue             string      `json:"venue"`
	MatchDate         string      `json:"match_date"`
	MatchTime         string      `json:"match_time"`
	SportID           int         `json:"sport_id"`
	SportName         string      `json:"sport_name"`
	SkillLevel        *SkillLevel `json:"skill_level,omitempty"`
	PlayersNeeded     int         `json:"players_needed"`
	PostedByUserID    uuid.UUID   `json:"posted_by_user_id"`
	PostedByName      string      `json:"posted_by_name"`
	GoingCount        int         `json:"going_count"`
	IsFriend          bool        `json:"is_friend"`
	IsCreatedByViewer bool        `json:"is_created_by_viewer"`
	CreatedAt         time.Time   `json:"created_at"`
}
