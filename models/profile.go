package models

import (
	"time"

	"github.com/google/uuid"
)

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillExperienced  SkillLevel = "Experienced"
	SkillAdvanced     SkillLevel = "Advanced"
)

func (s SkillLevel) Valid() bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillExperienced, SkillAdvanced:
		return true
	}
	return false
}

// Profile is a user account. Gender, age, college, skill level and sport
// preferences are filled in during onboarding and stay empty until then.
type Profile struct {
	ID               uuid.UUID   `json:"id"`
	Name             string      `json:"name"`
	Email            string      `json:"email"`
	PasswordHash     string      `json:"-"`
	Gender           *string     `json:"gender,omitempty"`
	Age              *int        `json:"age,omitempty"`
	CollegeID        *string     `json:"college_id,omitempty"`
	SkillLevel       *SkillLevel `json:"skill_level,omitempty"`
	SportPreferences []int64     `json:"sport_preferences,omitempty"`
	TeamID           *uuid.UUID  `json:"team_id,omitempty"`
	AvatarKey        *string     `json:"-"`
	AvatarURL        *string     `json:"profile_pic,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}
