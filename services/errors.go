package services

import "errors"

// Errors shared across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed      = errors.New("validation failed")
	ErrPasswordTooShort      = errors.New("password is too short")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrVenueRequired         = errors.New("match venue is required")
	ErrInvalidMatchType      = errors.New("invalid match type")
	ErrInvalidMatchDate      = errors.New("match date must be yyyy-MM-dd")
	ErrInvalidMatchTime      = errors.New("match time must be HH:mm:ss")
	ErrInvalidSkillLevel     = errors.New("invalid skill level")
	ErrPlayersNeededPositive = errors.New("players needed must be positive")
	ErrTeamNameRequired      = errors.New("team name is required")
	ErrUserAlreadyInTeam     = errors.New("user is already in a team")
	ErrCannotFriendSelf      = errors.New("cannot send a friend request to yourself")
	ErrCannotChallengeSelf   = errors.New("cannot challenge your own team")
	ErrRequestNotPending     = errors.New("request is no longer pending")

	// Conflicts
	ErrProfileEmailConflict = errors.New("email address is already in use")
	ErrTeamNameConflict     = errors.New("team name is already in use")
	ErrFriendAlreadyExists  = errors.New("friend request or friendship already exists")

	// Authentication and authorization
	ErrAuthenticationFailed   = errors.New("authentication failed")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
	ErrCaptainActionForbidden = errors.New("only the team captain can perform this action")

	// Entity-specific not-found errors
	ErrProfileNotFound      = errors.New("profile not found")
	ErrSportNotFound        = errors.New("sport not found")
	ErrCommunityNotFound    = errors.New("sport community not found")
	ErrMatchNotFound        = errors.New("match not found")
	ErrRSVPNotFound         = errors.New("rsvp not found")
	ErrFriendNotFound       = errors.New("friendship not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrMatchRequestNotFound = errors.New("match request not found")
)
