package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/pickup-server/models"
	"github.com/Dosada05/pickup-server/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatchService(matchRepo *fakeMatchRepo, rsvpRepo *fakeRSVPRepo) MatchService {
	sportRepo := &fakeSportRepo{
		getByIDFn: func(ctx context.Context, id int) (*models.Sport, error) {
			return &models.Sport{ID: id, Name: "Basketball"}, nil
		},
	}
	communityRepo := &fakeCommunityRepo{
		getByIDFn: func(ctx context.Context, id string) (*models.SportCommunity, error) {
			return &models.SportCommunity{ID: id}, nil
		},
	}
	profileRepo := &fakeProfileRepo{
		getNamesByIDsFn: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
			return map[uuid.UUID]string{}, nil
		},
	}
	if rsvpRepo == nil {
		rsvpRepo = &fakeRSVPRepo{}
	}
	return NewMatchService(matchRepo, sportRepo, communityRepo, rsvpRepo, profileRepo, time.UTC, nil)
}

func validCreateMatchInput() CreateMatchInput {
	communityID := "stanford.3"
	return CreateMatchInput{
		MatchType:     models.MatchTypeSportCommunity,
		CommunityID:   &communityID,
		Venue:         "Main Gym",
		MatchDate:     "2026-02-01",
		MatchTime:     "18:30:00",
		SportID:       3,
		PlayersNeeded: 10,
	}
}

func TestCreateMatch(t *testing.T) {
	var created *models.Match
	matchRepo := &fakeMatchRepo{
		createFn: func(ctx context.Context, match *models.Match) error {
			created = match
			return nil
		},
	}
	var autoRSVP *models.RSVP
	rsvpRepo := &fakeRSVPRepo{
		upsertFn: func(ctx context.Context, rsvp *models.RSVP) error {
			autoRSVP = rsvp
			return nil
		},
	}
	svc := newTestMatchService(matchRepo, rsvpRepo)

	posterID := uuid.New()
	match, err := svc.CreateMatch(context.Background(), posterID, validCreateMatchInput())
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "2026-02-01", match.DateString())
	assert.Equal(t, "18:30:00", match.TimeString())
	assert.Equal(t, posterID, match.PostedByUserID)

	// The poster is auto-RSVP'd as going.
	require.NotNil(t, autoRSVP)
	assert.Equal(t, match.ID, autoRSVP.MatchID)
	assert.Equal(t, posterID, autoRSVP.UserID)
	assert.Equal(t, models.RSVPStatusGoing, autoRSVP.Status)
}

func TestCreateMatchValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateMatchInput)
		wantErr error
	}{
		{"bad type", func(in *CreateMatchInput) { in.MatchType = "league" }, ErrInvalidMatchType},
		{"empty venue", func(in *CreateMatchInput) { in.Venue = "  " }, ErrVenueRequired},
		{"zero players", func(in *CreateMatchInput) { in.PlayersNeeded = 0 }, ErrPlayersNeededPositive},
		{"bad date", func(in *CreateMatchInput) { in.MatchDate = "01/02/2026" }, ErrInvalidMatchDate},
		{"bad time", func(in *CreateMatchInput) { in.MatchTime = "6pm" }, ErrInvalidMatchTime},
		{"bad skill", func(in *CreateMatchInput) {
			skill := models.SkillLevel("Pro")
			in.SkillLevel = &skill
		}, ErrInvalidSkillLevel},
		{"community match without community", func(in *CreateMatchInput) { in.CommunityID = nil }, ErrValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestMatchService(&fakeMatchRepo{}, nil)
			input := validCreateMatchInput()
			tt.mutate(&input)
			_, err := svc.CreateMatch(context.Background(), uuid.New(), input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateMatchSucceedsWhenAutoRSVPFails(t *testing.T) {
	matchRepo := &fakeMatchRepo{
		createFn: func(ctx context.Context, match *models.Match) error { return nil },
	}
	rsvpRepo := &fakeRSVPRepo{
		upsertFn: func(ctx context.Context, rsvp *models.RSVP) error { return errBoom },
	}
	svc := newTestMatchService(matchRepo, rsvpRepo)

	_, err := svc.CreateMatch(context.Background(), uuid.New(), validCreateMatchInput())
	require.NoError(t, err, "auto-rsvp is best effort")
}

func TestDeleteMatchOwnerOnly(t *testing.T) {
	ownerID := uuid.New()
	row := feedRow(uuid.New(), "2026-02-01", "10:00:00", ownerID)

	deleted := false
	matchRepo := &fakeMatchRepo{
		getRowByIDFn: func(ctx context.Context, id uuid.UUID) (*models.MatchRow, error) {
			return &row, nil
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	svc := newTestMatchService(matchRepo, nil)

	err := svc.DeleteMatch(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrForbiddenOperation)
	assert.False(t, deleted)

	require.NoError(t, svc.DeleteMatch(context.Background(), uuid.New(), ownerID))
	assert.True(t, deleted)
}

func TestDeleteMatchNotFound(t *testing.T) {
	matchRepo := &fakeMatchRepo{
		getRowByIDFn: func(ctx context.Context, id uuid.UUID) (*models.MatchRow, error) {
			return nil, repositories.ErrMatchNotFound
		},
	}
	svc := newTestMatchService(matchRepo, nil)

	err := svc.DeleteMatch(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestListMatchPlayersResolvesNames(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	rsvpRepo := &fakeRSVPRepo{
		listGoingByMatchFn: func(ctx context.Context, matchID uuid.UUID) ([]models.RSVP, error) {
			return []models.RSVP{
				{MatchID: matchID, UserID: alice, Status: models.RSVPStatusGoing},
				{MatchID: matchID, UserID: bob, Status: models.RSVPStatusGoing},
			}, nil
		},
	}
	sportRepo := &fakeSportRepo{}
	communityRepo := &fakeCommunityRepo{}
	profileRepo := &fakeProfileRepo{
		getNamesByIDsFn: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
			// bob's profile is gone.
			return map[uuid.UUID]string{alice: "Alice"}, nil
		},
	}
	svc := NewMatchService(&fakeMatchRepo{}, sportRepo, communityRepo, rsvpRepo, profileRepo, time.UTC, nil)

	players, err := svc.ListMatchPlayers(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Alice", players[0].Name)
	assert.Equal(t, UnknownPlayerName, players[1].Name)
}
