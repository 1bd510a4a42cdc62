package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Dosada05/pickup-server/models"
	"github.com/Dosada05/pickup-server/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	viewerID = uuid.MustParse("00000000-0000-4000-8000-000000000001")
	posterID = uuid.MustParse("00000000-0000-4000-8000-000000000002")
)

func feedRow(id uuid.UUID, date, clock string, postedBy uuid.UUID) models.MatchRow {
	return models.MatchRow{
		ID:             sql.NullString{String: id.String(), Valid: true},
		MatchType:      sql.NullString{String: "sport_community", Valid: true},
		CommunityID:    sql.NullString{String: models.CommunityID("stanford", 3), Valid: true},
		Venue:          sql.NullString{String: "Main Gym", Valid: true},
		MatchDate:      sql.NullString{String: date, Valid: true},
		MatchTime:      sql.NullString{String: clock, Valid: true},
		SportID:        sql.NullInt64{Int64: 3, Valid: true},
		PlayersNeeded:  sql.NullInt64{Int64: 10, Valid: true},
		PostedByUserID: sql.NullString{String: postedBy.String(), Valid: true},
		CreatedAt:      sql.NullTime{Time: time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC), Valid: true},
	}
}

// newTestFeedService wires the pipeline against fakes and pins "now" to
// 2026-01-26 12:00:00 UTC.
func newTestFeedService(t *testing.T, matchRepo *fakeMatchRepo, rsvpRepo *fakeRSVPRepo, friendRepo *fakeFriendRepo) *feedService {
	t.Helper()

	sportRepo := &fakeSportRepo{
		getNamesByIDsFn: func(ctx context.Context, ids []int) (map[int]string, error) {
			return map[int]string{3: "Basketball"}, nil
		},
	}
	profileRepo := &fakeProfileRepo{
		getNamesByIDsFn: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
			return map[uuid.UUID]string{posterID: "Jordan Lee"}, nil
		},
	}
	if rsvpRepo == nil {
		rsvpRepo = &fakeRSVPRepo{}
	}
	if friendRepo == nil {
		friendRepo = &fakeFriendRepo{}
	}

	svc := NewFeedService(matchRepo, sportRepo, profileRepo, rsvpRepo, friendRepo, time.UTC, nil).(*feedService)
	svc.now = func() time.Time {
		return time.Date(2026, 1, 26, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestUpcomingByCommunityFiltersPastMatches(t *testing.T) {
	earlierToday := uuid.New()
	laterToday := uuid.New()
	tomorrow := uuid.New()

	matchRepo := &fakeMatchRepo{
		listByCommunityFn: func(ctx context.Context, communityID, fromDate string) ([]models.MatchRow, error) {
			return []models.MatchRow{
				feedRow(earlierToday, "2026-01-26", "09:00:00", posterID),
				feedRow(laterToday, "2026-01-26", "18:30:00", posterID),
				feedRow(tomorrow, "2026-01-27", "08:00:00", posterID),
			}, nil
		},
	}
	svc := newTestFeedService(t, matchRepo, nil, nil)

	result, err := svc.UpcomingByCommunity(context.Background(), viewerID, "stanford.3")
	require.NoError(t, err)

	// The repo is asked for today onward, then rows starting at or before
	// "now" are cut.
	assert.Equal(t, "2026-01-26", matchRepo.lastCommunityFromDate)
	require.Len(t, result.Matches, 2)
	assert.Equal(t, laterToday, result.Matches[0].ID)
	assert.Equal(t, tomorrow, result.Matches[1].ID)
}

func TestUpcomingByCommunitySortsByDateThenTime(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()

	matchRepo := &fakeMatchRepo{
		listByCommunityFn: func(ctx context.Context, communityID, fromDate string) ([]models.MatchRow, error) {
			return []models.MatchRow{
				feedRow(c, "2026-02-02", "09:00:00", posterID),
				feedRow(a, "2026-02-01", "19:00:00", posterID),
				feedRow(b, "2026-02-02", "08:00:00", posterID),
			}, nil
		},
	}
	svc := newTestFeedService(t, matchRepo, nil, nil)

	result, err := svc.UpcomingByCommunity(context.Background(), viewerID, "stanford.3")
	require.NoError(t, err)
	require.Len(t, result.Matches, 3)
	assert.Equal(t, a, result.Matches[0].ID)
	assert.Equal(t, b, result.Matches[1].ID)
	assert.Equal(t, c, result.Matches[2].ID)
}

func TestUpcomingByCommunityDropsUndecodableRows(t *testing.T) {
	good := uuid.New()
	bad := feedRow(uuid.New(), "2026-01-27", "10:00:00", posterID)
	bad.Venue = sql.NullString{}

	matchRepo := &fakeMatchRepo{
		listByCommunityFn: func(ctx context.Context, communityID, fromDate string) ([]models.MatchRow, error) {
			return []models.MatchRow{bad, feedRow(good, "2026-01-27", "10:00:00", posterID)}, nil
		},
	}
	svc := newTestFeedService(t, matchRepo, nil, nil)

	result, err := svc.UpcomingByCommunity(context.Background(), viewerID, "stanford.3")
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, good, result.Matches[0].ID)
	assert.Equal(t, 1, result.Dropped)
}

func TestEnrichmentResolvesNamesAndCount(t *testing.T) {
	matchRepo := &fakeMatchRepo{
		listByCommunityFn: func(ctx context.Context, communityID, fromDate string) ([]models.MatchRow, error) {
			return []models.MatchRow{feedRow(uuid.New(), "2026-01-27", "18:30:00", posterID)}, nil
		},
	}
	rsvpRepo := &fakeRSVPRepo{
		countGoingFn: func(ctx context.Context, matchID uuid.UUID) (int, error) { return 7, nil },
	}
	friendRepo := &fakeFriendRepo{
		areFriendsFn: func(ctx context.Context, a, b uuid.UUID) (bool, error) { return true, nil },
	}
	svc := newTestFeedService(t, matchRepo, rsvpRepo, friendRepo)

	result, err := svc.UpcomingByCommunity(context.Background(), viewerID, "stanford.3")
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)

	view := result.Matches[0]
	assert.Equal(t, "Basketball", view.SportName)
	assert.Equal(t, "Jordan Lee", view.PostedByName)
	assert.Equal(t, 7, view.GoingCount)
	assert.True(t, view.IsFriend)
	assert.False(t, view.IsCreatedByViewer)
	assert.Equal(t, "2026-01-27", view.MatchDate)
	assert.Equal(t, "18:30:00", view.MatchTime)
}

func TestEnrichmentDegradesToDefaults(t *testing.T) {
	matchRepo := &fakeMatchRepo{
		listByCommunityFn: func(ctx context.Context, communityID, fromDate string) ([]models.MatchRow, error) {
			return []models.MatchRow{feedRow(uuid.New(), "2026-01-27", "18:30:00", posterID)}, nil
		},
	}
	rsvpRepo := &fakeRSVPRepo{
		countGoingFn: func(ctx context.Context, matchID uuid.UUID) (int, error) { return 0, errBoom },
	}
	friendRepo := &fakeFriendRepo{
		areFriendsFn: func(ctx context.Context, a, b uuid.UUID) (bool, error) { return false, errBoom },
	}
	svc := newTestFeedService(t, matchRepo, rsvpRepo, friendRepo)
	svc.sportRepo = &fakeSportRepo{
		getNamesByIDsFn: func(ctx context.Context, ids []int) (map[int]string, error) { return nil, errBoom },
	}
	svc.profileRepo = &fakeProfileRepo{
		getNamesByIDsFn: func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) { return nil, errBoom },
	}

	result, err := svc.UpcomingByCommunity(context.Background(), viewerID, "stanford.3")
	require.NoError(t, err, "lookup failures must not fail the fetch")
	require.Len(t, result.Matches, 1)

	view := result.Matches[0]
	assert.Equal(t, UnknownSportName, view.SportName)
	assert.Equal(t, UnknownUserName, view.PostedByName)
	assert.Equal(t, 0, view.GoingCount)
	assert.False(t, view.IsFriend)
}

func TestViewerOwnMatchShowsYou(t *testing.T) {
	matchRepo := &fakeMatchRepo{
		listByCommunityFn: func(ctx context.Context, communityID, fromDate string) ([]models.MatchRow, error) {
			return []models.MatchRow{feedRow(uuid.New(), "2026-01-27", "18:30:00", viewerID)}, nil
		},
	}
	svc := newTestFeedService(t, matchRepo, nil, nil)

	result, err := svc.UpcomingByCommunity(context.Background(), viewerID, "stanford.3")
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)

	view := result.Matches[0]
	assert.True(t, view.IsCreatedByViewer)
	assert.Equal(t, ViewerDisplayName, view.PostedByName)
	assert.False(t, view.IsFriend, "the viewer is never their own friend")
}

func TestMatchesForViewerDedupPrefersCreated(t *testing.T) {
	created := uuid.New()
	joinedOnly := uuid.New()

	matchRepo := &fakeMatchRepo{
		listByPosterFn: func(ctx context.Context, id uuid.UUID) ([]models.MatchRow, error) {
			return []models.MatchRow{feedRow(created, "2026-02-01", "10:00:00", viewerID)}, nil
		},
		listByIDsFn: func(ctx context.Context, ids []uuid.UUID) ([]models.MatchRow, error) {
			// The RSVP list includes a match the viewer also created.
			return []models.MatchRow{
				feedRow(created, "2026-02-01", "10:00:00", viewerID),
				feedRow(joinedOnly, "2026-01-30", "10:00:00", posterID),
			}, nil
		},
	}
	rsvpRepo := &fakeRSVPRepo{
		listGoingMatchIDsFn: func(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
			return []uuid.UUID{created, joinedOnly}, nil
		},
	}
	svc := newTestFeedService(t, matchRepo, rsvpRepo, nil)

	result, err := svc.MatchesForViewer(context.Background(), viewerID)
	require.NoError(t, err)
	require.Len(t, result.Matches, 2, "duplicate must appear once")

	// Sorted by (date, time): the joined-only match comes first.
	assert.Equal(t, joinedOnly, result.Matches[0].ID)
	assert.Equal(t, created, result.Matches[1].ID)
	assert.True(t, result.Matches[1].IsCreatedByViewer)
}

func TestMatchesForViewerIncludesPastMatches(t *testing.T) {
	past := uuid.New()
	matchRepo := &fakeMatchRepo{
		listByPosterFn: func(ctx context.Context, id uuid.UUID) ([]models.MatchRow, error) {
			return []models.MatchRow{feedRow(past, "2025-12-01", "10:00:00", viewerID)}, nil
		},
		listByIDsFn: func(ctx context.Context, ids []uuid.UUID) ([]models.MatchRow, error) {
			return nil, nil
		},
	}
	svc := newTestFeedService(t, matchRepo, nil, nil)

	result, err := svc.MatchesForViewer(context.Background(), viewerID)
	require.NoError(t, err)
	require.Len(t, result.Matches, 1, "history view applies no future filter")
}

func TestMatchesForViewerDegradesWhenJoinedLookupFails(t *testing.T) {
	created := uuid.New()
	matchRepo := &fakeMatchRepo{
		listByPosterFn: func(ctx context.Context, id uuid.UUID) ([]models.MatchRow, error) {
			return []models.MatchRow{feedRow(created, "2026-02-01", "10:00:00", viewerID)}, nil
		},
	}
	rsvpRepo := &fakeRSVPRepo{
		listGoingMatchIDsFn: func(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
			return nil, errBoom
		},
	}
	svc := newTestFeedService(t, matchRepo, rsvpRepo, nil)

	result, err := svc.MatchesForViewer(context.Background(), viewerID)
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, created, result.Matches[0].ID)
}

func TestMatchesForViewerFailsWhenCreatedLookupFails(t *testing.T) {
	matchRepo := &fakeMatchRepo{
		listByPosterFn: func(ctx context.Context, id uuid.UUID) ([]models.MatchRow, error) {
			return nil, errBoom
		},
	}
	svc := newTestFeedService(t, matchRepo, nil, nil)

	_, err := svc.MatchesForViewer(context.Background(), viewerID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFeedFetchFailed)
}

func TestMatchByID(t *testing.T) {
	matchID := uuid.New()
	matchRepo := &fakeMatchRepo{
		getRowByIDFn: func(ctx context.Context, id uuid.UUID) (*models.MatchRow, error) {
			row := feedRow(matchID, "2026-01-27", "18:30:00", posterID)
			return &row, nil
		},
	}
	svc := newTestFeedService(t, matchRepo, nil, nil)

	view, err := svc.MatchByID(context.Background(), viewerID, matchID)
	require.NoError(t, err)
	assert.Equal(t, matchID, view.ID)
	assert.Equal(t, "Basketball", view.SportName)
}

func TestMatchByIDNotFound(t *testing.T) {
	matchRepo := &fakeMatchRepo{
		getRowByIDFn: func(ctx context.Context, id uuid.UUID) (*models.MatchRow, error) {
			return nil, repositories.ErrMatchNotFound
		},
	}
	svc := newTestFeedService(t, matchRepo, nil, nil)

	_, err := svc.MatchByID(context.Background(), viewerID, uuid.New())
	assert.ErrorIs(t, err, ErrMatchNotFound)
}
