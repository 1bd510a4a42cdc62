package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Dosada05/pickup-server/models"
	"github.com/Dosada05/pickup-server/repositories"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Display defaults used when a foreign-key lookup degrades.
const (
	UnknownSportName  = "Unknown Sport"
	UnknownUserName   = "Unknown User"
	UnknownPlayerName = "Unknown Player"
	ViewerDisplayName = "You"
)

// Per-record RSVP/friendship lookups fan out concurrently; ordering is
// reasserted by the final sort.
const enrichConcurrency = 8

var ErrFeedFetchFailed = errors.New("failed to fetch match feed")

// FeedService is the match aggregation pipeline: it turns raw match rows
// into enriched, display-ready views. All screens share this one pipeline,
// parameterized by the row selection.
type FeedService interface {
	UpcomingByCommunity(ctx context.Context, viewerID uuid.UUID, communityID string) (*FeedResult, error)
	MatchesForViewer(ctx context.Context, viewerID uuid.UUID) (*FeedResult, error)
	MatchByID(ctx context.Context, viewerID, matchID uuid.UUID) (*models.MatchView, error)
}

// FeedResult carries the assembled views plus the number of rows the
// decoder dropped, for diagnostics.
type FeedResult struct {
	Matches []models.MatchView `json:"matches"`
	Dropped int                `json:"-"`
}

type feedService struct {
	matchRepo   repositories.MatchRepository
	sportRepo   repositories.SportRepository
	profileRepo repositories.ProfileRepository
	rsvpRepo    repositories.RSVPRepository
	friendRepo  repositories.FriendRepository
	loc         *time.Location
	now         func() time.Time
	logger      *slog.Logger
}

// NewFeedService builds the pipeline. loc is the single time zone in which
// match date/time wire strings are parsed and compared; the reference
// client mixed UTC and device-local zones for the same wire format, so the
// zone is explicit here instead.
func NewFeedService(
	matchRepo repositories.MatchRepository,
	sportRepo repositories.SportRepository,
	profileRepo repositories.ProfileRepository,
	rsvpRepo repositories.RSVPRepository,
	friendRepo repositories.FriendRepository,
	loc *time.Location,
	logger *slog.Logger,
) FeedService {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &feedService{
		matchRepo:   matchRepo,
		sportRepo:   sportRepo,
		profileRepo: profileRepo,
		rsvpRepo:    rsvpRepo,
		friendRepo:  friendRepo,
		loc:         loc,
		now:         time.Now,
		logger:      logger,
	}
}

func (s *feedService) UpcomingByCommunity(ctx context.Context, viewerID uuid.UUID, communityID string) (*FeedResult, error) {
	today := s.now().In(s.loc).Format(models.MatchDateLayout)
	rows, err := s.matchRepo.ListRowsByCommunityOnOrAfter(ctx, communityID, today)
	if err != nil {
		return nil, fmt.Errorf("%w: community %s: %w", ErrFeedFetchFailed, communityID, err)
	}

	views, dropped := s.assemble(ctx, viewerID, rows, true)
	return &FeedResult{Matches: views, Dropped: dropped}, nil
}

// MatchesForViewer returns matches the viewer created plus matches the
// viewer joined, de-duplicated with created taking precedence.
func (s *feedService) MatchesForViewer(ctx context.Context, viewerID uuid.UUID) (*FeedResult, error) {
	createdRows, err := s.matchRepo.ListRowsByPoster(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("%w: created matches for %s: %w", ErrFeedFetchFailed, viewerID, err)
	}

	// Joined matches are secondary; a failure here degrades to the created
	// list instead of failing the fetch.
	var joinedRows []models.MatchRow
	joinedIDs, err := s.rsvpRepo.ListGoingMatchIDsByUser(ctx, viewerID)
	if err != nil {
		s.logger.WarnContext(ctx, "joined match ids lookup failed, continuing with created matches only",
			slog.String("viewer_id", viewerID.String()), slog.Any("error", err))
	} else if len(joinedIDs) > 0 {
		joinedRows, err = s.matchRepo.ListRowsByIDs(ctx, joinedIDs)
		if err != nil {
			s.logger.WarnContext(ctx, "joined match rows lookup failed, continuing with created matches only",
				slog.String("viewer_id", viewerID.String()), slog.Any("error", err))
			joinedRows = nil
		}
	}

	createdViews, droppedCreated := s.assemble(ctx, viewerID, createdRows, false)
	joinedViews, droppedJoined := s.assemble(ctx, viewerID, joinedRows, false)

	seen := make(map[uuid.UUID]bool, len(createdViews))
	merged := make([]models.MatchView, 0, len(createdViews)+len(joinedViews))
	for _, view := range createdViews {
		seen[view.ID] = true
		merged = append(merged, view)
	}
	for _, view := range joinedViews {
		if seen[view.ID] {
			continue
		}
		seen[view.ID] = true
		merged = append(merged, view)
	}
	sortViews(merged)

	return &FeedResult{Matches: merged, Dropped: droppedCreated + droppedJoined}, nil
}

func (s *feedService) MatchByID(ctx context.Context, viewerID, matchID uuid.UUID) (*models.MatchView, error) {
	row, err := s.matchRepo.GetRowByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("%w: match %s: %w", ErrFeedFetchFailed, matchID, err)
	}

	views, dropped := s.assemble(ctx, viewerID, []models.MatchRow{*row}, false)
	if dropped > 0 || len(views) == 0 {
		return nil, fmt.Errorf("%w: match %s failed to decode", ErrFeedFetchFailed, matchID)
	}
	return &views[0], nil
}

// assemble is the shared pipeline: decode, batch-resolve sport and poster
// names, enrich each record with its RSVP count and friendship flag, apply
// the strict-future filter when requested, and sort by (date, time).
// Enrichment never fails the batch; lookups degrade to safe defaults.
func (s *feedService) assemble(ctx context.Context, viewerID uuid.UUID, rows []models.MatchRow, futureOnly bool) ([]models.MatchView, int) {
	matches := make([]*models.Match, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		match, err := models.DecodeMatchRow(row, s.loc)
		if err != nil {
			dropped++
			s.logger.WarnContext(ctx, "dropping undecodable match row",
				slog.String("row_id", row.ID.String), slog.Any("error", err))
			continue
		}
		if futureOnly && !match.StartsAt().After(s.now().In(s.loc)) {
			continue
		}
		matches = append(matches, match)
	}
	if len(matches) == 0 {
		return []models.MatchView{}, dropped
	}

	sportIDSet := make(map[int]struct{})
	posterIDSet := make(map[uuid.UUID]struct{})
	for _, match := range matches {
		sportIDSet[match.SportID] = struct{}{}
		posterIDSet[match.PostedByUserID] = struct{}{}
	}

	sportNames, err := s.sportRepo.GetNamesByIDs(ctx, mapKeysInt(sportIDSet))
	if err != nil {
		s.logger.WarnContext(ctx, "sport name resolution failed, falling back to defaults", slog.Any("error", err))
		sportNames = map[int]string{}
	}
	posterNames, err := s.profileRepo.GetNamesByIDs(ctx, mapKeysUUID(posterIDSet))
	if err != nil {
		s.logger.WarnContext(ctx, "poster name resolution failed, falling back to defaults", slog.Any("error", err))
		posterNames = map[uuid.UUID]string{}
	}

	views := make([]models.MatchView, len(matches))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(enrichConcurrency)

	for i, match := range matches {
		i, match := i, match
		group.Go(func() error {
			views[i] = s.enrich(groupCtx, viewerID, match, sportNames, posterNames)
			return nil
		})
	}
	_ = group.Wait()

	sortViews(views)
	return views, dropped
}

func (s *feedService) enrich(ctx context.Context, viewerID uuid.UUID, match *models.Match, sportNames map[int]string, posterNames map[uuid.UUID]string) models.MatchView {
	view := models.MatchView{
		ID:             match.ID,
		MatchType:      match.MatchType,
		CommunityID:    match.CommunityID,
		Venue:          match.Venue,
		MatchDate:      match.DateString(),
		MatchTime:      match.TimeString(),
		SportID:        match.SportID,
		SkillLevel:     match.SkillLevel,
		PlayersNeeded:  match.PlayersNeeded,
		PostedByUserID: match.PostedByUserID,
		CreatedAt:      match.CreatedAt,
	}

	view.SportName = sportNames[match.SportID]
	if view.SportName == "" {
		view.SportName = UnknownSportName
	}

	view.IsCreatedByViewer = viewerID != uuid.Nil && match.PostedByUserID == viewerID
	if view.IsCreatedByViewer {
		view.PostedByName = ViewerDisplayName
	} else {
		view.PostedByName = posterNames[match.PostedByUserID]
		if view.PostedByName == "" {
			view.PostedByName = UnknownUserName
		}
	}

	// Count is recomputed on every fetch; it is never cached so it always
	// reflects the RSVP table at read time.
	count, err := s.rsvpRepo.CountGoing(ctx, match.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "rsvp count failed, defaulting to 0",
			slog.String("match_id", match.ID.String()), slog.Any("error", err))
		count = 0
	}
	view.GoingCount = count

	view.IsFriend = s.isFriend(ctx, viewerID, match.PostedByUserID)

	return view
}

// isFriend treats friendship as non-critical display metadata: empty or
// identical ids are trivially false, and a query failure degrades to false
// rather than blocking the fetch.
func (s *feedService) isFriend(ctx context.Context, viewerID, otherID uuid.UUID) bool {
	if viewerID == uuid.Nil || otherID == uuid.Nil || viewerID == otherID {
		return false
	}
	friends, err := s.friendRepo.AreFriends(ctx, viewerID, otherID)
	if err != nil {
		s.logger.WarnContext(ctx, "friendship lookup failed, defaulting to false",
			slog.String("viewer_id", viewerID.String()),
			slog.String("other_id", otherID.String()),
			slog.Any("error", err))
		return false
	}
	return friends
}

// sortViews orders ascending by (match_date, match_time). The wire formats
// sort correctly as strings.
func sortViews(views []models.MatchView) {
	sort.SliceStable(views, func(i, j int) bool {
		if views[i].MatchDate != views[j].MatchDate {
			return views[i].MatchDate < views[j].MatchDate
		}
		return views[i].MatchTime < views[j].MatchTime
	})
}

func mapKeysInt(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	return keys
}

func mapKeysUUID(set map[uuid.UUID]struct{}) []uuid.UUID {
	keys := make([]uuid.UUID, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	return keys
}
