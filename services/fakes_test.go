package services

import (
	"context"
	"errors"

	"github.com/Dosada05/pickup-server/models"
	"github.com/google/uuid"
)

var errBoom = errors.New("boom")

type fakeMatchRepo struct {
	createFn              func(ctx context.Context, match *models.Match) error
	getRowByIDFn          func(ctx context.Context, id uuid.UUID) (*models.MatchRow, error)
	listByCommunityFn     func(ctx context.Context, communityID, fromDate string) ([]models.MatchRow, error)
	listByPosterFn        func(ctx context.Context, posterID uuid.UUID) ([]models.MatchRow, error)
	listByIDsFn           func(ctx context.Context, ids []uuid.UUID) ([]models.MatchRow, error)
	deleteFn              func(ctx context.Context, id uuid.UUID) error
	lastCommunityID       string
	lastCommunityFromDate string
}

func (f *fakeMatchRepo) Create(ctx context.Context, match *models.Match) error {
	if f.createFn == nil {
		return nil
	}
	return f.createFn(ctx, match)
}

func (f *fakeMatchRepo) GetRowByID(ctx context.Context, id uuid.UUID) (*models.MatchRow, error) {
	return f.getRowByIDFn(ctx, id)
}

func (f *fakeMatchRepo) ListRowsByCommunityOnOrAfter(ctx context.Context, communityID string, fromDate string) ([]models.MatchRow, error) {
	f.lastCommunityID = communityID
	f.lastCommunityFromDate = fromDate
	return f.listByCommunityFn(ctx, communityID, fromDate)
}

func (f *fakeMatchRepo) ListRowsByPoster(ctx context.Context, posterID uuid.UUID) ([]models.MatchRow, error) {
	return f.listByPosterFn(ctx, posterID)
}

func (f *fakeMatchRepo) ListRowsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.MatchRow, error) {
	return f.listByIDsFn(ctx, ids)
}

func (f *fakeMatchRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id)
}

type fakeSportRepo struct {
	getByIDFn       func(ctx context.Context, id int) (*models.Sport, error)
	getAllFn        func(ctx context.Context) ([]models.Sport, error)
	getNamesByIDsFn func(ctx context.Context, ids []int) (map[int]string, error)
}

func (f *fakeSportRepo) GetByID(ctx context.Context, id int) (*models.Sport, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeSportRepo) GetAll(ctx context.Context) ([]models.Sport, error) {
	return f.getAllFn(ctx)
}

func (f *fakeSportRepo) GetNamesByIDs(ctx context.Context, ids []int) (map[int]string, error) {
	return f.getNamesByIDsFn(ctx, ids)
}

type fakeProfileRepo struct {
	createFn          func(ctx context.Context, profile *models.Profile) error
	getByIDFn         func(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	getByEmailFn      func(ctx context.Context, email string) (*models.Profile, error)
	updateFn          func(ctx context.Context, profile *models.Profile) error
	updateAvatarKeyFn func(ctx context.Context, id uuid.UUID, key *string) error
	getNamesByIDsFn   func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	listByTeamIDFn    func(ctx context.Context, teamID uuid.UUID) ([]models.Profile, error)
	setTeamIDFn       func(ctx context.Context, id uuid.UUID, teamID *uuid.UUID) error
}

func (f *fakeProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	return f.createFn(ctx, profile)
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return f.getByEmailFn(ctx, email)
}

func (f *fakeProfileRepo) Update(ctx context.Context, profile *models.Profile) error {
	return f.updateFn(ctx, profile)
}

func (f *fakeProfileRepo) UpdateAvatarKey(ctx context.Context, id uuid.UUID, key *string) error {
	return f.updateAvatarKeyFn(ctx, id, key)
}

func (f *fakeProfileRepo) GetNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	return f.getNamesByIDsFn(ctx, ids)
}

func (f *fakeProfileRepo) ListByTeamID(ctx context.Context, teamID uuid.UUID) ([]models.Profile, error) {
	return f.listByTeamIDFn(ctx, teamID)
}

func (f *fakeProfileRepo) SetTeamID(ctx context.Context, id uuid.UUID, teamID *uuid.UUID) error {
	return f.setTeamIDFn(ctx, id, teamID)
}

type fakeCommunityRepo struct {
	getByIDFn       func(ctx context.Context, id string) (*models.SportCommunity, error)
	listByCollegeFn func(ctx context.Context, collegeID string) ([]models.SportCommunity, error)
}

func (f *fakeCommunityRepo) GetByID(ctx context.Context, id string) (*models.SportCommunity, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeCommunityRepo) ListByCollege(ctx context.Context, collegeID string) ([]models.SportCommunity, error) {
	return f.listByCollegeFn(ctx, collegeID)
}

type fakeRSVPRepo struct {
	upsertFn            func(ctx context.Context, rsvp *models.RSVP) error
	deleteFn            func(ctx context.Context, matchID, userID uuid.UUID) error
	countGoingFn        func(ctx context.Context, matchID uuid.UUID) (int, error)
	listGoingByMatchFn  func(ctx context.Context, matchID uuid.UUID) ([]models.RSVP, error)
	listGoingMatchIDsFn func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

func (f *fakeRSVPRepo) Upsert(ctx context.Context, rsvp *models.RSVP) error {
	if f.upsertFn == nil {
		return nil
	}
	return f.upsertFn(ctx, rsvp)
}

func (f *fakeRSVPRepo) Delete(ctx context.Context, matchID, userID uuid.UUID) error {
	return f.deleteFn(ctx, matchID, userID)
}

func (f *fakeRSVPRepo) CountGoing(ctx context.Context, matchID uuid.UUID) (int, error) {
	if f.countGoingFn == nil {
		return 0, nil
	}
	return f.countGoingFn(ctx, matchID)
}

func (f *fakeRSVPRepo) ListGoingByMatch(ctx context.Context, matchID uuid.UUID) ([]models.RSVP, error) {
	return f.listGoingByMatchFn(ctx, matchID)
}

func (f *fakeRSVPRepo) ListGoingMatchIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if f.listGoingMatchIDsFn == nil {
		return nil, nil
	}
	return f.listGoingMatchIDsFn(ctx, userID)
}

type fakeFriendRepo struct {
	createFn        func(ctx context.Context, friend *models.Friend) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*models.Friend, error)
	getBetweenFn    func(ctx context.Context, a, b uuid.UUID) (*models.Friend, error)
	updateStatusFn  func(ctx context.Context, id uuid.UUID, status models.FriendStatus) error
	deleteBetweenFn func(ctx context.Context, a, b uuid.UUID) error
	areFriendsFn    func(ctx context.Context, a, b uuid.UUID) (bool, error)
	listAcceptedFn  func(ctx context.Context, userID uuid.UUID) ([]models.Friend, error)
	listPendingFn   func(ctx context.Context, userID uuid.UUID) ([]models.Friend, error)
}

func (f *fakeFriendRepo) Create(ctx context.Context, friend *models.Friend) error {
	return f.createFn(ctx, friend)
}

func (f *fakeFriendRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Friend, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeFriendRepo) GetBetween(ctx context.Context, a, b uuid.UUID) (*models.Friend, error) {
	return f.getBetweenFn(ctx, a, b)
}

func (f *fakeFriendRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.FriendStatus) error {
	return f.updateStatusFn(ctx, id, status)
}

func (f *fakeFriendRepo) DeleteBetween(ctx context.Context, a, b uuid.UUID) error {
	return f.deleteBetweenFn(ctx, a, b)
}

func (f *fakeFriendRepo) AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error) {
	if f.areFriendsFn == nil {
		return false, nil
	}
	return f.areFriendsFn(ctx, a, b)
}

func (f *fakeFriendRepo) ListAcceptedByUser(ctx context.Context, userID uuid.UUID) ([]models.Friend, error) {
	return f.listAcceptedFn(ctx, userID)
}

func (f *fakeFriendRepo) ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]models.Friend, error) {
	return f.listPendingFn(ctx, userID)
}

type fakeTeamRepo struct {
	createFn        func(ctx context.Context, team *models.Team) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*models.Team, error)
	listByCollegeFn func(ctx context.Context, collegeID string) ([]models.Team, error)
	deleteFn        func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	return f.createFn(ctx, team)
}

func (f *fakeTeamRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeTeamRepo) ListByCollege(ctx context.Context, collegeID string) ([]models.Team, error) {
	return f.listByCollegeFn(ctx, collegeID)
}

func (f *fakeTeamRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return f.deleteFn(ctx, id)
}

type fakeMatchRequestRepo struct {
	createFn              func(ctx context.Context, request *models.MatchRequest) error
	getByIDFn             func(ctx context.Context, id uuid.UUID) (*models.MatchRequest, error)
	updateStatusFn        func(ctx context.Context, id uuid.UUID, status models.MatchRequestStatus) error
	listPendingForTeamFn  func(ctx context.Context, teamID uuid.UUID) ([]models.MatchRequest, error)
	declineStalePendingFn func(ctx context.Context, olderThanDays int) (int64, error)
}

func (f *fakeMatchRequestRepo) Create(ctx context.Context, request *models.MatchRequest) error {
	return f.createFn(ctx, request)
}

func (f *fakeMatchRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MatchRequest, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeMatchRequestRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.MatchRequestStatus) error {
	return f.updateStatusFn(ctx, id, status)
}

func (f *fakeMatchRequestRepo) ListPendingForTeam(ctx context.Context, teamID uuid.UUID) ([]models.MatchRequest, error) {
	return f.listPendingForTeamFn(ctx, teamID)
}

func (f *fakeMatchRequestRepo) DeclineStalePending(ctx context.Context, olderThanDays int) (int64, error) {
	return f.declineStalePendingFn(ctx, olderThanDays)
}
