package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/pickup-server/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrFriendNotFound    = errors.New("friendship not found")
	ErrFriendConflict    = errors.New("friendship already exists")
	ErrFriendUserInvalid = errors.New("friendship user conflict or invalid")
)

type FriendRepository interface {
	Create(ctx context.Context, friend *models.Friend) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Friend, error)
	GetBetween(ctx context.Context, a, b uuid.UUID) (*models.Friend, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.FriendStatus) error
	DeleteBetween(ctx context.Context, a, b uuid.UUID) error
	AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error)
	ListAcceptedByUser(ctx context.Context, userID uuid.UUID) ([]models.Friend, error)
	ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]models.Friend, error)
}

type postgresFriendRepository struct {
	db *sql.DB
}

func NewPostgresFriendRepository(db *sql.DB) FriendRepository {
	return &postgresFriendRepository{db: db}
}

const friendColumns = `id, user_id, friend_id, status, created_at, updated_at`

func (r *postgresFriendRepository) Create(ctx context.Context, friend *models.Friend) error {
	query := `
		INSERT INTO friends (id, user_id, friend_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		friend.ID,
		friend.UserID,
		friend.FriendID,
		friend.Status,
	).Scan(&friend.CreatedAt, &friend.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrFriendConflict
			case "23503":
				return ErrFriendUserInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresFriendRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Friend, error) {
	query := `SELECT ` + friendColumns + ` FROM friends WHERE id = $1`
	return r.scanFriend(ctx, query, id)
}

// GetBetween finds the edge between two users regardless of which side was
// stored as user_id.
func (r *postgresFriendRepository) GetBetween(ctx context.Context, a, b uuid.UUID) (*models.Friend, error) {
	query := `
		SELECT ` + friendColumns + `
		FROM friends
		WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)`
	return r.scanFriend(ctx, query, a, b)
}

func (r *postgresFriendRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.FriendStatus) error {
	query := `UPDATE friends SET status = $1, updated_at = now() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrFriendNotFound)
}

func (r *postgresFriendRepository) DeleteBetween(ctx context.Context, a, b uuid.UUID) error {
	query := `
		DELETE FROM friends
		WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)`
	result, err := r.db.ExecContext(ctx, query, a, b)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrFriendNotFound)
}

// AreFriends reports whether an accepted edge exists between a and b,
// checking both storage directions.
func (r *postgresFriendRepository) AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM friends
			WHERE status = 'accepted'
			  AND ((user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1))
		)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, a, b).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresFriendRepository) ListAcceptedByUser(ctx context.Context, userID uuid.UUID) ([]models.Friend, error) {
	query := `
		SELECT ` + friendColumns + `
		FROM friends
		WHERE status = 'accepted' AND (user_id = $1 OR friend_id = $1)
		ORDER BY updated_at DESC`
	return r.listFriends(ctx, query, userID)
}

func (r *postgresFriendRepository) ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]models.Friend, error) {
	query := `
		SELECT ` + friendColumns + `
		FROM friends
		WHERE status = 'pending' AND friend_id = $1
		ORDER BY created_at DESC`
	return r.listFriends(ctx, query, userID)
}

func (r *postgresFriendRepository) scanFriend(ctx context.Context, query string, args ...interface{}) (*models.Friend, error) {
	friend := &models.Friend{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&friend.ID,
		&friend.UserID,
		&friend.FriendID,
		&friend.Status,
		&friend.CreatedAt,
		&friend.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFriendNotFound
		}
		return nil, err
	}
	return friend, nil
}

func (r *postgresFriendRepository) listFriends(ctx context.Context, query string, args ...interface{}) ([]models.Friend, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	friends := make([]models.Friend, 0)
	for rows.Next() {
		var friend models.Friend
		scanErr := rows.Scan(
			&friend.ID,
			&friend.UserID,
			&friend.FriendID,
			&friend.Status,
			&friend.CreatedAt,
			&friend.UpdatedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		friends = append(friends, friend)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return friends, nil
}
