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
	ErrRSVPNotFound     = errors.New("rsvp not found")
	ErrRSVPMatchInvalid = errors.New("rsvp match conflict or invalid")
)

type RSVPRepository interface {
	Upsert(ctx context.Context, rsvp *models.RSVP) error
	Delete(ctx context.Context, matchID, userID uuid.UUID) error
	CountGoing(ctx context.Context, matchID uuid.UUID) (int, error)
	ListGoingByMatch(ctx context.Context, matchID uuid.UUID) ([]models.RSVP, error)
	ListGoingMatchIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type postgresRSVPRepository struct {
	db *sql.DB
}

func NewPostgresRSVPRepository(db *sql.DB) RSVPRepository {
	return &postgresRSVPRepository{db: db}
}

// Upsert applies last-write-wins semantics for repeated joins/leaves by the
// same user on the same match.
func (r *postgresRSVPRepository) Upsert(ctx context.Context, rsvp *models.RSVP) error {
	query := `
		INSERT INTO match_rsvps (id, match_id, user_id, rsvp_status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (match_id, user_id)
		DO UPDATE SET rsvp_status = EXCLUDED.rsvp_status, rsvp_at = now()
		RETURNING id, rsvp_at`

	err := r.db.QueryRowContext(ctx, query,
		rsvp.ID,
		rsvp.MatchID,
		rsvp.UserID,
		rsvp.Status,
	).Scan(&rsvp.ID, &rsvp.RSVPAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrRSVPMatchInvalid
		}
		return err
	}
	return nil
}

func (r *postgresRSVPRepository) Delete(ctx context.Context, matchID, userID uuid.UUID) error {
	query := `DELETE FROM match_rsvps WHERE match_id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, matchID, userID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRSVPNotFound)
}

func (r *postgresRSVPRepository) CountGoing(ctx context.Context, matchID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM match_rsvps WHERE match_id = $1 AND rsvp_status = 'going'`

	var count int
	if err := r.db.QueryRowContext(ctx, query, matchID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *postgresRSVPRepository) ListGoingByMatch(ctx context.Context, matchID uuid.UUID) ([]models.RSVP, error) {
	query := `
		SELECT id, match_id, user_id, rsvp_status, rsvp_at
		FROM match_rsvps
		WHERE match_id = $1 AND rsvp_status = 'going'
		ORDER BY rsvp_at ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rsvps := make([]models.RSVP, 0)
	for rows.Next() {
		var rsvp models.RSVP
		if scanErr := rows.Scan(&rsvp.ID, &rsvp.MatchID, &rsvp.UserID, &rsvp.Status, &rsvp.RSVPAt); scanErr != nil {
			return nil, scanErr
		}
		rsvps = append(rsvps, rsvp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return rsvps, nil
}

func (r *postgresRSVPRepository) ListGoingMatchIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT match_id FROM match_rsvps WHERE user_id = $1 AND rsvp_status = 'going'`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, scanErr
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
