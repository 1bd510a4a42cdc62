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
	ErrMatchRequestNotFound    = errors.New("match request not found")
	ErrMatchRequestTeamInvalid = errors.New("match request team conflict or invalid")
)

type MatchRequestRepository interface {
	Create(ctx context.Context, request *models.MatchRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MatchRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.MatchRequestStatus) error
	ListPendingForTeam(ctx context.Context, teamID uuid.UUID) ([]models.MatchRequest, error)
	DeclineStalePending(ctx context.Context, olderThanDays int) (int64, error)
}

type postgresMatchRequestRepository struct {
	db *sql.DB
}

func NewPostgresMatchRequestRepository(db *sql.DB) MatchRequestRepository {
	return &postgresMatchRequestRepository{db: db}
}

const matchRequestColumns = `
	id, challenger_team_id, opponent_team_id, sport_id, venue,
	to_char(match_date, 'YYYY-MM-DD'),
	to_char(match_time, 'HH24:MI:SS'),
	status, created_by, created_at`

func (r *postgresMatchRequestRepository) Create(ctx context.Context, request *models.MatchRequest) error {
	query := `
		INSERT INTO match_requests
			(id, challenger_team_id, opponent_team_id, sport_id, venue, match_date, match_time, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7::time, $8, $9)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		request.ID,
		request.ChallengerTeamID,
		request.OpponentTeamID,
		request.SportID,
		request.Venue,
		request.MatchDate,
		request.MatchTime,
		request.Status,
		request.CreatedBy,
	).Scan(&request.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrMatchRequestTeamInvalid
		}
		return err
	}
	return nil
}

func (r *postgresMatchRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MatchRequest, error) {
	query := `SELECT ` + matchRequestColumns + ` FROM match_requests WHERE id = $1`

	request := &models.MatchRequest{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&request.ID,
		&request.ChallengerTeamID,
		&request.OpponentTeamID,
		&request.SportID,
		&request.Venue,
		&request.MatchDate,
		&request.MatchTime,
		&request.Status,
		&request.CreatedBy,
		&request.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchRequestNotFound
		}
		return nil, err
	}
	return request, nil
}

func (r *postgresMatchRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.MatchRequestStatus) error {
	query := `UPDATE match_requests SET status = $1 WHERE id = $2 AND status = 'pending'`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchRequestNotFound)
}

func (r *postgresMatchRequestRepository) ListPendingForTeam(ctx context.Context, teamID uuid.UUID) ([]models.MatchRequest, error) {
	query := `
		SELECT ` + matchRequestColumns + `
		FROM match_requests
		WHERE opponent_team_id = $1 AND status = 'pending'
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]models.MatchRequest, 0)
	for rows.Next() {
		var request models.MatchRequest
		scanErr := rows.Scan(
			&request.ID,
			&request.ChallengerTeamID,
			&request.OpponentTeamID,
			&request.SportID,
			&request.Venue,
			&request.MatchDate,
			&request.MatchTime,
			&request.Status,
			&request.CreatedBy,
			&request.CreatedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		requests = append(requests, request)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

// DeclineStalePending expires pending challenges whose proposed date has
// passed by more than olderThanDays. Used by the background sweeper.
func (r *postgresMatchRequestRepository) DeclineStalePending(ctx context.Context, olderThanDays int) (int64, error) {
	query := `
		UPDATE match_requests
		SET status = 'declined'
		WHERE status = 'pending' AND match_date < (CURRENT_DATE - $1 * INTERVAL '1 day')`

	result, err := r.db.ExecContext(ctx, query, olderThanDays)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
