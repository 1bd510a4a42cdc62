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
	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchSportInvalid  = errors.New("match sport conflict or invalid")
	ErrMatchPosterInvalid = errors.New("match poster conflict or invalid")
)

// MatchRepository returns raw MatchRow sets; decoding is the service
// layer's job so there is exactly one parse path for match rows.
type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetRowByID(ctx context.Context, id uuid.UUID) (*models.MatchRow, error)
	ListRowsByCommunityOnOrAfter(ctx context.Context, communityID string, fromDate string) ([]models.MatchRow, error)
	ListRowsByPoster(ctx context.Context, posterID uuid.UUID) ([]models.MatchRow, error)
	ListRowsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.MatchRow, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

// to_char keeps the date/time wire formats exact regardless of driver
// scanning behavior for DATE and TIME columns.
const matchRowColumns = `
	id, match_type, community_id, venue,
	to_char(match_date, 'YYYY-MM-DD'),
	to_char(match_time, 'HH24:MI:SS'),
	sport_id, skill_level, players_needed, posted_by_user_id, created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches
			(id, match_type, community_id, venue, match_date, match_time, sport_id, skill_level, players_needed, posted_by_user_id)
		VALUES ($1, $2, $3, $4, $5::date, $6::time, $7, $8, $9, $10)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		match.ID,
		match.MatchType,
		match.CommunityID,
		match.Venue,
		match.DateString(),
		match.TimeString(),
		match.SportID,
		match.SkillLevel,
		match.PlayersNeeded,
		match.PostedByUserID,
	).Scan(&match.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "matches_sport_id_fkey":
				return ErrMatchSportInvalid
			case "matches_posted_by_user_id_fkey":
				return ErrMatchPosterInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresMatchRepository) GetRowByID(ctx context.Context, id uuid.UUID) (*models.MatchRow, error) {
	query := `SELECT ` + matchRowColumns + ` FROM matches WHERE id = $1`

	row := models.MatchRow{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&row.ID,
		&row.MatchType,
		&row.CommunityID,
		&row.Venue,
		&row.MatchDate,
		&row.MatchTime,
		&row.SportID,
		&row.SkillLevel,
		&row.PlayersNeeded,
		&row.PostedByUserID,
		&row.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *postgresMatchRepository) ListRowsByCommunityOnOrAfter(ctx context.Context, communityID string, fromDate string) ([]models.MatchRow, error) {
	query := `
		SELECT ` + matchRowColumns + `
		FROM matches
		WHERE community_id = $1 AND match_date >= $2::date
		ORDER BY match_date ASC, match_time ASC`
	return r.listRows(ctx, query, communityID, fromDate)
}

func (r *postgresMatchRepository) ListRowsByPoster(ctx context.Context, posterID uuid.UUID) ([]models.MatchRow, error) {
	query := `
		SELECT ` + matchRowColumns + `
		FROM matches
		WHERE posted_by_user_id = $1
		ORDER BY match_date ASC, match_time ASC`
	return r.listRows(ctx, query, posterID)
}

func (r *postgresMatchRepository) ListRowsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.MatchRow, error) {
	if len(ids) == 0 {
		return []models.MatchRow{}, nil
	}
	query := `
		SELECT ` + matchRowColumns + `
		FROM matches
		WHERE id = ANY($1)
		ORDER BY match_date ASC, match_time ASC`
	return r.listRows(ctx, query, pq.Array(ids))
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM matches WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) listRows(ctx context.Context, query string, args ...interface{}) ([]models.MatchRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matchRows := make([]models.MatchRow, 0)
	for rows.Next() {
		var row models.MatchRow
		scanErr := rows.Scan(
			&row.ID,
			&row.MatchType,
			&row.CommunityID,
			&row.Venue,
			&row.MatchDate,
			&row.MatchTime,
			&row.SportID,
			&row.SkillLevel,
			&row.PlayersNeeded,
			&row.PostedByUserID,
			&row.CreatedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		matchRows = append(matchRows, row)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matchRows, nil
}
