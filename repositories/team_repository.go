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
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name conflict")
	ErrTeamSportInvalid = errors.New("team sport conflict or invalid")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
	ListByCollege(ctx context.Context, collegeID string) ([]models.Team, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (id, name, sport_id, college_id, captain_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		team.ID,
		team.Name,
		team.SportID,
		team.CollegeID,
		team.CaptainID,
	).Scan(&team.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				if pqErr.Constraint == "teams_name_key" {
					return ErrTeamNameConflict
				}
			case "23503":
				if pqErr.Constraint == "teams_sport_id_fkey" {
					return ErrTeamSportInvalid
				}
			}
		}
		return err
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	query := `SELECT id, name, sport_id, college_id, captain_id, created_at FROM teams WHERE id = $1`

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.SportID,
		&team.CollegeID,
		&team.CaptainID,
		&team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (r *postgresTeamRepository) ListByCollege(ctx context.Context, collegeID string) ([]models.Team, error) {
	query := `
		SELECT id, name, sport_id, college_id, captain_id, created_at
		FROM teams
		WHERE college_id = $1
		ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, collegeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var team models.Team
		scanErr := rows.Scan(
			&team.ID,
			&team.Name,
			&team.SportID,
			&team.CollegeID,
			&team.CaptainID,
			&team.CreatedAt,
		)
		if scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM teams WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
