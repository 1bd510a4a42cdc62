package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/pickup-server/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileEmailConflict = errors.New("profile email conflict")
	ErrProfileTeamInvalid   = errors.New("profile team conflict or invalid")
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	UpdateAvatarKey(ctx context.Context, id uuid.UUID, key *string) error
	GetNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	ListByTeamID(ctx context.Context, teamID uuid.UUID) ([]models.Profile, error)
	SetTeamID(ctx context.Context, id uuid.UUID, teamID *uuid.UUID) error
}

type postgresProfileRepository struct {
	db *sql.DB
}

func NewPostgresProfileRepository(db *sql.DB) ProfileRepository {
	return &postgresProfileRepository{db: db}
}

const profileColumns = `id, name, email, password_hash, gender, age, college_id, skill_level, sport_preferences, team_id, profile_pic, created_at, updated_at`

func (r *postgresProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (id, name, email, password_hash, gender, age, college_id, skill_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		profile.ID,
		profile.Name,
		profile.Email,
		profile.PasswordHash,
		profile.Gender,
		profile.Age,
		profile.CollegeID,
		profile.SkillLevel,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "profiles_email_key" {
				return ErrProfileEmailConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return r.scanProfileRow(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	return r.scanProfileRow(r.db.QueryRowContext(ctx, query, email))
}

func (r *postgresProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE profiles SET
			name = $1,
			gender = $2,
			age = $3,
			college_id = $4,
			skill_level = $5,
			sport_preferences = $6,
			updated_at = now()
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		profile.Name,
		profile.Gender,
		profile.Age,
		profile.CollegeID,
		profile.SkillLevel,
		pq.Array(profile.SportPreferences),
		profile.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrProfileNotFound)
}

func (r *postgresProfileRepository) UpdateAvatarKey(ctx context.Context, id uuid.UUID, key *string) error {
	query := `UPDATE profiles SET profile_pic = $1, updated_at = now() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, key, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrProfileNotFound)
}

// GetNamesByIDs resolves display names for a set of distinct profile ids in
// a single query. Ids absent from the table are simply absent from the map.
func (r *postgresProfileRepository) GetNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	query := `SELECT id, name FROM profiles WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var name string
		if scanErr := rows.Scan(&id, &name); scanErr != nil {
			return nil, scanErr
		}
		names[id] = name
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

func (r *postgresProfileRepository) ListByTeamID(ctx context.Context, teamID uuid.UUID) ([]models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE team_id = $1 ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]models.Profile, 0)
	for rows.Next() {
		profile, scanErr := scanProfile(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		profiles = append(profiles, *profile)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *postgresProfileRepository) SetTeamID(ctx context.Context, id uuid.UUID, teamID *uuid.UUID) error {
	query := `UPDATE profiles SET team_id = $1, updated_at = now() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, teamID, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrProfileTeamInvalid
		}
		return err
	}
	return checkAffectedRows(result, ErrProfileNotFound)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	profile := &models.Profile{}
	err := row.Scan(
		&profile.ID,
		&profile.Name,
		&profile.Email,
		&profile.PasswordHash,
		&profile.Gender,
		&profile.Age,
		&profile.CollegeID,
		&profile.SkillLevel,
		pq.Array(&profile.SportPreferences),
		&profile.TeamID,
		&profile.AvatarKey,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *postgresProfileRepository) scanProfileRow(row *sql.Row) (*models.Profile, error) {
	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}
