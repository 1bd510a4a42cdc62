package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/pickup-server/models"
)

var ErrCommunityNotFound = errors.New("sport community not found")

type CommunityRepository interface {
	GetByID(ctx context.Context, id string) (*models.SportCommunity, error)
	ListByCollege(ctx context.Context, collegeID string) ([]models.SportCommunity, error)
}

type postgresCommunityRepository struct {
	db *sql.DB
}

func NewPostgresCommunityRepository(db *sql.DB) CommunityRepository {
	return &postgresCommunityRepository{db: db}
}

func (r *postgresCommunityRepository) GetByID(ctx context.Context, id string) (*models.SportCommunity, error) {
	query := `SELECT id, college_id, sport_id, name FROM sport_communities WHERE id = $1`

	var community models.SportCommunity
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&community.ID,
		&community.CollegeID,
		&community.SportID,
		&community.Name,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommunityNotFound
		}
		return nil, err
	}
	return &community, nil
}

func (r *postgresCommunityRepository) ListByCollege(ctx context.Context, collegeID string) ([]models.SportCommunity, error) {
	query := `
		SELECT id, college_id, sport_id, name
		FROM sport_communities
		WHERE college_id = $1
		ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, collegeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	communities := make([]models.SportCommunity, 0)
	for rows.Next() {
		var community models.SportCommunity
		if scanErr := rows.Scan(&community.ID, &community.CollegeID, &community.SportID, &community.Name); scanErr != nil {
			return nil, scanErr
		}
		communities = append(communities, community)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return communities, nil
}
