package teams

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mcdev12/gridiron/go/internal/models"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetTeam retrieves a fantasy team by ID.
func (r *Repository) GetTeam(ctx context.Context, tid uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := r.db.GetContext(ctx, &team, `
		SELECT id, league_id, name, waiver_order, cap_penalty
		FROM teams WHERE id = $1`, tid)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return &team, nil
}

// GetTeamsByLeague retrieves every team in a league, waiver order first.
func (r *Repository) GetTeamsByLeague(ctx context.Context, lid uuid.UUID) ([]models.Team, error) {
	var teams []models.Team
	err := r.db.SelectContext(ctx, &teams, `
		SELECT id, league_id, name, waiver_order, cap_penalty
		FROM teams WHERE league_id = $1
		ORDER BY waiver_order`, lid)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams by league: %w", err)
	}
	return teams, nil
}
