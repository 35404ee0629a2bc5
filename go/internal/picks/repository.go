package picks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mcdev12/gridiron/go/internal/models"
)

// Repository persists conditional draft picks awarded as compensation.
// Adapted from the draft pick ledger; the engine only inserts, the external
// pick-numbering pass fills in pick numbers later.
type Repository struct {
	db sqlx.ExtContext
}

func NewRepository(db sqlx.ExtContext) *Repository {
	return &Repository{db: db}
}

// InsertConditionalPick records a compensation pick. Inserted exactly once
// per triggering event.
func (r *Repository) InsertConditionalPick(ctx context.Context, pick models.ConditionalPick) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO draft_picks (id, team_id, league_id, original_team_id, round, year, comp, pick)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		pick.ID, pick.TeamID, pick.LeagueID, pick.OriginalTeamID,
		pick.Round, pick.Year, pick.Comp, pick.PickNumber)
	if err != nil {
		return fmt.Errorf("failed to insert conditional pick: %w", err)
	}
	return nil
}

// GetPicksByTeam returns a team's picks for a draft year, numbered first.
func (r *Repository) GetPicksByTeam(ctx context.Context, tid uuid.UUID, year int) ([]models.ConditionalPick, error) {
	var picks []models.ConditionalPick
	err := sqlx.SelectContext(ctx, r.db, &picks, `
		SELECT id, team_id, league_id, original_team_id, round, year, comp, pick
		FROM draft_picks
		WHERE team_id = $1 AND year = $2
		ORDER BY pick NULLS LAST, round`, tid, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get picks by team: %w", err)
	}
	return picks, nil
}
