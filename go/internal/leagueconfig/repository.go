package leagueconfig

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mcdev12/gridiron/go/internal/models"
)

// Repository provides read-only access to per-league rules. The engine never
// writes league configuration; the commissioner surface owns it.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetLeague loads a league's rule set, including per-position limits.
func (r *Repository) GetLeague(ctx context.Context, lid uuid.UUID) (*models.LeagueConfig, error) {
	var cfg models.LeagueConfig
	err := r.db.GetContext(ctx, &cfg, `
		SELECT id, name, cap, bench_limit, practice_squad_limit,
			reserve_short_term_limit, reserve_cov_limit,
			current_year, current_week, is_regular_season, is_offseason,
			sanctuary_start, sanctuary_end, offseason_poach_cutoff,
			free_agency_live_at, draft_start, processing_hour
		FROM leagues
		WHERE id = $1`, lid)
	if err != nil {
		return nil, fmt.Errorf("failed to get league: %w", err)
	}

	rows, err := r.db.QueryxContext(ctx, `
		SELECT position, max_count FROM league_position_limits
		WHERE league_id = $1`, lid)
	if err != nil {
		return nil, fmt.Errorf("failed to get league position limits: %w", err)
	}
	defer rows.Close()

	cfg.PositionLimits = make(map[models.Position]int)
	for rows.Next() {
		var pos models.Position
		var max int
		if err := rows.Scan(&pos, &max); err != nil {
			return nil, fmt.Errorf("failed to scan position limit: %w", err)
		}
		cfg.PositionLimits[pos] = max
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read position limits: %w", err)
	}

	return &cfg, nil
}

// AdvanceWeek moves the league's current week forward by one. Called by the
// weekly scheduler after roster copy-forward completes.
func (r *Repository) AdvanceWeek(ctx context.Context, lid uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE leagues SET current_week = current_week + 1 WHERE id = $1`, lid)
	if err != nil {
		return fmt.Errorf("failed to advance league week: %w", err)
	}
	return nil
}

// ListActiveLeagueIDs returns the leagues the scheduler should advance.
func (r *Repository) ListActiveLeagueIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids, `
		SELECT id FROM leagues WHERE is_offseason = false`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active leagues: %w", err)
	}
	return ids, nil
}
