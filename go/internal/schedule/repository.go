package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mcdev12/gridiron/go/internal/models"
)

// Repository reads NFL schedule and player-status data. External feeds write
// these tables; the engine only queries them for eligibility checks.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// KickoffTime returns the kickoff for the NFL team's game in (year, week),
// or nil during a bye week.
func (r *Repository) KickoffTime(ctx context.Context, nflTeam string, year, week int) (*time.Time, error) {
	var kickoff time.Time
	err := r.db.GetContext(ctx, &kickoff, `
		SELECT kickoff FROM games
		WHERE year = $1 AND week = $2 AND (home_team = $3 OR away_team = $3)`,
		year, week, nflTeam)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kickoff time: %w", err)
	}
	return &kickoff, nil
}

// PriorWeekStatus returns the player's participation outcome for the given
// week, or nil when no game status was recorded.
func (r *Repository) PriorWeekStatus(ctx context.Context, pid uuid.UUID, year, week int) (*models.GameStatus, error) {
	var status models.GameStatus
	err := r.db.GetContext(ctx, &status, `
		SELECT player_id, year, week, inactive, ruled_out
		FROM game_statuses
		WHERE player_id = $1 AND year = $2 AND week = $3`, pid, year, week)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prior week status: %w", err)
	}
	return &status, nil
}

// PracticeReports returns the player's practice report for the week, most
// recent day first.
func (r *Repository) PracticeReports(ctx context.Context, pid uuid.UUID, year, week int) ([]models.PracticeReport, error) {
	var reports []models.PracticeReport
	err := r.db.SelectContext(ctx, &reports, `
		SELECT player_id, year, week, day, status
		FROM practice_reports
		WHERE player_id = $1 AND year = $2 AND week = $3
		ORDER BY day DESC`, pid, year, week)
	if err != nil {
		return nil, fmt.Errorf("failed to get practice reports: %w", err)
	}
	return reports, nil
}
