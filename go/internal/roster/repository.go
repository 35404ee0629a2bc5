package roster

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mcdev12/gridiron/go/internal/models"
)

// ErrNotFound is returned when no roster snapshot exists for the
// requested (team, year, week).
var ErrNotFound = errors.New("roster not found")

type Repository struct {
	db sqlx.ExtContext
}

func NewRepository(db sqlx.ExtContext) *Repository {
	return &Repository{db: db}
}

const rosterColumns = `r.id, r.league_id, r.team_id, r.player_id, r.year, r.week,
	r.slot, r.tag, r.extensions, r.value, p.position, r.acquired_at`

// GetRosterRows loads the snapshot rows for one team-week, joined with the
// player directory for positions.
func (r *Repository) GetRosterRows(ctx context.Context, tid uuid.UUID, year, week int) ([]models.RosterRow, error) {
	var rows []models.RosterRow
	err := sqlx.SelectContext(ctx, r.db, &rows, `
		SELECT `+rosterColumns+`
		FROM rosters r
		JOIN players p ON p.id = r.player_id
		WHERE r.team_id = $1 AND r.year = $2 AND r.week = $3
		ORDER BY r.acquired_at, r.id`, tid, year, week)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows, nil
}

// InsertRosterRow inserts a snapshot row for one week.
func (r *Repository) InsertRosterRow(ctx context.Context, row models.RosterRow) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO rosters (id, league_id, team_id, player_id, year, week, slot, tag, extensions, value, acquired_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		row.ID, row.LeagueID, row.TeamID, row.PlayerID, row.Year, row.Week,
		row.Slot, row.Tag, row.Extensions, row.Value, row.AcquiredAt)
	if err != nil {
		return fmt.Errorf("failed to insert roster row: %w", err)
	}
	return nil
}

// MaterializedWeeks lists the distinct weeks at or after fromWeek that any
// team in the league has snapshot rows for.
func (r *Repository) MaterializedWeeks(ctx context.Context, lid uuid.UUID, year, fromWeek int) ([]int, error) {
	var weeks []int
	err := sqlx.SelectContext(ctx, r.db, &weeks, `
		SELECT DISTINCT week FROM rosters
		WHERE league_id = $1 AND year = $2 AND week >= $3
		ORDER BY week`, lid, year, fromWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to list materialized weeks: %w", err)
	}
	return weeks, nil
}

// FindRowByPlayer locates a player's roster row for one league-week across
// teams, or nil when the player is a free agent that week.
func (r *Repository) FindRowByPlayer(ctx context.Context, lid, pid uuid.UUID, year, week int) (*models.RosterRow, error) {
	var row models.RosterRow
	err := sqlx.GetContext(ctx, r.db, &row, `
		SELECT `+rosterColumns+`
		FROM rosters r
		JOIN players p ON p.id = r.player_id
		WHERE r.league_id = $1 AND r.player_id = $2 AND r.year = $3 AND r.week = $4`,
		lid, pid, year, week)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find roster row by player: %w", err)
	}
	return &row, nil
}

// DeletePlayerFromWeek removes a player from every roster-week of the team
// with week >= fromWeek in the given year.
func (r *Repository) DeletePlayerFromWeek(ctx context.Context, tid, pid uuid.UUID, year, fromWeek int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM rosters
		WHERE team_id = $1 AND player_id = $2 AND year = $3 AND week >= $4`,
		tid, pid, year, fromWeek)
	if err != nil {
		return fmt.Errorf("failed to delete player from roster weeks: %w", err)
	}
	return nil
}

// UpdateSlotFromWeek moves a player to a new slot for every roster-week of
// the team with week >= fromWeek in the given year.
func (r *Repository) UpdateSlotFromWeek(ctx context.Context, tid, pid uuid.UUID, year, fromWeek int, slot models.Slot) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE rosters SET slot = $5
		WHERE team_id = $1 AND player_id = $2 AND year = $3 AND week >= $4`,
		tid, pid, year, fromWeek, slot)
	if err != nil {
		return fmt.Errorf("failed to update roster slot: %w", err)
	}
	return nil
}

// UpdateValueFromWeek sets a player's salary value for every roster-week of
// the team with week >= fromWeek in the given year.
func (r *Repository) UpdateValueFromWeek(ctx context.Context, tid, pid uuid.UUID, year, fromWeek, value int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE rosters SET value = $5
		WHERE team_id = $1 AND player_id = $2 AND year = $3 AND week >= $4`,
		tid, pid, year, fromWeek, value)
	if err != nil {
		return fmt.Errorf("failed to update roster value: %w", err)
	}
	return nil
}

// PlayerRosterWeeks returns every roster-week the player has spent in the
// league, oldest first. Used by the super-priority tenure and usage checks.
func (r *Repository) PlayerRosterWeeks(ctx context.Context, lid, pid uuid.UUID) ([]models.PlayerRosterWeek, error) {
	var weeks []models.PlayerRosterWeek
	err := sqlx.SelectContext(ctx, r.db, &weeks, `
		SELECT team_id, year, week, slot
		FROM rosters
		WHERE league_id = $1 AND player_id = $2
		ORDER BY year, week`, lid, pid)
	if err != nil {
		return nil, fmt.Errorf("failed to get player roster weeks: %w", err)
	}
	return weeks, nil
}

// CopyForward materializes week toWeek for every team in the league as a
// copy of week fromWeek, skipping teams that already have rows for toWeek.
// Invoked by the weekly scheduler, never by transaction processors.
func (r *Repository) CopyForward(ctx context.Context, lid uuid.UUID, year, fromWeek, toWeek int) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO rosters (id, league_id, team_id, player_id, year, week, slot, tag, extensions, value, acquired_at)
		SELECT gen_random_uuid(), league_id, team_id, player_id, year, $4, slot, tag, extensions, value, acquired_at
		FROM rosters r
		WHERE league_id = $1 AND year = $2 AND week = $3
		  AND NOT EXISTS (
			SELECT 1 FROM rosters n
			WHERE n.team_id = r.team_id AND n.year = r.year AND n.week = $4
		  )`, lid, year, fromWeek, toWeek)
	if err != nil {
		return 0, fmt.Errorf("failed to copy roster forward: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get copy-forward row count: %w", err)
	}
	return int(count), nil
}

// GetCutlist returns the team's ordered cutlist, highest priority first.
func (r *Repository) GetCutlist(ctx context.Context, tid uuid.UUID) ([]uuid.UUID, error) {
	var pids []uuid.UUID
	err := sqlx.SelectContext(ctx, r.db, &pids, `
		SELECT player_id FROM cutlist
		WHERE team_id = $1
		ORDER BY ord`, tid)
	if err != nil {
		return nil, fmt.Errorf("failed to get cutlist: %w", err)
	}
	return pids, nil
}

// RemoveFromCutlist clears a player's cutlist entry, if any.
func (r *Repository) RemoveFromCutlist(ctx context.Context, tid, pid uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cutlist WHERE team_id = $1 AND player_id = $2`, tid, pid)
	if err != nil {
		return fmt.Errorf("failed to remove cutlist entry: %w", err)
	}
	return nil
}

// IsNotFound reports whether err means the roster snapshot does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}
