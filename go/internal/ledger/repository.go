package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mcdev12/gridiron/go/internal/models"
)

// Repository persists the append-only transaction ledger. Append is the only
// write; rows are never updated or deleted. Corrections happen by appending
// further transactions.
type Repository struct {
	db sqlx.ExtContext
}

func NewRepository(db sqlx.ExtContext) *Repository {
	return &Repository{db: db}
}

const txColumns = `uid, type, player_id, team_id, league_id, week, year, value, waiver_id, user_id, timestamp`

// Append writes one ledger entry.
func (r *Repository) Append(ctx context.Context, tx models.Transaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (`+txColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		tx.UID, tx.Type, tx.PlayerID, tx.TeamID, tx.LeagueID,
		tx.Week, tx.Year, tx.Value, tx.WaiverID, tx.UserID, tx.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}
	return nil
}

// ListByPlayer returns every transaction for (league, player) ordered by
// (timestamp desc, uid desc). The uid tie-break keeps same-timestamp walks
// deterministic.
func (r *Repository) ListByPlayer(ctx context.Context, lid, pid uuid.UUID) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := sqlx.SelectContext(ctx, r.db, &txs, `
		SELECT `+txColumns+`
		FROM transactions
		WHERE league_id = $1 AND player_id = $2
		ORDER BY timestamp DESC, uid DESC`, lid, pid)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions by player: %w", err)
	}
	return txs, nil
}

// LastByPlayer returns the most recent transaction for (league, player),
// or nil if the player has no ledger history.
func (r *Repository) LastByPlayer(ctx context.Context, lid, pid uuid.UUID) (*models.Transaction, error) {
	var tx models.Transaction
	err := sqlx.GetContext(ctx, r.db, &tx, `
		SELECT `+txColumns+`
		FROM transactions
		WHERE league_id = $1 AND player_id = $2
		ORDER BY timestamp DESC, uid DESC
		LIMIT 1`, lid, pid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last transaction: %w", err)
	}
	return &tx, nil
}

// CountByPlayer returns the number of ledger rows for (league, player).
func (r *Repository) CountByPlayer(ctx context.Context, lid, pid uuid.UUID) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, r.db, &count, `
		SELECT COUNT(*) FROM transactions
		WHERE league_id = $1 AND player_id = $2`, lid, pid)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}
