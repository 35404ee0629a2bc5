package waivers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mcdev12/gridiron/go/internal/models"
)

type Repository struct {
	db sqlx.ExtContext
}

func NewRepository(db sqlx.ExtContext) *Repository {
	return &Repository{db: db}
}

const waiverColumns = `uid, player_id, team_id, league_id, type, bid, po, super_priority, submitted, processed, cancelled`

// Insert creates a new waiver claim.
func (r *Repository) Insert(ctx context.Context, w models.Waiver) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO waivers (`+waiverColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		w.UID, w.PlayerID, w.TeamID, w.LeagueID, w.Type, w.Bid, w.PO,
		w.SuperPriority, w.Submitted, w.Processed, w.Cancelled)
	if err != nil {
		return fmt.Errorf("failed to insert waiver: %w", err)
	}
	return nil
}

// PendingByPlayer returns unresolved waivers for a player in a league.
func (r *Repository) PendingByPlayer(ctx context.Context, lid, pid uuid.UUID) ([]models.Waiver, error) {
	var ws []models.Waiver
	err := sqlx.SelectContext(ctx, r.db, &ws, `
		SELECT `+waiverColumns+`
		FROM waivers
		WHERE league_id = $1 AND player_id = $2
		  AND processed IS NULL AND cancelled IS NULL`, lid, pid)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending waivers: %w", err)
	}
	return ws, nil
}

// MarkProcessed resolves a waiver. Later calls affect zero rows.
func (r *Repository) MarkProcessed(ctx context.Context, uid uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE waivers SET processed = now()
		WHERE uid = $1 AND processed IS NULL AND cancelled IS NULL`, uid)
	if err != nil {
		return fmt.Errorf("failed to mark waiver processed: %w", err)
	}
	return nil
}

// PendingByTeamAndPlayer returns the team's unresolved waiver for the
// player, if any. Used to reject duplicate claims.
func (r *Repository) PendingByTeamAndPlayer(ctx context.Context, tid, pid uuid.UUID) ([]models.Waiver, error) {
	var ws []models.Waiver
	err := sqlx.SelectContext(ctx, r.db, &ws, `
		SELECT `+waiverColumns+`
		FROM waivers
		WHERE team_id = $1 AND player_id = $2
		  AND processed IS NULL AND cancelled IS NULL`, tid, pid)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending team waivers: %w", err)
	}
	return ws, nil
}
