package poach

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mcdev12/gridiron/go/internal/models"
	"github.com/sqlc-dev/pqtype"
)

type Repository struct {
	db sqlx.ExtContext
}

func NewRepository(db sqlx.ExtContext) *Repository {
	return &Repository{db: db}
}

const poachColumns = `uid, player_id, team_id, player_team_id, league_id, submitted, processed, succ, release_list`

// Insert creates a poach claim together with its committed release list.
func (r *Repository) Insert(ctx context.Context, claim models.PoachClaim) error {
	releaseList, err := json.Marshal(claim.ReleaseList)
	if err != nil {
		return fmt.Errorf("failed to marshal release list: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO poaches (`+poachColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		claim.UID, claim.PlayerID, claim.TeamID, claim.PlayerTeamID, claim.LeagueID,
		claim.Submitted, claim.Processed, claim.Succeeded,
		pqtype.NullRawMessage{RawMessage: releaseList, Valid: len(releaseList) > 0})
	if err != nil {
		return fmt.Errorf("failed to insert poach claim: %w", err)
	}
	return nil
}

// PendingByPlayer returns unresolved claims against a player.
func (r *Repository) PendingByPlayer(ctx context.Context, lid, pid uuid.UUID) ([]models.PoachClaim, error) {
	return r.selectClaims(ctx, `
		SELECT `+poachColumns+`
		FROM poaches
		WHERE league_id = $1 AND player_id = $2 AND processed IS NULL`, lid, pid)
}

// PendingByClaimingTeam returns the team's own unresolved claims, release
// lists included, so submissions can simulate committed cuts.
func (r *Repository) PendingByClaimingTeam(ctx context.Context, lid, tid uuid.UUID) ([]models.PoachClaim, error) {
	return r.selectClaims(ctx, `
		SELECT `+poachColumns+`
		FROM poaches
		WHERE league_id = $1 AND team_id = $2 AND processed IS NULL`, lid, tid)
}

// MarkProcessed resolves a claim. Resolution happens once; later calls
// affect zero rows.
func (r *Repository) MarkProcessed(ctx context.Context, uid uuid.UUID, succeeded bool) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE poaches SET processed = now(), succ = $2
		WHERE uid = $1 AND processed IS NULL`, uid, succeeded)
	if err != nil {
		return fmt.Errorf("failed to mark poach processed: %w", err)
	}
	return nil
}

// CancelPendingByPlayer resolves all pending claims against a player as
// failed. Used when the player leaves practice squad eligibility.
func (r *Repository) CancelPendingByPlayer(ctx context.Context, lid, pid uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE poaches SET processed = now(), succ = false
		WHERE league_id = $1 AND player_id = $2 AND processed IS NULL`, lid, pid)
	if err != nil {
		return fmt.Errorf("failed to cancel pending poaches: %w", err)
	}
	return nil
}

func (r *Repository) selectClaims(ctx context.Context, query string, args ...interface{}) ([]models.PoachClaim, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query poach claims: %w", err)
	}
	defer rows.Close()

	var claims []models.PoachClaim
	for rows.Next() {
		var claim models.PoachClaim
		var releaseList pqtype.NullRawMessage
		if err := rows.Scan(&claim.UID, &claim.PlayerID, &claim.TeamID, &claim.PlayerTeamID,
			&claim.LeagueID, &claim.Submitted, &claim.Processed, &claim.Succeeded, &releaseList); err != nil {
			return nil, fmt.Errorf("failed to scan poach claim: %w", err)
		}
		if releaseList.Valid {
			if err := json.Unmarshal(releaseList.RawMessage, &claim.ReleaseList); err != nil {
				return nil, fmt.Errorf("failed to unmarshal release list: %w", err)
			}
		}
		claims = append(claims, claim)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read poach claims: %w", err)
	}
	return claims, nil
}
