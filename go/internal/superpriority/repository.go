package superpriority

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mcdev12/gridiron/go/internal/models"
)

// ErrNotFound is returned when no super-priority record exists.
var ErrNotFound = errors.New("super priority record not found")

type Repository struct {
	db sqlx.ExtContext
}

func NewRepository(db sqlx.ExtContext) *Repository {
	return &Repository{db: db}
}

const spColumns = `uid, player_id, league_id, original_tid, poaching_tid, poach_timestamp, eligible, claimed, requires_waiver`

// Insert creates a super-priority record.
func (r *Repository) Insert(ctx context.Context, sp models.SuperPriority) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO super_priority (`+spColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		sp.UID, sp.PlayerID, sp.LeagueID, sp.OriginalTeamID, sp.PoachingTeamID,
		sp.PoachTimestamp, sp.Eligible, sp.Claimed, sp.RequiresWaiver)
	if err != nil {
		return fmt.Errorf("failed to insert super priority record: %w", err)
	}
	return nil
}

// Get retrieves a record by uid.
func (r *Repository) Get(ctx context.Context, uid uuid.UUID) (*models.SuperPriority, error) {
	var sp models.SuperPriority
	err := sqlx.GetContext(ctx, r.db, &sp, `
		SELECT `+spColumns+` FROM super_priority WHERE uid = $1`, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get super priority record: %w", err)
	}
	return &sp, nil
}

// FindUnclaimed returns the unclaimed record for (league, player, poach
// timestamp ordering newest first), or nil when none exists.
func (r *Repository) FindUnclaimed(ctx context.Context, lid, pid uuid.UUID) (*models.SuperPriority, error) {
	var sp models.SuperPriority
	err := sqlx.GetContext(ctx, r.db, &sp, `
		SELECT `+spColumns+`
		FROM super_priority
		WHERE league_id = $1 AND player_id = $2 AND claimed = false
		ORDER BY poach_timestamp DESC
		LIMIT 1`, lid, pid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find unclaimed super priority record: %w", err)
	}
	return &sp, nil
}

// UpdateEligibility refreshes the cached eligibility flag. The flag is a
// search accelerator; processors recompute from the ledger before honoring.
func (r *Repository) UpdateEligibility(ctx context.Context, uid uuid.UUID, eligible bool) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE super_priority SET eligible = $2 WHERE uid = $1 AND claimed = false`, uid, eligible)
	if err != nil {
		return fmt.Errorf("failed to update super priority eligibility: %w", err)
	}
	return nil
}

// MarkClaimed sets the terminal claimed flag. Returns false when the record
// was already claimed, so a second claim attempt can never succeed.
func (r *Repository) MarkClaimed(ctx context.Context, uid uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE super_priority SET claimed = true
		WHERE uid = $1 AND claimed = false`, uid)
	if err != nil {
		return false, fmt.Errorf("failed to mark super priority claimed: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get claimed row count: %w", err)
	}
	return rows == 1, nil
}
