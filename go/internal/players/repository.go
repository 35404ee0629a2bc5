package players

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mcdev12/gridiron/go/internal/models"
)

// ErrUnknownPlayer is returned when a player ID is not in the directory.
var ErrUnknownPlayer = errors.New("unknown player")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// GetPlayer retrieves a player directory entry.
func (r *Repository) GetPlayer(ctx context.Context, pid uuid.UUID) (*models.Player, error) {
	var player models.Player
	err := r.db.GetContext(ctx, &player, `
		SELECT id, full_name, position, nfl_team, roster_status, injury_status
		FROM players WHERE id = $1`, pid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnknownPlayer
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &player, nil
}
