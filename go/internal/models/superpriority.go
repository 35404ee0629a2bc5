package models

import (
	"time"

	"github.com/google/uuid"
)

// SuperPriority records the original team's time-boxed right to reclaim a
// player poached off its practice squad who was never meaningfully used by
// the poaching team. The persisted row is a search accelerator only;
// eligibility is always recomputed from the ledger before being honored.
// Claimed is terminal: once set the record can never be reclaimed again.
type SuperPriority struct {
	UID            uuid.UUID `json:"uid" db:"uid"`
	PlayerID       uuid.UUID `json:"player_id" db:"player_id"`
	LeagueID       uuid.UUID `json:"league_id" db:"league_id"`
	OriginalTeamID uuid.UUID `json:"original_tid" db:"original_tid"`
	PoachingTeamID uuid.UUID `json:"poaching_tid" db:"poaching_tid"`
	PoachTimestamp time.Time `json:"poach_timestamp" db:"poach_timestamp"`
	Eligible       bool      `json:"eligible" db:"eligible"`
	Claimed        bool      `json:"claimed" db:"claimed"`
	RequiresWaiver bool      `json:"requires_waiver" db:"requires_waiver"`
}
