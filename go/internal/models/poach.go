package models

import (
	"time"

	"github.com/google/uuid"
)

// PoachClaim is a claim by a non-owning team on an unprotected practice
// squad player. While unresolved it blocks competing claims on the player
// and reserves roster space on the claiming team.
type PoachClaim struct {
	UID          uuid.UUID  `json:"uid" db:"uid"`
	PlayerID     uuid.UUID  `json:"player_id" db:"player_id"`
	TeamID       uuid.UUID  `json:"team_id" db:"team_id"`             // claiming team
	PlayerTeamID uuid.UUID  `json:"player_team_id" db:"player_team_id"` // current owner
	LeagueID     uuid.UUID  `json:"league_id" db:"league_id"`
	Submitted    time.Time  `json:"submitted" db:"submitted"`
	Processed    *time.Time `json:"processed,omitempty" db:"processed"`
	Succeeded    *bool      `json:"succ,omitempty" db:"succ"`

	// Players the claiming team commits to cut if the claim succeeds.
	ReleaseList []uuid.UUID `json:"release_list" db:"-"`
}

// Pending reports whether the claim is still awaiting resolution.
func (p PoachClaim) Pending() bool {
	return p.Processed == nil
}
