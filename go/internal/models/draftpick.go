package models

import "github.com/google/uuid"

// ConditionalPick is a future draft pick awarded as compensation to a team
// that loses a practice squad player to a poach or restricted-FA bid.
// Inserted once per triggering event; only the external pick-numbering pass
// touches it afterward.
type ConditionalPick struct {
	ID             uuid.UUID `json:"id" db:"id"`
	TeamID         uuid.UUID `json:"team_id" db:"team_id"`
	LeagueID       uuid.UUID `json:"league_id" db:"league_id"`
	OriginalTeamID uuid.UUID `json:"original_team_id" db:"original_team_id"`
	Round          int       `json:"round" db:"round"`
	Year           int       `json:"year" db:"year"`
	Comp           bool      `json:"comp" db:"comp"`
	PickNumber     *int      `json:"pick,omitempty" db:"pick"`
}
