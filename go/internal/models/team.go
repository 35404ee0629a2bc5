package models

import "github.com/google/uuid"

// Team is a fantasy team within a league.
type Team struct {
	ID          uuid.UUID `json:"id" db:"id"`
	LeagueID    uuid.UUID `json:"league_id" db:"league_id"`
	Name        string    `json:"name" db:"name"`
	WaiverOrder int       `json:"waiver_order" db:"waiver_order"`
	CapPenalty  int       `json:"cap_penalty" db:"cap_penalty"`
}
