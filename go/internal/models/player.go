package models

import "github.com/google/uuid"

// Position represents an NFL position group.
type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionK   Position = "K"
	PositionDST Position = "DST"
)

// NFL roster status values as reported by the schedule provider.
const (
	NFLStatusActive      = "ACTIVE"
	NFLStatusInjuredRes  = "INJURED_RESERVE"
	NFLStatusPUP         = "PUP"
	NFLStatusNFI         = "NFI"
	NFLStatusSuspended   = "SUSPENDED"
	NFLStatusCOVID       = "RESERVE_COVID"
	NFLStatusFreeAgent   = "FREE_AGENT"
)

// Game-day injury designations.
const (
	DesignationOut          = "OUT"
	DesignationDoubtful     = "DOUBTFUL"
	DesignationQuestionable = "QUESTIONABLE"
)

// Player is a player directory entry.
type Player struct {
	ID           uuid.UUID `json:"id" db:"id"`
	FullName     string    `json:"full_name" db:"full_name"`
	Position     Position  `json:"position" db:"position"`
	NFLTeam      string    `json:"nfl_team" db:"nfl_team"`
	RosterStatus string    `json:"roster_status" db:"roster_status"`
	InjuryStatus string    `json:"injury_status" db:"injury_status"`
}
