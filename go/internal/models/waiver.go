package models

import (
	"time"

	"github.com/google/uuid"
)

// WaiverType distinguishes free-agent add waivers from poach waivers.
type WaiverType string

const (
	WaiverTypeAdd   WaiverType = "ADD"
	WaiverTypePoach WaiverType = "POACH"
)

// Waiver is one claim on a player. Multiple waivers may exist per player;
// resolution order is (bid desc, team waiver_order asc, po asc, uid asc).
// Resolution itself is an external batch process.
type Waiver struct {
	UID           uuid.UUID  `json:"uid" db:"uid"`
	PlayerID      uuid.UUID  `json:"player_id" db:"player_id"`
	TeamID        uuid.UUID  `json:"team_id" db:"team_id"`
	LeagueID      uuid.UUID  `json:"league_id" db:"league_id"`
	Type          WaiverType `json:"type" db:"type"`
	Bid           int        `json:"bid" db:"bid"`
	PO            int        `json:"po" db:"po"`
	SuperPriority bool       `json:"super_priority" db:"super_priority"`
	Submitted     time.Time  `json:"submitted" db:"submitted"`
	Processed     *time.Time `json:"processed,omitempty" db:"processed"`
	Cancelled     *time.Time `json:"cancelled,omitempty" db:"cancelled"`
}

// Pending reports whether the waiver is still awaiting resolution.
func (w Waiver) Pending() bool {
	return w.Processed == nil && w.Cancelled == nil
}
