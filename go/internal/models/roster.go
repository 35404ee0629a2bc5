package models

import (
	"time"

	"github.com/google/uuid"
)

// Slot represents the roster slot category a player occupies. A player
// occupies exactly one slot per roster-week.
type Slot string

const (
	SlotActive         Slot = "ACTIVE"
	SlotBench          Slot = "BENCH"
	SlotPS             Slot = "PS"   // practice squad, signed
	SlotPSD            Slot = "PSD"  // practice squad, drafted
	SlotPSP            Slot = "PSP"  // practice squad, signed, protected
	SlotPSDP           Slot = "PSDP" // practice squad, drafted, protected
	SlotIR             Slot = "IR"
	SlotIRLongTerm     Slot = "IR_LONG_TERM"
	SlotReserveCOV     Slot = "COV"
)

// IsPracticeSquad reports whether the slot is any practice squad variant.
func (s Slot) IsPracticeSquad() bool {
	return s == SlotPS || s == SlotPSD || s == SlotPSP || s == SlotPSDP
}

// IsProtected reports whether the slot is a protected practice squad slot.
func (s Slot) IsProtected() bool {
	return s == SlotPSP || s == SlotPSDP
}

// IsReserve reports whether the slot is an injured/COVID reserve slot.
func (s Slot) IsReserve() bool {
	return s == SlotIR || s == SlotIRLongTerm || s == SlotReserveCOV
}

// IsActiveRoster reports whether the slot counts against the salary cap.
func (s Slot) IsActiveRoster() bool {
	return s == SlotActive || s == SlotBench
}

// Tag represents a designation on a rostered player governing bid eligibility.
type Tag string

const (
	TagRegular    Tag = "REGULAR"
	TagRookie     Tag = "ROOKIE"
	TagTransition Tag = "TRANSITION"
	TagFranchise  Tag = "FRANCHISE"
)

// RosterRow is one persisted (team, year, week, player) roster entry.
// Value and Position are denormalized from the ledger and player directory
// when rows are loaded for projection.
type RosterRow struct {
	ID         uuid.UUID `json:"id" db:"id"`
	LeagueID   uuid.UUID `json:"league_id" db:"league_id"`
	TeamID     uuid.UUID `json:"team_id" db:"team_id"`
	PlayerID   uuid.UUID `json:"player_id" db:"player_id"`
	Year       int       `json:"year" db:"year"`
	Week       int       `json:"week" db:"week"`
	Slot       Slot      `json:"slot" db:"slot"`
	Tag        Tag       `json:"tag" db:"tag"`
	Extensions int       `json:"extensions" db:"extensions"`
	Value      int       `json:"value" db:"value"`
	Position   Position  `json:"position" db:"position"`
	AcquiredAt time.Time `json:"acquired_at" db:"acquired_at"`
}

// PlayerRosterWeek is a compact view of one roster-week a player spent on a
// team, used by the super-priority tenure and usage checks.
type PlayerRosterWeek struct {
	TeamID uuid.UUID `json:"team_id" db:"team_id"`
	Year   int       `json:"year" db:"year"`
	Week   int       `json:"week" db:"week"`
	Slot   Slot      `json:"slot" db:"slot"`
}
