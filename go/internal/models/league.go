package models

import (
	"time"

	"github.com/google/uuid"
)

// LeagueConfig is the per-league rule set the engine validates against.
// It is read-only from the engine's point of view.
type LeagueConfig struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`

	Cap int `json:"cap" db:"cap"`

	// Slot capacity limits per category.
	BenchLimit            int `json:"bench_limit" db:"bench_limit"`
	PracticeSquadLimit    int `json:"practice_squad_limit" db:"practice_squad_limit"`
	ReserveShortTermLimit int `json:"reserve_short_term_limit" db:"reserve_short_term_limit"`
	ReserveCOVLimit       int `json:"reserve_cov_limit" db:"reserve_cov_limit"`

	// Max players per position across the active roster (starters + bench).
	// A zero entry means the position is uncapped.
	PositionLimits map[Position]int `json:"position_limits" db:"-"`

	// Season state. The scheduler advances these; the engine only reads them.
	CurrentYear     int  `json:"current_year" db:"current_year"`
	CurrentWeek     int  `json:"current_week" db:"current_week"`
	IsRegularSeason bool `json:"is_regular_season" db:"is_regular_season"`
	IsOffseason     bool `json:"is_offseason" db:"is_offseason"`

	// Transaction windows.
	SanctuaryStart       *time.Time `json:"sanctuary_start,omitempty" db:"sanctuary_start"`
	SanctuaryEnd         *time.Time `json:"sanctuary_end,omitempty" db:"sanctuary_end"`
	OffseasonPoachCutoff *time.Time `json:"offseason_poach_cutoff,omitempty" db:"offseason_poach_cutoff"`
	FreeAgencyLiveAt     *time.Time `json:"free_agency_live_at,omitempty" db:"free_agency_live_at"`
	DraftStart           *time.Time `json:"draft_start,omitempty" db:"draft_start"`

	// Hour of day (UTC) at which the external batch resolves poach claims.
	ProcessingHour int `json:"processing_hour" db:"processing_hour"`
}

// SeasonContext carries the season coordinates and clock reading a single
// engine call operates under. It replaces any global current-week state so
// predicates stay deterministic.
type SeasonContext struct {
	Year            int
	Week            int
	Now             time.Time
	IsRegularSeason bool
	IsOffseason     bool
}
