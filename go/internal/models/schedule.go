package models

import (
	"time"

	"github.com/google/uuid"
)

// Game is one scheduled NFL game.
type Game struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Year     int       `json:"year" db:"year"`
	Week     int       `json:"week" db:"week"`
	HomeTeam string    `json:"home_team" db:"home_team"`
	AwayTeam string    `json:"away_team" db:"away_team"`
	Kickoff  time.Time `json:"kickoff" db:"kickoff"`
}

// Practice participation statuses from the weekly practice report.
const (
	PracticeDNP     = "DNP"
	PracticeLimited = "LIMITED"
	PracticeFull    = "FULL"
)

// PracticeReport is one day of a player's weekly practice report.
type PracticeReport struct {
	PlayerID uuid.UUID `json:"player_id" db:"player_id"`
	Year     int       `json:"year" db:"year"`
	Week     int       `json:"week" db:"week"`
	Day      int       `json:"day" db:"day"`
	Status   string    `json:"status" db:"status"`
}

// GameStatus is a player's participation outcome for one week.
type GameStatus struct {
	PlayerID uuid.UUID `json:"player_id" db:"player_id"`
	Year     int       `json:"year" db:"year"`
	Week     int       `json:"week" db:"week"`
	Inactive bool      `json:"inactive" db:"inactive"`
	RuledOut bool      `json:"ruled_out" db:"ruled_out"`
}
