package rules

import (
	"time"

	"github.com/mcdev12/gridiron/go/internal/models"
)

// ReserveEligibilityInput carries everything IsReserveEligible needs.
// Predicates never reach into global state; callers assemble inputs from the
// player directory and schedule provider.
type ReserveEligibilityInput struct {
	RosterStatus      string
	InjuryDesignation string
	PriorWeekInactive bool
	PriorWeekRuledOut bool
	Week              int
	IsRegularSeason   bool
	GameDay           bool
	// Practice statuses for the current week, most recent day first.
	PracticeReport []string
}

// IsReserveEligible reports whether a player may be placed on short-term
// injured reserve. Official status always qualifies; during the regular
// season a non-participation pattern qualifies too.
func IsReserveEligible(in ReserveEligibilityInput) bool {
	switch in.RosterStatus {
	case models.NFLStatusInjuredRes, models.NFLStatusPUP, models.NFLStatusNFI, models.NFLStatusSuspended:
		return true
	}
	switch in.InjuryDesignation {
	case models.DesignationOut, models.DesignationDoubtful:
		return true
	}
	if !in.IsRegularSeason {
		return false
	}
	if in.PriorWeekInactive || in.PriorWeekRuledOut {
		return true
	}
	// A most-recent DNP on game day indicates non-participation.
	if in.GameDay && len(in.PracticeReport) > 0 && in.PracticeReport[0] == models.PracticeDNP {
		return true
	}
	// Two straight missed practices qualify regardless of game day.
	if len(in.PracticeReport) >= 2 &&
		in.PracticeReport[0] == models.PracticeDNP &&
		in.PracticeReport[1] == models.PracticeDNP {
		return true
	}
	return false
}

// IsReserveCovEligible reports whether a player may be placed on COVID
// reserve.
func IsReserveCovEligible(rosterStatus string) bool {
	return rosterStatus == models.NFLStatusCOVID
}

// IsLockedStarter reports whether the player is a named starter whose game
// has already kicked off, locking them out of roster moves.
func IsLockedStarter(slot models.Slot, kickoff *time.Time, now time.Time) bool {
	return slot == models.SlotActive && kickoff != nil && !now.Before(*kickoff)
}
