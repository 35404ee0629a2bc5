package rules

import (
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/gridiron/go/internal/models"
)

// SuperPriorityInput carries the source data the chain analysis walks:
// the player's full ledger ordered (timestamp desc, uid desc) and their
// roster-week history, oldest first. ReleaseTeamID narrows the walk to the
// poach made by that team when the analysis runs off a release.
type SuperPriorityInput struct {
	PlayerID      uuid.UUID
	Transactions  []models.Transaction
	RosterWeeks   []models.PlayerRosterWeek
	ReleaseTeamID *uuid.UUID
}

// SuperPriorityResult is the outcome of the eligibility recomputation.
// Reason is set whenever Eligible is false.
type SuperPriorityResult struct {
	Eligible       bool
	OriginalTeamID uuid.UUID
	PoachingTeamID uuid.UUID
	PoachTimestamp time.Time
	Reason         string
}

// Tenure and usage thresholds for losing the reclaim right.
const (
	superPriorityTenureWeeks = 4
)

// CalculateSuperPriorityEligibility recomputes, from source transactions,
// whether the player's original team holds a reclaim right. The walk finds
// the relevant poach, then the original team (last practice-squad-qualifying
// transaction before the poach), then scans events after the poach for
// disqualifiers by the poaching team, then applies the tenure and usage
// thresholds against roster-week history.
func CalculateSuperPriorityEligibility(in SuperPriorityInput) SuperPriorityResult {
	poach := findPoach(in.Transactions, in.ReleaseTeamID)
	if poach == nil {
		return SuperPriorityResult{Reason: "Player was not poached"}
	}

	original := findOriginalTeam(in.Transactions, *poach)
	if original == uuid.Nil {
		return SuperPriorityResult{Reason: "No practice squad history before poach"}
	}

	base := SuperPriorityResult{
		OriginalTeamID: original,
		PoachingTeamID: poach.TeamID,
		PoachTimestamp: poach.Timestamp,
	}

	if reason := disqualifyingEvent(in.Transactions, *poach); reason != "" {
		base.Reason = reason
		return base
	}

	tenure, started := usageSincePoach(in.RosterWeeks, *poach)
	if started {
		base.Reason = "Player started in 1+ games"
		return base
	}
	if tenure >= superPriorityTenureWeeks {
		base.Reason = "Player spent 4+ weeks on poaching team's roster"
		return base
	}

	base.Eligible = true
	return base
}

// findPoach returns the most recent poach, or the most recent poach by the
// releasing team when one is specified. Transactions arrive newest first.
func findPoach(txs []models.Transaction, releaseTID *uuid.UUID) *models.Transaction {
	for i := range txs {
		tx := txs[i]
		if tx.Type != models.TxPoached {
			continue
		}
		if releaseTID != nil && tx.TeamID != *releaseTID {
			continue
		}
		return &tx
	}
	return nil
}

// findOriginalTeam returns the team of the last practice-squad-qualifying
// transaction older than the poach.
func findOriginalTeam(txs []models.Transaction, poach models.Transaction) uuid.UUID {
	for _, tx := range txs {
		if !olderThan(tx, poach) {
			continue
		}
		if tx.Type.IsPracticeSquadQualifying() || tx.Type == models.TxRosterDeactivate {
			return tx.TeamID
		}
	}
	return uuid.Nil
}

// disqualifyingEvent scans transactions after the poach for events by the
// poaching team that extinguish the reclaim right.
func disqualifyingEvent(txs []models.Transaction, poach models.Transaction) string {
	for _, tx := range txs {
		if olderThan(tx, poach) || tx.UID == poach.UID {
			continue
		}
		if tx.TeamID != poach.TeamID {
			continue
		}
		switch tx.Type {
		case models.TxTrade:
			return "Player was traded by poaching team"
		case models.TxTransitionTag, models.TxFranchiseTag:
			return "Player was tagged by poaching team"
		case models.TxExtension:
			return "Player was extended by poaching team"
		}
	}
	return ""
}

// usageSincePoach counts roster-weeks the player spent on the poaching team
// after the poach, and whether any was in a starting slot.
func usageSincePoach(weeks []models.PlayerRosterWeek, poach models.Transaction) (tenure int, started bool) {
	for _, w := range weeks {
		if w.TeamID != poach.TeamID {
			continue
		}
		if w.Year < poach.Year || (w.Year == poach.Year && w.Week < poach.Week) {
			continue
		}
		tenure++
		if w.Slot == models.SlotActive {
			started = true
		}
	}
	return tenure, started
}

// olderThan orders transactions the way the ledger does: timestamp first,
// uid as the tie-break.
func olderThan(a, b models.Transaction) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.Before(b.Timestamp)
	}
	return a.UID.String() < b.UID.String()
}
