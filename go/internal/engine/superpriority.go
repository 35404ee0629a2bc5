package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/gridiron/go/internal/models"
	"github.com/mcdev12/gridiron/go/internal/rules"
)

// ClaimResult describes a completed super-priority reclaim.
type ClaimResult struct {
	PlayerID    uuid.UUID          `json:"player_id"`
	TeamID      uuid.UUID          `json:"team_id"`
	Slot        models.Slot        `json:"slot"`
	Transaction models.Transaction `json:"transaction"`
}

// GetSuperPriorityStatus recomputes reclaim eligibility from the ledger.
// The persisted super-priority record is never consulted; it is only a
// search accelerator for finding candidates.
func (a *App) GetSuperPriorityStatus(ctx context.Context, lid, pid uuid.UUID, releaseTID *uuid.UUID) (rules.SuperPriorityResult, error) {
	txs, err := a.stores.Ledger.ListByPlayer(ctx, lid, pid)
	if err != nil {
		return rules.SuperPriorityResult{}, fmt.Errorf("failed to get player ledger: %w", err)
	}
	weeks, err := a.stores.Roster.PlayerRosterWeeks(ctx, lid, pid)
	if err != nil {
		return rules.SuperPriorityResult{}, fmt.Errorf("failed to get roster weeks: %w", err)
	}
	return rules.CalculateSuperPriorityEligibility(rules.SuperPriorityInput{
		PlayerID:      pid,
		Transactions:  txs,
		RosterWeeks:   weeks,
		ReleaseTeamID: releaseTID,
	}), nil
}

// ProcessSuperPriority executes the original team's reclaim of a poached
// player. Eligibility is re-derived from the ledger at claim time, and the
// record's claimed flag is terminal: the conditional update inside the
// database transaction guarantees a second claim can never succeed.
func (a *App) ProcessSuperPriority(ctx context.Context, pid, originalTID, lid uuid.UUID, spUID uuid.UUID, userID *uuid.UUID) (*ClaimResult, error) {
	defer a.locks.lock(lid)()

	record, err := a.stores.SuperPriority.Get(ctx, spUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get super priority record: %w", err)
	}
	if record.Claimed {
		return nil, violation(ViolationPendingClaimConflict, "super priority record was already claimed")
	}
	if record.PlayerID != pid || record.LeagueID != lid {
		return nil, violation(ViolationInvalidPlayer, "super priority record does not match player %s", pid)
	}

	status, err := a.GetSuperPriorityStatus(ctx, lid, pid, &record.PoachingTeamID)
	if err != nil {
		return nil, err
	}
	if !status.Eligible {
		return nil, violation(ViolationIneligibleForSlot, "%s", status.Reason)
	}
	// The stored record must agree with the recomputation; a stale record
	// (say, from an earlier poach cycle) cannot authorize a reclaim.
	if status.OriginalTeamID != record.OriginalTeamID || !status.PoachTimestamp.Equal(record.PoachTimestamp) {
		return nil, violation(ViolationIneligibleForSlot, "super priority record no longer matches the ledger")
	}
	if status.OriginalTeamID != originalTID {
		return nil, violation(ViolationNotOnRoster, "team %s does not hold the reclaim right", originalTID)
	}

	_, team, season, ros, err := a.loadLeagueTeamRoster(ctx, lid, originalTID)
	if err != nil {
		return nil, err
	}

	current, err := a.stores.Roster.FindRowByPlayer(ctx, lid, pid, season.Year, season.Week)
	if err != nil {
		return nil, fmt.Errorf("failed to find player roster row: %w", err)
	}
	if current != nil {
		return nil, violation(ViolationIneligibleForSlot, "player %s is already rostered", pid)
	}

	// A reclaim off a waiver goes to the signed practice squad slot and
	// competes for space; the auto-return path restores the drafted slot
	// unconditionally.
	slot := models.SlotPSD
	if record.RequiresWaiver {
		slot = models.SlotPS
		if !ros.HasOpenPracticeSquadSlot() {
			return nil, violation(ViolationCapacityExceeded, "no open practice squad slots")
		}
	}

	value, err := a.lastPracticeSquadValue(ctx, lid, pid)
	if err != nil {
		return nil, err
	}

	spTx := a.newTransaction(models.TxSuperPriority, season, lid, originalTID, pid, value, userID)
	err = a.tx.InTx(ctx, func(s Stores) error {
		claimed, err := s.SuperPriority.MarkClaimed(ctx, spUID)
		if err != nil {
			return err
		}
		if !claimed {
			return violation(ViolationPendingClaimConflict, "super priority record was already claimed")
		}
		if err := insertAcquiredRows(ctx, s, models.RosterRow{
			LeagueID:   lid,
			TeamID:     originalTID,
			PlayerID:   pid,
			Year:       season.Year,
			Week:       season.Week,
			Slot:       slot,
			Tag:        models.TagRegular,
			Value:      value,
			AcquiredAt: season.Now,
		}); err != nil {
			return err
		}
		return s.Ledger.Append(ctx, spTx)
	})
	if err != nil {
		if _, ok := AsRuleViolation(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to apply super priority claim: %w", err)
	}

	a.notifyBestEffort(ctx, lid, &originalTID, "superpriority.claimed",
		fmt.Sprintf("%s reclaimed player %s via super priority", team.Name, pid))
	return &ClaimResult{
		PlayerID:    pid,
		TeamID:      originalTID,
		Slot:        slot,
		Transaction: spTx,
	}, nil
}

// lastPracticeSquadValue returns the player's salary from their most recent
// practice squad signing or draft, falling back to the last transaction.
func (a *App) lastPracticeSquadValue(ctx context.Context, lid, pid uuid.UUID) (int, error) {
	txs, err := a.stores.Ledger.ListByPlayer(ctx, lid, pid)
	if err != nil {
		return 0, fmt.Errorf("failed to get player ledger: %w", err)
	}
	for _, tx := range txs {
		if tx.Type.IsPracticeSquadQualifying() {
			return tx.Value, nil
		}
	}
	if len(txs) > 0 {
		return txs[0].Value, nil
	}
	return 1, nil
}
