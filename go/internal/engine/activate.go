package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/gridiron/go/internal/models"
	"github.com/mcdev12/gridiron/go/internal/roster"
)

// Activate moves a practice squad or reserve player onto the bench. Any
// pending poach claims against the player are cancelled: an activated player
// is no longer practice squad eligible.
func (a *App) Activate(ctx context.Context, lid, tid, pid uuid.UUID, userID *uuid.UUID) (*RosterDelta, error) {
	defer a.locks.lock(lid)()

	_, team, season, ros, err := a.loadLeagueTeamRoster(ctx, lid, tid)
	if err != nil {
		return nil, err
	}

	row, err := validateActivate(ros, pid)
	if err != nil {
		return nil, err
	}

	player, err := a.getPlayer(ctx, pid)
	if err != nil {
		return nil, err
	}

	tx := a.newTransaction(models.TxRosterActivate, season, lid, tid, pid, row.Value, userID)
	err = a.tx.InTx(ctx, func(s Stores) error {
		return applyActivate(ctx, s, row, tx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply activation: %w", err)
	}

	a.notifyBestEffort(ctx, lid, &tid, "roster.activate",
		fmt.Sprintf("%s activated %s", team.Name, player.FullName))
	return &RosterDelta{
		PlayerID:    pid,
		TeamID:      tid,
		Slot:        slotPtr(models.SlotBench),
		Transaction: tx,
	}, nil
}

// validateActivate checks the activation preconditions against a projection.
// Combined calls pass a working copy that already reflects the paired
// release or reserve move, so the bench space check sees the freed slot.
func validateActivate(ros *roster.Roster, pid uuid.UUID) (models.RosterRow, error) {
	row, ok := ros.Get(pid)
	if !ok {
		return row, violation(ViolationNotOnRoster, "player %s is not on the roster", pid)
	}
	if row.Slot.IsActiveRoster() {
		return row, violation(ViolationIneligibleForSlot, "player %s is already on the active roster", pid)
	}
	if row.Slot.IsProtected() {
		return row, violation(ViolationProtectedPlayer, "protected practice squad players cannot be activated")
	}
	if ros.AvailableSpace() <= 0 {
		return row, violation(ViolationCapacityExceeded, "no open active roster slots")
	}
	if !ros.IsEligibleForSlot(models.SlotBench, row.Position) {
		return row, violation(ViolationCapacityExceeded, "no open %s slots on the active roster", row.Position)
	}
	if ros.AvailableCap() < row.Value {
		return row, violation(ViolationCapacityExceeded, "insufficient cap to activate player")
	}
	return row, nil
}

// applyActivate moves the player to the bench, appends the ledger entry, and
// cancels pending poach claims. Runs inside the processor's database
// transaction.
func applyActivate(ctx context.Context, s Stores, row models.RosterRow, tx models.Transaction) error {
	if err := s.Roster.UpdateSlotFromWeek(ctx, row.TeamID, row.PlayerID, tx.Year, tx.Week, models.SlotBench); err != nil {
		return err
	}
	if err := s.Ledger.Append(ctx, tx); err != nil {
		return err
	}
	return s.Poaches.CancelPendingByPlayer(ctx, tx.LeagueID, row.PlayerID)
}
