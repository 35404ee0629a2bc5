package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/gridiron/go/internal/models"
	"github.com/mcdev12/gridiron/go/internal/rules"
)

// Reserve places a player in an injured or COVID reserve slot. An optional
// second player can be activated in the same call; the activation validates
// against the roster as it stands after the reserve move, so the two share
// the freed bench space.
func (a *App) Reserve(ctx context.Context, slot models.Slot, lid, tid, pid uuid.UUID, userID *uuid.UUID, activatePID *uuid.UUID) ([]RosterDelta, error) {
	defer a.locks.lock(lid)()

	if !slot.IsReserve() {
		return nil, violation(ViolationIneligibleForSlot, "%s is not a reserve slot", slot)
	}

	_, team, season, ros, err := a.loadLeagueTeamRoster(ctx, lid, tid)
	if err != nil {
		return nil, err
	}

	row, ok := ros.Get(pid)
	if !ok {
		return nil, violation(ViolationNotOnRoster, "player %s is not on the roster", pid)
	}
	if row.Slot == slot {
		return nil, violation(ViolationIneligibleForSlot, "player is already on %s", slot)
	}
	if row.Slot.IsProtected() {
		return nil, violation(ViolationProtectedPlayer, "protected practice squad players cannot be reserved")
	}

	player, err := a.getPlayer(ctx, pid)
	if err != nil {
		return nil, err
	}

	// A practice squad player only moves to reserve while a poach claim is
	// pending; otherwise the slot change would dodge the claim.
	if row.Slot.IsPracticeSquad() {
		claims, err := a.stores.Poaches.PendingByPlayer(ctx, lid, pid)
		if err != nil {
			return nil, fmt.Errorf("failed to get pending poaches: %w", err)
		}
		if len(claims) == 0 {
			return nil, violation(ViolationIneligibleForSlot,
				"practice squad players may only be reserved while a poach claim is pending")
		}
	}

	locked, err := a.isLockedStarter(ctx, player, row, season)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, violation(ViolationLockedStarter, "%s is a named starter in a game that already kicked off", player.FullName)
	}

	if err := a.checkPriorWeekRoster(ctx, season, lid, pid); err != nil {
		return nil, err
	}

	if err := a.checkReserveEligibility(ctx, slot, season, player); err != nil {
		return nil, err
	}

	switch slot {
	case models.SlotIR:
		if !ros.HasOpenReserveShortTermSlot() {
			return nil, violation(ViolationCapacityExceeded, "no open short-term reserve slots")
		}
	case models.SlotReserveCOV:
		if !ros.HasOpenReserveCOVSlot() {
			return nil, violation(ViolationCapacityExceeded, "no open COVID reserve slots")
		}
	}

	var actRow models.RosterRow
	if activatePID != nil {
		work := ros.Copy()
		if err := work.UpdateSlot(pid, slot); err != nil {
			return nil, fmt.Errorf("failed to stage reserve move: %w", err)
		}
		actRow, err = validateActivate(work, *activatePID)
		if err != nil {
			return nil, err
		}
	}

	resTx := a.newTransaction(reserveTxType(slot), season, lid, tid, pid, row.Value, userID)
	var actTx models.Transaction
	err = a.tx.InTx(ctx, func(s Stores) error {
		if err := s.Roster.UpdateSlotFromWeek(ctx, tid, pid, season.Year, season.Week, slot); err != nil {
			return err
		}
		if err := s.Ledger.Append(ctx, resTx); err != nil {
			return err
		}
		if err := s.Roster.RemoveFromCutlist(ctx, tid, pid); err != nil {
			return err
		}
		if activatePID != nil {
			actTx = a.newTransaction(models.TxRosterActivate, season, lid, tid, *activatePID, actRow.Value, userID)
			return applyActivate(ctx, s, actRow, actTx)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply reserve move: %w", err)
	}

	deltas := []RosterDelta{{PlayerID: pid, TeamID: tid, Slot: slotPtr(slot), Transaction: resTx}}
	if activatePID != nil {
		deltas = append(deltas, RosterDelta{
			PlayerID:    *activatePID,
			TeamID:      tid,
			Slot:        slotPtr(models.SlotBench),
			Transaction: actTx,
		})
	}

	a.notifyBestEffort(ctx, lid, &tid, "roster.reserve",
		fmt.Sprintf("%s placed %s on %s", team.Name, player.FullName, slot))
	return deltas, nil
}

// checkPriorWeekRoster requires the player to have been rostered in the
// league last week, unless they arrived by trade.
func (a *App) checkPriorWeekRoster(ctx context.Context, season models.SeasonContext, lid, pid uuid.UUID) error {
	if season.Week <= 1 {
		return nil
	}
	prev, err := a.stores.Roster.FindRowByPlayer(ctx, lid, pid, season.Year, season.Week-1)
	if err != nil {
		return fmt.Errorf("failed to find prior week roster row: %w", err)
	}
	if prev != nil {
		return nil
	}
	last, err := a.stores.Ledger.LastByPlayer(ctx, lid, pid)
	if err != nil {
		return fmt.Errorf("failed to get last transaction: %w", err)
	}
	if last != nil && last.Type == models.TxTrade {
		return nil
	}
	return violation(ViolationIneligibleForSlot, "player was not on last week's roster")
}

// checkReserveEligibility runs the slot-specific eligibility predicate with
// inputs assembled from the player directory and schedule provider.
func (a *App) checkReserveEligibility(ctx context.Context, slot models.Slot, season models.SeasonContext, player *models.Player) error {
	if slot == models.SlotReserveCOV {
		if !rules.IsReserveCovEligible(player.RosterStatus) {
			return violation(ViolationIneligibleForSlot, "%s is not eligible for COVID reserve", player.FullName)
		}
		return nil
	}

	kickoff, err := a.schedule.KickoffTime(ctx, player.NFLTeam, season.Year, season.Week)
	if err != nil {
		return fmt.Errorf("failed to get kickoff time: %w", err)
	}

	var priorInactive, priorRuledOut bool
	if season.Week > 1 {
		status, err := a.schedule.PriorWeekStatus(ctx, player.ID, season.Year, season.Week-1)
		if err != nil {
			return fmt.Errorf("failed to get prior week status: %w", err)
		}
		if status != nil {
			priorInactive = status.Inactive
			priorRuledOut = status.RuledOut
		}
	}

	reports, err := a.schedule.PracticeReports(ctx, player.ID, season.Year, season.Week)
	if err != nil {
		return fmt.Errorf("failed to get practice reports: %w", err)
	}
	statuses := make([]string, 0, len(reports))
	for _, r := range reports {
		statuses = append(statuses, r.Status)
	}

	eligible := rules.IsReserveEligible(rules.ReserveEligibilityInput{
		RosterStatus:      player.RosterStatus,
		InjuryDesignation: player.InjuryStatus,
		PriorWeekInactive: priorInactive,
		PriorWeekRuledOut: priorRuledOut,
		Week:              season.Week,
		IsRegularSeason:   season.IsRegularSeason,
		GameDay:           isGameDay(kickoff, season.Now),
		PracticeReport:    statuses,
	})
	if !eligible {
		return violation(ViolationIneligibleForSlot, "%s does not meet reserve eligibility", player.FullName)
	}
	return nil
}

func reserveTxType(slot models.Slot) models.TransactionType {
	switch slot {
	case models.SlotIRLongTerm:
		return models.TxReserveIRLongTerm
	case models.SlotReserveCOV:
		return models.TxReserveCOV
	default:
		return models.TxReserveIR
	}
}

// isGameDay reports whether now falls on the kickoff's calendar day (UTC).
func isGameDay(kickoff *time.Time, now time.Time) bool {
	if kickoff == nil {
		return false
	}
	ky, km, kd := kickoff.UTC().Date()
	ny, nm, nd := now.UTC().Date()
	return ky == ny && km == nm && kd == nd
}
