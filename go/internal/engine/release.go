package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/gridiron/go/internal/models"
	"github.com/mcdev12/gridiron/go/internal/rules"
	"github.com/rs/zerolog/log"
)

// Release drops a player from the team's roster for the current and all
// future weeks of the season. An optional second player can be activated to
// the bench in the same call; the activation validates against the roster as
// it stands after the release. After the primary write, super-priority
// detection runs as a best-effort side effect.
func (a *App) Release(ctx context.Context, lid, tid, releasePID uuid.UUID, userID *uuid.UUID, activatePID *uuid.UUID) ([]RosterDelta, error) {
	defer a.locks.lock(lid)()

	cfg, team, season, ros, err := a.loadLeagueTeamRoster(ctx, lid, tid)
	if err != nil {
		return nil, err
	}

	row, ok := ros.Get(releasePID)
	if !ok {
		return nil, violation(ViolationNotOnRoster, "player %s is not on the roster", releasePID)
	}
	if row.Slot.IsProtected() {
		return nil, violation(ViolationProtectedPlayer, "protected practice squad players cannot be released")
	}

	player, err := a.getPlayer(ctx, releasePID)
	if err != nil {
		return nil, err
	}
	locked, err := a.isLockedStarter(ctx, player, row, season)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, violation(ViolationLockedStarter, "%s is a named starter in a game that already kicked off", player.FullName)
	}

	if row.Slot.IsPracticeSquad() {
		claims, err := a.stores.Poaches.PendingByPlayer(ctx, lid, releasePID)
		if err != nil {
			return nil, fmt.Errorf("failed to get pending poaches: %w", err)
		}
		if len(claims) > 0 {
			return nil, violation(ViolationPendingClaimConflict, "%s has a pending poach claim and cannot be released", player.FullName)
		}
	}

	if err := a.checkOffseasonReleaseWindow(ctx, cfg, season, lid, tid, releasePID, player); err != nil {
		return nil, err
	}

	var actRow models.RosterRow
	if activatePID != nil {
		work := ros.Copy()
		work.RemovePlayer(releasePID)
		actRow, err = validateActivate(work, *activatePID)
		if err != nil {
			return nil, err
		}
	}

	relTx := a.newTransaction(models.TxRosterRelease, season, lid, tid, releasePID, row.Value, userID)
	var actTx models.Transaction
	err = a.tx.InTx(ctx, func(s Stores) error {
		if err := applyRelease(ctx, s, row, relTx); err != nil {
			return err
		}
		if activatePID != nil {
			actTx = a.newTransaction(models.TxRosterActivate, season, lid, tid, *activatePID, actRow.Value, userID)
			return applyActivate(ctx, s, actRow, actTx)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply release: %w", err)
	}

	deltas := []RosterDelta{{PlayerID: releasePID, TeamID: tid, Transaction: relTx}}
	if activatePID != nil {
		deltas = append(deltas, RosterDelta{
			PlayerID:    *activatePID,
			TeamID:      tid,
			Slot:        slotPtr(models.SlotBench),
			Transaction: actTx,
		})
	}

	a.recordSuperPriority(ctx, cfg, lid, tid, releasePID)
	a.notifyBestEffort(ctx, lid, &tid, "roster.release",
		fmt.Sprintf("%s released %s", team.Name, player.FullName))
	return deltas, nil
}

// checkOffseasonReleaseWindow rejects releasing a player the team poached
// this offseason after the poach cutoff. Without this a team could poach
// late in the offseason purely to strand a rival's practice squad player.
func (a *App) checkOffseasonReleaseWindow(ctx context.Context, cfg *models.LeagueConfig, season models.SeasonContext, lid, tid, pid uuid.UUID, player *models.Player) error {
	if !season.IsOffseason || cfg.OffseasonPoachCutoff == nil {
		return nil
	}
	txs, err := a.stores.Ledger.ListByPlayer(ctx, lid, pid)
	if err != nil {
		return fmt.Errorf("failed to get player ledger: %w", err)
	}
	for _, tx := range txs {
		if tx.Type == models.TxPoached && tx.TeamID == tid && tx.Timestamp.After(*cfg.OffseasonPoachCutoff) {
			return violation(ViolationProtectedPlayer,
				"%s was poached after the offseason cutoff and cannot be released until next season", player.FullName)
		}
	}
	return nil
}

// applyRelease writes the ledger entry, removes the player from the current
// and future roster-weeks, and clears any cutlist entry. Runs inside the
// processor's database transaction.
func applyRelease(ctx context.Context, s Stores, row models.RosterRow, tx models.Transaction) error {
	if err := s.Ledger.Append(ctx, tx); err != nil {
		return err
	}
	if err := s.Roster.DeletePlayerFromWeek(ctx, row.TeamID, row.PlayerID, tx.Year, tx.Week); err != nil {
		return err
	}
	return s.Roster.RemoveFromCutlist(ctx, row.TeamID, row.PlayerID)
}

// recordSuperPriority recomputes the released player's reclaim eligibility
// from the ledger and, when eligible, creates or refreshes the
// super-priority record. In-season releases also schedule an automatic
// waiver for the original team. Failures are logged, never returned; the
// release already committed.
func (a *App) recordSuperPriority(ctx context.Context, cfg *models.LeagueConfig, lid, tid, pid uuid.UUID) {
	txs, err := a.stores.Ledger.ListByPlayer(ctx, lid, pid)
	if err != nil {
		log.Error().Err(err).Str("player_id", pid.String()).Msg("super priority detection: failed to get ledger")
		return
	}
	weeks, err := a.stores.Roster.PlayerRosterWeeks(ctx, lid, pid)
	if err != nil {
		log.Error().Err(err).Str("player_id", pid.String()).Msg("super priority detection: failed to get roster weeks")
		return
	}

	res := rules.CalculateSuperPriorityEligibility(rules.SuperPriorityInput{
		PlayerID:      pid,
		Transactions:  txs,
		RosterWeeks:   weeks,
		ReleaseTeamID: &tid,
	})
	if !res.Eligible {
		return
	}

	existing, err := a.stores.SuperPriority.FindUnclaimed(ctx, lid, pid)
	if err != nil {
		log.Error().Err(err).Str("player_id", pid.String()).Msg("super priority detection: failed to find record")
		return
	}
	if existing != nil {
		if err := a.stores.SuperPriority.UpdateEligibility(ctx, existing.UID, true); err != nil {
			log.Error().Err(err).Str("uid", existing.UID.String()).Msg("super priority detection: failed to refresh record")
		}
		return
	}

	requiresWaiver := !cfg.IsOffseason
	sp := models.SuperPriority{
		UID:            uuid.New(),
		PlayerID:       pid,
		LeagueID:       lid,
		OriginalTeamID: res.OriginalTeamID,
		PoachingTeamID: res.PoachingTeamID,
		PoachTimestamp: res.PoachTimestamp,
		Eligible:       true,
		RequiresWaiver: requiresWaiver,
	}
	if err := a.stores.SuperPriority.Insert(ctx, sp); err != nil {
		log.Error().Err(err).Str("player_id", pid.String()).Msg("super priority detection: failed to insert record")
		return
	}

	if requiresWaiver {
		w := models.Waiver{
			UID:           uuid.New(),
			PlayerID:      pid,
			TeamID:        res.OriginalTeamID,
			LeagueID:      lid,
			Type:          models.WaiverTypeAdd,
			SuperPriority: true,
			Submitted:     a.clock.Now(),
		}
		if err := a.stores.Waivers.Insert(ctx, w); err != nil {
			log.Error().Err(err).Str("player_id", pid.String()).Msg("super priority detection: failed to schedule waiver")
		}
	}

	a.notifyBestEffort(ctx, lid, &res.OriginalTeamID, "superpriority.available",
		fmt.Sprintf("A super priority reclaim is available for player %s", pid))
}
