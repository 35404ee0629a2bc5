package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/gridiron/go/internal/models"
	"github.com/mcdev12/gridiron/go/internal/rules"
)

// Poaching a player costs two dollars over the last transaction value.
const poachPremium = 2

// SubmitPoach files a claim on another team's unprotected practice squad
// player. The claim resolves asynchronously; until then it blocks competing
// claims on the player and reserves a roster spot on the claiming team.
func (a *App) SubmitPoach(ctx context.Context, lid, pid uuid.UUID, releaseList []uuid.UUID, tid uuid.UUID, userID *uuid.UUID, isWaiver bool) (*models.PoachClaim, error) {
	defer a.locks.lock(lid)()

	cfg, team, season, ros, err := a.loadLeagueTeamRoster(ctx, lid, tid)
	if err != nil {
		return nil, err
	}

	player, err := a.getPlayer(ctx, pid)
	if err != nil {
		return nil, err
	}

	targetRow, err := a.stores.Roster.FindRowByPlayer(ctx, lid, pid, season.Year, season.Week)
	if err != nil {
		return nil, fmt.Errorf("failed to find player roster row: %w", err)
	}
	if targetRow == nil {
		return nil, violation(ViolationNotOnRoster, "%s is not rostered in this league", player.FullName)
	}
	if targetRow.TeamID == tid {
		return nil, violation(ViolationIneligibleForSlot, "cannot poach your own player")
	}
	if targetRow.Slot.IsProtected() {
		return nil, violation(ViolationProtectedPlayer, "%s occupies a protected practice squad slot", player.FullName)
	}
	if !targetRow.Slot.IsPracticeSquad() {
		return nil, violation(ViolationIneligibleForSlot, "%s is not on a practice squad", player.FullName)
	}

	if rules.IsSanctuaryPeriod(cfg, season.Now) {
		return nil, violation(ViolationSanctuaryPeriod, "poaching is disallowed during the sanctuary period")
	}

	pendingClaims, err := a.stores.Poaches.PendingByPlayer(ctx, lid, pid)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending poaches: %w", err)
	}
	if len(pendingClaims) > 0 {
		return nil, violation(ViolationPendingClaimConflict, "%s already has a pending poach claim", player.FullName)
	}
	pendingWaivers, err := a.stores.Waivers.PendingByTeamAndPlayer(ctx, tid, pid)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending waivers: %w", err)
	}
	if len(pendingWaivers) > 0 {
		return nil, violation(ViolationPendingClaimConflict, "team already has a pending waiver for %s", player.FullName)
	}

	// Players on the release list must be droppable and not already
	// committed to one of the team's other pending claims.
	teamClaims, err := a.stores.Poaches.PendingByClaimingTeam(ctx, lid, tid)
	if err != nil {
		return nil, fmt.Errorf("failed to get team's pending poaches: %w", err)
	}
	committed := make(map[uuid.UUID]bool)
	for _, c := range teamClaims {
		for _, rp := range c.ReleaseList {
			committed[rp] = true
		}
	}

	sim := ros.Copy()
	for _, relPID := range releaseList {
		relRow, ok := sim.Get(relPID)
		if !ok {
			return nil, violation(ViolationNotOnRoster, "release player %s is not on the roster", relPID)
		}
		if relRow.Slot.IsProtected() {
			return nil, violation(ViolationProtectedPlayer, "release player %s occupies a protected slot", relPID)
		}
		if committed[relPID] {
			return nil, violation(ViolationPendingClaimConflict, "release player %s is committed to another pending poach", relPID)
		}
		sim.RemovePlayer(relPID)
	}

	// Each unresolved claim already reserves a bench spot.
	if sim.AvailableSpace()-len(teamClaims) < 1 {
		return nil, violation(ViolationCapacityExceeded, "no open roster spot for the poached player")
	}

	value, err := a.poachValue(ctx, lid, pid, targetRow)
	if err != nil {
		return nil, err
	}
	if season.IsOffseason && sim.AvailableCap() < value {
		return nil, violation(ViolationCapacityExceeded, "insufficient cap for a $%d poach", value)
	}

	claim := models.PoachClaim{
		UID:          uuid.New(),
		PlayerID:     pid,
		TeamID:       tid,
		PlayerTeamID: targetRow.TeamID,
		LeagueID:     lid,
		Submitted:    season.Now,
		ReleaseList:  releaseList,
	}
	if err := a.stores.Poaches.Insert(ctx, claim); err != nil {
		return nil, fmt.Errorf("failed to insert poach claim: %w", err)
	}

	eta := poachETA(season.Now, cfg.ProcessingHour)
	a.notifyBestEffort(ctx, lid, nil, "poach.submitted",
		fmt.Sprintf("%s submitted a poach claim for %s, resolving %s",
			team.Name, player.FullName, eta.Format(time.RFC1123)))
	return &claim, nil
}

// ProcessPoach resolves a previously submitted claim. Preconditions are
// re-validated against current state; a claim that passed at submission can
// still fail here.
func (a *App) ProcessPoach(ctx context.Context, pid uuid.UUID, releaseList []uuid.UUID, lid, tid uuid.UUID, userID *uuid.UUID) error {
	defer a.locks.lock(lid)()

	cfg, team, season, ros, err := a.loadLeagueTeamRoster(ctx, lid, tid)
	if err != nil {
		return err
	}

	claims, err := a.stores.Poaches.PendingByPlayer(ctx, lid, pid)
	if err != nil {
		return fmt.Errorf("failed to get pending poaches: %w", err)
	}
	var claim *models.PoachClaim
	for i := range claims {
		if claims[i].TeamID == tid {
			claim = &claims[i]
			break
		}
	}
	if claim == nil {
		return violation(ViolationPendingClaimConflict, "no pending poach claim by team %s for player %s", tid, pid)
	}
	if releaseList == nil {
		releaseList = claim.ReleaseList
	}

	player, err := a.getPlayer(ctx, pid)
	if err != nil {
		return err
	}
	targetRow, err := a.stores.Roster.FindRowByPlayer(ctx, lid, pid, season.Year, season.Week)
	if err != nil {
		return fmt.Errorf("failed to find player roster row: %w", err)
	}
	if targetRow == nil {
		return violation(ViolationNotOnRoster, "%s is no longer rostered", player.FullName)
	}
	if targetRow.Slot.IsProtected() {
		return violation(ViolationProtectedPlayer, "%s occupies a protected practice squad slot", player.FullName)
	}
	if !targetRow.Slot.IsPracticeSquad() {
		return violation(ViolationIneligibleForSlot, "%s is no longer on a practice squad", player.FullName)
	}
	origTID := targetRow.TeamID

	sim := ros.Copy()
	releaseRows := make([]models.RosterRow, 0, len(releaseList))
	for _, relPID := range releaseList {
		relRow, ok := sim.Get(relPID)
		if !ok {
			return violation(ViolationNotOnRoster, "release player %s is not on the roster", relPID)
		}
		if relRow.Slot.IsProtected() {
			return violation(ViolationProtectedPlayer, "release player %s occupies a protected slot", relPID)
		}
		sim.RemovePlayer(relPID)
		releaseRows = append(releaseRows, relRow)
	}
	if sim.AvailableSpace() < 1 {
		return violation(ViolationCapacityExceeded, "no open roster spot for the poached player")
	}
	value, err := a.poachValue(ctx, lid, pid, targetRow)
	if err != nil {
		return err
	}
	if sim.AvailableCap() < value {
		return violation(ViolationCapacityExceeded, "insufficient cap for a $%d poach", value)
	}

	poachTx := a.newTransaction(models.TxPoached, season, lid, tid, pid, value, userID)
	err = a.tx.InTx(ctx, func(s Stores) error {
		for _, relRow := range releaseRows {
			relTx := a.newTransaction(models.TxRosterRelease, season, lid, tid, relRow.PlayerID, relRow.Value, userID)
			if err := applyRelease(ctx, s, relRow, relTx); err != nil {
				return err
			}
		}
		if err := s.Roster.DeletePlayerFromWeek(ctx, origTID, pid, season.Year, season.Week); err != nil {
			return err
		}
		if err := s.Ledger.Append(ctx, poachTx); err != nil {
			return err
		}
		if err := insertAcquiredRows(ctx, s, models.RosterRow{
			LeagueID:   lid,
			TeamID:     tid,
			PlayerID:   pid,
			Year:       season.Year,
			Week:       season.Week,
			Slot:       models.SlotBench,
			Tag:        models.TagRegular,
			Value:      value,
			AcquiredAt: season.Now,
		}); err != nil {
			return err
		}
		return s.Poaches.MarkProcessed(ctx, claim.UID, true)
	})
	if err != nil {
		return fmt.Errorf("failed to apply poach: %w", err)
	}

	// Committed releases carry the same post-write side effect as a direct
	// release: a dropped player may open a reclaim right of their own.
	for _, relRow := range releaseRows {
		a.recordSuperPriority(ctx, cfg, lid, tid, relRow.PlayerID)
	}
	a.awardConditionalPick(ctx, lid, origTID, tid, season)
	a.notifyBestEffort(ctx, lid, nil, "poach.processed",
		fmt.Sprintf("%s poached %s for $%d", team.Name, player.FullName, value))
	return nil
}

// poachValue prices a poach at the player's last transaction value plus the
// premium, falling back to their current roster value.
func (a *App) poachValue(ctx context.Context, lid, pid uuid.UUID, row *models.RosterRow) (int, error) {
	last, err := a.stores.Ledger.LastByPlayer(ctx, lid, pid)
	if err != nil {
		return 0, fmt.Errorf("failed to get last transaction: %w", err)
	}
	value := row.Value
	if last != nil {
		value = last.Value
	}
	return value + poachPremium, nil
}

// poachETA returns the batch slot at which a claim resolves: the first daily
// processing hour at least 24 hours after submission. Deterministic in the
// submission time so the quoted ETA always matches the batch behavior.
func poachETA(submitted time.Time, processingHour int) time.Time {
	sub := submitted.UTC()
	eta := time.Date(sub.Year(), sub.Month(), sub.Day(), processingHour, 0, 0, 0, time.UTC)
	for eta.Sub(sub) < 24*time.Hour {
		eta = eta.Add(24 * time.Hour)
	}
	return eta
}
