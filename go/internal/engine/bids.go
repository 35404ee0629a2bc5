package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/gridiron/go/internal/models"
)

// bidRequest carries the parameters shared by the two bid processors.
type bidRequest struct {
	PlayerID     uuid.UUID
	Bid          int
	TeamID       uuid.UUID
	LeagueID     uuid.UUID
	UserID       *uuid.UUID
	PlayerTeamID uuid.UUID
	WaiverUID    uuid.UUID

	requiredTag models.Tag
	txType      models.TransactionType
	event       string
}

// ProcessTransitionBid resolves a winning bid on a transition-tagged player.
// The original team matching its own bid keeps the player at the new value;
// any other team takes the player and owes the original team a conditional
// pick.
func (a *App) ProcessTransitionBid(ctx context.Context, pid uuid.UUID, bid int, tid, lid uuid.UUID, userID *uuid.UUID, playerTID uuid.UUID, waiverUID uuid.UUID) error {
	return a.processBid(ctx, bidRequest{
		PlayerID:     pid,
		Bid:          bid,
		TeamID:       tid,
		LeagueID:     lid,
		UserID:       userID,
		PlayerTeamID: playerTID,
		WaiverUID:    waiverUID,
		requiredTag:  models.TagTransition,
		txType:       models.TxTransitionBid,
		event:        "bid.transition",
	})
}

// ProcessRestrictedFABid resolves a winning restricted free agency bid on a
// rookie-tagged player.
func (a *App) ProcessRestrictedFABid(ctx context.Context, pid uuid.UUID, bid int, tid, lid uuid.UUID, userID *uuid.UUID, playerTID uuid.UUID, waiverUID uuid.UUID) error {
	return a.processBid(ctx, bidRequest{
		PlayerID:     pid,
		Bid:          bid,
		TeamID:       tid,
		LeagueID:     lid,
		UserID:       userID,
		PlayerTeamID: playerTID,
		WaiverUID:    waiverUID,
		requiredTag:  models.TagRookie,
		txType:       models.TxRestrictedFABid,
		event:        "bid.restricted_fa",
	})
}

func (a *App) processBid(ctx context.Context, req bidRequest) error {
	defer a.locks.lock(req.LeagueID)()

	cfg, team, season, ros, err := a.loadLeagueTeamRoster(ctx, req.LeagueID, req.TeamID)
	if err != nil {
		return err
	}

	player, err := a.getPlayer(ctx, req.PlayerID)
	if err != nil {
		return err
	}

	targetRow, err := a.stores.Roster.FindRowByPlayer(ctx, req.LeagueID, req.PlayerID, season.Year, season.Week)
	if err != nil {
		return fmt.Errorf("failed to find player roster row: %w", err)
	}
	if targetRow == nil {
		return violation(ViolationNotOnRoster, "%s is not rostered in this league", player.FullName)
	}
	if targetRow.TeamID != req.PlayerTeamID {
		return violation(ViolationNotOnRoster, "%s is no longer on the expected team", player.FullName)
	}
	if targetRow.Tag != req.requiredTag {
		return violation(ViolationNotEligibleTag, "%s does not carry the %s tag", player.FullName, req.requiredTag)
	}

	sameTeam := req.TeamID == req.PlayerTeamID

	// Greedy roster repair: drop cutlist players in priority order until the
	// bid fits, or fail when the cutlist runs out.
	cutlist, err := a.stores.Roster.GetCutlist(ctx, req.TeamID)
	if err != nil {
		return fmt.Errorf("failed to get cutlist: %w", err)
	}
	sim := ros.Copy()
	bidFits := func() bool {
		if sameTeam {
			available := sim.AvailableCap()
			if cur, ok := sim.Get(req.PlayerID); ok && cur.Slot.IsActiveRoster() {
				available += cur.Value
			}
			return available >= req.Bid
		}
		return sim.AvailableSpace() >= 1 &&
			sim.AvailableCap() >= req.Bid &&
			sim.IsEligibleForSlot(models.SlotBench, player.Position)
	}

	var cuts []models.RosterRow
	idx := 0
	for !bidFits() {
		cut := false
		for idx < len(cutlist) {
			cutPID := cutlist[idx]
			idx++
			cutRow, ok := sim.Get(cutPID)
			if !ok || cutRow.Slot.IsProtected() || cutPID == req.PlayerID {
				continue
			}
			sim.RemovePlayer(cutPID)
			cuts = append(cuts, cutRow)
			cut = true
			break
		}
		if !cut {
			return violation(ViolationCapacityExceeded, "bid of $%d exceeds roster limits for team %s", req.Bid, team.Name)
		}
	}

	bidTx := a.newTransaction(req.txType, season, req.LeagueID, req.TeamID, req.PlayerID, req.Bid, req.UserID)
	bidTx.WaiverID = &req.WaiverUID

	err = a.tx.InTx(ctx, func(s Stores) error {
		for _, cutRow := range cuts {
			cutTx := a.newTransaction(models.TxRosterRelease, season, req.LeagueID, req.TeamID, cutRow.PlayerID, cutRow.Value, req.UserID)
			if err := applyRelease(ctx, s, cutRow, cutTx); err != nil {
				return err
			}
		}
		if sameTeam {
			if err := s.Roster.UpdateValueFromWeek(ctx, req.TeamID, req.PlayerID, season.Year, season.Week, req.Bid); err != nil {
				return err
			}
		} else {
			if err := s.Roster.DeletePlayerFromWeek(ctx, req.PlayerTeamID, req.PlayerID, season.Year, season.Week); err != nil {
				return err
			}
			if err := insertAcquiredRows(ctx, s, models.RosterRow{
				LeagueID:   req.LeagueID,
				TeamID:     req.TeamID,
				PlayerID:   req.PlayerID,
				Year:       season.Year,
				Week:       season.Week,
				Slot:       models.SlotBench,
				Tag:        models.TagRegular,
				Value:      req.Bid,
				AcquiredAt: season.Now,
			}); err != nil {
				return err
			}
		}
		if err := s.Ledger.Append(ctx, bidTx); err != nil {
			return err
		}
		return s.Waivers.MarkProcessed(ctx, req.WaiverUID)
	})
	if err != nil {
		return fmt.Errorf("failed to apply bid: %w", err)
	}

	// Cutlist drops carry the same post-write side effect as a direct
	// release: a dropped player may open a reclaim right of their own.
	for _, cutRow := range cuts {
		a.recordSuperPriority(ctx, cfg, req.LeagueID, req.TeamID, cutRow.PlayerID)
	}
	if !sameTeam {
		a.awardConditionalPick(ctx, req.LeagueID, req.PlayerTeamID, req.TeamID, season)
	}
	a.notifyBestEffort(ctx, req.LeagueID, nil, req.event,
		fmt.Sprintf("%s won %s with a $%d bid", team.Name, player.FullName, req.Bid))
	return nil
}
