package engine

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/gridiron/go/internal/models"
)

func requireViolation(t *testing.T, err error, code ViolationCode) *RuleViolation {
	t.Helper()
	require.Error(t, err)
	v, ok := AsRuleViolation(err)
	require.True(t, ok, "expected rule violation, got %v", err)
	require.Equal(t, code, v.Code)
	return v
}

func TestReleaseRemovesCurrentAndFutureWeeks(t *testing.T) {
	h := newHarness()
	tid := h.addTeam("alpha", 1)
	pid := h.addPlayer("Bench Guy", models.PositionRB)
	h.addRosterRow(tid, pid, models.SlotBench, 10, 2, 3, 4, 5)
	h.stores.cutlists[tid] = []uuid.UUID{pid}

	before := len(h.stores.ledger)
	deltas, err := h.app.Release(context.Background(), h.cfg.ID, tid, pid, nil, nil)
	require.NoError(t, err)
	require.Len(t, deltas, 1)
	assert.Nil(t, deltas[0].Slot)
	assert.Equal(t, models.TxRosterRelease, deltas[0].Transaction.Type)

	// Weeks >= current are gone; history stays.
	rows := h.rosterRowsFor(tid, pid)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Week)

	// The ledger only grows, and the cutlist entry is cleared.
	assert.Equal(t, before+1, len(h.stores.ledger))
	assert.Empty(t, h.stores.cutlists[tid])
}

func TestReleaseProtectedPlayerFails(t *testing.T) {
	h := newHarness()
	tid := h.addTeam("alpha", 1)

	for _, slot := range []models.Slot{models.SlotPSP, models.SlotPSDP} {
		pid := h.addPlayer("Protected Guy", models.PositionWR)
		h.addRosterRow(tid, pid, slot, 2)

		_, err := h.app.Release(context.Background(), h.cfg.ID, tid, pid, nil, nil)
		requireViolation(t, err, ViolationProtectedPlayer)
		require.Len(t, h.rosterRowsFor(tid, pid), 1, "no writes on validation failure")
	}
}

func TestReleaseNotOnRoster(t *testing.T) {
	h := newHarness()
	tid := h.addTeam("alpha", 1)
	anchor := h.addPlayer("Anchor", models.PositionQB)
	h.addRosterRow(tid, anchor, models.SlotActive, 30)

	_, err := h.app.Release(context.Background(), h.cfg.ID, tid, uuid.New(), nil, nil)
	requireViolation(t, err, ViolationNotOnRoster)
}

func TestReleaseBlockedByPendingPoach(t *testing.T) {
	h := newHarness()
	tid := h.addTeam("alpha", 1)
	rival := h.addTeam("rival", 2)
	pid := h.addPlayer("PS Guy", models.PositionWR)
	h.addRosterRow(tid, pid, models.SlotPS, 2)
	h.stores.poaches = append(h.stores.poaches, models.PoachClaim{
		UID:          uuid.New(),
		PlayerID:     pid,
		TeamID:       rival,
		PlayerTeamID: tid,
		LeagueID:     h.cfg.ID,
		Submitted:    h.now.Add(-time.Hour),
	})

	_, err := h.app.Release(context.Background(), h.cfg.ID, tid, pid, nil, nil)
	requireViolation(t, err, ViolationPendingClaimConflict)
}

func TestReleaseLockedStarterFails(t *testing.T) {
	h := newHarness()
	tid := h.addTeam("alpha", 1)
	pid := h.addPlayer("Starter", models.PositionQB)
	h.addRosterRow(tid, pid, models.SlotActive, 30)
	h.schedule.kickoffs["KC"] = h.now.Add(-time.Hour)

	_, err := h.app.Release(context.Background(), h.cfg.ID, tid, pid, nil, nil)
	requireViolation(t, err, ViolationLockedStarter)
}

func TestReleaseWithCombinedActivate(t *testing.T) {
	h := newHarness()
	tid := h.addTeam("alpha", 1)
	release := h.addPlayer("Old Vet", models.PositionRB)
	activate := h.addPlayer("PS Riser", models.PositionRB)
	// Bench is full at 3, so the activation only fits once the release frees
	// a spot.
	h.addRosterRow(tid, release, models.SlotBench, 10)
	h.addRosterRow(tid, h.addPlayer("B2", models.PositionTE), models.SlotBench, 10)
	h.addRosterRow(tid, h.addPlayer("B3", models.PositionK), models.SlotBench, 10)
	h.addRosterRow(tid, activate, models.SlotPS, 2)

	deltas, err := h.app.Release(context.Background(), h.cfg.ID, tid, release, nil, &activate)
	require.NoError(t, err)
	require.Len(t, deltas, 2)
	assert.Equal(t, models.SlotBench, *deltas[1].Slot)

	rows := h.rosterRowsFor(tid, activate)
	require.Len(t, rows, 1)
	assert.Equal(t, models.SlotBench, rows[0].Slot)
}

func TestReleaseAfterPoachCreatesSuperPriorityRecord(t *testing.T) {
	h := newHarness()
	original := h.addTeam("original", 1)
	poacher := h.addTeam("poacher", 2)
	pid := h.addPlayer("Poached Guy", models.PositionWR)

	poachedAt := h.now.AddDate(0, 0, -20)
	h.appendLedger(models.TxPracticeAdd, original, pid, 1, 3, h.now.AddDate(0, 0, -40))
	h.appendLedger(models.TxPoached, poacher, pid, 1, 5, poachedAt)
	h.addRosterRow(poacher, pid, models.SlotBench, 5, 2, 3)

	_, err := h.app.Release(context.Background(), h.cfg.ID, poacher, pid, nil, nil)
	require.NoError(t, err)

	require.Len(t, h.stores.sps, 1)
	for _, sp := range h.stores.sps {
		assert.Equal(t, original, sp.OriginalTeamID)
		assert.Equal(t, poacher, sp.PoachingTeamID)
		assert.True(t, sp.Eligible)
		assert.False(t, sp.Claimed)
		assert.True(t, sp.RequiresWaiver, "in-season reclaim passes through waivers")
	}

	// The automatic waiver was scheduled for the original team.
	require.Len(t, h.stores.waivers, 1)
	assert.Equal(t, original, h.stores.waivers[0].TeamID)
	assert.True(t, h.stores.waivers[0].SuperPriority)
}

func TestReleaseNoSuperPriorityRecordForUnpoachedPlayer(t *testing.T) {
	h := newHarness()
	tid := h.addTeam("alpha", 1)
	pid := h.addPlayer("Normal Guy", models.PositionRB)
	h.appendLedger(models.TxRosterAdd, tid, pid, 1, 10, h.now.AddDate(0, 0, -40))
	h.addRosterRow(tid, pid, models.SlotBench, 10)

	_, err := h.app.Release(context.Background(), h.cfg.ID, tid, pid, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, h.stores.sps)
}
